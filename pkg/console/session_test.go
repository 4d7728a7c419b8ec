package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-sim/pkg/parser"
	"swap-sim/pkg/prices"
	"swap-sim/pkg/swap"
	"swap-sim/pkg/tokens"
	"swap-sim/pkg/types"
)

func init() {
	color.NoColor = true
}

func newForm(t *testing.T, failureRate float64) *swap.Form {
	t.Helper()
	sim := swap.NewSimulator(swap.SimulatorConfig{FailureRate: failureRate},
		swap.WithSleep(func(time.Duration) {}),
		swap.WithTxHash(func() string { return "0xc0ffee" }),
	)
	resolver := prices.NewResolver(prices.NewStaticSource(nil))
	f, err := swap.NewForm(tokens.Default(), resolver, sim, swap.DefaultConfig())
	require.NoError(t, err)
	return f
}

func runScript(t *testing.T, f *swap.Form, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	s := NewSession(f, strings.NewReader(strings.Join(lines, "\n")+"\n"), &out, WithAwaitPrices(true))
	require.NoError(t, s.Run(context.Background()))
	return out.String()
}

func TestSessionQuoteAndSubmit(t *testing.T) {
	f := newForm(t, 0)
	out := runScript(t, f, "amount 1.5", "swap", "quit")

	assert.Contains(t, out, "1 ETH = 3200.00 USDC")
	assert.Contains(t, out, "You receive (est.): 4800.000000")
	assert.Contains(t, out, "Min. received:      4776.000000")
	assert.Contains(t, out, "Swap complete! Received approximately 4776.000000 USDC.")
	assert.Contains(t, out, "Mock tx hash: 0xc0ffee")
	assert.Equal(t, types.StateSettled, f.Snapshot().State)
}

func TestSessionValidationMessages(t *testing.T) {
	f := newForm(t, 0)
	out := runScript(t, f, "swap", "amount 99", "swap", "quit")

	assert.Contains(t, out, "[ Enter an amount ]")
	assert.Contains(t, out, "Insufficient ETH balance")
	assert.Equal(t, types.StateIdle, f.Snapshot().State)
}

func TestSessionSimulatedFailure(t *testing.T) {
	f := newForm(t, 1)
	out := runScript(t, f, "fill 1 ETH to USDC", "swap", "quit")

	assert.Contains(t, out, swap.FailureMessage)
	assert.Equal(t, "1", f.Snapshot().From.Amount)
}

func TestSessionPickerFlow(t *testing.T) {
	f := newForm(t, 0)
	out := runScript(t, f,
		"pick to",
		"search us",
		"choose usdc",
		"pick from",
		"search bit",
		"choose BTC",
		"pick to",
		"click page",
		"quit",
	)

	assert.Contains(t, out, `select to token  search: "us"`)
	assert.Contains(t, out, "* USDC")
	assert.Contains(t, out, `select from token  search: "bit"`)
	assert.Contains(t, out, "1 BTC = 65000.0 USDC")

	v := f.Snapshot()
	assert.Equal(t, "BTC", v.From.Token.Symbol)
	assert.Nil(t, f.OpenPicker())
}

func TestSessionFlipAndSlippage(t *testing.T) {
	f := newForm(t, 0)
	out := runScript(t, f, "slippage 1", "flip", "slippage 9", "quit")

	assert.Contains(t, out, "Slippage:           1.0%")
	assert.Contains(t, out, "1 USDC = 0.000312500 ETH")
	assert.Contains(t, out, swap.ErrSlippageRange.Error())
	assert.Equal(t, 1.0, f.Snapshot().Slippage)
}

func TestSessionReportsParseErrors(t *testing.T) {
	f := newForm(t, 0)
	out := runScript(t, f, "dance", "search x", "help")

	assert.Contains(t, out, `unknown command "dance"`)
	assert.Contains(t, out, "token picker is not open")
	assert.Contains(t, out, "Commands:")
}

func TestExecuteRefresh(t *testing.T) {
	f := newForm(t, 0)
	s := NewSession(f, strings.NewReader(""), &bytes.Buffer{})

	quit, err := s.Execute(context.Background(), &parser.Command{Action: parser.ActRefresh})
	require.NoError(t, err)
	assert.False(t, quit)

	s.pending.Wait()
	assert.True(t, f.Snapshot().RateReady)
}

// heldLookup answers from the fallback table once released
type heldLookup struct {
	release chan struct{}
}

func (h *heldLookup) Resolve(ctx context.Context, keys []string) prices.Map {
	select {
	case <-h.release:
	case <-ctx.Done():
		return prices.Map{}
	}
	out := prices.Map{}
	for _, k := range keys {
		if v, ok := prices.Fallback.Get(k); ok {
			out[k] = v
		}
	}
	return out
}

func execLine(t *testing.T, s *Session, line string) {
	t.Helper()
	cmd, err := parser.ParseConsoleCommand(line)
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := s.Execute(context.Background(), cmd)
		done <- err
	}()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatalf("%q did not return while background work was pending", line)
	}
}

func TestSessionStaysInteractiveWhileRefreshing(t *testing.T) {
	lookup := &heldLookup{release: make(chan struct{})}
	sim := swap.NewSimulator(swap.SimulatorConfig{}, swap.WithSleep(func(time.Duration) {}))
	f, err := swap.NewForm(tokens.Default(), lookup, sim, swap.DefaultConfig())
	require.NoError(t, err)

	var out bytes.Buffer
	s := NewSession(f, strings.NewReader(""), &out)

	execLine(t, s, "refresh")
	execLine(t, s, "amount 1")
	execLine(t, s, "pick to")
	execLine(t, s, "choose SOL")
	execLine(t, s, "refresh")

	v := f.Snapshot()
	assert.True(t, v.Loading)
	assert.Equal(t, "1", v.From.Amount)
	assert.Equal(t, "SOL", v.To.Token.Symbol)
	assert.Equal(t, swap.LoadingText, v.Rate)
	assert.Contains(t, out.String(), "Refreshing prices…")

	close(lookup.release)
	s.pending.Wait()

	v = f.Snapshot()
	assert.False(t, v.Loading)
	assert.Equal(t, "1 ETH = 21.3333 SOL", v.Rate)
	assert.Contains(t, out.String(), "Prices updated.")
}

func TestSessionEditableWhileSubmitting(t *testing.T) {
	hold := make(chan struct{})
	sim := swap.NewSimulator(swap.SimulatorConfig{},
		swap.WithSleep(func(time.Duration) { <-hold }),
		swap.WithTxHash(func() string { return "0xbeef" }),
	)
	f, err := swap.NewForm(tokens.Default(), prices.NewResolver(prices.NewStaticSource(nil)), sim, swap.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, f.RefreshPrices(context.Background()))

	var out bytes.Buffer
	s := NewSession(f, strings.NewReader(""), &out)

	execLine(t, s, "amount 1")
	execLine(t, s, "swap")
	assert.Equal(t, types.StateSubmitting, f.Snapshot().State)
	assert.Contains(t, out.String(), "[ Swapping… ]")

	execLine(t, s, "swap")
	assert.Contains(t, out.String(), "Processing…")

	execLine(t, s, "slippage 1")
	assert.Equal(t, 1.0, f.Snapshot().Slippage)

	_, err = s.Execute(context.Background(), &parser.Command{Action: parser.ActRefresh})
	assert.ErrorIs(t, err, swap.ErrBusy)

	close(hold)
	s.pending.Wait()

	v := f.Snapshot()
	assert.Equal(t, types.StateSettled, v.State)
	require.NotNil(t, v.Result)
	assert.Equal(t, "0xbeef", v.Result.TxHash)
	assert.Contains(t, out.String(), "Swap settled.")
	assert.Contains(t, out.String(), "Swap complete! Received approximately 3168.000000 USDC.")
}
