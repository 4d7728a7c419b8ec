package picker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"swap-sim/pkg/tokens"
)

type side struct {
	token tokens.Token
}

func newPicker(id string, reg *tokens.Registry, s *side) *Picker {
	return New(id, reg,
		func() tokens.Token { return s.token },
		func(t tokens.Token) { s.token = t },
	)
}

func symbols(opts []Option) []string {
	out := make([]string, 0, len(opts))
	for _, o := range opts {
		out = append(out, o.Token.Symbol)
	}
	return out
}

func TestClosedByDefaultAndToggle(t *testing.T) {
	reg := tokens.Default()
	s := &side{token: reg.DefaultFrom()}
	p := newPicker("from", reg, s)

	assert.False(t, p.IsOpen())
	assert.Equal(t, Region(""), p.Focus())

	p.Toggle()
	assert.True(t, p.IsOpen())
	assert.Equal(t, p.Search(), p.Focus())

	p.Toggle()
	assert.False(t, p.IsOpen())
}

func TestOptionsFilterAndActiveMarker(t *testing.T) {
	reg := tokens.Default()
	s := &side{token: reg.DefaultTo()}
	p := newPicker("to", reg, s)
	p.Toggle()

	opts := p.Options()
	assert.Equal(t, []string{"ETH", "BTC", "USDC", "SOL", "MATIC"}, symbols(opts))
	for _, o := range opts {
		assert.Equal(t, o.Token.Symbol == "USDC", o.Active)
	}

	require.NoError(t, p.SetQuery("us"))
	assert.Equal(t, []string{"USDC"}, symbols(p.Options()))

	require.NoError(t, p.SetQuery("zzz"))
	assert.Empty(t, p.Options())
}

func TestChooseReportsClearsAndCloses(t *testing.T) {
	reg := tokens.Default()
	s := &side{token: reg.DefaultFrom()}
	p := newPicker("from", reg, s)

	assert.ErrorIs(t, p.Choose("BTC"), ErrNotOpen)

	p.Toggle()
	require.NoError(t, p.SetQuery("bit"))
	assert.ErrorIs(t, p.Choose("SOL"), ErrNoSuchOption)

	require.NoError(t, p.Choose("btc"))
	assert.Equal(t, "BTC", s.token.Symbol)
	assert.False(t, p.IsOpen())
	assert.Equal(t, "", p.Query())
}

func TestOutsideClickCloses(t *testing.T) {
	reg := tokens.Default()
	s := &side{token: reg.DefaultFrom()}
	p := newPicker("from", reg, s)
	p.Toggle()
	require.NoError(t, p.SetQuery("so"))

	assert.False(t, p.HandleClick(p.Search()))
	assert.False(t, p.HandleClick(p.OptionRegion("SOL")))
	assert.False(t, p.HandleClick(p.Overlay()))
	assert.True(t, p.IsOpen())

	assert.True(t, p.HandleClick("form.amount"))
	assert.False(t, p.IsOpen())
	assert.Equal(t, "ETH", s.token.Symbol)

	assert.False(t, p.HandleClick("form.amount"))
}

func TestOwnership(t *testing.T) {
	reg := tokens.Default()
	from := newPicker("from", reg, &side{})
	to := newPicker("to", reg, &side{})

	assert.True(t, from.Owns(from.Trigger()))
	assert.True(t, from.Owns(from.OptionRegion("ETH")))
	assert.False(t, from.Owns(to.Trigger()))
	assert.False(t, from.Owns(to.Overlay()))
	assert.False(t, from.Owns("from.overlayish"))
}

func TestInstancesAreIndependent(t *testing.T) {
	reg := tokens.Default()
	a := newPicker("from", reg, &side{token: reg.DefaultFrom()})
	b := newPicker("to", reg, &side{token: reg.DefaultTo()})

	a.Toggle()
	require.NoError(t, a.SetQuery("eth"))

	assert.False(t, b.IsOpen())
	assert.Equal(t, "", b.Query())
	assert.ErrorIs(t, b.SetQuery("x"), ErrNotOpen)

	b.Toggle()
	assert.True(t, a.IsOpen())
	assert.Equal(t, "eth", a.Query())
}
