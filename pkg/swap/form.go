package swap

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"swap-sim/pkg/logging"
	"swap-sim/pkg/picker"
	"swap-sim/pkg/prices"
	"swap-sim/pkg/quote"
	"swap-sim/pkg/tokens"
	"swap-sim/pkg/types"
)

const (
	MinSlippage     = 0.1
	MaxSlippage     = 3.0
	DefaultSlippage = 0.5

	FailureMessage = "Swap failed due to a simulated network error. Please try again."
	LoadingText    = "Price loading…"
)

// Regions owned by the form itself. Interacting with any of them counts as a
// click outside both pickers.
const (
	RegionAmount   picker.Region = "form.amount"
	RegionSlippage picker.Region = "form.slippage"
	RegionFlip     picker.Region = "form.flip"
	RegionSubmit   picker.Region = "form.submit"
	RegionRefresh  picker.Region = "form.refresh"
)

var (
	ErrSlippageRange = fmt.Errorf("slippage must be between %.1f%% and %.1f%%", MinSlippage, MaxSlippage)
	ErrBusy          = errors.New("a swap is being processed")
)

// Config seeds a new form
type Config struct {
	FromBalance float64
	ToBalance   float64
	Slippage    float64
}

// DefaultConfig returns the demo balances
func DefaultConfig() Config {
	return Config{FromBalance: 3.4, ToBalance: 8600, Slippage: DefaultSlippage}
}

// Form owns all mutable swap state. Derived values are computed on demand by
// Snapshot and never stored.
type Form struct {
	registry *tokens.Registry
	lookup   prices.Lookup
	sim      *Simulator
	log      zerolog.Logger
	pickers  map[types.SideName]*picker.Picker

	mu       sync.Mutex
	from     types.Side
	to       types.Side
	slippage float64
	prices   prices.Map
	pending  int
	state    types.SubmitState
	result   *types.Result
	errMsg   string
}

// NewForm creates a form with the registry defaults selected
func NewForm(reg *tokens.Registry, lookup prices.Lookup, sim *Simulator, cfg Config) (*Form, error) {
	if !slippageInRange(cfg.Slippage) {
		return nil, ErrSlippageRange
	}
	if cfg.FromBalance < 0 || cfg.ToBalance < 0 {
		return nil, fmt.Errorf("balances cannot be negative")
	}

	f := &Form{
		registry: reg,
		lookup:   lookup,
		sim:      sim,
		log:      logging.New("swap"),
		from:     types.Side{Token: reg.DefaultFrom(), Balance: cfg.FromBalance},
		to:       types.Side{Token: reg.DefaultTo(), Balance: cfg.ToBalance},
		slippage: cfg.Slippage,
		prices:   prices.Map{},
		state:    types.StateIdle,
	}

	f.pickers = map[types.SideName]*picker.Picker{
		types.SideFrom: picker.New(string(types.SideFrom), reg,
			func() tokens.Token { return f.token(types.SideFrom) },
			func(t tokens.Token) { f.setToken(types.SideFrom, t) }),
		types.SideTo: picker.New(string(types.SideTo), reg,
			func() tokens.Token { return f.token(types.SideTo) },
			func(t tokens.Token) { f.setToken(types.SideTo, t) }),
	}
	return f, nil
}

// Registry returns the token registry
func (f *Form) Registry() *tokens.Registry { return f.registry }

// Picker returns the picker for a side
func (f *Form) Picker(side types.SideName) *picker.Picker { return f.pickers[side] }

// OpenPicker returns whichever picker is open, or nil
func (f *Form) OpenPicker() *picker.Picker {
	for _, side := range []types.SideName{types.SideFrom, types.SideTo} {
		if p := f.pickers[side]; p.IsOpen() {
			return p
		}
	}
	return nil
}

// Click dispatches an interaction at target to both pickers. A picker's
// trigger toggles it; anything outside a picker closes it.
func (f *Form) Click(target picker.Region) {
	for _, p := range f.pickers {
		if target == p.Trigger() {
			p.Toggle()
			continue
		}
		p.HandleClick(target)
	}
}

// TogglePicker clicks a side's trigger
func (f *Form) TogglePicker(side types.SideName) {
	f.Click(f.pickers[side].Trigger())
}

// Search types into the open picker's filter
func (f *Form) Search(text string) error {
	p := f.OpenPicker()
	if p == nil {
		return picker.ErrNotOpen
	}
	return p.SetQuery(text)
}

// Choose picks a token from the open picker
func (f *Form) Choose(symbol string) error {
	p := f.OpenPicker()
	if p == nil {
		return picker.ErrNotOpen
	}
	return p.Choose(symbol)
}

func (f *Form) token(side types.SideName) tokens.Token {
	f.mu.Lock()
	defer f.mu.Unlock()
	if side == types.SideFrom {
		return f.from.Token
	}
	return f.to.Token
}

func (f *Form) setToken(side types.SideName, t tokens.Token) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if side == types.SideFrom {
		f.from.Token = t
	} else {
		f.to.Token = t
	}
}

// Select sets a side's token by symbol without going through the picker
func (f *Form) Select(side types.SideName, symbol string) error {
	t, err := f.registry.Lookup(symbol)
	if err != nil {
		return err
	}
	f.setToken(side, t)
	return nil
}

// SetAmount replaces the "from" amount text
func (f *Form) SetAmount(text string) {
	f.Click(RegionAmount)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.from.Amount = text
}

// SetSlippage changes the tolerance, in percent
func (f *Form) SetSlippage(pct float64) error {
	f.Click(RegionSlippage)
	if !slippageInRange(pct) {
		return ErrSlippageRange
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slippage = pct
	return nil
}

// Flip swaps tokens and balances and clears amounts, result and error
func (f *Form) Flip() {
	f.Click(RegionFlip)
	f.mu.Lock()
	defer f.mu.Unlock()

	f.from, f.to = types.Side{Token: f.to.Token, Balance: f.to.Balance},
		types.Side{Token: f.from.Token, Balance: f.from.Balance}
	f.result = nil
	f.errMsg = ""
}

// RefreshPrices re-runs resolution for the whole registry and waits for the
// new price map to be applied.
func (f *Form) RefreshPrices(ctx context.Context) error {
	done, err := f.StartRefresh(ctx)
	if err != nil {
		return err
	}
	<-done
	return nil
}

// StartRefresh re-runs resolution in the background. The channel closes once
// the new map is applied. Overlapping refreshes are not coalesced; the last
// to finish wins.
func (f *Form) StartRefresh(ctx context.Context) (<-chan struct{}, error) {
	f.Click(RegionRefresh)

	f.mu.Lock()
	if f.state == types.StateSubmitting {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	f.pending++
	f.mu.Unlock()

	return f.background(ctx), nil
}

// Mount starts the initial price resolution in the background
func (f *Form) Mount(ctx context.Context) <-chan struct{} {
	f.mu.Lock()
	f.pending++
	f.mu.Unlock()

	return f.background(ctx)
}

// background resolves prices on a goroutine; pending must already count it
func (f *Form) background(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.loadPrices(ctx)
	}()
	return done
}

func (f *Form) loadPrices(ctx context.Context) {
	m := prices.ResolveRegistry(ctx, f.lookup, f.registry)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices = m
	f.pending--
	f.log.Debug().Int("prices", len(m)).Msg("price map replaced")
}

// Submit validates and starts a simulated submission. The returned channel
// receives the terminal state once the simulated delay has elapsed.
func (f *Form) Submit() (<-chan types.SubmitState, error) {
	f.Click(RegionSubmit)

	f.mu.Lock()
	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	f.state = types.StateSubmitting
	f.result = nil
	f.errMsg = ""
	amount := f.from.Amount
	pair := f.from.Token.Symbol + "->" + f.to.Token.Symbol
	f.mu.Unlock()

	f.log.Info().Str("pair", pair).Str("amount", amount).Msg("submission started")

	done := make(chan types.SubmitState, 1)
	go func() {
		defer close(done)
		out := f.sim.Run()

		f.mu.Lock()
		if out.Failed {
			f.state = types.StateFailed
			f.errMsg = FailureMessage
		} else {
			q := f.quoteLocked()
			f.result = &types.Result{TxHash: out.TxHash, Received: q.MinReceived}
			f.from.Amount = ""
			f.state = types.StateSettled
		}
		st := f.state
		f.mu.Unlock()

		f.log.Info().Str("pair", pair).Str("state", string(st)).Dur("delay", out.Delay).Msg("submission finished")
		done <- st
	}()
	return done, nil
}

func (f *Form) pricesLocked() (float64, float64) {
	fp, _ := prices.PriceOf(f.prices, f.from.Token)
	tp, _ := prices.PriceOf(f.prices, f.to.Token)
	return fp, tp
}

func (f *Form) quoteLocked() quote.Quote {
	fp, tp := f.pricesLocked()
	return quote.Compute(quote.Input{
		AmountText: f.from.Amount,
		FromSymbol: f.from.Token.Symbol,
		ToSymbol:   f.to.Token.Symbol,
		FromPrice:  fp,
		ToPrice:    tp,
		Slippage:   f.slippage,
	})
}

func (f *Form) validateLocked() error {
	fp, tp := f.pricesLocked()
	return quote.Validate(quote.Check{
		Submitting:  f.state == types.StateSubmitting,
		AmountText:  f.from.Amount,
		FromBalance: f.from.Balance,
		FromSymbol:  f.from.Token.Symbol,
		ToSymbol:    f.to.Token.Symbol,
		FromPrice:   fp,
		ToPrice:     tp,
	})
}

func slippageInRange(pct float64) bool {
	return pct >= MinSlippage && pct <= MaxSlippage
}
