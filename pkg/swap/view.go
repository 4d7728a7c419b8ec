package swap

import (
	"swap-sim/pkg/prices"
	"swap-sim/pkg/quote"
	"swap-sim/pkg/types"
)

// View is an immutable snapshot of the form with every derived value filled in
type View struct {
	From        types.Side
	To          types.Side
	Slippage    float64
	Prices      prices.Map
	Quote       quote.Quote
	Rate        string
	RateReady   bool
	MinReceived string
	Validation  error
	State       types.SubmitState
	Result      *types.Result
	Error       string
	Loading     bool
}

// CanSubmit reports whether the submit action is enabled
func (v View) CanSubmit() bool {
	return v.Validation == nil
}

// CanRefresh reports whether the refresh action is enabled
func (v View) CanRefresh() bool {
	return v.State != types.StateSubmitting
}

// ButtonLabel is the text of the submit action
func (v View) ButtonLabel() string {
	switch {
	case v.State == types.StateSubmitting:
		return "Swapping…"
	case v.Validation != nil:
		return v.Validation.Error()
	default:
		return "Swap"
	}
}

// Snapshot computes the current view
func (f *Form) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	q := f.quoteLocked()
	v := View{
		From:        f.from,
		To:          f.to,
		Slippage:    f.slippage,
		Prices:      make(prices.Map, len(f.prices)),
		Quote:       q,
		MinReceived: q.MinReceivedText(),
		Validation:  f.validateLocked(),
		State:       f.state,
		Error:       f.errMsg,
		Loading:     f.pending > 0,
	}
	v.Prices.Merge(f.prices)
	v.To.Amount = q.OutText()

	if rate, ok := q.RateText(); ok {
		v.Rate, v.RateReady = rate, true
	} else {
		v.Rate = LoadingText
	}

	if f.result != nil {
		r := *f.result
		v.Result = &r
	}
	return v
}
