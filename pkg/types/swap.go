package types

import "swap-sim/pkg/tokens"

// SubmitState is where the simulated submission currently stands
type SubmitState string

const (
	StateIdle       SubmitState = "idle"
	StateSubmitting SubmitState = "submitting"
	StateSettled    SubmitState = "settled"
	StateFailed     SubmitState = "failed"
)

// SideName identifies one half of the form
type SideName string

const (
	SideFrom SideName = "from"
	SideTo   SideName = "to"
)

// Side holds one half of the swap
type Side struct {
	Token   tokens.Token `json:"token"`
	Amount  string       `json:"amount"`
	Balance float64      `json:"balance"`
}

// Result is recorded when a simulated submission settles
type Result struct {
	TxHash   string  `json:"tx_hash"`
	Received float64 `json:"received"`
}

// SwapRequest is a parsed "<amount> <token> to <token>" phrase
type SwapRequest struct {
	Amount      string
	SourceToken string
	DestToken   string
}
