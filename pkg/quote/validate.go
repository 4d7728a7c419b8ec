package quote

import (
	"errors"
	"fmt"
)

var (
	ErrProcessing         = errors.New("Processing…")
	ErrNoAmount           = errors.New("Enter an amount")
	ErrInvalidAmount      = errors.New("Enter a valid amount")
	ErrSameAsset          = errors.New("Select two different assets")
	ErrPricingUnavailable = errors.New("Pricing unavailable")
)

// InsufficientBalanceError names the asset the user cannot cover
type InsufficientBalanceError struct {
	Symbol string
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("Insufficient %s balance", e.Symbol)
}

// Check is what submission validation looks at
type Check struct {
	Submitting  bool
	AmountText  string
	FromBalance float64
	FromSymbol  string
	ToSymbol    string
	FromPrice   float64
	ToPrice     float64
}

// Validate returns the first rule that blocks submission, or nil
func Validate(c Check) error {
	if c.Submitting {
		return ErrProcessing
	}
	if c.AmountText == "" {
		return ErrNoAmount
	}
	amount := ParseAmount(c.AmountText)
	if amount <= 0 {
		return ErrInvalidAmount
	}
	if amount > c.FromBalance {
		return &InsufficientBalanceError{Symbol: c.FromSymbol}
	}
	if c.FromSymbol == c.ToSymbol {
		return ErrSameAsset
	}
	if !known(c.FromPrice) || !known(c.ToPrice) {
		return ErrPricingUnavailable
	}
	return nil
}
