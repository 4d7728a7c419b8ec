package quote

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// RateDigits is the number of significant digits shown in the rate line
const RateDigits = 6

// AmountPlaces is the number of decimals shown for amounts
const AmountPlaces = 6

// Input is a snapshot of everything a quote depends on.
// A price of zero means unknown.
type Input struct {
	AmountText string
	FromSymbol string
	ToSymbol   string
	FromPrice  float64
	ToPrice    float64
	Slippage   float64 // percent
}

// Quote is derived state; it is recomputed from an Input and never edited
type Quote struct {
	FromSymbol  string
	ToSymbol    string
	AmountIn    float64
	QuotedOut   float64
	MinReceived float64
	Rate        float64
	Priced      bool
}

// Compute derives the quote for in
func Compute(in Input) Quote {
	q := Quote{
		FromSymbol: in.FromSymbol,
		ToSymbol:   in.ToSymbol,
		AmountIn:   ParseAmount(in.AmountText),
		Priced:     known(in.FromPrice) && known(in.ToPrice),
	}
	if !q.Priced {
		return q
	}

	q.Rate = in.FromPrice / in.ToPrice
	q.QuotedOut = q.AmountIn * in.FromPrice / in.ToPrice
	q.MinReceived = q.QuotedOut * (1 - in.Slippage/100)
	return q
}

// ParseAmount reads a decimal amount; anything unparsable or non-finite is 0
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// RateText renders "1 FROM = v TO"; ok is false while either price is unknown
func (q Quote) RateText() (string, bool) {
	if !q.Priced {
		return "", false
	}
	return fmt.Sprintf("1 %s = %s %s", q.FromSymbol, ToPrecision(q.Rate, RateDigits), q.ToSymbol), true
}

// OutText is the read-only "to" amount; empty when there is nothing to show
func (q Quote) OutText() string {
	if q.AmountIn == 0 || !q.Priced {
		return ""
	}
	return FormatAmount(q.QuotedOut)
}

// MinReceivedText renders the minimum received, or "--" when zero
func (q Quote) MinReceivedText() string {
	if q.MinReceived == 0 {
		return "--"
	}
	return FormatAmount(q.MinReceived)
}

// FormatAmount renders v with AmountPlaces decimals
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "--"
	}
	return decimal.NewFromFloat(v).StringFixed(AmountPlaces)
}

// ToPrecision formats v with p significant digits, switching to exponent
// notation for very large or very small magnitudes.
func ToPrecision(v float64, p int) string {
	if p < 1 {
		p = 1
	}
	if v == 0 {
		return strconv.FormatFloat(0, 'f', p-1, 64)
	}

	sci := strconv.FormatFloat(v, 'e', p-1, 64)
	idx := strings.IndexByte(sci, 'e')
	exp, _ := strconv.Atoi(sci[idx+1:])

	if exp < -6 || exp >= p {
		sign := "+"
		if exp < 0 {
			sign = "-"
			exp = -exp
		}
		return sci[:idx] + "e" + sign + strconv.Itoa(exp)
	}
	return strconv.FormatFloat(v, 'f', p-1-exp, 64)
}

func known(p float64) bool {
	return p > 0 && !math.IsInf(p, 0) && !math.IsNaN(p)
}
