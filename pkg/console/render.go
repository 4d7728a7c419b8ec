package console

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"swap-sim/pkg/picker"
	"swap-sim/pkg/quote"
	"swap-sim/pkg/swap"
	"swap-sim/pkg/types"
)

const width = 60

var (
	title   = color.New(color.FgGreen)
	accent  = color.New(color.FgCyan)
	symbol  = color.New(color.FgYellow)
	muted   = color.New(color.FgHiBlack)
	alert   = color.New(color.FgRed)
	success = color.New(color.FgGreen)
	warn    = color.New(color.FgYellow)
)

// Render writes the whole form, including any open picker
func Render(w io.Writer, v swap.View, pickers ...*picker.Picker) {
	fmt.Fprintln(w, "\n"+strings.Repeat("=", width))
	title.Fprintln(w, "                     SWAP ASSETS")
	fmt.Fprintln(w, strings.Repeat("=", width))

	renderSide(w, "From", v.From, "Amount", v.From.Amount)
	for _, p := range pickers {
		if p.ID() == string(types.SideFrom) {
			RenderPicker(w, p)
		}
	}
	field(w, "Slippage", strconv.FormatFloat(v.Slippage, 'f', 1, 64)+"%")

	renderSide(w, "To", v.To, "You receive (est.)", v.To.Amount)
	for _, p := range pickers {
		if p.ID() == string(types.SideTo) {
			RenderPicker(w, p)
		}
	}

	if v.RateReady {
		field(w, "Rate", accent.Sprint(v.Rate))
	} else {
		field(w, "Rate", muted.Sprint(v.Rate))
	}
	field(w, "Min. received", v.MinReceived)
	if v.Loading {
		muted.Fprintln(w, "  Refreshing prices…")
	}

	if v.Error != "" {
		fmt.Fprintln(w)
		alert.Fprintf(w, "  %s\n", v.Error)
	}
	if v.Result != nil {
		fmt.Fprintln(w)
		success.Fprintf(w, "  Swap complete! Received approximately %s %s.\n",
			quote.FormatAmount(v.Result.Received), v.To.Token.Symbol)
		fmt.Fprintf(w, "  Mock tx hash: %s\n", muted.Sprint(v.Result.TxHash))
	}

	refresh := "Refresh prices"
	if !v.CanRefresh() {
		refresh = muted.Sprint(refresh)
	}
	fmt.Fprintf(w, "\n  [ %s ]   [ %s ]\n", v.ButtonLabel(), refresh)
	fmt.Fprintln(w, strings.Repeat("=", width))
}

func renderSide(w io.Writer, label string, s types.Side, amountLabel, amount string) {
	if amount == "" {
		amount = muted.Sprint("0.00")
	}
	fmt.Fprintf(w, "\n  %-6s [%s ▾]     Balance: %s %s\n", label, symbol.Sprint(s.Token.Symbol),
		strconv.FormatFloat(s.Balance, 'f', -1, 64), s.Token.Symbol)
	field(w, amountLabel, amount)
}

func field(w io.Writer, label, value string) {
	fmt.Fprintf(w, "  %-20s%s\n", label+":", value)
}

// RenderPicker lists the open picker's options; a closed picker renders nothing
func RenderPicker(w io.Writer, p *picker.Picker) {
	if !p.IsOpen() {
		return
	}
	fmt.Fprintf(w, "    +-- select %s token  search: %q\n", p.ID(), p.Query())
	opts := p.Options()
	if len(opts) == 0 {
		fmt.Fprintln(w, "    |   (no matches)")
	}
	for _, o := range opts {
		marker := " "
		if o.Active {
			marker = "*"
		}
		fmt.Fprintf(w, "    | %s %-6s %-10s %s\n", marker, symbol.Sprint(o.Token.Symbol), o.Token.Name,
			muted.Sprintf("#%d", o.Token.Decimals))
	}
	fmt.Fprintln(w, "    +--")
}

// Notice prints a short advisory line
func Notice(w io.Writer, msg string) {
	warn.Fprintf(w, "  %s\n", msg)
}

// Problem prints an error line
func Problem(w io.Writer, err error) {
	alert.Fprintf(w, "  Error: %v\n", err)
}
