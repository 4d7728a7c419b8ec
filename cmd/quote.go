package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-sim/pkg/parser"
	"swap-sim/pkg/quote"
	"swap-sim/pkg/swap"
)

var quoteSlippage float64

var quoteCmd = &cobra.Command{
	Use:   "quote <amount> <source-token> to <dest-token>",
	Short: "Price a swap without submitting it",
	Long: `Fetch current prices and show what a swap would return.

Examples:
  swap-sim quote 1.5 ETH to USDC
  swap-sim quote .25 SOL to BTC --slippage 1
  swap-sim quote 100 USDC to ETH --json`,
	Args: cobra.MinimumNArgs(1),
	Run:  runQuote,
}

func init() {
	rootCmd.AddCommand(quoteCmd)

	quoteCmd.Flags().Float64VarP(&quoteSlippage, "slippage", "s", 0, "Slippage tolerance in percent (default from config)")
}

// quoteOutput is the JSON shape shared by quote and swap
type quoteOutput struct {
	SourceToken string  `json:"source_token"`
	DestToken   string  `json:"dest_token"`
	AmountIn    string  `json:"amount_in"`
	QuotedOut   float64 `json:"quoted_out"`
	MinReceived float64 `json:"min_received"`
	Rate        float64 `json:"rate"`
	RateText    string  `json:"rate_text"`
	Slippage    float64 `json:"slippage"`
	Priced      bool    `json:"priced"`
	Validation  string  `json:"validation,omitempty"`
	Status      string  `json:"status"`
	TxHash      string  `json:"tx_hash,omitempty"`
	Received    float64 `json:"received,omitempty"`
	Error       string  `json:"error,omitempty"`
}

func newQuoteOutput(v swap.View) quoteOutput {
	out := quoteOutput{
		SourceToken: v.From.Token.Symbol,
		DestToken:   v.To.Token.Symbol,
		AmountIn:    v.From.Amount,
		QuotedOut:   v.Quote.QuotedOut,
		MinReceived: v.Quote.MinReceived,
		Rate:        v.Quote.Rate,
		RateText:    v.Rate,
		Slippage:    v.Slippage,
		Priced:      v.Quote.Priced,
		Status:      "quote_generated",
	}
	if v.Validation != nil {
		out.Validation = v.Validation.Error()
	}
	return out
}

func runQuote(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	swapReq, err := parser.ParseSwapCommand(strings.Join(args, " "))
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	form, err := newForm(cfg, newResolver(cfg))
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if err := fillForm(form, swapReq); err != nil {
		printError(err)
		os.Exit(1)
	}
	if cmd.Flags().Changed("slippage") {
		if err := form.SetSlippage(quoteSlippage); err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	if err := loadPrices(cmd.Context(), form, jsonOutput); err != nil {
		printError(err)
		os.Exit(1)
	}

	v := form.Snapshot()
	if jsonOutput {
		printJSON(newQuoteOutput(v))
		return
	}

	displayQuote(v)
	if v.Validation != nil {
		color.Yellow("  %s\n", v.Validation)
	}
}

func displayQuote(v swap.View) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     SWAP QUOTE")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("\n  From:              %s %s\n", v.From.Amount, color.YellowString(v.From.Token.Symbol))
	if v.Quote.Priced {
		fmt.Printf("  To:                ~%s %s\n", quote.FormatAmount(v.Quote.QuotedOut), color.YellowString(v.To.Token.Symbol))
		fmt.Printf("  Rate:              %s\n", color.CyanString(v.Rate))
	} else {
		fmt.Printf("  To:                %s\n", color.YellowString(v.To.Token.Symbol))
		fmt.Printf("  Rate:              %s\n", color.HiBlackString(v.Rate))
	}
	fmt.Printf("  Slippage:          %s%%\n", strconv.FormatFloat(v.Slippage, 'f', 1, 64))
	fmt.Printf("  Min. received:     %s\n", v.MinReceived)

	fmt.Println("\n" + strings.Repeat("=", 60) + "\n")
}
