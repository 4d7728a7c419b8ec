package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-sim/pkg/parser"
	"swap-sim/pkg/quote"
	"swap-sim/pkg/swap"
	"swap-sim/pkg/types"
)

var (
	swapSlippage float64
	swapBalance  float64
	noConfirm    bool
)

var swapCmd = &cobra.Command{
	Use:   "swap <amount> <source-token> to <dest-token>",
	Short: "Submit a simulated swap",
	Long: `Quote a swap and submit it to the simulator. The simulated submission takes
between min_delay and max_delay (1.2 to 2.4 seconds by default) and fails at
the configured failure_rate (5% by default).

Examples:
  swap-sim swap 1.5 ETH to USDC
  swap-sim swap 0.5 ETH to BTC --slippage 1 --yes
  swap-sim swap 500 USDC to SOL --balance 1000`,
	Args: cobra.MinimumNArgs(1),
	Run:  runSwap,
}

func init() {
	rootCmd.AddCommand(swapCmd)

	swapCmd.Flags().Float64VarP(&swapSlippage, "slippage", "s", 0, "Slippage tolerance in percent (default from config)")
	swapCmd.Flags().Float64Var(&swapBalance, "balance", 0, "Balance of the source token (default from config)")
	swapCmd.Flags().BoolVarP(&noConfirm, "yes", "y", false, "Skip confirmation prompt")
}

func runSwap(cmd *cobra.Command, args []string) {
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
	if cmd.Flags().Changed("balance") {
		cfg.FromBalance = swapBalance
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
		if err := form.SetSlippage(swapSlippage); err != nil {
			printError(err)
			os.Exit(1)
		}
	}

	if err := loadPrices(cmd.Context(), form, jsonOutput); err != nil {
		printError(err)
		os.Exit(1)
	}

	v := form.Snapshot()
	if !jsonOutput {
		displayQuote(v)
	}
	if v.Validation != nil {
		if jsonOutput {
			printJSON(newQuoteOutput(v))
		} else {
			printError(v.Validation)
		}
		os.Exit(1)
	}

	// Ask for confirmation
	if !noConfirm && !jsonOutput {
		if !confirmSwap() {
			fmt.Println("\nSwap cancelled.")
			os.Exit(0)
		}
	}

	done, err := form.Submit()
	if err != nil {
		printError(err)
		os.Exit(1)
	}

	var state types.SubmitState
	withSpinner(" Swapping...", jsonOutput, func() { state = <-done })

	final := form.Snapshot()
	if jsonOutput {
		out := newQuoteOutput(v)
		out.Status = string(state)
		out.Error = final.Error
		if final.Result != nil {
			out.TxHash = final.Result.TxHash
			out.Received = final.Result.Received
		}
		printJSON(out)
		if state == types.StateFailed {
			os.Exit(1)
		}
		return
	}

	if state == types.StateFailed {
		color.Red("\n%s\n", swap.FailureMessage)
		os.Exit(1)
	}
	displayResult(final)
}

func displayResult(v swap.View) {
	color.Green("\n✓ Swap complete! Received approximately %s %s.",
		quote.FormatAmount(v.Result.Received), v.To.Token.Symbol)
	printSuccess(fmt.Sprintf("  Mock tx hash: %s", color.CyanString(v.Result.TxHash)))
}

func confirmSwap() bool {
	reader := bufio.NewReader(os.Stdin)
	fmt.Print("\nProceed with swap? (y/N): ")

	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}
