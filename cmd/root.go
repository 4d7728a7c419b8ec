package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"swap-sim/config"
	"swap-sim/pkg/logging"
)

var rootCmd = &cobra.Command{
	Use:   "swap-sim",
	Short: "A simulated token swap form with live prices",
	Long: `swap-sim is a command-line swap form. It prices a small set of tokens from
public price feeds (falling back to a built-in table), computes quotes with a
slippage tolerance and simulates the submission of a swap. Nothing is ever
traded.

Examples:
  swap-sim app
  swap-sim quote 1.5 ETH to USDC --slippage 1
  swap-sim swap 1.5 ETH to USDC --yes
  swap-sim prices --watch --interval 10
  swap-sim list-tokens --search us`,
	Version: "0.1.0",
}

// Execute runs the root command; Ctrl+C cancels the command context
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")
}

// loadConfig fetches the process configuration and applies the log level.
// --verbose forces debug logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Get()
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = "debug"
	}
	logging.SetLevel(level)
	return cfg, nil
}

func printJSON(v any) {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	fmt.Println(string(jsonData))
}

func printError(err error) {
	fmt.Printf("\nError: %v\n\n", err)
}

func printSuccess(message string) {
	fmt.Printf("\n%s\n\n", message)
}
