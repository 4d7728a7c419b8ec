package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-sim/pkg/tokens"
)

var filterQuery string

var tokensCmd = &cobra.Command{
	Use:     "list-tokens",
	Aliases: []string{"tokens", "ls"},
	Short:   "List all supported tokens",
	Long: `List the tokens the swap form can trade.

The search matches symbol or name, case-insensitively, exactly like the token
picker in the interactive form.

Examples:
  swap-sim list-tokens
  swap-sim list-tokens --search us
  swap-sim list-tokens --search bit --json`,
	Args: cobra.NoArgs,
	Run:  runListTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&filterQuery, "search", "s", "", "Filter by symbol or name")
}

func runListTokens(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	reg := tokens.Default()
	filtered := reg.Filter(filterQuery)

	if jsonOutput {
		printJSON(filtered)
		return
	}
	displayTokens(reg, filtered)
}

func displayTokens(reg *tokens.Registry, list []tokens.Token) {
	if len(list) == 0 {
		fmt.Println("\nNo tokens found matching the criteria.")
		return
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	color.Green("                         SUPPORTED TOKENS")
	fmt.Println(strings.Repeat("=", 70))

	for _, t := range list {
		marker := " "
		switch t.Symbol {
		case reg.DefaultFrom().Symbol:
			marker = color.CyanString("<")
		case reg.DefaultTo().Symbol:
			marker = color.CyanString(">")
		}
		fmt.Printf("  %s %-10s %-10s #%-3d %-6s %s\n",
			marker,
			color.YellowString(t.Symbol),
			t.Name,
			t.Decimals,
			t.Key,
			color.HiBlackString(t.AltID))
	}

	fmt.Println("\n" + strings.Repeat("=", 70))
	fmt.Printf("\nTotal: %d of %d tokens  (< default from, > default to)\n\n", len(list), reg.Len())
}
