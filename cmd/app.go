package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"swap-sim/pkg/console"
)

var awaitPrices bool

var appCmd = &cobra.Command{
	Use:     "app",
	Aliases: []string{"ui", "form"},
	Short:   "Open the interactive swap form",
	Long: `Open the swap form in the terminal. Prices load in the background; type
'help' inside the form for the list of commands.

Examples:
  swap-sim app
  swap-sim app --await-prices=false`,
	Args: cobra.NoArgs,
	Run:  runApp,
}

func init() {
	rootCmd.AddCommand(appCmd)

	appCmd.Flags().BoolVar(&awaitPrices, "await-prices", true, "Wait for the first price load before drawing the form")
}

func runApp(cmd *cobra.Command, args []string) {
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

	session := console.NewSession(form, os.Stdin, os.Stdout,
		console.WithSpinner(interactive()),
		console.WithAwaitPrices(awaitPrices))
	if err := session.Run(cmd.Context()); err != nil {
		printError(err)
		os.Exit(1)
	}
	printSuccess("Bye.")
}
