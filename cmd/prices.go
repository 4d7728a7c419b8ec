package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"swap-sim/pkg/prices"
	"swap-sim/pkg/tokens"
)

var (
	watchPrices   bool
	watchInterval int
)

var pricesCmd = &cobra.Command{
	Use:   "prices",
	Short: "Show the current USD price of every supported token",
	Long: `Resolve prices for every supported token and show which source answered.
Sources are tried in order: the bulk price list, the per-token price API and
finally the built-in table.

Examples:
  swap-sim prices
  swap-sim prices --watch
  swap-sim prices --watch --interval 10`,
	Args: cobra.NoArgs,
	Run:  runPrices,
}

func init() {
	rootCmd.AddCommand(pricesCmd)

	pricesCmd.Flags().BoolVarP(&watchPrices, "watch", "w", false, "Refresh prices continuously")
	pricesCmd.Flags().IntVar(&watchInterval, "interval", 30, "Refresh interval in seconds (when watching)")
}

// priceRow is one token's resolved price and the source that provided it
type priceRow struct {
	Symbol string  `json:"symbol"`
	Name   string  `json:"name"`
	Price  float64 `json:"price,omitempty"`
	Source string  `json:"source,omitempty"`
}

func runPrices(cmd *cobra.Command, args []string) {
	jsonOutput, _ := cmd.Flags().GetBool("json")

	cfg, err := loadConfig(cmd)
	if err != nil {
		printError(err)
		os.Exit(1)
	}
	if watchInterval <= 0 {
		printError(fmt.Errorf("interval must be positive, got %d", watchInterval))
		os.Exit(1)
	}

	resolver := newResolver(cfg)
	reg := tokens.Default()

	if watchPrices {
		watchPriceRows(cmd.Context(), resolver, reg, jsonOutput)
		return
	}

	var rows []priceRow
	withSpinner(" Fetching prices...", jsonOutput, func() {
		rows = fetchPriceRows(cmd.Context(), resolver, reg)
	})

	if jsonOutput {
		printJSON(rows)
	} else {
		displayPrices(rows)
	}
}

// fetchPriceRows resolves primary keys first, then alternate ids for any
// token left unpriced, remembering which source answered each key
func fetchPriceRows(ctx context.Context, r *prices.Resolver, reg *tokens.Registry) []priceRow {
	m, src := r.ResolveFrom(ctx, reg.Keys())
	sources := make(map[string]string, len(m))
	for k := range m {
		sources[k] = src
	}

	var missing []string
	for _, t := range reg.All() {
		if _, ok := prices.PriceOf(m, t); !ok && t.AltID != "" {
			missing = append(missing, t.AltID)
		}
	}
	if len(missing) > 0 {
		alt, altSrc := r.ResolveFrom(ctx, missing)
		for k := range alt {
			sources[k] = altSrc
		}
		m.Merge(alt)
	}

	rows := make([]priceRow, 0, reg.Len())
	for _, t := range reg.All() {
		row := priceRow{Symbol: t.Symbol, Name: t.Name}
		if v, ok := m.Get(t.Key); ok {
			row.Price, row.Source = v, sources[t.Key]
		} else if v, ok := m.Get(t.AltID); ok {
			row.Price, row.Source = v, sources[t.AltID]
		}
		rows = append(rows, row)
	}
	return rows
}

func watchPriceRows(ctx context.Context, r *prices.Resolver, reg *tokens.Registry, jsonOutput bool) {
	if jsonOutput {
		fmt.Println(`{"error": "watch mode not supported with JSON output"}`)
		os.Exit(1)
	}

	fmt.Printf("\nWatching prices for %d tokens\n", reg.Len())
	fmt.Printf("Refreshing every %d seconds. Press Ctrl+C to stop.\n", watchInterval)

	ticker := time.NewTicker(time.Duration(watchInterval) * time.Second)
	defer ticker.Stop()

	// Check immediately first
	displayPrices(fetchPriceRows(ctx, r, reg))

	for {
		select {
		case <-ctx.Done():
			fmt.Println("\nStopped watching.")
			return
		case <-ticker.C:
			displayPrices(fetchPriceRows(ctx, r, reg))
		}
	}
}

func displayPrices(rows []priceRow) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	color.Green("                     TOKEN PRICES (USD)")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("  %s\n\n", color.HiBlackString(time.Now().Format("15:04:05")))

	priced := 0
	for _, row := range rows {
		if row.Source == "" {
			fmt.Printf("  %-10s %-12s %s\n", color.YellowString(row.Symbol), row.Name, color.RedString("unavailable"))
			continue
		}
		priced++
		fmt.Printf("  %-10s %-12s %14s  %s\n",
			color.YellowString(row.Symbol),
			row.Name,
			fmt.Sprintf("$%.4f", row.Price),
			color.HiBlackString(row.Source))
	}

	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Printf("\nPriced: %d of %d tokens\n\n", priced, len(rows))
}
