package cmd

import (
	"context"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"

	"swap-sim/config"
	"swap-sim/pkg/prices"
	"swap-sim/pkg/swap"
	"swap-sim/pkg/tokens"
	"swap-sim/pkg/types"
)

func newResolver(cfg *config.Config) *prices.Resolver {
	return prices.NewDefaultResolver(prices.Options{
		BulkURL:    cfg.PrimaryPriceURL,
		SimpleURL:  cfg.SecondaryPriceURL,
		Timeout:    cfg.HTTPTimeout,
		SimpleRate: cfg.SecondaryRateLimit,
		Breaker: prices.BreakerSettings{
			ConsecutiveFailures: cfg.BreakerFailures,
			Cooldown:            cfg.BreakerCooldown,
		},
	})
}

func newSimulator(cfg *config.Config) (*swap.Simulator, error) {
	sc := swap.SimulatorConfig{
		FailureRate: cfg.FailureRate,
		MinDelay:    cfg.MinDelay,
		MaxDelay:    cfg.MaxDelay,
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return swap.NewSimulator(sc), nil
}

func newForm(cfg *config.Config, lookup prices.Lookup) (*swap.Form, error) {
	sim, err := newSimulator(cfg)
	if err != nil {
		return nil, err
	}
	return swap.NewForm(tokens.Default(), lookup, sim, swap.Config{
		FromBalance: cfg.FromBalance,
		ToBalance:   cfg.ToBalance,
		Slippage:    cfg.Slippage,
	})
}

// fillForm applies a parsed "<amount> <token> to <token>" request to the form
func fillForm(form *swap.Form, req *types.SwapRequest) error {
	if err := form.Select(types.SideFrom, req.SourceToken); err != nil {
		return err
	}
	if err := form.Select(types.SideTo, req.DestToken); err != nil {
		return err
	}
	form.SetAmount(req.Amount)
	return nil
}

// loadPrices refreshes the form's prices behind a spinner
func loadPrices(ctx context.Context, form *swap.Form, quiet bool) error {
	var err error
	withSpinner(" Fetching prices...", quiet, func() {
		err = form.RefreshPrices(ctx)
	})
	return err
}

// withSpinner runs fn, animating a spinner on stderr when attached to a terminal
func withSpinner(suffix string, quiet bool, fn func()) {
	if quiet || !interactive() {
		fn()
		return
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = suffix
	s.Start()
	defer s.Stop()
	fn()
}

func interactive() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
