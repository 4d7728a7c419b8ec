package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"

	"swap-sim/pkg/logging"
	"swap-sim/pkg/parser"
	"swap-sim/pkg/picker"
	"swap-sim/pkg/swap"
	"swap-sim/pkg/types"
)

const helpText = `
Commands:
  amount <value>            set the amount to swap (empty clears it)
  slippage <pct>            set slippage tolerance (0.1 - 3.0)
  flip                      swap the from/to sides
  pick from|to              open or close a token picker
  search <text>             filter the open picker
  choose <symbol>           select a token from the open picker
  click <region>            interact with any other region (closes pickers)
  fill <amt> <tok> to <tok> fill the form in one go
  refresh                   re-fetch prices in the background
  swap [<amt> <tok> to <tok>]  submit the simulated swap in the background
  show                      redraw the form
  help                      show this help
  quit                      leave
`

// Session drives a Form from line-oriented input. Price refreshes and
// submissions run in the background; the form is redrawn when they finish.
type Session struct {
	form        *swap.Form
	in          io.Reader
	out         io.Writer
	animate     bool
	awaitPrices bool
	log         zerolog.Logger

	mu      sync.Mutex // serialises writes to out
	pending sync.WaitGroup
}

// Option configures a Session
type Option func(*Session)

// WithSpinner animates waits; only useful on a terminal
func WithSpinner(on bool) Option {
	return func(s *Session) { s.animate = on }
}

// WithAwaitPrices holds the first prompt until the initial prices arrive
func WithAwaitPrices(on bool) Option {
	return func(s *Session) { s.awaitPrices = on }
}

// NewSession creates a console session
func NewSession(form *swap.Form, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{form: form, in: in, out: out, log: logging.New("console")}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run mounts the form and processes commands until quit or end of input.
// On return, background price loads are cancelled and any submission in
// flight is allowed to settle.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer s.pending.Wait()
	defer cancel()

	if s.awaitPrices {
		mounted := s.form.Mount(ctx)
		s.spin(" Fetching prices...", func() { <-mounted })
	} else {
		s.follow(s.form.Mount(ctx), "Prices loaded.")
	}

	s.locked(func() {
		s.render()
		fmt.Fprintln(s.out, "Type 'help' for commands.")
	})

	scanner := bufio.NewScanner(s.in)
	for {
		s.locked(func() { fmt.Fprint(s.out, "> ") })
		if !scanner.Scan() {
			break
		}
		cmd, err := parser.ParseConsoleCommand(scanner.Text())
		if err != nil {
			s.locked(func() { Problem(s.out, err) })
			continue
		}
		quit, err := s.Execute(ctx, cmd)
		if err != nil {
			s.locked(func() { Problem(s.out, err) })
		}
		if quit {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return nil
}

// Execute applies one command. It returns true when the session should end.
func (s *Session) Execute(ctx context.Context, cmd *parser.Command) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug().Str("action", string(cmd.Action)).Str("arg", cmd.Arg).Msg("command")

	switch cmd.Action {
	case parser.ActQuit:
		return true, nil

	case parser.ActHelp:
		fmt.Fprint(s.out, helpText)
		return false, nil

	case parser.ActShow:

	case parser.ActAmount:
		s.form.SetAmount(cmd.Arg)

	case parser.ActSlippage:
		pct, err := strconv.ParseFloat(cmd.Arg, 64)
		if err != nil {
			return false, fmt.Errorf("invalid slippage %q", cmd.Arg)
		}
		if err := s.form.SetSlippage(pct); err != nil {
			return false, err
		}

	case parser.ActFlip:
		s.form.Flip()

	case parser.ActPick:
		s.form.TogglePicker(types.SideName(cmd.Arg))

	case parser.ActSearch:
		if err := s.form.Search(cmd.Arg); err != nil {
			return false, err
		}

	case parser.ActChoose:
		if err := s.form.Choose(cmd.Arg); err != nil {
			return false, err
		}

	case parser.ActClick:
		s.form.Click(picker.Region(cmd.Arg))

	case parser.ActFill:
		if err := s.fill(cmd); err != nil {
			return false, err
		}

	case parser.ActRefresh:
		done, err := s.form.StartRefresh(ctx)
		if err != nil {
			return false, err
		}
		s.follow(done, "Prices updated.")

	case parser.ActSubmit:
		if cmd.Swap != nil {
			if err := s.fill(cmd); err != nil {
				return false, err
			}
		}
		done, err := s.form.Submit()
		if err != nil {
			Notice(s.out, err.Error())
			return false, nil
		}
		s.background(func() string {
			return fmt.Sprintf("Swap %s.", <-done)
		})
	}

	s.render()
	return false, nil
}

func (s *Session) fill(cmd *parser.Command) error {
	if err := parser.ValidateSwapRequest(cmd.Swap); err != nil {
		return err
	}
	if err := s.form.Select(types.SideFrom, cmd.Swap.SourceToken); err != nil {
		return err
	}
	if err := s.form.Select(types.SideTo, cmd.Swap.DestToken); err != nil {
		return err
	}
	s.form.SetAmount(cmd.Swap.Amount)
	return nil
}

// follow redraws the form with a notice once done closes
func (s *Session) follow(done <-chan struct{}, notice string) {
	s.background(func() string {
		<-done
		return notice
	})
}

// background runs wait on a goroutine, then prints its notice and redraws
func (s *Session) background(wait func() string) {
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		notice := wait()
		s.locked(func() {
			fmt.Fprintln(s.out)
			Notice(s.out, notice)
			s.render()
			fmt.Fprint(s.out, "> ")
		})
	}()
}

func (s *Session) locked(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

func (s *Session) spin(suffix string, fn func()) {
	if !s.animate {
		fn()
		return
	}
	sp := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(s.out))
	sp.Suffix = suffix
	sp.Start()
	defer sp.Stop()
	fn()
}

func (s *Session) render() {
	Render(s.out, s.form.Snapshot(), s.form.Picker(types.SideFrom), s.form.Picker(types.SideTo))
}
