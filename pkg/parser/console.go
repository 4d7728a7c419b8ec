package parser

import (
	"fmt"
	"strings"

	"swap-sim/pkg/types"
)

// Action is a console verb
type Action string

const (
	ActAmount   Action = "amount"
	ActSlippage Action = "slippage"
	ActFlip     Action = "flip"
	ActPick     Action = "pick"
	ActSearch   Action = "search"
	ActChoose   Action = "choose"
	ActClick    Action = "click"
	ActFill     Action = "fill"
	ActRefresh  Action = "refresh"
	ActSubmit   Action = "submit"
	ActShow     Action = "show"
	ActHelp     Action = "help"
	ActQuit     Action = "quit"
)

// Command is one parsed console line
type Command struct {
	Action Action
	Arg    string
	Swap   *types.SwapRequest
}

var aliases = map[string]Action{
	"amt":    ActAmount,
	"slip":   ActSlippage,
	"open":   ActPick,
	"find":   ActSearch,
	"select": ActChoose,
	"swap":   ActSubmit,
	"prices": ActRefresh,
	"?":      ActHelp,
	"exit":   ActQuit,
	"q":      ActQuit,
}

// ParseConsoleCommand reads a single console line
func ParseConsoleCommand(line string) (*Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return &Command{Action: ActShow}, nil
	}

	verb, rest, _ := strings.Cut(line, " ")
	rest = strings.TrimSpace(rest)
	act := Action(strings.ToLower(verb))
	if a, ok := aliases[string(act)]; ok {
		act = a
	}

	switch act {
	case ActFlip, ActRefresh, ActShow, ActHelp, ActQuit:
		return &Command{Action: act}, nil

	case ActSubmit:
		// "swap 1 ETH to USDC" fills the form before submitting
		if rest == "" {
			return &Command{Action: act}, nil
		}
		req, err := ParseSwapCommand(rest)
		if err != nil {
			return nil, err
		}
		return &Command{Action: act, Swap: req}, nil

	case ActFill:
		req, err := ParseSwapCommand(rest)
		if err != nil {
			return nil, err
		}
		return &Command{Action: act, Swap: req}, nil

	case ActAmount, ActSearch:
		// an empty argument clears the field
		return &Command{Action: act, Arg: rest}, nil

	case ActPick:
		side := strings.ToLower(rest)
		if side != string(types.SideFrom) && side != string(types.SideTo) {
			return nil, fmt.Errorf("pick needs a side: 'pick from' or 'pick to'")
		}
		return &Command{Action: act, Arg: side}, nil

	case ActSlippage, ActChoose, ActClick:
		if rest == "" {
			return nil, fmt.Errorf("%s needs an argument", act)
		}
		if act == ActChoose {
			rest = NormalizeTokenSymbol(rest)
		}
		return &Command{Action: act, Arg: rest}, nil
	}

	return nil, fmt.Errorf("unknown command %q (type 'help')", verb)
}
