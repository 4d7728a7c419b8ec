package picker

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"swap-sim/pkg/tokens"
)

var (
	ErrNotOpen      = errors.New("token picker is not open")
	ErrNoSuchOption = errors.New("no such option in the list")
)

// Region is an addressable area of the screen. A picker owns its trigger,
// its overlay and everything inside the overlay.
type Region string

// Option is a row in the picker list
type Option struct {
	Token  tokens.Token
	Active bool
}

// Picker is a searchable token selector with its own open state and query.
// Instances share nothing but the registry.
type Picker struct {
	id       string
	registry *tokens.Registry
	current  func() tokens.Token
	onSelect func(tokens.Token)

	mu    sync.Mutex
	open  bool
	query string
}

// New creates a closed picker. current reports the side's selection and
// onSelect receives the chosen token.
func New(id string, reg *tokens.Registry, current func() tokens.Token, onSelect func(tokens.Token)) *Picker {
	return &Picker{id: id, registry: reg, current: current, onSelect: onSelect}
}

// ID returns the picker's identifier
func (p *Picker) ID() string { return p.id }

// Trigger is the region of the toggle control
func (p *Picker) Trigger() Region { return Region(p.id + ".trigger") }

// Overlay is the region of the open list
func (p *Picker) Overlay() Region { return Region(p.id + ".overlay") }

// Search is the filter input inside the overlay
func (p *Picker) Search() Region { return Region(p.id + ".overlay.search") }

// OptionRegion addresses a row inside the overlay
func (p *Picker) OptionRegion(symbol string) Region {
	return Region(fmt.Sprintf("%s.overlay.option.%s", p.id, symbol))
}

// Owns reports whether r is the trigger, the overlay or inside the overlay
func (p *Picker) Owns(r Region) bool {
	s := string(r)
	trigger, overlay := string(p.Trigger()), string(p.Overlay())
	return s == trigger || s == overlay || (len(s) > len(overlay) && s[:len(overlay)+1] == overlay+".")
}

// Toggle flips the open state, as clicking the trigger does
func (p *Picker) Toggle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = !p.open
}

// Close hides the overlay without changing the selection
func (p *Picker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
}

// IsOpen reports the visibility of the overlay
func (p *Picker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

// Focus returns the region holding input focus, empty when closed
func (p *Picker) Focus() Region {
	if !p.IsOpen() {
		return ""
	}
	return p.Search()
}

// HandleClick closes the picker when the click lands outside its regions.
// It returns true if the picker was closed by this click.
func (p *Picker) HandleClick(target Region) bool {
	if p.Owns(target) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	wasOpen := p.open
	p.open = false
	return wasOpen
}

// SetQuery updates the filter text
func (p *Picker) SetQuery(q string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.open {
		return ErrNotOpen
	}
	p.query = q
	return nil
}

// Query returns the current filter text
func (p *Picker) Query() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

// Options lists the tokens matching the query, marking the current selection
func (p *Picker) Options() []Option {
	q := p.Query()
	sel := p.current()

	list := p.registry.Filter(q)
	out := make([]Option, 0, len(list))
	for _, t := range list {
		out = append(out, Option{Token: t, Active: t.Symbol == sel.Symbol})
	}
	return out
}

// Choose selects a visible option, clears the query and closes the picker
func (p *Picker) Choose(symbol string) error {
	if !p.IsOpen() {
		return ErrNotOpen
	}

	var chosen *tokens.Token
	for _, o := range p.Options() {
		if strings.EqualFold(o.Token.Symbol, symbol) {
			t := o.Token
			chosen = &t
			break
		}
	}
	if chosen == nil {
		return fmt.Errorf("%w: %s", ErrNoSuchOption, symbol)
	}

	p.mu.Lock()
	p.query = ""
	p.open = false
	p.mu.Unlock()

	if p.onSelect != nil {
		p.onSelect(*chosen)
	}
	return nil
}
