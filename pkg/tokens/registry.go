package tokens

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownToken is returned when a symbol is not in the registry
var ErrUnknownToken = errors.New("unknown token")

// Token describes a swappable asset
type Token struct {
	Symbol   string `json:"symbol"`
	Name     string `json:"name"`
	Key      string `json:"key"`    // bulk price list currency code
	AltID    string `json:"alt_id"` // per-identifier price lookup id
	Decimals int    `json:"decimals"`
	Icon     string `json:"icon"`
}

// Label renders the token as "Name (SYMBOL)"
func (t Token) Label() string {
	return fmt.Sprintf("%s (%s)", t.Name, t.Symbol)
}

// Matches reports whether query is a case-insensitive substring of the symbol or name.
// An empty query matches everything.
func (t Token) Matches(query string) bool {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(t.Symbol), q) ||
		strings.Contains(strings.ToLower(t.Name), q)
}

// Registry is an ordered, read-only list of supported tokens
type Registry struct {
	tokens      []Token
	defaultFrom string
	defaultTo   string
}

// NewRegistry creates a registry; symbols must be unique and the defaults must be present
func NewRegistry(list []Token, defaultFrom, defaultTo string) (*Registry, error) {
	seen := make(map[string]bool, len(list))
	for _, t := range list {
		sym := strings.ToUpper(t.Symbol)
		if sym == "" {
			return nil, fmt.Errorf("token %q has no symbol", t.Name)
		}
		if seen[sym] {
			return nil, fmt.Errorf("duplicate token symbol %s", t.Symbol)
		}
		seen[sym] = true
	}

	r := &Registry{
		tokens:      append([]Token(nil), list...),
		defaultFrom: defaultFrom,
		defaultTo:   defaultTo,
	}
	if _, err := r.Lookup(defaultFrom); err != nil {
		return nil, fmt.Errorf("default from token: %w", err)
	}
	if _, err := r.Lookup(defaultTo); err != nil {
		return nil, fmt.Errorf("default to token: %w", err)
	}
	return r, nil
}

// Default returns the built-in registry
func Default() *Registry {
	return &Registry{
		tokens: []Token{
			{Symbol: "ETH", Name: "Ethereum", Key: "ETH", AltID: "ethereum", Decimals: 18, Icon: "/tokens/ETH.svg"},
			{Symbol: "BTC", Name: "Bitcoin", Key: "BTC", AltID: "bitcoin", Decimals: 8, Icon: "/tokens/BTC.svg"},
			{Symbol: "USDC", Name: "USD Coin", Key: "USDC", AltID: "usd-coin", Decimals: 6, Icon: "/tokens/USDC.svg"},
			{Symbol: "SOL", Name: "Solana", Key: "SOL", AltID: "solana", Decimals: 9, Icon: "/tokens/SOL.svg"},
			{Symbol: "MATIC", Name: "Polygon", Key: "MATIC", AltID: "matic-network", Decimals: 18, Icon: "/tokens/MATIC.svg"},
		},
		defaultFrom: "ETH",
		defaultTo:   "USDC",
	}
}

// All returns a copy of every token in registry order
func (r *Registry) All() []Token {
	return append([]Token(nil), r.tokens...)
}

// Len returns the number of tokens
func (r *Registry) Len() int {
	return len(r.tokens)
}

// Lookup finds a token by symbol, ignoring case
func (r *Registry) Lookup(symbol string) (Token, error) {
	symbol = strings.TrimSpace(symbol)
	for _, t := range r.tokens {
		if strings.EqualFold(t.Symbol, symbol) {
			return t, nil
		}
	}
	return Token{}, fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
}

// Filter returns the tokens matching query, preserving registry order
func (r *Registry) Filter(query string) []Token {
	out := make([]Token, 0, len(r.tokens))
	for _, t := range r.tokens {
		if t.Matches(query) {
			out = append(out, t)
		}
	}
	return out
}

// DefaultFrom returns the initial "from" selection
func (r *Registry) DefaultFrom() Token {
	t, _ := r.Lookup(r.defaultFrom)
	return t
}

// DefaultTo returns the initial "to" selection
func (r *Registry) DefaultTo() Token {
	t, _ := r.Lookup(r.defaultTo)
	return t
}

// Keys returns every non-empty bulk price key
func (r *Registry) Keys() []string {
	keys := make([]string, 0, len(r.tokens))
	for _, t := range r.tokens {
		if t.Key != "" {
			keys = append(keys, t.Key)
		}
	}
	return keys
}

// AltIDs returns every non-empty alternate identifier
func (r *Registry) AltIDs() []string {
	ids := make([]string, 0, len(r.tokens))
	for _, t := range r.tokens {
		if t.AltID != "" {
			ids = append(ids, t.AltID)
		}
	}
	return ids
}
