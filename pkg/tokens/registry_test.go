package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func labels(list []Token) []string {
	out := make([]string, 0, len(list))
	for _, t := range list {
		out = append(out, t.Label())
	}
	return out
}

func TestFilter(t *testing.T) {
	reg := Default()

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"empty returns full registry", "", []string{"ETH", "BTC", "USDC", "SOL", "MATIC"}},
		{"whitespace only", "   ", []string{"ETH", "BTC", "USDC", "SOL", "MATIC"}},
		{"symbol substring", "us", []string{"USDC"}},
		{"name substring any case", "BITC", []string{"BTC"}},
		{"matches several", "o", []string{"BTC", "USDC", "SOL", "MATIC"}},
		{"no match", "doge", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := make([]string, 0)
			for _, tok := range reg.Filter(tt.query) {
				got = append(got, tok.Symbol)
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterLabels(t *testing.T) {
	got := labels(Default().Filter("us"))
	assert.Contains(t, got, "USD Coin (USDC)")
	assert.NotContains(t, got, "Ethereum (ETH)")
}

func TestLookup(t *testing.T) {
	reg := Default()

	tok, err := reg.Lookup("usdc")
	require.NoError(t, err)
	assert.Equal(t, "usd-coin", tok.AltID)

	_, err = reg.Lookup("DOGE")
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestDefaultsAndKeys(t *testing.T) {
	reg := Default()
	assert.Equal(t, "ETH", reg.DefaultFrom().Symbol)
	assert.Equal(t, "USDC", reg.DefaultTo().Symbol)
	assert.Equal(t, []string{"ETH", "BTC", "USDC", "SOL", "MATIC"}, reg.Keys())
	assert.Equal(t, []string{"ethereum", "bitcoin", "usd-coin", "solana", "matic-network"}, reg.AltIDs())
}

func TestNewRegistryRejectsBadInput(t *testing.T) {
	_, err := NewRegistry([]Token{{Symbol: "A"}, {Symbol: "a"}}, "A", "A")
	assert.Error(t, err)

	_, err = NewRegistry([]Token{{Symbol: "A"}}, "A", "B")
	assert.ErrorIs(t, err, ErrUnknownToken)

	reg, err := NewRegistry([]Token{{Symbol: "A", Name: "Alpha"}, {Symbol: "B", Name: "Beta"}}, "A", "B")
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())
}
