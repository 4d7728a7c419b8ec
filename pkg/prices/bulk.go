package prices

import (
	"context"
	"strconv"
	"strings"

	"swap-sim/pkg/client"
)

// DefaultBulkURL serves a list of current prices keyed by currency code
const DefaultBulkURL = "https://interview.switcheo.com/prices.json"

type bulkEntry struct {
	Currency string `json:"currency"`
	Price    string `json:"price"`
}

// BulkSource reads a single list of (currency, price) pairs
type BulkSource struct {
	client *client.Client
	url    string
}

// NewBulkSource creates the primary source
func NewBulkSource(c *client.Client, url string) *BulkSource {
	if url == "" {
		url = DefaultBulkURL
	}
	return &BulkSource{client: c, url: url}
}

func (s *BulkSource) Name() string { return "bulk" }

// Fetch matches currency codes case-insensitively; the first entry for a code wins
func (s *BulkSource) Fetch(ctx context.Context, keys []string) (Map, error) {
	var entries []bulkEntry
	if err := s.client.GetJSON(ctx, s.url, &entries); err != nil {
		return nil, err
	}

	out := make(Map)
	for _, key := range keys {
		for _, e := range entries {
			if !strings.EqualFold(e.Currency, key) {
				continue
			}
			price, err := strconv.ParseFloat(strings.TrimSpace(e.Price), 64)
			if err == nil && valid(price) {
				out[key] = price
			}
			break
		}
	}
	return out, nil
}
