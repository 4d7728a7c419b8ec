package prices

import (
	"context"
	"net/url"
	"strings"

	"swap-sim/pkg/client"
)

// DefaultSimpleURL serves USD prices keyed by alternate identifier
const DefaultSimpleURL = "https://api.coingecko.com/api/v3/simple/price"

// SimpleSource queries per-identifier USD prices
type SimpleSource struct {
	client  *client.Client
	baseURL string
}

// NewSimpleSource creates the secondary source
func NewSimpleSource(c *client.Client, baseURL string) *SimpleSource {
	if baseURL == "" {
		baseURL = DefaultSimpleURL
	}
	return &SimpleSource{client: c, baseURL: baseURL}
}

func (s *SimpleSource) Name() string { return "simple" }

// Fetch accepts only numeric usd values for identifiers that were requested
func (s *SimpleSource) Fetch(ctx context.Context, ids []string) (Map, error) {
	if len(ids) == 0 {
		return Map{}, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))
	q.Set("vs_currencies", "usd")

	var body map[string]map[string]any
	if err := s.client.GetJSON(ctx, s.baseURL+"?"+q.Encode(), &body); err != nil {
		return nil, err
	}

	out := make(Map)
	for _, id := range ids {
		quote, ok := body[id]
		if !ok {
			continue
		}
		if usd, ok := quote["usd"].(float64); ok && valid(usd) {
			out[id] = usd
		}
	}
	return out, nil
}
