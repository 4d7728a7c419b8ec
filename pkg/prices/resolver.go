package prices

import (
	"context"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"swap-sim/pkg/client"
	"swap-sim/pkg/logging"
	"swap-sim/pkg/tokens"
)

// Resolver tries its sources in order and stops at the first one that yields
// at least one price. Source failures are logged and skipped.
type Resolver struct {
	sources []Source
	log     zerolog.Logger
}

// NewResolver builds a resolution chain from sources in priority order
func NewResolver(sources ...Source) *Resolver {
	return &Resolver{
		sources: sources,
		log:     logging.New("prices"),
	}
}

// Options configures the default chain
type Options struct {
	BulkURL    string
	SimpleURL  string
	Timeout    time.Duration // ignored when HTTPClient is set
	HTTPClient *http.Client  // shared by both remote sources
	SimpleRate float64       // requests per second, zero disables throttling
	Breaker    BreakerSettings
}

// NewDefaultResolver wires bulk -> simple -> static with breakers on the remote sources
func NewDefaultResolver(opts Options) *Resolver {
	log := logging.New("prices")

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}

	bulkClient := client.New(client.WithHTTPClient(hc), client.WithNoCache())

	simpleOpts := []client.Option{client.WithHTTPClient(hc)}
	if opts.SimpleRate > 0 {
		simpleOpts = append(simpleOpts, client.WithLimiter(rate.NewLimiter(rate.Limit(opts.SimpleRate), 1)))
	}
	simpleClient := client.New(simpleOpts...)

	r := NewResolver(
		Guard(NewBulkSource(bulkClient, opts.BulkURL), opts.Breaker, log),
		Guard(NewSimpleSource(simpleClient, opts.SimpleURL), opts.Breaker, log),
		NewStaticSource(nil),
	)
	r.log = log
	return r
}

// Resolve never fails; on total failure the result may be empty
func (r *Resolver) Resolve(ctx context.Context, keys []string) Map {
	m, _ := r.ResolveFrom(ctx, keys)
	return m
}

// ResolveFrom is Resolve that also names the source that answered
func (r *Resolver) ResolveFrom(ctx context.Context, keys []string) (Map, string) {
	keys = dedupe(keys)
	if len(keys) == 0 {
		return Map{}, ""
	}

	for _, src := range r.sources {
		found, err := r.try(ctx, src, keys)
		if err != nil {
			r.log.Debug().Err(err).Str("source", src.Name()).Msg("price source failed")
			continue
		}
		r.log.Debug().Str("source", src.Name()).Int("requested", len(keys)).Int("matched", len(found)).Msg("price source answered")
		if len(found) > 0 {
			return found, src.Name()
		}
	}
	return Map{}, ""
}

func (r *Resolver) try(ctx context.Context, src Source, keys []string) (m Map, err error) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Str("source", src.Name()).Msg("price source panicked")
			m, err = nil, nil
		}
	}()

	got, err := src.Fetch(ctx, keys)
	if err != nil {
		return nil, err
	}

	out := make(Map, len(got))
	for _, k := range keys {
		if v, ok := got.Get(k); ok {
			out[k] = v
		}
	}
	return out, nil
}

// Lookup is the capability the form depends on
type Lookup interface {
	Resolve(ctx context.Context, keys []string) Map
}

// ResolveRegistry resolves the bulk keys first, then asks again with alternate
// identifiers for any token still unpriced.
func ResolveRegistry(ctx context.Context, l Lookup, reg *tokens.Registry) Map {
	out := l.Resolve(ctx, reg.Keys())

	var missing []string
	for _, t := range reg.All() {
		if _, ok := PriceOf(out, t); !ok && t.AltID != "" {
			missing = append(missing, t.AltID)
		}
	}
	if len(missing) > 0 {
		out.Merge(l.Resolve(ctx, missing))
	}
	return out
}

// PriceOf finds a token's price under either identifier scheme
func PriceOf(m Map, t tokens.Token) (float64, bool) {
	if v, ok := m.Get(t.Key); ok {
		return v, true
	}
	return m.Get(t.AltID)
}

func dedupe(keys []string) []string {
	seen := make(map[string]bool, len(keys))
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if k == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
