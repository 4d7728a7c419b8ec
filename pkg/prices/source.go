package prices

import (
	"context"
	"math"
)

// Map maps a lookup key to a USD price. Absent keys are unknown, never zero.
type Map map[string]float64

// Merge copies every entry of other into m, overwriting existing keys
func (m Map) Merge(other Map) {
	for k, v := range other {
		m[k] = v
	}
}

// Get returns the price for key when it is known and positive
func (m Map) Get(key string) (float64, bool) {
	if key == "" {
		return 0, false
	}
	v, ok := m[key]
	if !ok || !valid(v) {
		return 0, false
	}
	return v, true
}

// Source is one lookup strategy in the resolution chain
type Source interface {
	Name() string
	Fetch(ctx context.Context, keys []string) (Map, error)
}

func valid(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
