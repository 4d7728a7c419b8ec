package swap

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFailureRateConverges(t *testing.T) {
	sim := NewSimulator(DefaultSimulatorConfig(),
		WithRand(rand.New(rand.NewPCG(7, 11))),
		WithSleep(func(time.Duration) {}),
	)

	const trials = 10000
	failures := 0
	for i := 0; i < trials; i++ {
		if sim.Run().Failed {
			failures++
		}
	}

	rate := float64(failures) / trials
	assert.InDelta(t, 0.05, rate, 0.01)
}

func TestDelayStaysInRange(t *testing.T) {
	var slept []time.Duration
	sim := NewSimulator(DefaultSimulatorConfig(),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithSleep(func(d time.Duration) { slept = append(slept, d) }),
	)

	for i := 0; i < 500; i++ {
		out := sim.Run()
		assert.GreaterOrEqual(t, out.Delay, DefaultMinDelay)
		assert.Less(t, out.Delay, DefaultMaxDelay)
	}
	assert.Len(t, slept, 500)
}

func TestForcedOutcomes(t *testing.T) {
	noSleep := WithSleep(func(time.Duration) {})

	always := NewSimulator(SimulatorConfig{FailureRate: 1}, noSleep)
	assert.True(t, always.Run().Failed)

	never := NewSimulator(SimulatorConfig{FailureRate: 0}, noSleep, WithTxHash(func() string { return "0xabc" }))
	out := never.Run()
	assert.False(t, out.Failed)
	assert.Equal(t, "0xabc", out.TxHash)
}

func TestDefaultTxHashIsOpaqueAndUnique(t *testing.T) {
	a, b := mockTxHash(), mockTxHash()
	assert.Len(t, a, 34)
	assert.NotEqual(t, a, b)
}

func TestSimulatorConfigValidate(t *testing.T) {
	require.NoError(t, DefaultSimulatorConfig().Validate())
	assert.Error(t, SimulatorConfig{FailureRate: 1.5}.Validate())
	assert.Error(t, SimulatorConfig{MinDelay: time.Second, MaxDelay: time.Millisecond}.Validate())
}
