package swap

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultFailureRate = 0.05
	DefaultMinDelay    = 1200 * time.Millisecond
	DefaultMaxDelay    = 2400 * time.Millisecond
)

// SimulatorConfig holds the tunable parts of the fake network
type SimulatorConfig struct {
	FailureRate float64
	MinDelay    time.Duration
	MaxDelay    time.Duration
}

// DefaultSimulatorConfig returns a 5% failure rate and a 1.2s-2.4s delay
func DefaultSimulatorConfig() SimulatorConfig {
	return SimulatorConfig{
		FailureRate: DefaultFailureRate,
		MinDelay:    DefaultMinDelay,
		MaxDelay:    DefaultMaxDelay,
	}
}

// Validate checks the configuration bounds
func (c SimulatorConfig) Validate() error {
	if c.FailureRate < 0 || c.FailureRate > 1 {
		return fmt.Errorf("failure rate must be between 0 and 1, got %v", c.FailureRate)
	}
	if c.MinDelay < 0 || c.MaxDelay < c.MinDelay {
		return fmt.Errorf("invalid delay range %s..%s", c.MinDelay, c.MaxDelay)
	}
	return nil
}

// Outcome is the terminal result of one simulated submission
type Outcome struct {
	Failed bool
	TxHash string
	Delay  time.Duration
}

// SimulatorOption customises a Simulator
type SimulatorOption func(*Simulator)

// WithRand makes outcomes and delays reproducible
func WithRand(r *rand.Rand) SimulatorOption {
	return func(s *Simulator) { s.rng = r }
}

// WithSleep replaces time.Sleep
func WithSleep(fn func(time.Duration)) SimulatorOption {
	return func(s *Simulator) { s.sleep = fn }
}

// WithTxHash replaces the transaction id generator
func WithTxHash(fn func() string) SimulatorOption {
	return func(s *Simulator) { s.txHash = fn }
}

// Simulator stands in for a network: it waits, then fails or settles
type Simulator struct {
	cfg    SimulatorConfig
	mu     sync.Mutex
	rng    *rand.Rand
	sleep  func(time.Duration)
	txHash func() string
}

// NewSimulator creates a simulator
func NewSimulator(cfg SimulatorConfig, opts ...SimulatorOption) *Simulator {
	s := &Simulator{
		cfg:    cfg,
		sleep:  time.Sleep,
		txHash: mockTxHash,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the simulator settings
func (s *Simulator) Config() SimulatorConfig {
	return s.cfg
}

func (s *Simulator) float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rng == nil {
		return rand.Float64()
	}
	return s.rng.Float64()
}

// Delay draws a latency uniformly from [MinDelay, MaxDelay)
func (s *Simulator) Delay() time.Duration {
	span := s.cfg.MaxDelay - s.cfg.MinDelay
	if span <= 0 {
		return s.cfg.MinDelay
	}
	return s.cfg.MinDelay + time.Duration(s.float64()*float64(span))
}

// Fails draws whether the next submission fails
func (s *Simulator) Fails() bool {
	return s.float64() < s.cfg.FailureRate
}

// Run blocks for a simulated latency and returns the outcome
func (s *Simulator) Run() Outcome {
	d := s.Delay()
	s.sleep(d)

	if s.Fails() {
		return Outcome{Failed: true, Delay: d}
	}
	return Outcome{TxHash: s.txHash(), Delay: d}
}

func mockTxHash() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
