package ga

import (
	"math/rand/v2"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/katalvlaran/fragevo/monitor"
)

// RunContext carries what operator calls share within one run: logger,
// random source, counters and the run identity. A RunContext is not safe
// for concurrent use because of its random source; use Fork to give each
// worker its own.
type RunContext struct {
	Logger  *zap.Logger
	Rand    *rand.Rand
	Monitor *monitor.Monitor
	RunID   uuid.UUID

	seed uint64
}

// RunOption configures a RunContext.
type RunOption func(*RunContext)

// WithLogger sets the logger. nil keeps zap.NewNop().
func WithLogger(l *zap.Logger) RunOption {
	return func(rc *RunContext) {
		if l != nil {
			rc.Logger = l
		}
	}
}

// WithMonitor sets the shared counters. nil disables counting.
func WithMonitor(m *monitor.Monitor) RunOption {
	return func(rc *RunContext) { rc.Monitor = m }
}

// WithRunID fixes the run identity instead of drawing a random one.
func WithRunID(id uuid.UUID) RunOption {
	return func(rc *RunContext) { rc.RunID = id }
}

// NewRunContext returns a context whose random source is a PCG seeded with
// seed, so runs with the same seed make the same choices.
func NewRunContext(seed uint64, opts ...RunOption) *RunContext {
	rc := &RunContext{
		Logger: zap.NewNop(),
		Rand:   rand.New(rand.NewPCG(seed, 0)),
		seed:   seed,
	}
	for _, opt := range opts {
		opt(rc)
	}
	if rc.RunID == uuid.Nil {
		rc.RunID = uuid.New()
	}
	rc.Logger = rc.Logger.With(zap.String("run", rc.RunID.String()))
	return rc
}

// Fork returns a context sharing logger, monitor and run ID, with an
// independent random stream. Equal (seed, stream) pairs give equal streams.
func (rc *RunContext) Fork(stream uint64) *RunContext {
	return &RunContext{
		Logger:  rc.Logger,
		Rand:    rand.New(rand.NewPCG(rc.seed, stream+1)),
		Monitor: rc.Monitor,
		RunID:   rc.RunID,
		seed:    rc.seed,
	}
}

// Seed returns the seed the context was built with.
func (rc *RunContext) Seed() uint64 { return rc.seed }
