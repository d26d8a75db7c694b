// File: monitor.go
// Role: Shared attempt/failure counters for genetic operators.
//
// Concurrency:
//   - Every counter is an atomic.Int64; the map holding them only grows and
//     is guarded by an RWMutex.
//   - Counters never decrease, so successive snapshots are monotonic.
//   - Prometheus collectors mirror the same increments.

package monitor

import (
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
)

// Metric names, under namespace "fragevo" and subsystem "ga".
const (
	Namespace = "fragevo"
	Subsystem = "ga"
)

// DefaultDumpEvery is the dump cadence used when none is given.
const DefaultDumpEvery = 1000

// Option configures a Monitor.
type Option func(*Monitor)

// WithLogger sets the logger dumps are written to. nil keeps zap.NewNop().
func WithLogger(l *zap.Logger) Option {
	return func(m *Monitor) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithRegisterer registers the prometheus collectors on reg. Without it the
// collectors are created but not registered.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(m *Monitor) { m.reg = reg }
}

// WithDumpEvery sets how many attempts separate two dumps. n <= 0 disables
// periodic dumps.
func WithDumpEvery(n int) Option {
	return func(m *Monitor) { m.dumpEvery = int64(n) }
}

// Monitor counts attempts, successes and failures per operation. A nil
// *Monitor is valid and records nothing.
type Monitor struct {
	logger    *zap.Logger
	reg       prometheus.Registerer
	dumpEvery int64

	total    atomic.Int64
	mu       sync.RWMutex
	counters map[key]*atomic.Int64

	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	duration  *prometheus.HistogramVec
}

type counterKind uint8

const (
	kindAttempt counterKind = iota
	kindSuccess
	kindFailure
)

type key struct {
	kind counterKind
	op   string
	fail string
}

// New builds a Monitor and, when a registerer is given, registers its
// collectors. Registering twice on the same registerer panics, as promauto
// does.
func New(opts ...Option) *Monitor {
	m := &Monitor{
		logger:    zap.NewNop(),
		dumpEvery: DefaultDumpEvery,
		counters:  make(map[key]*atomic.Int64),
	}
	for _, opt := range opts {
		opt(m)
	}

	factory := promauto.With(m.reg)
	m.attempts = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "attempts_total",
		Help:      "Operator attempts, by operation",
	}, []string{"op"})
	m.successes = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "successes_total",
		Help:      "Successful operator attempts, by operation",
	}, []string{"op"})
	m.failures = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "failures_total",
		Help:      "Failed operator attempts, by operation and failure kind",
	}, []string{"op", "kind"})
	m.duration = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: Subsystem,
		Name:      "attempt_duration_seconds",
		Help:      "Duration of operator attempts, by operation",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	}, []string{"op"})
	return m
}

func (m *Monitor) counter(k key) *atomic.Int64 {
	m.mu.RLock()
	c, ok := m.counters[k]
	m.mu.RUnlock()
	if ok {
		return c
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok = m.counters[k]; !ok {
		c = new(atomic.Int64)
		m.counters[k] = c
	}
	return c
}

// Attempt records the start of an attempt of op. Every DumpEvery attempts
// the current snapshot is logged.
func (m *Monitor) Attempt(op string) {
	if m == nil {
		return
	}
	m.counter(key{kind: kindAttempt, op: op}).Add(1)
	m.attempts.WithLabelValues(op).Inc()
	if n := m.total.Add(1); m.dumpEvery > 0 && n%m.dumpEvery == 0 {
		m.Dump()
	}
}

// Success records a successful attempt of op that took d.
func (m *Monitor) Success(op string, d time.Duration) {
	if m == nil {
		return
	}
	m.counter(key{kind: kindSuccess, op: op}).Add(1)
	m.successes.WithLabelValues(op).Inc()
	m.duration.WithLabelValues(op).Observe(d.Seconds())
}

// Failure records a failed attempt of op, classified as kind.
func (m *Monitor) Failure(op, kind string) {
	if m == nil {
		return
	}
	m.counter(key{kind: kindFailure, op: op, fail: kind}).Add(1)
	m.failures.WithLabelValues(op, kind).Inc()
}

// Total returns the number of attempts recorded so far.
func (m *Monitor) Total() int64 {
	if m == nil {
		return 0
	}
	return m.total.Load()
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	Total     int64
	Attempts  map[string]int64
	Successes map[string]int64
	// Failures is keyed by operation, then failure kind.
	Failures map[string]map[string]int64
}

// Snapshot copies the current counter values.
func (m *Monitor) Snapshot() Snapshot {
	s := Snapshot{
		Attempts:  map[string]int64{},
		Successes: map[string]int64{},
		Failures:  map[string]map[string]int64{},
	}
	if m == nil {
		return s
	}
	s.Total = m.total.Load()
	m.mu.RLock()
	defer m.mu.RUnlock()
	for k, c := range m.counters {
		n := c.Load()
		switch k.kind {
		case kindAttempt:
			s.Attempts[k.op] = n
		case kindSuccess:
			s.Successes[k.op] = n
		case kindFailure:
			if s.Failures[k.op] == nil {
				s.Failures[k.op] = map[string]int64{}
			}
			s.Failures[k.op][k.fail] = n
		}
	}
	return s
}

// Dump logs the current snapshot, one entry per operation.
func (m *Monitor) Dump() {
	if m == nil {
		return
	}
	s := m.Snapshot()
	ops := make([]string, 0, len(s.Attempts))
	for op := range s.Attempts {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	for _, op := range ops {
		fields := []zap.Field{
			zap.String("op", op),
			zap.Int64("total", s.Total),
			zap.Int64("attempts", s.Attempts[op]),
			zap.Int64("successes", s.Successes[op]),
		}
		kinds := make([]string, 0, len(s.Failures[op]))
		for k := range s.Failures[op] {
			kinds = append(kinds, k)
		}
		sort.Strings(kinds)
		for _, k := range kinds {
			fields = append(fields, zap.Int64("failed."+k, s.Failures[op][k]))
		}
		m.logger.Info("operator counters", fields...)
	}
}
