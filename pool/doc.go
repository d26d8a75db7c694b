// Package pool runs independent candidate pipelines on a bounded set of
// workers.
//
// Each task owns its candidate's graph; graphs are never shared between
// workers. A failing task marks its own candidate and nothing else: the
// run goes on for its siblings. Cancellation is checked before every task,
// so a canceled run skips whatever has not started yet.
//
// Fitness is the scoring boundary. Compactness is a built-in, topology-only
// score used by the fraggen driver when no external evaluator is plugged in.
package pool
