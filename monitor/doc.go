// Package monitor counts genetic-operator attempts, successes and failures.
//
// A Monitor is the one piece of mutable state shared by concurrent
// candidate pipelines. Counters are atomic and mirrored into prometheus
// collectors:
//
//	fragevo_ga_attempts_total{op}
//	fragevo_ga_successes_total{op}
//	fragevo_ga_failures_total{op,kind}
//	fragevo_ga_attempt_duration_seconds{op}
//
// Every DumpEvery attempts the counters are logged through zap.
package monitor
