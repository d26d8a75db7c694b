package ga

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Attempt calls fn up to n times, until it succeeds or fails with an error
// that is not recoverable. Cancellation is checked before each call. When
// every call fails recoverably the last error is returned, wrapped.
func Attempt(ctx context.Context, rc *RunContext, n int, fn func(attempt int) error) error {
	var last error
	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := fn(i)
		if err == nil {
			return nil
		}
		if !IsRecoverable(err) {
			return err
		}
		last = err
		rc.Logger.Debug("attempt failed",
			zap.Int("attempt", i),
			zap.String("kind", Classify(err).String()),
			zap.Error(err))
	}
	if last == nil {
		return errors.Wrap(ErrNoMutationSite, "ga: no attempt made")
	}
	return errors.Wrapf(last, "ga: gave up after %d attempts", n)
}

// record reports one finished operator call to the monitor and the logger.
func record(rc *RunContext, op string, start time.Time, err error) {
	if err == nil {
		rc.Monitor.Success(op, time.Since(start))
		return
	}
	kind := Classify(err)
	rc.Monitor.Failure(op, kind.String())
	if kind == StructuralInvariant {
		rc.Logger.Warn("structural invariant violated", zap.String("op", op), zap.Error(err))
	}
}
