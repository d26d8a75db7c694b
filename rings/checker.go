// File: checker.go
// Role: Decide whether a candidate ring path may be closed.
//
// Order of checks:
//  1. ring size window (non-RCV vertices on the path);
//  2. archive lookup by chain synonyms;
//  3. conformer source → evaluator → best closure, stored in the archive.

package rings

import (
	"context"

	"github.com/pkg/errors"
)

// ConformerSource produces candidate conformations of the two ring ends for
// a path. It wraps whatever 3-D machinery the caller has.
type ConformerSource interface {
	Closures(ctx context.Context, p *Path) ([]Closure, error)
}

// ConformerFunc adapts a function to ConformerSource.
type ConformerFunc func(ctx context.Context, p *Path) ([]Closure, error)

// Closures calls f.
func (f ConformerFunc) Closures(ctx context.Context, p *Path) ([]Closure, error) {
	return f(ctx, p)
}

// CheckerOption configures a Checker.
type CheckerOption func(*Checker)

// WithConformerSource enables geometric checks.
func WithConformerSource(src ConformerSource) CheckerOption {
	return func(c *Checker) { c.src = src }
}

// WithArchive shares an archive between checkers.
func WithArchive(a *Archive) CheckerOption {
	return func(c *Checker) {
		if a != nil {
			c.archive = a
		}
	}
}

// Checker is safe for concurrent use when its conformer source is.
type Checker struct {
	params  Parameters
	eval    *Evaluator
	src     ConformerSource
	archive *Archive
}

// NewChecker returns a checker for p. It fails when p is invalid.
func NewChecker(p Parameters, opts ...CheckerOption) (*Checker, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	c := &Checker{
		params:  p,
		eval:    NewEvaluator(p.Strategy, p.Tolerances),
		archive: NewArchive(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Parameters returns the configured parameters.
func (c *Checker) Parameters() Parameters { return c.params }

// Archive returns the archive in use.
func (c *Checker) Archive() *Archive { return c.archive }

// SizeOK reports whether the ring over p respects the size window.
func (c *Checker) SizeOK(p *Path) bool {
	n := p.RingSize()
	return n >= c.params.MinRingSize && n <= c.params.MaxRingSize
}

// Check reports whether a ring may be closed over p. Errors come only from
// the context or the conformer source.
func (c *Checker) Check(ctx context.Context, p *Path) (bool, error) {
	if p == nil || p.IsZero() || !c.SizeOK(p) {
		return false, nil
	}
	if c.src == nil || !c.params.RequireClosure {
		return true, nil
	}
	if e, ok := c.archive.Lookup(p); ok {
		return e.Closable, nil
	}
	if err := ctx.Err(); err != nil {
		return false, err
	}
	cs, err := c.src.Closures(ctx, p)
	if err != nil {
		return false, errors.Wrapf(err, "rings: conformers for %s", p.ChainID)
	}
	entry := Entry{Conformers: len(cs)}
	if idx, v, ok := c.eval.Best(cs); ok {
		entry.Closable, entry.Best, entry.Quality = true, cs[idx], v.Quality
	}
	c.archive.Store(p, entry)
	return entry.Closable, nil
}
