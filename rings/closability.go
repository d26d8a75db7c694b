// File: closability.go
// Role: Geometric closability predicate over the two bonds at a ring's ends.
//
// Windows, with lenH = |H1H2|, lenT = |T1T2| and
// tol = (lenH+lenT)/2 · Distance · Extra:
//
//	BondOverlap:          H1T2 ∈ (-1, tol), H2T1 ∈ (-1, tol), H2T2 ∈ (-1, lenH+lenT)
//	BondComplementarity:  H1T2 ∈ lenH ± tol/2, H2T1 ∈ lenT ± tol/2,
//	                      H2T2 ∈ (-1, tol/2 · Distance)
//
// and in both cases dot(ĥ, t̂) ≤ MaxDot.

package rings

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Closure is one conformation of the two ring ends: the head bond H1→H2 and
// the tail bond T1→T2.
type Closure struct {
	H1, H2, T1, T2 v3.Vec
}

// Descriptors are the measured quantities the predicate looks at.
type Descriptors struct {
	DistH1T2 float64
	DistH2T1 float64
	DistH2T2 float64
	// Dot is the dot product of the normalised head and tail bond vectors.
	Dot float64
}

// Describe measures c. ok is false when either bond has zero length.
func (c Closure) Describe() (d Descriptors, ok bool) {
	d.DistH1T2 = c.H1.Sub(c.T2).Length()
	d.DistH2T1 = c.H2.Sub(c.T1).Length()
	d.DistH2T2 = c.H2.Sub(c.T2).Length()
	h, t := c.H2.Sub(c.H1), c.T2.Sub(c.T1)
	lh, lt := h.Length(), t.Length()
	if lh == 0 || lt == 0 {
		return d, false
	}
	d.Dot = h.Dot(t) / (lh * lt)
	return d, true
}

// Window is an open interval.
type Window struct {
	Min, Max float64
}

// Contains reports Min < x < Max.
func (w Window) Contains(x float64) bool { return x > w.Min && x < w.Max }

// Conditions are the windows derived for one closure.
type Conditions struct {
	H1T2   Window
	H2T1   Window
	H2T2   Window
	MaxDot float64
}

// Verdict is the outcome of evaluating one closure.
type Verdict struct {
	Closable    bool
	Quality     float64
	Descriptors Descriptors
}

// Evaluator applies one strategy with fixed tolerances. It holds no mutable
// state and may be shared.
type Evaluator struct {
	strategy Strategy
	tol      Tolerances
}

// NewEvaluator returns an evaluator for the given strategy and tolerances.
func NewEvaluator(s Strategy, tol Tolerances) *Evaluator {
	return &Evaluator{strategy: s, tol: tol}
}

// Strategy returns the configured strategy.
func (e *Evaluator) Strategy() Strategy { return e.strategy }

// Conditions derives the distance windows for c.
func (e *Evaluator) Conditions(c Closure) Conditions {
	lenH := c.H1.Sub(c.H2).Length()
	lenT := c.T1.Sub(c.T2).Length()
	tol := (lenH + lenT) / 2 * e.tol.Extra * e.tol.Distance

	out := Conditions{
		H1T2:   Window{Min: -1},
		H2T1:   Window{Min: -1},
		H2T2:   Window{Min: -1},
		MaxDot: e.tol.MaxDot,
	}
	switch e.strategy {
	case BondOverlap:
		out.H1T2.Max = tol
		out.H2T1.Max = tol
		out.H2T2.Max = lenH + lenT
	case BondComplementarity:
		tol /= 2
		out.H1T2 = Window{Min: lenH - tol, Max: lenH + tol}
		out.H2T1 = Window{Min: lenT - tol, Max: lenT + tol}
		out.H2T2.Max = tol * e.tol.Distance
	}
	return out
}

// IsClosable reports whether c satisfies every window and the dot bound.
// Degenerate closures are never closable.
func (e *Evaluator) IsClosable(c Closure) bool {
	d, ok := c.Describe()
	if !ok {
		return false
	}
	cond := e.Conditions(c)
	return cond.H1T2.Contains(d.DistH1T2) &&
		cond.H2T1.Contains(d.DistH2T1) &&
		cond.H2T2.Contains(d.DistH2T2) &&
		d.Dot <= cond.MaxDot
}

// Quality returns the sum of absolute deviations of the four cross
// distances from the ideal values of the strategy. Lower is better.
func (e *Evaluator) Quality(c Closure) float64 {
	lenH := c.H1.Sub(c.H2).Length()
	lenT := c.T1.Sub(c.T2).Length()
	var optH1T1, optH2T2, optH1T2, optH2T1 float64
	switch e.strategy {
	case BondOverlap:
		optH1T1 = (lenH + lenT) / 2
		optH2T2 = optH1T1
	case BondComplementarity:
		optH1T2 = lenH
		optH2T1 = lenT
		optH1T1 = lenH + lenT
	}
	return math.Abs(c.H1.Sub(c.T1).Length()-optH1T1) +
		math.Abs(c.H2.Sub(c.T2).Length()-optH2T2) +
		math.Abs(c.H1.Sub(c.T2).Length()-optH1T2) +
		math.Abs(c.H2.Sub(c.T1).Length()-optH2T1)
}

// Evaluate combines IsClosable, Quality and the descriptors.
func (e *Evaluator) Evaluate(c Closure) Verdict {
	d, _ := c.Describe()
	return Verdict{Closable: e.IsClosable(c), Quality: e.Quality(c), Descriptors: d}
}

// Best returns the index and verdict of the closable closure with the
// lowest quality score. ok is false when none is closable.
func (e *Evaluator) Best(cs []Closure) (idx int, v Verdict, ok bool) {
	idx = -1
	for i, c := range cs {
		cur := e.Evaluate(c)
		if !cur.Closable {
			continue
		}
		if !ok || cur.Quality < v.Quality {
			idx, v, ok = i, cur, true
		}
	}
	return idx, v, ok
}
