// File: rule.go
// Role: Compatibility rules. The core treats them as opaque predicates.

package apclass

// Rule decides whether an AP of class src (parent side, nearer the root)
// may be bonded to an AP of class trg (child side).
// Implementations must be pure and safe for concurrent use.
type Rule interface {
	Compatible(src, trg Class) bool
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(src, trg Class) bool

// Compatible calls f(src, trg).
func (f RuleFunc) Compatible(src, trg Class) bool { return f(src, trg) }

// Any accepts every pair of classes.
var Any Rule = RuleFunc(func(_, _ Class) bool { return true })

// SameRule accepts pairs sharing the same rule name, whatever the subclass.
var SameRule Rule = RuleFunc(func(src, trg Class) bool {
	return src.Rule != "" && src.Rule == trg.Rule
})

// Symmetric wraps r so that the pair is accepted in either direction.
// Crossover and weld operations may reverse the parent/child roles of two APs.
func Symmetric(r Rule) Rule {
	return RuleFunc(func(a, b Class) bool {
		return r.Compatible(a, b) || r.Compatible(b, a)
	})
}
