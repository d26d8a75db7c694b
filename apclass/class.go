// File: class.go
// Role: Class token, parsing and ring-closing class helpers.

package apclass

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// separator splits the rule name from the subclass number.
const separator = ":"

// Sentinel errors for class parsing and rule loading.
var (
	// ErrMalformedClass indicates a class string that is not "rule:int".
	ErrMalformedClass = errors.New("apclass: malformed class")

	// ErrEmptyRule indicates a class with an empty rule name.
	ErrEmptyRule = errors.New("apclass: empty rule name")
)

// Class identifies the chemical environment of an attachment point.
// The zero value is the "unset" class and is compatible with nothing
// under the Matrix rule.
type Class struct {
	// Rule is the name of the cutting rule that generated the AP.
	Rule string `yaml:"rule"`

	// Subclass distinguishes the two sides of a cut (usually 0 or 1).
	Subclass int `yaml:"subclass"`
}

// Ring-closing classes. An RCV (ring-closing vertex) carries exactly one AP
// of one of these classes.
var (
	RingClosingPlus    = Class{Rule: "ATplus", Subclass: 0}
	RingClosingMinus   = Class{Rule: "ATminus", Subclass: 0}
	RingClosingNeutral = Class{Rule: "ATneutral", Subclass: 0}
)

// New returns the class rule:sub.
func New(rule string, sub int) Class {
	return Class{Rule: rule, Subclass: sub}
}

// Parse converts "rule:sub" into a Class.
func Parse(s string) (Class, error) {
	idx := strings.LastIndex(s, separator)
	if idx < 0 {
		return Class{}, errors.Wrapf(ErrMalformedClass, "%q", s)
	}
	rule := strings.TrimSpace(s[:idx])
	if rule == "" {
		return Class{}, errors.Wrapf(ErrEmptyRule, "%q", s)
	}
	sub, err := strconv.Atoi(strings.TrimSpace(s[idx+1:]))
	if err != nil {
		return Class{}, errors.Wrapf(ErrMalformedClass, "%q: %v", s, err)
	}

	return Class{Rule: rule, Subclass: sub}, nil
}

// MustParse is Parse for literals; it panics on malformed input.
func MustParse(s string) Class {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return c
}

// String renders the class as "rule:sub".
func (c Class) String() string {
	if c.IsZero() {
		return ""
	}

	return c.Rule + separator + strconv.Itoa(c.Subclass)
}

// IsZero reports whether c is the unset class.
func (c Class) IsZero() bool { return c.Rule == "" && c.Subclass == 0 }

// IsRingClosing reports whether c is one of the ring-closing classes.
func (c Class) IsRingClosing() bool {
	return c == RingClosingPlus || c == RingClosingMinus || c == RingClosingNeutral
}

// RingClosingPartner returns the class that may close a ring with c.
// Plus pairs with minus and neutral pairs with neutral.
func RingClosingPartner(c Class) (Class, bool) {
	switch c {
	case RingClosingPlus:
		return RingClosingMinus, true
	case RingClosingMinus:
		return RingClosingPlus, true
	case RingClosingNeutral:
		return RingClosingNeutral, true
	default:
		return Class{}, false
	}
}

// CanCloseRing reports whether two ring-closing classes form a chord.
func CanCloseRing(a, b Class) bool {
	p, ok := RingClosingPartner(a)
	return ok && p == b
}

// Less orders classes by rule name, then subclass.
func Less(a, b Class) bool {
	if a.Rule != b.Rule {
		return a.Rule < b.Rule
	}

	return a.Subclass < b.Subclass
}

// MarshalYAML renders the class in its compact string form.
func (c Class) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalYAML accepts the compact "rule:sub" form.
func (c *Class) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return errors.Wrap(err, "apclass: decode class")
	}
	if s == "" {
		*c = Class{}
		return nil
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*c = parsed

	return nil
}
