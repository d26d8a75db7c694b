package apclass_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/fragevo/apclass"
)

func TestParse(t *testing.T) {
	c, err := apclass.Parse("amine:1")
	require.NoError(t, err)
	assert.Equal(t, apclass.New("amine", 1), c)
	assert.Equal(t, "amine:1", c.String())

	_, err = apclass.Parse("amine")
	assert.ErrorIs(t, err, apclass.ErrMalformedClass)

	_, err = apclass.Parse(":0")
	assert.ErrorIs(t, err, apclass.ErrEmptyRule)

	_, err = apclass.Parse("amine:x")
	assert.ErrorIs(t, err, apclass.ErrMalformedClass)
}

func TestRingClosingPartner(t *testing.T) {
	p, ok := apclass.RingClosingPartner(apclass.RingClosingPlus)
	assert.True(t, ok)
	assert.Equal(t, apclass.RingClosingMinus, p)

	assert.True(t, apclass.CanCloseRing(apclass.RingClosingNeutral, apclass.RingClosingNeutral))
	assert.False(t, apclass.CanCloseRing(apclass.RingClosingPlus, apclass.RingClosingPlus))

	_, ok = apclass.RingClosingPartner(apclass.New("amine", 0))
	assert.False(t, ok)
	assert.True(t, apclass.RingClosingMinus.IsRingClosing())
}

func TestRules(t *testing.T) {
	a0 := apclass.New("a", 0)
	a1 := apclass.New("a", 1)
	b0 := apclass.New("b", 0)

	assert.True(t, apclass.Any.Compatible(a0, b0))
	assert.True(t, apclass.SameRule.Compatible(a0, a1))
	assert.False(t, apclass.SameRule.Compatible(a0, b0))

	m := apclass.NewMatrix().Allow(a0, a1)
	assert.True(t, m.Compatible(a0, a1))
	assert.False(t, m.Compatible(a1, a0))
	assert.True(t, apclass.Symmetric(m).Compatible(a1, a0))
}

func TestLoadMatrix(t *testing.T) {
	src := `
"amine:0": ["carbonyl:1", "amine:1"]
"carbonyl:0": ["amine:1"]
`
	m, err := apclass.LoadMatrix(strings.NewReader(src))
	require.NoError(t, err)
	assert.True(t, m.Compatible(apclass.MustParse("amine:0"), apclass.MustParse("carbonyl:1")))
	assert.False(t, m.Compatible(apclass.MustParse("carbonyl:0"), apclass.MustParse("carbonyl:1")))
	assert.Equal(t,
		[]apclass.Class{apclass.MustParse("amine:1"), apclass.MustParse("carbonyl:1")},
		m.Targets(apclass.MustParse("amine:0")))

	out, err := yaml.Marshal(m)
	require.NoError(t, err)
	back, err := apclass.LoadMatrix(strings.NewReader(string(out)))
	require.NoError(t, err)
	assert.Equal(t, m.Sources(), back.Sources())

	_, err = apclass.LoadMatrix(strings.NewReader(`"bad": ["x:0"]`))
	assert.ErrorIs(t, err, apclass.ErrMalformedClass)
}

func TestClassYAML(t *testing.T) {
	var holder struct {
		C apclass.Class `yaml:"c"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("c: ester:1\n"), &holder))
	assert.Equal(t, apclass.New("ester", 1), holder.C)
}
