package random

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSequenceCycles(t *testing.T) {
	s := NewSequence(0.1, 0.9)
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 0.9, s.Float64())
	assert.Equal(t, 0.1, s.Float64())
	assert.Equal(t, 3, s.Drawn())
}

func TestSequenceIntn(t *testing.T) {
	cases := []struct {
		name string
		f    float64
		n    int
		want int
	}{
		{"zero", 0, 10, 0},
		{"middle", 0.55, 10, 5},
		{"top clamps", 0.9999999, 4, 3},
		{"one clamps", 1.0, 4, 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, NewSequence(tc.f).Intn(tc.n))
		})
	}
}

func TestEmptySequenceYieldsZero(t *testing.T) {
	s := NewSequence()
	assert.Zero(t, s.Float64())
	assert.Zero(t, s.Intn(7))
}

func TestChance(t *testing.T) {
	assert.True(t, Chance(NewSequence(0.05), 0.1))
	assert.False(t, Chance(NewSequence(0.1), 0.1))
}

func TestCounterIDs(t *testing.T) {
	c := &Counter{Prefix: "enemy"}
	assert.Equal(t, "enemy-1", c.NewID())
	assert.Equal(t, "enemy-2", c.NewID())
	assert.Equal(t, "id-1", (&Counter{}).NewID())
}

func TestUUIDsAreParseable(t *testing.T) {
	id := UUIDs{}.NewID()
	_, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.NotEqual(t, id, UUIDs{}.NewID())
}

func TestRandSatisfiesSource(t *testing.T) {
	var src Source = New()
	v := src.Intn(5)
	assert.GreaterOrEqual(t, v, 0)
	assert.Less(t, v, 5)
}
