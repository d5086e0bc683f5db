// Package random holds the injectable randomness and identity sources used by
// level generation and combat.
package random

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// Source is the subset of *rand.Rand the game draws from.
type Source interface {
	Float64() float64
	Intn(n int) int
}

// New returns a time-seeded generator for production use.
func New() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// Chance reports whether a roll from src falls under p.
func Chance(src Source, p float64) bool { return src.Float64() < p }

// Sequence replays a fixed list of floats, cycling when exhausted.
// Intn derives its result from the next float as floor(f*n).
type Sequence struct {
	floats []float64
	next   int
}

// NewSequence returns a Sequence over floats. An empty Sequence always yields 0.
func NewSequence(floats ...float64) *Sequence {
	return &Sequence{floats: floats}
}

// Float64 returns the next float in the sequence.
func (s *Sequence) Float64() float64 {
	if len(s.floats) == 0 {
		return 0
	}
	f := s.floats[s.next%len(s.floats)]
	s.next++
	return f
}

// Intn returns floor(next*n), clamped to [0, n).
func (s *Sequence) Intn(n int) int {
	if n <= 0 {
		panic("random: invalid argument to Intn")
	}
	v := int(s.Float64() * float64(n))
	return min(max(v, 0), n-1)
}

// Drawn reports how many values have been consumed.
func (s *Sequence) Drawn() int { return s.next }

// ─── identity ───────────────────────────────────────────────────────────────

// IDs mints unique instance identities.
type IDs interface {
	NewID() string
}

// UUIDs mints random UUID strings.
type UUIDs struct{}

// NewID returns a fresh UUIDv4.
func (UUIDs) NewID() string { return uuid.NewString() }

// Counter mints prefix-1, prefix-2, ... for tests.
type Counter struct {
	Prefix string
	n      int
}

// NewID returns the next counter identity.
func (c *Counter) NewID() string {
	c.n++
	if c.Prefix == "" {
		return fmt.Sprintf("id-%d", c.n)
	}
	return fmt.Sprintf("%s-%d", c.Prefix, c.n)
}
