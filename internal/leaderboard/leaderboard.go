// Package leaderboard ranks finished runs per difficulty.
package leaderboard

import (
	"sort"
	"strings"
	"time"

	"cyber-rogue/internal/state"
)

// Capacity is how many entries each difficulty keeps.
const Capacity = 10

// Entry is one recorded run.
type Entry struct {
	Name       string
	Score      int
	Level      int
	Difficulty state.Difficulty
	At         time.Time
}

// Eligible reports whether runs on d may be recorded. Test runs never are.
func Eligible(d state.Difficulty) bool {
	_, ok := state.ParseDifficulty(string(d))
	return ok && d != state.Test
}

// Sort orders entries by descending score, earlier runs first on ties.
func Sort(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return entries[i].At.Before(entries[j].At)
	})
}

// Insert returns board with e added, sorted and cut to Capacity.
// The input slice is not modified.
func Insert(board []Entry, e Entry) []Entry {
	out := append(append([]Entry(nil), board...), e)
	Sort(out)
	if len(out) > Capacity {
		out = out[:Capacity]
	}
	return out
}

// Qualifies reports whether score would earn a place on board.
func Qualifies(board []Entry, score int) bool {
	return len(board) < Capacity || score > board[len(board)-1].Score
}

// CleanName trims a submitted name and falls back to "anonymous".
func CleanName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "anonymous"
	}
	return name
}
