package game

import (
	"encoding/json"
	"maps"
	"os"
	"path/filepath"
	"time"

	"cyber-rogue/internal/state"

	"github.com/sirupsen/logrus"
)

// RunLogFile is the name of the append-only run history in the data dir.
const RunLogFile = "runs.jsonl"

// RunLog records statistics gathered during one run.
type RunLog struct {
	Timestamp     time.Time        `json:"timestamp"`
	Difficulty    state.Difficulty `json:"difficulty"`
	Level         int              `json:"deepest_level"`
	Score         int              `json:"score"`
	Turns         int              `json:"turns_played"`
	EnemiesKilled map[string]int   `json:"enemies_killed"`
	CauseOfDeath  string           `json:"cause_of_death"`
	Ended         bool             `json:"-"`
}

func newRunLog(d state.Difficulty, level int) RunLog {
	return RunLog{Difficulty: d, Level: level, EnemiesKilled: map[string]int{}}
}

func (r RunLog) clone() RunLog {
	r.EnemiesKilled = maps.Clone(r.EnemiesKilled)
	return r
}

// saveRunLog appends the finished run as a single JSON line to runs.jsonl
// under dir. Failures are logged; a disk problem never ends the session.
func saveRunLog(dir string, rl RunLog, log logrus.FieldLogger) {
	if dir == "" {
		return
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.WithError(err).Warn("run log: cannot create data dir")
		return
	}
	f, err := os.OpenFile(filepath.Join(dir, RunLogFile), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.WithError(err).Warn("run log: cannot open file")
		return
	}
	defer f.Close()

	data, err := json.Marshal(rl)
	if err != nil {
		log.WithError(err).Warn("run log: cannot marshal JSON")
		return
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		log.WithError(err).Warn("run log: write failed")
	}
}
