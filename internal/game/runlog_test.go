package game

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cyber-rogue/internal/state"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestSaveRunLog(t *testing.T) {
	dir := t.TempDir()
	log := newRunLog(state.Hard, 3)
	log.Turns = 42
	log.CauseOfDeath = "Street Ganger"
	log.EnemiesKilled["ganger"] = 2

	saveRunLog(dir, log, logrus.New())

	data, err := os.ReadFile(filepath.Join(dir, RunLogFile))
	if err != nil {
		t.Fatalf("runs.jsonl not created: %v", err)
	}
	content := string(data)
	if !strings.HasSuffix(content, "\n") {
		t.Errorf("log entry should end with newline; got: %q", content)
	}
	var got RunLog
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("entry is not JSON: %v", err)
	}
	if got.Difficulty != state.Hard || got.Level != 3 || got.Turns != 42 || got.EnemiesKilled["ganger"] != 2 {
		t.Errorf("round trip = %+v", got)
	}
}

func TestSaveRunLogAppendsMultiple(t *testing.T) {
	dir := t.TempDir()
	for i := range 3 {
		saveRunLog(dir, newRunLog(state.Easy, i+1), logrus.New())
	}

	data, err := os.ReadFile(filepath.Join(dir, RunLogFile))
	if err != nil {
		t.Fatalf("runs.jsonl not found: %v", err)
	}
	// Each call appends one JSON line; count the newlines.
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) != 3 {
		t.Errorf("expected 3 log lines, got %d", len(lines))
	}
}

func TestSaveRunLogWarnsOnUnwritableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "occupied")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	logger, hook := test.NewNullLogger()

	saveRunLog(filepath.Join(file, "sub"), newRunLog(state.Easy, 1), logger)

	if len(hook.Entries) != 1 || hook.LastEntry().Level != logrus.WarnLevel {
		t.Errorf("entries = %v, want one warning", hook.AllEntries())
	}
}

func TestRunLogCloneIsIndependent(t *testing.T) {
	a := newRunLog(state.Easy, 1)
	a.EnemiesKilled["drone"] = 1
	b := a.clone()
	b.EnemiesKilled["drone"] = 5
	if a.EnemiesKilled["drone"] != 1 {
		t.Error("clone shares its kill map")
	}
}
