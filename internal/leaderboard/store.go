package leaderboard

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cyber-rogue/internal/state"

	"github.com/google/uuid"
	_ "github.com/lib/pq" // PostgreSQL driver
	_ "modernc.org/sqlite"
)

// ErrIneligible is returned when a run's difficulty is never recorded.
var ErrIneligible = errors.New("leaderboard: difficulty not ranked")

// Store persists leaderboard entries in SQLite or PostgreSQL.
type Store struct {
	db     *sql.DB
	driver string
}

const schema = `
CREATE TABLE IF NOT EXISTS scores (
	id         TEXT NOT NULL,
	name       TEXT NOT NULL,
	score      INTEGER NOT NULL,
	level      INTEGER NOT NULL,
	difficulty TEXT NOT NULL,
	created_at BIGINT NOT NULL,
	PRIMARY KEY (id)
);
CREATE INDEX IF NOT EXISTS scores_by_difficulty ON scores (difficulty, score DESC);
`

// Open connects to driver ("sqlite" or "postgres") and creates the schema.
func Open(ctx context.Context, driver, dsn string) (*Store, error) {
	switch driver {
	case "sqlite":
		return OpenSQLite(ctx, dsn)
	case "postgres":
		return OpenPostgres(ctx, dsn)
	}
	return nil, fmt.Errorf("leaderboard: unknown driver %q", driver)
}

// OpenSQLite opens the database file at path.
func OpenSQLite(ctx context.Context, path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	dsn := filepath.Clean(path) + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"
	return open(ctx, "sqlite", dsn)
}

// OpenPostgres connects with a libpq connection string or URL.
func OpenPostgres(ctx context.Context, dsn string) (*Store, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, fmt.Errorf("connection string is required")
	}
	return open(ctx, "postgres", dsn)
}

func open(ctx context.Context, driver, dsn string) (*Store, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	for _, stmt := range strings.Split(schema, ";") {
		if strings.TrimSpace(stmt) == "" {
			continue
		}
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}
	return &Store{db: db, driver: driver}, nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Submit records e and drops whatever falls off its difficulty's board.
// It reports whether e made the board.
func (s *Store) Submit(ctx context.Context, e Entry) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	if !Eligible(e.Difficulty) {
		return false, ErrIneligible
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	id := uuid.NewString()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("begin submit: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if _, err := tx.ExecContext(ctx, s.rebind(
		`INSERT INTO scores (id, name, score, level, difficulty, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		id, CleanName(e.Name), e.Score, e.Level, string(e.Difficulty), e.At.UTC().UnixMilli(),
	); err != nil {
		return false, fmt.Errorf("insert score: %w", err)
	}
	if _, err := tx.ExecContext(ctx, s.rebind(
		`DELETE FROM scores WHERE difficulty = ? AND id NOT IN (
			SELECT id FROM scores WHERE difficulty = ? ORDER BY score DESC, created_at ASC LIMIT `+strconv.Itoa(Capacity)+`)`),
		string(e.Difficulty), string(e.Difficulty),
	); err != nil {
		return false, fmt.Errorf("prune scores: %w", err)
	}
	var kept int
	if err := tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM scores WHERE id = ?`), id).Scan(&kept); err != nil {
		return false, fmt.Errorf("check score: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit submit: %w", err)
	}
	return kept == 1, nil
}

// Top returns the board for d, best first.
func (s *Store) Top(ctx context.Context, d state.Difficulty) ([]Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT name, score, level, difficulty, created_at FROM scores
		WHERE difficulty = ? ORDER BY score DESC, created_at ASC LIMIT `+strconv.Itoa(Capacity)),
		string(d),
	)
	if err != nil {
		return nil, fmt.Errorf("query scores: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e     Entry
			diff  string
			milli int64
		)
		if err := rows.Scan(&e.Name, &e.Score, &e.Level, &diff, &milli); err != nil {
			return nil, fmt.Errorf("scan score: %w", err)
		}
		e.Difficulty = state.Difficulty(diff)
		e.At = time.UnixMilli(milli).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate scores: %w", err)
	}
	return out, nil
}

// rebind rewrites ? placeholders as $1, $2, ... for PostgreSQL.
func (s *Store) rebind(query string) string {
	if s.driver != "postgres" {
		return query
	}
	return rebindDollar(query)
}

func rebindDollar(query string) string {
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
