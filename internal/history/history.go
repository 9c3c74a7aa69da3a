// Package history provides an append-only audit log of past tgrep
// invocations, so --repeat can replay one without a repeat-file.
//
// Grounded on the teacher's internal/log package: a global *sql.DB
// opened best-effort at process start, a fluent Record(...).Counts(...).
// Digest(...).Write() builder mirroring log.Event(...).Author(...).
// Write(err), and the same "logging failures never break the main
// operation" discipline.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

var (
	global *sql.DB
	mu     sync.Mutex
)

// Run is one recorded invocation, matching the runs table's columns.
type Run struct {
	ID        int64
	StartedAt int64
	Root      string
	Patterns  []string
	Searcher  string
	Files     int
	Lines     int
	Matches   int
	Digest    string // hex, empty when not computed
}

// dbPathFunc resolves the database path; overridden by tests.
var dbPathFunc = defaultDBPath

func defaultDBPath() string {
	if p := os.Getenv("TGREP_HISTORY_DB"); p != "" {
		return p
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "tgrep", "history.db")
	}
	return filepath.Join(home, ".config", "tgrep", "history.db")
}

// DBPath returns the path the global database opens at.
func DBPath() string { return dbPathFunc() }

// Open initialises the global history database. Safe to call multiple
// times; best-effort per spec.md section 9 - callers log a warning on
// error but never treat it as fatal.
func Open() error {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		return nil
	}

	p := dbPathFunc()
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("history: create directory for %s: %w", p, err)
	}
	db, err := sql.Open("sqlite", p)
	if err != nil {
		return fmt.Errorf("history: open %s: %w", p, err)
	}
	if err := migrate(db); err != nil {
		db.Close()
		return fmt.Errorf("history: migrate %s: %w", p, err)
	}
	global = db
	return nil
}

// Close closes the global history database.
func Close() {
	mu.Lock()
	defer mu.Unlock()
	if global != nil {
		global.Close()
		global = nil
	}
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS runs (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			started_at INTEGER NOT NULL,
			root       TEXT NOT NULL,
			patterns   TEXT NOT NULL,
			searcher   TEXT NOT NULL,
			files      INTEGER NOT NULL,
			lines      INTEGER NOT NULL,
			matches    INTEGER NOT NULL,
			digest     TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	`)
	return err
}

// Builder constructs a history row using a fluent API, mirroring the
// teacher's log.Builder.
type Builder struct {
	run Run
}

// Record starts a new history entry for a completed search.
func Record(root string, patterns []string, searcher string) *Builder {
	return &Builder{run: Run{
		StartedAt: time.Now().Unix(),
		Root:      root,
		Patterns:  patterns,
		Searcher:  searcher,
	}}
}

// Counts sets the result totals.
func (b *Builder) Counts(files, lines, matches int) *Builder {
	b.run.Files, b.run.Lines, b.run.Matches = files, lines, matches
	return b
}

// Digest sets the hex content digest (spec.md section 3's expansion),
// left empty when digest computation is disabled.
func (b *Builder) Digest(hexDigest string) *Builder {
	b.run.Digest = hexDigest
	return b
}

// Write persists the entry to the global database. A no-op (not an
// error) when history is not open, matching the teacher's Log()
// best-effort discipline.
func (b *Builder) Write() {
	mu.Lock()
	db := global
	mu.Unlock()
	if db == nil {
		return
	}

	patterns, err := json.Marshal(b.run.Patterns)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tgrep: history: marshal patterns: %v\n", err)
		return
	}
	var digest any
	if b.run.Digest != "" {
		digest = b.run.Digest
	}

	_, err = db.Exec(`
		INSERT INTO runs (started_at, root, patterns, searcher, files, lines, matches, digest)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.run.StartedAt, b.run.Root, string(patterns), b.run.Searcher,
		b.run.Files, b.run.Lines, b.run.Matches, digest,
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tgrep: history: write failed: %v\n", err)
	}
}

// Nth returns the Nth most recent run (1 = most recent, 2 = second most
// recent, ...), for --repeat=N resolution. Returns (Run{}, false, nil)
// when fewer than n rows exist.
func Nth(n int) (Run, bool, error) {
	mu.Lock()
	db := global
	mu.Unlock()
	if db == nil {
		return Run{}, false, fmt.Errorf("history: not open")
	}
	if n < 1 {
		n = 1
	}

	row := db.QueryRow(`
		SELECT id, started_at, root, patterns, searcher, files, lines, matches, COALESCE(digest, '')
		FROM runs ORDER BY id DESC LIMIT 1 OFFSET ?`, n-1)

	var r Run
	var patternsJSON string
	err := row.Scan(&r.ID, &r.StartedAt, &r.Root, &patternsJSON, &r.Searcher, &r.Files, &r.Lines, &r.Matches, &r.Digest)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("history: read run %d: %w", n, err)
	}
	if err := json.Unmarshal([]byte(patternsJSON), &r.Patterns); err != nil {
		return Run{}, false, fmt.Errorf("history: decode patterns: %w", err)
	}
	return r, true, nil
}
