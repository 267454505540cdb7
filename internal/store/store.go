// Package store persists the bioinformatics tool registry and an audit log
// of produced reasoning plans in SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// ErrToolNotFound is returned when a tool name is not in the registry.
var ErrToolNotFound = errors.New("store: tool not found")

// ErrPlanNotFound is returned when a plan id is not in the audit log.
var ErrPlanNotFound = errors.New("store: plan not found")

// Config holds store configuration.
type Config struct {
	DataDir string
	Logger  *zap.Logger
}

// Store is the SQLite-backed registry and plan log.
type Store struct {
	db      *sql.DB
	log     *zap.Logger
	dataDir string
}

const dbFile = "ptb.db"

// New creates the data directory if needed, opens SQLite in WAL mode and
// runs migrations.
func New(cfg Config) (*Store, error) {
	if err := os.MkdirAll(cfg.DataDir, 0700); err != nil {
		return nil, fmt.Errorf("store: create data dir: %w", err)
	}

	dbPath := filepath.Join(cfg.DataDir, dbFile)
	db, err := openDB("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("store: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("store: pragma %q: %w", p, err)
		}
	}

	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}

	s := &Store{db: db, log: log, dataDir: cfg.DataDir}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: migration: %w", err)
	}
	log.Debug("store opened", zap.String("path", dbPath))
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS tools (
			name        TEXT PRIMARY KEY COLLATE NOCASE,
			category    TEXT    NOT NULL,
			description TEXT    NOT NULL DEFAULT '',
			url         TEXT    NOT NULL DEFAULT '',
			pip_package TEXT    NOT NULL DEFAULT '',
			installed   INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_tools_category ON tools(category COLLATE NOCASE);

		CREATE TABLE IF NOT EXISTS plans (
			id            TEXT PRIMARY KEY,
			goal          TEXT NOT NULL DEFAULT '',
			kind          TEXT NOT NULL DEFAULT '',
			plan_json     TEXT NOT NULL,
			analysis_json TEXT NOT NULL,
			created_at    TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
		);

		CREATE INDEX IF NOT EXISTS idx_plans_created ON plans(created_at DESC);

		CREATE TABLE IF NOT EXISTS projects (
			name        TEXT PRIMARY KEY,
			description TEXT NOT NULL DEFAULT '',
			created_at  TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	// plans.project was added after the first schema; older databases
	// get the column here.
	if err := s.addColumnIfMissing("plans", "project", "TEXT NOT NULL DEFAULT ''"); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_plans_project ON plans(project)`)
	return err
}

func (s *Store) addColumnIfMissing(table, column, decl string) error {
	rows, err := s.db.Query(`PRAGMA table_info(` + table + `)`)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var (
			cid     int
			name    string
			typ     string
			notnull int
			dflt    sql.NullString
			pk      int
		)
		if err := rows.Scan(&cid, &name, &typ, &notnull, &dflt, &pk); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	_ = rows.Close()

	_, err = s.db.Exec(`ALTER TABLE ` + table + ` ADD COLUMN ` + column + ` ` + decl)
	return err
}
