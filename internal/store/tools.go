package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Tool is one entry of the bioinformatics tool registry.
type Tool struct {
	Name        string `json:"name" yaml:"name"`
	Category    string `json:"category" yaml:"category"`
	Description string `json:"description" yaml:"description"`
	URL         string `json:"url,omitempty" yaml:"url"`
	PipPackage  string `json:"pip_package,omitempty" yaml:"pip_package"`
	Installed   bool   `json:"installed" yaml:"installed"`
}

const toolColumns = `name, category, description, url, pip_package, installed`

// UpsertTool inserts t or replaces the row with the same name. Names
// compare case-insensitively.
func (s *Store) UpsertTool(t Tool) error {
	name := strings.TrimSpace(t.Name)
	if name == "" {
		return fmt.Errorf("store: tool name is required")
	}
	category := strings.TrimSpace(t.Category)
	if category == "" {
		return fmt.Errorf("store: tool %q: category is required", name)
	}
	_, err := s.db.Exec(
		`INSERT INTO tools (`+toolColumns+`) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			category    = excluded.category,
			description = excluded.description,
			url         = excluded.url,
			pip_package = excluded.pip_package,
			installed   = excluded.installed`,
		name, category, t.Description, t.URL, t.PipPackage, boolToInt(t.Installed),
	)
	if err != nil {
		return fmt.Errorf("store: upsert tool %q: %w", name, err)
	}
	return nil
}

// GetTool returns the tool named name, ignoring case.
func (s *Store) GetTool(name string) (*Tool, error) {
	row := s.db.QueryRow(
		`SELECT `+toolColumns+` FROM tools WHERE name = ?`, strings.TrimSpace(name),
	)
	t, err := scanTool(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ListTools returns tools sorted by name. A non-empty category filters
// case-insensitively.
func (s *Store) ListTools(category string) ([]Tool, error) {
	query := `SELECT ` + toolColumns + ` FROM tools`
	var args []any
	if c := strings.TrimSpace(category); c != "" {
		query += ` WHERE category = ? COLLATE NOCASE`
		args = append(args, c)
	}
	query += ` ORDER BY name COLLATE NOCASE`
	return s.queryTools(query, args...)
}

// SetInstalled flips the installed flag of an existing tool.
func (s *Store) SetInstalled(name string, installed bool) error {
	res, err := s.db.Exec(
		`UPDATE tools SET installed = ? WHERE name = ?`, boolToInt(installed), strings.TrimSpace(name),
	)
	if err != nil {
		return fmt.Errorf("store: set installed %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrToolNotFound, name)
	}
	return nil
}

// SearchTools treats query as a category first, then as an exact tool
// name. When neither matches, every tool is returned.
func (s *Store) SearchTools(query string) ([]Tool, error) {
	q := strings.TrimSpace(query)
	if q != "" {
		byCategory, err := s.ListTools(q)
		if err != nil {
			return nil, err
		}
		if len(byCategory) > 0 {
			return byCategory, nil
		}

		t, err := s.GetTool(q)
		switch {
		case err == nil:
			return []Tool{*t}, nil
		case !errors.Is(err, ErrToolNotFound):
			return nil, err
		}
		s.log.Debug("registry search fell back to full listing", zap.String("query", q))
	}
	return s.ListTools("")
}

// Categories returns the distinct categories, sorted.
func (s *Store) Categories() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT lower(category) FROM tools ORDER BY 1`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *Store) queryTools(query string, args ...any) ([]Tool, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query tools: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []Tool{}
	for rows.Next() {
		t, err := scanTool(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *t)
	}
	return results, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTool(sc scanner) (*Tool, error) {
	var t Tool
	var installed int
	if err := sc.Scan(&t.Name, &t.Category, &t.Description, &t.URL, &t.PipPackage, &installed); err != nil {
		return nil, err
	}
	t.Installed = installed != 0
	return &t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
