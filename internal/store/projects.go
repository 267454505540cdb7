package store

import (
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"go.uber.org/zap"
)

var (
	// ErrProjectExists is returned by CreateProject for a taken name.
	ErrProjectExists = errors.New("store: project already exists")
	// ErrProjectNotFound is returned when a project name is unknown.
	ErrProjectNotFound = errors.New("store: project not found")
)

const projectsDir = "projects"

// Project groups the files and plans of one design campaign. Its files
// live under Dir.
type Project struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	Dir         string `json:"dir"`
}

// validProjectName rejects names that cannot be used as a single path
// element.
func validProjectName(name string) error {
	if name == "" {
		return fmt.Errorf("store: project name is required")
	}
	if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("store: invalid project name %q", name)
	}
	return nil
}

func (s *Store) projectDir(name string) string {
	return filepath.Join(s.dataDir, projectsDir, name)
}

// CreateProject registers a project and creates its directory.
func (s *Store) CreateProject(name, description string) (*Project, error) {
	name = strings.TrimSpace(name)
	if err := validProjectName(name); err != nil {
		return nil, err
	}
	if _, err := s.GetProject(name); err == nil {
		return nil, fmt.Errorf("%w: %s", ErrProjectExists, name)
	} else if !errors.Is(err, ErrProjectNotFound) {
		return nil, err
	}

	p := &Project{
		Name:        name,
		Description: description,
		CreatedAt:   timeNow().UTC().Format(createdLayout),
		Dir:         s.projectDir(name),
	}
	if err := os.MkdirAll(p.Dir, 0700); err != nil {
		return nil, fmt.Errorf("store: create project dir: %w", err)
	}
	_, err := s.db.Exec(
		`INSERT INTO projects (name, description, created_at) VALUES (?, ?, ?)`,
		p.Name, p.Description, p.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("store: create project %q: %w", name, err)
	}
	s.log.Info("project created", zap.String("name", name))
	return p, nil
}

// GetProject returns the project called name.
func (s *Store) GetProject(name string) (*Project, error) {
	row := s.db.QueryRow(`SELECT name, description, created_at FROM projects WHERE name = ?`, name)
	var p Project
	err := row.Scan(&p.Name, &p.Description, &p.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrProjectNotFound, name)
	}
	if err != nil {
		return nil, err
	}
	p.Dir = s.projectDir(p.Name)
	return &p, nil
}

// ListProjects returns all projects sorted by name.
func (s *Store) ListProjects() ([]Project, error) {
	rows, err := s.db.Query(`SELECT name, description, created_at FROM projects ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("store: list projects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	results := []Project{}
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.Name, &p.Description, &p.CreatedAt); err != nil {
			return nil, err
		}
		p.Dir = s.projectDir(p.Name)
		results = append(results, p)
	}
	return results, rows.Err()
}

// ProjectFiles lists the files under a project's directory as sorted
// slash-separated relative paths. A non-empty ext keeps only names with
// that suffix.
func (s *Store) ProjectFiles(name, ext string) ([]string, error) {
	p, err := s.GetProject(name)
	if err != nil {
		return nil, err
	}

	files := []string{}
	err = filepath.WalkDir(p.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() || (ext != "" && !strings.HasSuffix(d.Name(), ext)) {
			return nil
		}
		rel, err := filepath.Rel(p.Dir, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("store: list files of %q: %w", name, err)
	}
	sort.Strings(files)
	return files, nil
}

// AddProjectFile copies src into the project directory as destName, or
// under its base name when destName is empty. Returns the destination path.
func (s *Store) AddProjectFile(name, src, destName string) (string, error) {
	p, err := s.GetProject(name)
	if err != nil {
		return "", err
	}
	if destName == "" {
		destName = filepath.Base(src)
	}
	dest := filepath.Join(p.Dir, destName)
	if rel, err := filepath.Rel(p.Dir, dest); err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("store: destination %q escapes project %q", destName, name)
	}

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("store: open %s: %w", src, err)
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0700); err != nil {
		return "", fmt.Errorf("store: create %s: %w", filepath.Dir(dest), err)
	}
	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("store: create %s: %w", dest, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("store: copy to %s: %w", dest, err)
	}
	if err := out.Close(); err != nil {
		return "", err
	}
	s.log.Debug("project file added", zap.String("project", name), zap.String("file", destName))
	return dest, nil
}
