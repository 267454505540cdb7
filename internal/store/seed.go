package store

import (
	_ "embed"
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//go:embed seed_tools.yaml
var builtinSeed []byte

type seedFile struct {
	Tools []Tool `yaml:"tools"`
}

// ParseSeed decodes a YAML document with a top-level tools list.
func ParseSeed(data []byte) ([]Tool, error) {
	var f seedFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("store: parsing seed: %w", err)
	}
	return f.Tools, nil
}

// SeedTools upserts the tools listed in the YAML file at path, or the
// built-in list when path is empty. Existing installed flags are kept.
// Returns the number of tools written.
func (s *Store) SeedTools(path string) (int, error) {
	data := builtinSeed
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("store: reading seed %s: %w", path, err)
		}
	}

	tools, err := ParseSeed(data)
	if err != nil {
		return 0, err
	}

	for _, t := range tools {
		if existing, err := s.GetTool(t.Name); err == nil {
			t.Installed = t.Installed || existing.Installed
		}
		if err := s.UpsertTool(t); err != nil {
			return 0, err
		}
	}
	s.log.Debug("tool registry seeded", zap.Int("tools", len(tools)), zap.String("source", seedSource(path)))
	return len(tools), nil
}

func seedSource(path string) string {
	if path == "" {
		return "builtin"
	}
	return path
}
