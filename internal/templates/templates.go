// Package templates provides reasoning templates: markdown scaffolds that
// guide an agent through a scientific reasoning strategy.
//
// Templates are embedded at build time, one file per strategy under
// strategies/. The file name (without extension) is the strategy name.
package templates

import (
	"embed"
	"fmt"
	"path"
	"sort"
	"strings"
)

//go:embed strategies/*.md
var strategyFS embed.FS

// Strategies returns the available strategy names, sorted.
func Strategies() []string {
	entries, err := strategyFS.ReadDir("strategies")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(names)
	return names
}

// ReasoningTemplate returns the scaffold for strategy. Names are matched
// case-insensitively. An unknown strategy is not an error: the returned
// text starts with "Unknown strategy" and lists the valid choices.
func ReasoningTemplate(strategy string) string {
	name := strings.ToLower(strings.TrimSpace(strategy))
	if name != "" && !strings.ContainsAny(name, "/\\.") {
		if data, err := strategyFS.ReadFile(path.Join("strategies", name+".md")); err == nil {
			return string(data)
		}
	}
	return fmt.Sprintf("Unknown strategy '%s'. Available strategies: %s",
		strategy, strings.Join(Strategies(), ", "))
}
