// Package workflow checks free-text multi-step protocols for ordering
// mistakes and suggests missing steps.
//
// The checks are keyword heuristics over lowercase text, not a prover: a
// step "involves" a concept when the concept keyword occurs anywhere in it.
package workflow

import (
	"fmt"
	"strings"
)

// Keywords is the concept vocabulary scanned in every step, in scan order.
var Keywords = []string{
	"dock", "fold", "structure", "design", "mutation",
	"search", "target", "minimize", "validate", "pdb",
}

// Rule states that a step mentioning Concept needs one of Requires to have
// appeared first.
type Rule struct {
	Concept  string   `json:"concept"`
	Requires []string `json:"requires"`
	Enforced bool     `json:"enforced"`
}

// Rules is the declared dependency table. Only the dock rule is enforced;
// the others are informational and are reported by Validate as warnings
// only when Options.Strict is set.
var Rules = []Rule{
	{Concept: "dock", Requires: []string{"fold", "structure", "pdb"}, Enforced: true},
	{Concept: "minimize", Requires: []string{"structure", "fold", "pdb", "dock"}},
	{Concept: "validate", Requires: []string{"design", "structure", "fold", "minimize"}},
	{Concept: "design", Requires: []string{"target", "search", "structure"}},
}

// Report is the outcome of a validation pass.
type Report struct {
	Valid    bool     `json:"valid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Options tunes Validate.
type Options struct {
	// Strict reports violations of the non-enforced rules as warnings.
	Strict bool
}

// Validate checks the ordering of steps with the default options.
func Validate(steps []string) Report {
	return ValidateWithOptions(steps, Options{})
}

// ValidateWithOptions scans steps in order, accumulating the concepts seen
// so far (the current step included), and records an error for every step
// that mentions docking before any structure-producing concept. Errors name
// the 1-based step index and quote the step verbatim. Valid is true iff no
// errors were recorded.
func ValidateWithOptions(steps []string, opts Options) Report {
	report := Report{Errors: []string{}, Warnings: []string{}}
	seen := make(map[string]bool, len(Keywords))

	for i, step := range steps {
		lower := strings.ToLower(step)
		mentioned := make(map[string]bool)
		for _, kw := range Keywords {
			if strings.Contains(lower, kw) {
				mentioned[kw] = true
				seen[kw] = true
			}
		}

		for _, r := range Rules {
			if !mentioned[r.Concept] || anySeen(seen, r.Requires) {
				continue
			}
			switch {
			case r.Enforced:
				report.Errors = append(report.Errors, fmt.Sprintf(
					"Step %d ('%s') involves %s, but none of [%s] appears in this or any previous step.",
					i+1, step, r.Concept, strings.Join(r.Requires, ", ")))
			case opts.Strict:
				report.Warnings = append(report.Warnings, fmt.Sprintf(
					"Step %d ('%s') involves %s before any of [%s].",
					i+1, step, r.Concept, strings.Join(r.Requires, ", ")))
			}
		}
	}

	report.Valid = len(report.Errors) == 0
	return report
}

func anySeen(seen map[string]bool, concepts []string) bool {
	for _, c := range concepts {
		if seen[c] {
			return true
		}
	}
	return false
}
