package workflow

import "strings"

// Suggestion texts returned by ProposeRefinements, in check order.
const (
	SuggestMinimize    = "Consider adding an energy minimization step (e.g., OpenMM) after design or mutation to relax the structure."
	SuggestValidate    = "Consider adding a structural validation step (clash and backbone checks) after design or docking."
	SuggestAggregation = "Consider checking the designed sequences for aggregation-prone regions."
)

// ProposeRefinements looks at the combined lowercase text of all steps and
// returns up to three suggestions, always in the order minimize, validate,
// aggregation.
func ProposeRefinements(steps []string) []string {
	text := strings.ToLower(strings.Join(steps, " "))
	has := func(kw string) bool { return strings.Contains(text, kw) }

	suggestions := []string{}
	if (has("design") || has("mutation")) && !has("minimize") {
		suggestions = append(suggestions, SuggestMinimize)
	}
	if (has("design") || has("dock")) && !has("validate") {
		suggestions = append(suggestions, SuggestValidate)
	}
	if has("design") && !has("aggregation") {
		suggestions = append(suggestions, SuggestAggregation)
	}
	return suggestions
}

// SplitSteps turns a single delimited argument into trimmed, non-empty
// steps. Both '|' and newlines separate steps, as does ';'.
func SplitSteps(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '|' || r == '\n' || r == ';'
	})
	steps := make([]string, 0, len(fields))
	for _, f := range fields {
		if s := strings.TrimSpace(f); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}
