// Package decompose turns a free-text design goal into a structured
// starting point for planning: an intent, an ordered list of implied steps
// and a set of inferred constraints.
//
// The three outputs are computed independently from keyword rules, so a
// request can carry design intent and still imply docking steps.
package decompose

import (
	"sort"
	"strings"
)

// Intent is the single category assigned to a request.
type Intent string

const (
	IntentDesign      Intent = "design"
	IntentAnalysis    Intent = "analysis"
	IntentInteraction Intent = "interaction"
	IntentUnknown     Intent = "unknown"
)

// Step tags emitted in ImpliedSteps.
const (
	StepSearch              = "search_literature_or_pdb"
	StepAnalyzeTarget       = "analyze_target"
	StepGenerateSequences   = "generate_sequences"
	StepValidateDesigns     = "validate_designs"
	StepPrepareReceptor     = "prepare_receptor"
	StepPrepareLigand       = "prepare_ligand"
	StepRunDocking          = "run_docking"
	StepLoadStructure       = "load_structure"
	StepCalculateProperties = "calculate_properties"
)

// Constraint tags emitted in InferredConstraints.
const (
	ConstraintStable       = "min_instability_index"
	ConstraintSoluble      = "solubility_preference"
	ConstraintHighAffinity = "high_affinity"
)

// Decomposition is the structured form of a request. InferredConstraints
// has set semantics and is returned sorted.
type Decomposition struct {
	Intent              Intent   `json:"intent"`
	ImpliedSteps        []string `json:"implied_steps"`
	InferredConstraints []string `json:"inferred_constraints"`
}

// intentRules are checked in order; the first match wins.
var intentRules = []struct {
	keywords []string
	intent   Intent
}{
	{[]string{"design", "optimize"}, IntentDesign},
	{[]string{"analyze", "assess"}, IntentAnalysis},
	{[]string{"dock", "bind"}, IntentInteraction},
}

// constraintRules map a trigger keyword to a constraint tag.
var constraintRules = []struct {
	keyword    string
	constraint string
}{
	{"stable", ConstraintStable},
	{"soluble", ConstraintSoluble},
	{"binder", ConstraintHighAffinity},
}

var (
	designSteps      = []string{StepSearch, StepAnalyzeTarget, StepGenerateSequences, StepValidateDesigns}
	interactionSteps = []string{StepPrepareReceptor, StepPrepareLigand, StepRunDocking}
	analysisSteps    = []string{StepLoadStructure, StepCalculateProperties}
)

// Request decomposes a free-text goal. It never fails; an unmatched request
// has IntentUnknown and no steps.
func Request(text string) Decomposition {
	lower := strings.ToLower(text)

	d := Decomposition{
		Intent:              classify(lower),
		ImpliedSteps:        []string{},
		InferredConstraints: []string{},
	}

	seen := make(map[string]bool)
	add := func(steps []string) {
		for _, s := range steps {
			if !seen[s] {
				seen[s] = true
				d.ImpliedSteps = append(d.ImpliedSteps, s)
			}
		}
	}

	if d.Intent == IntentDesign {
		add(designSteps)
	}
	if (d.Intent == IntentInteraction || strings.Contains(lower, "dock")) && !seen[StepPrepareReceptor] {
		add(interactionSteps)
	}
	if d.Intent == IntentAnalysis {
		add(analysisSteps)
	}

	for _, r := range constraintRules {
		if strings.Contains(lower, r.keyword) {
			d.InferredConstraints = append(d.InferredConstraints, r.constraint)
		}
	}
	sort.Strings(d.InferredConstraints)

	return d
}

func classify(lower string) Intent {
	for _, r := range intentRules {
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				return r.intent
			}
		}
	}
	return IntentUnknown
}

// HasConstraint reports whether c was inferred.
func (d Decomposition) HasConstraint(c string) bool {
	i := sort.SearchStrings(d.InferredConstraints, c)
	return i < len(d.InferredConstraints) && d.InferredConstraints[i] == c
}
