// Package reasoning builds task-scoped reasoning graphs: DAGs of
// observations, hypotheses, experiments and conclusions that can be
// linearized into an execution plan.
//
// A Graph is a DAG at every observable point in time. AddDependency checks
// for cycles before touching any state, so a rejected edge leaves the graph
// exactly as it was. A Graph is not safe for concurrent mutation; give each
// agent task its own instance.
package reasoning

import (
	"errors"
	"fmt"
	"strings"
)

// StepType categorizes a reasoning step.
type StepType string

const (
	TypeObservation StepType = "observation"
	TypeHypothesis  StepType = "hypothesis"
	TypeExperiment  StepType = "experiment"
	TypeAnalysis    StepType = "analysis"
	TypeConclusion  StepType = "conclusion"
	TypeGeneral     StepType = "general"
)

// validTypes is the set of allowed step types.
var validTypes = map[StepType]bool{
	TypeObservation: true,
	TypeHypothesis:  true,
	TypeExperiment:  true,
	TypeAnalysis:    true,
	TypeConclusion:  true,
	TypeGeneral:     true,
}

// StepTypeValues returns the allowed step types in display order.
func StepTypeValues() []string {
	return []string{
		string(TypeObservation), string(TypeHypothesis), string(TypeExperiment),
		string(TypeAnalysis), string(TypeConclusion), string(TypeGeneral),
	}
}

// ValidateStepType returns an error if the type is not recognized.
func ValidateStepType(t StepType) error {
	if !validTypes[t] {
		return fmt.Errorf("invalid step type %q: must be one of: %s", t, strings.Join(StepTypeValues(), ", "))
	}
	return nil
}

// Step is a single node of a reasoning graph. Steps are immutable once added.
type Step struct {
	ID          string   `json:"id"`
	Description string   `json:"description"`
	Type        StepType `json:"type"`
}

// Dependency is a directed edge: To depends on From having been done.
type Dependency struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// PlanEntry is one step of a linearized plan.
type PlanEntry struct {
	ID          string   `json:"id"`
	Type        StepType `json:"type"`
	Description string   `json:"description"`
}

// Plan is the topologically ordered output of Graph.Plan. Error is set
// instead of Steps when the graph cannot be linearized.
type Plan struct {
	Steps []PlanEntry `json:"steps"`
	Error string      `json:"error,omitempty"`
}

// Analysis is a structural summary of a reasoning graph.
type Analysis struct {
	NumSteps        int      `json:"num_steps"`
	NumDependencies int      `json:"num_dependencies"`
	IsValidDAG      bool     `json:"is_valid_dag"`
	Roots           []string `json:"roots"`
	Leaves          []string `json:"leaves"`
}

// ErrDuplicateStep is returned by AddStep when the id is already taken.
var ErrDuplicateStep = errors.New("reasoning: duplicate step id")

// UnknownStepError is returned when a dependency references a step id that
// was never added.
type UnknownStepError struct {
	ID   string
	Role string // "source" or "target"
}

func (e *UnknownStepError) Error() string {
	return fmt.Sprintf("reasoning: %s step %q not found", e.Role, e.ID)
}

// CyclicDependencyError is returned when an edge would close a cycle.
type CyclicDependencyError struct {
	From string
	To   string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("reasoning: adding dependency %s->%s creates a cycle (circular logic)", e.From, e.To)
}
