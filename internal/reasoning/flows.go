package reasoning

import (
	"fmt"
	"sort"
)

// WorkflowKind names a standard reasoning graph.
type WorkflowKind string

const (
	KindProteinDesign WorkflowKind = "protein_design"
	KindDocking       WorkflowKind = "docking"
)

// GraphSpec is a serializable description of a reasoning graph.
type GraphSpec struct {
	Steps        []Step       `json:"steps"`
	Dependencies []Dependency `json:"dependencies"`
}

// standardWorkflows defines the step list and edges for each standard kind.
var standardWorkflows = map[WorkflowKind]GraphSpec{
	KindProteinDesign: {
		Steps: []Step{
			{ID: "obs", Description: "Identify target constraints", Type: TypeObservation},
			{ID: "hyp", Description: "Propose fold/sequence strategy", Type: TypeHypothesis},
			{ID: "search", Description: "Search PDB/Literature", Type: TypeExperiment},
			{ID: "design", Description: "Generate sequences", Type: TypeExperiment},
			{ID: "fold", Description: "Predict structure (Fold)", Type: TypeExperiment},
			{ID: "eval", Description: "Evaluate metrics", Type: TypeAnalysis},
		},
		Dependencies: []Dependency{
			{"obs", "hyp"}, {"hyp", "search"}, {"search", "design"},
			{"design", "fold"}, {"fold", "eval"},
		},
	},
	KindDocking: {
		Steps: []Step{
			{ID: "prep_rec", Description: "Prepare Receptor", Type: TypeExperiment},
			{ID: "prep_lig", Description: "Prepare Ligand", Type: TypeExperiment},
			{ID: "dock", Description: "Run Vina Docking", Type: TypeExperiment},
			{ID: "analyze", Description: "Analyze Binding Energy", Type: TypeAnalysis},
		},
		Dependencies: []Dependency{
			{"prep_rec", "dock"}, {"prep_lig", "dock"}, {"dock", "analyze"},
		},
	},
}

// StandardWorkflowKinds returns the known kinds, sorted.
func StandardWorkflowKinds() []string {
	kinds := make([]string, 0, len(standardWorkflows))
	for k := range standardWorkflows {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}

// StandardWorkflow builds the reasoning graph for kind. An unknown kind
// yields an empty graph, which plans to an empty sequence.
func StandardWorkflow(kind WorkflowKind) (*Graph, error) {
	spec, ok := standardWorkflows[kind]
	if !ok {
		return NewGraph(), nil
	}
	return Build(spec)
}

// Build creates a graph from spec, adding all steps before any dependency.
// The first failing step or dependency aborts the build.
func Build(spec GraphSpec) (*Graph, error) {
	g := NewGraph()
	for _, s := range spec.Steps {
		if err := g.AddStep(s.ID, s.Description, s.Type); err != nil {
			return nil, fmt.Errorf("adding step %q: %w", s.ID, err)
		}
	}
	for _, d := range spec.Dependencies {
		if err := g.AddDependency(d.From, d.To); err != nil {
			return nil, fmt.Errorf("adding dependency %s->%s: %w", d.From, d.To, err)
		}
	}
	return g, nil
}
