// Package ontology holds the fixed reference model of scientific data types
// used in protein design and the transformations allowed between them.
//
// The graph is built once by New and never mutated afterwards, so a single
// *Graph can be shared by any number of goroutines without locking.
// Lookups that miss are reported as data (a diagnostic string or an empty
// slice), never as errors: callers render them directly as text.
package ontology

import "fmt"

// Concept is a named category of scientific artifact. Identity is the name.
type Concept string

const (
	TargetDescription    Concept = "TargetDescription"
	GeneSequence         Concept = "GeneSequence"
	ProteinSequence      Concept = "ProteinSequence"
	MSA                  Concept = "MSA"
	Structure3D          Concept = "Structure3D"
	DockedComplex        Concept = "DockedComplex"
	MDTrajectory         Concept = "MDTrajectory"
	AnalysisReport       Concept = "AnalysisReport"
	ExperimentalProtocol Concept = "ExperimentalProtocol"
)

// Transition is a labeled, directed transformation between two concepts.
type Transition struct {
	From   Concept `json:"from"`
	To     Concept `json:"to"`
	Method string  `json:"method"`
}

// concepts lists the node set in declaration order.
var concepts = []Concept{
	TargetDescription, GeneSequence, ProteinSequence,
	MSA, Structure3D, DockedComplex, MDTrajectory,
	AnalysisReport, ExperimentalProtocol,
}

// transitions lists the edge set in declaration order. Path search visits
// successors in this order, which makes tie-breaking deterministic.
var transitions = []Transition{
	{TargetDescription, ProteinSequence, "Design/Generation"},
	{TargetDescription, GeneSequence, "Database Search"},
	{GeneSequence, ProteinSequence, "Translation"},
	{ProteinSequence, MSA, "Homology Search"},
	{ProteinSequence, Structure3D, "Folding (AlphaFold/ESMFold)"},
	{MSA, Structure3D, "Folding (AlphaFold)"},
	{Structure3D, DockedComplex, "Docking (Vina/DiffDock)"},
	{Structure3D, MDTrajectory, "Molecular Dynamics (OpenMM)"},
	{DockedComplex, AnalysisReport, "Scoring/Interaction Analysis"},
	{Structure3D, AnalysisReport, "Quality Assessment"},
	{ProteinSequence, AnalysisReport, "Property Calculation"},
	{AnalysisReport, ExperimentalProtocol, "Report Synthesis"},
}

// Graph is the read-only ontology: an adjacency map plus an edge-label table.
type Graph struct {
	nodes   map[Concept]bool
	order   []Concept
	edges   []Transition
	succ    map[Concept][]Concept
	pred    map[Concept][]Concept
	methods map[[2]Concept]string
}

// New builds the ontology graph.
func New() *Graph {
	g := &Graph{
		nodes:   make(map[Concept]bool, len(concepts)),
		order:   append([]Concept(nil), concepts...),
		edges:   append([]Transition(nil), transitions...),
		succ:    make(map[Concept][]Concept),
		pred:    make(map[Concept][]Concept),
		methods: make(map[[2]Concept]string, len(transitions)),
	}
	for _, c := range concepts {
		g.nodes[c] = true
	}
	for _, t := range transitions {
		g.succ[t.From] = append(g.succ[t.From], t.To)
		g.pred[t.To] = append(g.pred[t.To], t.From)
		g.methods[[2]Concept{t.From, t.To}] = t.Method
	}
	return g
}

// Concepts returns the node set in declaration order.
func (g *Graph) Concepts() []Concept {
	return append([]Concept(nil), g.order...)
}

// Transitions returns the edge set in declaration order.
func (g *Graph) Transitions() []Transition {
	return append([]Transition(nil), g.edges...)
}

// Has reports whether name is a concept in the ontology.
func (g *Graph) Has(name string) bool {
	return g.nodes[Concept(name)]
}

// Method returns the method label of the transition from -> to.
func (g *Graph) Method(from, to string) (string, bool) {
	m, ok := g.methods[[2]Concept{Concept(from), Concept(to)}]
	return m, ok
}

// FindPath returns one line per traversed edge of an edge-count-minimal path,
// formatted "Step i: Convert U to V via METHOD". start == end yields an empty
// slice. A missing concept or an unreachable end yields a single diagnostic line.
func (g *Graph) FindPath(start, end string) []string {
	for _, name := range []string{start, end} {
		if !g.Has(name) {
			return []string{fmt.Sprintf("Concept %s not found in ontology.", name)}
		}
	}

	path := g.shortestPath(Concept(start), Concept(end))
	if path == nil {
		return []string{fmt.Sprintf("No scientific path found from %s to %s.", start, end)}
	}

	steps := make([]string, 0, len(path)-1)
	for i := 0; i+1 < len(path); i++ {
		u, v := path[i], path[i+1]
		steps = append(steps, fmt.Sprintf("Step %d: Convert %s to %s via %s", i+1, u, v, g.methods[[2]Concept{u, v}]))
	}
	return steps
}

// shortestPath runs a breadth-first search and returns the node sequence
// from start to end, or nil when end is unreachable.
func (g *Graph) shortestPath(start, end Concept) []Concept {
	if start == end {
		return []Concept{start}
	}

	parent := map[Concept]Concept{start: start}
	queue := []Concept{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.succ[cur] {
			if _, seen := parent[next]; seen {
				continue
			}
			parent[next] = cur
			if next == end {
				return unwind(parent, start, end)
			}
			queue = append(queue, next)
		}
	}
	return nil
}

func unwind(parent map[Concept]Concept, start, end Concept) []Concept {
	var rev []Concept
	for c := end; c != start; c = parent[c] {
		rev = append(rev, c)
	}
	rev = append(rev, start)

	path := make([]Concept, len(rev))
	for i, c := range rev {
		path[len(rev)-1-i] = c
	}
	return path
}

// Prerequisites returns the direct predecessors of concept, or an empty
// slice when the concept is unknown.
func (g *Graph) Prerequisites(concept string) []string {
	preds := g.pred[Concept(concept)]
	out := make([]string, 0, len(preds))
	for _, p := range preds {
		out = append(out, string(p))
	}
	return out
}
