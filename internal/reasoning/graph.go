package reasoning

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Graph is a reasoning DAG. The zero value is not usable; call NewGraph.
type Graph struct {
	id    string
	order []string // step ids in insertion order
	steps map[string]Step
	succ  map[string][]string
	edges map[Dependency]bool
	deps  []Dependency // insertion order
}

// NewGraph returns an empty reasoning graph with a fresh random id.
func NewGraph() *Graph {
	return &Graph{
		id:    uuid.NewString(),
		steps: make(map[string]Step),
		succ:  make(map[string][]string),
		edges: make(map[Dependency]bool),
	}
}

// ID identifies the graph, e.g. in the plan audit log.
func (g *Graph) ID() string { return g.id }

// AddStep inserts a step. An empty type defaults to general. Re-using an
// id returns ErrDuplicateStep and leaves the existing step untouched.
func (g *Graph) AddStep(id, description string, typ StepType) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("reasoning: step id is required")
	}
	if typ == "" {
		typ = TypeGeneral
	}
	if err := ValidateStepType(typ); err != nil {
		return err
	}
	if _, exists := g.steps[id]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateStep, id)
	}

	g.steps[id] = Step{ID: id, Description: description, Type: typ}
	g.order = append(g.order, id)
	return nil
}

// AddDependency declares that to depends on from. Unknown ids fail with
// *UnknownStepError; an edge that would create a cycle fails with
// *CyclicDependencyError. In both cases the graph is unchanged. Adding an
// existing edge again is a no-op. Ids are trimmed like in AddStep.
func (g *Graph) AddDependency(from, to string) error {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	if _, ok := g.steps[from]; !ok {
		return &UnknownStepError{ID: from, Role: "source"}
	}
	if _, ok := g.steps[to]; !ok {
		return &UnknownStepError{ID: to, Role: "target"}
	}

	dep := Dependency{From: from, To: to}
	if g.edges[dep] {
		return nil
	}
	// from -> to closes a cycle iff from is already reachable from to.
	if from == to || g.reachable(to, from) {
		return &CyclicDependencyError{From: from, To: to}
	}

	g.edges[dep] = true
	g.deps = append(g.deps, dep)
	g.succ[from] = append(g.succ[from], to)
	return nil
}

// reachable reports whether target can be reached from start.
func (g *Graph) reachable(start, target string) bool {
	seen := map[string]bool{start: true}
	stack := []string{start}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur == target {
			return true
		}
		for _, next := range g.succ[cur] {
			if !seen[next] {
				seen[next] = true
				stack = append(stack, next)
			}
		}
	}
	return false
}

// Steps returns the steps in insertion order.
func (g *Graph) Steps() []Step {
	out := make([]Step, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.steps[id])
	}
	return out
}

// Dependencies returns the edges in insertion order.
func (g *Graph) Dependencies() []Dependency {
	return append([]Dependency(nil), g.deps...)
}

// topoOrder runs Kahn's algorithm, releasing ready steps in insertion order.
// ok is false when some steps could not be consumed (a cycle).
func (g *Graph) topoOrder() (order []string, ok bool) {
	indeg := make(map[string]int, len(g.order))
	for _, d := range g.deps {
		indeg[d.To]++
	}

	var ready []string
	for _, id := range g.order {
		if indeg[id] == 0 {
			ready = append(ready, id)
		}
	}

	order = make([]string, 0, len(g.order))
	for len(ready) > 0 {
		cur := ready[0]
		ready = ready[1:]
		order = append(order, cur)
		for _, next := range g.succ[cur] {
			indeg[next]--
			if indeg[next] == 0 {
				ready = append(ready, next)
			}
		}
	}
	return order, len(order) == len(g.order)
}

// Plan linearizes the graph in topological order. An empty graph yields an
// empty plan.
func (g *Graph) Plan() Plan {
	order, ok := g.topoOrder()
	if !ok {
		return Plan{Steps: []PlanEntry{}, Error: "Graph contains cycles."}
	}

	entries := make([]PlanEntry, 0, len(order))
	for _, id := range order {
		s := g.steps[id]
		entries = append(entries, PlanEntry{ID: s.ID, Type: s.Type, Description: s.Description})
	}
	return Plan{Steps: entries}
}

// Analyze summarizes the graph structure. It has no side effects.
func (g *Graph) Analyze() Analysis {
	indeg := make(map[string]int, len(g.order))
	for _, d := range g.deps {
		indeg[d.To]++
	}

	roots := []string{}
	leaves := []string{}
	for _, id := range g.order {
		if indeg[id] == 0 {
			roots = append(roots, id)
		}
		if len(g.succ[id]) == 0 {
			leaves = append(leaves, id)
		}
	}

	_, ok := g.topoOrder()
	return Analysis{
		NumSteps:        len(g.order),
		NumDependencies: len(g.deps),
		IsValidDAG:      ok,
		Roots:           roots,
		Leaves:          leaves,
	}
}
