// Package skills exposes the planning core as a closed set of named skills
// for agents that speak a single-string calling convention:
//
//	skill_name|arg1|arg2
//
// Every skill ID maps to a typed handler in a table built at construction
// time; there is no reflection and no lookup of arbitrary functions.
package skills

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/proteintoolbox/ptb/internal/decompose"
	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/reasoning"
	"github.com/proteintoolbox/ptb/internal/sequence"
	"github.com/proteintoolbox/ptb/internal/templates"
	"github.com/proteintoolbox/ptb/internal/workflow"
)

// ID identifies a skill.
type ID string

const (
	FindPath                 ID = "find_path"
	GetPrerequisites         ID = "get_prerequisites"
	ValidateWorkflowLogic    ID = "validate_workflow_logic"
	ProposeRefinements       ID = "propose_refinements"
	DecomposeRequest         ID = "decompose_request"
	GetReasoningTemplate     ID = "get_reasoning_template"
	StandardWorkflow         ID = "standard_workflow"
	InferFunctionalityIssues ID = "infer_functionality_issues"
	AlanineScan              ID = "alanine_scan"
	SaturationLibrary        ID = "saturation_library"
	ValidateSequence         ID = "validate_sequence"
)

// Skill is the data record describing one skill.
type Skill struct {
	ID          ID     `json:"name"`
	Signature   string `json:"signature"`
	Description string `json:"description"`
}

type handler func(args []string) (string, error)

type entry struct {
	Skill
	minArgs int
	run     handler
}

// Registry dispatches skill commands. It is read-only after NewRegistry
// and safe for concurrent use.
type Registry struct {
	order   []ID
	entries map[ID]entry
}

// NewRegistry builds the dispatch table over the given ontology.
func NewRegistry(onto *ontology.Graph) *Registry {
	r := &Registry{entries: make(map[ID]entry)}

	r.add(FindPath, "(start_concept, end_concept)",
		"Find the shortest valid chain of transformations between two scientific concepts.", 2,
		func(a []string) (string, error) { return strings.Join(onto.FindPath(a[0], a[1]), "\n"), nil })

	r.add(GetPrerequisites, "(concept)",
		"List the concepts that directly precede a concept in the ontology.", 1,
		func(a []string) (string, error) { return toJSON(onto.Prerequisites(a[0])) })

	r.add(ValidateWorkflowLogic, "(steps)",
		"Check an ordered, ';'-separated list of workflow steps for ordering mistakes.", 1,
		func(a []string) (string, error) { return toJSON(workflow.Validate(workflow.SplitSteps(a[0]))) })

	r.add(ProposeRefinements, "(steps)",
		"Suggest missing minimization, validation or aggregation steps for a ';'-separated workflow.", 1,
		func(a []string) (string, error) { return toJSON(workflow.ProposeRefinements(workflow.SplitSteps(a[0]))) })

	r.add(DecomposeRequest, "(request)",
		"Classify a free-text goal into intent, implied steps and inferred constraints.", 1,
		func(a []string) (string, error) { return toJSON(decompose.Request(a[0])) })

	r.add(GetReasoningTemplate, "(strategy)",
		"Return a reasoning scaffold for a strategy such as scientific_method.", 1,
		func(a []string) (string, error) { return templates.ReasoningTemplate(a[0]), nil })

	r.add(StandardWorkflow, "(kind)",
		"Build a standard reasoning graph (protein_design, docking) and return its plan.", 1,
		func(a []string) (string, error) {
			g, err := reasoning.StandardWorkflow(reasoning.WorkflowKind(a[0]))
			if err != nil {
				return "", err
			}
			return toJSON(g.Plan())
		})

	r.add(InferFunctionalityIssues, "(sequence)",
		"Flag composition issues (length, odd cysteines, disorder) in a protein sequence.", 1,
		func(a []string) (string, error) {
			seq, err := sequence.Clean(a[0])
			if err != nil {
				return "", err
			}
			return toJSON(sequence.InferIssues(seq))
		})

	r.add(AlanineScan, "(sequence)",
		"Generate an alanine scanning library, keyed by mutation name.", 1,
		func(a []string) (string, error) {
			seq, err := sequence.Clean(a[0])
			if err != nil {
				return "", err
			}
			return toJSON(sequence.AlanineScan(seq))
		})

	r.add(SaturationLibrary, "(sequence, position)",
		"Generate all 19 substitutions at a 1-based position.", 2,
		func(a []string) (string, error) {
			seq, err := sequence.Clean(a[0])
			if err != nil {
				return "", err
			}
			pos, err := strconv.Atoi(a[1])
			if err != nil {
				return "", fmt.Errorf("position %q is not an integer", a[1])
			}
			lib, err := sequence.SaturationLibrary(seq, pos)
			if err != nil {
				return "", err
			}
			return toJSON(lib)
		})

	r.add(ValidateSequence, "(sequence)",
		"Normalize a protein sequence and reject non-standard amino acids.", 1,
		func(a []string) (string, error) { return sequence.Clean(a[0]) })

	return r
}

func (r *Registry) add(id ID, sig, desc string, minArgs int, run handler) {
	r.order = append(r.order, id)
	r.entries[id] = entry{
		Skill:   Skill{ID: id, Signature: sig, Description: desc},
		minArgs: minArgs,
		run:     run,
	}
}

// List returns the skills in registration order.
func (r *Registry) List() []Skill {
	out := make([]Skill, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].Skill)
	}
	return out
}

// Lookup returns the skill record for id.
func (r *Registry) Lookup(id ID) (Skill, bool) {
	e, ok := r.entries[id]
	return e.Skill, ok
}

// Describe renders the capability listing given to an LLM.
func (r *Registry) Describe() string {
	var b strings.Builder
	b.WriteString("Execute a specific skill. Format: 'skill_name|arg1|arg2'. Available skills:\n")
	for _, s := range r.List() {
		fmt.Fprintf(&b, "- %s%s: %s\n", s.ID, s.Signature, s.Description)
	}
	return strings.TrimRight(b.String(), "\n")
}

// Execute runs a "skill|arg1|arg2" command. Failures are returned as text
// prefixed with "Error" so an agent can read them; Execute never panics
// on bad input.
func (r *Registry) Execute(command string) string {
	name, args := ParseCommand(command)
	e, ok := r.entries[ID(name)]
	if !ok {
		return fmt.Sprintf("Error: Unknown skill '%s'", name)
	}
	if len(args) < e.minArgs {
		return fmt.Sprintf("Error executing skill: %s expects %d argument(s) %s, got %d",
			name, e.minArgs, e.Signature, len(args))
	}

	out, err := e.run(args)
	if err != nil {
		return fmt.Sprintf("Error executing skill: %v", err)
	}
	return out
}

// ParseCommand splits a '|' delimited command into a skill name and
// trimmed positional arguments.
func ParseCommand(command string) (string, []string) {
	parts := strings.Split(command, "|")
	args := make([]string, 0, len(parts)-1)
	for _, p := range parts[1:] {
		args = append(args, strings.TrimSpace(p))
	}
	return strings.TrimSpace(parts[0]), args
}

func toJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("encoding result: %w", err)
	}
	return string(data), nil
}
