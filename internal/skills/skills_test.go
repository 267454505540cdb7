package skills

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/workflow"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRegistry() *Registry {
	return NewRegistry(ontology.New())
}

func TestParseCommand(t *testing.T) {
	name, args := ParseCommand(" find_path | ProteinSequence |DockedComplex ")
	assert.Equal(t, "find_path", name)
	assert.Equal(t, []string{"ProteinSequence", "DockedComplex"}, args)

	name, args = ParseCommand("decompose_request")
	assert.Equal(t, "decompose_request", name)
	assert.Empty(t, args)
}

func TestList_EveryIDRegistered(t *testing.T) {
	r := newTestRegistry()
	ids := []ID{
		FindPath, GetPrerequisites, ValidateWorkflowLogic, ProposeRefinements,
		DecomposeRequest, GetReasoningTemplate, StandardWorkflow,
		InferFunctionalityIssues, AlanineScan, SaturationLibrary, ValidateSequence,
	}
	require.Len(t, r.List(), len(ids))
	for _, id := range ids {
		s, ok := r.Lookup(id)
		require.True(t, ok, "skill %s not registered", id)
		assert.NotEmpty(t, s.Description)
		assert.True(t, strings.HasPrefix(s.Signature, "("), "signature of %s", id)
	}
}

func TestDescribe(t *testing.T) {
	d := newTestRegistry().Describe()
	assert.True(t, strings.HasPrefix(d, "Execute a specific skill."))
	assert.Contains(t, d, "- find_path(start_concept, end_concept):")
	assert.Contains(t, d, "- saturation_library(sequence, position):")
}

func TestExecute_FindPath(t *testing.T) {
	out := newTestRegistry().Execute("find_path|ProteinSequence|DockedComplex")
	assert.Contains(t, out, "Step 1: Convert ProteinSequence to Structure3D")
	assert.Contains(t, out, "Step 2: Convert Structure3D to DockedComplex")
}

func TestExecute_ValidateWorkflow(t *testing.T) {
	out := newTestRegistry().Execute("validate_workflow_logic|search for target; run docking")

	var report workflow.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.False(t, report.Valid)
	assert.Len(t, report.Errors, 1)
}

func TestExecute_Decompose(t *testing.T) {
	out := newTestRegistry().Execute("decompose_request|Design a stable binder for EGFR")
	assert.Contains(t, out, `"intent":"design"`)
	assert.Contains(t, out, "min_instability_index")
}

func TestExecute_Template(t *testing.T) {
	r := newTestRegistry()
	assert.Contains(t, r.Execute("get_reasoning_template|scientific_method"), "Hypothesis")
	assert.Contains(t, r.Execute("get_reasoning_template|magic_wand"), "Unknown strategy")
}

func TestExecute_StandardWorkflow(t *testing.T) {
	out := newTestRegistry().Execute("standard_workflow|docking")
	assert.Contains(t, out, `"id":"prep_rec"`)
	assert.Contains(t, out, `"id":"analyze"`)
}

func TestExecute_SequenceSkills(t *testing.T) {
	r := newTestRegistry()
	assert.Equal(t, "MKT", r.Execute("validate_sequence| m k t "))
	assert.Contains(t, r.Execute("infer_functionality_issues|ACCC"), "Cysteine Warning")
	assert.Contains(t, r.Execute("alanine_scan|MK"), `"M1A":"AK"`)
	assert.Contains(t, r.Execute("saturation_library|MKT|2"), `"K2A":"MAT"`)
}

func TestExecute_Errors(t *testing.T) {
	r := newTestRegistry()
	tests := []struct {
		command string
		want    string
	}{
		{"teleport|here", "Error: Unknown skill 'teleport'"},
		{"", "Error: Unknown skill ''"},
		{"find_path|ProteinSequence", "Error executing skill:"},
		{"saturation_library|MKT|two", "not an integer"},
		{"saturation_library|MKT|9", "out of range"},
		{"validate_sequence|MKX", "invalid characters"},
	}
	for _, tt := range tests {
		assert.Contains(t, r.Execute(tt.command), tt.want, tt.command)
	}
}
