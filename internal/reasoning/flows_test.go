package reasoning

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardWorkflow_ProteinDesign(t *testing.T) {
	g, err := StandardWorkflow(KindProteinDesign)
	require.NoError(t, err)

	assert.Equal(t, []string{"obs", "hyp", "search", "design", "fold", "eval"}, planIDs(g.Plan()))

	a := g.Analyze()
	assert.Equal(t, []string{"obs"}, a.Roots)
	assert.Equal(t, []string{"eval"}, a.Leaves)
}

func TestStandardWorkflow_Docking(t *testing.T) {
	g, err := StandardWorkflow(KindDocking)
	require.NoError(t, err)

	ids := planIDs(g.Plan())
	require.Len(t, ids, 4)
	assert.Less(t, indexOf(ids, "prep_rec"), indexOf(ids, "dock"))
	assert.Less(t, indexOf(ids, "prep_lig"), indexOf(ids, "dock"))
	assert.Equal(t, "analyze", ids[3])
}

func TestStandardWorkflow_UnknownKindIsEmpty(t *testing.T) {
	g, err := StandardWorkflow("crystallography")
	require.NoError(t, err)
	assert.Empty(t, g.Plan().Steps)
}

func TestStandardWorkflow_FreshInstances(t *testing.T) {
	a, _ := StandardWorkflow(KindDocking)
	b, _ := StandardWorkflow(KindDocking)
	assert.NotEqual(t, a.ID(), b.ID())

	require.NoError(t, a.AddStep("extra", "", TypeGeneral))
	assert.Equal(t, 4, b.Analyze().NumSteps)
}

func TestStandardWorkflowKinds(t *testing.T) {
	assert.Equal(t, []string{"docking", "protein_design"}, StandardWorkflowKinds())
}

func TestBuild_Cycle(t *testing.T) {
	_, err := Build(GraphSpec{
		Steps:        []Step{{ID: "a"}, {ID: "b"}},
		Dependencies: []Dependency{{"a", "b"}, {"b", "a"}},
	})
	var cyc *CyclicDependencyError
	require.True(t, errors.As(err, &cyc))
	assert.Equal(t, "b", cyc.From)
}

func TestBuild_UnknownStep(t *testing.T) {
	_, err := Build(GraphSpec{
		Steps:        []Step{{ID: "a"}},
		Dependencies: []Dependency{{"a", "z"}},
	})
	var unknown *UnknownStepError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "z", unknown.ID)
}
