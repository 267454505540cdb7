package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/report"
)

// PrerequisitesTool handles the ontology_prerequisites MCP tool.
type PrerequisitesTool struct {
	onto *ontology.Graph
}

// NewPrerequisitesTool creates a PrerequisitesTool over onto.
func NewPrerequisitesTool(onto *ontology.Graph) *PrerequisitesTool {
	return &PrerequisitesTool{onto: onto}
}

// Definition returns the MCP tool definition for registration.
func (t *PrerequisitesTool) Definition() mcp.Tool {
	return mcp.NewTool("ontology_prerequisites",
		mcp.WithDescription("List the concepts that directly precede a concept in the scientific ontology."),
		mcp.WithString("concept",
			mcp.Required(),
			mcp.Description("Concept name, e.g. Structure3D"),
		),
	)
}

// Handle processes the ontology_prerequisites tool call.
func (t *PrerequisitesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	concept, errResult := requiredArg(req, "concept")
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(report.Prerequisites(concept, t.onto.Prerequisites(concept))), nil
}
