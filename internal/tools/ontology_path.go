package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/report"
)

// FindPathTool handles the ontology_find_path MCP tool.
type FindPathTool struct {
	onto *ontology.Graph
}

// NewFindPathTool creates a FindPathTool over onto.
func NewFindPathTool(onto *ontology.Graph) *FindPathTool {
	return &FindPathTool{onto: onto}
}

// Definition returns the MCP tool definition for registration.
func (t *FindPathTool) Definition() mcp.Tool {
	return mcp.NewTool("ontology_find_path",
		mcp.WithDescription(
			"Find the shortest valid chain of scientific transformations between two concepts "+
				"(e.g. TargetDescription to Structure3D). Each step names the method to use. "+
				"Call this before planning to avoid impossible jumps.",
		),
		mcp.WithString("start",
			mcp.Required(),
			mcp.Description("Starting concept"),
			mcp.Enum(conceptNames(t.onto)...),
		),
		mcp.WithString("end",
			mcp.Required(),
			mcp.Description("Target concept"),
			mcp.Enum(conceptNames(t.onto)...),
		),
	)
}

// Handle processes the ontology_find_path tool call.
func (t *FindPathTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start, errResult := requiredArg(req, "start")
	if errResult != nil {
		return errResult, nil
	}
	end, errResult := requiredArg(req, "end")
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(report.Path(start, end, t.onto.FindPath(start, end))), nil
}

func conceptNames(onto *ontology.Graph) []string {
	cs := onto.Concepts()
	out := make([]string, len(cs))
	for i, c := range cs {
		out[i] = string(c)
	}
	return out
}
