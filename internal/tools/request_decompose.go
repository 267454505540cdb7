package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/decompose"
	"github.com/proteintoolbox/ptb/internal/report"
)

// DecomposeTool handles the request_decompose MCP tool.
type DecomposeTool struct{}

// NewDecomposeTool creates a DecomposeTool.
func NewDecomposeTool() *DecomposeTool {
	return &DecomposeTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *DecomposeTool) Definition() mcp.Tool {
	return mcp.NewTool("request_decompose",
		mcp.WithDescription(
			"Break a free-text protein design request into an intent, the implied workflow steps "+
				"and inferred constraints (stability, solubility, affinity, specificity).",
		),
		mcp.WithString("request",
			mcp.Required(),
			mcp.Description("The user's request in natural language"),
		),
	)
}

// Handle processes the request_decompose tool call.
func (t *DecomposeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	text, errResult := requiredArg(req, "request")
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(report.Decomposition(text, decompose.Request(text))), nil
}
