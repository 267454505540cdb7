package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/report"
	"github.com/proteintoolbox/ptb/internal/workflow"
)

// RefineTool handles the workflow_refine MCP tool.
type RefineTool struct{}

// NewRefineTool creates a RefineTool.
func NewRefineTool() *RefineTool {
	return &RefineTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *RefineTool) Definition() mcp.Tool {
	return mcp.NewTool("workflow_refine",
		mcp.WithDescription(
			"Suggest missing steps for a workflow: energy minimization after folding or design, "+
				"validation after docking, aggregation checks for designs.",
		),
		mcp.WithString("steps",
			mcp.Required(),
			mcp.Description(stepsParam),
		),
	)
}

// Handle processes the workflow_refine tool call.
func (t *RefineTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	steps, errResult := requireSteps(req)
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(report.Refinements(steps, workflow.ProposeRefinements(steps))), nil
}
