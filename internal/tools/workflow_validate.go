package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/report"
	"github.com/proteintoolbox/ptb/internal/workflow"
)

// ValidateTool handles the workflow_validate MCP tool.
type ValidateTool struct{}

// NewValidateTool creates a ValidateTool.
func NewValidateTool() *ValidateTool {
	return &ValidateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *ValidateTool) Definition() mcp.Tool {
	return mcp.NewTool("workflow_validate",
		mcp.WithDescription(
			"Check an ordered workflow for logical ordering mistakes, such as docking before "+
				"any structure is available. Returns errors (plan is invalid) and warnings.",
		),
		mcp.WithString("steps",
			mcp.Required(),
			mcp.Description(stepsParam),
		),
		mcp.WithString("strict",
			mcp.Description("Also report soft ordering rules as warnings: 'true' or 'false'. Default: false"),
			mcp.Enum("true", "false"),
			mcp.DefaultString("false"),
		),
	)
}

// Handle processes the workflow_validate tool call.
func (t *ValidateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	steps, errResult := requireSteps(req)
	if errResult != nil {
		return errResult, nil
	}
	opts := workflow.Options{Strict: req.GetString("strict", "false") == "true"}
	r := workflow.ValidateWithOptions(steps, opts)
	return mcp.NewToolResultText(report.Validation(steps, r)), nil
}
