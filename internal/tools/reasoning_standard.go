package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/proteintoolbox/ptb/internal/reasoning"
	"github.com/proteintoolbox/ptb/internal/report"
)

// StandardWorkflowTool handles the reasoning_standard_workflow MCP tool.
type StandardWorkflowTool struct {
	rec PlanRecorder
	log *zap.Logger
}

// NewStandardWorkflowTool creates a StandardWorkflowTool. rec may be nil.
func NewStandardWorkflowTool(rec PlanRecorder, log *zap.Logger) *StandardWorkflowTool {
	return &StandardWorkflowTool{rec: rec, log: nopIfNil(log)}
}

// Definition returns the MCP tool definition for registration.
func (t *StandardWorkflowTool) Definition() mcp.Tool {
	return mcp.NewTool("reasoning_standard_workflow",
		mcp.WithDescription("Return the ordered plan of a predefined reasoning workflow."),
		mcp.WithString("kind",
			mcp.Required(),
			mcp.Description("Workflow kind"),
			mcp.Enum(reasoning.StandardWorkflowKinds()...),
		),
	)
}

// Handle processes the reasoning_standard_workflow tool call.
func (t *StandardWorkflowTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	kind, errResult := requiredArg(req, "kind")
	if errResult != nil {
		return errResult, nil
	}

	g, err := reasoning.StandardWorkflow(reasoning.WorkflowKind(kind))
	if err != nil {
		return nil, fmt.Errorf("building %s workflow: %w", kind, err)
	}

	plan, analysis := g.Plan(), g.Analyze()
	if analysis.NumSteps == 0 {
		return mcp.NewToolResultText(fmt.Sprintf(
			"Unknown workflow kind '%s'. Available kinds: %s",
			kind, strings.Join(reasoning.StandardWorkflowKinds(), ", "))), nil
	}

	id := recordPlan(t.rec, t.log, "", "", kind, plan, analysis)
	return mcp.NewToolResultText(report.Plan("", plan, analysis, id)), nil
}
