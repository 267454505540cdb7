package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/proteintoolbox/ptb/internal/reasoning"
	"github.com/proteintoolbox/ptb/internal/report"
)

// PlanTool handles the reasoning_plan MCP tool. It builds a reasoning
// graph from JSON, linearizes it and optionally records the result.
type PlanTool struct {
	rec PlanRecorder
	log *zap.Logger
}

// NewPlanTool creates a PlanTool. rec may be nil to skip recording.
func NewPlanTool(rec PlanRecorder, log *zap.Logger) *PlanTool {
	return &PlanTool{rec: rec, log: nopIfNil(log)}
}

// Definition returns the MCP tool definition for registration.
func (t *PlanTool) Definition() mcp.Tool {
	return mcp.NewTool("reasoning_plan",
		mcp.WithDescription(
			"Build a reasoning graph of steps and dependencies and return it as an ordered plan. "+
				"Dependencies that would create circular logic are rejected.",
		),
		mcp.WithString("steps_json",
			mcp.Required(),
			mcp.Description(
				`JSON object: {"steps":[{"id":"obs","description":"...","type":"observation"}],`+
					`"dependencies":[{"from":"obs","to":"hyp"}]}. `+
					"Types: observation, hypothesis, experiment, analysis, conclusion, general",
			),
		),
		mcp.WithString("goal",
			mcp.Description("Short statement of what the plan is for"),
		),
		mcp.WithString("project",
			mcp.Description("Existing project to file the recorded plan under"),
		),
	)
}

// Handle processes the reasoning_plan tool call.
func (t *PlanTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, errResult := requiredArg(req, "steps_json")
	if errResult != nil {
		return errResult, nil
	}

	var spec reasoning.GraphSpec
	if err := json.Unmarshal([]byte(raw), &spec); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid steps_json: %v", err)), nil
	}
	if len(spec.Steps) == 0 {
		return mcp.NewToolResultError("steps_json must contain at least one step"), nil
	}

	g, err := reasoning.Build(spec)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	goal, project := trimmed(req, "goal"), trimmed(req, "project")
	plan, analysis := g.Plan(), g.Analyze()
	id := recordPlan(t.rec, t.log, project, goal, "custom", plan, analysis)
	if project != "" && t.rec != nil && id == "" {
		return mcp.NewToolResultError(fmt.Sprintf("plan not recorded: project %q not found or store unavailable", project)), nil
	}
	t.log.Debug("reasoning plan built", zap.String("graph", g.ID()), zap.Int("steps", analysis.NumSteps))

	return mcp.NewToolResultText(report.Plan(goal, plan, analysis, id)), nil
}
