// Package tools implements the ptb MCP tool handlers.
//
// Each tool is a struct holding its dependencies, with a Definition for
// registration and a Handle compatible with mcp-go's CallToolRequest
// signature. One file per tool.
package tools

import (
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"go.uber.org/zap"

	"github.com/proteintoolbox/ptb/internal/reasoning"
	"github.com/proteintoolbox/ptb/internal/store"
	"github.com/proteintoolbox/ptb/internal/workflow"
)

// PlanRecorder persists produced plans. *store.Store implements it.
type PlanRecorder interface {
	SavePlan(p store.PlanRecord) (string, error)
}

// ToolSearcher looks up registry entries. *store.Store implements it.
type ToolSearcher interface {
	SearchTools(query string) ([]store.Tool, error)
}

// stepsParam is the shared description for delimited step lists.
const stepsParam = "Ordered workflow steps separated by '|', ';' or newlines " +
	"(e.g. 'Fetch PDB 1ABC | Minimize | Dock ligand')"

// requireSteps reads and splits the steps argument.
func requireSteps(req mcp.CallToolRequest) ([]string, *mcp.CallToolResult) {
	steps := workflow.SplitSteps(req.GetString("steps", ""))
	if len(steps) == 0 {
		return nil, mcp.NewToolResultError("'steps' is required and must contain at least one step")
	}
	return steps, nil
}

// recordPlan stores the plan when a recorder is configured. Failures are
// logged and never fail the tool call.
func recordPlan(rec PlanRecorder, log *zap.Logger, project, goal, kind string, p reasoning.Plan, a reasoning.Analysis) string {
	if rec == nil {
		return ""
	}
	r, err := store.NewPlanRecord(project, goal, kind, p, a)
	if err != nil {
		log.Warn("encoding plan", zap.Error(err))
		return ""
	}
	id, err := rec.SavePlan(r)
	if err != nil {
		log.Warn("recording plan", zap.Error(err))
		return ""
	}
	return id
}

func nopIfNil(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log
}

func trimmed(req mcp.CallToolRequest, key string) string {
	return strings.TrimSpace(req.GetString(key, ""))
}

func requiredArg(req mcp.CallToolRequest, key string) (string, *mcp.CallToolResult) {
	v := trimmed(req, key)
	if v == "" {
		return "", mcp.NewToolResultError(fmt.Sprintf("'%s' is required", key))
	}
	return v, nil
}
