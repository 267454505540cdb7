package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/skills"
)

// SkillExecuteTool handles the skill_execute MCP tool.
type SkillExecuteTool struct {
	registry *skills.Registry
}

// NewSkillExecuteTool creates a SkillExecuteTool over registry.
func NewSkillExecuteTool(registry *skills.Registry) *SkillExecuteTool {
	return &SkillExecuteTool{registry: registry}
}

// Definition returns the MCP tool definition for registration.
func (t *SkillExecuteTool) Definition() mcp.Tool {
	return mcp.NewTool("skill_execute",
		mcp.WithDescription(t.registry.Describe()),
		mcp.WithString("command",
			mcp.Required(),
			mcp.Description("Skill invocation in the form 'skill_name|arg1|arg2'"),
		),
	)
}

// Handle processes the skill_execute tool call. Skill failures are
// reported in the text, not as tool errors.
func (t *SkillExecuteTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	command, errResult := requiredArg(req, "command")
	if errResult != nil {
		return errResult, nil
	}
	return mcp.NewToolResultText(t.registry.Execute(command)), nil
}
