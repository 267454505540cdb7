package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/templates"
)

// TemplateTool handles the reasoning_template MCP tool.
type TemplateTool struct{}

// NewTemplateTool creates a TemplateTool.
func NewTemplateTool() *TemplateTool {
	return &TemplateTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *TemplateTool) Definition() mcp.Tool {
	return mcp.NewTool("reasoning_template",
		mcp.WithDescription("Return a Markdown scaffold for a scientific reasoning strategy."),
		mcp.WithString("strategy",
			mcp.Description("Reasoning strategy. Default: scientific_method"),
			mcp.Enum(templates.Strategies()...),
			mcp.DefaultString("scientific_method"),
		),
	)
}

// Handle processes the reasoning_template tool call.
func (t *TemplateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	strategy := req.GetString("strategy", "scientific_method")
	return mcp.NewToolResultText(templates.ReasoningTemplate(strategy)), nil
}
