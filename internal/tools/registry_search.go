package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/report"
)

// RegistrySearchTool handles the registry_search MCP tool.
type RegistrySearchTool struct {
	search ToolSearcher
}

// NewRegistrySearchTool creates a RegistrySearchTool.
func NewRegistrySearchTool(search ToolSearcher) *RegistrySearchTool {
	return &RegistrySearchTool{search: search}
}

// Definition returns the MCP tool definition for registration.
func (t *RegistrySearchTool) Definition() mcp.Tool {
	return mcp.NewTool("registry_search",
		mcp.WithDescription(
			"Search the registry of protein design tools by category (design, folding, docking, "+
				"simulation, analysis, search) or by name. Unmatched queries list every tool.",
		),
		mcp.WithString("query",
			mcp.Description("Category or tool name; empty lists everything"),
		),
	)
}

// Handle processes the registry_search tool call.
func (t *RegistrySearchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	found, err := t.search.SearchTools(trimmed(req, "query"))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to search registry: %v", err)), nil
	}
	return mcp.NewToolResultText(report.Tools(found)), nil
}
