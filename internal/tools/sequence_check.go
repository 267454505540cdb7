package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/report"
	"github.com/proteintoolbox/ptb/internal/sequence"
)

// SequenceCheckTool handles the sequence_check MCP tool.
type SequenceCheckTool struct{}

// NewSequenceCheckTool creates a SequenceCheckTool.
func NewSequenceCheckTool() *SequenceCheckTool {
	return &SequenceCheckTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *SequenceCheckTool) Definition() mcp.Tool {
	return mcp.NewTool("sequence_check",
		mcp.WithDescription(
			"Validate an amino acid sequence and flag composition problems: very short length, "+
				"odd cysteine count, high proline/glycine content.",
		),
		mcp.WithString("sequence",
			mcp.Required(),
			mcp.Description("One-letter amino acid sequence; whitespace is ignored"),
		),
	)
}

// Handle processes the sequence_check tool call.
func (t *SequenceCheckTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	clean, err := sequence.Clean(req.GetString("sequence", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(report.Sequence(clean, sequence.InferIssues(clean))), nil
}
