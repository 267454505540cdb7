// Package prompts implements MCP prompt handlers for ptb.
//
// MCP prompts are user-triggered workflows (like slash commands) that
// instruct the AI to execute a specific sequence. Unlike tools (which
// the AI calls), prompts are initiated by the user.
package prompts

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

// DesignStartPrompt handles the design-start MCP prompt. It walks the AI
// through decomposing a goal, grounding it in the ontology and checking
// the resulting workflow before anything is run.
type DesignStartPrompt struct{}

// NewDesignStartPrompt creates a DesignStartPrompt.
func NewDesignStartPrompt() *DesignStartPrompt {
	return &DesignStartPrompt{}
}

// Definition returns the MCP prompt definition for registration.
func (p *DesignStartPrompt) Definition() mcp.Prompt {
	return mcp.NewPrompt("design-start",
		mcp.WithPromptDescription(
			"Plan a protein design or analysis task from a goal statement. "+
				"Decomposes the request, finds a valid scientific path and validates the workflow.",
		),
		mcp.WithArgument("goal",
			mcp.ArgumentDescription("What you want to achieve, e.g. 'Design a stable binder for IL-6'"),
		),
	)
}

// Handle processes the design-start prompt request.
func (p *DesignStartPrompt) Handle(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	goal := ""
	if args := req.Params.Arguments; args != nil {
		goal = args["goal"]
	}

	ask := "First ask me what I want to achieve.\n\n"
	if goal != "" {
		ask = fmt.Sprintf("My goal: %s\n\n", goal)
	}

	return &mcp.GetPromptResult{
		Description: "Plan a protein design task",
		Messages: []mcp.PromptMessage{
			{
				Role: mcp.RoleUser,
				Content: mcp.NewTextContent(ask +
					"Please:\n" +
					"1. Run `request_decompose` on the goal to get the intent, implied steps and constraints\n" +
					"2. Use `ontology_find_path` from what I have (usually TargetDescription or ProteinSequence) " +
					"to what I need, and follow the methods it names\n" +
					"3. Draft the workflow as ordered steps and run `workflow_validate` on it. Fix every error before continuing\n" +
					"4. Run `workflow_refine` and add the steps it suggests when they make sense\n" +
					"5. Use `registry_search` to pick concrete tools for each step\n" +
					"6. Record the final plan with `reasoning_plan` so it can be reviewed later\n\n" +
					"Do not skip from a description straight to a docked complex: every step needs its inputs.",
				),
			},
		},
	}, nil
}
