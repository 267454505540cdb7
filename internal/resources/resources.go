// Package resources implements MCP resource handlers for ptb.
//
// Resources provide read-only data that the host can consume for context.
// They use URI-based addressing (ptb://...) following MCP conventions.
package resources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/skills"
)

const (
	SkillsURI   = "ptb://skills"
	OntologyURI = "ptb://ontology"
)

// Handler serves the ptb resources.
type Handler struct {
	onto     *ontology.Graph
	registry *skills.Registry
}

// NewHandler creates a resource Handler with its dependencies.
func NewHandler(onto *ontology.Graph, registry *skills.Registry) *Handler {
	return &Handler{onto: onto, registry: registry}
}

// SkillsResource returns the MCP resource definition for the skill listing.
func (h *Handler) SkillsResource() mcp.Resource {
	return mcp.NewResource(
		SkillsURI,
		"ptb Skills",
		mcp.WithResourceDescription("Skills callable through skill_execute, with signatures"),
		mcp.WithMIMEType("text/plain"),
	)
}

// HandleSkills returns the capability listing.
func (h *Handler) HandleSkills(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "text/plain",
			Text:     h.registry.Describe(),
		},
	}, nil
}

// OntologyResource returns the MCP resource definition for the ontology.
func (h *Handler) OntologyResource() mcp.Resource {
	return mcp.NewResource(
		OntologyURI,
		"Scientific Ontology",
		mcp.WithResourceDescription("Concepts and the method-labelled transitions between them"),
		mcp.WithMIMEType("application/json"),
	)
}

type ontologyDoc struct {
	Concepts    []ontology.Concept    `json:"concepts"`
	Transitions []ontology.Transition `json:"transitions"`
}

// HandleOntology returns concepts and transitions as JSON.
func (h *Handler) HandleOntology(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.MarshalIndent(ontologyDoc{
		Concepts:    h.onto.Concepts(),
		Transitions: h.onto.Transitions(),
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling ontology: %w", err)
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
