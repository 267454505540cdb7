// Package server wires all MCP components and creates the server instance.
//
// This is the composition root: it creates concrete implementations and
// injects them into the tools, prompts and resources. No domain logic
// lives here, only wiring.
package server

import (
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/proteintoolbox/ptb/internal/config"
	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/prompts"
	"github.com/proteintoolbox/ptb/internal/resources"
	"github.com/proteintoolbox/ptb/internal/skills"
	"github.com/proteintoolbox/ptb/internal/store"
	"github.com/proteintoolbox/ptb/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// New creates and configures the MCP server with all tools, prompts and
// resources registered.
//
// The returned cleanup function closes the store's database connection and
// must be called on shutdown. It is always non-nil and safe to call even
// if the store failed to open.
func New(cfg config.Config, log *zap.Logger) (*server.MCPServer, func(), error) {
	if log == nil {
		log = zap.NewNop()
	}

	onto := ontology.New()
	registry := skills.NewRegistry(onto)

	s := server.NewMCPServer(
		"ptb",
		Version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(false, true),
		server.WithPromptCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// --- Reasoning core ---

	findPath := tools.NewFindPathTool(onto)
	s.AddTool(findPath.Definition(), findPath.Handle)

	prereqs := tools.NewPrerequisitesTool(onto)
	s.AddTool(prereqs.Definition(), prereqs.Handle)

	validate := tools.NewValidateTool()
	s.AddTool(validate.Definition(), validate.Handle)

	refine := tools.NewRefineTool()
	s.AddTool(refine.Definition(), refine.Handle)

	decompose := tools.NewDecomposeTool()
	s.AddTool(decompose.Definition(), decompose.Handle)

	template := tools.NewTemplateTool()
	s.AddTool(template.Definition(), template.Handle)

	skillExec := tools.NewSkillExecuteTool(registry)
	s.AddTool(skillExec.Definition(), skillExec.Handle)

	seqCheck := tools.NewSequenceCheckTool()
	s.AddTool(seqCheck.Definition(), seqCheck.Handle)

	// --- Store-backed tools ---
	//
	// The store is optional: if it fails to open, the reasoning tools keep
	// working, plans are not recorded and registry_search is not offered.

	cleanup := noop
	var recorder tools.PlanRecorder

	st, err := store.New(store.Config{DataDir: cfg.DataDir, Logger: log})
	if err != nil {
		log.Warn("store disabled", zap.Error(err))
	} else {
		cleanup = func() {
			if err := st.Close(); err != nil {
				log.Warn("store close", zap.Error(err))
			}
		}
		if _, err := st.SeedTools(cfg.RegistrySeed); err != nil {
			log.Warn("seeding tool registry", zap.Error(err))
		}
		if cfg.AuditPlans {
			recorder = st
		}

		search := tools.NewRegistrySearchTool(st)
		s.AddTool(search.Definition(), search.Handle)
	}

	plan := tools.NewPlanTool(recorder, log)
	s.AddTool(plan.Definition(), plan.Handle)

	standard := tools.NewStandardWorkflowTool(recorder, log)
	s.AddTool(standard.Definition(), standard.Handle)

	// --- Prompts ---

	designStart := prompts.NewDesignStartPrompt()
	s.AddPrompt(designStart.Definition(), designStart.Handle)

	// --- Resources ---

	rh := resources.NewHandler(onto, registry)
	s.AddResource(rh.SkillsResource(), rh.HandleSkills)
	s.AddResource(rh.OntologyResource(), rh.HandleOntology)

	log.Info("mcp server configured",
		zap.String("version", Version),
		zap.Bool("store", err == nil),
		zap.Bool("audit_plans", recorder != nil),
	)
	return s, cleanup, nil
}

// noop is the default cleanup when the store is disabled.
func noop() {}

// serverInstructions tells the AI how to use ptb.
func serverInstructions() string {
	return `You have access to ptb, a reasoning toolkit for protein design and analysis.

## WHEN TO USE ptb

Use ptb before proposing or running any protein design, structure prediction,
docking or analysis workflow. It catches impossible jumps and ordering mistakes
before compute is spent.

## HOW TO PLAN

1. request_decompose: turn the user's goal into an intent, implied steps and constraints.
2. ontology_find_path: find the chain of transformations from what the user has
   (TargetDescription, GeneSequence, ProteinSequence, Structure3D) to what they need. Use the methods it names.
   ontology_prerequisites tells you what must exist before a concept.
3. workflow_validate: check the ordered steps. An invalid result means the plan
   is wrong; fix it, do not run it. Docking needs a structure first.
4. workflow_refine: add minimization, validation and aggregation checks where suggested.
5. registry_search: pick concrete tools by category or name.
6. reasoning_plan: record the plan as steps and dependencies. Circular logic is rejected.
   reasoning_standard_workflow returns ready-made plans (protein_design, docking).

## OTHER TOOLS

- reasoning_template: scaffolds for scientific_method, design_build_test, root_cause,
  comparative_analysis.
- sequence_check: validate a sequence and flag composition problems.
- skill_execute: call any skill with 'skill_name|arg1|arg2'. Read ptb://skills for the list.

The ontology itself is available as JSON at ptb://ontology.`
}
