// Package report renders ptb results as Markdown for MCP clients and the CLI.
package report

import (
	"fmt"
	"strings"

	"github.com/proteintoolbox/ptb/internal/decompose"
	"github.com/proteintoolbox/ptb/internal/reasoning"
	"github.com/proteintoolbox/ptb/internal/store"
	"github.com/proteintoolbox/ptb/internal/workflow"
)

// Path renders the result of an ontology path search.
func Path(start, end string, lines []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Path: %s → %s\n\n", start, end))
	if len(lines) == 0 {
		sb.WriteString("_Start and end are the same concept; nothing to do._\n")
		return sb.String()
	}
	for _, l := range lines {
		sb.WriteString("- " + l + "\n")
	}
	return sb.String()
}

// Prerequisites renders the direct predecessors of a concept.
func Prerequisites(concept string, prereqs []string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Prerequisites for %s\n\n", concept))
	if len(prereqs) == 0 {
		sb.WriteString("_None. Either a starting concept or not in the ontology._\n")
		return sb.String()
	}
	for _, p := range prereqs {
		sb.WriteString("- " + p + "\n")
	}
	return sb.String()
}

// Validation renders a workflow validation report.
func Validation(steps []string, r workflow.Report) string {
	var sb strings.Builder
	sb.WriteString("## Workflow Validation\n\n")
	status := "✅ valid"
	if !r.Valid {
		status = "❌ invalid"
	}
	sb.WriteString(fmt.Sprintf("**Status:** %s\n", status))
	sb.WriteString(fmt.Sprintf("**Steps:** %d\n\n", len(steps)))

	numbered(&sb, steps)

	if len(r.Errors) > 0 {
		sb.WriteString("\n### Errors\n\n")
		bullets(&sb, r.Errors)
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("\n### Warnings\n\n")
		bullets(&sb, r.Warnings)
	}
	return sb.String()
}

// Refinements renders improvement suggestions for a workflow.
func Refinements(steps []string, suggestions []string) string {
	var sb strings.Builder
	sb.WriteString("## Suggested Refinements\n\n")
	sb.WriteString(fmt.Sprintf("**Steps reviewed:** %d\n\n", len(steps)))
	if len(suggestions) == 0 {
		sb.WriteString("_No refinements suggested._\n")
		return sb.String()
	}
	bullets(&sb, suggestions)
	return sb.String()
}

// Decomposition renders the structured form of a request.
func Decomposition(request string, d decompose.Decomposition) string {
	var sb strings.Builder
	sb.WriteString("## Request Decomposition\n\n")
	sb.WriteString(fmt.Sprintf("**Request:** %s\n", request))
	sb.WriteString(fmt.Sprintf("**Intent:** %s\n\n", d.Intent))

	sb.WriteString("### Implied Steps\n\n")
	if len(d.ImpliedSteps) == 0 {
		sb.WriteString("_None._\n")
	} else {
		numbered(&sb, d.ImpliedSteps)
	}

	sb.WriteString("\n### Inferred Constraints\n\n")
	if len(d.InferredConstraints) == 0 {
		sb.WriteString("_None._\n")
	} else {
		bullets(&sb, d.InferredConstraints)
	}
	return sb.String()
}

// Plan renders a linearized reasoning plan with its structural analysis.
// planID is shown when the plan was recorded.
func Plan(goal string, p reasoning.Plan, a reasoning.Analysis, planID string) string {
	var sb strings.Builder
	sb.WriteString("## Reasoning Plan\n\n")
	if goal != "" {
		sb.WriteString(fmt.Sprintf("**Goal:** %s\n", goal))
	}
	if planID != "" {
		sb.WriteString(fmt.Sprintf("**Plan ID:** %s\n", planID))
	}
	sb.WriteString(fmt.Sprintf("**Steps:** %d | **Dependencies:** %d | **Valid DAG:** %t\n\n",
		a.NumSteps, a.NumDependencies, a.IsValidDAG))

	if p.Error != "" {
		sb.WriteString("**Error:** " + p.Error + "\n")
		return sb.String()
	}

	for i, e := range p.Steps {
		sb.WriteString(fmt.Sprintf("%d. **%s** [%s] %s\n", i+1, e.ID, e.Type, e.Description))
	}
	if len(a.Roots) > 0 {
		sb.WriteString(fmt.Sprintf("\n**Roots:** %s\n", strings.Join(a.Roots, ", ")))
	}
	if len(a.Leaves) > 0 {
		sb.WriteString(fmt.Sprintf("**Leaves:** %s\n", strings.Join(a.Leaves, ", ")))
	}
	return sb.String()
}

// Tools renders registry entries.
func Tools(tools []store.Tool) string {
	var sb strings.Builder
	sb.WriteString("Available Tools:\n")
	for _, t := range tools {
		sb.WriteString(fmt.Sprintf("- %s (%s): %s [Installed: %t]\n", t.Name, t.Category, t.Description, t.Installed))
	}
	return sb.String()
}

// Plans renders the plan audit log.
func Plans(plans []store.PlanRecord) string {
	var sb strings.Builder
	sb.WriteString("## Recorded Plans\n\n")
	if len(plans) == 0 {
		sb.WriteString("_No plans recorded yet._\n")
		return sb.String()
	}
	for _, p := range plans {
		planLine(&sb, p)
	}
	return sb.String()
}

func planLine(sb *strings.Builder, p store.PlanRecord) {
	label := p.Goal
	if label == "" {
		label = p.Kind
	}
	if label == "" {
		label = "(untitled)"
	}
	sb.WriteString(fmt.Sprintf("- `%s` %s - %s\n", p.ID, p.CreatedAt, label))
}

// Projects renders the project list.
func Projects(projects []store.Project) string {
	var sb strings.Builder
	sb.WriteString("## Projects\n\n")
	if len(projects) == 0 {
		sb.WriteString("_No projects yet._\n")
		return sb.String()
	}
	for _, p := range projects {
		sb.WriteString(fmt.Sprintf("- **%s** %s", p.Name, p.CreatedAt))
		if p.Description != "" {
			sb.WriteString(" - " + p.Description)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Project renders one project with its files and recorded plans.
func Project(p store.Project, files []string, plans []store.PlanRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Project: %s\n\n", p.Name))
	if p.Description != "" {
		sb.WriteString(p.Description + "\n\n")
	}
	sb.WriteString(fmt.Sprintf("**Created:** %s\n", p.CreatedAt))
	sb.WriteString(fmt.Sprintf("**Directory:** %s\n", p.Dir))

	sb.WriteString("\n### Files\n\n")
	if len(files) == 0 {
		sb.WriteString("_No files._\n")
	}
	bullets(&sb, files)

	sb.WriteString("\n### Plans\n\n")
	if len(plans) == 0 {
		sb.WriteString("_No plans recorded._\n")
	}
	for _, rec := range plans {
		planLine(&sb, rec)
	}
	return sb.String()
}

// Sequence renders a sequence sanity check.
func Sequence(cleaned string, issues []string) string {
	var sb strings.Builder
	sb.WriteString("## Sequence Check\n\n")
	sb.WriteString(fmt.Sprintf("**Length:** %d\n\n", len(cleaned)))
	if len(issues) == 0 {
		sb.WriteString("No issues found.\n")
		return sb.String()
	}
	bullets(&sb, issues)
	return sb.String()
}

func numbered(sb *strings.Builder, items []string) {
	for i, s := range items {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, s))
	}
}

func bullets(sb *strings.Builder, items []string) {
	for _, s := range items {
		sb.WriteString("- " + s + "\n")
	}
}
