package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proteintoolbox/ptb/internal/decompose"
	"github.com/proteintoolbox/ptb/internal/ontology"
	"github.com/proteintoolbox/ptb/internal/reasoning"
	"github.com/proteintoolbox/ptb/internal/report"
	"github.com/proteintoolbox/ptb/internal/sequence"
	ptbserver "github.com/proteintoolbox/ptb/internal/server"
	"github.com/proteintoolbox/ptb/internal/skills"
	"github.com/proteintoolbox/ptb/internal/store"
	"github.com/proteintoolbox/ptb/internal/templates"
	"github.com/proteintoolbox/ptb/internal/workflow"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ptb v%s\n", ptbserver.Version)
		},
	}
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, cleanup, err := ptbserver.New(a.cfg, a.logger)
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}
			defer cleanup()

			// ServeStdio stops on SIGINT and SIGTERM itself.
			a.logger.Info("serving MCP over stdio")
			err = server.ServeStdio(s)
			a.logger.Info("MCP server stopped")
			return err
		},
	}
}

func (a *app) pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path <start> <end>",
		Short: "Find the shortest scientific path between two concepts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			lines := ontology.New().FindPath(args[0], args[1])
			fmt.Fprint(cmd.OutOrStdout(), report.Path(args[0], args[1], lines))
			return nil
		},
	}
}

func (a *app) prereqsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prereqs <concept>",
		Short: "List the direct prerequisites of a concept",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), report.Prerequisites(args[0], ontology.New().Prerequisites(args[0])))
			return nil
		},
	}
}

// stepsFromArgs accepts one step per argument, or delimited steps in any
// argument.
func stepsFromArgs(args []string) []string {
	return workflow.SplitSteps(strings.Join(args, "\n"))
}

func (a *app) validateCmd() *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate <step>...",
		Short: "Check a workflow for ordering mistakes",
		Long: `Check an ordered workflow for logical mistakes such as docking before any
structure exists. Pass one step per argument, or a single '|'-separated list.
Exits non-zero when the workflow is invalid.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := stepsFromArgs(args)
			r := workflow.ValidateWithOptions(steps, workflow.Options{Strict: strict})
			fmt.Fprint(cmd.OutOrStdout(), report.Validation(steps, r))
			if !r.Valid {
				return fmt.Errorf("workflow has %d error(s)", len(r.Errors))
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "Report soft ordering rules as warnings")
	return cmd
}

func (a *app) refineCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "refine <step>...",
		Short: "Suggest missing workflow steps",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			steps := stepsFromArgs(args)
			fmt.Fprint(cmd.OutOrStdout(), report.Refinements(steps, workflow.ProposeRefinements(steps)))
			return nil
		},
	}
}

func (a *app) decomposeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decompose <request>",
		Short: "Break a request into intent, steps and constraints",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			fmt.Fprint(cmd.OutOrStdout(), report.Decomposition(text, decompose.Request(text)))
			return nil
		},
	}
}

func (a *app) templateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "template [strategy]",
		Short:     "Print a reasoning template",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: templates.Strategies(),
		RunE: func(cmd *cobra.Command, args []string) error {
			strategy := "scientific_method"
			if len(args) == 1 {
				strategy = args[0]
			}
			fmt.Fprintln(cmd.OutOrStdout(), templates.ReasoningTemplate(strategy))
			return nil
		},
	}
}

func (a *app) workflowCmd() *cobra.Command {
	var (
		asJSON  bool
		project string
	)
	cmd := &cobra.Command{
		Use:       "workflow <kind>",
		Short:     "Print a standard reasoning workflow",
		Args:      cobra.ExactArgs(1),
		ValidArgs: reasoning.StandardWorkflowKinds(),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := reasoning.StandardWorkflow(reasoning.WorkflowKind(args[0]))
			if err != nil {
				return err
			}
			plan, analysis := g.Plan(), g.Analyze()
			if analysis.NumSteps == 0 {
				return fmt.Errorf("unknown workflow kind %q (available: %s)",
					args[0], strings.Join(reasoning.StandardWorkflowKinds(), ", "))
			}
			id, err := a.recordPlan(project, "", args[0], plan, analysis)
			if err != nil {
				return err
			}
			return a.printPlan(cmd.OutOrStdout(), asJSON, "", plan, analysis, id)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print plan and analysis as JSON")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Record the plan under this project")
	return cmd
}

func (a *app) planCmd() *cobra.Command {
	var (
		asJSON  bool
		goal    string
		project string
	)
	cmd := &cobra.Command{
		Use:   "plan <file>",
		Short: "Linearize a reasoning graph read from a JSON file ('-' for stdin)",
		Long: `Read a reasoning graph as JSON:

  {"steps": [{"id": "obs", "description": "...", "type": "observation"}],
   "dependencies": [{"from": "obs", "to": "hyp"}]}

and print it as an ordered plan. Dependencies that would create a cycle are
rejected.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading graph: %w", err)
			}

			var spec reasoning.GraphSpec
			if err := json.Unmarshal(data, &spec); err != nil {
				return fmt.Errorf("parsing graph: %w", err)
			}
			g, err := reasoning.Build(spec)
			if err != nil {
				return err
			}
			plan, analysis := g.Plan(), g.Analyze()
			id, err := a.recordPlan(project, goal, "custom", plan, analysis)
			if err != nil {
				return err
			}
			return a.printPlan(cmd.OutOrStdout(), asJSON, goal, plan, analysis, id)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print plan and analysis as JSON")
	cmd.Flags().StringVar(&goal, "goal", "", "What the plan is for")
	cmd.Flags().StringVarP(&project, "project", "p", "", "Record the plan under this project")
	return cmd
}

func (a *app) printPlan(w io.Writer, asJSON bool, goal string, p reasoning.Plan, an reasoning.Analysis, id string) error {
	if !asJSON {
		fmt.Fprint(w, report.Plan(goal, p, an, id))
		return nil
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		ID       string             `json:"id,omitempty"`
		Plan     reasoning.Plan     `json:"plan"`
		Analysis reasoning.Analysis `json:"analysis"`
	}{id, p, an})
}

// recordPlan stores the plan when auditing is on or a project is named.
// Without a project, store problems are logged, not returned.
func (a *app) recordPlan(project, goal, kind string, p reasoning.Plan, an reasoning.Analysis) (string, error) {
	if !a.cfg.AuditPlans && project == "" {
		return "", nil
	}
	id, err := a.savePlan(project, goal, kind, p, an)
	if err == nil {
		return id, nil
	}
	if project != "" {
		return "", err
	}
	a.logger.Warn("plan not recorded", zap.Error(err))
	return "", nil
}

func (a *app) savePlan(project, goal, kind string, p reasoning.Plan, an reasoning.Analysis) (string, error) {
	rec, err := store.NewPlanRecord(project, goal, kind, p, an)
	if err != nil {
		return "", err
	}
	st, err := a.openStore()
	if err != nil {
		return "", err
	}
	defer st.Close()
	return st.SavePlan(rec)
}

func (a *app) skillsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "skills",
		Short: "List the skills available to exec",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), skills.NewRegistry(ontology.New()).Describe())
			return nil
		},
	}
}

func (a *app) execCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exec <skill|arg1|arg2>",
		Short: "Execute a skill command",
		Example: `  ptb exec 'find_path|TargetDescription|Structure3D'
  ptb exec 'alanine_scan|MKTAYIAK'`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := skills.NewRegistry(ontology.New()).Execute(args[0])
			fmt.Fprintln(cmd.OutOrStdout(), out)
			if strings.HasPrefix(out, "Error") {
				return fmt.Errorf("skill failed")
			}
			return nil
		},
	}
}

func (a *app) sequenceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sequence <sequence>",
		Short: "Validate a sequence and flag composition problems",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			clean, err := sequence.Clean(strings.Join(args, ""))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Sequence(clean, sequence.InferIssues(clean)))
			return nil
		},
	}
}

func (a *app) registryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry [query]",
		Short: "Search the tool registry by category or name",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			query := ""
			if len(args) == 1 {
				query = args[0]
			}
			found, err := st.SearchTools(query)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Tools(found))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "seed <file.yaml>",
		Short: "Load tools from a YAML file into the registry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			n, err := st.SeedTools(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d tool(s) from %s\n", n, args[0])
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "categories",
		Short: "List registry categories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			cats, err := st.Categories()
			if err != nil {
				return err
			}
			for _, c := range cats {
				fmt.Fprintln(cmd.OutOrStdout(), c)
			}
			return nil
		},
	})

	var uninstall bool
	install := &cobra.Command{
		Use:   "install <name>",
		Short: "Mark a registry tool as installed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			if err := st.SetInstalled(args[0], !uninstall); err != nil {
				return err
			}
			t, err := st.GetTool(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Tools([]store.Tool{*t}))
			return nil
		},
	}
	install.Flags().BoolVar(&uninstall, "uninstall", false, "Mark as not installed instead")
	cmd.AddCommand(install)

	return cmd
}

func (a *app) plansCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "plans",
		Short: "List recorded plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			plans, err := st.RecentPlans(limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Plans(plans))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of plans to list")

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Show a recorded plan",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			rec, err := st.GetPlan(args[0])
			if err != nil {
				return err
			}
			var p reasoning.Plan
			var an reasoning.Analysis
			if err := json.Unmarshal([]byte(rec.PlanJSON), &p); err != nil {
				return fmt.Errorf("decoding plan %s: %w", rec.ID, err)
			}
			if err := json.Unmarshal([]byte(rec.AnalysisJSON), &an); err != nil {
				return fmt.Errorf("decoding analysis %s: %w", rec.ID, err)
			}
			goal := rec.Goal
			if goal == "" {
				goal = rec.Kind
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Plan(goal, p, an, rec.ID))
			return nil
		},
	})
	return cmd
}

func (a *app) projectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Manage design projects",
		Long: `A project groups input files and recorded plans for one design campaign.
Files live under <data_dir>/projects/<name>.`,
	}

	var description string
	create := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := st.CreateProject(args[0], description)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created project %s at %s\n", p.Name, p.Dir)
			return nil
		},
	}
	create.Flags().StringVarP(&description, "description", "d", "", "Short description of the project")
	cmd.AddCommand(create)

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			projects, err := st.ListProjects()
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Projects(projects))
			return nil
		},
	})

	var (
		ext   string
		limit int
	)
	show := &cobra.Command{
		Use:   "show <name>",
		Short: "Show a project with its files and plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			p, err := st.GetProject(args[0])
			if err != nil {
				return err
			}
			files, err := st.ProjectFiles(p.Name, ext)
			if err != nil {
				return err
			}
			plans, err := st.ProjectPlans(p.Name, limit)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Project(*p, files, plans))
			return nil
		},
	}
	show.Flags().StringVar(&ext, "ext", "", "Only list files with this extension (e.g. .pdb)")
	show.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of plans to list")
	cmd.AddCommand(show)

	var as string
	add := &cobra.Command{
		Use:   "add <name> <file>",
		Short: "Copy a file into a project",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := a.openStore()
			if err != nil {
				return err
			}
			defer st.Close()

			dest, err := st.AddProjectFile(args[0], args[1], as)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", dest)
			return nil
		},
	}
	add.Flags().StringVar(&as, "as", "", "Destination name inside the project")
	cmd.AddCommand(add)

	return cmd
}
