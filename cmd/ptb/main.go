// ptb: protein design reasoning toolkit.
//
// Runs as an MCP stdio server for AI assistants, or answers the same
// questions directly from the command line.
//
// Usage:
//
//	ptb serve                                  # Start MCP server (stdio transport)
//	ptb path TargetDescription DockedComplex   # Shortest scientific path
//	ptb validate "Dock ligand" "Fold"          # Check workflow ordering
//	ptb workflow protein_design                # Print a standard plan
//	ptb project create binder-x                # Start a design project
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/proteintoolbox/ptb/internal/config"
	"github.com/proteintoolbox/ptb/internal/logging"
	"github.com/proteintoolbox/ptb/internal/store"
)

// app holds state shared by subcommands, filled in by the root
// PersistentPreRunE.
type app struct {
	configPath string
	verbose    bool

	cfg    config.Config
	logger *zap.Logger
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "ptb",
		Short: "Protein design reasoning toolkit",
		Long: `ptb checks protein design plans before they are run.

It knows which scientific artifacts can be turned into which (the ontology),
catches ordering mistakes in workflows, breaks requests into steps and keeps
reasoning plans free of circular logic.

Run 'ptb serve' to expose everything as MCP tools over stdio.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file path (default: ~/.ptb/config.yaml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		a.serveCmd(),
		a.pathCmd(),
		a.prereqsCmd(),
		a.validateCmd(),
		a.refineCmd(),
		a.decomposeCmd(),
		a.templateCmd(),
		a.workflowCmd(),
		a.planCmd(),
		a.skillsCmd(),
		a.execCmd(),
		a.sequenceCmd(),
		a.registryCmd(),
		a.plansCmd(),
		a.projectCmd(),
		versionCmd(),
	)
	return root
}

func (a *app) init() error {
	path := a.configPath
	if path == "" {
		path = config.Path()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	logger, err := logging.New(cfg.LogLevel, cfg.Development)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	a.logger.Debug("config loaded", zap.String("path", path), zap.String("data_dir", cfg.DataDir))
	return nil
}

// openStore opens the store and seeds the tool registry.
func (a *app) openStore() (*store.Store, error) {
	st, err := store.New(store.Config{DataDir: a.cfg.DataDir, Logger: a.logger})
	if err != nil {
		return nil, err
	}
	if _, err := st.SeedTools(a.cfg.RegistrySeed); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}
