package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/sperciky/variable-monitoring/internal/analyzer"
	"github.com/sperciky/variable-monitoring/internal/config"
	"github.com/sperciky/variable-monitoring/internal/logging"
	"github.com/sperciky/variable-monitoring/internal/models"
	"github.com/sperciky/variable-monitoring/internal/parser"
	"github.com/sperciky/variable-monitoring/internal/report"
)

// Version is set via -ldflags.
var Version = "dev"

type rootOptions struct {
	configFile string
	logLevel   string
}

type analyzeOptions struct {
	excludePaused bool
	json          bool
	output        string
	detailed      bool
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:   "gtm-analyzer",
		Short: "Find unused and duplicate variables in GTM container exports",
		Long: `gtm-analyzer inspects a Google Tag Manager container export and reports
variables that nothing references, variables that read the same data source,
and custom templates that no tag, variable or client instantiates.

Examples:
  gtm-analyzer analyze container.json
  gtm-analyzer analyze container.json --exclude-paused --detailed
  gtm-analyzer graph container.json > graph.json`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is ./gtm-analyzer.*)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newAnalyzeCmd(&opts))
	cmd.AddCommand(newGraphCmd(&opts))

	return cmd
}

// setup loads the configuration and builds the logger shared by subcommands.
func (o *rootOptions) setup(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	return cfg, logging.New(cmd.ErrOrStderr(), level, "gtm-analyzer"), nil
}

func newAnalyzeCmd(root *rootOptions) *cobra.Command {
	var opts analyzeOptions

	cmd := &cobra.Command{
		Use:   "analyze <export.json>",
		Short: "Analyze a container export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := root.setup(cmd)
			if err != nil {
				return err
			}

			container, err := readContainer(args[0])
			if err != nil {
				return err
			}

			analyzeOpts := analyzer.Options{IncludePausedTags: cfg.IncludePausedTags}
			if cmd.Flags().Changed("exclude-paused") {
				analyzeOpts.IncludePausedTags = !opts.excludePaused
			}

			var rep *models.Report
			if opts.detailed {
				rep = analyzer.AnalyzeDetailed(container, analyzeOpts)
			} else {
				rep = analyzer.Analyze(container, analyzeOpts)
			}

			logger.Debug("analysis complete",
				"file", args[0],
				"unusedVariables", rep.Summary.UnusedVariables,
				"duplicateGroups", rep.Summary.DuplicateGroups,
				"unusedCustomTemplates", rep.Summary.UnusedCustomTemplates,
			)

			if opts.json {
				if err := writeJSON(cmd.OutOrStdout(), rep); err != nil {
					return err
				}
			} else if err := report.Render(cmd.OutOrStdout(), rep); err != nil {
				return err
			}

			if opts.output != "" {
				path := opts.output
				if path == "-" {
					path = report.OutputPath(args[0])
				}
				if err := report.WriteJSON(path, rep); err != nil {
					return err
				}
				logger.Info("report saved", "path", path)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.excludePaused, "exclude-paused", false, "ignore references made by paused tags")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the report as JSON")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "also save the JSON report to this path (\"-\" derives <name>_analysis_report.json)")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include usage details, unknown types and evaluation impact")

	return cmd
}

func newGraphCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "graph <export.json>",
		Short: "Print the container reference graph as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, logger, err := root.setup(cmd)
			if err != nil {
				return err
			}

			container, err := readContainer(args[0])
			if err != nil {
				return err
			}

			graph := parser.BuildGraph(container)
			logger.Debug("graph built", "nodes", graph.Stats.TotalNodes, "edges", graph.Stats.TotalEdges)

			return writeJSON(cmd.OutOrStdout(), graph)
		},
	}
}

func readContainer(path string) (*models.ContainerVersion, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	container, err := parser.ParseContainer(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return container, nil
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
