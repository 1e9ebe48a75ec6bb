package main

import (
	"log/slog"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/buildinfo"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/config"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/logging"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/pkg/pathsearch"
	"github.com/spf13/cobra"
)

// app carries the state shared by every subcommand once the persistent
// pre-run has loaded configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "pathsearch",
		Short:         "Graph path search over HTTP, MCP or the command line",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML config file (default $PATHSEARCH_CONFIG)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format: text or json")

	root.AddCommand(
		newServeCmd(a),
		newMCPCmd(a),
		newSolveCmd(a),
		newAlgorithmsCmd(),
	)
	return root
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}
	a.cfg = cfg
	a.logger = logging.New(cfg.Logging, cmd.ErrOrStderr())
	return nil
}

func (a *app) service() (*pathsearch.Service, error) {
	return pathsearch.NewService(&pathsearch.Config{
		MaxNodes:          a.cfg.Search.MaxNodes,
		MaxEdges:          a.cfg.Search.MaxEdges,
		DefaultAlgorithm:  a.cfg.Search.DefaultAlgorithm,
		HeuristicProvider: a.cfg.Search.HeuristicProvider,
		HeuristicSeed:     a.cfg.Search.HeuristicSeed,
		StreamBuffer:      a.cfg.Search.StreamBuffer,
		Logger:            a.logger,
	})
}
