package main

import (
	"encoding/json"
	"fmt"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/graphfile"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/search"
	"github.com/spf13/cobra"
)

type solveOptions struct {
	graph       string
	algorithm   string
	source      string
	destination string
	steps       bool
	provider    string
	seed        uint64
}

func newSolveCmd(a *app) *cobra.Command {
	var o solveOptions
	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Solve one graph file and print the result as JSON",
		Example: `  pathsearch solve --graph city.hcl --algorithm a_star
  pathsearch solve --graph city.json --source A --destination D --steps`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runSolve(cmd, o)
		},
	}
	cmd.Flags().StringVarP(&o.graph, "graph", "g", "", "graph file (.hcl or .json)")
	cmd.Flags().StringVarP(&o.algorithm, "algorithm", "a", "", "algorithm id, overrides the file")
	cmd.Flags().StringVar(&o.source, "source", "", "source node id or label, overrides the file")
	cmd.Flags().StringVar(&o.destination, "destination", "", "destination node id or label, overrides the file")
	cmd.Flags().BoolVar(&o.steps, "steps", false, "include the exploration trace")
	cmd.Flags().StringVar(&o.provider, "heuristic-provider", "", "heuristic provider: random, zero, hops or distance")
	cmd.Flags().Uint64Var(&o.seed, "seed", 0, "seed for the random heuristic provider")
	_ = cmd.MarkFlagRequired("graph")
	return cmd
}

func (a *app) runSolve(cmd *cobra.Command, o solveOptions) error {
	req, err := graphfile.Load(o.graph)
	if err != nil {
		return err
	}
	if o.algorithm != "" {
		req.Algorithm = o.algorithm
	}
	if o.source != "" {
		req.Source = graphfile.Endpoint(req, o.source)
	}
	if o.destination != "" {
		req.Destination = graphfile.Endpoint(req, o.destination)
	}
	if o.provider != "" {
		a.cfg.Search.HeuristicProvider = o.provider
	}
	if o.seed != 0 {
		a.cfg.Search.HeuristicSeed = o.seed
	}

	svc, err := a.service()
	if err != nil {
		return err
	}

	out := apptype.SolvePathResult{}
	if o.steps {
		res, steps, err := svc.SolveWithSteps(req)
		if err != nil {
			return err
		}
		out.Result, out.Steps = res, apptype.SanitizeEvents(steps)
	} else {
		res, err := svc.Solve(req)
		if err != nil {
			return err
		}
		out.Result = res
	}
	raw := out.Result
	out.Result = raw.Sanitized()

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	return search.ResultError(raw)
}
