package pathsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/heuristic"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/search"
	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"
)

// Service provides a library-first API for path searches without any
// transport. It validates requests, resolves node ids to labels, fills in a
// heuristic table for informed algorithms and runs the solver.
type Service struct {
	cfg        Config
	solver     *search.Solver
	heuristics heuristic.Provider
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewService constructs a Service with the provided config.
func NewService(cfg *Config) (*Service, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	c := cfg.withDefaults()
	if _, ok := search.Lookup(c.DefaultAlgorithm); !ok {
		return nil, fmt.Errorf("default algorithm %q is not registered", c.DefaultAlgorithm)
	}
	hp, err := heuristic.New(c.HeuristicProvider, c.HeuristicSeed)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:        c,
		solver:     search.NewSolver(search.WithLogger(c.Logger)),
		heuristics: hp,
		validate:   validator.New(),
		logger:     c.Logger,
	}, nil
}

// Limits returns the node and edge limits enforced per request.
func (s *Service) Limits() (maxNodes, maxEdges int) { return s.cfg.MaxNodes, s.cfg.MaxEdges }

// HeuristicProvider names the provider used when a request brings no table.
func (s *Service) HeuristicProvider() string { return s.heuristics.Name() }

// Algorithms lists the registered strategies.
func (s *Service) Algorithms() []apptype.AlgorithmInfo {
	algs := search.Algorithms()
	out := make([]apptype.AlgorithmInfo, 0, len(algs))
	for _, a := range algs {
		out = append(out, a.Info())
	}
	return out
}

// Validate runs the request checks in order: size limits, required fields,
// then id resolution.
func (s *Service) Validate(req apptype.SearchRequest) error {
	if len(req.Nodes) > s.cfg.MaxNodes {
		return tooMany(CodeTooManyNodes, "nodes", s.cfg.MaxNodes)
	}
	if len(req.Edges) > s.cfg.MaxEdges {
		return tooMany(CodeTooManyEdges, "edges", s.cfg.MaxEdges)
	}
	if err := s.validate.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return &ValidationError{Code: CodeMissingData, Msg: "Missing required data"}
		}
		return fieldError(verrs[0])
	}
	if _, _, err := resolveEndpoints(req); err != nil {
		return err
	}
	return nil
}

func fieldError(fe validator.FieldError) *ValidationError {
	switch fe.StructNamespace() {
	case "SearchRequest.Nodes":
		return &ValidationError{Code: CodeNoNodes, Msg: "No nodes provided"}
	case "SearchRequest.Edges":
		return &ValidationError{Code: CodeNoEdges, Msg: "No edges provided"}
	case "SearchRequest.Source", "SearchRequest.Destination":
		return &ValidationError{Code: CodeNoEndpoints, Msg: "Source and destination must be specified"}
	}
	return &ValidationError{Code: CodeMissingData, Msg: fmt.Sprintf("Missing required data: %s", fe.Namespace())}
}

func resolveEndpoints(req apptype.SearchRequest) (string, string, error) {
	labels := make(map[string]string, len(req.Nodes))
	for _, n := range req.Nodes {
		labels[strings.TrimSpace(n.ID.String())] = n.Label
	}
	// ids are compared trimmed, the same way search.Build keys them
	src, okSrc := labels[strings.TrimSpace(req.Source.String())]
	dst, okDst := labels[strings.TrimSpace(req.Destination.String())]
	if !okSrc || !okDst || src == "" || dst == "" {
		return "", "", &ValidationError{Code: CodeInvalidEndpoint, Msg: "Invalid source or destination node"}
	}
	return src, dst, nil
}

// Prepare validates req and turns it into a core request. Informed
// algorithms without a caller-supplied table get one from the configured
// heuristic provider.
func (s *Service) Prepare(req apptype.SearchRequest) (search.Request, error) {
	if err := s.Validate(req); err != nil {
		return search.Request{}, err
	}
	src, dst, _ := resolveEndpoints(req)
	algorithm := req.Algorithm
	if algorithm == "" {
		algorithm = s.cfg.DefaultAlgorithm
	}
	out := search.Request{
		Graph:       req.Graph(),
		Source:      src,
		Destination: dst,
		Algorithm:   algorithm,
	}

	alg, known := search.Lookup(algorithm)
	if !known || !alg.Informed {
		return out, nil
	}
	if len(req.Heuristic) > 0 {
		out.Heuristic = search.Heuristic(req.Heuristic)
		return out, nil
	}
	g, err := search.Build(req.Nodes, req.Edges)
	if err != nil {
		// the solver reports malformed graphs itself
		return out, nil
	}
	out.Heuristic = s.heuristics.Table(g, src, dst)
	return out, nil
}

// Run validates req and solves it, pushing every event into sink.
func (s *Service) Run(req apptype.SearchRequest, sink search.Sink) (apptype.Result, error) {
	prepared, err := s.Prepare(req)
	if err != nil {
		return apptype.Result{}, err
	}
	return s.run(prepared, sink), nil
}

func (s *Service) run(req search.Request, sink search.Sink) apptype.Result {
	res := s.solver.Solve(req, sink)
	if req.Heuristic != nil && res.ErrorKind != apptype.ErrorKindUnknownAlgorithm {
		res.Heuristic = map[string]float64(req.Heuristic)
	}
	return res
}

// Solve is the blocking variant without a trace.
func (s *Service) Solve(req apptype.SearchRequest) (apptype.Result, error) {
	return s.Run(req, search.Discard)
}

// SolveWithSteps collects the full trace alongside the result.
func (s *Service) SolveWithSteps(req apptype.SearchRequest) (apptype.Result, []apptype.Event, error) {
	sink := &search.CollectingSink{}
	res, err := s.Run(req, sink)
	if err != nil {
		return apptype.Result{}, nil, err
	}
	return res, sink.Events, nil
}

// Stream runs the solve on a worker goroutine and hands each event to fn on
// the calling side as it is produced. When fn fails or ctx ends, the worker
// stops delivering and finishes on its own; the returned Result is always
// the solver's.
func (s *Service) Stream(ctx context.Context, req apptype.SearchRequest, fn func(apptype.Event) error) (apptype.Result, error) {
	prepared, err := s.Prepare(req)
	if err != nil {
		return apptype.Result{}, err
	}

	g, gctx := errgroup.WithContext(ctx)
	sink := search.NewChannelSink(gctx, s.cfg.StreamBuffer)
	var res apptype.Result
	g.Go(func() error {
		defer sink.Close()
		res = s.run(prepared, sink)
		return nil
	})
	g.Go(func() error {
		for ev := range sink.Events() {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Debug("stream ended early", "algorithm", prepared.Algorithm, "err", err)
		return res, err
	}
	return res, nil
}
