package search

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
)

// Request is one solve call. Source and Destination are node labels; id
// resolution happens before the core is called.
type Request struct {
	Graph       apptype.GraphSpec
	Source      string
	Destination string
	Algorithm   string
	Heuristic   Heuristic
}

// Solver selects a strategy, runs it and folds the outcome into a Result.
// It holds no per-call state and may be shared between goroutines.
type Solver struct {
	logger  *slog.Logger
	metrics metrics.Recorder
}

type Option func(*Solver)

func WithLogger(l *slog.Logger) Option {
	return func(s *Solver) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithRecorder pins a metrics recorder; by default metrics.Default is used
// at call time.
func WithRecorder(r metrics.Recorder) Option {
	return func(s *Solver) { s.metrics = r }
}

func NewSolver(opts ...Option) *Solver {
	s := &Solver{logger: slog.New(slog.DiscardHandler)}
	for _, o := range opts {
		o(s)
	}
	return s
}

func (s *Solver) recorder() metrics.Recorder {
	if s.metrics != nil {
		return s.metrics
	}
	return metrics.Default()
}

// Solve runs one search and never panics: every outcome, including a fault
// raised by the sink, is reported through the returned Result.
func (s *Solver) Solve(req Request, sink Sink) (res apptype.Result) {
	if sink == nil {
		sink = Discard
	}
	began := time.Now()
	alg, known := Lookup(req.Algorithm)
	name, label := req.Algorithm, "unknown"
	if known {
		name, label = alg.Name, alg.ID
	}

	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprint(r)
			s.logger.Error("search aborted", "algorithm", label, "panic", msg)
			res = failure(name, apptype.ErrorKindInternal, msg, "Error during search: "+msg)
			res.ExecutionTime = time.Since(began).Seconds()
		}
		s.recorder().ObserveSolve(label, outcome(res), res.ExecutionTime, res.NodesExplored)
	}()

	if !known {
		msg := "Unknown algorithm: " + req.Algorithm
		return failure(req.Algorithm, apptype.ErrorKindUnknownAlgorithm, msg, msg)
	}

	g, err := Build(req.Graph.Nodes, req.Graph.Edges)
	if err == nil && (!g.Has(req.Source) || !g.Has(req.Destination)) {
		err = malformed("invalid source or destination: %q, %q", req.Source, req.Destination)
	}
	if err != nil {
		s.logger.Debug("rejected graph", "algorithm", alg.ID, "err", err)
		return failure(name, apptype.ErrorKindMalformedInput, err.Error(), "Error during search: "+err.Error())
	}

	tracker := newRunTracker(sink)
	tracker.Push(apptype.Event{
		Type:        apptype.EventStart,
		Algorithm:   alg.ID,
		Source:      req.Source,
		Destination: req.Destination,
		Step:        apptype.IntPtr(0),
	})
	s.logger.Debug("search started",
		"algorithm", alg.ID,
		"source", req.Source,
		"destination", req.Destination,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount())

	t0 := time.Now()
	goal := alg.Strategy.Run(g, req.Source, req.Destination, req.Heuristic, tracker)
	elapsed := time.Since(t0).Seconds()
	path, cost := Reconstruct(goal)

	res = apptype.Result{
		Path:          path,
		Cost:          cost,
		Algorithm:     alg.Name,
		NodesExplored: len(tracker.explored),
		ExecutionTime: elapsed,
	}
	final := apptype.Event{
		Type:          apptype.EventFinalPath,
		Algorithm:     alg.Name,
		Path:          path,
		Cost:          apptype.FloatPtr(cost),
		ExecutionTime: apptype.FloatPtr(elapsed),
	}
	if goal.Valid() {
		res.Success = true
		res.Message = "Path found using " + alg.Name
	} else {
		final.Reason = tracker.reason
		res.Error = "No path found"
		res.Message = fmt.Sprintf("No path exists between %s and %s", req.Source, req.Destination)
		res.ErrorKind = apptype.ErrorKindNoPath
	}
	tracker.Push(final)

	s.logger.Debug("search finished",
		"algorithm", alg.ID,
		"success", res.Success,
		"cost", cost,
		"explored", res.NodesExplored,
		"elapsed", elapsed)
	return res
}

func failure(algorithm string, kind apptype.ErrorKind, errText, message string) apptype.Result {
	return apptype.Result{
		Path:      []string{},
		Cost:      math.Inf(1),
		Algorithm: algorithm,
		Message:   message,
		Error:     errText,
		ErrorKind: kind,
	}
}

func outcome(r apptype.Result) string {
	if r.Success {
		return "success"
	}
	return string(r.ErrorKind)
}
