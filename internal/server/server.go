package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/buildinfo"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/pkg/pathsearch"
	"github.com/modelcontextprotocol/go-sdk/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const serverName = "mcp-graph-search-go"

// MCPServer exposes the path search service as MCP tools.
type MCPServer struct {
	server *mcp.Server
	svc    *pathsearch.Service
	logger *slog.Logger
}

// NewMCPServer creates a new MCP server
func NewMCPServer(svc *pathsearch.Service, logger *slog.Logger) *MCPServer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: buildinfo.Version,
	}, nil)

	s := &MCPServer{
		server: server,
		svc:    svc,
		logger: logger,
	}
	s.setupToolHandlers()
	return s
}

// setupToolHandlers registers all MCP tools
func (s *MCPServer) setupToolHandlers() {
	solveInputSchema, err := jsonschema.For[apptype.SolvePathArgs]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for SolvePathArgs: %v", err))
	}
	solveOutputSchema, err := jsonschema.For[apptype.SolvePathResult]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for SolvePathResult: %v", err))
	}
	listInputSchema, err := jsonschema.For[apptype.ListAlgorithmsArgs]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for ListAlgorithmsArgs: %v", err))
	}
	listOutputSchema, err := jsonschema.For[apptype.AlgorithmsResult]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for AlgorithmsResult: %v", err))
	}
	healthInputSchema, err := jsonschema.For[apptype.HealthArgs]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for HealthArgs: %v", err))
	}
	healthOutputSchema, err := jsonschema.For[apptype.HealthResult]()
	if err != nil {
		panic(fmt.Sprintf("failed to create schema for HealthResult: %v", err))
	}

	readOnly := mcp.ToolAnnotations{ReadOnlyHint: true}

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  &readOnly,
		Name:         "solve_path",
		Title:        "Solve Path",
		Description:  "Find a path between two nodes of a small weighted graph with bfs, dfs, dijkstra, best_first, a_star or hill_climbing.",
		InputSchema:  solveInputSchema,
		OutputSchema: solveOutputSchema,
	}, s.handleSolvePath)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  &readOnly,
		Name:         "list_algorithms",
		Title:        "List Algorithms",
		Description:  "List the available search algorithms.",
		InputSchema:  listInputSchema,
		OutputSchema: listOutputSchema,
	}, s.handleListAlgorithms)

	mcp.AddTool(s.server, &mcp.Tool{
		Annotations:  &readOnly,
		Name:         "health_check",
		Title:        "Health Check",
		Description:  "Return server version and limits.",
		InputSchema:  healthInputSchema,
		OutputSchema: healthOutputSchema,
	}, s.handleHealth)
}

// handleSolvePath runs one search. An unsuccessful search is still a normal
// tool result; only rejected requests and internal faults set IsError.
func (s *MCPServer) handleSolvePath(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.SolvePathArgs],
) (*mcp.CallToolResultFor[apptype.SolvePathResult], error) {
	done := metrics.TimeTool("solve_path")
	var success bool
	defer func() { done(success) }()

	req := params.Arguments.Request()
	var (
		res   apptype.Result
		steps []apptype.Event
		err   error
	)
	if params.Arguments.IncludeSteps {
		res, steps, err = s.svc.SolveWithSteps(req)
	} else {
		res, err = s.svc.Solve(req)
	}
	if err != nil {
		var ve *pathsearch.ValidationError
		if !errors.As(err, &ve) {
			return nil, fmt.Errorf("solve_path failed: %w", err)
		}
		return &mcp.CallToolResultFor[apptype.SolvePathResult]{
			Content: []mcp.Content{&mcp.TextContent{Text: ve.Error()}},
			IsError: true,
		}, nil
	}
	success = res.ErrorKind != apptype.ErrorKindInternal

	out := apptype.SolvePathResult{Result: res.Sanitized()}
	if steps != nil {
		out.Steps = apptype.SanitizeEvents(steps)
	}
	return &mcp.CallToolResultFor[apptype.SolvePathResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: summarize(out.Result)}},
		StructuredContent: out,
		IsError:           !success,
	}, nil
}

func summarize(res apptype.Result) string {
	if !res.Success {
		return res.Message
	}
	return fmt.Sprintf("%s: %s (cost %g, %d nodes explored)",
		res.Message, strings.Join(res.Path, " -> "), res.Cost, res.NodesExplored)
}

func (s *MCPServer) handleListAlgorithms(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.ListAlgorithmsArgs],
) (*mcp.CallToolResultFor[apptype.AlgorithmsResult], error) {
	done := metrics.TimeTool("list_algorithms")
	defer func() { done(true) }()
	algs := s.svc.Algorithms()
	ids := make([]string, len(algs))
	for i, a := range algs {
		ids[i] = a.ID
	}
	return &mcp.CallToolResultFor[apptype.AlgorithmsResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: strings.Join(ids, ", ")}},
		StructuredContent: apptype.AlgorithmsResult{Algorithms: algs},
	}, nil
}

// handleHealth returns basic server health information
func (s *MCPServer) handleHealth(
	ctx context.Context,
	session *mcp.ServerSession,
	params *mcp.CallToolParamsFor[apptype.HealthArgs],
) (*mcp.CallToolResultFor[apptype.HealthResult], error) {
	done := metrics.TimeTool("health_check")
	defer func() { done(true) }()
	maxNodes, maxEdges := s.svc.Limits()
	res := apptype.HealthResult{
		Name:              serverName,
		Version:           buildinfo.Version,
		Revision:          buildinfo.Revision,
		BuildDate:         buildinfo.BuildDate,
		Algorithms:        len(s.svc.Algorithms()),
		HeuristicProvider: s.svc.HeuristicProvider(),
		MaxNodes:          maxNodes,
		MaxEdges:          maxEdges,
	}
	return &mcp.CallToolResultFor[apptype.HealthResult]{
		Content:           []mcp.Content{&mcp.TextContent{Text: "ok"}},
		StructuredContent: res,
	}, nil
}

// Run starts the MCP server with stdio transport
func (s *MCPServer) Run(ctx context.Context) error {
	s.logger.Info("stdio MCP server starting", "version", buildinfo.Version)
	return s.server.Run(ctx, mcp.NewStdioTransport())
}

// RunSSE starts the MCP server over SSE at the given address and endpoint
func (s *MCPServer) RunSSE(ctx context.Context, addr string, endpoint string) error {
	handler := mcp.NewSSEHandler(func(r *http.Request) *mcp.Server { return s.server })
	mux := http.NewServeMux()
	mux.Handle(endpoint, handler)
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 10 * time.Second}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info("SSE MCP server listening", "addr", addr, "endpoint", endpoint)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
