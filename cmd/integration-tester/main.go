package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type StepResult struct {
	Name      string `json:"name"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

type Report struct {
	SSEURL     string       `json:"sse_url"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMs int64        `json:"duration_ms"`
	Steps      []StepResult `json:"steps"`
	Passed     bool         `json:"passed"`
}

var algorithmIDs = []string{"bfs", "dfs", "dijkstra", "best_first", "a_star", "hill_climbing"}

func main() {
	sseURL := flag.String("sse-url", "http://localhost:8081/sse", "SSE endpoint URL")
	timeout := flag.Duration("timeout", 30*time.Second, "Overall timeout")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	client := mcp.NewClient(&mcp.Implementation{Name: "integration-tester", Version: "dev"}, nil)
	transport := mcp.NewSSEClientTransport(*sseURL, nil)

	start := time.Now()
	report := Report{SSEURL: *sseURL, StartedAt: start}
	steps := make([]StepResult, 0, 16)

	// Connect
	var session *mcp.ClientSession
	connRes := runStep("connect", func() error {
		var err error
		session, err = client.Connect(ctx, transport)
		return err
	})
	if !connRes.Success {
		report.Steps = append(steps, connRes)
		report.DurationMs = elapsedMsSince(start)
		writeReport(report)
		os.Exit(1)
	}
	defer session.Close()
	steps = append(steps, connRes)

	steps = append(steps, runStep("list_tools", func() error { return listTools(ctx, session) }))
	steps = append(steps, runStep("health_check", func() error { return healthCheck(ctx, session) }))
	steps = append(steps, runStep("list_algorithms", func() error { return listAlgorithms(ctx, session) }))
	for _, id := range algorithmIDs {
		steps = append(steps, runStep("solve_path:"+id, func() error { return solveReachable(ctx, session, id) }))
	}
	steps = append(steps, runStep("solve_path:disconnected", func() error { return solveDisconnected(ctx, session) }))
	steps = append(steps, runStep("solve_path:invalid_endpoint", func() error { return solveInvalid(ctx, session) }))

	report.Steps = steps
	report.DurationMs = elapsedMsSince(start)
	report.Passed = true
	for _, s := range steps {
		if !s.Success {
			report.Passed = false
			break
		}
	}
	writeReport(report)

	if !report.Passed {
		os.Exit(1)
	}
}

func runStep(name string, fn func() error) StepResult {
	t0 := time.Now()
	res := StepResult{Name: name, Success: true}
	if err := fn(); err != nil {
		res.Success = false
		res.Error = err.Error()
	}
	res.ElapsedMs = elapsedMsSince(t0)
	return res
}

func writeReport(report Report) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(report)
}

// callTool invokes a tool and decodes its structured content into out.
func callTool(ctx context.Context, session *mcp.ClientSession, name string, args, out any) (*mcp.CallToolResult, error) {
	raw, err := json.Marshal(args)
	if err != nil {
		return nil, err
	}
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: name, Arguments: json.RawMessage(raw)})
	if err != nil {
		return nil, err
	}
	if out != nil && res.StructuredContent != nil {
		structured, err := json.Marshal(res.StructuredContent)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(structured, out); err != nil {
			return nil, fmt.Errorf("decode %s result: %w", name, err)
		}
	}
	return res, nil
}

func listTools(ctx context.Context, session *mcp.ClientSession) error {
	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	if err != nil {
		return err
	}
	want := map[string]bool{"solve_path": false, "list_algorithms": false, "health_check": false}
	for _, tool := range tools.Tools {
		if _, ok := want[tool.Name]; ok {
			want[tool.Name] = true
		}
	}
	for name, seen := range want {
		if !seen {
			return fmt.Errorf("tool %s not registered", name)
		}
	}
	return nil
}

func healthCheck(ctx context.Context, session *mcp.ClientSession) error {
	var out apptype.HealthResult
	if _, err := callTool(ctx, session, "health_check", apptype.HealthArgs{}, &out); err != nil {
		return err
	}
	if out.Version == "" || out.MaxNodes <= 0 {
		return fmt.Errorf("unexpected health result: %+v", out)
	}
	return nil
}

func listAlgorithms(ctx context.Context, session *mcp.ClientSession) error {
	var out apptype.AlgorithmsResult
	if _, err := callTool(ctx, session, "list_algorithms", apptype.ListAlgorithmsArgs{}, &out); err != nil {
		return err
	}
	if len(out.Algorithms) != len(algorithmIDs) {
		return fmt.Errorf("got %d algorithms, want %d", len(out.Algorithms), len(algorithmIDs))
	}
	return nil
}

// diamond is a small graph every strategy solves from A to D.
func diamond() apptype.SolvePathArgs {
	return apptype.SolvePathArgs{
		Nodes: []apptype.NodeSpec{
			{ID: "1", Label: "A"}, {ID: "2", Label: "B"}, {ID: "3", Label: "C"}, {ID: "4", Label: "D"}, {ID: "5", Label: "E"},
		},
		Edges: []apptype.EdgeSpec{
			{From: "1", To: "2", Label: "1"},
			{From: "2", To: "4", Label: "2"},
			{From: "1", To: "3", Label: "4"},
			{From: "3", To: "4", Label: "1"},
		},
		Source:      "1",
		Destination: "4",
		// Heuristic keeps hill climbing on a strictly improving route.
		Heuristic:    map[string]float64{"A": 3, "B": 2, "C": 2.5, "D": 0, "E": 9},
		IncludeSteps: true,
	}
}

func solveReachable(ctx context.Context, session *mcp.ClientSession, algorithm string) error {
	args := diamond()
	args.Algorithm = algorithm
	var out apptype.SolvePathResult
	res, err := callTool(ctx, session, "solve_path", args, &out)
	if err != nil {
		return err
	}
	if res.IsError || !out.Result.Success {
		return fmt.Errorf("search failed: %s", out.Result.Message)
	}
	path := out.Result.Path
	if len(path) < 2 || path[0] != "A" || path[len(path)-1] != "D" {
		return fmt.Errorf("unexpected path %v", path)
	}
	if len(out.Steps) == 0 || out.Steps[len(out.Steps)-1].Type != apptype.EventFinalPath {
		return fmt.Errorf("trace does not end with final_path")
	}
	return nil
}

func solveDisconnected(ctx context.Context, session *mcp.ClientSession) error {
	args := diamond()
	args.Algorithm = "dijkstra"
	args.Destination = "5"
	var out apptype.SolvePathResult
	if _, err := callTool(ctx, session, "solve_path", args, &out); err != nil {
		return err
	}
	if out.Result.Success || out.Result.ErrorKind != apptype.ErrorKindNoPath {
		return fmt.Errorf("expected no_path, got %+v", out.Result)
	}
	return nil
}

func solveInvalid(ctx context.Context, session *mcp.ClientSession) error {
	args := diamond()
	args.Destination = "42"
	res, err := callTool(ctx, session, "solve_path", args, nil)
	if err != nil {
		return err
	}
	if !res.IsError {
		return fmt.Errorf("expected a tool error for an unknown destination")
	}
	return nil
}

// elapsedMsSince returns max(1ms, elapsed) so fast steps never report zero
func elapsedMsSince(t0 time.Time) int64 {
	if ms := time.Since(t0).Milliseconds(); ms > 0 {
		return ms
	}
	return 1
}
