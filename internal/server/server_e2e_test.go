package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pickFreePort tries to get a free TCP port on 127.0.0.1
func pickFreePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

func TestSSEServer_SolvePath(t *testing.T) {
	srv := newTestServer(t)

	port, err := pickFreePort()
	require.NoError(t, err)
	addr := fmt.Sprintf("127.0.0.1:%d", port)
	endpoint := "/sse"

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = srv.RunSSE(ctx, addr, endpoint) }()

	// wait briefly for server to bind
	time.Sleep(150 * time.Millisecond)

	client := mcp.NewClient(&mcp.Implementation{Name: "e2e-client", Version: "test"}, nil)
	transport := mcp.NewSSEClientTransport("http://"+addr+endpoint, nil)

	// retry connect a few times to avoid flakes
	var session *mcp.ClientSession
	for i := 0; i < 5; i++ {
		session, err = client.Connect(ctx, transport)
		if err == nil {
			break
		}
		time.Sleep(100 * time.Millisecond)
	}
	require.NoError(t, err)
	defer session.Close()

	tools, err := session.ListTools(ctx, &mcp.ListToolsParams{})
	require.NoError(t, err)
	names := make([]string, 0, len(tools.Tools))
	for _, tool := range tools.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"solve_path", "list_algorithms", "health_check"}, names)

	raw, err := json.Marshal(lineArgs("bfs"))
	require.NoError(t, err)
	res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: "solve_path", Arguments: json.RawMessage(raw)})
	require.NoError(t, err)
	require.False(t, res.IsError)

	structured, err := json.Marshal(res.StructuredContent)
	require.NoError(t, err)
	var out apptype.SolvePathResult
	require.NoError(t, json.Unmarshal(structured, &out))
	assert.True(t, out.Result.Success)
	assert.Equal(t, []string{"A", "B", "C"}, out.Result.Path)
}
