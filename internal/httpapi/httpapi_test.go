package httpapi

import (
	"bufio"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/pkg/pathsearch"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const graphJSON = `{
	"nodes": [{"id": 1, "label": "A"}, {"id": 2, "label": "B"}, {"id": 3, "label": "C"}, {"id": 4, "label": "D"}],
	"edges": [{"from": 1, "to": 2, "label": "4"}, {"from": 2, "to": 3, "label": "1"}, {"from": 1, "to": 3, "label": ""}],
	"source": 1,
	"destination": %DST%,
	"algorithm": "%ALG%"
}`

func body(alg, dst string) string {
	return strings.NewReplacer("%ALG%", alg, "%DST%", dst).Replace(graphJSON)
}

func newTestRouter(t *testing.T, perMinute int) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := pathsearch.DefaultConfig()
	cfg.HeuristicSeed = 1
	svc, err := pathsearch.NewService(cfg)
	require.NoError(t, err)
	return NewRouter(slog.New(slog.DiscardHandler), RouterOptions{
		Service:            svc,
		AllowedOrigins:     []string{"https://ui.example"},
		RateLimitPerMinute: perMinute,
		Version:            "test",
	})
}

func do(r http.Handler, method, path, payload string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestProcessGraph_Success(t *testing.T) {
	r := newTestRouter(t, 0)
	w := do(r, http.MethodPost, "/process_graph/", body("dijkstra", "3"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	out := decode(t, w)
	assert.Equal(t, "success", out["status"])
	assert.Equal(t, "Path found using Dijkstra's Algorithm", out["message"])
	assert.Equal(t, []any{"A", "C"}, out["path"])
	assert.Equal(t, 1.0, out["cost"])
	assert.Equal(t, "Dijkstra's Algorithm", out["algorithm"])
	assert.Equal(t, 2.0, out["nodes_explored"])

	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", w.Header().Get("X-Frame-Options"))
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestProcessGraph_Failures(t *testing.T) {
	r := newTestRouter(t, 0)

	w := do(r, http.MethodPost, "/process_graph/", body("bfs", "4"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, map[string]any{
		"status":    "error",
		"message":   "No path exists between A and D",
		"error":     "No path found",
		"algorithm": "Breadth-First Search",
	}, decode(t, w))

	w = do(r, http.MethodPost, "/process_graph/", body("greedy_foo", "3"))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Unknown algorithm: greedy_foo", decode(t, w)["message"])

	w = do(r, http.MethodPost, "/process_graph/", `{"nodes": [`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"status": "error", "message": "Invalid JSON data"}, decode(t, w))

	w = do(r, http.MethodPost, "/process_graph/", `{"nodes": [], "edges": [], "source": 1, "destination": 2}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "No nodes provided", decode(t, w)["message"])

	w = do(r, http.MethodPost, "/process_graph/", body("bfs", "9"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid source or destination node", decode(t, w)["message"])
}

func TestSearchSteps(t *testing.T) {
	r := newTestRouter(t, 0)
	w := do(r, http.MethodPost, "/search_sse/", body("a_star", "3"))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var out struct {
		Steps  []apptype.Event `json:"steps"`
		Result apptype.Result  `json:"result"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	require.NotEmpty(t, out.Steps)
	assert.Equal(t, apptype.EventStart, out.Steps[0].Type)
	assert.Equal(t, apptype.EventFinalPath, out.Steps[len(out.Steps)-1].Type)
	assert.True(t, out.Result.Success)
	assert.Equal(t, "A* Search", out.Result.Algorithm)
	assert.Len(t, out.Result.Heuristic, 4)

	w = do(r, http.MethodPost, "/search_sse/", body("bfs", "4"))
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	assert.False(t, out.Result.Success)
	assert.Equal(t, float64(apptype.PositiveInfinitySentinel), out.Result.Cost)

	w = do(r, http.MethodPost, "/search_sse/", `{"nodes": [{"id": 1, "label": "A"}], "edges": [{"from": 1, "to": 1}]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"error": "Missing required data"}, decode(t, w))
}

func TestSearchStream_SSEFrames(t *testing.T) {
	r := newTestRouter(t, 0)
	w := do(r, http.MethodPost, "/v1/search/stream", body("bfs", "3"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	var events []string
	var lastData string
	ids := 0
	sc := bufio.NewScanner(strings.NewReader(w.Body.String()))
	for sc.Scan() {
		line := sc.Text()
		switch {
		case strings.HasPrefix(line, "id: "):
			ids++
		case strings.HasPrefix(line, "event: "):
			events = append(events, strings.TrimPrefix(line, "event: "))
		case strings.HasPrefix(line, "data: "):
			lastData = strings.TrimPrefix(line, "data: ")
		}
	}
	require.NotEmpty(t, events)
	assert.Equal(t, "start", events[0])
	assert.Equal(t, "final_path", events[len(events)-2])
	assert.Equal(t, "result", events[len(events)-1])
	assert.Equal(t, len(events), ids)

	var res apptype.Result
	require.NoError(t, json.Unmarshal([]byte(lastData), &res))
	assert.True(t, res.Success)
	assert.Equal(t, []string{"A", "C"}, res.Path)
}

func TestSearchStream_RejectsBeforeStreaming(t *testing.T) {
	r := newTestRouter(t, 0)
	w := do(r, http.MethodPost, "/v1/search/stream", body("bfs", "9"))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"error": "Invalid source or destination"}, decode(t, w))
}

func TestSearchSocket(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, 0))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/search/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body("dfs", "3"))))
	var kinds []string
	var final wsMessage
	for {
		var msg wsMessage
		require.NoError(t, conn.ReadJSON(&msg))
		kinds = append(kinds, msg.Kind)
		if msg.Kind != "event" {
			final = msg
			break
		}
	}
	assert.Equal(t, "result", final.Kind)
	require.NotNil(t, final.Result)
	assert.True(t, final.Result.Success)
	assert.Greater(t, len(kinds), 3)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	var msg wsMessage
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, wsMessage{Kind: "error", Error: "Invalid JSON data"}, msg)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body("bfs", "9"))))
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Equal(t, "error", msg.Kind)
	assert.Equal(t, "Invalid source or destination node", msg.Error)
}

func TestSearchSocket_RateLimitsEachSearch(t *testing.T) {
	srv := httptest.NewServer(newTestRouter(t, 2))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/v1/search/ws"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))

	readFinal := func() wsMessage {
		for {
			var msg wsMessage
			require.NoError(t, conn.ReadJSON(&msg))
			if msg.Kind != "event" {
				return msg
			}
		}
	}

	// the upgrade itself takes no token
	for i := 0; i < 2; i++ {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body("bfs", "3"))))
		msg := readFinal()
		require.Equal(t, "result", msg.Kind, "search %d", i)
		assert.True(t, msg.Result.Success)
	}

	for i := 0; i < 3; i++ {
		require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(body("bfs", "3"))))
		assert.Equal(t, wsMessage{Kind: "error", Error: rateLimitedMessage}, readFinal())
	}

	// the socket and the POST routes share one budget per client
	resp, err := srv.Client().Post(srv.URL+"/v1/search", "application/json", strings.NewReader(body("bfs", "3")))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestRateLimit(t *testing.T) {
	r := newTestRouter(t, 2)
	for i := 0; i < 2; i++ {
		w := do(r, http.MethodPost, "/process_graph/", body("bfs", "3"))
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(r, http.MethodPost, "/search_sse/", body("bfs", "3"))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, map[string]any{
		"error":  "Rate limit exceeded. Please wait before making more requests.",
		"status": "rate_limited",
	}, decode(t, w))

	// listing is not throttled
	w = do(r, http.MethodGet, "/v1/algorithms", "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimiter_Refills(t *testing.T) {
	l := newIPRateLimiter(60, 1)
	now := time.Unix(1_700_000_000, 0)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("a"))
	assert.False(t, l.allow("a"))
	assert.True(t, l.allow("b"))

	now = now.Add(time.Second)
	assert.True(t, l.allow("a"))

	now = now.Add(2 * limiterIdleTTL)
	assert.True(t, l.allow("c"))
	assert.Len(t, l.clients, 1)
}

func TestAlgorithmsAndHealth(t *testing.T) {
	r := newTestRouter(t, 0)
	w := do(r, http.MethodGet, "/v1/algorithms", "")
	require.Equal(t, http.StatusOK, w.Code)
	out := decode(t, w)
	assert.Len(t, out["algorithms"], 6)
	assert.Equal(t, "random", out["heuristic_provider"])

	w = do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
	health := decode(t, w)
	assert.Equal(t, "ok", health["status"])
	assert.Equal(t, false, health["metrics"])

	w = do(r, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCORS(t *testing.T) {
	r := newTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodOptions, "/process_graph/", nil)
	req.Header.Set("Origin", "https://ui.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://ui.example", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/process_graph/", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDropInvalidHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(dropInvalidHeaders())
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetHeader("X-Bad")+"|"+c.GetHeader("X-Good"))
	})

	req := httptest.NewRequest(http.MethodGet, "/echo", nil)
	req.Header["X-Bad"] = []string{"ok", string([]byte{0xff, 0xfe})}
	req.Header.Set("X-Good", "fine")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "|fine", w.Body.String())
}
