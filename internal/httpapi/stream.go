package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/pkg/pathsearch"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// searchStream serves one search as server-sent events: one frame per search event
// named after its type, then a "result" frame.
func (h *handlers) searchStream(c *gin.Context) {
	var req apptype.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidJSON})
		return
	}
	if err := h.svc.Validate(req); err != nil {
		h.rejectRequest(c, err, true)
		return
	}

	w, err := newSSEWriter(c.Writer)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	setSSEHeaders(c.Writer)
	c.Status(http.StatusOK)

	res, err := h.svc.Stream(c.Request.Context(), req, func(ev apptype.Event) error {
		return w.writeEvent(string(ev.Type), ev.Sanitized())
	})
	if err != nil {
		h.logger.Debug("sse client went away", "error", err, "request_id", c.GetString(requestIDKey))
		return
	}
	if err := w.writeEvent("result", res.Sanitized()); err != nil {
		h.logger.Debug("sse result not delivered", "error", err)
	}
}

// wsMessage is one frame sent to WebSocket clients.
type wsMessage struct {
	Kind   string          `json:"kind"` // event|result|error
	Event  *apptype.Event  `json:"event,omitempty"`
	Result *apptype.Result `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

func (h *handlers) upgrader() *websocket.Upgrader {
	allowed := make(map[string]struct{}, len(h.allowedOrigins))
	for _, o := range h.allowedOrigins {
		allowed[o] = struct{}{}
	}
	return &websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowed) == 0 {
				return true
			}
			return originAllowed(allowed, origin)
		},
		ReadBufferSize:  64 * 1024,
		WriteBufferSize: 64 * 1024,
	}
}

// searchSocket accepts SearchRequest frames and streams each search back
// as event frames followed by a result frame. One connection may run several
// searches in sequence.
func (h *handlers) searchSocket(c *gin.Context) {
	ws, err := h.upgrader().Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("failed to upgrade the websocket", "error", err)
		return
	}
	defer ws.Close()

	clientIP := c.ClientIP()
	for {
		_, data, err := ws.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				h.logger.Debug("websocket read ended", "error", err)
			}
			return
		}
		var req apptype.SearchRequest
		if err := json.Unmarshal(data, &req); err != nil {
			if werr := ws.WriteJSON(wsMessage{Kind: "error", Error: invalidJSON}); werr != nil {
				return
			}
			continue
		}

		if !h.limiter.allow(clientIP) {
			metrics.Default().IncRateLimited(c.FullPath())
			if werr := ws.WriteJSON(wsMessage{Kind: "error", Error: rateLimitedMessage}); werr != nil {
				return
			}
			continue
		}

		res, err := h.svc.Stream(c.Request.Context(), req, func(ev apptype.Event) error {
			ev = ev.Sanitized()
			return ws.WriteJSON(wsMessage{Kind: "event", Event: &ev})
		})
		if err != nil {
			var ve *pathsearch.ValidationError
			if errors.As(err, &ve) {
				if werr := ws.WriteJSON(wsMessage{Kind: "error", Error: ve.Error()}); werr != nil {
					return
				}
				continue
			}
			h.logger.Debug("websocket stream ended", "error", err)
			return
		}
		res = res.Sanitized()
		if err := ws.WriteJSON(wsMessage{Kind: "result", Result: &res}); err != nil {
			return
		}
	}
}
