package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/apptype"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/pkg/pathsearch"
	"github.com/gin-gonic/gin"
)

const invalidJSON = "Invalid JSON data"

type handlers struct {
	svc            *pathsearch.Service
	logger         *slog.Logger
	version        string
	allowedOrigins []string
	limiter        *ipRateLimiter
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":     "ok",
		"version":    h.version,
		"algorithms": len(h.svc.Algorithms()),
		"metrics":    metrics.Enabled(),
	})
}

func (h *handlers) algorithms(c *gin.Context) {
	maxNodes, maxEdges := h.svc.Limits()
	c.JSON(http.StatusOK, gin.H{
		"algorithms":         h.svc.Algorithms(),
		"heuristic_provider": h.svc.HeuristicProvider(),
		"max_nodes":          maxNodes,
		"max_edges":          maxEdges,
	})
}

// processGraph is the blocking endpoint. Every unsuccessful search is a 404
// except internal faults, which are a 500.
func (h *handlers) processGraph(c *gin.Context) {
	var req apptype.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, invalidJSON)
		return
	}
	res, err := h.svc.Solve(req)
	if err != nil {
		h.rejectRequest(c, err, false)
		return
	}
	res = res.Sanitized()

	if res.Success {
		c.JSON(http.StatusOK, gin.H{
			"status":         "success",
			"message":        res.Message,
			"path":           res.Path,
			"cost":           res.Cost,
			"algorithm":      res.Algorithm,
			"nodes_explored": res.NodesExplored,
		})
		return
	}
	status := http.StatusNotFound
	if res.ErrorKind == apptype.ErrorKindInternal {
		h.logger.Error("search failed", "algorithm", res.Algorithm, "error", res.Error)
		status = http.StatusInternalServerError
	}
	c.JSON(status, gin.H{
		"status":    "error",
		"message":   res.Message,
		"error":     res.Error,
		"algorithm": res.Algorithm,
	})
}

// searchSteps returns the whole trace with the result for client-side
// animation.
func (h *handlers) searchSteps(c *gin.Context) {
	var req apptype.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": invalidJSON})
		return
	}
	res, steps, err := h.svc.SolveWithSteps(req)
	if err != nil {
		h.rejectRequest(c, err, true)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"steps":  apptype.SanitizeEvents(steps),
		"result": res.Sanitized(),
	})
}

// rejectRequest writes a validation failure. brief selects the terse
// {"error": ...} shape of the step endpoints.
func (h *handlers) rejectRequest(c *gin.Context, err error, brief bool) {
	var ve *pathsearch.ValidationError
	if !errors.As(err, &ve) {
		h.logger.Error("request failed", "error", err)
		if brief {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		writeError(c, http.StatusInternalServerError, "Internal server error: "+err.Error())
		return
	}
	if brief {
		c.JSON(http.StatusBadRequest, gin.H{"error": ve.Brief()})
		return
	}
	writeError(c, http.StatusBadRequest, ve.Error())
}

func writeError(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"status": "error", "message": msg})
}
