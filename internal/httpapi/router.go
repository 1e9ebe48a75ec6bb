package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/ZanzyTHEbar/mcp-graph-search-go/pkg/pathsearch"
	"github.com/gin-gonic/gin"
)

// RouterOptions collects handler dependencies.
type RouterOptions struct {
	Service            *pathsearch.Service
	AllowedOrigins     []string
	RateLimitPerMinute int
	RateLimitBurst     int
	UIDir              string
	Version            string
}

// NewRouter wires the HTTP routes.
func NewRouter(logger *slog.Logger, opts RouterOptions) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		dropInvalidHeaders(),
		requestLogger(logger),
		observe(),
		securityHeaders(),
		corsMiddleware(opts.AllowedOrigins),
	)

	limiter := newIPRateLimiter(opts.RateLimitPerMinute, opts.RateLimitBurst)
	h := &handlers{
		svc:            opts.Service,
		logger:         logger,
		version:        opts.Version,
		allowedOrigins: opts.AllowedOrigins,
		limiter:        limiter,
	}

	router.GET("/healthz", h.health)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	limit := rateLimit(limiter)
	limited := router.Group("/", limit)
	{
		limited.POST("/process_graph/", h.processGraph)
		limited.POST("/search_sse/", h.searchSteps)
	}

	v1 := router.Group("/v1")
	{
		v1.GET("/algorithms", h.algorithms)
		search := v1.Group("/search")
		{
			search.POST("", limit, h.processGraph)
			search.POST("/stream", limit, h.searchStream)
			// each search on the socket takes its own token
			search.GET("/ws", h.searchSocket)
		}
	}

	if opts.UIDir != "" {
		router.StaticFS("/ui", http.Dir(opts.UIDir))
		router.GET("/", func(c *gin.Context) {
			c.Redirect(http.StatusMovedPermanently, "/ui/")
		})
	}
	return router
}
