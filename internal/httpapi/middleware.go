package httpapi

import (
	"log/slog"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/ZanzyTHEbar/mcp-graph-search-go/internal/metrics"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// requestLogger assigns a request id and writes one access log line per
// request.
func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader(requestIDHeader)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Header(requestIDHeader, id)

		c.Next()

		logger.Info("request completed",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
			"request_id", id,
		)
	}
}

// observe records route-level HTTP metrics.
func observe() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		metrics.Default().ObserveHTTPRequest(route, c.Request.Method, c.Writer.Status(), time.Since(start).Seconds())
	}
}

func securityHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Next()
	}
}

// dropInvalidHeaders removes request headers whose values are not valid
// UTF-8 before any handler reads them.
func dropInvalidHeaders() gin.HandlerFunc {
	return func(c *gin.Context) {
		for name, values := range c.Request.Header {
			for _, v := range values {
				if !utf8.ValidString(v) {
					c.Request.Header.Del(name)
					break
				}
			}
		}
		c.Next()
	}
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	normalized := make(map[string]struct{}, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		origin = strings.TrimSpace(origin)
		if origin == "" {
			continue
		}
		normalized[origin] = struct{}{}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == "" || !originAllowed(normalized, origin) {
			if c.Request.Method == http.MethodOptions && origin != "" {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}

		c.Header("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Add("Vary", "Origin")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

func originAllowed(set map[string]struct{}, origin string) bool {
	if _, ok := set["*"]; ok {
		return true
	}
	_, ok := set[origin]
	return ok
}

const rateLimitedMessage = "Rate limit exceeded. Please wait before making more requests."

// rateLimit throttles each client IP. A nil limiter disables it.
func rateLimit(limiter *ipRateLimiter) gin.HandlerFunc {
	if limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if !limiter.allow(c.ClientIP()) {
			metrics.Default().IncRateLimited(c.FullPath())
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error":  rateLimitedMessage,
				"status": "rate_limited",
			})
			return
		}
		c.Next()
	}
}
