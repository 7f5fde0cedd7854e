package gin

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/gin-gonic/gin"
)

// logRequest logs one line per request once the handler chain finishes.
func (s *Server) logRequest(c *gin.Context) {
	start := time.Now()
	path := c.Request.URL.Path

	c.Next()

	attrs := []any{
		"method", c.Request.Method,
		"path", path,
		"status", c.Writer.Status(),
		"duration", time.Since(start),
		"client_ip", c.ClientIP(),
	}
	if len(c.Errors) > 0 {
		s.logger.Error("http request", append(attrs, "errors", c.Errors.Errors())...)
		return
	}
	level := slog.LevelInfo
	if path == "/health" {
		level = slog.LevelDebug
	}
	s.logger.Log(c.Request.Context(), level, "http request", attrs...)
}

func (s *Server) recoverPanic(c *gin.Context, recovered any) {
	s.logger.Error("panic", "path", c.Request.URL.Path, "recovered", fmt.Sprint(recovered))
	s.record(c, tagscrape.ActionError, map[string]any{"error": "500 Internal Server Error"})
	c.AbortWithStatusJSON(http.StatusInternalServerError, tagscrape.Failure("internal server error"))
}

func (s *Server) limitGlobal(c *gin.Context) {
	s.limit(c, s.Limiter)
}

func (s *Server) limitScrape(c *gin.Context) {
	s.limit(c, s.ScrapeLimiter)
}

// limit rejects the request when the client address is over its budget.
func (s *Server) limit(c *gin.Context, l tagscrape.RateLimiter) {
	if l == nil || l.Allow(c.ClientIP()) {
		c.Next()
		return
	}
	Error(c, tagscrape.Errorf(tagscrape.ERATELIMIT, "rate limit exceeded"))
}

// requireAuth checks basic-auth credentials. Requests are rejected when no
// Authenticator is configured.
func (s *Server) requireAuth(c *gin.Context) {
	var err error = tagscrape.Errorf(tagscrape.EUNAUTHORIZED, "authentication required")
	if user, pass, ok := c.Request.BasicAuth(); ok && s.Authenticator != nil {
		err = s.Authenticator.Authenticate(c.Request.Context(), user, pass)
	}
	if err != nil {
		c.Header("WWW-Authenticate", `Basic realm="tagscrape"`)
		Error(c, err)
		return
	}
	c.Next()
}
