// Package gin exposes the scrape pipeline over HTTP using the gin router.
package gin

import (
	"context"
	_ "embed"
	"errors"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// ShutdownTimeout is the time given for outstanding requests to finish.
const ShutdownTimeout = 5 * time.Second

//go:embed index.html
var indexHTML []byte

// Server is the HTTP API. Services are assigned after NewServer and must be
// set before the server handles requests.
type Server struct {
	ln     net.Listener
	server *http.Server
	router *gin.Engine
	logger *slog.Logger

	// Bind address for the server's listener.
	Addr string

	Scraper       tagscrape.Scraper
	Results       tagscrape.ResultStore
	Requests      tagscrape.RequestLog
	Authenticator tagscrape.Authenticator

	// Limiter applies to every route. ScrapeLimiter applies to POST /scrape
	// in addition. A nil limiter disables throttling.
	Limiter       tagscrape.RateLimiter
	ScrapeLimiter tagscrape.RateLimiter
}

// NewServer returns a Server with all routes registered.
// A nil logger discards output.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := &Server{
		server: &http.Server{ReadHeaderTimeout: 10 * time.Second},
		router: gin.New(),
		logger: logger,
	}
	s.server.Handler = s.router

	s.router.Use(gin.CustomRecoveryWithWriter(io.Discard, s.recoverPanic))
	s.router.Use(s.logRequest)
	s.router.Use(cors.Default())
	s.router.Use(s.limitGlobal)

	s.router.GET("/", s.handleIndex)
	s.router.GET("/health", s.handleHealth)
	s.router.POST("/scrape", s.limitScrape, s.handleScrape)

	protected := s.router.Group("/", s.requireAuth)
	protected.GET("/data", s.handleData)
	protected.GET("/download", s.handleDownload)
	protected.POST("/clear_data", s.handleClearData)
	protected.GET("/logs", s.handleLogs)

	s.router.NoRoute(s.handleNotFound)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Open binds the listener on Addr.
func (s *Server) Open() (err error) {
	if s.ln, err = net.Listen("tcp", s.Addr); err != nil {
		return err
	}
	return nil
}

// Serve handles connections until Close is called. Open must be called first.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("server not open")
	}
	s.logger.Info("listening", "addr", s.ln.Addr().String())
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// ListenAddr returns the bound address, which differs from Addr when
// Addr uses port 0.
func (s *Server) ListenAddr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Close gracefully shuts down the server.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.server.Shutdown(ctx)
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexHTML)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleNotFound(c *gin.Context) {
	s.record(c, tagscrape.ActionError, map[string]any{"error": "404 Not Found", "path": c.Request.URL.Path})
	Error(c, tagscrape.Errorf(tagscrape.ENOTFOUND, "page not found"))
}

// record writes an entry to the request log. Failures are logged and
// otherwise ignored so that logging never fails a request.
func (s *Server) record(c *gin.Context, action string, details map[string]any) {
	if s.Requests == nil {
		return
	}
	entry := &tagscrape.LogEntry{Action: action, Details: details}
	if err := s.Requests.RecordRequest(c.Request.Context(), entry); err != nil {
		s.logger.Error("record request", "action", action, "err", err)
	}
}
