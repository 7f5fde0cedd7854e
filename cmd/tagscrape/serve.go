package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/bcrypt"
	"github.com/fwojciec/tagscrape/fs"
	tsgin "github.com/fwojciec/tagscrape/gin"
	"github.com/fwojciec/tagscrape/rate"
	tsslog "github.com/fwojciec/tagscrape/slog"
	"github.com/fwojciec/tagscrape/sqlite"
	"golang.org/x/sync/errgroup"
)

// DBFileName is the SQLite database created in the data directory.
const DBFileName = "tagscrape.db"

// Run executes the serve command. It blocks until the context is cancelled
// or the server fails.
func (c *ServeCmd) Run(deps *Dependencies) error {
	authenticator, err := c.authenticator()
	if err != nil {
		return err
	}
	if authenticator == nil {
		deps.Logger.Warn("no credentials configured, protected routes will reject all requests")
	}

	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	s := tsgin.NewServer(deps.Logger)
	s.Addr = c.Addr
	s.Scraper = deps.Scraper
	s.Authenticator = authenticator
	if c.RateLimit > 0 {
		s.Limiter = rate.NewKeyedLimiter(c.RateLimit, time.Minute)
	}
	if c.ScrapeRateLimit > 0 {
		s.ScrapeLimiter = rate.NewKeyedLimiter(c.ScrapeRateLimit, time.Minute)
	}

	switch c.Store {
	case "sqlite":
		db := sqlite.NewDB(filepath.Join(c.DataDir, DBFileName))
		if err := db.Open(); err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		s.Results = tsslog.NewLoggingResultStore(sqlite.NewResultStore(db), deps.Logger)
		s.Requests = sqlite.NewRequestLog(db)
	default:
		s.Results = tsslog.NewLoggingResultStore(fs.NewResultStore(c.DataDir), deps.Logger)
		s.Requests = fs.NewRequestLog(c.DataDir)
	}

	if err := s.Open(); err != nil {
		return fmt.Errorf("failed to listen on %s: %w", c.Addr, err)
	}
	if deps.OnListen != nil {
		deps.OnListen(s.ListenAddr())
	}

	g, ctx := errgroup.WithContext(deps.Ctx)
	g.Go(s.Serve)
	g.Go(func() error {
		<-ctx.Done()
		deps.Logger.Info("shutting down")
		return s.Close()
	})
	return g.Wait()
}

// authenticator returns nil when no user is configured.
func (c *ServeCmd) authenticator() (tagscrape.Authenticator, error) {
	if c.User == "" {
		return nil, nil
	}
	if c.PasswordHash == "" {
		return nil, errors.New("--password-hash is required with --user. Generate one with 'tagscrape hash-password'")
	}
	return bcrypt.NewAuthenticator(map[string]string{c.User: c.PasswordHash}), nil
}
