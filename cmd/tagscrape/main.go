package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tagscrape"
	"github.com/fwojciec/tagscrape/goquery"
	tshttp "github.com/fwojciec/tagscrape/http"
	"github.com/fwojciec/tagscrape/lru"
	"github.com/fwojciec/tagscrape/scrape"
	tsslog "github.com/fwojciec/tagscrape/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher replaces the HTTP fetcher when set. Set before calling Run().
	Fetcher tagscrape.Fetcher

	// OnListen is called with the bound address once the server listens.
	OnListen func(addr string)
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:      ctx,
		Stdout:   stdout,
		Stderr:   stderr,
		OnListen: m.OnListen,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tagscrape"),
		kong.Description("Extract element text and links from web pages"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Configuration(kong.JSON),
		Vars,
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tagscrape --help' to see available commands")
	}

	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	fetcher := m.Fetcher
	if fetcher == nil {
		f := tshttp.NewFetcher(
			tshttp.WithUserAgent(cli.UserAgent),
			tshttp.WithMaxBodySize(cli.MaxBody),
		)
		defer f.Close()
		fetcher = f
	}
	deps.Scraper = newScraper(fetcher, cli.CacheSize, deps.Logger)

	return kongCtx.Run(deps)
}

// newScraper assembles the pipeline. Logging sits inside the cache so only
// network fetches are logged.
func newScraper(fetcher tagscrape.Fetcher, cacheSize int, logger *slog.Logger) tagscrape.Scraper {
	cached := lru.NewCachingFetcher(tsslog.NewLoggingFetcher(fetcher, logger), lru.NewCache(cacheSize))
	return tsslog.NewLoggingScraper(scrape.NewScraper(cached, goquery.NewExtractor()), logger)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
