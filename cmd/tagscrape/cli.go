package main

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tagscrape"
	tshttp "github.com/fwojciec/tagscrape/http"
	"github.com/fwojciec/tagscrape/lru"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Scraper  tagscrape.Scraper
	OnListen func(addr string)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config    kong.ConfigFlag `help:"Load flag values from a JSON file" type:"existingfile"`
	Verbose   bool            `short:"v" env:"TAGSCRAPE_VERBOSE" help:"Enable debug logging"`
	UserAgent string          `env:"TAGSCRAPE_USER_AGENT" default:"${user_agent}" help:"User-Agent sent with every fetch"`
	MaxBody   int64           `env:"TAGSCRAPE_MAX_BODY" default:"${max_body}" help:"Maximum response body size in bytes"`
	CacheSize int             `env:"TAGSCRAPE_CACHE_SIZE" default:"${cache_size}" help:"Number of fetched pages kept in memory"`

	Serve        ServeCmd        `cmd:"" help:"Run the HTTP API"`
	Scrape       ScrapeCmd       `cmd:"" help:"Scrape one page and print the result as JSON"`
	HashPassword HashPasswordCmd `cmd:"" name:"hash-password" help:"Print a bcrypt hash for use with --password-hash"`
}

// Vars are the interpolated defaults for CLI flags.
var Vars = kong.Vars{
	"user_agent": tshttp.DefaultUserAgent,
	"max_body":   strconv.FormatInt(tshttp.DefaultMaxBodySize, 10),
	"cache_size": strconv.Itoa(lru.DefaultCapacity),
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr            string `env:"TAGSCRAPE_ADDR" default:":5000" help:"Listen address"`
	DataDir         string `env:"TAGSCRAPE_DATA_DIR" default:"data" type:"path" help:"Directory for stored results and request logs"`
	Store           string `env:"TAGSCRAPE_STORE" default:"file" enum:"file,sqlite" help:"Storage backend (file, sqlite)"`
	User            string `env:"TAGSCRAPE_USER" help:"Username for protected routes"`
	PasswordHash    string `env:"TAGSCRAPE_PASSWORD_HASH" help:"Bcrypt hash of the password for protected routes"`
	RateLimit       int    `env:"TAGSCRAPE_RATE_LIMIT" default:"200" help:"Requests per minute per client, 0 disables"`
	ScrapeRateLimit int    `env:"TAGSCRAPE_SCRAPE_RATE_LIMIT" default:"10" help:"Scrape requests per minute per client, 0 disables"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URL      string            `arg:"" help:"Page URL"`
	Elements []string          `short:"e" name:"element" help:"Element name to extract (repeatable, default h2)"`
	Links    bool              `short:"l" help:"Also extract resolved link targets"`
	Headers  map[string]string `short:"H" name:"header" mapsep:"none" help:"Request header as name=value (repeatable)"`
	Timeout  time.Duration     `short:"t" default:"10s" help:"Fetch timeout"`
}

// HashPasswordCmd is the "hash-password" subcommand.
type HashPasswordCmd struct {
	Password string `arg:"" help:"Password to hash"`
}
