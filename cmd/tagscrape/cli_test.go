package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/alecthomas/kong"
	main "github.com/fwojciec/tagscrape/cmd/tagscrape"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCLI_HelpShowsAllCommands(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	parser, err := kong.New(cli,
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		main.Vars,
	)
	require.NoError(t, err)

	_, _ = parser.Parse([]string{"--help"})

	helpOutput := stdout.String()
	for _, cmd := range []string{"serve", "scrape", "hash-password"} {
		assert.Contains(t, helpOutput, cmd, "Help should mention %s command", cmd)
	}
}

func TestCLI_ServeDefaults(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"serve"})
	require.NoError(t, err)

	assert.Equal(t, ":5000", cli.Serve.Addr)
	assert.Equal(t, "file", cli.Serve.Store)
	assert.Equal(t, 200, cli.Serve.RateLimit)
	assert.Equal(t, 10, cli.Serve.ScrapeRateLimit)
	assert.Equal(t, 100, cli.CacheSize)
	assert.Equal(t, int64(10<<20), cli.MaxBody)
}

func TestCLI_ScrapeFlags(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
	require.NoError(t, err)

	_, err = parser.Parse([]string{
		"scrape", "https://example.com",
		"-e", "h1", "-e", "p",
		"--links",
		"-H", "Accept-Language=en;q=0.9",
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com", cli.Scrape.URL)
	assert.Equal(t, []string{"h1", "p"}, cli.Scrape.Elements)
	assert.True(t, cli.Scrape.Links)
	assert.Equal(t, map[string]string{"Accept-Language": "en;q=0.9"}, cli.Scrape.Headers)
}

func TestCLI_RejectsUnknownStore(t *testing.T) {
	t.Parallel()

	cli := &main.CLI{}
	parser, err := kong.New(cli, kong.Exit(func(int) {}), main.Vars)
	require.NoError(t, err)

	_, err = parser.Parse([]string{"serve", "--store", "redis"})
	assert.Error(t, err)
}

func TestMain_Run_HelpShowsKongOutput(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), []string{"--help"}, stdout, stderr)
	require.NoError(t, err)

	for _, cmd := range []string{"serve", "scrape", "hash-password"} {
		assert.Contains(t, stdout.String(), cmd)
	}
}

func TestMain_Run_NoArgs(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	err := main.NewMain().Run(context.Background(), nil, stdout, stderr)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no command specified")
}
