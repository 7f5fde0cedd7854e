package main

import (
	"encoding/json"
	"fmt"

	"github.com/fwojciec/tagscrape"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	if c.URL == "" {
		return fmt.Errorf("URL not provided")
	}
	url := tagscrape.NormalizeURL(c.URL)

	result := deps.Scraper.Scrape(deps.Ctx, tagscrape.ScrapeRequest{
		URL:          url,
		Elements:     c.Elements,
		ExtractLinks: c.Links,
		Headers:      c.Headers,
		Timeout:      c.Timeout,
	})

	b, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	fmt.Fprintln(deps.Stdout, string(b))

	if !result.OK() {
		return fmt.Errorf("scrape %s failed: %s", url, result.Message)
	}
	return nil
}
