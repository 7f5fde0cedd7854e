// Package scrape composes fetching, validation, and extraction into a single
// pipeline that reports every outcome through a tagscrape.Result.
package scrape

import (
	"context"
	"errors"
	"fmt"

	"github.com/fwojciec/tagscrape"
)

// NotHTMLMessage is the failure message for content rejected by tagscrape.IsHTML.
const NotHTMLMessage = "content is not HTML"

// Compile-time interface verification.
var _ tagscrape.Scraper = (*Scraper)(nil)

// Scraper runs fetch, validate, extract for one URL at a time.
type Scraper struct {
	Fetcher   tagscrape.Fetcher
	Extractor tagscrape.Extractor
}

// NewScraper returns a Scraper using the given dependencies.
func NewScraper(fetcher tagscrape.Fetcher, extractor tagscrape.Extractor) *Scraper {
	return &Scraper{Fetcher: fetcher, Extractor: extractor}
}

// Scrape fetches req.URL, checks that the body is HTML, and extracts the
// requested elements. Elements default to tagscrape.DefaultElements and the
// timeout to tagscrape.DefaultTimeout.
func (s *Scraper) Scrape(ctx context.Context, req tagscrape.ScrapeRequest) (result *tagscrape.Result) {
	defer func() {
		if r := recover(); r != nil {
			result = unexpected(fmt.Errorf("%v", r))
		}
	}()

	elements := req.Elements
	if len(elements) == 0 {
		elements = tagscrape.DefaultElements
	}
	timeout := req.Timeout
	if timeout <= 0 {
		timeout = tagscrape.DefaultTimeout
	}

	body, err := s.Fetcher.Fetch(ctx, tagscrape.FetchRequest{
		URL:     req.URL,
		Headers: req.Headers,
		Timeout: timeout,
	})
	if err != nil {
		var fetchErr *tagscrape.FetchError
		if errors.As(err, &fetchErr) {
			return tagscrape.Failure(fetchErr.Error())
		}
		return unexpected(err)
	}

	if !tagscrape.IsHTML(body) {
		return tagscrape.Failure(NotHTMLMessage)
	}

	data, err := s.Extractor.Extract(body, tagscrape.ExtractRequest{
		Elements:     elements,
		ExtractLinks: req.ExtractLinks,
		BaseURL:      req.URL,
	})
	if err != nil {
		return unexpected(err)
	}

	return tagscrape.Success(data)
}

func unexpected(err error) *tagscrape.Result {
	msg := err.Error()
	var e *tagscrape.Error
	if errors.As(err, &e) {
		msg = e.Message
	}
	return tagscrape.Failure("unexpected error: " + msg)
}
