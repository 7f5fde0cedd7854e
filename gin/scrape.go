package gin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/tagscrape"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// MaxScrapeTimeout is the largest per-request fetch timeout a client may ask for.
const MaxScrapeTimeout = 5 * time.Minute

// scrapeRequest is the JSON body of POST /scrape. Timeout is in seconds.
type scrapeRequest struct {
	URL          string            `json:"url"`
	Elements     []string          `json:"elements"`
	ExtractLinks bool              `json:"extract_links"`
	Headers      map[string]string `json:"headers"`
	Timeout      float64           `json:"timeout"`
}

func (s *Server) handleScrape(c *gin.Context) {
	var req scrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		Error(c, tagscrape.Errorf(tagscrape.EINVALID, "invalid request body"))
		return
	}

	if err := tagscrape.ValidateURL(req.URL); err != nil {
		details := map[string]any{"status": string(tagscrape.StatusError), "message": tagscrape.ErrorMessage(err)}
		if req.URL != "" {
			details["url"] = req.URL
		}
		s.record(c, tagscrape.ActionScrape, details)
		Error(c, err)
		return
	}
	if req.Timeout < 0 {
		Error(c, tagscrape.Errorf(tagscrape.EINVALID, "timeout must not be negative"))
		return
	}
	if req.Timeout > MaxScrapeTimeout.Seconds() {
		Error(c, tagscrape.Errorf(tagscrape.EINVALID, "timeout must not exceed %v", MaxScrapeTimeout))
		return
	}

	url := tagscrape.NormalizeURL(req.URL)
	s.record(c, tagscrape.ActionScrape, map[string]any{"url": url})

	result := s.Scraper.Scrape(c.Request.Context(), tagscrape.ScrapeRequest{
		URL:          url,
		Elements:     req.Elements,
		ExtractLinks: req.ExtractLinks,
		Headers:      req.Headers,
		Timeout:      time.Duration(req.Timeout * float64(time.Second)),
	})
	if !result.OK() {
		c.JSON(http.StatusInternalServerError, result)
		return
	}

	e, err := newExtraction(url, result)
	if err != nil {
		Error(c, err)
		return
	}
	if err := s.Results.SaveExtraction(c.Request.Context(), e); err != nil {
		Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// newExtraction builds the persisted form of a successful result.
func newExtraction(url string, result *tagscrape.Result) (*tagscrape.Extraction, error) {
	hash, err := contentHash(result.Data)
	if err != nil {
		return nil, err
	}
	return &tagscrape.Extraction{
		ID:          uuid.New().String(),
		URL:         url,
		Status:      result.Status,
		Data:        result.Data,
		ContentHash: hash,
		ScrapedAt:   time.Now().UTC(),
	}, nil
}

// contentHash returns the xxhash of the JSON encoding of data.
// Map keys are encoded in sorted order so equal data hashes equally.
func contentHash(data tagscrape.Data) (string, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return "", fmt.Errorf("encode data: %w", err)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(b)), nil
}
