package gin

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fwojciec/tagscrape"
	"github.com/gin-gonic/gin"
)

// DownloadFileName is the attachment name used by GET /download.
const DownloadFileName = "extracted_data.json"

func (s *Server) handleData(c *gin.Context) {
	s.record(c, tagscrape.ActionGetData, nil)

	e, err := s.Results.LatestExtraction(c.Request.Context())
	if tagscrape.ErrorCode(err) == tagscrape.ENOTFOUND {
		c.JSON(http.StatusOK, gin.H{"status": tagscrape.StatusSuccess, "data": tagscrape.Data{}})
		return
	} else if err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) handleDownload(c *gin.Context) {
	s.record(c, tagscrape.ActionDownload, nil)

	e, err := s.Results.LatestExtraction(c.Request.Context())
	if tagscrape.ErrorCode(err) == tagscrape.ENOTFOUND {
		Error(c, tagscrape.Errorf(tagscrape.ENOTFOUND, "no data available for download"))
		return
	} else if err != nil {
		Error(c, err)
		return
	}

	etag := strconv.Quote(e.ContentHash)
	c.Header("ETag", etag)
	if e.ContentHash != "" && c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}

	b, err := json.MarshalIndent(e, "", "    ")
	if err != nil {
		Error(c, fmt.Errorf("encode extraction: %w", err))
		return
	}
	c.Header("Content-Disposition", "attachment; filename="+DownloadFileName)
	c.Data(http.StatusOK, "application/json", b)
}

func (s *Server) handleClearData(c *gin.Context) {
	s.record(c, tagscrape.ActionClear, nil)

	if err := s.Results.ClearExtractions(c.Request.Context()); err != nil {
		Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": tagscrape.StatusSuccess, "message": "data cleared"})
}

func (s *Server) handleLogs(c *gin.Context) {
	var filter tagscrape.LogFilter
	if v := c.Query("action"); v != "" {
		filter.Action = &v
	}

	var err error
	if filter.Limit, err = queryInt(c, "limit"); err != nil {
		Error(c, err)
		return
	}
	if filter.Offset, err = queryInt(c, "offset"); err != nil {
		Error(c, err)
		return
	}

	entries, err := s.Requests.FindRequests(c.Request.Context(), filter)
	if err != nil {
		Error(c, err)
		return
	}
	s.record(c, tagscrape.ActionListLogs, map[string]any{"count": len(entries)})

	c.JSON(http.StatusOK, gin.H{"status": tagscrape.StatusSuccess, "logs": entries})
}

// queryInt parses a non-negative integer query parameter. Missing values are zero.
func queryInt(c *gin.Context, name string) (int, error) {
	v := c.Query(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, tagscrape.Errorf(tagscrape.EINVALID, "invalid %s", name)
	}
	return n, nil
}
