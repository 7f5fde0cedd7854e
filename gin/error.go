package gin

import (
	"net/http"

	"github.com/fwojciec/tagscrape"
	"github.com/gin-gonic/gin"
)

// codes maps application error codes to HTTP status codes.
var codes = map[string]int{
	tagscrape.EINVALID:      http.StatusBadRequest,
	tagscrape.EUNAUTHORIZED: http.StatusUnauthorized,
	tagscrape.ENOTFOUND:     http.StatusNotFound,
	tagscrape.ERATELIMIT:    http.StatusTooManyRequests,
	tagscrape.EINTERNAL:     http.StatusInternalServerError,
}

// ErrorStatusCode returns the HTTP status code for an application error code.
func ErrorStatusCode(code string) int {
	if v, ok := codes[code]; ok {
		return v
	}
	return http.StatusInternalServerError
}

// Error aborts the request with a JSON error body. Internal errors are
// attached to the context for the request logger and reported to the client
// as "internal error".
func Error(c *gin.Context, err error) {
	code := tagscrape.ErrorCode(err)
	if code == tagscrape.EINTERNAL {
		_ = c.Error(err)
	}
	c.AbortWithStatusJSON(ErrorStatusCode(code), tagscrape.Failure(tagscrape.ErrorMessage(err)))
}
