package tagscrape

import "strings"

// LinksKey is the reserved Data key holding extracted hyperlinks.
// It is written after element extraction, so it wins over an element
// requested under the same name.
const LinksKey = "links"

// DefaultElements is the element list used when a request names none.
var DefaultElements = []string{"h2"}

// Data maps a tag name to the trimmed text of every matching element,
// in document order.
type Data map[string][]string

// ExtractRequest describes what to pull out of an HTML document.
type ExtractRequest struct {
	Elements     []string
	ExtractLinks bool

	// BaseURL resolves relative link targets.
	BaseURL string
}

// Extractor pulls tag text and links out of HTML.
type Extractor interface {
	// Extract parses html leniently and returns the text of every element
	// named in req.Elements. A name without matches maps to an empty slice.
	Extract(html string, req ExtractRequest) (Data, error)
}

// IsHTML reports whether content looks like an HTML document.
// Only content starting with a <!doctype html> declaration qualifies,
// ignoring surrounding whitespace and case.
func IsHTML(content string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(content)), "<!doctype html>")
}
