// Package goquery implements tagscrape.Extractor on top of goquery.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tagscrape"
	"golang.org/x/net/html"
)

// Ensure Extractor implements tagscrape.Extractor at compile time.
var _ tagscrape.Extractor = (*Extractor)(nil)

// Extractor collects element text and links from HTML documents.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses html with the HTML5 parsing algorithm, which repairs
// malformed markup instead of failing, and collects the trimmed text of every
// element named in req.Elements.
//
// Element names match case-insensitively and are never interpreted as CSS
// selectors. When req.ExtractLinks is set, the href of every anchor is
// resolved against req.BaseURL and stored under tagscrape.LinksKey,
// replacing any element results under that key.
func (e *Extractor) Extract(content string, req tagscrape.ExtractRequest) (tagscrape.Data, error) {
	root, err := html.Parse(strings.NewReader(content))
	if err != nil {
		return nil, tagscrape.Errorf(tagscrape.EINVALID, "failed to parse HTML: %v", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	data := make(tagscrape.Data, len(req.Elements)+1)
	all := doc.Find("*")
	for _, name := range req.Elements {
		data[name] = elementTexts(all, name)
	}

	if req.ExtractLinks {
		links, err := extractLinks(doc, req.BaseURL)
		if err != nil {
			return nil, err
		}
		data[tagscrape.LinksKey] = links
	}

	return data, nil
}

// elementTexts returns the trimmed text of every element in all named name.
// The result is never nil.
func elementTexts(all *goquery.Selection, name string) []string {
	want := strings.ToLower(name)
	texts := []string{}
	all.Each(func(_ int, sel *goquery.Selection) {
		if goquery.NodeName(sel) == want {
			texts = append(texts, strings.TrimSpace(sel.Text()))
		}
	})
	return texts
}

// extractLinks returns the resolved href of every anchor in document order,
// duplicates included.
func extractLinks(doc *goquery.Document, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, tagscrape.Errorf(tagscrape.EINVALID, "invalid base URL: %v", err)
	}

	links := []string{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		links = append(links, resolveURL(base, href))
	})
	return links, nil
}

// resolveURL joins href onto base. Absolute hrefs and hrefs that do not
// parse are returned as written.
func resolveURL(base *url.URL, href string) string {
	href = strings.TrimSpace(href)
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	return base.ResolveReference(ref).String()
}
