package mock

import "github.com/fwojciec/tagscrape"

var _ tagscrape.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of tagscrape.Extractor.
type Extractor struct {
	ExtractFn func(html string, req tagscrape.ExtractRequest) (tagscrape.Data, error)
}

func (e *Extractor) Extract(html string, req tagscrape.ExtractRequest) (tagscrape.Data, error) {
	return e.ExtractFn(html, req)
}
