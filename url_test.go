package tagscrape_test

import (
	"testing"

	"github.com/fwojciec/tagscrape"
	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	t.Parallel()

	valid := []string{
		"https://example.com",
		"http://www.example.com/path/to/page?q=1#frag",
		"example.com",
		"HTTPS://SUB.EXAMPLE.CO.UK/",
		"https://my-site.dev/a_b~c",
	}
	for _, u := range valid {
		assert.NoError(t, tagscrape.ValidateURL(u), u)
	}

	invalid := []string{
		"not a url",
		"ftp://example.com",
		"https://localhost",
		"https://127.0.0.1/",
		"https://example.com:8080/",
		"https://example.c",
		"https://example.com/path with space",
	}
	for _, u := range invalid {
		err := tagscrape.ValidateURL(u)
		assert.Equal(t, tagscrape.EINVALID, tagscrape.ErrorCode(err), u)
		assert.Equal(t, "invalid URL", tagscrape.ErrorMessage(err), u)
	}
}

func TestValidateURL_Empty(t *testing.T) {
	t.Parallel()

	err := tagscrape.ValidateURL("")

	assert.Equal(t, tagscrape.EINVALID, tagscrape.ErrorCode(err))
	assert.Equal(t, "URL not provided", tagscrape.ErrorMessage(err))
}

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://example.com", tagscrape.NormalizeURL("example.com"))
	assert.Equal(t, "http://example.com", tagscrape.NormalizeURL("http://example.com"))
	assert.Equal(t, "HTTPS://example.com", tagscrape.NormalizeURL("HTTPS://example.com"))
}
