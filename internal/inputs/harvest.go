package inputs

import (
	"io"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const harvestSelector = "a[href], link[href], script[src], img[src], form[action]"

// HarvestHTML extracts candidate known URLs from a locally saved HTML page.
// Only absolute paths and http(s) URLs are kept, deduplicated in document
// order. The page is never fetched; the caller supplies its bytes.
func HarvestHTML(r io.Reader) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, &InvalidInputError{Source: "html", Cause: err}
	}

	seen := make(map[string]bool)
	var urls []string

	doc.Find(harvestSelector).Each(func(_ int, s *goquery.Selection) {
		value := urlAttr(s)
		value = strings.TrimSpace(value)
		if !isHarvestable(value) || seen[value] {
			return
		}
		seen[value] = true
		urls = append(urls, value)
	})

	return urls, nil
}

// HarvestHTMLFile reads and harvests a saved HTML file.
func HarvestHTMLFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InvalidInputError{Source: path, Cause: err}
	}
	defer func() { _ = file.Close() }()

	return HarvestHTML(file)
}

// urlAttr returns the URL-bearing attribute of a harvested element.
func urlAttr(s *goquery.Selection) string {
	for _, attr := range []string{"href", "src", "action"} {
		if value, ok := s.Attr(attr); ok {
			return value
		}
	}
	return ""
}

// isHarvestable accepts absolute paths and parseable http(s) URLs, rejecting
// fragments, mailto/javascript pseudo-links, and relative references.
func isHarvestable(value string) bool {
	if value == "" || strings.HasPrefix(value, "#") {
		return false
	}
	if strings.HasPrefix(value, "/") {
		return !strings.HasPrefix(value, "//")
	}

	parsed, err := url.Parse(value)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
