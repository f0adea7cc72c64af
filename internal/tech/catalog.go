// Package tech canonicalizes technology names against the Wappalyzer
// fingerprint catalog and fingerprints locally saved responses. Nothing in
// this package touches the network; the tool proposes URLs, it never probes.
package tech

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	wappalyzergo "github.com/projectdiscovery/wappalyzergo"
)

// Catalog is an offline index of known technology names.
type Catalog struct {
	wappalyzer *wappalyzergo.Wappalyze
	byToken    map[string]string
	names      []string
}

// NewCatalog builds the catalog from the embedded Wappalyzer fingerprints.
func NewCatalog() (*Catalog, error) {
	wappalyzer, err := wappalyzergo.New()
	if err != nil {
		return nil, fmt.Errorf("failed to load wappalyzer fingerprints: %w", err)
	}

	fingerprints := wappalyzer.GetFingerprints()
	byToken := make(map[string]string, len(fingerprints.Apps))
	names := make([]string, 0, len(fingerprints.Apps))
	for name := range fingerprints.Apps {
		byToken[strings.ToLower(name)] = name
		names = append(names, name)
	}
	sort.Strings(names)

	return &Catalog{wappalyzer: wappalyzer, byToken: byToken, names: names}, nil
}

// Names returns all catalog technology names, sorted.
func (c *Catalog) Names() []string {
	return c.names
}

// Lookup resolves a single token to its canonical catalog name.
func (c *Catalog) Lookup(token string) (string, bool) {
	name, ok := c.byToken[strings.ToLower(strings.TrimSpace(token))]
	return name, ok
}

// Canonicalize matches tokens of a free-text tech description against the
// catalog and returns the canonical names, sorted and deduplicated. Tokens
// with no catalog entry are ignored; the description itself is not changed.
func (c *Catalog) Canonicalize(description string) []string {
	tokens := splitDescription(description)

	seen := make(map[string]bool)
	var matched []string
	for i, token := range tokens {
		candidates := []string{token}
		// Multi-word names like "Ruby on Rails" span adjacent tokens.
		if i+1 < len(tokens) {
			candidates = append(candidates, token+" "+tokens[i+1])
		}
		if i+2 < len(tokens) {
			candidates = append(candidates, token+" "+tokens[i+1]+" "+tokens[i+2])
		}
		for _, candidate := range candidates {
			if name, ok := c.Lookup(candidate); ok && !seen[name] {
				seen[name] = true
				matched = append(matched, name)
			}
		}
	}

	sort.Strings(matched)
	return matched
}

// FingerprintResponse runs Wappalyzer over a saved response's headers and
// body and returns the detected technology names, sorted.
func (c *Catalog) FingerprintResponse(headers http.Header, body []byte) []string {
	fingerprints := c.wappalyzer.Fingerprint(headers, body)

	names := make([]string, 0, len(fingerprints))
	for name := range fingerprints {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// splitDescription tokenizes a description on separators that never occur
// inside catalog names.
func splitDescription(description string) []string {
	return strings.FieldsFunc(description, func(r rune) bool {
		switch r {
		case ' ', '\t', '\n', ',', ';', '(', ')', '/':
			return true
		}
		return false
	})
}
