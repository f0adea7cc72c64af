// Package extract turns a model's free-text reply into an ordered candidate
// URL sequence. The heuristic is pluggable: line-based extraction is the
// default, with markdown-AST and strict-JSON strategies available.
package extract

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// EmptyResponseError means a reply yielded zero parseable candidates. It
// signals a prompt or model problem rather than a transient fault, so it is
// surfaced instead of retried.
type EmptyResponseError struct {
	Strategy string
}

func (e *EmptyResponseError) Error() string {
	return fmt.Sprintf("model reply contained no parseable candidate URLs (%s strategy)", e.Strategy)
}

// Strategy extracts candidate URLs from raw reply text, in reply order.
type Strategy interface {
	Name() string
	Extract(reply string) ([]string, error)
}

// ForName resolves a strategy by its CLI name.
func ForName(name string) (Strategy, error) {
	switch name {
	case "lines", "":
		return LineStrategy{}, nil
	case "markdown":
		return MarkdownStrategy{}, nil
	case "json":
		return JSONStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown extraction strategy %q (want lines, markdown, or json)", name)
	}
}

// listMarker strips bullets, numbering, and similar prefixes the model wraps
// around its suggestions.
var listMarker = regexp.MustCompile(`^\s*(?:[-*+•>]|\d+[.)])\s*`)

// LineStrategy treats the reply as one candidate per line, tolerating list
// markers and surrounding prose. Lines that do not look like a URL or an
// absolute path are expected noise and dropped silently.
type LineStrategy struct{}

// Name implements Strategy.
func (LineStrategy) Name() string { return "lines" }

// Extract implements Strategy.
func (LineStrategy) Extract(reply string) ([]string, error) {
	var candidates []string
	for _, line := range strings.Split(reply, "\n") {
		if candidate, ok := candidateFromLine(line); ok {
			candidates = append(candidates, candidate)
		}
	}

	if len(candidates) == 0 {
		return nil, &EmptyResponseError{Strategy: "lines"}
	}
	return candidates, nil
}

// candidateFromLine strips decoration from one line and reports whether the
// remainder is a usable candidate.
func candidateFromLine(line string) (string, bool) {
	line = strings.TrimSpace(line)
	line = listMarker.ReplaceAllString(line, "")
	line = strings.Trim(line, "`'\"")
	line = strings.TrimSpace(line)

	// Keep only the leading token; trailing prose disqualifies nothing as
	// long as the line starts with the candidate itself.
	if idx := strings.IndexAny(line, " \t"); idx >= 0 {
		line = line[:idx]
	}

	if !IsCandidate(line) {
		return "", false
	}
	return line, true
}

// IsCandidate reports whether a token is an absolute path or an http(s) URL.
func IsCandidate(token string) bool {
	if token == "" {
		return false
	}
	if strings.HasPrefix(token, "/") {
		return !strings.HasPrefix(token, "//")
	}

	parsed, err := url.Parse(token)
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
