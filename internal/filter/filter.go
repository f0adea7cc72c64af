// Package filter reduces extracted candidates to the final result set. The
// filter is a pure function: identical inputs always yield identical output
// and nothing is mutated.
package filter

import (
	"net/url"
	"strings"
)

// Filter applies, in order and first-seen-wins:
//  1. normalization of each candidate (trailing-slash stripping),
//  2. dedup within the candidate sequence,
//  3. suppression of candidates already in the known set,
//  4. exclusion of candidates whose path equals or sits beneath a wordlist
//     entry (path-segment-wise, so "/static" excludes "/static/js/app.js"
//     but not "/staticfiles"),
//
// preserving the original relative order of survivors.
func Filter(candidates, known, exclusions []string) []string {
	knownSet := make(map[string]bool, len(known))
	for _, entry := range known {
		knownSet[Normalize(entry)] = true
	}

	prefixes := make([]string, 0, len(exclusions))
	for _, entry := range exclusions {
		if prefix := normalizeExclusion(entry); prefix != "" {
			prefixes = append(prefixes, prefix)
		}
	}

	seen := make(map[string]bool, len(candidates))
	var result []string
	for _, candidate := range candidates {
		normalized := Normalize(candidate)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true

		if knownSet[normalized] {
			continue
		}
		if excluded(pathOf(normalized), prefixes) {
			continue
		}
		result = append(result, normalized)
	}

	return result
}

// Normalize trims whitespace and strips the trailing slash so comparisons
// are exact-match safe. The bare root path stays "/". Case is preserved.
func Normalize(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	for len(s) > 1 && strings.HasSuffix(s, "/") {
		s = strings.TrimSuffix(s, "/")
	}
	return s
}

// pathOf reduces an absolute URL to its path component so exclusion entries
// match candidates regardless of how the model rendered them.
func pathOf(candidate string) string {
	if strings.HasPrefix(candidate, "/") {
		return candidate
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.Path == "" {
		return candidate
	}
	return Normalize(parsed.Path)
}

// normalizeExclusion anchors a wordlist entry at the path root.
func normalizeExclusion(entry string) string {
	entry = Normalize(entry)
	if entry == "" || entry == "/" {
		return entry
	}
	if !strings.HasPrefix(entry, "/") {
		entry = "/" + entry
	}
	return entry
}

// excluded reports whether path equals or is a path-segment descendant of
// any exclusion prefix.
func excluded(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if prefix == "/" {
			return true
		}
		if path == prefix || strings.HasPrefix(path, prefix+"/") {
			return true
		}
	}
	return false
}
