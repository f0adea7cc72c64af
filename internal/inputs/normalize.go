package inputs

import (
	"bufio"
	"os"
	"strings"
)

// commentMarker prefixes lines that are skipped during normalization.
const commentMarker = "#"

// NormalizeDescription collapses runs of whitespace in a free-text tech
// description. An empty description is valid and stays empty.
func NormalizeDescription(raw string) string {
	return strings.Join(strings.Fields(raw), " ")
}

// NormalizeLines trims each line, drops blanks and comment lines, and removes
// duplicates keeping the first occurrence. Case is preserved since target
// paths may be case-sensitive.
func NormalizeLines(lines []string) []string {
	seen := make(map[string]bool, len(lines))
	var out []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, commentMarker) {
			continue
		}
		if seen[line] {
			continue
		}
		seen[line] = true
		out = append(out, line)
	}

	return out
}

// ReadLines reads a file into its raw lines. An unreadable path yields an
// *InvalidInputError naming the source; normalization is left to the caller.
func ReadLines(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, &InvalidInputError{Source: path, Cause: err}
	}
	defer func() { _ = file.Close() }()

	var lines []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &InvalidInputError{Source: path, Cause: err}
	}

	return lines, nil
}

// ReadLineSet is a convenience wrapper combining ReadLines and NormalizeLines.
func ReadLineSet(path string) ([]string, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return NormalizeLines(lines), nil
}
