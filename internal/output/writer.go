// Package output writes the final result set: one URL per line, UTF-8,
// newline-terminated, no header or trailing metadata, so the artifact stays
// pipeable into further tooling.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Write emits the result lines to w.
func Write(w io.Writer, urls []string) error {
	buffered := bufio.NewWriter(w)
	for _, u := range urls {
		if _, err := fmt.Fprintln(buffered, u); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return buffered.Flush()
}

// ResultPath resolves the user-facing destination. Stdout markers pass
// through untouched; a directory destination gets a per-run file name inside
// it so repeated runs never clobber each other.
func ResultPath(path string, runID uuid.UUID) string {
	if path == "" || path == "-" {
		return path
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return filepath.Join(path, fmt.Sprintf("urls_%s.txt", runID))
	}
	return path
}

// WriteFile writes the result lines to path, or to stdout when path is
// empty or "-".
func WriteFile(path string, urls []string) error {
	if path == "" || path == "-" {
		return Write(os.Stdout, urls)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %s: %w", path, err)
	}
	defer func() { _ = file.Close() }()

	if err := Write(file, urls); err != nil {
		return err
	}
	return file.Close()
}
