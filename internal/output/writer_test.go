package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []string{"/admin", "/api/v1/users"}))
	assert.Equal(t, "/admin\n/api/v1/users\n", buf.String())
}

func TestWriteEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, WriteFile(path, []string{"/a", "/b"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "/a\n/b\n", string(data))
}

func TestResultPath(t *testing.T) {
	runID := uuid.New()

	t.Run("Stdout markers pass through", func(t *testing.T) {
		assert.Equal(t, "", ResultPath("", runID))
		assert.Equal(t, "-", ResultPath("-", runID))
	})

	t.Run("Plain file path passes through", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "urls.txt")
		assert.Equal(t, path, ResultPath(path, runID))
	})

	t.Run("Directory gets a per-run file", func(t *testing.T) {
		dir := t.TempDir()
		expected := filepath.Join(dir, "urls_"+runID.String()+".txt")
		assert.Equal(t, expected, ResultPath(dir, runID))
	})
}

func TestWriteFileIntoDirectory(t *testing.T) {
	dir := t.TempDir()
	runID := uuid.New()

	dest := ResultPath(dir, runID)
	require.NoError(t, WriteFile(dest, []string{"/a", "/b"}))

	data, err := os.ReadFile(filepath.Join(dir, "urls_"+runID.String()+".txt"))
	require.NoError(t, err)
	assert.Equal(t, "/a\n/b\n", string(data))
}
