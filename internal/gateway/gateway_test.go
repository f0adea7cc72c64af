package gateway

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrapSendError(t *testing.T) {
	cause := errors.New("boom")

	t.Run("Rate limited", func(t *testing.T) {
		err := wrapSendError("op", cause, true)
		var rateErr *RateLimitError
		require.True(t, errors.As(err, &rateErr))
		assert.ErrorIs(t, err, cause)
	})

	t.Run("Timeout", func(t *testing.T) {
		err := wrapSendError("op", context.DeadlineExceeded, false)
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.True(t, transportErr.Timeout)
		assert.Contains(t, err.Error(), "timed out")
	})

	t.Run("Plain transport failure", func(t *testing.T) {
		err := wrapSendError("op", cause, false)
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.False(t, transportErr.Timeout)
		assert.Equal(t, "op", transportErr.Op)
	})
}

func TestFileCredential(t *testing.T) {
	dir := t.TempDir()

	t.Run("Reads trimmed key", func(t *testing.T) {
		path := filepath.Join(dir, "key.txt")
		require.NoError(t, os.WriteFile(path, []byte("  sk-test-123 \n"), 0o600))

		key, err := FileCredential{Path: path}.APIKey()
		require.NoError(t, err)
		assert.Equal(t, "sk-test-123", key)
	})

	t.Run("Empty file", func(t *testing.T) {
		path := filepath.Join(dir, "empty.txt")
		require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

		_, err := FileCredential{Path: path}.APIKey()
		assert.ErrorContains(t, err, "empty")
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := FileCredential{Path: filepath.Join(dir, "missing")}.APIKey()
		assert.ErrorContains(t, err, "not readable")
	})
}

func TestEnvCredential(t *testing.T) {
	t.Run("First non-empty variable wins", func(t *testing.T) {
		t.Setenv("GLACIER_TEST_KEY_A", "")
		t.Setenv("GLACIER_TEST_KEY_B", "sk-from-env")

		key, err := EnvCredential{Vars: []string{"GLACIER_TEST_KEY_A", "GLACIER_TEST_KEY_B"}}.APIKey()
		require.NoError(t, err)
		assert.Equal(t, "sk-from-env", key)
	})

	t.Run("Nothing set", func(t *testing.T) {
		t.Setenv("GLACIER_TEST_KEY_A", "")

		_, err := EnvCredential{Vars: []string{"GLACIER_TEST_KEY_A"}}.APIKey()
		assert.ErrorContains(t, err, "GLACIER_TEST_KEY_A")
	})
}

func TestResolveCredential(t *testing.T) {
	assert.IsType(t, FileCredential{}, ResolveCredential("key.txt", "VAR"))
	assert.IsType(t, EnvCredential{}, ResolveCredential("", "VAR"))
}

func TestStaticCredential(t *testing.T) {
	key, err := StaticCredential("abc").APIKey()
	require.NoError(t, err)
	assert.Equal(t, "abc", key)

	_, err = StaticCredential("").APIKey()
	assert.Error(t, err)
}
