package tech

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	catalog, err := NewCatalog()
	require.NoError(t, err)
	return catalog
}

func TestCatalogNames(t *testing.T) {
	catalog := newTestCatalog(t)
	assert.NotEmpty(t, catalog.Names())
	assert.IsNonDecreasing(t, catalog.Names())
}

func TestCanonicalize(t *testing.T) {
	catalog := newTestCatalog(t)

	tests := []struct {
		name        string
		description string
		contains    []string
	}{
		{"Single name", "a WordPress blog", []string{"WordPress"}},
		{"Case-insensitive", "php behind nginx", []string{"PHP", "Nginx"}},
		{"Comma separated", "Django,React", []string{"Django", "React"}},
		{"Unknown tokens ignored", "some homegrown framework", nil},
		{"Empty description", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			matched := catalog.Canonicalize(tt.description)
			if tt.contains == nil {
				assert.Empty(t, matched)
				return
			}
			for _, name := range tt.contains {
				assert.Contains(t, matched, name)
			}
		})
	}
}

func TestCanonicalizeDeduplicates(t *testing.T) {
	catalog := newTestCatalog(t)
	matched := catalog.Canonicalize("WordPress wordpress WORDPRESS")
	assert.Equal(t, []string{"WordPress"}, matched)
}

func TestFingerprintResponse(t *testing.T) {
	catalog := newTestCatalog(t)

	headers := http.Header{}
	headers.Set("X-Powered-By", "PHP/8.2.1")
	headers.Set("Server", "nginx/1.24.0")

	names := catalog.FingerprintResponse(headers, []byte("<html><body>hi</body></html>"))
	assert.Contains(t, names, "PHP")
	assert.Contains(t, names, "Nginx")
}
