package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSpec(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "source.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSource(t *testing.T) {
	path := writeSpec(t, `
connection_url: mongodb://localhost:27017
database: shop
collection: orders
incremental:
  cursor_path: updated_at
`)

	spec, err := LoadSource(path)
	require.NoError(t, err)
	assert.Equal(t, "orders", spec.Collection)
	require.NotNil(t, spec.Incremental)
	assert.Equal(t, "updated_at", spec.Incremental.CursorPath)
}

func TestLoadSource_MissingFile(t *testing.T) {
	_, err := LoadSource(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadSource_InvalidSpec(t *testing.T) {
	path := writeSpec(t, "database: shop\n")

	_, err := LoadSource(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "collection is required")
}

func TestLoadSource_MalformedYAML(t *testing.T) {
	path := writeSpec(t, "collection: [unclosed\n")

	_, err := LoadSource(path)
	assert.Error(t, err)
}
