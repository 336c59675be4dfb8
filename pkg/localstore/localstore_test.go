package localstore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	f := Open(path)
	require.NoError(t, f.Set("token", "abc123"))
	require.NoError(t, f.Set("lang", "ar"))

	// A fresh open sees everything written before.
	g := Open(path)
	v, ok := g.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)
	v, ok = g.Get("lang")
	assert.True(t, ok)
	assert.Equal(t, "ar", v)
}

func TestFileDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	f := Open(path)
	require.NoError(t, f.Set("token", "abc123"))
	require.NoError(t, f.Delete("token"))

	_, ok := f.Get("token")
	assert.False(t, ok)
	_, ok = Open(path).Get("token")
	assert.False(t, ok)
}

func TestFileCorruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	f := Open(path)
	_, ok := f.Get("anything")
	assert.False(t, ok)

	// The store stays usable after the bad file.
	require.NoError(t, f.Set("k", "v"))
	v, ok := Open(path).Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestFileMissingDirCreated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "store.json")
	f := Open(path)
	require.NoError(t, f.Set("k", "v"))

	v, ok := Open(path).Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	_, ok := m.Get("k")
	assert.False(t, ok)

	require.NoError(t, m.Set("k", "v"))
	v, ok := m.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, m.Delete("k"))
	_, ok = m.Get("k")
	assert.False(t, ok)
}
