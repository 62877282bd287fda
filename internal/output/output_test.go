package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteIfChangedSkipsIdenticalContent(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir, true)

	require.NoError(t, sink.WriteIfChanged("a.ts", []byte("hello")))
	info1, err := os.Stat(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)

	require.NoError(t, sink.WriteIfChanged("a.ts", []byte("hello")))
	info2, err := os.Stat(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)

	assert.Equal(t, info1.ModTime(), info2.ModTime())
}

func TestWriteIfChangedRewritesOnDiff(t *testing.T) {
	dir := t.TempDir()
	sink := NewSink(dir, true)

	require.NoError(t, sink.WriteIfChanged("a.ts", []byte("hello")))
	require.NoError(t, sink.WriteIfChanged("a.ts", []byte("world")))

	content, err := os.ReadFile(filepath.Join(dir, "a.ts"))
	require.NoError(t, err)
	assert.Equal(t, "world", string(content))
}

func TestReconcileOrphansQuietModeRenames(t *testing.T) {
	dir := t.TempDir()
	orphanPath := filepath.Join(dir, "stale.ts")
	require.NoError(t, os.WriteFile(orphanPath, []byte("stale"), 0o644))

	before, err := Snapshot(dir, ".ts")
	require.NoError(t, err)

	sink := NewSink(dir, true)
	require.NoError(t, sink.WriteIfChanged("fresh.ts", []byte("fresh")))

	require.NoError(t, sink.ReconcileOrphans(before))

	_, err = os.Stat(orphanPath)
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(orphanPath + ".unused")
	assert.NoError(t, err)
}
