package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcher_ReportsConfigWrites(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	// Non-config files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	path := filepath.Join(dir, RosterFile)
	require.NoError(t, os.WriteFile(path, []byte("characters: []\n"), 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, path, name)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for roster write")
	}
}

func TestWatcher_BurstReportsFinalWriteOnce(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	path := filepath.Join(dir, RosterFile)
	final := []byte("characters:\n  - name: player\n")

	// Editors often truncate, then write the full file
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	time.Sleep(watchDebounce / 5)
	require.NoError(t, os.WriteFile(path, final, 0o644))

	select {
	case name := <-w.Events:
		assert.Equal(t, path, name)
		data, err := os.ReadFile(name)
		require.NoError(t, err)
		assert.Equal(t, final, data, "event is reported after the burst settles")
	case <-time.After(2 * time.Second):
		t.Fatal("no event for roster write")
	}

	select {
	case name := <-w.Events:
		t.Fatalf("burst reported twice: %s", name)
	case <-time.After(3 * watchDebounce):
	}
}

func TestWatcher_MissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatcher_CloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())

	_, open := <-w.Events
	assert.False(t, open)
}

func TestIsConfigFile(t *testing.T) {
	assert.True(t, isConfigFile("characters.yaml"))
	assert.True(t, isConfigFile("a/b/STAGE.JSON"))
	assert.True(t, isConfigFile("x.yml"))
	assert.False(t, isConfigFile("main.go"))
}
