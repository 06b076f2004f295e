package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory(t *testing.T) {
	store := NewMemory()

	_, ok := store.Get("theme")
	assert.False(t, ok)

	require.NoError(t, store.Set("theme", "dark"))
	value, ok := store.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}

func TestOpenYAMLMissingFile(t *testing.T) {
	store, err := OpenYAML(filepath.Join(t.TempDir(), "absent", SettingsFileName))
	require.NoError(t, err)

	_, ok := store.Get("clock.zone")
	assert.False(t, ok)
}

func TestYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "YourTimer", SettingsFileName)

	store, err := OpenYAML(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("pomodoro.work_minutes", "50"))
	require.NoError(t, store.Set("clock.zone", "Europe/Paris"))

	reopened, err := OpenYAML(path)
	require.NoError(t, err)
	value, ok := reopened.Get("pomodoro.work_minutes")
	assert.True(t, ok)
	assert.Equal(t, "50", value)
	value, _ = reopened.Get("clock.zone")
	assert.Equal(t, "Europe/Paris", value)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestOpenYAMLCorruptFileIsUsable(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated"), 0o644))

	store, err := OpenYAML(path)
	assert.Error(t, err)
	require.NotNil(t, store)

	require.NoError(t, store.Set("theme", "light"))
	value, _ := store.Get("theme")
	assert.Equal(t, "light", value)
}

func TestSetReportsWriteFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	store, _ := OpenYAML(filepath.Join(blocker, SettingsFileName))
	require.NotNil(t, store)

	assert.Error(t, store.Set("theme", "dark"))
	value, ok := store.Get("theme")
	assert.True(t, ok)
	assert.Equal(t, "dark", value)
}
