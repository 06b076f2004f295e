package platform

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDirOverride(t *testing.T) {
	dir, err := ConfigDir("YourTimer", "/srv/yourtimer")
	require.NoError(t, err)
	assert.Equal(t, "/srv/yourtimer", dir)
}

func TestConfigDirDefault(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/home/tester/.config")
	t.Setenv("HOME", "/home/tester")
	t.Setenv("AppData", "/home/tester/AppData/Roaming")

	dir, err := ConfigDir("YourTimer", "")
	require.NoError(t, err)
	assert.Equal(t, "YourTimer", filepath.Base(dir))
}

func TestFallbackConfigDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/u", ".config"), fallbackConfigDir("linux", "/home/u"))
	assert.Equal(t, filepath.Join("/Users/u", "Library", "Application Support"), fallbackConfigDir("darwin", "/Users/u"))
	assert.Equal(t, filepath.Join("C:/Users/u", "AppData", "Roaming"), fallbackConfigDir("windows", "C:/Users/u"))
}

func TestPortFromNameIsStable(t *testing.T) {
	port := portFromName("YourTimer")
	assert.Equal(t, port, portFromName("YourTimer"))
	assert.GreaterOrEqual(t, port, 20000)
	assert.LessOrEqual(t, port, 39999)
}

func TestSecondAcquireActivatesFirst(t *testing.T) {
	first, err := acquireAt("127.0.0.1:0")
	require.NoError(t, err)
	defer first.Release()

	activated := make(chan struct{}, 1)
	first.OnActivate(func() { activated <- struct{}{} })

	second, err := acquireAt(first.Address())
	assert.ErrorIs(t, err, ErrAlreadyRunning)
	assert.Nil(t, second)

	select {
	case <-activated:
	case <-time.After(2 * time.Second):
		t.Fatal("running instance was not activated")
	}
}

func TestReleaseFreesAddress(t *testing.T) {
	first, err := acquireAt("127.0.0.1:0")
	require.NoError(t, err)
	address := first.Address()

	require.NoError(t, first.Release())
	require.NoError(t, first.Release())

	again, err := acquireAt(address)
	require.NoError(t, err)
	assert.NoError(t, again.Release())
}
