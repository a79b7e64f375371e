package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "alarms.json", filepath.Base(cfg.AlarmsFile))
	assert.Equal(t, time.Second, cfg.TickInterval())
	assert.False(t, cfg.HonorRepeatDays)
	assert.True(t, cfg.AudioEnabled)
	assert.True(t, cfg.SnoozeHotkey)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deskclock.yaml")
	content := "alarms_file: " + filepath.Join(dir, "mine.json") + "\n" +
		"tick_interval_ms: 500\n" +
		"honor_repeat_days: true\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "mine.json"), cfg.AlarmsFile)
	assert.Equal(t, 500*time.Millisecond, cfg.TickInterval())
	assert.True(t, cfg.HonorRepeatDays)
}

func TestLoadEnvOverride(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("DESKCLOCK_AUDIO_ENABLED", "false")
	t.Setenv("DESKCLOCK_TICK_INTERVAL_MS", "10")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.AudioEnabled)
	// Too-fast ticks fall back to the default
	assert.Equal(t, time.Second, cfg.TickInterval())
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("alarms_file: [unterminated"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

// chdir switches the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
