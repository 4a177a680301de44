package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	defer viper.Reset()

	t.Run("Defaults", func(t *testing.T) {
		viper.Reset()
		chdir(t, t.TempDir())

		require.NoError(t, Load(""))

		assert.Equal(t, "walk", viper.GetString("mode"))
		assert.Equal(t, 100*time.Millisecond, viper.GetDuration("sensor.update_interval"))
		assert.Equal(t, time.Second, viper.GetDuration("location.time_interval"))
		assert.True(t, viper.GetBool("location.high_accuracy"))
		assert.Equal(t, "granted", viper.GetString("location.permission"))
		assert.Equal(t, 2112, viper.GetInt("metrics_port"))
	})

	t.Run("Load From Env", func(t *testing.T) {
		viper.Reset()
		chdir(t, t.TempDir())
		t.Setenv("STRIDE_MODE", "cycle")
		t.Setenv("STRIDE_REPLAY_SPEED", "4")

		require.NoError(t, Load(""))
		assert.Equal(t, "cycle", viper.GetString("mode"))
		assert.Equal(t, 4.0, viper.GetFloat64("replay.speed"))
	})

	t.Run("Load From File", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		path := filepath.Join(dir, "stride.yaml")
		content := "mode: run\ngoal: 12\nsensor:\n  update_interval: 50ms\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

		require.NoError(t, Load(path))
		assert.Equal(t, "run", viper.GetString("mode"))
		assert.Equal(t, 12.0, viper.GetFloat64("goal"))
		assert.Equal(t, 50*time.Millisecond, viper.GetDuration("sensor.update_interval"))
	})

	t.Run("Malformed File", func(t *testing.T) {
		viper.Reset()
		dir := t.TempDir()
		path := filepath.Join(dir, "broken.yaml")
		require.NoError(t, os.WriteFile(path, []byte("mode: [walk\n"), 0o644))

		assert.Error(t, Load(path))
	})
}

func TestCurrent(t *testing.T) {
	defer viper.Reset()
	viper.Reset()
	SetDefaults()
	viper.Set("mode", "cycle")
	viper.Set("location.time_interval", "2s")
	viper.Set("notifications.discord.webhook_url", "https://example.invalid/hook")

	s, err := Current()
	require.NoError(t, err)

	assert.Equal(t, "cycle", s.Mode)
	assert.Equal(t, 2*time.Second, s.Location.TimeInterval)
	assert.Equal(t, 100*time.Millisecond, s.Sensor.UpdateInterval)
	assert.Equal(t, 1.0, s.Replay.Speed)
	assert.True(t, s.Notifications.Events.OnGoalReached)
	assert.Equal(t, "https://example.invalid/hook", s.Notifications.Discord.WebhookURL)
}

// chdir changes the working directory for the duration of the test,
// mirroring testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
