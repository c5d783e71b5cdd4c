// internal/config/settings_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"seed": 42,
		"logLevel": "debug",
		"results": { "path": "" },
		"loop": { "maxLoops": 8 }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(cfg), 0644))

	require.NoError(t, Load(dir))

	assert.Equal(t, int64(42), GetInt64("seed"))
	assert.Equal(t, "debug", GetString("logLevel"))
	assert.Equal(t, "", GetString("results.path"))
	assert.Equal(t, 8, GetInt("loop.maxLoops"))
	assert.Equal(t, 50, GetInt("loop.maxConditionLoops"))
}

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	require.NoError(t, Load(t.TempDir()))

	assert.Equal(t, int64(0), GetInt64("seed"))
	assert.Equal(t, "info", GetString("logLevel"))
	assert.Equal(t, "./logs", GetString("logsDir"))
	assert.True(t, GetBool("logConsole"))
	assert.Equal(t, "flights.db", GetString("results.path"))
	assert.Equal(t, "", GetString("plot.output"))
	assert.Equal(t, 1, GetInt("window.scale"))
	assert.Equal(t, 16, GetInt("loop.maxLoops"))
	assert.InDelta(t, 0.5, GetFloat64("loop.throwDelay"), 1e-9)
	assert.InDelta(t, 2.0, GetFloat64("loop.resultDelay"), 1e-9)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(`{"seed":`), 0644))

	err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestValidate_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	assert.NoError(t, Validate())
}

func TestValidate_CollectsEveryProblem(t *testing.T) {
	t.Cleanup(viper.Reset)
	require.NoError(t, Load(t.TempDir()))

	viper.Set("logLevel", "loud")
	viper.Set("window.scale", 9)
	viper.Set("loop.maxLoops", 0)
	viper.Set("loop.throwDelay", -1)

	err := Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logLevel")
	assert.Contains(t, err.Error(), "window.scale")
	assert.Contains(t, err.Error(), "loop.maxLoops")
	assert.Contains(t, err.Error(), "loop.throwDelay")
	assert.Contains(t, err.Error(), "4 errors occurred")
}
