package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, ":4547", cfg.Server.Addr)
	assert.Equal(t, "sample", cfg.Schema.Source)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9999"
schema:
  source: json
  path: schema.json
log:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, "json", cfg.Schema.Source)
	assert.Equal(t, "schema.json", cfg.Schema.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: warn\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, ":4547", cfg.Server.Addr)
	assert.Equal(t, "sample", cfg.Schema.Source)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadConfig_MissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestConfig_SchemaCatalog(t *testing.T) {
	var cfg Config
	schema, err := cfg.SchemaCatalog()
	require.NoError(t, err)
	_, err = schema.FindTable("users")
	assert.NoError(t, err, "empty source falls back to the sample catalog")

	path := filepath.Join(t.TempDir(), "schema.json")
	body := `{"tables":[{"name":"t","columns":[{"name":"c","type":"INTEGER"}]}]}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg.Schema.Source = "json"
	cfg.Schema.Path = path
	schema, err = cfg.SchemaCatalog()
	require.NoError(t, err)
	_, err = schema.FindTable("t")
	assert.NoError(t, err)

	cfg.Schema.Source = "json"
	cfg.Schema.Path = ""
	_, err = cfg.SchemaCatalog()
	require.Error(t, err)

	cfg.Schema.Source = "postgres"
	_, err = cfg.SchemaCatalog()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema.source")
}

func TestConfig_LogLevel(t *testing.T) {
	cases := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tc := range cases {
		var cfg Config
		cfg.Log.Level = tc.in
		assert.Equal(t, tc.want, cfg.LogLevel(), "level: %q", tc.in)
	}
}
