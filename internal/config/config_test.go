package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PATHSEARCH_CONFIG", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 30, cfg.HTTP.RateLimitPerMinute)
	assert.Equal(t, 20, cfg.Search.MaxNodes)
	assert.Equal(t, 50, cfg.Search.MaxEdges)
	assert.Equal(t, "bfs", cfg.Search.DefaultAlgorithm)
	assert.Equal(t, "random", cfg.Search.HeuristicProvider)
	assert.Equal(t, "stdio", cfg.MCP.Transport)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pathsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9999"
  read_timeout: 3s
  allowed_origins: ["https://a.example"]
search:
  max_nodes: 10
  heuristic_provider: distance
logging:
  level: debug
  format: json
metrics:
  enabled: true
`), 0o600))

	t.Setenv("PATHSEARCH_MAX_NODES", "12")
	t.Setenv("PATHSEARCH_ALLOWED_ORIGINS", "https://b.example, https://c.example")
	t.Setenv("PATHSEARCH_HEURISTIC_SEED", "7")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.HTTP.Addr)
	assert.Equal(t, 3*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.HTTP.AllowedOrigins)
	assert.Equal(t, 12, cfg.Search.MaxNodes)
	assert.Equal(t, 50, cfg.Search.MaxEdges)
	assert.Equal(t, "distance", cfg.Search.HeuristicProvider)
	assert.Equal(t, uint64(7), cfg.Search.HeuristicSeed)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
	t.Run("bad duration", func(t *testing.T) {
		t.Setenv("PATHSEARCH_READ_TIMEOUT", "soon")
		_, err := Load("")
		assert.ErrorContains(t, err, "PATHSEARCH_READ_TIMEOUT")
	})
	t.Run("bad transport", func(t *testing.T) {
		t.Setenv("PATHSEARCH_MCP_TRANSPORT", "carrier-pigeon")
		_, err := Load("")
		assert.Error(t, err)
	})
	t.Run("bad seed", func(t *testing.T) {
		t.Setenv("PATHSEARCH_HEURISTIC_SEED", "-1")
		_, err := Load("")
		assert.Error(t, err)
	})
}
