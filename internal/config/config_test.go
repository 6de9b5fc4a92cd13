package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMustLoad(t *testing.T) {
	content := `
env: "local"
record_store:
  base_url: "http://localhost:8082/api"
  timeout: 5s
store_server:
  addresshttp: "localhost:8082"
  timeouthttp: 4s
  idle_timeout: 60s
  seed_path: "./seed.json"
session:
  state_path: "./session.json"
session_token:
  secret_key: "test-secret-key"
  token_ttl: 24h
external_api:
  suggestions_url: "https://randomuser.me/api/"
  timeout: 10s
`
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("CONFIG_PATH", path)

	cfg := MustLoad()
	require.NotNil(t, cfg)

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "http://localhost:8082/api", cfg.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.TimeoutStore)
	assert.Equal(t, "localhost:8082", cfg.AddressHTTP)
	assert.Equal(t, 4*time.Second, cfg.TimeoutHTTP)
	assert.Equal(t, time.Minute, cfg.IdleTimeout)
	assert.Equal(t, "./seed.json", cfg.SeedPath)
	assert.Equal(t, "./session.json", cfg.StatePath)
	assert.Equal(t, "test-secret-key", cfg.SecretKey)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, "https://randomuser.me/api/", cfg.SuggestionsURL)
	assert.Equal(t, 10*time.Second, cfg.TimeoutExternal)
	assert.NotEmpty(t, cfg.String())
}
