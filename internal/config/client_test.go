package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"todoapp/internal/config"
)

// unsetenv removes key for the duration of the test; cleanenv treats a
// present-but-empty variable as a value.
func unsetenv(t *testing.T, keys ...string) {
	for _, key := range keys {
		if prev, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, prev) })
		}
		os.Unsetenv(key)
	}
}

func TestLoadClientDefaults(t *testing.T) {
	unsetenv(t, "TODO_CONFIG", "TODO_API_URL", "TODO_TOKEN_FILE", "TODO_TIMEOUT")

	cfg, err := config.LoadClient()

	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8082/api", cfg.APIURL)
	assert.Equal(t, "auth_token", filepath.Base(cfg.TokenFile))
	assert.Equal(t, 10*time.Second, cfg.Timeout)
}

func TestLoadClientFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.yml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://tasks.local/api\ntoken_file: /tmp/tok\n"), 0o600))
	unsetenv(t, "TODO_API_URL", "TODO_TOKEN_FILE")
	t.Setenv("TODO_CONFIG", path)

	cfg, err := config.LoadClient()

	require.NoError(t, err)
	assert.Equal(t, "http://tasks.local/api", cfg.APIURL)
	assert.Equal(t, "/tmp/tok", cfg.TokenFile)
}

func TestLoadClientEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "todo.yml")
	require.NoError(t, os.WriteFile(path, []byte("api_url: http://tasks.local/api\n"), 0o600))
	t.Setenv("TODO_CONFIG", path)
	t.Setenv("TODO_API_URL", "http://override/api")

	cfg, err := config.LoadClient()

	require.NoError(t, err)
	assert.Equal(t, "http://override/api", cfg.APIURL)
}
