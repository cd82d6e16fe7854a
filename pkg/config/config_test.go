package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

const minimalConfig = `
telegram:
  bot_token: "123:abc"
openrouter:
  api_key: "sk-test"
`

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Queue.Backend)
	assert.Equal(t, 3, cfg.Queue.Workers)
	assert.Equal(t, 256, cfg.Queue.Size)
	assert.Equal(t, "3mo", cfg.MarketData.Range)
	assert.Equal(t, "1d", cfg.MarketData.Interval)
	assert.Equal(t, "google/gemma-3n-e2b-it:free", cfg.OpenRouter.Model)
	assert.Equal(t, 30*time.Second, cfg.OpenRouter.Timeout)
}

func TestLoadMissingBotToken(t *testing.T) {
	_, err := Load(writeConfig(t, `
openrouter:
  api_key: "sk-test"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot_token")
}

func TestLoadMissingAPIKey(t *testing.T) {
	_, err := Load(writeConfig(t, `
telegram:
  bot_token: "123:abc"
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "api_key")
}

func TestLoadInvalidBackend(t *testing.T) {
	_, err := Load(writeConfig(t, minimalConfig+`
queue:
  backend: rabbitmq
`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "queue.backend")
}

func TestLoadRedisBackendNeedsAddr(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig+`
queue:
  backend: redis
  redis:
    addr: localhost:6379
`))
	require.NoError(t, err)
	assert.Equal(t, "redis", cfg.Queue.Backend)
}

func TestLoadWithEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "env-token")
	t.Setenv("OPENROUTER_API_KEY", "env-key")
	t.Setenv("PORT", "9090")
	t.Setenv("QUEUE_WORKERS", "8")

	cfg, err := LoadWithEnv(writeConfig(t, `{}`))
	require.NoError(t, err)

	assert.Equal(t, "env-token", cfg.Telegram.BotToken)
	assert.Equal(t, "env-key", cfg.OpenRouter.APIKey)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 8, cfg.Queue.Workers)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
