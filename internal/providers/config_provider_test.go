package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingerconf/internal/structures"
)

const sampleYAML = `
webServer:
  host: 127.0.0.1
  port: 9090
storage:
  filePath: /tmp/configs.json
logger:
  level: info
  mode: 0644
  dir: /tmp
auth:
  secret: a-very-long-test-secret
drafts:
  idleTTL: 10m
cache:
  enabled: true
  size: 2
  ttl: 30s
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfigProvider_LoadsYAML(t *testing.T) {
	path := writeConfig(t, sampleYAML)

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "PingerConfig", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, 9090, conf.WebServer.Port)
	assert.Equal(t, "file", conf.Storage.Driver)
	assert.Equal(t, "session", conf.Auth.CookieName)
	assert.Equal(t, 10*time.Minute, conf.Drafts.IdleTTL)
	assert.Equal(t, 30*time.Second, conf.Cache.TTL)
	assert.True(t, conf.Cache.Enabled)
}

func TestNewConfigProvider_EnvOverrides(t *testing.T) {
	path := writeConfig(t, sampleYAML)
	t.Setenv("SITE_PASSWORD", "hunter2")
	t.Setenv("PINGERCONF_LOG_LEVEL", "debug")

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	require.NoError(t, err)

	assert.Equal(t, "hunter2", conf.Gate.Password)
	assert.Equal(t, "debug", conf.Logger.Level)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
}

func TestNewConfigProvider_InvalidConfig(t *testing.T) {
	path := writeConfig(t, "webServer:\n  host: 127.0.0.1\n  port: 9090\n")

	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path})
	assert.Error(t, err)
}
