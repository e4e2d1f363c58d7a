package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_FileAndDefaults(t *testing.T) {
	path := writeConfig(t, `
storage:
  driver: sqlite
database:
  path: /tmp/helpdesk-test.db
email:
  support_inbox:
    - suporte@x.com
`)

	cfg, err := Load("default", path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Storage.Driver)
	assert.True(t, cfg.Storage.UsesSQL())
	assert.Equal(t, "/tmp/helpdesk-test.db", cfg.Database.Path)
	assert.Equal(t, []string{"suporte@x.com"}, cfg.Email.SupportInbox)

	// untouched keys keep their defaults
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "data/uploads", cfg.Storage.AttachmentDir)
	assert.Equal(t, 480, cfg.Auth.JWT.AccessExpMinutes)
	assert.Equal(t, "America/Sao_Paulo", cfg.Business.Timezone)
	assert.Same(t, cfg, Get())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "server:\n  port: 9000\n")
	t.Setenv("HELPDESK_SERVER_PORT", "9100")
	t.Setenv("HELPDESK_AUTH_JWT_SECRET", "from-env")

	cfg, err := Load("release", path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.JWT.Secret)
	assert.Equal(t, "release", cfg.Server.Mode)
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	path := writeConfig(t, "storage:\n  driver: postgres\n")

	_, err := Load("default", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres")
}

func TestLoad_RejectsEmptySecret(t *testing.T) {
	path := writeConfig(t, "auth:\n  jwt:\n    secret: \"\"\n")

	_, err := Load("default", path)
	assert.Error(t, err)
}
