package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veltrix/hr-desk/config"
)

func TestLoad_EmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Seed)
	assert.Empty(t, cfg.DBPath)
}

func TestLoad_YAMLOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hrdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
addr: ":9090"
db_path: hrdesk.db
seed: false
smtp:
  host: smtp.gmail.com
  port: 587
  username: hr@veltrix.com
`), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "hrdesk.db", cfg.DBPath)
	assert.False(t, cfg.Seed)
	assert.Equal(t, "info", cfg.LogLevel) // default survives
	assert.Equal(t, "smtp.gmail.com", cfg.SMTP.Host)
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoad_Errors(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: [:::"), 0o600))
	_, err = config.Load(path)
	assert.Error(t, err)
}
