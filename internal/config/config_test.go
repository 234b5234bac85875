package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "http://127.0.0.1:80", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.RequestTimeout)
	assert.Equal(t, 10, cfg.API.PerPageNum)
	assert.Equal(t, "성공", cfg.API.SuccessMarker)
	assert.Equal(t, "admin", cfg.Portal.AdminID)
	assert.Equal(t, 2, cfg.Portal.LatestNotices)
	assert.Equal(t, 15*time.Minute, cfg.DevServer.AccessTokenTTL)
	assert.Equal(t, 720*time.Hour, cfg.DevServer.RefreshTokenTTL)
	assert.Equal(t, 10, cfg.DevServer.GroupWidth)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://portal.example.com
  request_timeout: 5s
portal:
  latest_notices: 5
devserver:
  addr: ":9090"
`), 0o600))
	t.Setenv("HELPER_PORTAL_PORTAL_ADMIN_ID", "root")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://portal.example.com", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.RequestTimeout)
	assert.Equal(t, 5, cfg.Portal.LatestNotices)
	assert.Equal(t, ":9090", cfg.DevServer.Addr)
	assert.Equal(t, "root", cfg.Portal.AdminID)
	// untouched keys keep their defaults
	assert.Equal(t, 10, cfg.API.PerPageNum)
}

func TestLoadRejectsBrokenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unclosed"), 0o600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRestoresEmptySuccessMarker(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  success_marker: \"\"\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultSuccessMarker, cfg.API.SuccessMarker)
}
