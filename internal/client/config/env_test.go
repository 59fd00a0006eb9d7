package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	chdir(t, t.TempDir())

	t.Setenv("FITTRACK_API_KEY", "anon")
	t.Setenv("FITTRACK_REMOTE_STORE_TLS", "true")
	t.Setenv("FITTRACK_REQUEST_TIMEOUT", "30s")
	t.Setenv("FITTRACK_ADMIN_LIST_LIMIT", "250")
	t.Setenv("FITTRACK_S3_BUCKET", "pics")

	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)

	assert.Equal(t, "anon", cfg.APIKey)
	assert.True(t, cfg.RemoteStoreTLS)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 250, cfg.AdminListLimit)
	assert.Equal(t, "pics", cfg.S3Bucket)
	assert.Equal(t, 50, cfg.DefaultListLimit)
}

func TestParseEnv_DotEnvFile(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	chdir(t, t.TempDir())

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("FITTRACK_METRICS_ADDR=:2112\n"), 0o600))
	t.Setenv("FITTRACK_METRICS_ADDR", "")
	os.Unsetenv("FITTRACK_METRICS_ADDR")
	os.Args = []string{"testbin", "-env", path}

	cfg := &Config{}
	parseEnv(cfg)
	assert.Equal(t, ":2112", cfg.MetricsAddr)
}

func TestParseEnv_Malformed(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	chdir(t, t.TempDir())

	t.Setenv("FITTRACK_DEFAULT_LIST_LIMIT", "many")
	require.Panics(t, func() { parseEnv(&Config{}) })
}
