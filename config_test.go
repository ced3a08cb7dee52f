package stagepage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	var c SiteConfig
	c.setDefaults()
	assert.Equal(t, "http://localhost:3000", c.URL)
	assert.Equal(t, ":3000", c.Addr)
	assert.Equal(t, "assets", c.AssetsDir)
	assert.Equal(t, 30*time.Minute, c.ViewTTL)
	assert.Equal(t, 1600, c.MaxImageWidth)
	assert.Equal(t, 240, c.EventsPerMin)
	assert.Equal(t, 60, c.PagesPerMin)
	assert.Equal(t, 10000, c.MaxViews)
	assert.Equal(t, 90*24*time.Hour, c.FailureRetention)
}

func TestLoadConfigFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "stagepage.yaml")
	require.NoError(t, os.WriteFile(path, []byte("url: https://awanamusic.com/\naddr: \":8080\"\ntheme: noir\nview_ttl: 5m\n"), 0o644))
	t.Setenv("STAGEPAGE_SESSION_SECRET", "s3cret")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "https://awanamusic.com", cfg.URL)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "noir", cfg.Theme)
	assert.Equal(t, 5*time.Minute, cfg.ViewTTL)
	assert.Equal(t, "s3cret", cfg.SessionSecret)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
}
