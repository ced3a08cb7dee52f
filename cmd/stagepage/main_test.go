package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/stagepage"
	"github.com/eringen/stagepage/content"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "stagepage dev\n", out)
}

func TestNewScaffoldsLoadableSite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nightshift")
	out, err := execute(t, "new", dir, "--theme", "noir")
	require.NoError(t, err)
	assert.Contains(t, out, "created")

	c, err := content.Load(filepath.Join(dir, "content.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "NIGHTSHIFT", c.Artist)
	assert.Equal(t, content.ThemeNoir, c.Theme)
	assert.Len(t, c.Gallery, 4)
	assert.Len(t, c.Fallbacks.Gallery, 4)

	cfg, err := stagepage.LoadConfig(filepath.Join(dir, "stagepage.yaml"))
	require.NoError(t, err)
	assert.Len(t, cfg.SessionSecret, 64)
	assert.Equal(t, 30*time.Minute, cfg.ViewTTL)

	info, err := os.Stat(filepath.Join(dir, "assets"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewRefusesExistingDir(t *testing.T) {
	_, err := execute(t, "new", t.TempDir())
	assert.Error(t, err)
}

func TestNewRejectsUnknownTheme(t *testing.T) {
	_, err := execute(t, "new", filepath.Join(t.TempDir(), "x"), "--theme", "sepia")
	assert.Error(t, err)
}

func TestContentCheck(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artist: Test Act\ngallery:\n  - /assets/a.jpeg\n  - /assets/b.jpeg\n"), 0o644))
	assets := filepath.Join(dir, "assets")
	require.NoError(t, os.MkdirAll(assets, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assets, "a.jpeg"), []byte("x"), 0o644))

	out, err := execute(t, "content", "check", path, "--assets", assets)
	require.NoError(t, err)
	assert.Contains(t, out, "Test Act (classic)")
	assert.Contains(t, out, "gallery:      2 images")
	assert.Contains(t, out, "/assets/b.jpeg")
	assert.Contains(t, out, "/assets/hero.jpeg")
	assert.NotContains(t, out, "/assets/a.jpeg")
}

func TestContentCheckInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "content.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artist: \"\"\n"), 0o644))

	_, err := execute(t, "content", "check", path)
	assert.ErrorContains(t, err, "artist is required")
}

func TestFailuresSummary(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "failures.db")
	store, err := stagepage.OpenFailureLog(dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Record(stagepage.AssetFailure{Slot: "hero", Primary: "/assets/hero.jpeg"}))
	require.NoError(t, store.Record(stagepage.AssetFailure{Slot: "hero", Primary: "/assets/hero.jpeg"}))
	require.NoError(t, store.Close())

	cfgPath := filepath.Join(dir, "stagepage.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("failure_log: "+dbPath+"\n"), 0o644))

	out, err := execute(t, "failures", "--config", cfgPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "2")
	assert.Contains(t, lines[1], "/assets/hero.jpeg")

	out, err = execute(t, "failures", "--config", cfgPath, "--recent", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "TIME")
}

func TestFailuresMissingLog(t *testing.T) {
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "data", "failres.db")
	cfgPath := filepath.Join(dir, "stagepage.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("failure_log: "+dbPath+"\n"), 0o644))

	_, err := execute(t, "failures", "--config", cfgPath)
	assert.ErrorContains(t, err, "no failure log at "+dbPath)

	_, err = os.Stat(filepath.Dir(dbPath))
	assert.True(t, os.IsNotExist(err))
}
