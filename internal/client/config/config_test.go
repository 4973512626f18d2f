package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func withArgs(t *testing.T, args ...string) {
	t.Helper()
	orig := os.Args
	os.Args = append([]string{"testbin"}, args...)
	t.Cleanup(func() { os.Args = orig })
}

func TestLoadDefaults(t *testing.T) {
	var cfg Config
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:5000", cfg.BaseURL)
	require.NotEmpty(t, cfg.DataDir)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, 24*time.Hour, cfg.TokenTTL)
}

func TestLoadConfig_FlagsOverrideDefaults(t *testing.T) {
	withArgs(t, "-a", "https://notes.example.org", "-d", "/tmp/ns", "-t", "5")

	cfg := LoadConfig()
	require.Equal(t, "https://notes.example.org", cfg.BaseURL)
	require.Equal(t, "/tmp/ns", cfg.DataDir)
	require.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_JsonOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	body := `{"base_url":"https://json.example.org","request_timeout":"7s","token_ttl":"48h"}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	withArgs(t, "-c", path)

	cfg := LoadConfig()
	require.Equal(t, "https://json.example.org", cfg.BaseURL)
	require.Equal(t, 7*time.Second, cfg.RequestTimeout)
	require.Equal(t, 48*time.Hour, cfg.TokenTTL)
	// untouched by JSON
	require.NotEmpty(t, cfg.DataDir)
}

func TestLoadConfig_FlagsBeatJson(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"base_url":"https://json.example.org"}`), 0o600))

	withArgs(t, "-c", path, "-a", "https://flag.example.org")

	cfg := LoadConfig()
	require.Equal(t, "https://flag.example.org", cfg.BaseURL)
}

func TestParseJson_BadFilePanics(t *testing.T) {
	withArgs(t, "-c", "/definitely/not/a/file.json")

	require.Panics(t, func() {
		var cfg Config
		cfg.LoadDefaults()
		parseJson(&cfg)
	})
}
