package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vrickster/vault/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	for _, env := range []string{"PORT", "STATIC_DIR", "TMDB_API_KEY", "CONSUMET_BASE", "ANILIST_BASE", "TMDB_BASE", "PROXY_UPSTREAM", "STORE_PATH"} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, constants.DefaultPort, cfg.Port)
	assert.Equal(t, constants.ConsumetBase, cfg.ConsumetBase)
	assert.Equal(t, constants.AniListBase, cfg.AniListBase)
	assert.Equal(t, constants.TMDBBase, cfg.TMDBBase)
	assert.Equal(t, constants.ConsumetBase, cfg.ProxyUpstream)
	assert.Equal(t, constants.DefaultStorePath, cfg.StorePath)
	assert.Empty(t, cfg.TMDBAPIKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("PORT", "8080")
	t.Setenv("TMDB_API_KEY", "secret")
	t.Setenv("CONSUMET_BASE", "http://localhost:9000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret", cfg.TMDBAPIKey)
	assert.Equal(t, "http://localhost:9000", cfg.ConsumetBase)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"PORT": "4000",
		"TMDB_API_KEY": "file-key"
	}`), 0644))
	t.Setenv("CONFIG_FILE", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "4000", cfg.Port)
	assert.Equal(t, "file-key", cfg.TMDBAPIKey)
	assert.Equal(t, constants.ConsumetBase, cfg.ConsumetBase)
}

func TestEnvWinsOverFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"PORT": "4000"}`), 0644))
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "8080")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
}

func TestMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{broken"), 0644))
	t.Setenv("CONFIG_FILE", path)

	_, err := Load()
	assert.Error(t, err)
}
