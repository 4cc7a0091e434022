package config_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, config.BackendJSONFile, cfg.StoreBackend)
	assert.Equal(t, "./data/content", cfg.DataDir)
	assert.Empty(t, cfg.DomainBackends)
}

func TestLoadValidation(t *testing.T) {
	t.Run("postgres requires a database url", func(t *testing.T) {
		_, err := config.Load(func(c *config.ServerConfig) error {
			c.StoreBackend = config.BackendPostgres
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("jsonfile requires a data dir", func(t *testing.T) {
		_, err := config.Load(func(c *config.ServerConfig) error {
			c.DataDir = ""
			return nil
		})
		assert.Error(t, err)
	})

	t.Run("domain override alone pulls in backend requirements", func(t *testing.T) {
		_, err := config.Load(config.WithDomainBackend(sitecontent.DomainTranslations, config.BackendPostgres))
		assert.Error(t, err, "translations on postgres still needs a database url")
	})

	t.Run("unknown backend rejected", func(t *testing.T) {
		_, err := config.Load(config.WithDomainBackend(sitecontent.DomainMenu, "etcd"))
		assert.Error(t, err)
	})
}

func TestWithEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("STORE_BACKEND", "jsonfile")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("BACKEND_GALLERY", "jsonfile")

	cfg, err := config.Load(config.WithEnv(""))
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, config.BackendJSONFile, cfg.StoreBackend)
	assert.Equal(t, config.BackendJSONFile, cfg.DomainBackends[sitecontent.DomainGallery])
}

func TestWithEnvPrefix(t *testing.T) {
	t.Setenv("SITE_PORT", "7070")
	t.Setenv("PORT", "9090")

	cfg, err := config.Load(config.WithEnv("SITE_"))
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.Port)
}

func TestWithEnvRejectsUnknownBackend(t *testing.T) {
	t.Setenv("STORE_BACKEND", "redis")

	_, err := config.Load(config.WithEnv(""))
	assert.Error(t, err)
}

func TestBuildServiceJSONFile(t *testing.T) {
	cfg, err := config.Load(func(c *config.ServerConfig) error {
		c.DataDir = t.TempDir()
		return nil
	})
	require.NoError(t, err)

	svc, err := cfg.BuildService()
	require.NoError(t, err)

	// The built service is ready for use against the flat-file store.
	view, err := svc.CreateCategory(context.Background(), sitecontent.DomainMenu, sitecontent.CreateCategoryRequest{
		Name: sitecontent.LocalizedText{"en": "Starters"},
	})
	require.NoError(t, err)
	assert.Contains(t, view.ID, "menu-", "flat-file default backend keeps the token ID scheme")
}

func TestPingPostgresRequiresURL(t *testing.T) {
	assert.Error(t, config.PingPostgres(""))
}
