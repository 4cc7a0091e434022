// Package config assembles a sitecontent.Service from declarative server
// configuration: which backend serves which domain, where the flat-file
// documents live, and how to reach PostgreSQL under both credential levels.
package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
	repopg "github.com/marcvives/site-content/pkg/sitecontent/repo/postgres"
)

// Backend names accepted by the configuration.
const (
	BackendJSONFile = "jsonfile"
	BackendPostgres = "postgres"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of
// library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:           "8080",
		Environment:    "development",
		StoreBackend:   BackendJSONFile,
		DataDir:        "./data/content",
		DomainBackends: map[sitecontent.Domain]string{},
	}
}

// ServerConfig represents server configuration for the site-content service.
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// StoreBackend is the default persistence backend; DomainBackends
	// overrides it per domain. A domain is bound to exactly one backend for
	// the lifetime of the process.
	StoreBackend   string
	DomainBackends map[sitecontent.Domain]string

	// Flat-file backend.
	DataDir string

	// Relational backend. DatabaseURL carries the restricted read
	// credentials; ServiceDatabaseURL carries the elevated write credentials
	// and falls back to DatabaseURL when empty.
	DatabaseURL        string
	ServiceDatabaseURL string
}

// WithDomainBackend binds one domain to a specific backend.
func WithDomainBackend(domain sitecontent.Domain, backend string) Option {
	return func(c *ServerConfig) error {
		if backend != BackendJSONFile && backend != BackendPostgres {
			return fmt.Errorf("unsupported backend %q for domain %s", backend, domain)
		}
		c.DomainBackends[domain] = backend
		return nil
	}
}

// Validate validates the server configuration.
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}
	if c.StoreBackend != BackendJSONFile && c.StoreBackend != BackendPostgres {
		return fmt.Errorf("store_backend must be %q or %q", BackendJSONFile, BackendPostgres)
	}
	if c.usesBackend(BackendJSONFile) && c.DataDir == "" {
		return errors.New("data_dir is required when using the jsonfile backend")
	}
	if c.usesBackend(BackendPostgres) && c.DatabaseURL == "" {
		return errors.New("database_url is required when using the postgres backend")
	}
	return nil
}

func (c *ServerConfig) usesBackend(backend string) bool {
	if c.StoreBackend == backend {
		return true
	}
	for _, b := range c.DomainBackends {
		if b == backend {
			return true
		}
	}
	return false
}

// BuildService creates a Service instance from the server configuration.
func (c *ServerConfig) BuildService() (sitecontent.Service, error) {
	repos := map[string]sitecontent.Repository{}

	buildRepo := func(backend string) (sitecontent.Repository, error) {
		if repo, ok := repos[backend]; ok {
			return repo, nil
		}
		repo, err := c.buildRepository(backend)
		if err != nil {
			return nil, err
		}
		repos[backend] = repo
		return repo, nil
	}

	defaultRepo, err := buildRepo(c.StoreBackend)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	options := []sitecontent.Option{sitecontent.WithRepository(defaultRepo)}
	for domain, backend := range c.DomainBackends {
		repo, err := buildRepo(backend)
		if err != nil {
			return nil, fmt.Errorf("failed to build repository for domain %s: %w", domain, err)
		}
		options = append(options, sitecontent.WithDomainRepository(domain, repo))
	}

	// The flat-file store historically minted its own ID flavor; keep it when
	// it is the default backend.
	if c.StoreBackend == BackendJSONFile {
		options = append(options, sitecontent.WithIDGenerator(jsonfile.NewIDGenerator()))
	}

	return sitecontent.New(options...)
}

// buildRepository creates a Repository for the named backend.
func (c *ServerConfig) buildRepository(backend string) (sitecontent.Repository, error) {
	switch backend {
	case BackendJSONFile:
		return jsonfile.New(jsonfile.Config{BaseDir: c.DataDir})
	case BackendPostgres:
		readPool, err := newPool(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create read pool: %w", err)
		}
		writeURL := c.ServiceDatabaseURL
		if writeURL == "" {
			writeURL = c.DatabaseURL
		}
		writePool, err := newPool(writeURL)
		if err != nil {
			return nil, fmt.Errorf("failed to create write pool: %w", err)
		}
		return repopg.NewWithPools(readPool, writePool), nil
	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}
}

func newPool(databaseURL string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	return pgxpool.NewWithConfig(context.Background(), cfg)
}

// PingPostgres verifies connectivity under the given credentials.
func PingPostgres(databaseURL string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	pool, err := newPool(databaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}
