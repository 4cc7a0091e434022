package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/marcvives/site-content/pkg/sitecontent"
)

// WithEnv applies environment variable overrides using the provided prefix.
//
// Environment variable mapping:
//
//	PORT                 - Server port (default: "8080")
//	ENVIRONMENT          - Runtime environment (default: "development")
//	STORE_BACKEND        - "jsonfile" (default) or "postgres"
//	DATA_DIR             - Base directory for the flat-file documents
//	DATABASE_URL         - Restricted (read) PostgreSQL connection string
//	SERVICE_DATABASE_URL - Elevated (write) connection string; falls back to
//	                       DATABASE_URL when unset
//	BACKEND_<DOMAIN>     - Per-domain backend override, e.g. BACKEND_MENU,
//	                       BACKEND_TRANSLATIONS
func WithEnv(prefix string) Option {
	return func(c *ServerConfig) error {
		if v, ok := lookupEnv(prefix, "PORT"); ok && v != "" {
			c.Port = v
		}
		if v, ok := lookupEnv(prefix, "ENVIRONMENT"); ok && v != "" {
			c.Environment = v
		}
		if v, ok := lookupEnv(prefix, "STORE_BACKEND"); ok && v != "" {
			if v != BackendJSONFile && v != BackendPostgres {
				return fmt.Errorf("unsupported STORE_BACKEND: %s", v)
			}
			c.StoreBackend = v
		}
		if v, ok := lookupEnv(prefix, "DATA_DIR"); ok && v != "" {
			c.DataDir = v
		}
		if v, ok := lookupEnv(prefix, "DATABASE_URL"); ok && v != "" {
			c.DatabaseURL = v
		}
		if v, ok := lookupEnv(prefix, "SERVICE_DATABASE_URL"); ok && v != "" {
			c.ServiceDatabaseURL = v
		}

		domains := []sitecontent.Domain{
			sitecontent.DomainMenu, sitecontent.DomainBeverages,
			sitecontent.DomainPages, sitecontent.DomainSettings,
			sitecontent.DomainTranslations, sitecontent.DomainGallery,
		}
		for _, domain := range domains {
			key := "BACKEND_" + strings.ToUpper(string(domain))
			v, ok := lookupEnv(prefix, key)
			if !ok || v == "" {
				continue
			}
			if err := WithDomainBackend(domain, v)(c); err != nil {
				return err
			}
		}
		return nil
	}
}

func lookupEnv(prefix, key string) (string, bool) {
	return os.LookupEnv(prefix + key)
}
