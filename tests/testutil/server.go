// Package testutil spins up a full site-content HTTP server over a
// throwaway flat-file store for integration tests.
package testutil

import (
	"net/http/httptest"
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/marcvives/site-content/pkg/sitecontent"
	"github.com/marcvives/site-content/pkg/sitecontent/api"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
)

// SetupTestServer starts an httptest server with the complete route tree
// mounted, backed by a flat-file store in a fresh temporary directory under
// the system temp root. The caller must Close the returned server.
func SetupTestServer() *httptest.Server {
	dir, err := os.MkdirTemp("", "sitecontent-test-")
	if err != nil {
		panic(err)
	}

	repo, err := jsonfile.New(jsonfile.Config{BaseDir: dir})
	if err != nil {
		panic(err)
	}

	svc, err := sitecontent.New(
		sitecontent.WithRepository(repo),
		sitecontent.WithIDGenerator(jsonfile.NewIDGenerator()),
	)
	if err != nil {
		panic(err)
	}

	r := chi.NewRouter()
	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/menu", api.NewCatalogHandler(svc, sitecontent.DomainMenu).Routes())
		r.Mount("/beverages", api.NewCatalogHandler(svc, sitecontent.DomainBeverages).Routes())
		r.Mount("/", api.NewSiteHandler(svc).Routes())
	})

	return httptest.NewServer(r)
}
