package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/marcvives/site-content/pkg/sitecontent/migrate"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/jsonfile"
	"github.com/marcvives/site-content/pkg/sitecontent/repo/postgres"
)

// Config is the environment of the one-shot migration run. The elevated
// credentials are required because migration writes every table.
type Config struct {
	DataDir            string `env:"DATA_DIR" env-default:"./data/content"`
	ServiceDatabaseURL string `env:"SERVICE_DATABASE_URL"`
	Locales            string `env:"MIGRATE_LOCALES"`
}

func main() {
	_ = godotenv.Load()

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		log.Fatalf("Failed to read configuration: %v", err)
	}

	dataDir := flag.String("data-dir", config.DataDir, "directory holding the flat-file store")
	databaseURL := flag.String("database-url", config.ServiceDatabaseURL, "postgres connection string with write access")
	locales := flag.String("locales", config.Locales, "comma-separated translation locales (defaults to the standard set)")
	flag.Parse()

	if *databaseURL == "" {
		log.Fatal("a database URL is required (set SERVICE_DATABASE_URL or pass -database-url)")
	}

	source, err := jsonfile.New(jsonfile.Config{BaseDir: *dataDir})
	if err != nil {
		log.Fatalf("Failed to open flat-file store: %v", err)
	}

	pool, err := pgxpool.New(context.Background(), *databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	runner := &migrate.Runner{
		Source: source,
		Target: postgres.NewWithPools(pool, pool),
		Logger: slog.Default(),
	}
	if *locales != "" {
		runner.Locales = strings.Split(*locales, ",")
	}

	summary, err := runner.Run(context.Background())
	if err != nil {
		log.Fatalf("Migration aborted: %v", err)
	}

	slog.Info("migration finished",
		"categories", summary.Categories,
		"items", summary.Items,
		"skipped_items", summary.SkippedItems,
		"pages", summary.Pages,
		"settings", summary.Settings,
		"translations", summary.Translations,
		"gallery_images", summary.GalleryImages,
		"failures", summary.Failures)
}
