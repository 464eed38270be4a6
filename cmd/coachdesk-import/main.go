// Command coachdesk-import migrates the legacy trainer tool's client roster
// into a coachdesk database. Each imported client gets a freshly generated
// access secret, printed at the end of the run.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/meltforce/coachdesk/internal/config"
	"github.com/meltforce/coachdesk/internal/importer"
	"github.com/meltforce/coachdesk/internal/service"
	"github.com/meltforce/coachdesk/internal/storage"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	legacyPath := flag.String("legacy-db", "", "path to the legacy tool's SQLite database")
	dryRun := flag.Bool("dry-run", false, "report what would be imported without writing")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *legacyPath == "" {
		fmt.Fprintln(os.Stderr, "-legacy-db is required")
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := storage.RunMigrations(cfg.Database.Path); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	db, err := storage.Open(ctx, cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	registry := service.NewRegistry(db, log)
	imp := importer.New(registry, log, *dryRun)

	stats, err := imp.Import(ctx, *legacyPath)
	if err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	log.Info("import finished",
		"imported", stats.Imported,
		"duplicates", stats.Duplicates,
		"errored", stats.Errored,
	)
	if len(stats.Secrets) > 0 {
		fmt.Println("Generated access secrets (share with each client, they are not recoverable):")
		for handle, secret := range stats.Secrets {
			fmt.Printf("  %-24s %s\n", handle, secret)
		}
	}
}
