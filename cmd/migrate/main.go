package main

import (
	"flag"
	"os"

	"github.com/rentwheels/rental-admin/internal/config"
	"github.com/rentwheels/rental-admin/internal/database"
	"github.com/rentwheels/rental-admin/internal/domain"
	"github.com/rentwheels/rental-admin/internal/migration"
	pkglogger "github.com/rentwheels/rental-admin/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", false, "insert demo FAQs when the table is empty")
	seedOwner := flag.String("seed-owner", "demo-brand", "brand id used for demo FAQs")
	dryRun := flag.Bool("dry-run", false, "connect and report row count without migrating")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	log := pkglogger.GetLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}

	db, err := database.Open(cfg.Database, *verbose)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer func() { _ = database.Close(db) }()

	if *dryRun {
		var count int64
		if db.Migrator().HasTable(&domain.ContentEntry{}) {
			db.Model(&domain.ContentEntry{}).Count(&count)
		}
		log.Info().Int64("rows", count).Msg("[dry-run] content_entries would be migrated")
		return
	}

	if err := migration.Run(db); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
	log.Info().Msg("content_entries migrated")

	if *seed {
		n, err := migration.SeedDemo(db, *seedOwner)
		if err != nil {
			log.Fatal().Err(err).Msg("seed failed")
		}
		log.Info().Int("inserted", n).Str("owner_id", *seedOwner).Msg("demo FAQs seeded")
	}
}
