// @title JLPT Learning API
// @version 1.0
// @description Backend server for a Japanese learning platform covering vocabulary, kanji, grammar, reading, listening, JLPT mock tests, dictionary lookup, an AI tutor and shadowing practice.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"jlpt_backend/internal/app"
	"jlpt_backend/internal/config"
	"jlpt_backend/pkg/configwatcher"
	"jlpt_backend/pkg/logger"
)

func main() {
	migrateOnly := flag.Bool("migrate-only", false, "run database migration and exit")
	migrate := flag.Bool("migrate", false, "force database migration on startup")
	fixtures := flag.String("fixtures", "", "path to a JSON fixture file to load on startup")
	flag.Parse()

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	cfg.ForceMigrate = *migrate || *migrateOnly
	cfg.MigrateOnly = *migrateOnly
	cfg.LoadFixtures = *fixtures != ""
	cfg.FixturesPath = *fixtures

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *migrateOnly {
		log.Println("Database migration completed, exiting")
		return
	}

	go configwatcher.WatchConfig("configs/config.yaml", cfg, func(newCfg interface{}) {
		if c, ok := newCfg.(*config.Config); ok {
			application.ReloadConfig(c)
		}
	})

	application.Run()
}
