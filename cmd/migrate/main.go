package main

import (
	"context"

	"shopfront/internal/api"
	"shopfront/internal/app/config"
	"shopfront/internal/app/dsn"
	"shopfront/internal/app/repository"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
)

func main() {
	seed := flag.Bool("seed", false, "insert the demo catalog when the database has no categories")
	flag.Parse()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	api.SetupLogging(cfg.Log)

	dialector, err := dsn.Dialector(cfg.DB)
	if err != nil {
		logrus.Fatal(err)
	}

	// repository.New migrates all models on open
	repo, err := repository.New(dialector)
	if err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}
	defer repo.Close()

	logrus.Info("Database migration completed successfully")

	if !*seed {
		return
	}
	inserted, err := repo.SeedDemo(context.Background())
	if err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}
	if inserted {
		logrus.Info("Demo catalog inserted")
	} else {
		logrus.Info("Catalog is not empty, seed skipped")
	}
}
