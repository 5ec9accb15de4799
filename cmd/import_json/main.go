package main

import (
	"context"
	"flag"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"fornex/internal/config"
	"fornex/internal/database"
	"fornex/internal/pkg/logger"
	"fornex/internal/repository"
)

// import_json copies the JSON file store into the SQL database named by
// DATABASE_URL. Ids are kept so upload paths stay valid; rows that already
// exist are left alone.
func main() {
	dataDir := flag.String("data", "", "directory holding empresas.json and usuarios.json (default DATA_DIR)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("load config: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.AppEnv, Level: cfg.LogLevel})

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is required")
	}
	if *dataDir == "" {
		*dataDir = cfg.DataDir
	}

	src, err := repository.OpenJSON(*dataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open JSON store")
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("db connect failed")
	}
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("migrate failed")
	}

	ctx := context.Background()

	companies, err := src.Companies.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read companies")
	}
	users, err := src.Users.List(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("read users")
	}

	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		insert := tx.Clauses(clause.OnConflict{DoNothing: true})
		if len(companies) > 0 {
			if err := insert.Create(&companies).Error; err != nil {
				return err
			}
		}
		if len(users) > 0 {
			if err := insert.Create(&users).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}

	log.Info().
		Int("companies", len(companies)).
		Int("users", len(users)).
		Msg("JSON import completed")
}
