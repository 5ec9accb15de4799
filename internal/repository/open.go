package repository

import (
	"fmt"

	"gorm.io/gorm"

	"fornex/internal/config"
	"fornex/internal/database"
	"fornex/internal/pkg/logger"
)

// Open builds the record stores for the configured backend.
func Open(cfg *config.Config, log *logger.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.StoreJSON:
		log.Info().Str("dir", cfg.DataDir).Msg("using JSON file store")
		return OpenJSON(cfg.DataDir)
	case config.StoreSQLite, config.StorePostgres:
		db, err := database.Connect(cfg.DatabaseURL, log)
		if err != nil {
			return nil, fmt.Errorf("connect database: %w", err)
		}
		if err := database.Migrate(db); err != nil {
			return nil, fmt.Errorf("migrate database: %w", err)
		}
		return OpenGorm(db), nil
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
	}
}

func OpenJSON(dataDir string) (*Stores, error) {
	companies, err := NewJSONCompanyRepository(dataDir)
	if err != nil {
		return nil, err
	}
	users, err := NewJSONUserRepository(dataDir)
	if err != nil {
		return nil, err
	}
	inquiries, err := NewJSONInquiryRepository(dataDir)
	if err != nil {
		return nil, err
	}
	return &Stores{Companies: companies, Users: users, Inquiries: inquiries}, nil
}

func OpenGorm(db *gorm.DB) *Stores {
	return &Stores{
		Companies: NewCompanyRepository(db),
		Users:     NewUserRepository(db),
		Inquiries: NewInquiryRepository(db),
		close: func() error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	}
}
