package storage

import (
	"fmt"
	"log"

	"residency-server/config"
	"residency-server/models"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func Open(cfg config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBConnectionString)
	case "sqlite":
		dialector = sqlite.Open(cfg.DBConnectionString)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("error connecting to db: %w", err)
	}

	if cfg.DBDriver == "sqlite" {
		// sqlite allows a single writer; serialise access through one connection.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// Migrate creates or updates every table. The unit/amenity join table is
// registered first so AutoMigrate picks up its composite key.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Unit{}, "Amenities", &models.UnitAmenity{}); err != nil {
		return fmt.Errorf("setup unit_amenities: %w", err)
	}
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}

func InitializeDB(cfg config.Config) *gorm.DB {
	db, err := Open(cfg)
	if err != nil {
		log.Panic(err.Error())
	}
	if err := Migrate(db); err != nil {
		log.Panic("error migrating db: " + err.Error())
	}

	DB = db
	return db
}
