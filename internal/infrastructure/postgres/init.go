package postgres

import (
	"log"

	"github.com/LavaJover/shvark-otc-service/internal/config"
	"github.com/LavaJover/shvark-otc-service/internal/infrastructure/postgres/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func MustInitDB(cfg *config.OTCConfig) *gorm.DB {
	dsn := cfg.OTCDB.Dsn
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	// With a migration path configured the schema is managed by versioned
	// SQL migrations instead.
	if cfg.OTCDB.MigrationPath != "" {
		return db
	}

	db.AutoMigrate(
		&models.MerchantModel{},
		&models.OrderModel{},
		&models.DealModel{},
		&models.ArbiterModel{},
		&models.BlacklistModel{},
		&models.SequenceModel{},
	)

	return db
}
