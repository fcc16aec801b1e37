package database

import (
	"github.com/kofiasare/driverhire-backend/internal/config"
	"github.com/kofiasare/driverhire-backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func InitDB(cfg config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto migrate the schema
	err = db.AutoMigrate(
		&models.User{},
		&models.DriverProfile{},
		&models.Badge{},
		&models.Booking{},
		&models.Trip{},
		&models.PaymentMethod{},
		&models.Review{},
	)
	if err != nil {
		return nil, err
	}

	return db, nil
}
