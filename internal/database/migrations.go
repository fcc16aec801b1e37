package database

import (
	"github.com/kofiasare/driverhire-backend/internal/models"
	"gorm.io/gorm"
)

func RunMigrations(db *gorm.DB) error {
	// Create tables if they don't exist
	err := db.AutoMigrate(
		&models.User{},
		&models.DriverProfile{},
		&models.Badge{},
		&models.Booking{},
		&models.Trip{},
		&models.PaymentMethod{},
		&models.Review{},
	)
	if err != nil {
		return err
	}

	// Columns added after the first release
	if db.Migrator().HasTable(&models.User{}) {
		columns := []string{
			"ADD COLUMN IF NOT EXISTS address text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS avatar_url text DEFAULT ''",
			"ADD COLUMN IF NOT EXISTS fcm_token text DEFAULT ''",
		}

		for _, column := range columns {
			if err := db.Exec("ALTER TABLE users " + column).Error; err != nil {
				return err
			}
		}

		db.Exec(`ALTER TABLE users DROP CONSTRAINT IF EXISTS users_user_type_check`)
		db.Exec(`ALTER TABLE users ADD CONSTRAINT users_user_type_check CHECK (user_type IN ('client', 'driver'))`)
	}

	if db.Migrator().HasTable(&models.DriverProfile{}) {
		db.Exec(`ALTER TABLE driver_profiles DROP CONSTRAINT IF EXISTS driver_profiles_status_check`)
		db.Exec(`ALTER TABLE driver_profiles ADD CONSTRAINT driver_profiles_status_check CHECK (status IN ('pending', 'approved', 'rejected'))`)
	}

	if db.Migrator().HasTable(&models.PaymentMethod{}) {
		db.Exec(`ALTER TABLE payment_methods DROP CONSTRAINT IF EXISTS payment_methods_kind_check`)
		db.Exec(`ALTER TABLE payment_methods ADD CONSTRAINT payment_methods_kind_check CHECK (kind IN ('card', 'upi', 'bank'))`)
	}

	return nil
}
