package database

import (
	"github.com/techmaster-vietnam/sapkit/models"
	"gorm.io/gorm"
)

// Migrate runs database migrations for sapkit models
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.PasswordResetToken{},
	)
}
