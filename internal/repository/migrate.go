package repository

import "gorm.io/gorm"

// AutoMigrate creates the tables for local development. Production schemas
// are managed outside the service.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&userModel{}, &itemModel{}, &bookingModel{})
}
