package database

import (
	"log"

	"github.com/clovermuaythai/booking-service/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewPostgresDB(dsn string) *gorm.DB {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(&models.ClassTemplate{}, &models.Reservation{}); err != nil {
		log.Fatalf("failed to auto-migrate: %v", err)
	}

	// Unique index: one booking per user per class occurrence. The backend
	// enforces this even if two requests pass the application check.
	db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_reservation_slot
		ON reservations (user_id, template_id, occurrence_date)
	`)

	return db
}
