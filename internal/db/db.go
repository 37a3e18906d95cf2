package db

import (
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/field-service-api/internal/config"
	"github.com/BruksfildServices01/field-service-api/internal/models"
)

// activeSlotIndex backs the conflict check: one active appointment per
// technician, day and named slot. Both postgres and sqlite accept it.
const activeSlotIndex = `
	CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_active_slot
	ON appointments (technician_id, scheduled_date, time_slot)
	WHERE status <> 'cancelled' AND technician_id IS NOT NULL
`

func NewDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DBUrl), &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := Migrate(db); err != nil {
		return nil, err
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.ServiceRequest{},
		&models.Lead{},
		&models.Appointment{},
		&models.Transaction{},
		&models.Photo{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	if err := db.Exec(activeSlotIndex).Error; err != nil {
		return fmt.Errorf("failed to create slot index: %w", err)
	}

	return nil
}
