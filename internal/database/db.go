package database

import (
	"log"

	"digiwave-backend/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.Role{},
		&model.Permission{},
		&model.Technology{},
		&model.AppMode{},
		&model.Designation{},
		&model.Project{},
		&model.Quotation{},
		&model.QuotationService{},
		&model.Payment{},
		&model.Attendance{},
		&model.Leave{},
		&model.Hosting{},
		&model.Task{},
		&model.FileDocument{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
