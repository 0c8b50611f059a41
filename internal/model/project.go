package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProjectStatus enum constants
const (
	ProjectUpcoming   = "UPCOMING"
	ProjectInProgress = "IN_PROGRESS"
	ProjectOnHold     = "ON_HOLD"
	ProjectCompleted  = "COMPLETED"
	ProjectCancelled  = "CANCELLED"
)

// Project represents an agency engagement delivered for a client.
type Project struct {
	ID           uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name"`
	ClientName   string          `gorm:"type:varchar(255);not null" json:"client_name"`
	ClientEmail  string          `gorm:"type:varchar(255)" json:"client_email"`
	ClientPhone  string          `gorm:"type:varchar(50)" json:"client_phone"`
	Description  string          `gorm:"type:text" json:"description"`
	Status       string          `gorm:"type:varchar(20);not null;default:'UPCOMING';index" json:"status"`
	AppModeID    *uuid.UUID      `gorm:"type:uuid;index" json:"app_mode_id"`
	AppMode      *AppMode        `gorm:"foreignKey:AppModeID" json:"app_mode,omitempty"`
	Technologies []Technology    `gorm:"many2many:project_technologies;" json:"technologies"`
	ProjectValue decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"project_value"`
	StartDate    *time.Time      `gorm:"type:date" json:"start_date"`
	EndDate      *time.Time      `gorm:"type:date" json:"end_date"`
	CreatedBy    *uuid.UUID      `gorm:"type:uuid;index" json:"created_by"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}
