package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DocumentCategory enum constants
const (
	DocCategoryContract  = "CONTRACT"
	DocCategoryInvoice   = "INVOICE"
	DocCategoryIdentity  = "IDENTITY"
	DocCategoryOther     = "OTHER"
)

// FileDocument is a stored file reference (contracts, signed quotations,
// scanned identity documents). The binary lives in object storage; only the
// URL is kept here.
type FileDocument struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name       string         `gorm:"type:varchar(255);not null" json:"name"`
	Category   string         `gorm:"type:varchar(20);not null;default:'OTHER';index" json:"category"`
	FileURL    string         `gorm:"type:text;not null" json:"file_url"`
	ProjectID  *uuid.UUID     `gorm:"type:uuid;index" json:"project_id"`
	UploadedBy *uuid.UUID     `gorm:"type:uuid;index" json:"uploaded_by"`
	Uploader   *User          `gorm:"foreignKey:UploadedBy" json:"uploader,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}
