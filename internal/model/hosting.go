package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// HostingServiceType enum constants
const (
	HostingDomain = "DOMAIN"
	HostingServer = "SERVER"
	HostingSSL    = "SSL"
	HostingEmail  = "EMAIL"
)

// Hosting tracks a purchased infrastructure service (domain, server, SSL,
// email) for a project, with its renewal window.
type Hosting struct {
	ID            uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID     *uuid.UUID      `gorm:"type:uuid;index" json:"project_id"`
	Project       *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	ServiceType   string          `gorm:"type:varchar(20);not null;index" json:"service_type"`
	Provider      string          `gorm:"type:varchar(255);not null" json:"provider"`
	DomainName    string          `gorm:"type:varchar(255)" json:"domain_name"`
	PurchaseDate  time.Time       `gorm:"type:date;not null" json:"purchase_date"`
	ExpiryDate    time.Time       `gorm:"type:date;not null;index" json:"expiry_date"`
	RenewalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"renewal_amount"`
	Note          string          `gorm:"type:text" json:"note"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
