package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentMethod enum constants
const (
	PaymentCash         = "CASH"
	PaymentBankTransfer = "BANK_TRANSFER"
	PaymentUPI          = "UPI"
	PaymentCheque       = "CHEQUE"
)

// Payment records money received against a project.
type Payment struct {
	ID          uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"project_id"`
	Project     *Project        `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	Amount      decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PaymentDate time.Time       `gorm:"type:date;not null;index" json:"payment_date"`
	Method      string          `gorm:"type:varchar(20);not null;default:'BANK_TRANSFER'" json:"method"`
	Reference   string          `gorm:"type:varchar(100)" json:"reference"` // txn / cheque number
	Note        string          `gorm:"type:text" json:"note"`
	ReceivedBy  *uuid.UUID      `gorm:"type:uuid;index" json:"received_by"`
	Receiver    *User           `gorm:"foreignKey:ReceivedBy" json:"receiver,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
