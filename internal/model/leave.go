package model

import (
	"time"

	"github.com/google/uuid"
)

// LeaveType enum constants
const (
	LeaveCasual = "CASUAL"
	LeaveSick   = "SICK"
	LeaveEarned = "EARNED"
	LeaveUnpaid = "UNPAID"
)

// LeaveStatus enum constants
const (
	LeavePending  = "PENDING"
	LeaveApproved = "APPROVED"
	LeaveRejected = "REJECTED"
)

// Leave is a time-off request. It stays PENDING until a manager or admin
// decides it; only the decision transition writes approver fields.
type Leave struct {
	ID              uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID          uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User            *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	LeaveType       string     `gorm:"type:varchar(20);not null" json:"leave_type"`
	FromDate        time.Time  `gorm:"type:date;not null" json:"from_date"`
	ToDate          time.Time  `gorm:"type:date;not null" json:"to_date"`
	Reason          string     `gorm:"type:text" json:"reason"`
	Status          string     `gorm:"type:varchar(20);not null;default:'PENDING';index" json:"status"`
	DecidedBy       *uuid.UUID `gorm:"type:uuid" json:"decided_by"`
	Approver        *User      `gorm:"foreignKey:DecidedBy" json:"approver,omitempty"`
	DecidedAt       *time.Time `json:"decided_at"`
	RejectionReason string     `gorm:"type:text" json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
