package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceStatus enum constants
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
	AttendanceHalfDay = "HALF_DAY"
	AttendanceOnLeave = "LEAVE"
)

// Attendance is one user's record for one working day.
// (user_id, date) is unique. Marking twice updates the existing row.
type Attendance struct {
	ID        uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_user_date" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Date      time.Time  `gorm:"type:date;not null;uniqueIndex:idx_attendance_user_date;index" json:"date"`
	Status    string     `gorm:"type:varchar(20);not null;default:'PRESENT'" json:"status"`
	CheckIn   *time.Time `json:"check_in"`
	CheckOut  *time.Time `json:"check_out"`
	Note      string     `gorm:"type:text" json:"note"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
