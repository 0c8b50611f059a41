package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskStatus enum constants
const (
	TaskTodo       = "TODO"
	TaskInProgress = "IN_PROGRESS"
	TaskDone       = "DONE"
)

// TaskPriority enum constants
const (
	TaskLow    = "LOW"
	TaskMedium = "MEDIUM"
	TaskHigh   = "HIGH"
)

// Task is a unit of project work assigned to a staff member.
type Task struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProjectID  uuid.UUID  `gorm:"type:uuid;not null;index" json:"project_id"`
	Project    *Project   `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	AssigneeID *uuid.UUID `gorm:"type:uuid;index" json:"assignee_id"`
	Assignee   *User      `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
	Title      string     `gorm:"type:varchar(255);not null" json:"title"`
	Detail     string     `gorm:"type:text" json:"detail"`
	Status     string     `gorm:"type:varchar(20);not null;default:'TODO';index" json:"status"`
	Priority   string     `gorm:"type:varchar(10);not null;default:'MEDIUM'" json:"priority"`
	DueDate    *time.Time `gorm:"type:date" json:"due_date"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
