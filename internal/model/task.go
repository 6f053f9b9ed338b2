package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task statuses. Any status may follow any other; there is no terminal state.
const (
	StatusPending    = "pending"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
)

type Task struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskListID  uuid.UUID `gorm:"type:uuid;not null;index"`
	Title       string    `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:pending;check:status IN ('pending', 'in_progress', 'completed')"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	TaskList TaskList `gorm:"foreignKey:TaskListID"`
}

func (t *Task) BeforeCreate(*gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// ValidStatus reports whether s is one of the three task statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}
