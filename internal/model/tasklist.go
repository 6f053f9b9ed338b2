package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskList struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Owner  User    `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE"`
	Tasks  []Task  `gorm:"foreignKey:TaskListID;constraint:OnDelete:CASCADE"`
	Shares []Share `gorm:"foreignKey:TaskListID;constraint:OnDelete:CASCADE"`
}

func (l *TaskList) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
