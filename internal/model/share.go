package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Share permissions granted to non-owners. The owner never holds a Share
// for their own list.
const (
	PermissionView = "view" // read-only access
	PermissionEdit = "edit" // may create, update and delete tasks
)

// Share grants one user a permission on one task list. At most one Share
// exists per (list, user) pair, enforced by the unique index.
type Share struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	TaskListID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_share_list_user"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_share_list_user"`
	Permission string    `gorm:"not null;check:permission IN ('view', 'edit')"`
	CreatedAt  time.Time `gorm:"autoCreateTime"`

	TaskList TaskList `gorm:"foreignKey:TaskListID"`
	User     User     `gorm:"foreignKey:UserID"`
}

func (Share) TableName() string {
	return "task_list_shares"
}

func (s *Share) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
