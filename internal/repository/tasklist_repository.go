package repository

import (
	"context"
	"errors"

	"tasklist/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskListRepository struct {
	db *gorm.DB
}

func NewTaskListRepository(db *gorm.DB) *TaskListRepository {
	return &TaskListRepository{db: db}
}

// SharedTaskList pairs a list shared to a user with the granted permission.
type SharedTaskList struct {
	TaskList   model.TaskList
	Permission string
}

func (r *TaskListRepository) Create(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Create(list).Error
}

// GetOwned returns the lists owned by the user, newest-first.
func (r *TaskListRepository) GetOwned(ctx context.Context, ownerID uuid.UUID) ([]model.TaskList, error) {
	var lists []model.TaskList
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&lists).Error
	return lists, err
}

// GetShared returns the lists shared to the user together with the
// permission each share grants, newest-first by share creation.
func (r *TaskListRepository) GetShared(ctx context.Context, userID uuid.UUID) ([]SharedTaskList, error) {
	var shares []model.Share
	err := r.db.WithContext(ctx).
		Preload("TaskList").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&shares).Error
	if err != nil {
		return nil, err
	}

	shared := make([]SharedTaskList, len(shares))
	for i, share := range shares {
		shared[i] = SharedTaskList{TaskList: share.TaskList, Permission: share.Permission}
	}
	return shared, nil
}

func (r *TaskListRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TaskList, error) {
	var list model.TaskList
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&list).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

// GetByIDWithChildren loads a list with its tasks (newest-first) and its
// shares with the shared users embedded.
func (r *TaskListRepository) GetByIDWithChildren(ctx context.Context, id uuid.UUID) (*model.TaskList, error) {
	var list model.TaskList
	err := r.db.WithContext(ctx).
		Preload("Tasks", func(db *gorm.DB) *gorm.DB {
			return db.Order("tasks.created_at DESC")
		}).
		Preload("Shares", func(db *gorm.DB) *gorm.DB {
			return db.Order("task_list_shares.created_at DESC")
		}).
		Preload("Shares.User").
		Where("id = ?", id).
		First(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &list, nil
}

func (r *TaskListRepository) Update(ctx context.Context, list *model.TaskList) error {
	return r.db.WithContext(ctx).Save(list).Error
}

// Delete removes the list together with all its tasks and shares in one
// transaction. The SQL schema also cascades, so either path leaves zero
// child rows behind.
func (r *TaskListRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_list_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("task_list_id = ?", id).Delete(&model.Share{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.TaskList{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrListNotFound
		}
		return nil
	})
}
