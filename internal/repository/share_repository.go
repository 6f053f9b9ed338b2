package repository

import (
	"context"
	"errors"

	"tasklist/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ShareRepository struct {
	db *gorm.DB
}

func NewShareRepository(db *gorm.DB) *ShareRepository {
	return &ShareRepository{db: db}
}

// Create inserts a new share. Grants are not idempotent: the unique index
// on (task_list_id, user_id) is the race-safety boundary for concurrent
// grants, and the losing insert surfaces as ErrShareExists.
func (r *ShareRepository) Create(ctx context.Context, share *model.Share) error {
	err := r.db.WithContext(ctx).Create(share).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrShareExists
	}
	return err
}

// GetByID retrieves a share with the shared user embedded
func (r *ShareRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Share, error) {
	var share model.Share
	err := r.db.WithContext(ctx).Preload("User").First(&share, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrShareNotFound
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

// GetByListID returns all shares for a list with the shared users embedded,
// newest-first
func (r *ShareRepository) GetByListID(ctx context.Context, listID uuid.UUID) ([]model.Share, error) {
	var shares []model.Share
	err := r.db.WithContext(ctx).
		Preload("User").
		Where("task_list_id = ?", listID).
		Order("created_at DESC").
		Find(&shares).Error
	return shares, err
}

// FindByListAndUser returns the share for a (list, user) pair, or nil if
// none exists
func (r *ShareRepository) FindByListAndUser(ctx context.Context, listID, userID uuid.UUID) (*model.Share, error) {
	var share model.Share
	err := r.db.WithContext(ctx).
		Where("task_list_id = ? AND user_id = ?", listID, userID).
		First(&share).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &share, nil
}

func (r *ShareRepository) Update(ctx context.Context, share *model.Share) error {
	// The share may carry a preloaded User; don't let Save touch it.
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(share).Error
}

func (r *ShareRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&model.Share{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrShareNotFound
	}
	return nil
}
