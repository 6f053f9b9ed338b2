package access

import (
	"context"
	"errors"

	"tasklist/internal/model"
	"tasklist/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resolver computes the effective tier for a (list, user) pair. Every
// task-list, task and share operation resolves through it before touching
// anything else; nothing bypasses it.
type Resolver struct {
	db *gorm.DB
}

func NewResolver(db *gorm.DB) *Resolver {
	return &Resolver{db: db}
}

// Resolve fetches the list and the caller's share, if any, and returns the
// resulting tier together with the list. An absent list yields
// repository.ErrListNotFound. Both reads run inside one transaction so the
// owner check and the share lookup observe the same snapshot.
func (r *Resolver) Resolve(ctx context.Context, listID, userID uuid.UUID) (Tier, *model.TaskList, error) {
	tier := TierNone
	var list model.TaskList

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&list, "id = ?", listID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repository.ErrListNotFound
			}
			return err
		}

		if list.OwnerID == userID {
			tier = TierOwner
			return nil
		}

		var share model.Share
		err := tx.Where("task_list_id = ? AND user_id = ?", listID, userID).First(&share).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil // no share, tier stays none
		}
		if err != nil {
			return err
		}

		tier = TierFromPermission(share.Permission)
		return nil
	})
	if err != nil {
		return TierNone, nil, err
	}

	return tier, &list, nil
}
