package repository_test

import (
	"context"
	"testing"
	"time"

	"tasklist/internal/model"
	"tasklist/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareRepository_Create_DuplicatePairConflicts(t *testing.T) {
	db := setupTestDB(t)
	shareRepo := repository.NewShareRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	target := createTestUser(t, db, "target@example.com")
	list := createTestList(t, db, owner.ID, "Groceries")

	first := &model.Share{TaskListID: list.ID, UserID: target.ID, Permission: model.PermissionView}
	require.NoError(t, shareRepo.Create(context.Background(), first))

	// A second grant for the same (list, user) pair must conflict, never
	// silently overwrite
	second := &model.Share{TaskListID: list.ID, UserID: target.ID, Permission: model.PermissionEdit}
	err := shareRepo.Create(context.Background(), second)
	assert.ErrorIs(t, err, repository.ErrShareExists)

	// The first grant's permission is untouched
	existing, err := shareRepo.FindByListAndUser(context.Background(), list.ID, target.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, model.PermissionView, existing.Permission)
}

func TestShareRepository_FindByListAndUser_NotFound(t *testing.T) {
	db := setupTestDB(t)
	shareRepo := repository.NewShareRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	list := createTestList(t, db, owner.ID, "Groceries")

	share, err := shareRepo.FindByListAndUser(context.Background(), list.ID, uuid.New())
	assert.NoError(t, err)
	assert.Nil(t, share)
}

func TestShareRepository_GetByListID_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	shareRepo := repository.NewShareRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	first := createTestUser(t, db, "first@example.com")
	second := createTestUser(t, db, "second@example.com")
	list := createTestList(t, db, owner.ID, "Groceries")

	older := &model.Share{TaskListID: list.ID, UserID: first.ID, Permission: model.PermissionView}
	older.CreatedAt = time.Now().Add(-time.Hour)
	require.NoError(t, db.Create(older).Error)

	newer := &model.Share{TaskListID: list.ID, UserID: second.ID, Permission: model.PermissionEdit}
	require.NoError(t, db.Create(newer).Error)

	shares, err := shareRepo.GetByListID(context.Background(), list.ID)
	require.NoError(t, err)
	require.Len(t, shares, 2)
	assert.Equal(t, newer.ID, shares[0].ID)
	assert.Equal(t, older.ID, shares[1].ID)

	// Shared users come embedded
	assert.Equal(t, "second@example.com", shares[0].User.Email)
	assert.Equal(t, "first@example.com", shares[1].User.Email)
}

func TestShareRepository_UpdatePermission(t *testing.T) {
	db := setupTestDB(t)
	shareRepo := repository.NewShareRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	target := createTestUser(t, db, "target@example.com")
	list := createTestList(t, db, owner.ID, "Groceries")

	share := &model.Share{TaskListID: list.ID, UserID: target.ID, Permission: model.PermissionView}
	require.NoError(t, shareRepo.Create(context.Background(), share))

	loaded, err := shareRepo.GetByID(context.Background(), share.ID)
	require.NoError(t, err)

	loaded.Permission = model.PermissionEdit
	require.NoError(t, shareRepo.Update(context.Background(), loaded))

	reloaded, err := shareRepo.GetByID(context.Background(), share.ID)
	require.NoError(t, err)
	assert.Equal(t, model.PermissionEdit, reloaded.Permission)
}

func TestShareRepository_GetByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	shareRepo := repository.NewShareRepository(db)

	_, err := shareRepo.GetByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrShareNotFound)
}

func TestShareRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	shareRepo := repository.NewShareRepository(db)

	owner := createTestUser(t, db, "owner@example.com")
	target := createTestUser(t, db, "target@example.com")
	list := createTestList(t, db, owner.ID, "Groceries")

	share := &model.Share{TaskListID: list.ID, UserID: target.ID, Permission: model.PermissionView}
	require.NoError(t, shareRepo.Create(context.Background(), share))

	require.NoError(t, shareRepo.Delete(context.Background(), share.ID))

	_, err := shareRepo.GetByID(context.Background(), share.ID)
	assert.ErrorIs(t, err, repository.ErrShareNotFound)

	err = shareRepo.Delete(context.Background(), share.ID)
	assert.ErrorIs(t, err, repository.ErrShareNotFound)
}
