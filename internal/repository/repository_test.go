package repository_test

import (
	"context"
	"fmt"
	"testing"

	"tasklist/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// setupTestDB opens a fresh in-memory sqlite database with the full schema.
// The database is named after a random uuid so parallel tests never share
// state through sqlite's shared cache.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	err = db.AutoMigrate(&model.User{}, &model.TaskList{}, &model.Task{}, &model.Share{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:          email,
		HashedPassword: "hashed_password",
		Name:           "Test User",
	}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

func createTestList(t *testing.T, db *gorm.DB, ownerID uuid.UUID, title string) *model.TaskList {
	t.Helper()

	list := &model.TaskList{
		Title:   title,
		OwnerID: ownerID,
	}
	require.NoError(t, db.WithContext(context.Background()).Create(list).Error)
	return list
}
