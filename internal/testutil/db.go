// Package testutil holds helpers shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"commentary/internal/config"
	"commentary/internal/database"
	"commentary/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// SQLiteConfig returns a test configuration backed by a private in-memory SQLite database.
func SQLiteConfig() *config.Config {
	return &config.Config{
		Port:           "0",
		Env:            "test",
		DBDriver:       "sqlite",
		DBPath:         fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.NewString()),
		DBMaxOpenConns: 1,
	}
}

// NewSQLiteDB connects to a fresh in-memory database with the schema in place.
// The database disappears when the test finishes.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(SQLiteConfig())
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })
	return db
}

// CreateUser inserts a user with a unique username and email.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, db.Create(user).Error)
	return user
}
