package testutil

import (
	"context"
	"testing"

	"team-task-api/internal/database"
	"team-task-api/internal/repository"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewInMemoryDB creates an in-memory SQLite DB and runs migrations.
// The pool is capped at one connection since every new :memory: connection is a fresh database.
func NewInMemoryDB() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// NewStore returns a migrated in-memory store closed at the end of the test.
func NewStore(t *testing.T) *repository.GormStore {
	t.Helper()

	db, err := NewInMemoryDB()
	require.NoError(t, err)

	store := repository.NewGormStore(db)
	t.Cleanup(func() {
		_ = store.Close(context.Background())
	})
	return store
}
