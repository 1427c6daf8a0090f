package repository_test

import (
	"context"
	"testing"

	"team-task-api/internal/models"
	"team-task-api/internal/repository"
	"team-task-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormStoreContract(t *testing.T) {
	testutil.RunStoreContract(t, func(t *testing.T) repository.Store {
		return testutil.NewStore(t)
	})
}

func TestGormStorePing(t *testing.T) {
	store := testutil.NewStore(t)
	assert.NoError(t, store.Ping(context.Background()))
}

func TestGormUserRepository_FindByIDsEmpty(t *testing.T) {
	store := testutil.NewStore(t)

	found, err := store.Users().FindByIDs(context.Background(), nil)
	assert.NoError(t, err)
	assert.Empty(t, found)
}

func TestGormStoreSchema(t *testing.T) {
	store := testutil.NewStore(t)
	migrator := store.DB().Migrator()

	require.True(t, migrator.HasTable(&models.User{}))
	require.True(t, migrator.HasTable(&models.Task{}))
	assert.True(t, migrator.HasColumn(&models.User{}, "AdminSlot"))
	assert.True(t, migrator.HasIndex(&models.User{}, "AdminSlot"))
	assert.True(t, migrator.HasIndex(&models.User{}, "Email"))
	assert.True(t, migrator.HasIndex(&models.Task{}, "Deadline"))
}
