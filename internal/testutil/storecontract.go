package testutil

import (
	"context"
	"testing"
	"time"

	"team-task-api/internal/models"
	"team-task-api/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunStoreContract checks the behavior every repository.Store implementation
// must share. newStore must return an empty store for each call.
func RunStoreContract(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Run("users", func(t *testing.T) {
		testUsers(t, newStore(t))
	})
	t.Run("single admin", func(t *testing.T) {
		testSingleAdmin(t, newStore(t))
	})
	t.Run("tasks", func(t *testing.T) {
		testTasks(t, newStore(t))
	})
	t.Run("task window", func(t *testing.T) {
		testTaskWindow(t, newStore(t))
	})
}

func newUser(name string, role models.Role) *models.User {
	return &models.User{Name: name, Email: name + "@example.com", Password: "hash", Role: role}
}

func testUsers(t *testing.T, store repository.Store) {
	ctx := context.Background()
	users := store.Users()

	alice := newUser("alice", models.RoleMember)
	require.NoError(t, users.Create(ctx, alice))
	require.True(t, models.ValidID(alice.ID))
	bob := newUser("bob", models.RoleMember)
	require.NoError(t, users.Create(ctx, bob))

	got, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", got.Email)
	assert.Equal(t, models.RoleMember, got.Role)

	got, err = users.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, got.ID)

	_, err = users.FindByID(ctx, models.NewID())
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = users.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	err = users.Create(ctx, &models.User{Name: "alice2", Email: "alice@example.com", Password: "hash", Role: models.RoleMember})
	assert.ErrorIs(t, err, repository.ErrDuplicate)

	byID, err := users.FindByIDs(ctx, []string{alice.ID, models.NewID(), bob.ID})
	require.NoError(t, err)
	assert.Len(t, byID, 2)
	assert.Equal(t, "bob", byID[bob.ID].Name)

	all, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)

	require.NoError(t, users.Delete(ctx, alice.ID))
	assert.ErrorIs(t, users.Delete(ctx, alice.ID), repository.ErrNotFound)
	_, err = users.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func testSingleAdmin(t *testing.T, store repository.Store) {
	ctx := context.Background()
	users := store.Users()

	exists, err := users.AdminExists(ctx)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, users.Create(ctx, newUser("root", models.RoleAdmin)))
	exists, err = users.AdminExists(ctx)
	require.NoError(t, err)
	assert.True(t, exists)

	// Members leave the admin slot empty, so any number of them fit.
	require.NoError(t, users.Create(ctx, newUser("m1", models.RoleMember)))
	require.NoError(t, users.Create(ctx, newUser("m2", models.RoleMember)))

	err = users.Create(ctx, newUser("root2", models.RoleAdmin))
	assert.ErrorIs(t, err, repository.ErrDuplicate)
}

func testTasks(t *testing.T, store repository.Store) {
	ctx := context.Background()
	tasks := store.Tasks()
	deadline := time.Date(2024, 3, 13, 17, 0, 0, 0, time.UTC)

	task := &models.Task{Title: "Write", AssignedTo: models.NewID(), Deadline: deadline}
	require.NoError(t, tasks.Create(ctx, task))
	require.True(t, models.ValidID(task.ID))
	assert.Equal(t, models.StatusPending, task.Status)

	got, err := tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Write", got.Title)
	assert.True(t, deadline.Equal(got.Deadline))
	assert.Equal(t, models.StatusPending, got.Status)

	_, err = tasks.FindByID(ctx, models.NewID())
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got.Title = "Rewrite"
	got.Status = models.StatusWorking
	got.Deadline = deadline.Add(time.Hour)
	require.NoError(t, tasks.Update(ctx, got))

	got, err = tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rewrite", got.Title)
	assert.Equal(t, models.StatusWorking, got.Status)
	assert.True(t, deadline.Add(time.Hour).Equal(got.Deadline))

	require.NoError(t, tasks.UpdateStatus(ctx, task.ID, models.StatusCompleted))
	got, err = tasks.FindByID(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCompleted, got.Status)
	assert.Equal(t, "Rewrite", got.Title)

	missing := &models.Task{ID: models.NewID(), Title: "x", AssignedTo: models.NewID(), Deadline: deadline, Status: models.StatusPending}
	assert.ErrorIs(t, tasks.Update(ctx, missing), repository.ErrNotFound)
	assert.ErrorIs(t, tasks.UpdateStatus(ctx, missing.ID, models.StatusWorking), repository.ErrNotFound)

	require.NoError(t, tasks.Delete(ctx, task.ID))
	assert.ErrorIs(t, tasks.Delete(ctx, task.ID), repository.ErrNotFound)
}

func testTaskWindow(t *testing.T, store repository.Store) {
	ctx := context.Background()
	tasks := store.Tasks()

	from := time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 17, 23, 59, 59, 999_000_000, time.UTC)
	owner := models.NewID()
	other := models.NewID()

	create := func(title, assignee string, deadline time.Time) *models.Task {
		task := &models.Task{Title: title, AssignedTo: assignee, Deadline: deadline}
		require.NoError(t, tasks.Create(ctx, task))
		return task
	}
	sunday := create("sunday", owner, to)
	monday := create("monday", owner, from)
	create("before", owner, from.Add(-time.Millisecond))
	create("after", owner, to.Add(time.Millisecond))
	wednesday := create("wednesday", other, from.AddDate(0, 0, 2))

	inWeek, err := tasks.List(ctx, repository.TaskFilter{DeadlineFrom: &from, DeadlineTo: &to})
	require.NoError(t, err)
	require.Len(t, inWeek, 3)
	assert.Equal(t, monday.ID, inWeek[0].ID)
	assert.Equal(t, wednesday.ID, inWeek[1].ID)
	assert.Equal(t, sunday.ID, inWeek[2].ID)

	mine, err := tasks.List(ctx, repository.TaskFilter{AssignedTo: &owner, DeadlineFrom: &from, DeadlineTo: &to})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, task := range mine {
		assert.Equal(t, owner, task.AssignedTo)
	}

	all, err := tasks.List(ctx, repository.TaskFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 5)
}
