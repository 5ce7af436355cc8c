package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/todo"
)

// setupTodoTestDB creates an in-memory SQLite database for testing
func setupTodoTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.Exec(`
		CREATE TABLE todos (
			id TEXT PRIMARY KEY,
			owner_id TEXT NOT NULL,
			title TEXT NOT NULL,
			comments TEXT,
			status TEXT NOT NULL,
			type TEXT,
			estimated_effort NUMERIC NOT NULL,
			actual_effort NUMERIC NOT NULL,
			due_date DATETIME NOT NULL,
			tags TEXT NOT NULL DEFAULT '[]',
			version INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)
	`).Error
	require.NoError(t, err)

	return db
}

func mustNewTodo(t *testing.T, ownerID, status string, due time.Time, tags todo.TagIDs) *todo.Todo {
	t.Helper()
	item, err := todo.NewTodo(ownerID, "sealed-title", "sealed-comments", status, "task", decimal.NewFromInt(1), due, tags)
	require.NoError(t, err)
	return item
}

func day(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}

func TestGormTodoRepository_SaveAndFindByID(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	item := mustNewTodo(t, "user-1", "New", day(10), nil)
	require.NoError(t, repo.Save(ctx, item))

	found, err := repo.FindByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, item.ID, found.ID)
	assert.Equal(t, "sealed-title", found.Title)
	assert.True(t, found.DueDate.Equal(day(10)))
}

func TestGormTodoRepository_FindByIDForOwner(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	item := mustNewTodo(t, "user-1", "New", day(10), nil)
	require.NoError(t, repo.Save(ctx, item))

	_, err := repo.FindByIDForOwner(ctx, item.ID, "user-1")
	require.NoError(t, err)

	_, err = repo.FindByIDForOwner(ctx, item.ID, "user-2")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTodoRepository_FindByDate(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(10), nil)))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(11), nil)))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-2", "New", day(10), nil)))

	todos, err := repo.FindByDate(ctx, "user-1", day(10))
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.True(t, todos[0].DueDate.Equal(day(10)))

	todos, err = repo.FindByDate(ctx, "user-1", day(12))
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestGormTodoRepository_FindInWindow(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	firstOfApril := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

	for _, d := range []int{1, 5, 15, 31} {
		require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(d), nil)))
	}
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", firstOfApril, nil)))

	// Half-open window: the end bound itself is excluded
	todos, err := repo.FindInWindow(ctx, "user-1", day(1), day(15))
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	// A whole-month window stops at midnight of the next month's first day,
	// so a todo due April 1 never shows up in March
	todos, err = repo.FindInWindow(ctx, "user-1", day(1), firstOfApril)
	require.NoError(t, err)
	require.Len(t, todos, 4)
	for _, item := range todos {
		assert.False(t, item.DueDate.Equal(firstOfApril))
	}
}

func TestGormTodoRepository_FindByTagInWindow(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	tagID := uuid.New()
	otherTag := uuid.New()

	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(10), todo.TagIDs{tagID})))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(12), todo.TagIDs{tagID, otherTag})))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(12), todo.TagIDs{otherTag})))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(20), todo.TagIDs{tagID})))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-2", "New", day(12), todo.TagIDs{tagID})))

	// Inclusive window on both ends
	todos, err := repo.FindByTagInWindow(ctx, "user-1", tagID, day(10), day(12))
	require.NoError(t, err)
	assert.Len(t, todos, 2)

	todos, err = repo.FindByTagInWindow(ctx, "user-1", tagID, day(10), day(20))
	require.NoError(t, err)
	assert.Len(t, todos, 3)

	todos, err = repo.FindByTagInWindow(ctx, "user-1", uuid.New(), day(1), day(31))
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestGormTodoRepository_DeleteForOwner(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	item := mustNewTodo(t, "user-1", "New", day(10), nil)
	require.NoError(t, repo.Save(ctx, item))

	assert.ErrorIs(t, repo.DeleteForOwner(ctx, item.ID, "user-2"), shared.ErrNotFound)

	require.NoError(t, repo.DeleteForOwner(ctx, item.ID, "user-1"))
	_, err := repo.FindByID(ctx, item.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormTodoRepository_DeleteUncompletedByDate(t *testing.T) {
	db := setupTodoTestDB(t)
	repo := NewGormTodoRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(10), nil)))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "In Progress", day(10), nil)))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", todo.StatusCompleted, day(10), nil)))
	require.NoError(t, repo.Save(ctx, mustNewTodo(t, "user-1", "New", day(11), nil)))

	deleted, err := repo.DeleteUncompletedByDate(ctx, "user-1", day(10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	// The completed todo survives the sweep
	remaining, err := repo.FindByDate(ctx, "user-1", day(10))
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, todo.StatusCompleted, remaining[0].Status)
}
