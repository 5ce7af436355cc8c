package todo

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TodoRepository defines the interface for todo persistence
type TodoRepository interface {
	// FindByID finds a todo by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Todo, error)

	// FindByIDForOwner finds a todo by ID owned by the given user
	FindByIDForOwner(ctx context.Context, id uuid.UUID, ownerID string) (*Todo, error)

	// FindByDate finds the owner's todos due exactly at the given instant
	FindByDate(ctx context.Context, ownerID string, date time.Time) ([]Todo, error)

	// FindInWindow finds the owner's todos with due date in [start, end)
	FindInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]Todo, error)

	// FindByTagInWindow finds the owner's todos referencing the given tag
	// with due date in the inclusive [from, to] window
	FindByTagInWindow(ctx context.Context, ownerID string, tagID uuid.UUID, from, to time.Time) ([]Todo, error)

	// Save creates or updates a todo
	Save(ctx context.Context, todo *Todo) error

	// DeleteForOwner deletes a todo owned by the given user
	DeleteForOwner(ctx context.Context, id uuid.UUID, ownerID string) error

	// DeleteUncompletedByDate deletes the owner's non-"Completed" todos due
	// at the given instant, returning the number of rows removed
	DeleteUncompletedByDate(ctx context.Context, ownerID string, date time.Time) (int64, error)
}
