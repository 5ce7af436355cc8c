package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/todo"
)

// GormTodoRepository implements todo.TodoRepository using GORM
type GormTodoRepository struct {
	db *gorm.DB
}

// NewGormTodoRepository creates a new GORM-based todo repository
func NewGormTodoRepository(db *gorm.DB) *GormTodoRepository {
	return &GormTodoRepository{db: db}
}

// FindByID finds a todo by its ID
func (r *GormTodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	var t todo.Todo
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByIDForOwner finds a todo by ID owned by the given user
func (r *GormTodoRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, ownerID string) (*todo.Todo, error) {
	var t todo.Todo
	err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&t).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByDate finds the owner's todos due exactly at the given instant
func (r *GormTodoRepository) FindByDate(ctx context.Context, ownerID string, date time.Time) ([]todo.Todo, error) {
	var todos []todo.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND due_date = ?", ownerID, date).
		Order("created_at ASC").
		Find(&todos).Error
	return todos, err
}

// FindInWindow finds the owner's todos with due date in [start, end)
func (r *GormTodoRepository) FindInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]todo.Todo, error) {
	var todos []todo.Todo
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND due_date >= ? AND due_date < ?", ownerID, start, end).
		Order("due_date ASC, created_at ASC").
		Find(&todos).Error
	return todos, err
}

// FindByTagInWindow finds the owner's todos referencing the given tag with
// due date in the inclusive [from, to] window. Tag references live in a JSON
// text column, so containment is matched on the serialized UUID.
func (r *GormTodoRepository) FindByTagInWindow(ctx context.Context, ownerID string, tagID uuid.UUID, from, to time.Time) ([]todo.Todo, error) {
	var todos []todo.Todo
	pattern := fmt.Sprintf("%%%q%%", tagID.String())
	err := r.db.WithContext(ctx).
		Where("owner_id = ? AND due_date >= ? AND due_date <= ? AND tags LIKE ?", ownerID, from, to, pattern).
		Order("due_date ASC").
		Find(&todos).Error
	return todos, err
}

// Save creates or updates a todo
func (r *GormTodoRepository) Save(ctx context.Context, t *todo.Todo) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// DeleteForOwner deletes a todo owned by the given user
func (r *GormTodoRepository) DeleteForOwner(ctx context.Context, id uuid.UUID, ownerID string) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		Delete(&todo.Todo{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteUncompletedByDate deletes the owner's non-"Completed" todos due at the
// given instant, returning the number of rows removed
func (r *GormTodoRepository) DeleteUncompletedByDate(ctx context.Context, ownerID string, date time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("owner_id = ? AND due_date = ? AND status <> ?", ownerID, date, todo.StatusCompleted).
		Delete(&todo.Todo{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ todo.TodoRepository = (*GormTodoRepository)(nil)
