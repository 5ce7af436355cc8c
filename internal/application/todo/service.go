// Package todo implements the todo use cases: filtered listing, single and
// recurring creation, in-place updates, and guarded deletion.
package todo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/tag"
	"github.com/workhive/todos-backend/internal/domain/todo"
)

// TodoService handles todo-related application logic
type TodoService struct {
	todoRepo todo.TodoRepository
	tagRepo  tag.TagRepository
	cipher   todo.Cipherer
	logger   *zap.Logger
}

// NewTodoService creates a new todo service
func NewTodoService(todoRepo todo.TodoRepository, tagRepo tag.TagRepository, cipher todo.Cipherer, logger *zap.Logger) *TodoService {
	return &TodoService{
		todoRepo: todoRepo,
		tagRepo:  tagRepo,
		cipher:   cipher,
		logger:   logger.Named("todo-service"),
	}
}

// GetTodos lists the user's todos for the window the query selects. Filters
// apply in priority order: date beats month, month beats range. A query with
// no usable filter is rejected.
func (s *TodoService) GetTodos(ctx context.Context, userID string, q TodoQuery) ([]TodoResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	switch {
	case q.Date != "":
		date, err := todo.NormalizeDate(q.Date)
		if err != nil {
			return nil, err
		}
		todos, err := s.todoRepo.FindByDate(ctx, userID, date)
		if err != nil {
			return nil, err
		}
		return s.toResponses(todos)

	case q.Month != 0 && q.Year != 0:
		if q.Month < 1 || q.Month > 12 {
			return nil, shared.NewDomainError("INVALID_DATE", "Month must be between 1 and 12")
		}
		start, end := todo.MonthBounds(q.Year, time.Month(q.Month))
		todos, err := s.todoRepo.FindInWindow(ctx, userID, start, end)
		if err != nil {
			return nil, err
		}
		return s.toResponses(todos)

	case q.StartDate != "" && q.EndDate != "":
		from, err := todo.NormalizeDate(q.StartDate)
		if err != nil {
			return nil, err
		}
		to, err := todo.NormalizeDate(q.EndDate)
		if err != nil {
			return nil, err
		}
		if to.Before(from) {
			return nil, shared.NewDomainError("INVALID_DATE", "End date cannot precede start date")
		}
		start, end := todo.RangeBounds(from, to)
		todos, err := s.todoRepo.FindInWindow(ctx, userID, start, end)
		if err != nil {
			return nil, err
		}
		return s.toResponses(todos)
	}

	return nil, shared.NewDomainError("INVALID_INPUT", "A date, month and year, or start and end date filter is required")
}

// GetTodo returns one of the user's todos by ID
func (s *TodoService) GetTodo(ctx context.Context, userID string, id uuid.UUID) (*TodoResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}
	t, err := s.todoRepo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}
	return s.toResponse(t)
}

// CreateTodos creates one todo per requested due date. Creation is
// sequential, not transactional: a failure partway through leaves the
// already-created occurrences in place and reports the error.
func (s *TodoService) CreateTodos(ctx context.Context, userID string, req CreateTodoRequest) ([]TodoResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(req.DueDates))
	for _, raw := range req.DueDates {
		date, err := todo.NormalizeDate(raw)
		if err != nil {
			return nil, err
		}
		dates = append(dates, date)
	}

	title, err := s.cipher.Encrypt(req.Title)
	if err != nil {
		return nil, err
	}
	comments, err := s.cipher.Encrypt(req.Comments)
	if err != nil {
		return nil, err
	}

	created := make([]TodoResponse, 0, len(dates))
	for _, date := range dates {
		t, err := todo.NewTodo(userID, title, comments, req.Status, req.Type, req.Eta, date, tagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.todoRepo.Save(ctx, t); err != nil {
			s.logger.Error("Todo creation failed partway",
				zap.String("owner_id", userID),
				zap.Int("created", len(created)),
				zap.Error(err))
			return nil, err
		}
		resp, err := s.toResponse(t)
		if err != nil {
			return nil, err
		}
		created = append(created, *resp)
	}

	s.logger.Info("Todos created",
		zap.String("owner_id", userID),
		zap.Int("count", len(created)))
	return created, nil
}

// UpdateTodo replaces a todo's mutable fields
func (s *TodoService) UpdateTodo(ctx context.Context, userID string, id uuid.UUID, req UpdateTodoRequest) (*TodoResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	tagIDs, err := s.resolveTagIDs(ctx, req.Tags)
	if err != nil {
		return nil, err
	}

	t, err := s.todoRepo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	title, err := s.cipher.Encrypt(req.Title)
	if err != nil {
		return nil, err
	}
	comments, err := s.cipher.Encrypt(req.Comments)
	if err != nil {
		return nil, err
	}

	if err := t.Update(title, comments, req.Status, req.Type, req.Ata, tagIDs); err != nil {
		return nil, err
	}
	if err := s.todoRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Todo updated",
		zap.String("todo_id", t.ID.String()),
		zap.String("owner_id", userID),
		zap.String("status", t.Status))
	return s.toResponse(t)
}

// DeleteTodo deletes one of the user's todos. A todo that has reached
// "Completed" cannot be deleted.
func (s *TodoService) DeleteTodo(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	t, err := s.todoRepo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return err
	}
	if t.IsCompleted() {
		return shared.NewDomainError("INVALID_STATE", "Completed todo cannot be deleted")
	}
	if err := s.todoRepo.DeleteForOwner(ctx, id, userID); err != nil {
		return err
	}

	s.logger.Info("Todo deleted",
		zap.String("todo_id", id.String()),
		zap.String("owner_id", userID))
	return nil
}

// DeleteTodosByDate deletes the user's todos due on the given date, leaving
// completed ones untouched
func (s *TodoService) DeleteTodosByDate(ctx context.Context, userID string, rawDate string) (*DeleteByDateResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	date, err := todo.NormalizeDate(rawDate)
	if err != nil {
		return nil, err
	}

	deleted, err := s.todoRepo.DeleteUncompletedByDate(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Todos deleted by date",
		zap.String("owner_id", userID),
		zap.String("date", rawDate),
		zap.Int64("deleted", deleted))
	return &DeleteByDateResponse{Deleted: deleted}, nil
}

// resolveTagIDs parses and verifies every tag reference, failing on the
// first one that does not resolve
func (s *TodoService) resolveTagIDs(ctx context.Context, raw []string) (todo.TagIDs, error) {
	if len(raw) == 0 {
		return todo.TagIDs{}, nil
	}

	ids := make(todo.TagIDs, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid tag id %q", r))
		}
		ids = append(ids, id)
	}

	ok, missing, err := s.tagRepo.ExistByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Tag %s does not exist", missing))
	}
	return ids, nil
}

// toResponse decrypts a todo's content and maps it to a response DTO
func (s *TodoService) toResponse(t *todo.Todo) (*TodoResponse, error) {
	title, err := s.cipher.Decrypt(t.Title)
	if err != nil {
		return nil, err
	}
	comments, err := s.cipher.Decrypt(t.Comments)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(t.Tags))
	for _, id := range t.Tags {
		tags = append(tags, id.String())
	}

	return &TodoResponse{
		ID:        t.ID.String(),
		Title:     title,
		Comments:  comments,
		Status:    t.Status,
		Type:      t.Type,
		Eta:       t.EstimatedEffort,
		Ata:       t.ActualEffort,
		DueDate:   t.DueDate.Format(todo.DateLayout),
		Tags:      tags,
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}, nil
}

// toResponses maps a slice of todos, decrypting each
func (s *TodoService) toResponses(todos []todo.Todo) ([]TodoResponse, error) {
	responses := make([]TodoResponse, 0, len(todos))
	for i := range todos {
		resp, err := s.toResponse(&todos[i])
		if err != nil {
			return nil, err
		}
		responses = append(responses, *resp)
	}
	return responses, nil
}
