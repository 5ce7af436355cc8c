package tag

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/todo"
)

func analyticsWindow() (time.Time, time.Time) {
	return time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.March, 31, 0, 0, 0, 0, time.UTC)
}

func mustAnalyticsTodo(t *testing.T, eta float64, tags todo.TagIDs) *todo.Todo {
	t.Helper()
	item, err := todo.NewTodo("user-1", "sealed", "", "In Progress", "task",
		decimal.NewFromFloat(eta), time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC), tags)
	require.NoError(t, err)
	item.ActualEffort = decimal.NewFromFloat(eta)
	return item
}

func TestTagAnalyticsService_AnalyzeEfforts(t *testing.T) {
	tagRepo := new(MockTagRepository)
	todoRepo := new(MockTodoRepository)
	cipher := new(MockCipherer)
	service := NewTagAnalyticsService(tagRepo, todoRepo, cipher, zap.NewNop())
	ctx := context.Background()

	from, to := analyticsWindow()
	first := mustTag(t, "user-1", "Deep Work", "")
	second := mustTag(t, "user-1", "Meetings", "")

	shared1 := mustAnalyticsTodo(t, 2, todo.TagIDs{first.ID, second.ID})
	only1 := mustAnalyticsTodo(t, 1, todo.TagIDs{first.ID})

	tagRepo.On("FindByID", ctx, first.ID).Return(first, nil)
	tagRepo.On("FindByID", ctx, second.ID).Return(second, nil)
	todoRepo.On("FindByTagInWindow", ctx, "user-1", first.ID, from, to).Return([]todo.Todo{*shared1, *only1}, nil)
	todoRepo.On("FindByTagInWindow", ctx, "user-1", second.ID, from, to).Return([]todo.Todo{*shared1}, nil)
	cipher.On("Decrypt", "sealed").Return("open", nil)

	result, err := service.AnalyzeEfforts(ctx, "user-1", AnalyzeEffortRequest{
		TagIDs:    []string{first.ID.String(), second.ID.String()},
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})

	require.NoError(t, err)
	require.Len(t, result.Reports, 2)
	assert.Equal(t, "Deep Work", result.Reports[0].TagName)
	assert.True(t, result.Reports[0].TotalEta.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, 2, result.Reports[0].TotalTodos)
	assert.Equal(t, "Meetings", result.Reports[1].TagName)
	assert.True(t, result.Reports[1].TotalEta.Equal(decimal.NewFromInt(2)))
	assert.Equal(t, 1, result.Reports[1].TotalTodos)
	assert.Equal(t, "open", result.Reports[0].Todos[0].Title)

	// A todo under both tags contributes to the grand totals once per tag
	assert.True(t, result.GrandTotalEta.Equal(decimal.NewFromInt(5)))
	assert.True(t, result.GrandTotalAta.Equal(decimal.NewFromInt(5)))
	assert.Equal(t, 3, result.GrandTotalTodos)
}

func TestTagAnalyticsService_OmitsEmptyTags(t *testing.T) {
	tagRepo := new(MockTagRepository)
	todoRepo := new(MockTodoRepository)
	cipher := new(MockCipherer)
	service := NewTagAnalyticsService(tagRepo, todoRepo, cipher, zap.NewNop())
	ctx := context.Background()

	from, to := analyticsWindow()
	idle := mustTag(t, "user-1", "Idle", "")

	tagRepo.On("FindByID", ctx, idle.ID).Return(idle, nil)
	todoRepo.On("FindByTagInWindow", ctx, "user-1", idle.ID, from, to).Return([]todo.Todo{}, nil)

	result, err := service.AnalyzeEfforts(ctx, "user-1", AnalyzeEffortRequest{
		TagIDs:    []string{idle.ID.String()},
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})

	require.NoError(t, err)
	assert.Empty(t, result.Reports)
	assert.True(t, result.GrandTotalEta.IsZero())
}

func TestTagAnalyticsService_FailsFastOnMissingTag(t *testing.T) {
	tagRepo := new(MockTagRepository)
	todoRepo := new(MockTodoRepository)
	cipher := new(MockCipherer)
	service := NewTagAnalyticsService(tagRepo, todoRepo, cipher, zap.NewNop())
	ctx := context.Background()

	missing := uuid.New()
	tagRepo.On("FindByID", ctx, missing).Return(nil, shared.ErrNotFound)

	_, err := service.AnalyzeEfforts(ctx, "user-1", AnalyzeEffortRequest{
		TagIDs:    []string{missing.String()},
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})

	assertDomainCode(t, err, "NOT_FOUND")
	todoRepo.AssertNotCalled(t, "FindByTagInWindow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTagAnalyticsService_RejectsInvertedWindow(t *testing.T) {
	service := NewTagAnalyticsService(new(MockTagRepository), new(MockTodoRepository), new(MockCipherer), zap.NewNop())

	_, err := service.AnalyzeEfforts(context.Background(), "user-1", AnalyzeEffortRequest{
		TagIDs:    []string{uuid.New().String()},
		StartDate: "2026-03-31",
		EndDate:   "2026-03-01",
	})

	assertDomainCode(t, err, "INVALID_DATE")
}

func TestTagAnalyticsService_RejectsMalformedTagID(t *testing.T) {
	service := NewTagAnalyticsService(new(MockTagRepository), new(MockTodoRepository), new(MockCipherer), zap.NewNop())

	_, err := service.AnalyzeEfforts(context.Background(), "user-1", AnalyzeEffortRequest{
		TagIDs:    []string{"not-a-uuid"},
		StartDate: "2026-03-01",
		EndDate:   "2026-03-31",
	})

	assertDomainCode(t, err, "INVALID_INPUT")
}
