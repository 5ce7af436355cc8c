package tag

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/tag"
	"github.com/workhive/todos-backend/internal/domain/todo"
)

// TagAnalyticsService produces per-tag effort rollups for one user over a
// date window
type TagAnalyticsService struct {
	tagRepo  tag.TagRepository
	todoRepo todo.TodoRepository
	cipher   todo.Cipherer
	logger   *zap.Logger
}

// NewTagAnalyticsService creates a new analytics service
func NewTagAnalyticsService(tagRepo tag.TagRepository, todoRepo todo.TodoRepository, cipher todo.Cipherer, logger *zap.Logger) *TagAnalyticsService {
	return &TagAnalyticsService{
		tagRepo:  tagRepo,
		todoRepo: todoRepo,
		cipher:   cipher,
		logger:   logger.Named("tag-analytics"),
	}
}

// AnalyzeEfforts computes effort totals for each requested tag over the
// inclusive date window. The whole request fails on the first tag that does
// not resolve. Tags with no matching todos are omitted from the result, and
// a todo carrying several requested tags counts once per tag, in the grand
// totals too.
func (s *TagAnalyticsService) AnalyzeEfforts(ctx context.Context, userID string, req AnalyzeEffortRequest) (*EffortAnalysisResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	from, err := todo.NormalizeDate(req.StartDate)
	if err != nil {
		return nil, err
	}
	to, err := todo.NormalizeDate(req.EndDate)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, shared.NewDomainError("INVALID_DATE", "End date cannot precede start date")
	}

	result := &EffortAnalysisResponse{
		Reports:       []TagEffortReport{},
		GrandTotalEta: decimal.Zero,
		GrandTotalAta: decimal.Zero,
	}

	for _, rawID := range req.TagIDs {
		tagID, err := uuid.Parse(rawID)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Invalid tag id %q", rawID))
		}

		t, err := s.tagRepo.FindByID(ctx, tagID)
		if err != nil {
			if err == shared.ErrNotFound {
				return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Tag %s does not exist", rawID))
			}
			return nil, err
		}

		todos, err := s.todoRepo.FindByTagInWindow(ctx, userID, tagID, from, to)
		if err != nil {
			return nil, err
		}
		if len(todos) == 0 {
			continue
		}

		report := TagEffortReport{
			TagID:      t.ID.String(),
			TagName:    t.Name,
			TotalEta:   decimal.Zero,
			TotalAta:   decimal.Zero,
			TotalTodos: len(todos),
			Todos:      make([]TagEffortTodo, 0, len(todos)),
		}

		for i := range todos {
			item := &todos[i]
			title, err := s.cipher.Decrypt(item.Title)
			if err != nil {
				return nil, err
			}

			report.TotalEta = report.TotalEta.Add(item.EstimatedEffort)
			report.TotalAta = report.TotalAta.Add(item.ActualEffort)
			report.Todos = append(report.Todos, TagEffortTodo{
				ID:      item.ID.String(),
				Title:   title,
				Status:  item.Status,
				Eta:     item.EstimatedEffort,
				Ata:     item.ActualEffort,
				DueDate: item.DueDate.Format(todo.DateLayout),
			})
		}

		result.GrandTotalEta = result.GrandTotalEta.Add(report.TotalEta)
		result.GrandTotalAta = result.GrandTotalAta.Add(report.TotalAta)
		result.GrandTotalTodos += report.TotalTodos
		result.Reports = append(result.Reports, report)
	}

	return result, nil
}
