package tag

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/workhive/todos-backend/internal/domain/tag"
)

// CreateTagRequest represents a request to create a user-owned tag
type CreateTagRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Category string `json:"category" binding:"max=50"`
}

// RenameTagRequest represents a request to rename a tag
type RenameTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// CreateCommonTagRequest represents a request to create a shared tag
type CreateCommonTagRequest struct {
	Name string `json:"name" binding:"required,max=100"`
}

// AnalyzeEffortRequest represents a request for per-tag effort rollups over a
// date window
type AnalyzeEffortRequest struct {
	TagIDs    []string `json:"tagIds" binding:"required,min=1,dive,uuid"`
	StartDate string   `json:"startDate" binding:"required"`
	EndDate   string   `json:"endDate" binding:"required"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID        string    `json:"id"`
	OwnerID   *string   `json:"ownerId,omitempty"`
	Name      string    `json:"name"`
	Category  string    `json:"category,omitempty"`
	Common    bool      `json:"common"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TagEffortTodo is a single todo inside an effort rollup, title decrypted
type TagEffortTodo struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Status  string          `json:"status"`
	Eta     decimal.Decimal `json:"eta"`
	Ata     decimal.Decimal `json:"ata"`
	DueDate string          `json:"dueDate"`
}

// TagEffortReport is the effort rollup for one tag
type TagEffortReport struct {
	TagID      string          `json:"tagId"`
	TagName    string          `json:"tagName"`
	TotalEta   decimal.Decimal `json:"totalEta"`
	TotalAta   decimal.Decimal `json:"totalAta"`
	TotalTodos int             `json:"totalTodos"`
	Todos      []TagEffortTodo `json:"todos"`
}

// EffortAnalysisResponse aggregates per-tag rollups. A todo carrying several
// of the requested tags contributes to each tag's report and to the grand
// totals once per tag it appears under.
type EffortAnalysisResponse struct {
	Reports         []TagEffortReport `json:"reports"`
	GrandTotalEta   decimal.Decimal   `json:"grandTotalEta"`
	GrandTotalAta   decimal.Decimal   `json:"grandTotalAta"`
	GrandTotalTodos int               `json:"grandTotalTodos"`
}

// ToTagResponse converts a domain tag to a response DTO
func ToTagResponse(t *tag.Tag) TagResponse {
	return TagResponse{
		ID:        t.ID.String(),
		OwnerID:   t.OwnerID,
		Name:      t.Name,
		Category:  t.Category,
		Common:    t.IsCommon(),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTagResponses converts a slice of domain tags to response DTOs
func ToTagResponses(tags []tag.Tag) []TagResponse {
	responses := make([]TagResponse, 0, len(tags))
	for i := range tags {
		responses = append(responses, ToTagResponse(&tags[i]))
	}
	return responses
}
