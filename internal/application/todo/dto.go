package todo

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTodoRequest represents a request to create one or more todos. A due
// date per occurrence; recurring work sends several dates in one request.
type CreateTodoRequest struct {
	Title    string          `json:"title" binding:"required"`
	Comments string          `json:"comments"`
	Status   string          `json:"status" binding:"required,max=50"`
	Type     string          `json:"type" binding:"max=50"`
	Eta      decimal.Decimal `json:"eta" binding:"required"`
	DueDates []string        `json:"dueDates" binding:"required,min=1"`
	Tags     []string        `json:"tags" binding:"dive,uuid"`
}

// UpdateTodoRequest represents a request to update a todo in place
type UpdateTodoRequest struct {
	Title    string          `json:"title" binding:"required"`
	Comments string          `json:"comments"`
	Status   string          `json:"status" binding:"required,max=50"`
	Type     string          `json:"type" binding:"max=50"`
	Ata      decimal.Decimal `json:"ata"`
	Tags     []string        `json:"tags" binding:"dive,uuid"`
}

// TodoQuery selects which todos to list. Exactly one filter applies, in
// priority order: a single date, then a calendar month, then a date range.
type TodoQuery struct {
	Date      string `form:"date"`
	Month     int    `form:"month"`
	Year      int    `form:"year"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// DeleteByDateQuery selects the due date for bulk deletion
type DeleteByDateQuery struct {
	Date string `form:"date" binding:"required"`
}

// TodoResponse represents a todo in API responses, content decrypted
type TodoResponse struct {
	ID        string          `json:"id"`
	Title     string          `json:"title"`
	Comments  string          `json:"comments,omitempty"`
	Status    string          `json:"status"`
	Type      string          `json:"type,omitempty"`
	Eta       decimal.Decimal `json:"eta"`
	Ata       decimal.Decimal `json:"ata"`
	DueDate   string          `json:"dueDate"`
	Tags      []string        `json:"tags"`
	Version   int             `json:"version"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// DeleteByDateResponse reports the outcome of a bulk delete
type DeleteByDateResponse struct {
	Deleted int64 `json:"deleted"`
}
