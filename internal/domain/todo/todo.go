package todo

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/workhive/todos-backend/internal/domain/shared"
)

// Well-known status values. Status is free-form, but these two mark a todo
// as terminal: actual effort becomes mandatory once either is reached.
const (
	StatusCompleted = "Completed"
	StatusOnHold    = "On Hold"
)

// Effort bounds, in effort units (hours)
var (
	MinEstimatedEffort = decimal.NewFromFloat(0.25)
	MaxEffort          = decimal.NewFromInt(8)
	effortStep         = decimal.NewFromFloat(0.25)
)

// TagIDs is an ordered collection of tag references, stored as a JSON array
type TagIDs []uuid.UUID

// Value implements driver.Valuer
func (l TagIDs) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner
func (l *TagIDs) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("unsupported tag id list type %T", value)
	}
}

// Contains returns true if the list references the given tag
func (l TagIDs) Contains(id uuid.UUID) bool {
	for _, v := range l {
		if v == id {
			return true
		}
	}
	return false
}

// Todo represents a single work item owned by one user. Title and comments
// hold ciphertext at rest; encryption and decryption happen at the service
// boundary, never here.
type Todo struct {
	shared.BaseEntity
	OwnerID         string          `gorm:"type:varchar(64);not null;index"`
	Title           string          `gorm:"type:text;not null"`
	Comments        string          `gorm:"type:text"`
	Status          string          `gorm:"type:varchar(50);not null"`
	Type            string          `gorm:"type:varchar(50)"`
	EstimatedEffort decimal.Decimal `gorm:"type:numeric(4,2);not null"`
	ActualEffort    decimal.Decimal `gorm:"type:numeric(4,2);not null"`
	DueDate         time.Time       `gorm:"not null;index"`
	Tags            TagIDs          `gorm:"type:text"`
	Version         int             `gorm:"not null;default:1"`
}

// TableName returns the table name for GORM
func (Todo) TableName() string {
	return "todos"
}

// NewTodo creates a todo for a single due date. Title and comments are
// expected to be ciphertext already.
func NewTodo(ownerID, title, comments, status, typ string, eta decimal.Decimal, dueDate time.Time, tags TagIDs) (*Todo, error) {
	if ownerID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Todo owner is required")
	}
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Todo title is required")
	}
	if strings.TrimSpace(status) == "" {
		return nil, shared.NewDomainError("INVALID_STATUS", "Todo status is required")
	}
	if err := ValidateEstimatedEffort(eta); err != nil {
		return nil, err
	}

	return &Todo{
		BaseEntity:      shared.NewBaseEntity(),
		OwnerID:         ownerID,
		Title:           title,
		Comments:        comments,
		Status:          status,
		Type:            typ,
		EstimatedEffort: eta,
		ActualEffort:    decimal.Zero,
		DueDate:         dueDate,
		Tags:            tags,
		Version:         1,
	}, nil
}

// Update replaces the mutable fields in place. Title and comments are
// ciphertext. Actual effort is mandatory once the status is terminal.
func (t *Todo) Update(title, comments, status, typ string, ata decimal.Decimal, tags TagIDs) error {
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Todo title is required")
	}
	if strings.TrimSpace(status) == "" {
		return shared.NewDomainError("INVALID_STATUS", "Todo status is required")
	}
	if err := ValidateActualEffort(ata); err != nil {
		return err
	}
	if IsTerminalStatus(status) && ata.IsZero() {
		return shared.NewDomainError("INVALID_EFFORT", "Actual effort is required for a terminal status")
	}

	t.Title = title
	t.Comments = comments
	t.Status = status
	t.Type = typ
	t.ActualEffort = ata
	t.Tags = tags
	t.Version++
	t.Touch()
	return nil
}

// IsCompleted returns true if the todo has reached "Completed"
func (t *Todo) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// IsTerminalStatus returns true for statuses that require actual effort
func IsTerminalStatus(status string) bool {
	return status == StatusCompleted || status == StatusOnHold
}

// ValidateEstimatedEffort checks the estimate against the effort bounds:
// at least 0.25, at most 8, in quarter-unit steps.
func ValidateEstimatedEffort(eta decimal.Decimal) error {
	if eta.LessThan(MinEstimatedEffort) {
		return shared.NewDomainError("INVALID_EFFORT", "Todo eta should be greater than 0.25")
	}
	if eta.GreaterThan(MaxEffort) {
		return shared.NewDomainError("INVALID_EFFORT", "Todo eta cannot exceed 8")
	}
	if !eta.Mod(effortStep).IsZero() {
		return shared.NewDomainError("INVALID_EFFORT", "Todo eta must be a multiple of 0.25")
	}
	return nil
}

// ValidateActualEffort checks the actual effort against the effort bounds
func ValidateActualEffort(ata decimal.Decimal) error {
	if ata.IsNegative() {
		return shared.NewDomainError("INVALID_EFFORT", "Todo ata is invalid")
	}
	if ata.GreaterThan(MaxEffort) {
		return shared.NewDomainError("INVALID_EFFORT", "Todo ata cannot exceed 8")
	}
	return nil
}
