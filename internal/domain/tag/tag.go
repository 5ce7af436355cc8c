package tag

import (
	"strings"

	"github.com/workhive/todos-backend/internal/domain/shared"
)

// CategoryTeam is the only category value with special semantics: a tag
// owned by a manager and flagged "team" is visible to that manager's reports.
const CategoryTeam = "team"

// MaxNameLength is the maximum length of a tag name
const MaxNameLength = 100

// Tag represents a todo label. Ownership is mutually exclusive by
// construction: a tag either belongs to a single user (OwnerID set) or is a
// common tag visible to every caller (OwnerID nil).
type Tag struct {
	shared.BaseEntity
	OwnerID  *string `gorm:"type:varchar(64);index"`
	Name     string  `gorm:"type:varchar(100);not null"`
	Category string  `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (Tag) TableName() string {
	return "tags"
}

// NewTag creates a new user-owned tag
func NewTag(ownerID, name, category string) (*Tag, error) {
	if ownerID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "Tag owner is required")
	}
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(),
		OwnerID:    &ownerID,
		Name:       name,
		Category:   category,
	}, nil
}

// NewCommonTag creates a tag with no owner, visible to all callers
func NewCommonTag(name string) (*Tag, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	return &Tag{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
	}, nil
}

// Rename changes the tag name. Scoped uniqueness is the caller's concern.
func (t *Tag) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	t.Name = name
	t.Touch()
	return nil
}

// IsCommon returns true if the tag has no owning user
func (t *Tag) IsCommon() bool {
	return t.OwnerID == nil
}

// IsTeam returns true if the tag carries the "team" category
func (t *Tag) IsTeam() bool {
	return t.Category == CategoryTeam
}

// OwnedBy returns true if the tag is owned by the given user
func (t *Tag) OwnedBy(userID string) bool {
	return t.OwnerID != nil && *t.OwnerID == userID
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return shared.NewDomainError("INVALID_NAME", "Tag name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return shared.NewDomainError("INVALID_NAME", "Tag name cannot exceed 100 characters")
	}
	return nil
}
