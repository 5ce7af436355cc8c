package tag

import (
	"context"

	"github.com/google/uuid"
)

// TagRepository defines the interface for tag persistence
type TagRepository interface {
	// FindByID finds a tag by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Tag, error)

	// FindByIDForOwner finds a tag by ID owned by the given user
	FindByIDForOwner(ctx context.Context, id uuid.UUID, ownerID string) (*Tag, error)

	// FindAll finds every tag regardless of scope
	FindAll(ctx context.Context) ([]Tag, error)

	// FindCommon finds all tags with no owning user
	FindCommon(ctx context.Context) ([]Tag, error)

	// FindByOwner finds all tags owned by the given user
	FindByOwner(ctx context.Context, ownerID string) ([]Tag, error)

	// FindTeamByOwners finds all "team"-category tags owned by any of the
	// given users
	FindTeamByOwners(ctx context.Context, ownerIDs []string) ([]Tag, error)

	// ExistsInScope reports whether a tag with the given name exists within
	// the user's visibility scope: owned by the user, owned by one of the
	// managers with the "team" category, or common
	ExistsInScope(ctx context.Context, ownerID string, managerIDs []string, name string) (bool, error)

	// ExistsCommon reports whether a common tag with the given name exists
	ExistsCommon(ctx context.Context, name string) (bool, error)

	// ExistByIDs reports whether every given tag ID resolves, returning the
	// first ID that does not
	ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, uuid.UUID, error)

	// Save creates or updates a tag
	Save(ctx context.Context, tag *Tag) error

	// Delete deletes a tag by ID
	Delete(ctx context.Context, id uuid.UUID) error
}
