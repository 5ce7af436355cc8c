package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/tag"
)

// GormTagRepository implements tag.TagRepository using GORM
type GormTagRepository struct {
	db *gorm.DB
}

// NewGormTagRepository creates a new GORM-based tag repository
func NewGormTagRepository(db *gorm.DB) *GormTagRepository {
	return &GormTagRepository{db: db}
}

// FindByID finds a tag by its ID
func (r *GormTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	var t tag.Tag
	err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByIDForOwner finds a tag by ID owned by the given user
func (r *GormTagRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, ownerID string) (*tag.Tag, error) {
	var t tag.Tag
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

// FindAll finds every tag regardless of scope
func (r *GormTagRepository) FindAll(ctx context.Context) ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

// FindCommon finds all tags with no owning user
func (r *GormTagRepository) FindCommon(ctx context.Context) ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id IS NULL").
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

// FindByOwner finds all tags owned by the given user
func (r *GormTagRepository) FindByOwner(ctx context.Context, ownerID string) ([]tag.Tag, error) {
	var tags []tag.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

// FindTeamByOwners finds all "team"-category tags owned by any of the given
// users. An empty owner list short-circuits to no rows.
func (r *GormTagRepository) FindTeamByOwners(ctx context.Context, ownerIDs []string) ([]tag.Tag, error) {
	if len(ownerIDs) == 0 {
		return []tag.Tag{}, nil
	}
	var tags []tag.Tag
	err := r.db.WithContext(ctx).
		Where("owner_id IN ? AND category = ?", ownerIDs, tag.CategoryTeam).
		Order("name ASC").
		Find(&tags).Error
	return tags, err
}

// ExistsInScope reports whether a tag with the given name is already visible
// to the user: owned by the user, a team tag of one of the managers, or common.
func (r *GormTagRepository) ExistsInScope(ctx context.Context, ownerID string, managerIDs []string, name string) (bool, error) {
	query := r.db.WithContext(ctx).Model(&tag.Tag{}).Where("name = ?", name)

	scope := r.db.Where("owner_id = ?", ownerID).
		Or("owner_id IS NULL")
	if len(managerIDs) > 0 {
		scope = scope.Or("owner_id IN ? AND category = ?", managerIDs, tag.CategoryTeam)
	}

	var count int64
	if err := query.Where(scope).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsCommon reports whether a common tag with the given name exists
func (r *GormTagRepository) ExistsCommon(ctx context.Context, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&tag.Tag{}).
		Where("owner_id IS NULL AND name = ?", name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistByIDs reports whether every given tag ID resolves, returning the first
// ID that does not
func (r *GormTagRepository) ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, uuid.UUID, error) {
	for _, id := range ids {
		var count int64
		err := r.db.WithContext(ctx).Model(&tag.Tag{}).
			Where("id = ?", id).
			Count(&count).Error
		if err != nil {
			return false, uuid.Nil, err
		}
		if count == 0 {
			return false, id, nil
		}
	}
	return true, uuid.Nil, nil
}

// Save creates or updates a tag
func (r *GormTagRepository) Save(ctx context.Context, t *tag.Tag) error {
	return r.db.WithContext(ctx).Save(t).Error
}

// Delete deletes a tag by ID
func (r *GormTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&tag.Tag{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ tag.TagRepository = (*GormTagRepository)(nil)
