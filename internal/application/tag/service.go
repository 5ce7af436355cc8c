// Package tag implements the tag use cases: per-user tag management, the
// shared common-tag surface, and effort analytics.
package tag

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/identity"
	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/tag"
)

// TagService handles tag-related application logic for a single user's scope
type TagService struct {
	tagRepo   tag.TagRepository
	directory identity.DirectoryService
	logger    *zap.Logger
}

// NewTagService creates a new tag service
func NewTagService(tagRepo tag.TagRepository, directory identity.DirectoryService, logger *zap.Logger) *TagService {
	return &TagService{
		tagRepo:   tagRepo,
		directory: directory,
		logger:    logger.Named("tag-service"),
	}
}

// managerIDs resolves the user's manager chain through the directory
func (s *TagService) managerIDs(ctx context.Context, userID string) ([]string, error) {
	managers, err := s.directory.GetManagers(ctx, userID)
	if err != nil {
		return nil, err
	}
	return identity.ManagerIDs(managers), nil
}

// Resolve returns every tag visible to the user: common tags, the "team"
// tags of the user's managers, and the user's own tags, in that order.
func (s *TagService) Resolve(ctx context.Context, userID string) ([]TagResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	managerIDs, err := s.managerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	common, err := s.tagRepo.FindCommon(ctx)
	if err != nil {
		return nil, err
	}
	team, err := s.tagRepo.FindTeamByOwners(ctx, managerIDs)
	if err != nil {
		return nil, err
	}
	own, err := s.tagRepo.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	visible := make([]tag.Tag, 0, len(common)+len(team)+len(own))
	visible = append(visible, common...)
	visible = append(visible, team...)
	visible = append(visible, own...)

	return ToTagResponses(visible), nil
}

// GetTag returns a single tag by ID regardless of scope
func (s *TagService) GetTag(ctx context.Context, id uuid.UUID) (*TagResponse, error) {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTagResponse(t)
	return &resp, nil
}

// CreateTag creates a user-owned tag. The name must be unique within the
// user's entire visibility scope, including common tags and the managers'
// team tags, so a personal tag can never shadow a shared one.
func (s *TagService) CreateTag(ctx context.Context, userID string, req CreateTagRequest) (*TagResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	managerIDs, err := s.managerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.tagRepo.ExistsInScope(ctx, userID, managerIDs, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tag with this name already exists")
	}

	t, err := tag.NewTag(userID, req.Name, req.Category)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Tag created",
		zap.String("tag_id", t.ID.String()),
		zap.String("owner_id", userID),
		zap.String("name", t.Name))

	resp := ToTagResponse(t)
	return &resp, nil
}

// RenameTag renames a user-owned tag. Name availability within the user's
// scope is checked before ownership, so a conflicting name reports
// ALREADY_EXISTS even when the tag itself would not resolve.
func (s *TagService) RenameTag(ctx context.Context, userID string, id uuid.UUID, req RenameTagRequest) (*TagResponse, error) {
	if userID == "" {
		return nil, shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	managerIDs, err := s.managerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}

	exists, err := s.tagRepo.ExistsInScope(ctx, userID, managerIDs, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Tag with this name already exists")
	}

	t, err := s.tagRepo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return nil, err
	}

	if err := t.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Tag renamed",
		zap.String("tag_id", t.ID.String()),
		zap.String("owner_id", userID),
		zap.String("name", t.Name))

	resp := ToTagResponse(t)
	return &resp, nil
}

// DeleteTag deletes a user-owned tag. Tags owned by someone else, team tags
// included, resolve as NOT_FOUND rather than FORBIDDEN so the caller learns
// nothing about other users' tags.
func (s *TagService) DeleteTag(ctx context.Context, userID string, id uuid.UUID) error {
	if userID == "" {
		return shared.NewDomainError("INVALID_OWNER", "User id is required")
	}

	t, err := s.tagRepo.FindByIDForOwner(ctx, id, userID)
	if err != nil {
		return err
	}
	if err := s.tagRepo.Delete(ctx, t.ID); err != nil {
		return err
	}

	s.logger.Info("Tag deleted",
		zap.String("tag_id", id.String()),
		zap.String("owner_id", userID))
	return nil
}
