package tag

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/tag"
)

// CommonTagService handles the shared tag surface. Callers are expected to
// be authenticated operators; the service itself carries no per-user scope.
type CommonTagService struct {
	tagRepo tag.TagRepository
	logger  *zap.Logger
}

// NewCommonTagService creates a new common-tag service
func NewCommonTagService(tagRepo tag.TagRepository, logger *zap.Logger) *CommonTagService {
	return &CommonTagService{
		tagRepo: tagRepo,
		logger:  logger.Named("common-tag-service"),
	}
}

// ListCommon returns all common tags
func (s *CommonTagService) ListCommon(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tagRepo.FindCommon(ctx)
	if err != nil {
		return nil, err
	}
	return ToTagResponses(tags), nil
}

// ListAll returns every tag in the system regardless of owner
func (s *CommonTagService) ListAll(ctx context.Context) ([]TagResponse, error) {
	tags, err := s.tagRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return ToTagResponses(tags), nil
}

// GetCommonTag returns a common tag by ID. An owned tag with the same ID is
// reported as NOT_FOUND on this surface.
func (s *CommonTagService) GetCommonTag(ctx context.Context, id uuid.UUID) (*TagResponse, error) {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsCommon() {
		return nil, shared.ErrNotFound
	}
	resp := ToTagResponse(t)
	return &resp, nil
}

// CreateCommonTag creates a tag visible to every user. The name must be
// unique among common tags.
func (s *CommonTagService) CreateCommonTag(ctx context.Context, req CreateCommonTagRequest) (*TagResponse, error) {
	exists, err := s.tagRepo.ExistsCommon(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Common tag with this name already exists")
	}

	t, err := tag.NewCommonTag(req.Name)
	if err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Common tag created",
		zap.String("tag_id", t.ID.String()),
		zap.String("name", t.Name))

	resp := ToTagResponse(t)
	return &resp, nil
}

// RenameCommonTag renames a common tag, keeping the name unique among common
// tags
func (s *CommonTagService) RenameCommonTag(ctx context.Context, id uuid.UUID, req RenameTagRequest) (*TagResponse, error) {
	exists, err := s.tagRepo.ExistsCommon(ctx, req.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Common tag with this name already exists")
	}

	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !t.IsCommon() {
		return nil, shared.ErrNotFound
	}

	if err := t.Rename(req.Name); err != nil {
		return nil, err
	}
	if err := s.tagRepo.Save(ctx, t); err != nil {
		return nil, err
	}

	s.logger.Info("Common tag renamed",
		zap.String("tag_id", t.ID.String()),
		zap.String("name", t.Name))

	resp := ToTagResponse(t)
	return &resp, nil
}

// DeleteCommonTag deletes a common tag
func (s *CommonTagService) DeleteCommonTag(ctx context.Context, id uuid.UUID) error {
	t, err := s.tagRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !t.IsCommon() {
		return shared.ErrNotFound
	}
	if err := s.tagRepo.Delete(ctx, t.ID); err != nil {
		return err
	}

	s.logger.Info("Common tag deleted", zap.String("tag_id", id.String()))
	return nil
}
