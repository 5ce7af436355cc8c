package tag

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/workhive/todos-backend/internal/domain/identity"
	"github.com/workhive/todos-backend/internal/domain/shared"
	"github.com/workhive/todos-backend/internal/domain/tag"
	"github.com/workhive/todos-backend/internal/domain/todo"
)

// MockTagRepository is a mock implementation of TagRepository
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) FindByID(ctx context.Context, id uuid.UUID) (*tag.Tag, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tag.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, ownerID string) (*tag.Tag, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*tag.Tag), args.Error(1)
}

func (m *MockTagRepository) FindAll(ctx context.Context) ([]tag.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tag.Tag), args.Error(1)
}

func (m *MockTagRepository) FindCommon(ctx context.Context) ([]tag.Tag, error) {
	args := m.Called(ctx)
	return args.Get(0).([]tag.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByOwner(ctx context.Context, ownerID string) ([]tag.Tag, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).([]tag.Tag), args.Error(1)
}

func (m *MockTagRepository) FindTeamByOwners(ctx context.Context, ownerIDs []string) ([]tag.Tag, error) {
	args := m.Called(ctx, ownerIDs)
	return args.Get(0).([]tag.Tag), args.Error(1)
}

func (m *MockTagRepository) ExistsInScope(ctx context.Context, ownerID string, managerIDs []string, name string) (bool, error) {
	args := m.Called(ctx, ownerID, managerIDs, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) ExistsCommon(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockTagRepository) ExistByIDs(ctx context.Context, ids []uuid.UUID) (bool, uuid.UUID, error) {
	args := m.Called(ctx, ids)
	return args.Bool(0), args.Get(1).(uuid.UUID), args.Error(2)
}

func (m *MockTagRepository) Save(ctx context.Context, t *tag.Tag) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockDirectoryService is a mock implementation of DirectoryService
type MockDirectoryService struct {
	mock.Mock
}

func (m *MockDirectoryService) GetManagers(ctx context.Context, userID string) ([]identity.DirectoryUser, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]identity.DirectoryUser), args.Error(1)
}

// MockTodoRepository is a mock implementation of TodoRepository
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) FindByID(ctx context.Context, id uuid.UUID) (*todo.Todo, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByIDForOwner(ctx context.Context, id uuid.UUID, ownerID string) (*todo.Todo, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByDate(ctx context.Context, ownerID string, date time.Time) ([]todo.Todo, error) {
	args := m.Called(ctx, ownerID, date)
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindInWindow(ctx context.Context, ownerID string, start, end time.Time) ([]todo.Todo, error) {
	args := m.Called(ctx, ownerID, start, end)
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) FindByTagInWindow(ctx context.Context, ownerID string, tagID uuid.UUID, from, to time.Time) ([]todo.Todo, error) {
	args := m.Called(ctx, ownerID, tagID, from, to)
	return args.Get(0).([]todo.Todo), args.Error(1)
}

func (m *MockTodoRepository) Save(ctx context.Context, t *todo.Todo) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTodoRepository) DeleteForOwner(ctx context.Context, id uuid.UUID, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockTodoRepository) DeleteUncompletedByDate(ctx context.Context, ownerID string, date time.Time) (int64, error) {
	args := m.Called(ctx, ownerID, date)
	return args.Get(0).(int64), args.Error(1)
}

// MockCipherer is a pass-through cipher that tags values instead of sealing
// them, keeping test assertions readable
type MockCipherer struct {
	mock.Mock
}

func (m *MockCipherer) Encrypt(plaintext string) (string, error) {
	args := m.Called(plaintext)
	return args.String(0), args.Error(1)
}

func (m *MockCipherer) Decrypt(ciphertext string) (string, error) {
	args := m.Called(ciphertext)
	return args.String(0), args.Error(1)
}

func assertDomainCode(t *testing.T, err error, code string) {
	t.Helper()
	var derr *shared.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, code, derr.Code)
}

func managerUser(id string) identity.DirectoryUser {
	return identity.DirectoryUser{UserID: id, Name: "Manager " + id, Role: "manager"}
}

func mustTag(t *testing.T, ownerID, name, category string) *tag.Tag {
	t.Helper()
	tg, err := tag.NewTag(ownerID, name, category)
	require.NoError(t, err)
	return tg
}

func mustCommonTag(t *testing.T, name string) *tag.Tag {
	t.Helper()
	tg, err := tag.NewCommonTag(name)
	require.NoError(t, err)
	return tg
}

func TestTagService_Resolve_OrdersScopes(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	common := mustCommonTag(t, "Admin")
	team := mustTag(t, "mgr-1", "Platform", tag.CategoryTeam)
	own := mustTag(t, "user-1", "Errands", "")

	directory.On("GetManagers", ctx, "user-1").Return([]identity.DirectoryUser{managerUser("mgr-1")}, nil)
	tagRepo.On("FindCommon", ctx).Return([]tag.Tag{*common}, nil)
	tagRepo.On("FindTeamByOwners", ctx, []string{"mgr-1"}).Return([]tag.Tag{*team}, nil)
	tagRepo.On("FindByOwner", ctx, "user-1").Return([]tag.Tag{*own}, nil)

	result, err := service.Resolve(ctx, "user-1")

	require.NoError(t, err)
	require.Len(t, result, 3)
	// Common first, then team, then own
	assert.Equal(t, "Admin", result[0].Name)
	assert.True(t, result[0].Common)
	assert.Equal(t, "Platform", result[1].Name)
	assert.Equal(t, "Errands", result[2].Name)
	tagRepo.AssertExpectations(t)
	directory.AssertExpectations(t)
}

func TestTagService_Resolve_DirectoryFailure(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	directory.On("GetManagers", ctx, "user-1").Return(nil, shared.ErrUpstreamUnavailable)

	_, err := service.Resolve(ctx, "user-1")

	assert.ErrorIs(t, err, shared.ErrUpstreamUnavailable)
	tagRepo.AssertNotCalled(t, "FindCommon", mock.Anything)
}

func TestTagService_Resolve_RequiresUser(t *testing.T) {
	service := NewTagService(new(MockTagRepository), new(MockDirectoryService), zap.NewNop())

	_, err := service.Resolve(context.Background(), "")

	assertDomainCode(t, err, "INVALID_OWNER")
}

func TestTagService_CreateTag_Success(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	directory.On("GetManagers", ctx, "user-1").Return([]identity.DirectoryUser{}, nil)
	tagRepo.On("ExistsInScope", ctx, "user-1", []string{}, "Errands").Return(false, nil)
	tagRepo.On("Save", ctx, mock.AnythingOfType("*tag.Tag")).Return(nil)

	result, err := service.CreateTag(ctx, "user-1", CreateTagRequest{Name: "Errands"})

	require.NoError(t, err)
	assert.Equal(t, "Errands", result.Name)
	require.NotNil(t, result.OwnerID)
	assert.Equal(t, "user-1", *result.OwnerID)
	assert.False(t, result.Common)
	tagRepo.AssertExpectations(t)
}

func TestTagService_CreateTag_DuplicateInScope(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	directory.On("GetManagers", ctx, "user-1").Return([]identity.DirectoryUser{managerUser("mgr-1")}, nil)
	tagRepo.On("ExistsInScope", ctx, "user-1", []string{"mgr-1"}, "Platform").Return(true, nil)

	_, err := service.CreateTag(ctx, "user-1", CreateTagRequest{Name: "Platform"})

	assertDomainCode(t, err, "ALREADY_EXISTS")
	tagRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestTagService_RenameTag_ChecksNameBeforeOwnership(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	// The target tag does not even belong to the user, but the name conflict
	// is reported first
	directory.On("GetManagers", ctx, "user-1").Return([]identity.DirectoryUser{}, nil)
	tagRepo.On("ExistsInScope", ctx, "user-1", []string{}, "Taken").Return(true, nil)

	_, err := service.RenameTag(ctx, "user-1", uuid.New(), RenameTagRequest{Name: "Taken"})

	assertDomainCode(t, err, "ALREADY_EXISTS")
	tagRepo.AssertNotCalled(t, "FindByIDForOwner", mock.Anything, mock.Anything, mock.Anything)
}

func TestTagService_RenameTag_Success(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	existing := mustTag(t, "user-1", "Old Name", "")

	directory.On("GetManagers", ctx, "user-1").Return([]identity.DirectoryUser{}, nil)
	tagRepo.On("ExistsInScope", ctx, "user-1", []string{}, "New Name").Return(false, nil)
	tagRepo.On("FindByIDForOwner", ctx, existing.ID, "user-1").Return(existing, nil)
	tagRepo.On("Save", ctx, existing).Return(nil)

	result, err := service.RenameTag(ctx, "user-1", existing.ID, RenameTagRequest{Name: "New Name"})

	require.NoError(t, err)
	assert.Equal(t, "New Name", result.Name)
	tagRepo.AssertExpectations(t)
}

func TestTagService_DeleteTag_NotFoundForOtherOwner(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	id := uuid.New()
	tagRepo.On("FindByIDForOwner", ctx, id, "user-1").Return(nil, shared.ErrNotFound)

	err := service.DeleteTag(ctx, "user-1", id)

	assert.ErrorIs(t, err, shared.ErrNotFound)
	tagRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTagService_DeleteTag_Success(t *testing.T) {
	tagRepo := new(MockTagRepository)
	directory := new(MockDirectoryService)
	service := NewTagService(tagRepo, directory, zap.NewNop())
	ctx := context.Background()

	existing := mustTag(t, "user-1", "Short Lived", "")
	tagRepo.On("FindByIDForOwner", ctx, existing.ID, "user-1").Return(existing, nil)
	tagRepo.On("Delete", ctx, existing.ID).Return(nil)

	err := service.DeleteTag(ctx, "user-1", existing.ID)

	require.NoError(t, err)
	tagRepo.AssertExpectations(t)
}
