package user

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"shareit/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	args := m.Called(ctx, u)
	if u != nil {
		u.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func TestService_Create_Success(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	service := NewService(repo)

	u, err := service.Create(context.Background(), CreateUserRequest{Name: "Rita", Email: "rita@example.com"})

	assert.NoError(t, err)
	assert.Equal(t, int64(999), u.ID)
	assert.Equal(t, "Rita", u.Name)
}

func TestService_Create_BlankName(t *testing.T) {
	service := NewService(new(MockUserRepository))

	_, err := service.Create(context.Background(), CreateUserRequest{Name: "   ", Email: "rita@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestService_Create_DuplicateEmail(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(errors.New("UNIQUE constraint failed: users.email"))
	service := NewService(repo)

	_, err := service.Create(context.Background(), CreateUserRequest{Name: "Rita", Email: "rita@example.com"})
	assert.ErrorIs(t, err, ErrConflict)
}

func TestService_GetByID_NotFound(t *testing.T) {
	repo := new(MockUserRepository)
	repo.On("GetByID", mock.Anything, int64(404)).Return(nil, gorm.ErrRecordNotFound)
	service := NewService(repo)

	_, err := service.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
