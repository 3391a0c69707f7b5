package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "taskdesk/internal/errors"
	"taskdesk/internal/model"
)

// nil cache degrades every operation to a no-op, which is exactly what unit
// tests want.
func newUserService(repo *MockUserRepository) UserService {
	return NewUserService(repo, nil)
}

func TestUserService_GetUser_NotFound(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByID", mock.Anything, uint(1)).Return(nil, gorm.ErrRecordNotFound)

	_, err := newUserService(mockRepo).GetUser(context.Background(), 1)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestUserService_ListUsers_Defaults(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, "a@", 0, 10).Return([]model.User{{ID: 1, Email: "a@x.com"}}, int64(1), nil)

	total, users, err := newUserService(mockRepo).ListUsers(context.Background(), 0, 0, "a@")
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, users, 1)
	mockRepo.AssertExpectations(t)
}

func TestUserService_ListUsers_Offset(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("List", mock.Anything, "", 10, 5).Return([]model.User{}, int64(12), nil)

	total, users, err := newUserService(mockRepo).ListUsers(context.Background(), 3, 5, "")
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Empty(t, users)
	mockRepo.AssertExpectations(t)
}

func TestUserService_CreateUser_DuplicateEmail(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("FindByEmail", mock.Anything, "dup@x.com").Return(&model.User{Email: "dup@x.com"}, nil)

	_, err := newUserService(mockRepo).CreateUser(context.Background(), "dup@x.com", "password123", "")
	assert.ErrorIs(t, err, apperrors.ErrEmailInUse)
}

func TestUserService_UpdateUser_PartialFields(t *testing.T) {
	mockRepo := new(MockUserRepository)
	existing := &model.User{ID: 4, Email: "old@x.com", Role: model.RoleUser, PasswordHash: "hash"}
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.Email == "new@x.com" && u.Role == model.RoleAdmin && u.PasswordHash == "hash"
	})).Return(nil)

	email := "new@x.com"
	role := model.RoleAdmin
	user, err := newUserService(mockRepo).UpdateUser(context.Background(), 4, UserUpdate{Email: &email, Role: &role})
	require.NoError(t, err)
	assert.Equal(t, "new@x.com", user.Email)
	mockRepo.AssertExpectations(t)
}

func TestUserService_UpdateUser_RehashesPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	existing := &model.User{ID: 4, Email: "u@x.com", PasswordHash: "old-hash"}
	mockRepo.On("FindByID", mock.Anything, uint(4)).Return(existing, nil)
	mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
		return u.PasswordHash != "old-hash" && u.PasswordHash != "newpassword"
	})).Return(nil)

	password := "newpassword"
	_, err := newUserService(mockRepo).UpdateUser(context.Background(), 4, UserUpdate{Password: &password})
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestUserService_DeleteUser_Missing(t *testing.T) {
	mockRepo := new(MockUserRepository)
	mockRepo.On("Delete", mock.Anything, uint(9)).Return(gorm.ErrRecordNotFound)

	err := newUserService(mockRepo).DeleteUser(context.Background(), 9)
	assert.Error(t, err)
}
