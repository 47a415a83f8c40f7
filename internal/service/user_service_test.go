package service

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
)

func TestUserService_GetProfile(t *testing.T) {
	t.Run("profile found", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).
			Return(&model.User{ID: 7, Email: "test@example.com"}, nil)

		service := NewUserService(mockRepo, newFakeCache())
		user, err := service.GetProfile(context.Background(), 7)

		assert.NoError(t, err)
		assert.Equal(t, "test@example.com", user.Email)
	})

	t.Run("missing user", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(nil, gorm.ErrRecordNotFound)

		service := NewUserService(mockRepo, newFakeCache())
		user, err := service.GetProfile(context.Background(), 7)

		assert.Nil(t, user)
		assert.Equal(t, errors.ErrNotFound, err)
	})
}

func TestUserService_UpdateProfile(t *testing.T) {
	stored := func() *model.User {
		return &model.User{
			ID:           7,
			Email:        "old@example.com",
			PasswordHash: "old-hash",
			FirstName:    "Old",
			LastName:     "Name",
		}
	}

	t.Run("nil fields stay untouched", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "old@example.com" && u.FirstName == "Updated" && u.PasswordHash == "old-hash"
		})).Return(nil)

		first := "Updated"
		service := NewUserService(mockRepo, newFakeCache())
		user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileInput{FirstName: &first})

		assert.NoError(t, err)
		assert.Equal(t, "Updated", user.FirstName)
		mockRepo.AssertExpectations(t)
	})

	t.Run("new email is normalized", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *model.User) bool {
			return u.Email == "new@example.com"
		})).Return(nil)

		email := "NEW@Example.com"
		service := NewUserService(mockRepo, newFakeCache())
		user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileInput{Email: &email})

		assert.NoError(t, err)
		assert.Equal(t, "new@example.com", user.Email)
	})

	t.Run("new password is rehashed", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).Return(nil)

		password := "new-secret"
		service := NewUserService(mockRepo, newFakeCache())
		user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileInput{Password: &password})

		assert.NoError(t, err)
		assert.NotEqual(t, "old-hash", user.PasswordHash)
		assert.NotEqual(t, password, user.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)))
	})

	t.Run("email collision on the unique index", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		mockRepo.On("FindByID", mock.Anything, uint(7)).Return(stored(), nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.User")).
			Return(&mysql.MySQLError{Number: 1062})

		email := "taken@example.com"
		service := NewUserService(mockRepo, newFakeCache())
		user, err := service.UpdateProfile(context.Background(), 7, UpdateProfileInput{Email: &email})

		assert.Nil(t, user)
		assert.Equal(t, errors.ErrEmailTaken, err)
	})
}
