package service

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

func TestTagService_List(t *testing.T) {
	mockRepo := new(MockTagRepository)
	mockRepo.On("ListByOwner", mock.Anything, uint(3), true).Return([]repository.TagWithCount{
		{ID: 2, Name: "Vegan", RecipeCount: 4},
	}, nil)

	service := NewTagService(mockRepo)
	rows, err := service.List(context.Background(), 3, true)

	assert.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, int64(4), rows[0].RecipeCount)
	mockRepo.AssertExpectations(t)
}

func TestTagService_Create(t *testing.T) {
	t.Run("successful create", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(tag *model.Tag) bool {
			return tag.UserID == 3 && tag.Name == "Dessert"
		})).Return(nil)

		service := NewTagService(mockRepo)
		tag, err := service.Create(context.Background(), 3, "Dessert")

		assert.NoError(t, err)
		assert.Equal(t, "Dessert", tag.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("duplicate name for the same owner", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Tag")).
			Return(&mysql.MySQLError{Number: 1062})

		service := NewTagService(mockRepo)
		tag, err := service.Create(context.Background(), 3, "Dessert")

		assert.Nil(t, tag)
		var fieldErrs errors.FieldErrors
		assert.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "name")
	})
}

func TestTagService_Get(t *testing.T) {
	t.Run("tag owned by someone else reads as not found", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("GetWithCount", mock.Anything, uint(3), uint(9)).
			Return(nil, gorm.ErrRecordNotFound)

		service := NewTagService(mockRepo)
		row, err := service.Get(context.Background(), 3, 9)

		assert.Nil(t, row)
		assert.Equal(t, errors.ErrNotFound, err)
	})

	t.Run("count passes through unchanged", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("GetWithCount", mock.Anything, uint(3), uint(9)).
			Return(&repository.TagWithCount{ID: 9, Name: "Vegan", RecipeCount: 12}, nil)

		service := NewTagService(mockRepo)
		row, err := service.Get(context.Background(), 3, 9)

		assert.NoError(t, err)
		assert.Equal(t, int64(12), row.RecipeCount)
	})
}

func TestTagService_Update(t *testing.T) {
	t.Run("rename", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(3), uint(9)).
			Return(&model.Tag{ID: 9, UserID: 3, Name: "Old"}, nil)
		mockRepo.On("Update", mock.Anything, mock.MatchedBy(func(tag *model.Tag) bool {
			return tag.ID == 9 && tag.Name == "New"
		})).Return(nil)

		service := NewTagService(mockRepo)
		tag, err := service.Update(context.Background(), 3, 9, "New")

		assert.NoError(t, err)
		assert.Equal(t, "New", tag.Name)
		mockRepo.AssertExpectations(t)
	})

	t.Run("rename to an existing name", func(t *testing.T) {
		mockRepo := new(MockTagRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, uint(3), uint(9)).
			Return(&model.Tag{ID: 9, UserID: 3, Name: "Old"}, nil)
		mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Tag")).
			Return(&mysql.MySQLError{Number: 1062})

		service := NewTagService(mockRepo)
		tag, err := service.Update(context.Background(), 3, 9, "Taken")

		assert.Nil(t, tag)
		var fieldErrs errors.FieldErrors
		assert.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "name")
	})
}

func TestTagService_Delete(t *testing.T) {
	mockRepo := new(MockTagRepository)
	mockRepo.On("Delete", mock.Anything, uint(3), uint(9)).Return(gorm.ErrRecordNotFound)

	service := NewTagService(mockRepo)
	err := service.Delete(context.Background(), 3, 9)

	assert.Equal(t, errors.ErrNotFound, err)
}

func TestIngredientService_Create(t *testing.T) {
	t.Run("duplicate name for the same owner", func(t *testing.T) {
		mockRepo := new(MockIngredientRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Ingredient")).
			Return(&mysql.MySQLError{Number: 1062})

		service := NewIngredientService(mockRepo)
		ingredient, err := service.Create(context.Background(), 3, "Salt")

		assert.Nil(t, ingredient)
		var fieldErrs errors.FieldErrors
		assert.ErrorAs(t, err, &fieldErrs)
		assert.Contains(t, fieldErrs, "name")
	})
}

func TestIngredientService_List(t *testing.T) {
	mockRepo := new(MockIngredientRepository)
	mockRepo.On("ListByOwner", mock.Anything, uint(3), false).Return([]repository.IngredientWithCount{
		{ID: 5, Name: "Salt", RecipeCount: 2, Images: []model.IngredientImage{{ID: 1, IngredientID: 5}}},
		{ID: 4, Name: "Pepper", RecipeCount: 0},
	}, nil)

	service := NewIngredientService(mockRepo)
	rows, err := service.List(context.Background(), 3, false)

	assert.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Len(t, rows[0].Images, 1)
	mockRepo.AssertExpectations(t)
}
