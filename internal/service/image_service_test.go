package service

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
)

// pngBytes encodes a tiny valid PNG for upload tests.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestValidateImage(t *testing.T) {
	t.Run("valid png passes at any size under the limit", func(t *testing.T) {
		ext, err := validateImage(pngBytes(t))
		assert.NoError(t, err)
		assert.Equal(t, ".png", ext)
	})

	t.Run("payload over the limit is rejected before decoding", func(t *testing.T) {
		data := make([]byte, MaxImageBytes+1)
		_, err := validateImage(data)
		assert.ErrorIs(t, err, errors.ErrImageTooLarge)
	})

	t.Run("payload exactly at the limit passes the size check", func(t *testing.T) {
		// Garbage bytes at the boundary: the size check passes, decoding fails.
		data := make([]byte, MaxImageBytes)
		_, err := validateImage(data)
		assert.Equal(t, errors.ErrInvalidImage, err)
	})

	t.Run("non-image payload is rejected", func(t *testing.T) {
		_, err := validateImage([]byte("not an image at all"))
		assert.Equal(t, errors.ErrInvalidImage, err)
	})
}

func newImageService(recipeRepo *MockRecipeRepository, ingredientRepo *MockIngredientRepository, recipeImages *MockRecipeImageRepository, ingredientImages *MockIngredientImageRepository, store *MockFileStore, cache Cache) ImageService {
	return NewImageService(recipeRepo, ingredientRepo, recipeImages, ingredientImages, store, cache)
}

func TestImageService_UploadRecipeImage(t *testing.T) {
	ownerID := uint(3)
	recipeID := uint(10)

	t.Run("missing parent is not found", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).Return(nil, gorm.ErrRecordNotFound)

		service := newImageService(recipeRepo, new(MockIngredientRepository), new(MockRecipeImageRepository), new(MockIngredientImageRepository), new(MockFileStore), newFakeCache())
		img, err := service.UploadRecipeImage(context.Background(), ownerID, recipeID, pngBytes(t))

		assert.Nil(t, img)
		assert.Equal(t, errors.ErrNotFound, err)
	})

	t.Run("parent owned by someone else is forbidden", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: 99}, nil)

		service := newImageService(recipeRepo, new(MockIngredientRepository), new(MockRecipeImageRepository), new(MockIngredientImageRepository), new(MockFileStore), newFakeCache())
		img, err := service.UploadRecipeImage(context.Background(), ownerID, recipeID, pngBytes(t))

		assert.Nil(t, img)
		assert.Equal(t, errors.ErrForbidden, err)
	})

	t.Run("successful upload stores blob then row", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		data := pngBytes(t)
		store := new(MockFileStore)
		store.On("Save", mock.Anything, mock.AnythingOfType("string"), data).Return(nil)

		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("Create", mock.Anything, mock.MatchedBy(func(img *model.RecipeImage) bool {
			return img.RecipeID == recipeID && img.FileSize == int64(len(data)) && img.ImagePath != ""
		})).Return(nil)

		service := newImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), store, newFakeCache())
		img, err := service.UploadRecipeImage(context.Background(), ownerID, recipeID, data)

		assert.NoError(t, err)
		assert.NotNil(t, img)
		assert.Contains(t, img.ImagePath, "recipes/10/")
		store.AssertExpectations(t)
		imageRepo.AssertExpectations(t)
	})

	t.Run("successful upload drops the cached recipe detail", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		store := new(MockFileStore)
		store.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RecipeImage")).Return(nil)

		cache := newFakeCache()
		cache.data[recipeCacheKey(ownerID, recipeID)] = []byte("stale detail")

		service := NewImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), store, cache)
		_, err := service.UploadRecipeImage(context.Background(), ownerID, recipeID, pngBytes(t))

		assert.NoError(t, err)
		_, stillCached := cache.data[recipeCacheKey(ownerID, recipeID)]
		assert.False(t, stillCached)
	})

	t.Run("failed upload keeps the cached recipe detail", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		cache := newFakeCache()
		cache.data[recipeCacheKey(ownerID, recipeID)] = []byte("current detail")

		service := NewImageService(recipeRepo, new(MockIngredientRepository), new(MockRecipeImageRepository), new(MockIngredientImageRepository), new(MockFileStore), cache)
		_, err := service.UploadRecipeImage(context.Background(), ownerID, recipeID, []byte("garbage"))

		assert.Equal(t, errors.ErrInvalidImage, err)
		_, stillCached := cache.data[recipeCacheKey(ownerID, recipeID)]
		assert.True(t, stillCached)
	})

	t.Run("row insert failure removes the stored blob", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		store := new(MockFileStore)
		store.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)
		store.On("Remove", mock.Anything, mock.AnythingOfType("string")).Return(nil)

		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.RecipeImage")).
			Return(assert.AnError)

		service := newImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), store, newFakeCache())
		img, err := service.UploadRecipeImage(context.Background(), ownerID, recipeID, pngBytes(t))

		assert.Nil(t, img)
		assert.Error(t, err)
		store.AssertCalled(t, "Remove", mock.Anything, mock.AnythingOfType("string"))
	})
}

func TestImageService_ReplaceRecipeImage(t *testing.T) {
	ownerID := uint(3)
	recipeID := uint(10)
	imageID := uint(7)

	t.Run("replacement writes a fresh path", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		oldPath := "recipes/10/old-key.png"
		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("FindByIDAndRecipe", mock.Anything, recipeID, imageID).
			Return(&model.RecipeImage{ID: imageID, RecipeID: recipeID, ImagePath: oldPath}, nil)
		imageRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.RecipeImage")).Return(nil)

		store := new(MockFileStore)
		store.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		service := newImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), store, newFakeCache())
		img, err := service.ReplaceRecipeImage(context.Background(), ownerID, recipeID, imageID, pngBytes(t))

		assert.NoError(t, err)
		assert.NotEqual(t, oldPath, img.ImagePath)
		assert.Contains(t, img.ImagePath, "recipes/10/")
	})

	t.Run("invalid payload is rejected before any write", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("FindByIDAndRecipe", mock.Anything, recipeID, imageID).
			Return(&model.RecipeImage{ID: imageID, RecipeID: recipeID}, nil)

		store := new(MockFileStore)

		service := newImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), store, newFakeCache())
		img, err := service.ReplaceRecipeImage(context.Background(), ownerID, recipeID, imageID, []byte("garbage"))

		assert.Nil(t, img)
		assert.Equal(t, errors.ErrInvalidImage, err)
		store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestImageService_DeleteRecipeImage(t *testing.T) {
	ownerID := uint(3)
	recipeID := uint(10)
	imageID := uint(7)

	t.Run("delete drops the cached recipe detail", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("Delete", mock.Anything, recipeID, imageID).Return(nil)

		cache := newFakeCache()
		cache.data[recipeCacheKey(ownerID, recipeID)] = []byte("stale detail")

		service := NewImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), new(MockFileStore), cache)
		err := service.DeleteRecipeImage(context.Background(), ownerID, recipeID, imageID)

		assert.NoError(t, err)
		_, stillCached := cache.data[recipeCacheKey(ownerID, recipeID)]
		assert.False(t, stillCached)
	})

	t.Run("missing image row is not found", func(t *testing.T) {
		recipeRepo := NewMockRecipeRepository()
		recipeRepo.On("FindByID", mock.Anything, recipeID).
			Return(&model.Recipe{ID: recipeID, UserID: ownerID}, nil)

		imageRepo := new(MockRecipeImageRepository)
		imageRepo.On("Delete", mock.Anything, recipeID, imageID).Return(gorm.ErrRecordNotFound)

		service := NewImageService(recipeRepo, new(MockIngredientRepository), imageRepo, new(MockIngredientImageRepository), new(MockFileStore), newFakeCache())
		err := service.DeleteRecipeImage(context.Background(), ownerID, recipeID, imageID)

		assert.Equal(t, errors.ErrNotFound, err)
	})
}

func TestImageService_IngredientImages(t *testing.T) {
	ownerID := uint(3)
	ingredientID := uint(5)

	t.Run("forbidden for another owner's ingredient", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		ingredientRepo.On("FindByID", mock.Anything, ingredientID).
			Return(&model.Ingredient{ID: ingredientID, UserID: 42}, nil)

		service := newImageService(NewMockRecipeRepository(), ingredientRepo, new(MockRecipeImageRepository), new(MockIngredientImageRepository), new(MockFileStore), newFakeCache())
		images, err := service.ListIngredientImages(context.Background(), ownerID, ingredientID)

		assert.Nil(t, images)
		assert.Equal(t, errors.ErrForbidden, err)
	})

	t.Run("upload keys blobs under the ingredient", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		ingredientRepo.On("FindByID", mock.Anything, ingredientID).
			Return(&model.Ingredient{ID: ingredientID, UserID: ownerID}, nil)

		store := new(MockFileStore)
		store.On("Save", mock.Anything, mock.AnythingOfType("string"), mock.Anything).Return(nil)

		imageRepo := new(MockIngredientImageRepository)
		imageRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.IngredientImage")).Return(nil)

		service := newImageService(NewMockRecipeRepository(), ingredientRepo, new(MockRecipeImageRepository), imageRepo, store, newFakeCache())
		img, err := service.UploadIngredientImage(context.Background(), ownerID, ingredientID, pngBytes(t))

		assert.NoError(t, err)
		assert.Contains(t, img.ImagePath, "ingredients/5/")
	})

	t.Run("missing image row is not found", func(t *testing.T) {
		ingredientRepo := new(MockIngredientRepository)
		ingredientRepo.On("FindByID", mock.Anything, ingredientID).
			Return(&model.Ingredient{ID: ingredientID, UserID: ownerID}, nil)

		imageRepo := new(MockIngredientImageRepository)
		imageRepo.On("FindByIDAndIngredient", mock.Anything, ingredientID, uint(77)).
			Return(nil, gorm.ErrRecordNotFound)

		service := newImageService(NewMockRecipeRepository(), ingredientRepo, new(MockRecipeImageRepository), imageRepo, new(MockFileStore), newFakeCache())
		img, err := service.GetIngredientImage(context.Background(), ownerID, ingredientID, 77)

		assert.Nil(t, img)
		assert.Equal(t, errors.ErrNotFound, err)
	})
}
