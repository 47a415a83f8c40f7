package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/logger"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/storage"
)

// MaxImageBytes is the upload size limit: 2,000 KB exactly.
const MaxImageBytes = 2000 * 1024

// ImageService handles uploads attached to recipes and ingredients. All
// operations authorize against the parent first: a missing parent is 404,
// a parent owned by someone else is 403.
type ImageService interface {
	ListRecipeImages(ctx context.Context, userID, recipeID uint) ([]model.RecipeImage, error)
	GetRecipeImage(ctx context.Context, userID, recipeID, id uint) (*model.RecipeImage, error)
	UploadRecipeImage(ctx context.Context, userID, recipeID uint, data []byte) (*model.RecipeImage, error)
	ReplaceRecipeImage(ctx context.Context, userID, recipeID, id uint, data []byte) (*model.RecipeImage, error)
	DeleteRecipeImage(ctx context.Context, userID, recipeID, id uint) error

	ListIngredientImages(ctx context.Context, userID, ingredientID uint) ([]model.IngredientImage, error)
	GetIngredientImage(ctx context.Context, userID, ingredientID, id uint) (*model.IngredientImage, error)
	UploadIngredientImage(ctx context.Context, userID, ingredientID uint, data []byte) (*model.IngredientImage, error)
	ReplaceIngredientImage(ctx context.Context, userID, ingredientID, id uint, data []byte) (*model.IngredientImage, error)
	DeleteIngredientImage(ctx context.Context, userID, ingredientID, id uint) error
}

type imageService struct {
	recipeRepo          repository.RecipeRepository
	ingredientRepo      repository.IngredientRepository
	recipeImageRepo     repository.RecipeImageRepository
	ingredientImageRepo repository.IngredientImageRepository
	store               storage.FileStore
	cache               Cache
}

// NewImageService creates a new image service.
func NewImageService(
	recipeRepo repository.RecipeRepository,
	ingredientRepo repository.IngredientRepository,
	recipeImageRepo repository.RecipeImageRepository,
	ingredientImageRepo repository.IngredientImageRepository,
	store storage.FileStore,
	cache Cache,
) ImageService {
	return &imageService{
		recipeRepo:          recipeRepo,
		ingredientRepo:      ingredientRepo,
		recipeImageRepo:     recipeImageRepo,
		ingredientImageRepo: ingredientImageRepo,
		store:               store,
		cache:               cache,
	}
}

// validateImage checks size and well-formedness before anything is
// persisted, returning the extension for the detected format.
func validateImage(data []byte) (string, error) {
	if len(data) > MaxImageBytes {
		return "", fmt.Errorf("%w: the image is %dKB but cannot be larger than 2000KB",
			errors.ErrImageTooLarge, len(data)/1000+1)
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", errors.ErrInvalidImage
	}
	switch format {
	case "jpeg":
		return ".jpg", nil
	case "png":
		return ".png", nil
	case "gif":
		return ".gif", nil
	default:
		return "", errors.ErrInvalidImage
	}
}

// guardRecipe authorizes access to a recipe's nested images. Unlike
// top-level lookups this distinguishes 403 from 404: the URL already
// discloses the parent's existence.
func (s *imageService) guardRecipe(ctx context.Context, userID, recipeID uint) error {
	recipe, err := s.recipeRepo.FindByID(ctx, recipeID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if recipe.UserID != userID {
		return errors.ErrForbidden
	}
	return nil
}

func (s *imageService) guardIngredient(ctx context.Context, userID, ingredientID uint) error {
	ingredient, err := s.ingredientRepo.FindByID(ctx, ingredientID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	if ingredient.UserID != userID {
		return errors.ErrForbidden
	}
	return nil
}

// removeBlob cleans up a stored blob after a failed row write. Cleanup
// failures only leave an orphan behind, so they are logged, not returned.
func (s *imageService) removeBlob(ctx context.Context, key string) {
	if err := s.store.Remove(ctx, key); err != nil {
		logger.Warn("orphaned image blob", zap.String("key", key), zap.Error(err))
	}
}

func (s *imageService) ListRecipeImages(ctx context.Context, userID, recipeID uint) ([]model.RecipeImage, error) {
	if err := s.guardRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	return s.recipeImageRepo.ListByRecipe(ctx, recipeID)
}

func (s *imageService) GetRecipeImage(ctx context.Context, userID, recipeID, id uint) (*model.RecipeImage, error) {
	if err := s.guardRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	img, err := s.recipeImageRepo.FindByIDAndRecipe(ctx, recipeID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return img, nil
}

func (s *imageService) UploadRecipeImage(ctx context.Context, userID, recipeID uint, data []byte) (*model.RecipeImage, error) {
	if err := s.guardRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	ext, err := validateImage(data)
	if err != nil {
		return nil, err
	}

	key := storage.NewKey("recipes", recipeID, ext)
	if err := s.store.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &model.RecipeImage{RecipeID: recipeID, ImagePath: key, FileSize: int64(len(data))}
	if err := s.recipeImageRepo.Create(ctx, img); err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("record image: %w", err)
	}
	_ = s.cache.Delete(ctx, recipeCacheKey(userID, recipeID))
	return img, nil
}

// ReplaceRecipeImage writes the new binary under a fresh path so the old
// URL is never reused. The previous blob is orphaned; cleanup is an
// external-storage concern.
func (s *imageService) ReplaceRecipeImage(ctx context.Context, userID, recipeID, id uint, data []byte) (*model.RecipeImage, error) {
	if err := s.guardRecipe(ctx, userID, recipeID); err != nil {
		return nil, err
	}
	img, err := s.recipeImageRepo.FindByIDAndRecipe(ctx, recipeID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	ext, err := validateImage(data)
	if err != nil {
		return nil, err
	}

	key := storage.NewKey("recipes", recipeID, ext)
	if err := s.store.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img.ImagePath = key
	img.FileSize = int64(len(data))
	if err := s.recipeImageRepo.Update(ctx, img); err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("record image: %w", err)
	}
	_ = s.cache.Delete(ctx, recipeCacheKey(userID, recipeID))
	return img, nil
}

func (s *imageService) DeleteRecipeImage(ctx context.Context, userID, recipeID, id uint) error {
	if err := s.guardRecipe(ctx, userID, recipeID); err != nil {
		return err
	}
	if err := s.recipeImageRepo.Delete(ctx, recipeID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, recipeCacheKey(userID, recipeID))
	return nil
}

func (s *imageService) ListIngredientImages(ctx context.Context, userID, ingredientID uint) ([]model.IngredientImage, error) {
	if err := s.guardIngredient(ctx, userID, ingredientID); err != nil {
		return nil, err
	}
	return s.ingredientImageRepo.ListByIngredient(ctx, ingredientID)
}

func (s *imageService) GetIngredientImage(ctx context.Context, userID, ingredientID, id uint) (*model.IngredientImage, error) {
	if err := s.guardIngredient(ctx, userID, ingredientID); err != nil {
		return nil, err
	}
	img, err := s.ingredientImageRepo.FindByIDAndIngredient(ctx, ingredientID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return img, nil
}

// UploadIngredientImage stores an image under its ingredient. Ingredient
// images also surface inside recipe details, but the affected recipe set is
// unknown here, so those cached details refresh on TTL expiry instead of
// being invalidated.
func (s *imageService) UploadIngredientImage(ctx context.Context, userID, ingredientID uint, data []byte) (*model.IngredientImage, error) {
	if err := s.guardIngredient(ctx, userID, ingredientID); err != nil {
		return nil, err
	}
	ext, err := validateImage(data)
	if err != nil {
		return nil, err
	}

	key := storage.NewKey("ingredients", ingredientID, ext)
	if err := s.store.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img := &model.IngredientImage{IngredientID: ingredientID, ImagePath: key, FileSize: int64(len(data))}
	if err := s.ingredientImageRepo.Create(ctx, img); err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("record image: %w", err)
	}
	return img, nil
}

func (s *imageService) ReplaceIngredientImage(ctx context.Context, userID, ingredientID, id uint, data []byte) (*model.IngredientImage, error) {
	if err := s.guardIngredient(ctx, userID, ingredientID); err != nil {
		return nil, err
	}
	img, err := s.ingredientImageRepo.FindByIDAndIngredient(ctx, ingredientID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	ext, err := validateImage(data)
	if err != nil {
		return nil, err
	}

	key := storage.NewKey("ingredients", ingredientID, ext)
	if err := s.store.Save(ctx, key, data); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	img.ImagePath = key
	img.FileSize = int64(len(data))
	if err := s.ingredientImageRepo.Update(ctx, img); err != nil {
		s.removeBlob(ctx, key)
		return nil, fmt.Errorf("record image: %w", err)
	}
	return img, nil
}

func (s *imageService) DeleteIngredientImage(ctx context.Context, userID, ingredientID, id uint) error {
	if err := s.guardIngredient(ctx, userID, ingredientID); err != nil {
		return err
	}
	if err := s.ingredientImageRepo.Delete(ctx, ingredientID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	return nil
}
