package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// RecipeImageRepository defines recipe image persistence operations.
type RecipeImageRepository interface {
	Create(ctx context.Context, image *model.RecipeImage) error
	Update(ctx context.Context, image *model.RecipeImage) error
	Delete(ctx context.Context, recipeID, id uint) error
	FindByIDAndRecipe(ctx context.Context, recipeID, id uint) (*model.RecipeImage, error)
	ListByRecipe(ctx context.Context, recipeID uint) ([]model.RecipeImage, error)
}

type recipeImageRepository struct {
	db *gorm.DB
}

// NewRecipeImageRepository creates a new recipe image repository.
func NewRecipeImageRepository(db *gorm.DB) RecipeImageRepository {
	return &recipeImageRepository{db: db}
}

func (r *recipeImageRepository) Create(ctx context.Context, image *model.RecipeImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *recipeImageRepository) Update(ctx context.Context, image *model.RecipeImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *recipeImageRepository) Delete(ctx context.Context, recipeID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND recipe_id = ?", id, recipeID).Delete(&model.RecipeImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *recipeImageRepository) FindByIDAndRecipe(ctx context.Context, recipeID, id uint) (*model.RecipeImage, error) {
	var image model.RecipeImage
	if err := r.db.WithContext(ctx).Where("id = ? AND recipe_id = ?", id, recipeID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *recipeImageRepository) ListByRecipe(ctx context.Context, recipeID uint) ([]model.RecipeImage, error) {
	var images []model.RecipeImage
	if err := r.db.WithContext(ctx).Where("recipe_id = ?", recipeID).Order("id DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}

// IngredientImageRepository defines ingredient image persistence operations.
type IngredientImageRepository interface {
	Create(ctx context.Context, image *model.IngredientImage) error
	Update(ctx context.Context, image *model.IngredientImage) error
	Delete(ctx context.Context, ingredientID, id uint) error
	FindByIDAndIngredient(ctx context.Context, ingredientID, id uint) (*model.IngredientImage, error)
	ListByIngredient(ctx context.Context, ingredientID uint) ([]model.IngredientImage, error)
}

type ingredientImageRepository struct {
	db *gorm.DB
}

// NewIngredientImageRepository creates a new ingredient image repository.
func NewIngredientImageRepository(db *gorm.DB) IngredientImageRepository {
	return &ingredientImageRepository{db: db}
}

func (r *ingredientImageRepository) Create(ctx context.Context, image *model.IngredientImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *ingredientImageRepository) Update(ctx context.Context, image *model.IngredientImage) error {
	return r.db.WithContext(ctx).Save(image).Error
}

func (r *ingredientImageRepository) Delete(ctx context.Context, ingredientID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND ingredient_id = ?", id, ingredientID).Delete(&model.IngredientImage{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *ingredientImageRepository) FindByIDAndIngredient(ctx context.Context, ingredientID, id uint) (*model.IngredientImage, error) {
	var image model.IngredientImage
	if err := r.db.WithContext(ctx).Where("id = ? AND ingredient_id = ?", id, ingredientID).First(&image).Error; err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *ingredientImageRepository) ListByIngredient(ctx context.Context, ingredientID uint) ([]model.IngredientImage, error) {
	var images []model.IngredientImage
	if err := r.db.WithContext(ctx).Where("ingredient_id = ?", ingredientID).Order("id DESC").Find(&images).Error; err != nil {
		return nil, err
	}
	return images, nil
}
