package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// RecipeRepository defines recipe persistence operations.
type RecipeRepository interface {
	Create(ctx context.Context, recipe *model.Recipe) error
	Update(ctx context.Context, recipe *model.Recipe) error
	Delete(ctx context.Context, ownerID, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Recipe, error)
	FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error)
	ListByOwner(ctx context.Context, ownerID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error)
	ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error
	ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error
	// WithTransaction runs fn with repositories bound to one transaction, so
	// a recipe write and its lazily created tags/ingredients commit or roll
	// back together.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes RecipeRepository, tags TagRepository, ingredients IngredientRepository) error) error
}

type recipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository creates a new recipe repository.
func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients", "Images").Create(recipe).Error
}

func (r *recipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	return r.db.WithContext(ctx).Omit("Tags", "Ingredients", "Images").Save(recipe).Error
}

// Delete removes an owned recipe; images and association rows cascade.
func (r *recipeRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID looks a row up regardless of owner, for the nested-image guard.
func (r *recipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := r.db.WithContext(ctx).First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Ingredients").
		Preload("Ingredients.Images").
		Preload("Images").
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&recipe).Error
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// ListByOwner returns the owner's recipes newest-first, optionally narrowed
// to those referencing any of the given tag or ingredient IDs. Combining
// both filters is an AND of the two; multi-tag matches collapse to one row.
func (r *recipeRepository) ListByOwner(ctx context.Context, ownerID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error) {
	q := r.db.WithContext(ctx).Model(&model.Recipe{}).
		Where("recipes.user_id = ?", ownerID)
	if len(tagIDs) > 0 {
		q = q.Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", tagIDs)
	}
	if len(ingredientIDs) > 0 {
		q = q.Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", ingredientIDs)
	}

	var recipes []model.Recipe
	err := q.Distinct("recipes.*").
		Order("recipes.id DESC").
		Preload("Tags").
		Preload("Images").
		Find(&recipes).Error
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// ReplaceTags swaps the recipe's tag set for the given rows. An empty slice
// clears all associations; the tag rows themselves are never deleted.
func (r *recipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Tags")
	if len(tags) == 0 {
		return assoc.Clear()
	}
	refs := make([]*model.Tag, len(tags))
	for i := range tags {
		refs[i] = &tags[i]
	}
	return assoc.Replace(refs)
}

// ReplaceIngredients mirrors ReplaceTags for ingredient associations.
func (r *recipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	assoc := r.db.WithContext(ctx).Model(recipe).Association("Ingredients")
	if len(ingredients) == 0 {
		return assoc.Clear()
	}
	refs := make([]*model.Ingredient, len(ingredients))
	for i := range ingredients {
		refs[i] = &ingredients[i]
	}
	return assoc.Replace(refs)
}

func (r *recipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes RecipeRepository, tags TagRepository, ingredients IngredientRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &recipeRepository{db: tx}, NewTagRepository(tx), NewIngredientRepository(tx))
	})
}
