package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

const recipeCacheTTL = 5 * time.Minute

// AttributeInput names a tag or ingredient in a recipe payload.
type AttributeInput struct {
	Name string
}

// CreateRecipeInput carries a full recipe creation payload. The owner is
// taken from the authenticated user, never from the payload.
type CreateRecipeInput struct {
	Title       string
	TimeMinutes int
	Price       decimal.Decimal
	Description string
	Link        string
	Tags        []AttributeInput
	Ingredients []AttributeInput
}

// UpdateRecipeInput carries a recipe update. Nil scalar fields stay
// untouched. The relation fields distinguish three payload states: nil means
// the field was omitted (relations untouched), a pointer to an empty slice
// clears all associations, and a pointer to entries replaces the set.
type UpdateRecipeInput struct {
	Title       *string
	TimeMinutes *int
	Price       *decimal.Decimal
	Description *string
	Link        *string
	Tags        *[]AttributeInput
	Ingredients *[]AttributeInput
}

// RecipeService handles recipe CRUD and relation reconciliation.
type RecipeService interface {
	List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error)
	Get(ctx context.Context, userID, id uint) (*model.Recipe, error)
	Create(ctx context.Context, userID uint, input CreateRecipeInput) (*model.Recipe, error)
	Update(ctx context.Context, userID, id uint, input UpdateRecipeInput) (*model.Recipe, error)
	Delete(ctx context.Context, userID, id uint) error
}

type recipeService struct {
	recipeRepo repository.RecipeRepository
	cache      Cache
}

// NewRecipeService creates a new recipe service.
func NewRecipeService(recipeRepo repository.RecipeRepository, cache Cache) RecipeService {
	return &recipeService{recipeRepo: recipeRepo, cache: cache}
}

func (s *recipeService) List(ctx context.Context, userID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error) {
	return s.recipeRepo.ListByOwner(ctx, userID, tagIDs, ingredientIDs)
}

func (s *recipeService) Get(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	if data, _ := s.cache.Get(ctx, recipeCacheKey(userID, id)); data != nil {
		var cached cachedRecipe
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached.toModel(), nil
		}
	}

	recipe, err := s.recipeRepo.FindByIDAndOwner(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(newCachedRecipe(recipe)); err == nil {
		_ = s.cache.Set(ctx, recipeCacheKey(userID, id), payload, recipeCacheTTL)
	}
	return recipe, nil
}

// Create persists the recipe and reconciles its tag/ingredient payloads in
// one transaction: either the recipe, any lazily created attribute rows and
// the association rows all commit, or none do.
func (s *recipeService) Create(ctx context.Context, userID uint, input CreateRecipeInput) (*model.Recipe, error) {
	if input.Price.IsNegative() {
		return nil, errors.NewFieldError("price", "The price cannot be negative.")
	}

	recipe := &model.Recipe{
		UserID:      userID,
		Title:       input.Title,
		TimeMinutes: input.TimeMinutes,
		Price:       input.Price,
		Description: input.Description,
		Link:        input.Link,
	}

	err := s.recipeRepo.WithTransaction(ctx, func(ctx context.Context, recipes repository.RecipeRepository, tags repository.TagRepository, ingredients repository.IngredientRepository) error {
		if err := recipes.Create(ctx, recipe); err != nil {
			return fmt.Errorf("create recipe: %w", err)
		}
		resolvedTags, err := resolveTags(ctx, tags, userID, input.Tags)
		if err != nil {
			return err
		}
		if len(resolvedTags) > 0 {
			if err := recipes.ReplaceTags(ctx, recipe, resolvedTags); err != nil {
				return fmt.Errorf("attach tags: %w", err)
			}
		}
		resolvedIngredients, err := resolveIngredients(ctx, ingredients, userID, input.Ingredients)
		if err != nil {
			return err
		}
		if len(resolvedIngredients) > 0 {
			if err := recipes.ReplaceIngredients(ctx, recipe, resolvedIngredients); err != nil {
				return fmt.Errorf("attach ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapReconcileError(err)
	}

	return s.reload(ctx, userID, recipe.ID)
}

// Update applies scalar changes and reconciles relation payloads. An owner
// change can never happen here: the row is loaded scoped to the caller and
// the input carries no owner field.
func (s *recipeService) Update(ctx context.Context, userID, id uint, input UpdateRecipeInput) (*model.Recipe, error) {
	if input.Price != nil && input.Price.IsNegative() {
		return nil, errors.NewFieldError("price", "The price cannot be negative.")
	}

	recipe, err := s.recipeRepo.FindByIDAndOwner(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	if input.Title != nil {
		recipe.Title = *input.Title
	}
	if input.TimeMinutes != nil {
		recipe.TimeMinutes = *input.TimeMinutes
	}
	if input.Price != nil {
		recipe.Price = *input.Price
	}
	if input.Description != nil {
		recipe.Description = *input.Description
	}
	if input.Link != nil {
		recipe.Link = *input.Link
	}

	err = s.recipeRepo.WithTransaction(ctx, func(ctx context.Context, recipes repository.RecipeRepository, tags repository.TagRepository, ingredients repository.IngredientRepository) error {
		if err := recipes.Update(ctx, recipe); err != nil {
			return fmt.Errorf("update recipe: %w", err)
		}
		if input.Tags != nil {
			resolved, err := resolveTags(ctx, tags, userID, *input.Tags)
			if err != nil {
				return err
			}
			if err := recipes.ReplaceTags(ctx, recipe, resolved); err != nil {
				return fmt.Errorf("replace tags: %w", err)
			}
		}
		if input.Ingredients != nil {
			resolved, err := resolveIngredients(ctx, ingredients, userID, *input.Ingredients)
			if err != nil {
				return err
			}
			if err := recipes.ReplaceIngredients(ctx, recipe, resolved); err != nil {
				return fmt.Errorf("replace ingredients: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, mapReconcileError(err)
	}

	_ = s.cache.Delete(ctx, recipeCacheKey(userID, id))
	return s.reload(ctx, userID, id)
}

func (s *recipeService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.recipeRepo.Delete(ctx, userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	_ = s.cache.Delete(ctx, recipeCacheKey(userID, id))
	return nil
}

func (s *recipeService) reload(ctx context.Context, userID, id uint) (*model.Recipe, error) {
	recipe, err := s.recipeRepo.FindByIDAndOwner(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("reload recipe: %w", err)
	}
	return recipe, nil
}

// resolveTags maps inbound {name} items to existing-or-created rows for the
// owner. Duplicate names within one payload collapse to a single row.
func resolveTags(ctx context.Context, repo repository.TagRepository, userID uint, items []AttributeInput) ([]model.Tag, error) {
	seen := make(map[string]struct{}, len(items))
	tags := make([]model.Tag, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}

		tag, err := repo.FindOrCreate(ctx, userID, item.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", item.Name, err)
		}
		tags = append(tags, *tag)
	}
	return tags, nil
}

func resolveIngredients(ctx context.Context, repo repository.IngredientRepository, userID uint, items []AttributeInput) ([]model.Ingredient, error) {
	seen := make(map[string]struct{}, len(items))
	ingredients := make([]model.Ingredient, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.Name]; ok {
			continue
		}
		seen[item.Name] = struct{}{}

		ingredient, err := repo.FindOrCreate(ctx, userID, item.Name)
		if err != nil {
			return nil, fmt.Errorf("resolve ingredient %q: %w", item.Name, err)
		}
		ingredients = append(ingredients, *ingredient)
	}
	return ingredients, nil
}

// mapReconcileError surfaces lost uniqueness races as field errors the
// caller can retry, passing through errors that already carry a shape.
func mapReconcileError(err error) error {
	if errors.IsDuplicateEntry(err) {
		return errors.NewFieldError("name", "This name was created concurrently; retry the request.")
	}
	return err
}
