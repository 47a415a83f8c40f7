package service

import (
	"time"

	"github.com/shopspring/decimal"

	"recipebox/internal/model"
)

// cachedRecipe is the cache projection of a recipe detail. The wire model
// hides storage paths and owner IDs from JSON, so marshalling model.Recipe
// into the cache would drop them on the round trip and every cache hit
// would render empty image URLs.
type cachedRecipe struct {
	ID          uint            `json:"id"`
	UserID      uint            `json:"user_id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
	Link        string          `json:"link"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Tags        []cachedAttribute `json:"tags,omitempty"`
	Ingredients []cachedAttribute `json:"ingredients,omitempty"`
	Images      []cachedImage     `json:"images,omitempty"`
}

type cachedAttribute struct {
	ID     uint          `json:"id"`
	UserID uint          `json:"user_id"`
	Name   string        `json:"name"`
	Images []cachedImage `json:"images,omitempty"`
}

type cachedImage struct {
	ID        uint      `json:"id"`
	ParentID  uint      `json:"parent_id"`
	ImagePath string    `json:"image_path"`
	FileSize  int64     `json:"file_size"`
	CreatedAt time.Time `json:"created_at"`
}

func newCachedRecipe(r *model.Recipe) *cachedRecipe {
	out := &cachedRecipe{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       r.Price,
		Description: r.Description,
		Link:        r.Link,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	for _, tag := range r.Tags {
		out.Tags = append(out.Tags, cachedAttribute{ID: tag.ID, UserID: tag.UserID, Name: tag.Name})
	}
	for _, ingredient := range r.Ingredients {
		attr := cachedAttribute{ID: ingredient.ID, UserID: ingredient.UserID, Name: ingredient.Name}
		for _, img := range ingredient.Images {
			attr.Images = append(attr.Images, cachedImage{
				ID:        img.ID,
				ParentID:  img.IngredientID,
				ImagePath: img.ImagePath,
				FileSize:  img.FileSize,
				CreatedAt: img.CreatedAt,
			})
		}
		out.Ingredients = append(out.Ingredients, attr)
	}
	for _, img := range r.Images {
		out.Images = append(out.Images, cachedImage{
			ID:        img.ID,
			ParentID:  img.RecipeID,
			ImagePath: img.ImagePath,
			FileSize:  img.FileSize,
			CreatedAt: img.CreatedAt,
		})
	}
	return out
}

func (c *cachedRecipe) toModel() *model.Recipe {
	recipe := &model.Recipe{
		ID:          c.ID,
		UserID:      c.UserID,
		Title:       c.Title,
		TimeMinutes: c.TimeMinutes,
		Price:       c.Price,
		Description: c.Description,
		Link:        c.Link,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
	for _, tag := range c.Tags {
		recipe.Tags = append(recipe.Tags, model.Tag{ID: tag.ID, UserID: tag.UserID, Name: tag.Name})
	}
	for _, attr := range c.Ingredients {
		ingredient := model.Ingredient{ID: attr.ID, UserID: attr.UserID, Name: attr.Name}
		for _, img := range attr.Images {
			ingredient.Images = append(ingredient.Images, model.IngredientImage{
				ID:           img.ID,
				IngredientID: img.ParentID,
				ImagePath:    img.ImagePath,
				FileSize:     img.FileSize,
				CreatedAt:    img.CreatedAt,
			})
		}
		recipe.Ingredients = append(recipe.Ingredients, ingredient)
	}
	for _, img := range c.Images {
		recipe.Images = append(recipe.Images, model.RecipeImage{
			ID:        img.ID,
			RecipeID:  img.ParentID,
			ImagePath: img.ImagePath,
			FileSize:  img.FileSize,
			CreatedAt: img.CreatedAt,
		})
	}
	return recipe
}
