package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// IngredientWithCount is an ingredient row with its recipe aggregate and
// attached images. As with tags, the count spans recipes of all owners.
type IngredientWithCount struct {
	ID          uint                    `json:"id"`
	Name        string                  `json:"name"`
	RecipeCount int64                   `json:"recipe_count"`
	Images      []model.IngredientImage `json:"images" gorm:"-"`
}

// IngredientRepository defines ingredient persistence operations.
type IngredientRepository interface {
	Create(ctx context.Context, ingredient *model.Ingredient) error
	Update(ctx context.Context, ingredient *model.Ingredient) error
	Delete(ctx context.Context, ownerID, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Ingredient, error)
	FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Ingredient, error)
	FindOrCreate(ctx context.Context, ownerID uint, name string) (*model.Ingredient, error)
	GetWithCount(ctx context.Context, ownerID, id uint) (*IngredientWithCount, error)
	ListByOwner(ctx context.Context, ownerID uint, assignedOnly bool) ([]IngredientWithCount, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository creates a new ingredient repository.
func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Create(ingredient).Error
}

func (r *ingredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

func (r *ingredientRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Ingredient{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindByID looks a row up regardless of owner. Used by the nested-image
// guard, which must distinguish "absent" from "owned by someone else".
func (r *ingredientRepository) FindByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).First(&ingredient, id).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (r *ingredientRepository) FindOrCreate(ctx context.Context, ownerID uint, name string) (*model.Ingredient, error) {
	var ingredient model.Ingredient
	err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", ownerID, name).First(&ingredient).Error
	if err == nil {
		return &ingredient, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	ingredient = model.Ingredient{UserID: ownerID, Name: name}
	if err := r.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

const ingredientCountSelect = "ingredients.id, ingredients.name, COUNT(DISTINCT recipe_ingredients.recipe_id) AS recipe_count"

func (r *ingredientRepository) GetWithCount(ctx context.Context, ownerID, id uint) (*IngredientWithCount, error) {
	var row IngredientWithCount
	err := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Select(ingredientCountSelect).
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Where("ingredients.id = ? AND ingredients.user_id = ?", id, ownerID).
		Group("ingredients.id").
		First(&row).Error
	if err != nil {
		return nil, err
	}

	if err := r.attachImages(ctx, []*IngredientWithCount{&row}); err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *ingredientRepository) ListByOwner(ctx context.Context, ownerID uint, assignedOnly bool) ([]IngredientWithCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Ingredient{}).
		Select(ingredientCountSelect).
		Joins("LEFT JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
		Where("ingredients.user_id = ?", ownerID).
		Group("ingredients.id").
		Order("ingredients.id DESC")
	if assignedOnly {
		q = q.Having("COUNT(recipe_ingredients.recipe_id) > 0")
	}

	var rows []IngredientWithCount
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	refs := make([]*IngredientWithCount, len(rows))
	for i := range rows {
		refs[i] = &rows[i]
	}
	if err := r.attachImages(ctx, refs); err != nil {
		return nil, err
	}
	return rows, nil
}

// attachImages loads images for the given rows in a single query. The
// aggregate select cannot preload relations, so this runs as a second pass.
func (r *ingredientRepository) attachImages(ctx context.Context, rows []*IngredientWithCount) error {
	if len(rows) == 0 {
		return nil
	}

	ids := make([]uint, 0, len(rows))
	byID := make(map[uint]*IngredientWithCount, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		byID[row.ID] = row
		row.Images = []model.IngredientImage{}
	}

	var images []model.IngredientImage
	if err := r.db.WithContext(ctx).Where("ingredient_id IN ?", ids).Order("id").Find(&images).Error; err != nil {
		return err
	}
	for _, img := range images {
		if row, ok := byID[img.IngredientID]; ok {
			row.Images = append(row.Images, img)
		}
	}
	return nil
}
