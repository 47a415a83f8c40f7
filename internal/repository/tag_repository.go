package repository

import (
	"context"

	"gorm.io/gorm"

	"recipebox/internal/model"
)

// TagWithCount is a tag row with its query-time recipe aggregate.
// The count spans recipes of all owners, matching source behavior.
type TagWithCount struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	RecipeCount int64  `json:"recipe_count"`
}

// TagRepository defines tag persistence operations.
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	Update(ctx context.Context, tag *model.Tag) error
	Delete(ctx context.Context, ownerID, id uint) error
	FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Tag, error)
	FindOrCreate(ctx context.Context, ownerID uint, name string) (*model.Tag, error)
	GetWithCount(ctx context.Context, ownerID, id uint) (*TagWithCount, error)
	ListByOwner(ctx context.Context, ownerID uint, assignedOnly bool) ([]TagWithCount, error)
}

type tagRepository struct {
	db *gorm.DB
}

// NewTagRepository creates a new tag repository.
func NewTagRepository(db *gorm.DB) TagRepository {
	return &tagRepository{db: db}
}

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) Update(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Save(tag).Error
}

// Delete removes an owned tag. Rows owned by someone else are invisible, so
// the result is indistinguishable from a nonexistent id.
func (r *tagRepository) Delete(ctx context.Context, ownerID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).Delete(&model.Tag{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *tagRepository) FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Tag, error) {
	var tag model.Tag
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

// FindOrCreate resolves (owner, name) to an existing row or creates it.
// Concurrent creation of the same name races on the unique index; the loser
// gets a duplicate entry error rather than a second row.
func (r *tagRepository) FindOrCreate(ctx context.Context, ownerID uint, name string) (*model.Tag, error) {
	var tag model.Tag
	err := r.db.WithContext(ctx).Where("user_id = ? AND name = ?", ownerID, name).First(&tag).Error
	if err == nil {
		return &tag, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}

	tag = model.Tag{UserID: ownerID, Name: name}
	if err := r.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

const tagCountSelect = "tags.id, tags.name, COUNT(DISTINCT recipe_tags.recipe_id) AS recipe_count"

func (r *tagRepository) GetWithCount(ctx context.Context, ownerID, id uint) (*TagWithCount, error) {
	var row TagWithCount
	err := r.db.WithContext(ctx).Model(&model.Tag{}).
		Select(tagCountSelect).
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("tags.id = ? AND tags.user_id = ?", id, ownerID).
		Group("tags.id").
		First(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (r *tagRepository) ListByOwner(ctx context.Context, ownerID uint, assignedOnly bool) ([]TagWithCount, error) {
	q := r.db.WithContext(ctx).Model(&model.Tag{}).
		Select(tagCountSelect).
		Joins("LEFT JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
		Where("tags.user_id = ?", ownerID).
		Group("tags.id").
		Order("tags.id DESC")
	if assignedOnly {
		q = q.Having("COUNT(recipe_tags.recipe_id) > 0")
	}

	var rows []TagWithCount
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
