package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"recipebox/internal/errors"
	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// TagService handles standalone tag CRUD, always scoped to the owner.
type TagService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]repository.TagWithCount, error)
	Get(ctx context.Context, userID, id uint) (*repository.TagWithCount, error)
	Create(ctx context.Context, userID uint, name string) (*model.Tag, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error)
	Delete(ctx context.Context, userID, id uint) error
}

type tagService struct {
	repo repository.TagRepository
}

// NewTagService creates a new tag service.
func NewTagService(repo repository.TagRepository) TagService {
	return &tagService{repo: repo}
}

func (s *tagService) List(ctx context.Context, userID uint, assignedOnly bool) ([]repository.TagWithCount, error) {
	return s.repo.ListByOwner(ctx, userID, assignedOnly)
}

func (s *tagService) Get(ctx context.Context, userID, id uint) (*repository.TagWithCount, error) {
	tag, err := s.repo.GetWithCount(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return tag, nil
}

func (s *tagService) Create(ctx context.Context, userID uint, name string) (*model.Tag, error) {
	tag := &model.Tag{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, tag); err != nil {
		if errors.IsDuplicateEntry(err) {
			return nil, errors.NewFieldError("name", "You already have a tag with this name.")
		}
		return nil, fmt.Errorf("create tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Update(ctx context.Context, userID, id uint, name string) (*model.Tag, error) {
	tag, err := s.repo.FindByIDAndOwner(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	tag.Name = name
	if err := s.repo.Update(ctx, tag); err != nil {
		if errors.IsDuplicateEntry(err) {
			return nil, errors.NewFieldError("name", "You already have a tag with this name.")
		}
		return nil, fmt.Errorf("update tag: %w", err)
	}
	return tag, nil
}

func (s *tagService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	return nil
}

// IngredientService handles standalone ingredient CRUD, scoped to the owner.
type IngredientService interface {
	List(ctx context.Context, userID uint, assignedOnly bool) ([]repository.IngredientWithCount, error)
	Get(ctx context.Context, userID, id uint) (*repository.IngredientWithCount, error)
	Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error)
	Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error)
	Delete(ctx context.Context, userID, id uint) error
}

type ingredientService struct {
	repo repository.IngredientRepository
}

// NewIngredientService creates a new ingredient service.
func NewIngredientService(repo repository.IngredientRepository) IngredientService {
	return &ingredientService{repo: repo}
}

func (s *ingredientService) List(ctx context.Context, userID uint, assignedOnly bool) ([]repository.IngredientWithCount, error) {
	return s.repo.ListByOwner(ctx, userID, assignedOnly)
}

func (s *ingredientService) Get(ctx context.Context, userID, id uint) (*repository.IngredientWithCount, error) {
	ingredient, err := s.repo.GetWithCount(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}
	return ingredient, nil
}

func (s *ingredientService) Create(ctx context.Context, userID uint, name string) (*model.Ingredient, error) {
	ingredient := &model.Ingredient{UserID: userID, Name: name}
	if err := s.repo.Create(ctx, ingredient); err != nil {
		if errors.IsDuplicateEntry(err) {
			return nil, errors.NewFieldError("name", "You already have an ingredient with this name.")
		}
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Update(ctx context.Context, userID, id uint, name string) (*model.Ingredient, error) {
	ingredient, err := s.repo.FindByIDAndOwner(ctx, userID, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrNotFound
		}
		return nil, err
	}

	ingredient.Name = name
	if err := s.repo.Update(ctx, ingredient); err != nil {
		if errors.IsDuplicateEntry(err) {
			return nil, errors.NewFieldError("name", "You already have an ingredient with this name.")
		}
		return nil, fmt.Errorf("update ingredient: %w", err)
	}
	return ingredient, nil
}

func (s *ingredientService) Delete(ctx context.Context, userID, id uint) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return errors.ErrNotFound
		}
		return err
	}
	return nil
}
