package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"recipebox/internal/model"
	"recipebox/internal/repository"
)

// fakeCache is an in-memory Cache for tests.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	return f.data[key], nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.data[key] = value
	return nil
}

func (f *fakeCache) Delete(_ context.Context, key string) error {
	delete(f.data, key)
	return nil
}

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) Create(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Update(ctx context.Context, tag *model.Tag) error {
	args := m.Called(ctx, tag)
	return args.Error(0)
}

func (m *MockTagRepository) Delete(ctx context.Context, ownerID, id uint) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockTagRepository) FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Tag, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) FindOrCreate(ctx context.Context, ownerID uint, name string) (*model.Tag, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func (m *MockTagRepository) GetWithCount(ctx context.Context, ownerID, id uint) (*repository.TagWithCount, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.TagWithCount), args.Error(1)
}

func (m *MockTagRepository) ListByOwner(ctx context.Context, ownerID uint, assignedOnly bool) ([]repository.TagWithCount, error) {
	args := m.Called(ctx, ownerID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.TagWithCount), args.Error(1)
}

// MockIngredientRepository is a mock implementation of IngredientRepository.
type MockIngredientRepository struct {
	mock.Mock
}

func (m *MockIngredientRepository) Create(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Update(ctx context.Context, ingredient *model.Ingredient) error {
	args := m.Called(ctx, ingredient)
	return args.Error(0)
}

func (m *MockIngredientRepository) Delete(ctx context.Context, ownerID, id uint) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockIngredientRepository) FindByID(ctx context.Context, id uint) (*model.Ingredient, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Ingredient, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) FindOrCreate(ctx context.Context, ownerID uint, name string) (*model.Ingredient, error) {
	args := m.Called(ctx, ownerID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Ingredient), args.Error(1)
}

func (m *MockIngredientRepository) GetWithCount(ctx context.Context, ownerID, id uint) (*repository.IngredientWithCount, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.IngredientWithCount), args.Error(1)
}

func (m *MockIngredientRepository) ListByOwner(ctx context.Context, ownerID uint, assignedOnly bool) ([]repository.IngredientWithCount, error) {
	args := m.Called(ctx, ownerID, assignedOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.IngredientWithCount), args.Error(1)
}

// MockRecipeRepository is a mock implementation of RecipeRepository. Its
// WithTransaction runs the callback against the mock itself plus the given
// attribute repositories, standing in for transaction-bound repositories.
type MockRecipeRepository struct {
	mock.Mock
	Tags        *MockTagRepository
	Ingredients *MockIngredientRepository
}

func NewMockRecipeRepository() *MockRecipeRepository {
	return &MockRecipeRepository{
		Tags:        new(MockTagRepository),
		Ingredients: new(MockIngredientRepository),
	}
}

func (m *MockRecipeRepository) Create(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Update(ctx context.Context, recipe *model.Recipe) error {
	args := m.Called(ctx, recipe)
	return args.Error(0)
}

func (m *MockRecipeRepository) Delete(ctx context.Context, ownerID, id uint) error {
	args := m.Called(ctx, ownerID, id)
	return args.Error(0)
}

func (m *MockRecipeRepository) FindByID(ctx context.Context, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) FindByIDAndOwner(ctx context.Context, ownerID, id uint) (*model.Recipe, error) {
	args := m.Called(ctx, ownerID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ListByOwner(ctx context.Context, ownerID uint, tagIDs, ingredientIDs []uint) ([]model.Recipe, error) {
	args := m.Called(ctx, ownerID, tagIDs, ingredientIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Recipe), args.Error(1)
}

func (m *MockRecipeRepository) ReplaceTags(ctx context.Context, recipe *model.Recipe, tags []model.Tag) error {
	args := m.Called(ctx, recipe, tags)
	return args.Error(0)
}

func (m *MockRecipeRepository) ReplaceIngredients(ctx context.Context, recipe *model.Recipe, ingredients []model.Ingredient) error {
	args := m.Called(ctx, recipe, ingredients)
	return args.Error(0)
}

func (m *MockRecipeRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, recipes repository.RecipeRepository, tags repository.TagRepository, ingredients repository.IngredientRepository) error) error {
	return fn(ctx, m, m.Tags, m.Ingredients)
}

// MockRecipeImageRepository is a mock implementation of RecipeImageRepository.
type MockRecipeImageRepository struct {
	mock.Mock
}

func (m *MockRecipeImageRepository) Create(ctx context.Context, image *model.RecipeImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockRecipeImageRepository) Update(ctx context.Context, image *model.RecipeImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockRecipeImageRepository) Delete(ctx context.Context, recipeID, id uint) error {
	args := m.Called(ctx, recipeID, id)
	return args.Error(0)
}

func (m *MockRecipeImageRepository) FindByIDAndRecipe(ctx context.Context, recipeID, id uint) (*model.RecipeImage, error) {
	args := m.Called(ctx, recipeID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RecipeImage), args.Error(1)
}

func (m *MockRecipeImageRepository) ListByRecipe(ctx context.Context, recipeID uint) ([]model.RecipeImage, error) {
	args := m.Called(ctx, recipeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.RecipeImage), args.Error(1)
}

// MockIngredientImageRepository is a mock implementation of IngredientImageRepository.
type MockIngredientImageRepository struct {
	mock.Mock
}

func (m *MockIngredientImageRepository) Create(ctx context.Context, image *model.IngredientImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockIngredientImageRepository) Update(ctx context.Context, image *model.IngredientImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockIngredientImageRepository) Delete(ctx context.Context, ingredientID, id uint) error {
	args := m.Called(ctx, ingredientID, id)
	return args.Error(0)
}

func (m *MockIngredientImageRepository) FindByIDAndIngredient(ctx context.Context, ingredientID, id uint) (*model.IngredientImage, error) {
	args := m.Called(ctx, ingredientID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.IngredientImage), args.Error(1)
}

func (m *MockIngredientImageRepository) ListByIngredient(ctx context.Context, ingredientID uint) ([]model.IngredientImage, error) {
	args := m.Called(ctx, ingredientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.IngredientImage), args.Error(1)
}

// MockFileStore is a mock implementation of storage.FileStore.
type MockFileStore struct {
	mock.Mock
}

func (m *MockFileStore) Save(ctx context.Context, key string, data []byte) error {
	args := m.Called(ctx, key, data)
	return args.Error(0)
}

func (m *MockFileStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}
