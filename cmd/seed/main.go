package main

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"recipebox/internal/auth"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/errors"
	"recipebox/internal/logger"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/service"
)

type seedUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Superuser bool
	Recipes   []seedRecipe
}

type seedRecipe struct {
	Title       string
	TimeMinutes int
	Price       string
	Description string
	Tags        []string
	Ingredients []string
}

var fixtures = []seedUser{
	{
		Email:     "admin@example.com",
		Password:  "admin-password",
		FirstName: "Site",
		LastName:  "Admin",
		Superuser: true,
	},
	{
		Email:     "alice@example.com",
		Password:  "alice-password",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Recipes: []seedRecipe{
			{
				Title:       "Pho Bo",
				TimeMinutes: 240,
				Price:       "12.50",
				Description: "Slow-simmered beef noodle soup with charred aromatics.",
				Tags:        []string{"Vietnamese", "Soup"},
				Ingredients: []string{"Beef bones", "Rice noodles", "Star anise"},
			},
			{
				Title:       "Summer Rolls",
				TimeMinutes: 30,
				Price:       "6.00",
				Description: "Fresh rolls with herbs and peanut dipping sauce.",
				Tags:        []string{"Vietnamese", "Fresh"},
				Ingredients: []string{"Rice paper", "Shrimp", "Mint"},
			},
		},
	},
	{
		Email:     "bruno@example.com",
		Password:  "bruno-password",
		FirstName: "Bruno",
		LastName:  "Costa",
		Recipes: []seedRecipe{
			{
				Title:       "Feijoada",
				TimeMinutes: 180,
				Price:       "15.00",
				Description: "Black bean stew with smoked pork.",
				Tags:        []string{"Brazilian", "Stew"},
				Ingredients: []string{"Black beans", "Pork shoulder", "Orange"},
			},
		},
	},
}

func main() {
	logger.Init()
	defer logger.Sync()

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.L().Fatal("database init", zap.Error(err))
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Tag{},
		&model.Ingredient{},
		&model.Recipe{},
		&model.RecipeImage{},
		&model.IngredientImage{},
	); err != nil {
		logger.L().Fatal("auto-migrate", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	authService := service.NewAuthService(userRepo, jwtService)
	recipeService := service.NewRecipeService(recipeRepo, cacheClient)

	ctx := context.Background()
	created, skipped := 0, 0

	for _, fixture := range fixtures {
		user, err := authService.Register(ctx, fixture.Email, fixture.Password, fixture.FirstName, fixture.LastName)
		if err == errors.ErrEmailTaken {
			logger.L().Info("user exists, skipping", zap.String("email", fixture.Email))
			skipped++
			continue
		}
		if err != nil {
			logger.L().Fatal("create user", zap.String("email", fixture.Email), zap.Error(err))
		}
		created++

		if fixture.Superuser {
			user.IsStaff = true
			user.IsSuperuser = true
			if err := userRepo.Update(ctx, user); err != nil {
				logger.L().Fatal("promote superuser", zap.String("email", fixture.Email), zap.Error(err))
			}
		}

		for _, r := range fixture.Recipes {
			if err := seedRecipeFor(ctx, recipeService, user.ID, r); err != nil {
				logger.L().Fatal("create recipe",
					zap.String("email", fixture.Email),
					zap.String("title", r.Title),
					zap.Error(err))
			}
		}
	}

	logger.L().Info("seed completed",
		zap.Int("users_created", created),
		zap.Int("users_skipped", skipped),
	)
}

func seedRecipeFor(ctx context.Context, recipes service.RecipeService, userID uint, r seedRecipe) error {
	price, err := decimal.NewFromString(r.Price)
	if err != nil {
		return err
	}

	tags := make([]service.AttributeInput, 0, len(r.Tags))
	for _, name := range r.Tags {
		tags = append(tags, service.AttributeInput{Name: name})
	}
	ingredients := make([]service.AttributeInput, 0, len(r.Ingredients))
	for _, name := range r.Ingredients {
		ingredients = append(ingredients, service.AttributeInput{Name: name})
	}

	_, err = recipes.Create(ctx, userID, service.CreateRecipeInput{
		Title:       r.Title,
		TimeMinutes: r.TimeMinutes,
		Price:       price,
		Description: r.Description,
		Tags:        tags,
		Ingredients: ingredients,
	})
	return err
}
