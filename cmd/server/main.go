package main

import (
	"net/http"

	_ "recipebox/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"recipebox/internal/auth"
	"recipebox/internal/cache"
	"recipebox/internal/config"
	"recipebox/internal/db"
	"recipebox/internal/handler"
	"recipebox/internal/logger"
	"recipebox/internal/model"
	"recipebox/internal/repository"
	"recipebox/internal/router"
	"recipebox/internal/service"
	"recipebox/internal/storage"
)

// @title Recipe Box API
// @version 1.0
// @description Recipe management API with tags, ingredients, image uploads, and JWT authentication.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	logger.Init()
	defer logger.Sync()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		logger.L().Fatal("database init", zap.Error(err))
	}

	// Run migrations for all models
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

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	fileStore := storage.NewLocalStore(cfg.MediaDir)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	recipeRepo := repository.NewRecipeRepository(gormDB)
	tagRepo := repository.NewTagRepository(gormDB)
	ingredientRepo := repository.NewIngredientRepository(gormDB)
	recipeImageRepo := repository.NewRecipeImageRepository(gormDB)
	ingredientImageRepo := repository.NewIngredientImageRepository(gormDB)

	jwtService := auth.NewJWTService(cfg.JWTSecret)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtService)
	userService := service.NewUserService(userRepo, cacheClient)
	recipeService := service.NewRecipeService(recipeRepo, cacheClient)
	tagService := service.NewTagService(tagRepo)
	ingredientService := service.NewIngredientService(ingredientRepo)
	imageService := service.NewImageService(recipeRepo, ingredientRepo, recipeImageRepo, ingredientImageRepo, fileStore, cacheClient)

	// Initialize handlers
	userHandler := handler.NewUserHandler(authService, userService)
	recipeHandler := handler.NewRecipeHandler(recipeService, cfg.MediaBaseURL)
	tagHandler := handler.NewTagHandler(tagService)
	ingredientHandler := handler.NewIngredientHandler(ingredientService, cfg.MediaBaseURL)
	imageHandler := handler.NewImageHandler(imageService, cfg.MediaBaseURL)

	// Register routes
	router.Register(
		e,
		cfg,
		userHandler,
		recipeHandler,
		tagHandler,
		ingredientHandler,
		imageHandler,
	)

	logger.L().Info("starting server",
		zap.String("port", cfg.ServerPort),
		zap.String("media_dir", cfg.MediaDir),
	)

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.L().Fatal("server start", zap.Error(err))
	}
}
