package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"recipebox/internal/auth"
	"recipebox/internal/config"
	"recipebox/internal/errors"
	"recipebox/internal/handler"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userHandler *handler.UserHandler,
	recipeHandler *handler.RecipeHandler,
	tagHandler *handler.TagHandler,
	ingredientHandler *handler.IngredientHandler,
	imageHandler *handler.ImageHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.Validator = NewCustomValidator()

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploaded images are served straight from local storage.
	e.Static(cfg.MediaBaseURL, cfg.MediaDir)

	api := e.Group("/api")

	// Public routes
	api.POST("/users", userHandler.Create)
	api.POST("/users/token", userHandler.Token)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
				Detail: "Authentication credentials were not provided.",
			})
		},
	}))

	// Profile routes
	secured.GET("/users/me", userHandler.GetProfile)
	secured.PUT("/users/me", userHandler.UpdateProfile)
	secured.PATCH("/users/me", userHandler.PatchProfile)

	// Recipe routes
	secured.GET("/recipes", recipeHandler.List)
	secured.POST("/recipes", recipeHandler.Create)
	secured.GET("/recipes/:id", recipeHandler.Get)
	secured.PUT("/recipes/:id", recipeHandler.Put)
	secured.PATCH("/recipes/:id", recipeHandler.Update)
	secured.DELETE("/recipes/:id", recipeHandler.Delete)

	// Recipe image routes
	secured.GET("/recipes/:id/images", imageHandler.ListRecipeImages)
	secured.POST("/recipes/:id/images", imageHandler.UploadRecipeImage)
	secured.GET("/recipes/:id/images/:imageId", imageHandler.GetRecipeImage)
	secured.PUT("/recipes/:id/images/:imageId", imageHandler.ReplaceRecipeImage)
	secured.DELETE("/recipes/:id/images/:imageId", imageHandler.DeleteRecipeImage)

	// Tag routes
	secured.GET("/tags", tagHandler.List)
	secured.POST("/tags", tagHandler.Create)
	secured.GET("/tags/:id", tagHandler.Get)
	secured.PUT("/tags/:id", tagHandler.Update)
	secured.PATCH("/tags/:id", tagHandler.Patch)
	secured.DELETE("/tags/:id", tagHandler.Delete)

	// Ingredient routes
	secured.GET("/ingredients", ingredientHandler.List)
	secured.POST("/ingredients", ingredientHandler.Create)
	secured.GET("/ingredients/:id", ingredientHandler.Get)
	secured.PUT("/ingredients/:id", ingredientHandler.Update)
	secured.PATCH("/ingredients/:id", ingredientHandler.Patch)
	secured.DELETE("/ingredients/:id", ingredientHandler.Delete)

	// Ingredient image routes
	secured.GET("/ingredients/:id/images", imageHandler.ListIngredientImages)
	secured.POST("/ingredients/:id/images", imageHandler.UploadIngredientImage)
	secured.GET("/ingredients/:id/images/:imageId", imageHandler.GetIngredientImage)
	secured.PUT("/ingredients/:id/images/:imageId", imageHandler.ReplaceIngredientImage)
	secured.DELETE("/ingredients/:id/images/:imageId", imageHandler.DeleteIngredientImage)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// NewCustomValidator builds the validator used for request payloads.
// Field names in error messages come from json tags, not Go names.
func NewCustomValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
