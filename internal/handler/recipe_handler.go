package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"recipebox/internal/model"
	"recipebox/internal/service"
)

// RecipeHandler handles recipe endpoints.
type RecipeHandler struct {
	recipeService service.RecipeService
	mediaBaseURL  string
}

// NewRecipeHandler creates a new recipe handler.
func NewRecipeHandler(recipeService service.RecipeService, mediaBaseURL string) *RecipeHandler {
	return &RecipeHandler{recipeService: recipeService, mediaBaseURL: mediaBaseURL}
}

// AttributeRequest names a tag or ingredient in a recipe payload.
type AttributeRequest struct {
	Name string `json:"name" validate:"required"`
}

// CreateRecipeRequest represents a recipe creation payload. There is no
// owner field: ownership always comes from the authenticated user.
type CreateRecipeRequest struct {
	Title       string             `json:"title" validate:"required"`
	TimeMinutes *int               `json:"time_minutes" validate:"required,gte=0"`
	Price       *decimal.Decimal   `json:"price" validate:"required"`
	Description string             `json:"description"`
	Link        string             `json:"link"`
	Tags        []AttributeRequest `json:"tags" validate:"omitempty,dive"`
	Ingredients []AttributeRequest `json:"ingredients" validate:"omitempty,dive"`
}

// UpdateRecipeRequest represents PUT/PATCH payloads. Scalar pointers left
// nil stay untouched; for the relation fields nil means omitted, an empty
// list clears, entries replace.
type UpdateRecipeRequest struct {
	Title       *string             `json:"title"`
	TimeMinutes *int                `json:"time_minutes" validate:"omitempty,gte=0"`
	Price       *decimal.Decimal    `json:"price"`
	Description *string             `json:"description"`
	Link        *string             `json:"link"`
	Tags        *[]AttributeRequest `json:"tags" validate:"omitempty,dive"`
	Ingredients *[]AttributeRequest `json:"ingredients" validate:"omitempty,dive"`
}

// TagResponse is the nested tag projection inside recipes.
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// ImageResponse is an image row with its derived URL.
type ImageResponse struct {
	ID    uint   `json:"id"`
	Image string `json:"image"`
}

// IngredientResponse is the nested ingredient projection in recipe detail.
type IngredientResponse struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Images []ImageResponse `json:"images"`
}

// RecipeListItem is the list projection: no description, no ingredients.
type RecipeListItem struct {
	ID          uint            `json:"id"`
	Title       string          `json:"title"`
	TimeMinutes int             `json:"time_minutes"`
	Price       decimal.Decimal `json:"price"`
	Link        string          `json:"link"`
	Tags        []TagResponse   `json:"tags"`
	Images      []ImageResponse `json:"images"`
}

// RecipeDetail is the detail projection: list fields plus description and
// full ingredient detail.
type RecipeDetail struct {
	RecipeListItem
	Description string               `json:"description"`
	Ingredients []IngredientResponse `json:"ingredients"`
}

func (h *RecipeHandler) newListItem(recipe *model.Recipe) RecipeListItem {
	tags := make([]TagResponse, 0, len(recipe.Tags))
	for _, t := range recipe.Tags {
		tags = append(tags, TagResponse{ID: t.ID, Name: t.Name})
	}
	images := make([]ImageResponse, 0, len(recipe.Images))
	for _, img := range recipe.Images {
		images = append(images, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
	}
	return RecipeListItem{
		ID:          recipe.ID,
		Title:       recipe.Title,
		TimeMinutes: recipe.TimeMinutes,
		Price:       recipe.Price,
		Link:        recipe.Link,
		Tags:        tags,
		Images:      images,
	}
}

func (h *RecipeHandler) newDetail(recipe *model.Recipe) RecipeDetail {
	ingredients := make([]IngredientResponse, 0, len(recipe.Ingredients))
	for _, ing := range recipe.Ingredients {
		images := make([]ImageResponse, 0, len(ing.Images))
		for _, img := range ing.Images {
			images = append(images, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
		}
		ingredients = append(ingredients, IngredientResponse{ID: ing.ID, Name: ing.Name, Images: images})
	}
	return RecipeDetail{
		RecipeListItem: h.newListItem(recipe),
		Description:    recipe.Description,
		Ingredients:    ingredients,
	}
}

func attributeInputs(items []AttributeRequest) []service.AttributeInput {
	out := make([]service.AttributeInput, 0, len(items))
	for _, item := range items {
		out = append(out, service.AttributeInput{Name: item.Name})
	}
	return out
}

func optionalAttributeInputs(items *[]AttributeRequest) *[]service.AttributeInput {
	if items == nil {
		return nil
	}
	converted := attributeInputs(*items)
	return &converted
}

// List godoc
// @Summary List the caller's recipes, newest first
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param tags query string false "Comma-separated tag IDs"
// @Param ingredients query string false "Comma-separated ingredient IDs"
// @Success 200 {array} RecipeListItem
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [get]
func (h *RecipeHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	tagIDs := parseIDList(c.QueryParam("tags"))
	ingredientIDs := parseIDList(c.QueryParam("ingredients"))

	recipes, err := h.recipeService.List(c.Request().Context(), userID, tagIDs, ingredientIDs)
	if err != nil {
		return respondError(c, err)
	}

	items := make([]RecipeListItem, 0, len(recipes))
	for i := range recipes {
		items = append(items, h.newListItem(&recipes[i]))
	}
	return c.JSON(http.StatusOK, items)
}

// Get godoc
// @Summary Get one of the caller's recipes
// @Tags recipes
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {object} RecipeDetail
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [get]
func (h *RecipeHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	recipe, err := h.recipeService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.newDetail(recipe))
}

// Create godoc
// @Summary Create a recipe with optional tag/ingredient payloads
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateRecipeRequest true "Recipe data"
// @Success 201 {object} RecipeDetail
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /recipes [post]
func (h *RecipeHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	recipe, err := h.recipeService.Create(c.Request().Context(), userID, service.CreateRecipeInput{
		Title:       req.Title,
		TimeMinutes: *req.TimeMinutes,
		Price:       *req.Price,
		Description: req.Description,
		Link:        req.Link,
		Tags:        attributeInputs(req.Tags),
		Ingredients: attributeInputs(req.Ingredients),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, h.newDetail(recipe))
}

// Update godoc
// @Summary Update a recipe (PUT and PATCH share replace-not-merge relation semantics)
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body UpdateRecipeRequest true "Recipe changes"
// @Success 200 {object} RecipeDetail
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [patch]
func (h *RecipeHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req UpdateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, service.UpdateRecipeInput{
		Title:       req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: req.Description,
		Link:        req.Link,
		Tags:        optionalAttributeInputs(req.Tags),
		Ingredients: optionalAttributeInputs(req.Ingredients),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.newDetail(recipe))
}

// Put godoc
// @Summary Replace a recipe; scalar fields are mandatory
// @Tags recipes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param request body CreateRecipeRequest true "Full recipe data"
// @Success 200 {object} RecipeDetail
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [put]
func (h *RecipeHandler) Put(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req CreateRecipeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	// Relation fields keep PATCH semantics even on PUT: an absent field
	// leaves associations untouched.
	var tags, ingredients *[]service.AttributeInput
	if req.Tags != nil {
		converted := attributeInputs(req.Tags)
		tags = &converted
	}
	if req.Ingredients != nil {
		converted := attributeInputs(req.Ingredients)
		ingredients = &converted
	}

	recipe, err := h.recipeService.Update(c.Request().Context(), userID, id, service.UpdateRecipeInput{
		Title:       &req.Title,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Description: &req.Description,
		Link:        &req.Link,
		Tags:        tags,
		Ingredients: ingredients,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.newDetail(recipe))
}

// Delete godoc
// @Summary Delete a recipe; images and associations cascade
// @Tags recipes
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id} [delete]
func (h *RecipeHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.recipeService.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
