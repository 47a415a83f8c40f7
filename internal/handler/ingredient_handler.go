package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipebox/internal/repository"
	"recipebox/internal/service"
)

// IngredientHandler handles standalone ingredient endpoints.
type IngredientHandler struct {
	ingredientService service.IngredientService
	mediaBaseURL      string
}

// NewIngredientHandler creates a new ingredient handler.
func NewIngredientHandler(ingredientService service.IngredientService, mediaBaseURL string) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService, mediaBaseURL: mediaBaseURL}
}

// IngredientDetailResponse is an ingredient with aggregate and images.
type IngredientDetailResponse struct {
	ID          uint            `json:"id"`
	Name        string          `json:"name"`
	RecipeCount int64           `json:"recipe_count"`
	Images      []ImageResponse `json:"images"`
}

func (h *IngredientHandler) newDetail(row *repository.IngredientWithCount) IngredientDetailResponse {
	images := make([]ImageResponse, 0, len(row.Images))
	for _, img := range row.Images {
		images = append(images, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
	}
	return IngredientDetailResponse{ID: row.ID, Name: row.Name, RecipeCount: row.RecipeCount, Images: images}
}

// List godoc
// @Summary List the caller's ingredients, newest first
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Only ingredients assigned to at least one recipe" Enums(0, 1)
// @Success 200 {array} IngredientDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [get]
func (h *IngredientHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	assignedOnly := c.QueryParam("assigned_only") == "1"
	rows, err := h.ingredientService.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]IngredientDetailResponse, 0, len(rows))
	for i := range rows {
		out = append(out, h.newDetail(&rows[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get one of the caller's ingredients
// @Tags ingredients
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {object} IngredientDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [get]
func (h *IngredientHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	row, err := h.ingredientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.newDetail(row))
}

// Create godoc
// @Summary Create an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AttributeRequest true "Ingredient data"
// @Success 201 {object} TagResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /ingredients [post]
func (h *IngredientHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req AttributeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	ingredient, err := h.ingredientService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, TagResponse{ID: ingredient.ID, Name: ingredient.Name})
}

// Update godoc
// @Summary Rename an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body AttributeRequest true "Ingredient data"
// @Success 200 {object} IngredientDetailResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [put]
func (h *IngredientHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req AttributeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}
	if err := c.Validate(&req); err != nil {
		return validationError(c, err)
	}

	if _, err := h.ingredientService.Update(c.Request().Context(), userID, id, req.Name); err != nil {
		return respondError(c, err)
	}

	row, err := h.ingredientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.newDetail(row))
}

// Patch godoc
// @Summary Partially update an ingredient
// @Tags ingredients
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param request body PatchAttributeRequest true "Ingredient changes"
// @Success 200 {object} IngredientDetailResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [patch]
func (h *IngredientHandler) Patch(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req PatchAttributeRequest
	if err := c.Bind(&req); err != nil {
		return bindError(c)
	}

	if req.Name != nil {
		if _, err := h.ingredientService.Update(c.Request().Context(), userID, id, *req.Name); err != nil {
			return respondError(c, err)
		}
	}

	row, err := h.ingredientService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, h.newDetail(row))
}

// Delete godoc
// @Summary Delete an ingredient; its images cascade
// @Tags ingredients
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id} [delete]
func (h *IngredientHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.ingredientService.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
