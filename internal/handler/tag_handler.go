package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipebox/internal/repository"
	"recipebox/internal/service"
)

// TagHandler handles standalone tag endpoints.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagDetailResponse is a tag with its query-time recipe aggregate.
type TagDetailResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	RecipeCount int64  `json:"recipe_count"`
}

func newTagDetail(row *repository.TagWithCount) TagDetailResponse {
	return TagDetailResponse{ID: row.ID, Name: row.Name, RecipeCount: row.RecipeCount}
}

// PatchAttributeRequest allows a no-op PATCH with an empty body.
type PatchAttributeRequest struct {
	Name *string `json:"name"`
}

// List godoc
// @Summary List the caller's tags, newest first
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param assigned_only query int false "Only tags assigned to at least one recipe" Enums(0, 1)
// @Success 200 {array} TagDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	assignedOnly := c.QueryParam("assigned_only") == "1"
	rows, err := h.tagService.List(c.Request().Context(), userID, assignedOnly)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]TagDetailResponse, 0, len(rows))
	for i := range rows {
		out = append(out, newTagDetail(&rows[i]))
	}
	return c.JSON(http.StatusOK, out)
}

// Get godoc
// @Summary Get one of the caller's tags
// @Tags tags
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 200 {object} TagDetailResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [get]
func (h *TagHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	row, err := h.tagService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTagDetail(row))
}

// Create godoc
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body AttributeRequest true "Tag data"
// @Success 201 {object} TagResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Router /tags [post]
func (h *TagHandler) Create(c echo.Context) error {
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

	tag, err := h.tagService.Create(c.Request().Context(), userID, req.Name)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, TagResponse{ID: tag.ID, Name: tag.Name})
}

// Update godoc
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body AttributeRequest true "Tag data"
// @Success 200 {object} TagDetailResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [put]
func (h *TagHandler) Update(c echo.Context) error {
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

	if _, err := h.tagService.Update(c.Request().Context(), userID, id, req.Name); err != nil {
		return respondError(c, err)
	}

	row, err := h.tagService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTagDetail(row))
}

// Patch godoc
// @Summary Partially update a tag
// @Tags tags
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Param request body PatchAttributeRequest true "Tag changes"
// @Success 200 {object} TagDetailResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [patch]
func (h *TagHandler) Patch(c echo.Context) error {
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
		if _, err := h.tagService.Update(c.Request().Context(), userID, id, *req.Name); err != nil {
			return respondError(c, err)
		}
	}

	row, err := h.tagService.Get(c.Request().Context(), userID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, newTagDetail(row))
}

// Delete godoc
// @Summary Delete a tag; recipe associations are removed, recipes stay
// @Tags tags
// @Security BearerAuth
// @Param id path int true "Tag ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /tags/{id} [delete]
func (h *TagHandler) Delete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	id, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.tagService.Delete(c.Request().Context(), userID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
