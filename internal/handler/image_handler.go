package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"recipebox/internal/service"
)

// ImageHandler handles image endpoints nested under recipes and
// ingredients. Authorization policy differs from top-level resources:
// 404 when the parent is absent, 403 when it belongs to someone else.
type ImageHandler struct {
	imageService service.ImageService
	mediaBaseURL string
}

// NewImageHandler creates a new image handler.
func NewImageHandler(imageService service.ImageService, mediaBaseURL string) *ImageHandler {
	return &ImageHandler{imageService: imageService, mediaBaseURL: mediaBaseURL}
}

// ListRecipeImages godoc
// @Summary List images attached to a recipe
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Success 200 {array} ImageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/images [get]
func (h *ImageHandler) ListRecipeImages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	images, err := h.imageService.ListRecipeImages(c.Request().Context(), userID, recipeID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
	}
	return c.JSON(http.StatusOK, out)
}

// GetRecipeImage godoc
// @Summary Get a recipe image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param imageId path int true "Image ID"
// @Success 200 {object} ImageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/images/{imageId} [get]
func (h *ImageHandler) GetRecipeImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseIDParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.imageService.GetRecipeImage(c.Request().Context(), userID, recipeID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
}

// UploadRecipeImage godoc
// @Summary Attach an image to a recipe
// @Tags images
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param image formData file true "Image file (max 2000KB)"
// @Success 201 {object} ImageResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/images [post]
func (h *ImageHandler) UploadRecipeImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, err := readImageFile(c)
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.imageService.UploadRecipeImage(c.Request().Context(), userID, recipeID, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
}

// ReplaceRecipeImage godoc
// @Summary Replace a recipe image's binary under a fresh URL
// @Tags images
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param imageId path int true "Image ID"
// @Param image formData file true "Image file (max 2000KB)"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/images/{imageId} [put]
func (h *ImageHandler) ReplaceRecipeImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseIDParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}
	data, err := readImageFile(c)
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.imageService.ReplaceRecipeImage(c.Request().Context(), userID, recipeID, id, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
}

// DeleteRecipeImage godoc
// @Summary Detach and delete a recipe image row
// @Tags images
// @Security BearerAuth
// @Param id path int true "Recipe ID"
// @Param imageId path int true "Image ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /recipes/{id}/images/{imageId} [delete]
func (h *ImageHandler) DeleteRecipeImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	recipeID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseIDParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.imageService.DeleteRecipeImage(c.Request().Context(), userID, recipeID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ListIngredientImages godoc
// @Summary List images attached to an ingredient
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Success 200 {array} ImageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id}/images [get]
func (h *ImageHandler) ListIngredientImages(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	images, err := h.imageService.ListIngredientImages(c.Request().Context(), userID, ingredientID)
	if err != nil {
		return respondError(c, err)
	}

	out := make([]ImageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
	}
	return c.JSON(http.StatusOK, out)
}

// GetIngredientImage godoc
// @Summary Get an ingredient image
// @Tags images
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param imageId path int true "Image ID"
// @Success 200 {object} ImageResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id}/images/{imageId} [get]
func (h *ImageHandler) GetIngredientImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseIDParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.imageService.GetIngredientImage(c.Request().Context(), userID, ingredientID, id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
}

// UploadIngredientImage godoc
// @Summary Attach an image to an ingredient
// @Tags images
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param image formData file true "Image file (max 2000KB)"
// @Success 201 {object} ImageResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id}/images [post]
func (h *ImageHandler) UploadIngredientImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	data, err := readImageFile(c)
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.imageService.UploadIngredientImage(c.Request().Context(), userID, ingredientID, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusCreated, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
}

// ReplaceIngredientImage godoc
// @Summary Replace an ingredient image's binary under a fresh URL
// @Tags images
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param imageId path int true "Image ID"
// @Param image formData file true "Image file (max 2000KB)"
// @Success 200 {object} ImageResponse
// @Failure 400 {object} errors.FieldErrors
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id}/images/{imageId} [put]
func (h *ImageHandler) ReplaceIngredientImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseIDParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}
	data, err := readImageFile(c)
	if err != nil {
		return respondError(c, err)
	}

	img, err := h.imageService.ReplaceIngredientImage(c.Request().Context(), userID, ingredientID, id, data)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(http.StatusOK, ImageResponse{ID: img.ID, Image: imageURL(h.mediaBaseURL, img.ImagePath)})
}

// DeleteIngredientImage godoc
// @Summary Detach and delete an ingredient image row
// @Tags images
// @Security BearerAuth
// @Param id path int true "Ingredient ID"
// @Param imageId path int true "Image ID"
// @Success 204
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /ingredients/{id}/images/{imageId} [delete]
func (h *ImageHandler) DeleteIngredientImage(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}
	ingredientID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}
	id, err := parseIDParam(c, "imageId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.imageService.DeleteIngredientImage(c.Request().Context(), userID, ingredientID, id); err != nil {
		return respondError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
