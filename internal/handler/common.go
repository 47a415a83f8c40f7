package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"

	"recipebox/internal/auth"
	"recipebox/internal/errors"
)

// currentUserID extracts the authenticated user from the JWT set by the
// auth middleware. Handlers behind the secured group can rely on it.
func currentUserID(c echo.Context) (uint, error) {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	claims, ok := token.Claims.(*auth.Claims)
	if !ok {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	return claims.UserID, nil
}

// respondError renders a domain error with its mapped status and body.
func respondError(c echo.Context, err error) error {
	httpErr := errors.MapErrorToHTTP(err)
	return c.JSON(httpErr.StatusCode, httpErr.Body)
}

func bindError(c echo.Context) error {
	return c.JSON(http.StatusBadRequest, errors.ErrorResponse{Detail: "malformed request body"})
}

func validationError(c echo.Context, err error) error {
	return c.JSON(http.StatusBadRequest, errors.FromValidation(err))
}

func parseIDParam(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, errors.ErrNotFound
	}
	return uint(id), nil
}

// parseIDList splits a comma-separated query value into IDs, skipping
// entries that do not parse.
func parseIDList(value string) []uint {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		if id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32); err == nil {
			ids = append(ids, uint(id))
		}
	}
	return ids
}

// imageURL derives the public URL for a stored blob path.
func imageURL(baseURL, path string) string {
	return strings.TrimRight(baseURL, "/") + "/" + path
}

// readImageFile pulls the uploaded binary from the multipart `image` field.
func readImageFile(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile("image")
	if err != nil {
		return nil, errors.NewFieldError("image", "No image was submitted.")
	}
	f, err := fh.Open()
	if err != nil {
		return nil, errors.NewFieldError("image", "The submitted file could not be read.")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, errors.NewFieldError("image", "The submitted file could not be read.")
	}
	return data, nil
}
