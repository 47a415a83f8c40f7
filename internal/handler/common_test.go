package handler

import (
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"recipebox/internal/auth"
)

// setAuthenticatedUser plants a parsed token in the context the way the JWT
// middleware does for secured routes.
func setAuthenticatedUser(c echo.Context, userID uint) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: userID})
	c.Set("user", token)
}

func TestParseIDList(t *testing.T) {
	assert.Nil(t, parseIDList(""))
	assert.Equal(t, []uint{1, 2, 3}, parseIDList("1,2,3"))
	assert.Equal(t, []uint{1, 3}, parseIDList("1, 3"))
	// Unparseable entries are skipped rather than failing the request.
	assert.Equal(t, []uint{7}, parseIDList("x,7,"))
}

func TestImageURL(t *testing.T) {
	assert.Equal(t, "/media/recipes/1/a.png", imageURL("/media", "recipes/1/a.png"))
	assert.Equal(t, "/media/recipes/1/a.png", imageURL("/media/", "recipes/1/a.png"))
}
