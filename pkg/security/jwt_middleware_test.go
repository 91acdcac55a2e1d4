package security

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"kjejekaj/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func authRequest(t *testing.T, token string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/", nil)
	if token != "" {
		c.Request.Header.Set("Authorization", "Bearer "+token)
	}
	return c, w
}

func TestJWTMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("valid token exposes the claims on the context", func(t *testing.T) {
		token, err := GenerateJWT(&models.User{ID: 7, Name: "ana", Email: "ana@example.com"})
		assert.NoError(t, err)

		c, _ := authRequest(t, token)
		JWTMiddleware()(c)

		assert.False(t, c.IsAborted())

		userID := ActingUserID(c)
		assert.NotNil(t, userID)
		assert.Equal(t, 7, *userID)

		email, err := GetUserEmailFromContext(c)
		assert.NoError(t, err)
		assert.Equal(t, "ana@example.com", email)
	})

	t.Run("missing header", func(t *testing.T) {
		c, w := authRequest(t, "")
		JWTMiddleware()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		claims := jwt.MapClaims{
			"_id":   float64(7),
			"name":  "ana",
			"email": "ana@example.com",
			"exp":   time.Now().Add(-time.Hour).Unix(),
		}
		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
		assert.NoError(t, err)

		c, w := authRequest(t, expired)
		JWTMiddleware()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Token has expired", body["message"])
	})

	t.Run("token signed with another key", func(t *testing.T) {
		claims := jwt.MapClaims{
			"_id": float64(7),
			"exp": time.Now().Add(time.Hour).Unix(),
		}
		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
		assert.NoError(t, err)

		c, w := authRequest(t, forged)
		JWTMiddleware()(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestActingUserID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Nil(t, ActingUserID(c))

	c.Set("userID", 7)
	userID := ActingUserID(c)
	assert.NotNil(t, userID)
	assert.Equal(t, 7, *userID)
}
