package security

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// JWTMiddleware validates the bearer token and stores its claims on
// the request context under userID, name and email.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Authorization header missing"})
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		key, err := secretKey()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return key, nil
		})

		if err != nil || !token.Valid {
			message := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				message = "Token has expired"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": message})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
			return
		}

		if id, ok := claims["_id"].(float64); ok {
			c.Set("userID", int(id))
		}
		c.Set("name", claims["name"])
		c.Set("email", claims["email"])
		c.Next()
	}
}

// ActingUserID returns the authenticated user's id, or nil outside an
// authenticated request (the audit log stores it as nullable).
func ActingUserID(c *gin.Context) *int {
	value, exists := c.Get("userID")
	if !exists {
		return nil
	}
	id, ok := value.(int)
	if !ok {
		return nil
	}
	return &id
}

// GetUserEmailFromContext reads the email claim placed there by
// JWTMiddleware. Handlers resolve the acting user through it.
func GetUserEmailFromContext(c *gin.Context) (string, error) {
	value, exists := c.Get("email")
	if !exists {
		return "", fmt.Errorf("no authenticated user on request")
	}

	email, ok := value.(string)
	if !ok || email == "" {
		return "", fmt.Errorf("email claim is not a string")
	}

	return email, nil
}
