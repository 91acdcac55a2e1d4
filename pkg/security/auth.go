package security

import (
	"errors"
	"os"
	"sync"
	"time"

	"kjejekaj/pkg/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

const tokenLifetime = 7 * 24 * time.Hour

var (
	jwtSecret     []byte
	jwtSecretOnce sync.Once
	jwtSecretErr  error
)

func secretKey() ([]byte, error) {
	jwtSecretOnce.Do(func() {
		secret := os.Getenv("JWT_SECRET")
		if secret == "" {
			// main loads .env before this runs; the retry covers tests
			// and tools that skip that path.
			_ = godotenv.Load()
			secret = os.Getenv("JWT_SECRET")
		}
		if secret == "" {
			jwtSecretErr = errors.New("JWT_SECRET environment variable is not set")
			return
		}
		jwtSecret = []byte(secret)
	})

	return jwtSecret, jwtSecretErr
}

// GenerateJWT issues the bearer token returned by register and login.
// The claim keys match what the Angular client decodes: _id, name,
// email and exp.
func GenerateJWT(user *models.User) (string, error) {
	key, err := secretKey()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"_id":   user.ID,
		"name":  user.Name,
		"email": user.Email,
		"exp":   time.Now().Add(tokenLifetime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(key)
}
