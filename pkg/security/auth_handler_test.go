package security

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"kjejekaj/internal/users"
	"kjejekaj/pkg/models"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) PersistUser(name, email string, hashedPassword []byte) (*models.User, error) {
	args := m.Called(name, email, hashedPassword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByName(name string) (*models.User, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func postJSON(t *testing.T, payload interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	body, err := json.Marshal(payload)
	assert.NoError(t, err)
	c.Request = httptest.NewRequest("POST", "/", bytes.NewBuffer(body))
	c.Request.Header.Set("Content-Type", "application/json")

	return c, w
}

func responseMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body["message"]
}

func TestRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	t.Run("missing fields are rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewAuthHandler(mockRepo)

		c, w := postJSON(t, gin.H{"name": "ana;", "email": "ana@example.com"})
		handler.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "All fields required.", responseMessage(t, w))
		mockRepo.AssertNotCalled(t, "PersistUser")
	})

	t.Run("name without the trailing marker is rejected", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewAuthHandler(mockRepo)

		c, w := postJSON(t, gin.H{"name": "ana", "email": "ana@example.com", "password": "skrivnost"})
		handler.Register(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Contact admin to register", responseMessage(t, w))
		mockRepo.AssertNotCalled(t, "PersistUser")
	})

	t.Run("marker is stripped before storage and a token is returned", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewAuthHandler(mockRepo)

		mockRepo.On("PersistUser", "ana", "ana@example.com", mock.Anything).
			Return(&models.User{ID: 1, Name: "ana", Email: "ana@example.com"}, nil)

		c, w := postJSON(t, gin.H{"name": "ana;", "email": "ana@example.com", "password": "skrivnost"})
		handler.Register(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])
		mockRepo.AssertExpectations(t)
	})
}

func TestLogin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("JWT_SECRET", "test-secret")

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("skrivnost"), bcrypt.MinCost)
	assert.NoError(t, err)

	t.Run("unknown name", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewAuthHandler(mockRepo)

		mockRepo.On("GetUserByName", "neznanec").Return(nil, users.ErrUserNotFound)

		c, w := postJSON(t, gin.H{"name": "neznanec", "password": "skrivnost"})
		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Incorrect username.", responseMessage(t, w))
	})

	t.Run("wrong password", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewAuthHandler(mockRepo)

		mockRepo.On("GetUserByName", "ana").Return(&models.User{
			ID: 1, Name: "ana", Email: "ana@example.com", PasswordHash: string(hashedPassword),
		}, nil)

		c, w := postJSON(t, gin.H{"name": "ana", "password": "napacno"})
		handler.Login(c)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Incorrect password.", responseMessage(t, w))
	})

	t.Run("valid credentials return a token", func(t *testing.T) {
		mockRepo := new(MockUserRepository)
		handler := NewAuthHandler(mockRepo)

		mockRepo.On("GetUserByName", "ana").Return(&models.User{
			ID: 1, Name: "ana", Email: "ana@example.com", PasswordHash: string(hashedPassword),
		}, nil)

		c, w := postJSON(t, gin.H{"name": "ana", "password": "skrivnost"})
		handler.Login(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var body map[string]string
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.NotEmpty(t, body["token"])
	})
}
