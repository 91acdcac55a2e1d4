package security

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"kjejekaj/internal/rate_limiter"
	"kjejekaj/internal/users"
	custom_error "kjejekaj/pkg/errors"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

// registrationSentinel is the trailing marker a new account name must
// carry. It stands in for an invitation mechanism: people who were not
// told about it get turned away. Stripped before storage.
const registrationSentinel = ";"

type AuthHandler struct {
	users       users.UserRepository
	rateLimiter *rate_limiter.RateLimiter
}

func NewAuthHandler(userRepo users.UserRepository) *AuthHandler {
	return &AuthHandler{
		users:       userRepo,
		rateLimiter: rate_limiter.NewRateLimiter(10, 5*time.Minute), // 10 attempts per 5 minutes
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/register", h.Register)
	router.POST("/login", h.Login)
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Email == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required."})
		return
	}

	if !strings.HasSuffix(req.Name, registrationSentinel) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Contact admin to register"})
		return
	}
	name := strings.TrimSuffix(req.Name, registrationSentinel)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
		return
	}

	user, err := h.users.PersistUser(name, req.Email, hashedPassword)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.JSON(http.StatusConflict, gin.H{"message": "A user with that name or email already exists."})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	token, err := GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AuthHandler) Login(c *gin.Context) {
	clientKey := h.clientKey(c)
	if !h.rateLimiter.IsAllowed(clientKey) {
		remaining := h.rateLimiter.GetRemainingRequests(clientKey)
		c.Header("X-RateLimit-Limit", "10")
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.JSON(http.StatusTooManyRequests, gin.H{
			"message": "Too many login attempts. Try again later.",
		})
		return
	}

	var req struct {
		Name     string `json:"name"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "All fields required."})
		return
	}

	user, err := h.users.GetUserByName(req.Name)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect username."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password."})
		return
	}

	token, err := GenerateJWT(user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// clientKey identifies the caller for rate limiting. Proxied requests
// carry the real address in X-Forwarded-For; private addresses get the
// User-Agent mixed in so one NAT does not share a single bucket.
func (h *AuthHandler) clientKey(c *gin.Context) string {
	clientIP := c.GetHeader("X-Forwarded-For")
	if clientIP == "" {
		clientIP = c.GetHeader("X-Real-IP")
	}
	if clientIP == "" {
		clientIP = c.ClientIP()
	}

	if strings.Contains(clientIP, ",") {
		clientIP = strings.Split(clientIP, ",")[0]
	}

	if isPrivateIP(clientIP) {
		clientIP = clientIP + ":" + c.GetHeader("User-Agent")
	}

	return clientIP
}

func isPrivateIP(ip string) bool {
	privatePrefixes := []string{
		"10.", "192.168.", "127.", "169.254.",
		"172.16.", "172.17.", "172.18.", "172.19.",
		"172.20.", "172.21.", "172.22.", "172.23.",
		"172.24.", "172.25.", "172.26.", "172.27.",
		"172.28.", "172.29.", "172.30.", "172.31.",
		"::1", "fc00::", "fe80::",
	}

	for _, prefix := range privatePrefixes {
		if strings.HasPrefix(ip, prefix) {
			return true
		}
	}
	return false
}
