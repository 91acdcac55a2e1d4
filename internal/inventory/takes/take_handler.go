package takes

import (
	"errors"
	"net/http"
	"strconv"

	"kjejekaj/internal/inventory/items"
	"kjejekaj/internal/locations"
	"kjejekaj/internal/users"
	"kjejekaj/pkg/models"
	"kjejekaj/pkg/security"

	"github.com/gin-gonic/gin"
)

type TakeHandler struct {
	service *TakeService
	users   users.UserRepository
}

func NewTakeHandler(service *TakeService, userRepo users.UserRepository) *TakeHandler {
	return &TakeHandler{
		service: service,
		users:   userRepo,
	}
}

func (h *TakeHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.POST("/items-take", h.TakeItems)
	router.POST("/item-return", h.ReturnItem)
	router.GET("/available-items/:locationId", h.AvailableItems)
	router.GET("/my-items", h.MyItems)
}

func (h *TakeHandler) TakeItems(c *gin.Context) {
	var req models.TakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	user, ok := h.actingUser(c)
	if !ok {
		return
	}

	err := h.service.TakeItems(req, user)
	if errors.Is(err, items.ErrItemNotFound) || errors.Is(err, locations.ErrLocationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
		return
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Items were successfully taken."})
}

func (h *TakeHandler) ReturnItem(c *gin.Context) {
	var req models.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	user, ok := h.actingUser(c)
	if !ok {
		return
	}

	if err := h.service.ReturnItem(req, user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item was successfully returned."})
}

func (h *TakeHandler) AvailableItems(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("locationId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid location id"})
		return
	}

	available, err := h.service.AvailableItems(locationID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, available)
}

func (h *TakeHandler) MyItems(c *gin.Context) {
	myLocations, err := h.service.MyItems()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, myLocations)
}

// actingUser resolves the authenticated user from the token's email
// claim. Writes the error response itself when resolution fails.
func (h *TakeHandler) actingUser(c *gin.Context) (*models.User, bool) {
	email, err := security.GetUserEmailFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
		return nil, false
	}

	user, err := h.users.GetUserByEmail(email)
	if errors.Is(err, users.ErrUserNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found."})
		return nil, false
	} else if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return nil, false
	}

	return user, true
}
