package items

import (
	"errors"
	"net/http"
	"strconv"

	"kjejekaj/pkg/auditlog"
	custom_error "kjejekaj/pkg/errors"
	"kjejekaj/pkg/models"
	"kjejekaj/pkg/security"

	"github.com/gin-gonic/gin"
)

// HistoryStore reads back the audit trail written for a resource.
type HistoryStore interface {
	GetResourceLog(id int, resourceType string) ([]models.AuditLog, error)
}

type ItemHandler struct {
	Repository *ItemRepository
	AuditLog   *auditlog.Auditlog
	History    HistoryStore
}

func NewItemHandler(r *ItemRepository, auditLog *auditlog.Auditlog, history HistoryStore) *ItemHandler {
	return &ItemHandler{Repository: r, AuditLog: auditLog, History: history}
}

func (h *ItemHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/item-types", h.GetItemTypes)
}

func (h *ItemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/items", h.GetItems)
	router.GET("/item/:id", h.GetItem)
	router.GET("/item/:id/history", h.GetItemHistory)
	router.POST("/item", h.CreateItem)
	router.PUT("/item/:id", h.UpdateItem)
	router.DELETE("/item/:id", h.RemoveItem)
}

func (h *ItemHandler) GetItemTypes(c *gin.Context) {
	c.JSON(http.StatusOK, ItemTypes)
}

func (h *ItemHandler) GetItems(c *gin.Context) {
	items, err := h.Repository.GetItems()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item id"})
		return
	}

	item, err := h.Repository.GetItem(itemID)
	if errors.Is(err, ErrItemNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No item with id " + c.Param("id")})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, item)
}

// GetItemHistory lists the audit log entries for an item, oldest
// first: creation, edits, takes and returns.
func (h *ItemHandler) GetItemHistory(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item id"})
		return
	}

	history, err := h.History.GetResourceLog(itemID, "item")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *ItemHandler) CreateItem(c *gin.Context) {
	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	if !IsValidItemType(req.ItemType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown item type " + req.ItemType})
		return
	}

	exists, err := h.Repository.LocationExists(req.DefaultLocation)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Location with id '" + strconv.Itoa(req.DefaultLocation) + "' not found.",
		})
		return
	}

	item, err := h.Repository.PersistItem(req)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.JSON(http.StatusConflict, gin.H{"message": "An item with that code or name already exists."})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.AuditLog.Log("create", item, item, security.ActingUserID(c))

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) UpdateItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item id"})
		return
	}

	var req ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	if !IsValidItemType(req.ItemType) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown item type " + req.ItemType})
		return
	}

	item, err := h.Repository.UpdateItem(itemID, req)
	if errors.Is(err, ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{
			"message": "Item with id '" + c.Param("id") + "' not found.",
		})
		return
	}
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.JSON(http.StatusConflict, gin.H{"message": "An item with that code or name already exists."})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.AuditLog.Log("update", item, item, security.ActingUserID(c))

	c.JSON(http.StatusOK, item)
}

func (h *ItemHandler) RemoveItem(c *gin.Context) {
	itemID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid item id"})
		return
	}

	err = h.Repository.RemoveItem(itemID)
	if errors.Is(err, ErrItemNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Item not found"})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.AuditLog.Log("delete", nil, &models.Item{ID: itemID}, security.ActingUserID(c))

	c.JSON(http.StatusOK, itemID)
}
