package locations

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

type LocationHandler struct {
	Repository *LocationRepository
	AuditLog   *auditlog.Auditlog
	History    HistoryStore
}

func NewLocationHandler(r *LocationRepository, auditLog *auditlog.Auditlog, history HistoryStore) *LocationHandler {
	return &LocationHandler{Repository: r, AuditLog: auditLog, History: history}
}

func (h *LocationHandler) RegisterPublicRoutes(router *gin.RouterGroup) {
	router.GET("/locations", h.GetLocations)
}

func (h *LocationHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/locations/:type", h.GetLocationsByType)
	router.GET("/location/:id", h.GetLocation)
	router.GET("/location/:id/history", h.GetLocationHistory)
	router.POST("/location", h.CreateLocation)
	router.DELETE("/location/:id", h.RemoveLocation)
}

func (h *LocationHandler) GetLocations(c *gin.Context) {
	locations, err := h.Repository.GetLocations()
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocationsByType(c *gin.Context) {
	locationType := models.LocationType(c.Param("type"))
	if locationType != models.LocationPermanent && locationType != models.LocationTemporary {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Unknown location type " + c.Param("type")})
		return
	}

	locations, err := h.Repository.GetLocationsByType(locationType)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, locations)
}

func (h *LocationHandler) GetLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid location id"})
		return
	}

	location, err := h.Repository.GetLocation(locationID)
	if errors.Is(err, ErrLocationNotFound) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No location with id " + c.Param("id")})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) GetLocationHistory(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid location id"})
		return
	}

	history, err := h.History.GetResourceLog(locationID, "location")
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, history)
}

func (h *LocationHandler) CreateLocation(c *gin.Context) {
	var req LocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request payload: " + err.Error()})
		return
	}

	location, err := h.Repository.PersistLocation(req)
	if _, ok := err.(*custom_error.UniqueViolationError); ok {
		c.JSON(http.StatusConflict, gin.H{"message": "A location with that name already exists."})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.AuditLog.Log("create", location, location, security.ActingUserID(c))

	c.JSON(http.StatusOK, location)
}

func (h *LocationHandler) RemoveLocation(c *gin.Context) {
	locationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid location id"})
		return
	}

	err = h.Repository.RemoveLocation(locationID)
	if errors.Is(err, ErrLocationNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Location not found"})
		return
	}
	if _, ok := err.(*custom_error.ForeignKeyViolationError); ok {
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
		return
	} else if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	h.AuditLog.Log("delete", nil, &models.Location{ID: locationID}, security.ActingUserID(c))

	c.Status(http.StatusOK)
}
