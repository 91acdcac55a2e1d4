package routes

import (
	"kjejekaj/internal/core/container"
	"kjejekaj/internal/middleware"
	"kjejekaj/pkg/security"

	"github.com/gin-gonic/gin"
)

// RegisterPublicRoutes wires the endpoints reachable without a token:
// auth itself plus the read-only location and item-type listings.
func RegisterPublicRoutes(router *gin.Engine, container *container.Container) {
	public := router.Group("/api")

	container.AuthHandler.RegisterRoutes(public)
	container.LocationHandler.RegisterPublicRoutes(public)
	container.ItemHandler.RegisterPublicRoutes(public)
}

func RegisterProtectedRoutes(router *gin.Engine, container *container.Container) {
	protected := router.Group("/api")
	protected.Use(security.JWTMiddleware())

	container.LocationHandler.RegisterRoutes(protected)
	container.ItemHandler.RegisterRoutes(protected)
	container.TakeHandler.RegisterRoutes(protected)
}

func RegisterUtilityRoutes(router *gin.Engine) {
	router.GET("/health", middleware.HealthCheckMiddleware())
}
