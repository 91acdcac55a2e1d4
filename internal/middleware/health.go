package middleware

import (
	"database/sql"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type HealthStatus struct {
	Status      string    `json:"status"`
	LastChecked time.Time `json:"last_checked"`
	Uptime      string    `json:"uptime"`
	Version     string    `json:"version"`
}

var (
	healthStatus = HealthStatus{
		Status:  "ok",
		Version: "1.0.0",
	}
	healthMutex sync.RWMutex
	startTime   = time.Now()
)

func HealthCheckMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		healthMutex.RLock()
		defer healthMutex.RUnlock()

		status := healthStatus
		status.Uptime = time.Since(startTime).String()
		status.LastChecked = time.Now()

		c.JSON(http.StatusOK, status)
	}
}

// UpdateHealthStatus flips the reported status when a dependency
// becomes unavailable or recovers.
func UpdateHealthStatus(status string) {
	healthMutex.Lock()
	defer healthMutex.Unlock()

	healthStatus.Status = status
}

// MonitorDatabase pings the database every 30 seconds and reflects the
// result in the health status. Runs for the lifetime of the process.
func MonitorDatabase(db *sql.DB) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for range ticker.C {
		if err := db.Ping(); err != nil {
			UpdateHealthStatus("degraded")
		} else {
			UpdateHealthStatus("ok")
		}
	}
}
