package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func reportedHealth(t *testing.T) HealthStatus {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/health", nil)

	HealthCheckMiddleware()(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var status HealthStatus
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	return status
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Cleanup(func() { UpdateHealthStatus("ok") })

	status := reportedHealth(t)
	assert.Equal(t, "ok", status.Status)
	assert.NotEmpty(t, status.Uptime)

	UpdateHealthStatus("degraded")
	assert.Equal(t, "degraded", reportedHealth(t).Status)

	UpdateHealthStatus("ok")
	assert.Equal(t, "ok", reportedHealth(t).Status)
}
