package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func checkHealth(t *testing.T, dbUp, redisUp bool) HealthResponse {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := NewHealthController(func() bool { return dbUp }, func() bool { return redisUp })
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	h.Check(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}
	var response HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	return response
}

func TestHealthCheck(t *testing.T) {
	t.Run("reports ok when both stores answer", func(t *testing.T) {
		response := checkHealth(t, true, true)
		if response.Status != "ok" {
			t.Errorf("expected status ok, got %q", response.Status)
		}
		if response.Database != "connected" || response.Redis != "connected" {
			t.Errorf("expected both stores connected, got db=%q redis=%q", response.Database, response.Redis)
		}
	})

	t.Run("degrades when redis is down", func(t *testing.T) {
		response := checkHealth(t, true, false)
		if response.Status != "degraded" {
			t.Errorf("expected status degraded, got %q", response.Status)
		}
		if response.Redis != "disconnected" {
			t.Errorf("expected redis disconnected, got %q", response.Redis)
		}
	})

	t.Run("degrades when the database is down", func(t *testing.T) {
		response := checkHealth(t, false, true)
		if response.Status != "degraded" {
			t.Errorf("expected status degraded, got %q", response.Status)
		}
		if response.Database != "disconnected" {
			t.Errorf("expected database disconnected, got %q", response.Database)
		}
	})
}
