package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHealth_Methods(t *testing.T) {
	t.Parallel()

	r := gin.New()
	r.GET("/healthz", Health)
	r.HEAD("/healthz", Health)
	r.OPTIONS("/healthz", Health)

	tests := []struct {
		method         string
		expectedStatus int
		expectBody     bool
	}{
		{http.MethodGet, http.StatusOK, true},
		{http.MethodHead, http.StatusOK, false},
		{http.MethodOptions, http.StatusNoContent, false},
	}

	for _, tt := range tests {
		t.Run(tt.method, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(tt.method, "/healthz", nil)
			r.ServeHTTP(w, req)

			if w.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, w.Code)
			}
			if w.Header().Get("Cache-Control") != "no-store" {
				t.Errorf("expected Cache-Control 'no-store', got %q", w.Header().Get("Cache-Control"))
			}
			if tt.expectBody {
				var response map[string]string
				if err := json.Unmarshal(w.Body.Bytes(), &response); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if response["status"] != "ok" {
					t.Errorf("expected status 'ok', got %q", response["status"])
				}
			}
		})
	}
}

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	return db
}

func serveReady(t *testing.T, handler gin.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	r := gin.New()
	r.GET("/readyz", handler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	r.ServeHTTP(w, req)
	return w
}

func TestReady_AllDependenciesUp(t *testing.T) {
	db := openTestDB(t)
	rdb, mock := redismock.NewClientMock()
	mock.ExpectPing().SetVal("PONG")

	w := serveReady(t, Ready(db, rdb))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var checks map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &checks); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if checks["database"] != "ok" || checks["redis"] != "ok" {
		t.Errorf("expected all checks ok, got %v", checks)
	}
}

func TestReady_WithoutRedis(t *testing.T) {
	db := openTestDB(t)

	w := serveReady(t, Ready(db, nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var checks map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &checks); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if _, reported := checks["redis"]; reported {
		t.Errorf("expected no redis check without a client, got %v", checks)
	}
}

func TestReady_DatabaseDown(t *testing.T) {
	db := openTestDB(t)
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying connection: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("failed to close connection: %v", err)
	}

	w := serveReady(t, Ready(db, nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}
}

func TestReady_RedisDown(t *testing.T) {
	db := openTestDB(t)
	rdb, mock := redismock.NewClientMock()
	mock.ExpectPing().SetErr(os.ErrDeadlineExceeded)

	w := serveReady(t, Ready(db, rdb))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status %d, got %d", http.StatusServiceUnavailable, w.Code)
	}

	var checks map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &checks); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if checks["database"] != "ok" || checks["redis"] != "unreachable" {
		t.Errorf("unexpected checks: %v", checks)
	}
}
