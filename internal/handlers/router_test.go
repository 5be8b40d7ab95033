package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SAP-F-2025/wellness-service/internal/auth"
	"github.com/SAP-F-2025/wellness-service/internal/cache"
	"github.com/SAP-F-2025/wellness-service/internal/events"
	"github.com/SAP-F-2025/wellness-service/internal/models"
	sqliterepo "github.com/SAP-F-2025/wellness-service/internal/repositories/sqlite"
	"github.com/SAP-F-2025/wellness-service/internal/services"
	"github.com/SAP-F-2025/wellness-service/internal/utils"
	"github.com/SAP-F-2025/wellness-service/internal/validator"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	err = db.AutoMigrate(&models.User{}, &models.MoodEntry{}, &models.LinkedAccount{}, &models.StressAlert{})
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	repo := sqliterepo.NewSQLiteRepository(sqliterepo.RepositoryConfig{DB: db})
	tokens := auth.NewTokenIssuer("test-secret", time.Hour)

	sm := services.NewServiceManager(db, repo,
		cache.NewCacheManager(nil),
		events.NewMockEventPublisher(),
		tokens,
		slog.Default(),
		validator.NewBusinessValidator())
	if err := sm.Initialize(context.Background()); err != nil {
		t.Fatalf("failed to initialize services: %v", err)
	}
	t.Cleanup(func() { _ = sm.Shutdown(context.Background()) })

	logger := utils.NewSlogLogger(slog.Default())
	router := gin.New()
	SetupMiddleware(router, logger)
	NewHandlerManager(sm, tokens, logger).SetupRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
	return out
}

func registerUser(t *testing.T, router *gin.Engine, name, email, role string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": name, "email": email, "password": "password1", "role": role,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register failed with %d: %s", w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatal("expected a token in register response")
	}
	return token
}

func TestAuthEndpoints(t *testing.T) {
	router := setupTestRouter(t)

	token := registerUser(t, router, "Asha", "asha@example.com", "student")

	// Duplicate email is a 400, not a 409.
	w := doJSON(t, router, http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Asha", "email": "asha@example.com", "password": "password1", "role": "student",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate email, got %d", w.Code)
	}

	// Generic message for bad credentials.
	w = doJSON(t, router, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email": "asha@example.com", "password": "wrong",
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad credentials, got %d", w.Code)
	}
	if msg, _ := decode(t, w)["message"].(string); msg != "Invalid email or password" {
		t.Fatalf("expected generic credentials message, got %q", msg)
	}

	// Me requires a token.
	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for me, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPut, "/api/v1/auth/language", token, gin.H{"language": "es"})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for language update, got %d: %s", w.Code, w.Body.String())
	}
}

func TestCheckInEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	token := registerUser(t, router, "Asha", "asha@example.com", "student")

	// First submit of the day creates.
	w := doJSON(t, router, http.MethodPost, "/api/v1/mood", token, gin.H{
		"mood": "good", "stress": 2, "energy": 4, "journal": "fine day",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for first check-in, got %d: %s", w.Code, w.Body.String())
	}

	// Second submit updates.
	w = doJSON(t, router, http.MethodPost, "/api/v1/mood", token, gin.H{
		"mood": "sad", "stress": 4, "energy": 2,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for same-day revision, got %d: %s", w.Code, w.Body.String())
	}

	// Out-of-range rating is rejected.
	w = doJSON(t, router, http.MethodPost, "/api/v1/mood", token, gin.H{
		"mood": "good", "stress": 9, "energy": 2,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid stress, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/mood/today", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for today, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/mood", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for history, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/mood/export?period=weekly", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for export, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet" {
		t.Fatalf("unexpected export content type %q", ct)
	}

	// Parents cannot submit check-ins.
	parentToken := registerUser(t, router, "Ravi", "ravi@example.com", "parent")
	w = doJSON(t, router, http.MethodPost, "/api/v1/mood", parentToken, gin.H{
		"mood": "good", "stress": 2, "energy": 4,
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for parent check-in, got %d", w.Code)
	}
}

func TestDashboardAndLinkEndpoints(t *testing.T) {
	router := setupTestRouter(t)
	studentToken := registerUser(t, router, "Asha", "asha@example.com", "student")
	parentToken := registerUser(t, router, "Ravi", "ravi@example.com", "parent")

	w := doJSON(t, router, http.MethodPost, "/api/v1/mood", studentToken, gin.H{
		"mood": "neutral", "stress": 3, "energy": 3,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("check-in failed: %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/dashboard/student?period=weekly", studentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for student dashboard, got %d: %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if body["wellnessScore"].(float64) != 60 {
		t.Fatalf("expected wellness score 60, got %v", body["wellnessScore"])
	}

	// Student id is in the student dashboard token, fetch from /auth/me.
	w = doJSON(t, router, http.MethodGet, "/api/v1/auth/me", studentToken, nil)
	studentID := decode(t, w)["user"].(map[string]interface{})["id"].(float64)

	parentDashPath := fmt.Sprintf("/api/v1/dashboard/parent/%d?period=weekly", int(studentID))

	// Unlinked parent gets 403 even though the student exists.
	w = doJSON(t, router, http.MethodGet, parentDashPath, parentToken, nil)
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for unlinked parent, got %d", w.Code)
	}

	// Students cannot use parent routes.
	w = doJSON(t, router, http.MethodPost, "/api/v1/parent/link", studentToken, gin.H{"student_email": "asha@example.com"})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for student on parent route, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/v1/parent/link", parentToken, gin.H{"student_email": "asha@example.com"})
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201 for link, got %d: %s", w.Code, w.Body.String())
	}

	// Unknown student email is a 404.
	w = doJSON(t, router, http.MethodPost, "/api/v1/parent/link", parentToken, gin.H{"student_email": "ghost@example.com"})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown student, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/v1/parent/students", parentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for students list, got %d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, parentDashPath, parentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for linked parent dashboard, got %d: %s", w.Code, w.Body.String())
	}
	dash := decode(t, w)
	if _, hasJournal := dash["entries"].([]interface{})[0].(map[string]interface{})["journal"]; hasJournal {
		t.Fatal("parent dashboard must never include journal content")
	}

	unlinkPath := fmt.Sprintf("/api/v1/parent/unlink/%d", int(studentID))
	w = doJSON(t, router, http.MethodDelete, unlinkPath, parentToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for unlink, got %d", w.Code)
	}

	// Unlink is not idempotent.
	w = doJSON(t, router, http.MethodDelete, unlinkPath, parentToken, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for repeated unlink, got %d", w.Code)
	}
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/health", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for health, got %d", w.Code)
	}
}
