package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	driftmw "github.com/m1z23r/drift/pkg/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/svetozar/covelo-api/internal/middleware"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/services"
	"github.com/svetozar/covelo-api/internal/store"
	"github.com/svetozar/covelo-api/tests/testutil"
)

func setupUserTest(t *testing.T) (*testutil.MockUserStore, *testutil.MockPreferenceStore, *UserHandler, *services.JWTService) {
	t.Helper()
	mockUsers := new(testutil.MockUserStore)
	mockPrefs := new(testutil.MockPreferenceStore)
	handler := NewUserHandler(mockUsers, mockPrefs)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
	return mockUsers, mockPrefs, handler, jwtSvc
}

func TestUserHandler_GetMe_Success(t *testing.T) {
	mockUsers, mockPrefs, handler, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	user := &models.User{ID: userID, Email: "bob@example.com", FirstName: "Bob", LastName: "Jones"}

	mockUsers.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockPrefs.On("Get", mock.Anything, userID).Return(&models.TeamPreference{UserID: userID, CurrentTeamID: teamID}, nil)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.GetMe)

	token := generateTestToken(t, jwtSvc, userID, user.Email)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "bob@example.com")
	assert.Contains(t, rec.Body.String(), teamID.String())
}

func TestUserHandler_GetMe_NoPreference(t *testing.T) {
	mockUsers, mockPrefs, handler, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	user := &models.User{ID: userID, Email: "bob@example.com"}

	mockUsers.On("GetByID", mock.Anything, userID).Return(user, nil)
	mockPrefs.On("Get", mock.Anything, userID).Return(nil, store.ErrNotFound)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/users/me", handler.GetMe)

	token := generateTestToken(t, jwtSvc, userID, user.Email)
	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "current_team_id")
}

func TestUserHandler_UpdateMe_Success(t *testing.T) {
	mockUsers, _, handler, jwtSvc := setupUserTest(t)

	userID := uuid.New()
	updated := &models.User{ID: userID, Email: "bob@example.com", FirstName: "Robert", LastName: "Jones"}

	mockUsers.On("UpdateName", mock.Anything, userID, "Robert", "Jones").Return(updated, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/users/me", handler.UpdateMe)

	token := generateTestToken(t, jwtSvc, userID, "bob@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader([]byte(`{"first_name":"Robert","last_name":"Jones"}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Robert")
	mockUsers.AssertExpectations(t)
}

func TestUserHandler_UpdateMe_NothingToUpdate(t *testing.T) {
	_, _, handler, jwtSvc := setupUserTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Patch("/users/me", handler.UpdateMe)

	token := generateTestToken(t, jwtSvc, uuid.New(), "bob@example.com")
	req := httptest.NewRequest(http.MethodPatch, "/users/me", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "nothing to update")
}
