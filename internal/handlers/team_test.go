package handlers

import (
	"bytes"
	"encoding/json"
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
	"github.com/svetozar/covelo-api/pkg/dto"
	"github.com/svetozar/covelo-api/tests/testutil"
)

func setupTeamTest(t *testing.T) (*testutil.MockTeamStore, *testutil.MockMembershipStore, *testutil.MockRosterStore, *TeamHandler, *services.JWTService) {
	t.Helper()
	mockTeams := new(testutil.MockTeamStore)
	mockMemberships := new(testutil.MockMembershipStore)
	mockRoster := new(testutil.MockRosterStore)
	handler := NewTeamHandler(mockTeams, mockMemberships, mockRoster)
	jwtSvc := services.NewJWTService("test-secret-key", 15*time.Minute, 24*time.Hour)
	return mockTeams, mockMemberships, mockRoster, handler, jwtSvc
}

func TestTeamHandler_Create_Success(t *testing.T) {
	mockTeams, _, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	team := &models.Team{ID: uuid.New(), Name: "Acme Sales"}

	mockTeams.On("Create", mock.Anything, "Acme Sales", userID).Return(team, nil)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/teams", handler.Create)

	body, _ := json.Marshal(dto.CreateTeamRequest{Name: "Acme Sales"})
	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Sales")
	mockTeams.AssertExpectations(t)
}

func TestTeamHandler_Create_MissingName(t *testing.T) {
	_, _, _, handler, jwtSvc := setupTeamTest(t)

	app := drift.New()
	app.Use(driftmw.BodyParser())
	app.Use(middleware.Auth(jwtSvc))
	app.Post("/teams", handler.Create)

	token := generateTestToken(t, jwtSvc, uuid.New(), "owner@example.com")
	req := httptest.NewRequest(http.MethodPost, "/teams", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "name is required")
}

func TestTeamHandler_List_Success(t *testing.T) {
	mockTeams, _, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teams := []models.Team{
		{ID: uuid.New(), Name: "Acme Sales"},
		{ID: uuid.New(), Name: "Acme Support"},
	}

	mockTeams.On("ListByUser", mock.Anything, userID).Return(teams, []string{"owner", "member"}, nil)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/teams", handler.List)

	token := generateTestToken(t, jwtSvc, userID, "owner@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Sales")
	assert.Contains(t, rec.Body.String(), "Acme Support")
	assert.Contains(t, rec.Body.String(), "owner")
}

func TestTeamHandler_Get_NotAMember(t *testing.T) {
	_, mockMemberships, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teamID := uuid.New()

	mockMemberships.On("GetRole", mock.Anything, teamID, userID).Return("", store.ErrNotFound)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/teams/:id", handler.Get)

	token := generateTestToken(t, jwtSvc, userID, "outsider@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams/"+teamID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTeamHandler_Get_Success(t *testing.T) {
	mockTeams, mockMemberships, _, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	team := &models.Team{ID: teamID, Name: "Acme Sales"}

	mockMemberships.On("GetRole", mock.Anything, teamID, userID).Return("member", nil)
	mockTeams.On("GetByID", mock.Anything, teamID).Return(team, nil)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/teams/:id", handler.Get)

	token := generateTestToken(t, jwtSvc, userID, "member@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams/"+teamID.String(), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Acme Sales")
}

func TestTeamHandler_GetRoster_Success(t *testing.T) {
	_, mockMemberships, mockRoster, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teamID := uuid.New()
	memberUserID := uuid.New()
	members := []models.TeamMember{
		{ID: uuid.New(), TeamID: teamID, UserID: &memberUserID, FirstName: "Ann", LastName: "Lee", Email: "ann@example.com", Role: "admin", Active: true},
	}

	mockMemberships.On("GetRole", mock.Anything, teamID, userID).Return("member", nil)
	mockRoster.On("ListByTeam", mock.Anything, teamID).Return(members, nil)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/teams/:id/members", handler.GetRoster)

	token := generateTestToken(t, jwtSvc, userID, "member@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams/"+teamID.String()+"/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann@example.com")
	mockRoster.AssertExpectations(t)
}

func TestTeamHandler_GetRoster_NotAMember(t *testing.T) {
	_, mockMemberships, mockRoster, handler, jwtSvc := setupTeamTest(t)

	userID := uuid.New()
	teamID := uuid.New()

	mockMemberships.On("GetRole", mock.Anything, teamID, userID).Return("", store.ErrNotFound)

	app := drift.New()
	app.Use(middleware.Auth(jwtSvc))
	app.Get("/teams/:id/members", handler.GetRoster)

	token := generateTestToken(t, jwtSvc, userID, "outsider@example.com")
	req := httptest.NewRequest(http.MethodGet, "/teams/"+teamID.String()+"/members", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	app.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	mockRoster.AssertNotCalled(t, "ListByTeam", mock.Anything, mock.Anything)
}
