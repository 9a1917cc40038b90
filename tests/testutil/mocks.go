package testutil

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/oauth"
	"github.com/svetozar/covelo-api/internal/services"
)

// MockInviteStore mocks the InviteStore
type MockInviteStore struct {
	mock.Mock
}

func (m *MockInviteStore) Create(ctx context.Context, teamID uuid.UUID, email, role, token string, invitedBy uuid.UUID, expiresAt time.Time) (*models.TeamInvite, error) {
	args := m.Called(ctx, teamID, email, role, token, invitedBy, expiresAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamInvite), args.Error(1)
}

func (m *MockInviteStore) GetByID(ctx context.Context, inviteID uuid.UUID) (*models.TeamInvite, error) {
	args := m.Called(ctx, inviteID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamInvite), args.Error(1)
}

func (m *MockInviteStore) FindPendingByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*models.TeamInvite, error) {
	args := m.Called(ctx, teamID, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamInvite), args.Error(1)
}

func (m *MockInviteStore) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamInvite, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvite), args.Error(1)
}

func (m *MockInviteStore) ListPendingByEmail(ctx context.Context, email string, now time.Time) ([]models.TeamInvite, error) {
	args := m.Called(ctx, email, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvite), args.Error(1)
}

func (m *MockInviteStore) UpdateStatus(ctx context.Context, inviteID uuid.UUID, from, to models.InviteStatus) error {
	args := m.Called(ctx, inviteID, from, to)
	return args.Error(0)
}

func (m *MockInviteStore) DeletePending(ctx context.Context, inviteID uuid.UUID) error {
	args := m.Called(ctx, inviteID)
	return args.Error(0)
}

// MockMembershipStore mocks the MembershipStore
type MockMembershipStore struct {
	mock.Mock
}

func (m *MockMembershipStore) Upsert(ctx context.Context, teamID, userID uuid.UUID, role string) error {
	args := m.Called(ctx, teamID, userID, role)
	return args.Error(0)
}

func (m *MockMembershipStore) Exists(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, teamID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockMembershipStore) GetRole(ctx context.Context, teamID, userID uuid.UUID) (string, error) {
	args := m.Called(ctx, teamID, userID)
	return args.String(0), args.Error(1)
}

// MockRosterStore mocks the RosterStore
type MockRosterStore struct {
	mock.Mock
}

func (m *MockRosterStore) FindByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	args := m.Called(ctx, teamID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockRosterStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.TeamMember, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockRosterStore) FindByEmail(ctx context.Context, email string) (*models.TeamMember, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamMember), args.Error(1)
}

func (m *MockRosterStore) Insert(ctx context.Context, teamID, userID uuid.UUID, firstName, lastName, email, role string) error {
	args := m.Called(ctx, teamID, userID, firstName, lastName, email, role)
	return args.Error(0)
}

func (m *MockRosterStore) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email, role string) error {
	args := m.Called(ctx, id, firstName, lastName, email, role)
	return args.Error(0)
}

func (m *MockRosterStore) MoveToTeam(ctx context.Context, id, teamID uuid.UUID, firstName, lastName, email, role string) error {
	args := m.Called(ctx, id, teamID, firstName, lastName, email, role)
	return args.Error(0)
}

func (m *MockRosterStore) Reassign(ctx context.Context, id, teamID, userID uuid.UUID, firstName, lastName, role string) error {
	args := m.Called(ctx, id, teamID, userID, firstName, lastName, role)
	return args.Error(0)
}

func (m *MockRosterStore) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamMember), args.Error(1)
}

// MockPreferenceStore mocks the PreferenceStore
type MockPreferenceStore struct {
	mock.Mock
}

func (m *MockPreferenceStore) Upsert(ctx context.Context, userID, teamID uuid.UUID) error {
	args := m.Called(ctx, userID, teamID)
	return args.Error(0)
}

func (m *MockPreferenceStore) Get(ctx context.Context, userID uuid.UUID) (*models.TeamPreference, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamPreference), args.Error(1)
}

// MockTeamStore mocks the TeamStore
type MockTeamStore struct {
	mock.Mock
}

func (m *MockTeamStore) Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, name, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamStore) GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error) {
	args := m.Called(ctx, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]models.Team), args.Get(1).([]string), args.Error(2)
}

// MockUserStore mocks the UserStore
type MockUserStore struct {
	mock.Mock
}

func (m *MockUserStore) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserStore) UpdateName(ctx context.Context, id uuid.UUID, firstName, lastName string) (*models.User, error) {
	args := m.Called(ctx, id, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// MockInviteNotifier mocks the invite email gateway
type MockInviteNotifier struct {
	mock.Mock
}

func (m *MockInviteNotifier) SendTeamInvite(to, teamName, inviterName, inviteURL, role string) error {
	args := m.Called(to, teamName, inviterName, inviteURL, role)
	return args.Error(0)
}

// MockInviteService mocks the InviteService for handler tests
type MockInviteService struct {
	mock.Mock
}

func (m *MockInviteService) CreateInvite(ctx context.Context, caller services.Caller, teamID uuid.UUID, email, role string) (*models.TeamInvite, error) {
	args := m.Called(ctx, caller, teamID, email, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TeamInvite), args.Error(1)
}

func (m *MockInviteService) ListInvitesForTeam(ctx context.Context, caller services.Caller, teamID uuid.UUID) ([]models.TeamInvite, error) {
	args := m.Called(ctx, caller, teamID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvite), args.Error(1)
}

func (m *MockInviteService) ListInvitesForUser(ctx context.Context, caller services.Caller) ([]models.TeamInvite, error) {
	args := m.Called(ctx, caller)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TeamInvite), args.Error(1)
}

func (m *MockInviteService) RevokeInvite(ctx context.Context, caller services.Caller, inviteID uuid.UUID) error {
	args := m.Called(ctx, caller, inviteID)
	return args.Error(0)
}

// MockReconciler mocks the MembershipReconciler for handler tests
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) Resolve(ctx context.Context, caller services.Caller, inviteID uuid.UUID, action services.ResolveAction) (*models.Team, error) {
	args := m.Called(ctx, caller, inviteID, action)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

// MockOAuthProvider mocks an OAuth provider
type MockOAuthProvider struct {
	mock.Mock
}

func (m *MockOAuthProvider) GetConsentURL(state string) string {
	args := m.Called(state)
	return args.String(0)
}

func (m *MockOAuthProvider) ExchangeCode(ctx context.Context, code string) (*oauth.UserInfo, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth.UserInfo), args.Error(1)
}

func (m *MockOAuthProvider) Name() string {
	args := m.Called()
	return args.String(0)
}
