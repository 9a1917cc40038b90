package testutil

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/oauth"
)

// Fixtures provides factory methods for creating test data
type Fixtures struct {
	db      *database.DB
	counter int
}

// NewFixtures creates a new fixtures factory
func NewFixtures(db *database.DB) *Fixtures {
	return &Fixtures{db: db}
}

// CreateUser creates a test user with default values
func (f *Fixtures) CreateUser(t *testing.T, opts ...UserOption) *models.User {
	t.Helper()
	f.counter++

	user := &models.User{
		Email:      fmt.Sprintf("user%d@example.com", f.counter),
		FirstName:  "Test",
		LastName:   fmt.Sprintf("User%d", f.counter),
		Provider:   "google",
		ProviderID: fmt.Sprintf("provider-%d", f.counter),
	}

	for _, opt := range opts {
		opt(user)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, avatar_url, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, first_name, last_name, avatar_url, provider, provider_id, created_at, updated_at
	`, user.Email, user.FirstName, user.LastName, user.AvatarURL, user.Provider, user.ProviderID).Scan(
		&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.AvatarURL,
		&user.Provider, &user.ProviderID, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user
}

// UserOption configures a test user
type UserOption func(*models.User)

// WithEmail sets the user's email
func WithEmail(email string) UserOption {
	return func(u *models.User) {
		u.Email = email
	}
}

// WithName sets the user's first and last name
func WithName(firstName, lastName string) UserOption {
	return func(u *models.User) {
		u.FirstName = firstName
		u.LastName = lastName
	}
}

// WithProvider sets the user's OAuth provider
func WithProvider(provider, providerID string) UserOption {
	return func(u *models.User) {
		u.Provider = provider
		u.ProviderID = providerID
	}
}

// CreateTeam creates a test team with the given owner as its first member
func (f *Fixtures) CreateTeam(t *testing.T, owner *models.User, opts ...TeamOption) *models.Team {
	t.Helper()
	f.counter++

	team := &models.Team{
		Name: fmt.Sprintf("Test Team %d", f.counter),
	}

	for _, opt := range opts {
		opt(team)
	}

	ctx := context.Background()
	tx, err := f.db.Pool.Begin(ctx)
	if err != nil {
		t.Fatalf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, `
		INSERT INTO teams (name)
		VALUES ($1)
		RETURNING id, name, logo_url, created_at, updated_at
	`, team.Name).Scan(&team.ID, &team.Name, &team.LogoURL, &team.CreatedAt, &team.UpdatedAt)
	if err != nil {
		t.Fatalf("failed to create team: %v", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO team_memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
	`, team.ID, owner.ID, models.RoleOwner)
	if err != nil {
		t.Fatalf("failed to add owner membership: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		t.Fatalf("failed to commit transaction: %v", err)
	}

	return team
}

// TeamOption configures a test team
type TeamOption func(*models.Team)

// WithTeamName sets the team's name
func WithTeamName(name string) TeamOption {
	return func(t *models.Team) {
		t.Name = name
	}
}

// AddMembership adds a user to a team with the given role
func (f *Fixtures) AddMembership(t *testing.T, team *models.Team, user *models.User, role string) {
	t.Helper()
	ctx := context.Background()

	_, err := f.db.Pool.Exec(ctx, `
		INSERT INTO team_memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`, team.ID, user.ID, role)
	if err != nil {
		t.Fatalf("failed to add membership: %v", err)
	}
}

// CreateInvite creates a pending invite for the given email
func (f *Fixtures) CreateInvite(t *testing.T, team *models.Team, email string, invitedBy *models.User, opts ...InviteOption) *models.TeamInvite {
	t.Helper()
	f.counter++

	invite := &models.TeamInvite{
		TeamID:    team.ID,
		Email:     email,
		Role:      models.RoleMember,
		Status:    models.InviteStatusPending,
		Token:     fmt.Sprintf("test-token-%d", f.counter),
		InvitedBy: invitedBy.ID,
		ExpiresAt: time.Now().Add(7 * 24 * time.Hour),
	}

	for _, opt := range opts {
		opt(invite)
	}

	ctx := context.Background()
	err := f.db.Pool.QueryRow(ctx, `
		INSERT INTO team_invites (team_id, email, role, status, token, invited_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`, invite.TeamID, invite.Email, invite.Role, invite.Status,
		invite.Token, invite.InvitedBy, invite.ExpiresAt).Scan(&invite.ID, &invite.CreatedAt)
	if err != nil {
		t.Fatalf("failed to create invite: %v", err)
	}

	return invite
}

// InviteOption configures a test invite
type InviteOption func(*models.TeamInvite)

// WithRole sets the invite's role
func WithRole(role string) InviteOption {
	return func(i *models.TeamInvite) {
		i.Role = role
	}
}

// WithStatus sets the invite's status
func WithStatus(status models.InviteStatus) InviteOption {
	return func(i *models.TeamInvite) {
		i.Status = status
	}
}

// WithExpiry sets the invite's expiry
func WithExpiry(expiresAt time.Time) InviteOption {
	return func(i *models.TeamInvite) {
		i.ExpiresAt = expiresAt
	}
}

// RosterRow reads the roster row for a user, failing the test if absent
func (f *Fixtures) RosterRow(t *testing.T, userID uuid.UUID) *models.TeamMember {
	t.Helper()
	ctx := context.Background()

	var m models.TeamMember
	err := f.db.Pool.QueryRow(ctx, `
		SELECT id, team_id, user_id, first_name, last_name, email, role, active, created_at, updated_at
		FROM team_members WHERE user_id = $1
	`, userID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.FirstName, &m.LastName,
		&m.Email, &m.Role, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		t.Fatalf("failed to read roster row: %v", err)
	}

	return &m
}

// OAuthUserInfo creates test OAuth user info
func OAuthUserInfo(email, firstName, lastName, provider, id string) *oauth.UserInfo {
	return &oauth.UserInfo{
		Email:     email,
		FirstName: firstName,
		LastName:  lastName,
		AvatarURL: "https://example.com/avatar.png",
		ID:        id,
		Provider:  provider,
	}
}
