package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
)

// Caller identifies the authenticated user behind a request. It is
// passed explicitly into every service call; there is no ambient
// request context.
type Caller struct {
	UserID uuid.UUID
	Email  string
}

// InviteStoreInterface is the persistence boundary for invite records.
type InviteStoreInterface interface {
	Create(ctx context.Context, teamID uuid.UUID, email, role, token string, invitedBy uuid.UUID, expiresAt time.Time) (*models.TeamInvite, error)
	GetByID(ctx context.Context, inviteID uuid.UUID) (*models.TeamInvite, error)
	FindPendingByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*models.TeamInvite, error)
	ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamInvite, error)
	ListPendingByEmail(ctx context.Context, email string, now time.Time) ([]models.TeamInvite, error)
	UpdateStatus(ctx context.Context, inviteID uuid.UUID, from, to models.InviteStatus) error
	DeletePending(ctx context.Context, inviteID uuid.UUID) error
}

// MembershipStoreInterface is the persistence boundary for the canonical
// per-team-per-user membership table.
type MembershipStoreInterface interface {
	Upsert(ctx context.Context, teamID, userID uuid.UUID, role string) error
	Exists(ctx context.Context, teamID, userID uuid.UUID) (bool, error)
	GetRole(ctx context.Context, teamID, userID uuid.UUID) (string, error)
}

// RosterStoreInterface is the persistence boundary for the legacy roster
// projection table.
type RosterStoreInterface interface {
	FindByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.TeamMember, error)
	FindByEmail(ctx context.Context, email string) (*models.TeamMember, error)
	Insert(ctx context.Context, teamID, userID uuid.UUID, firstName, lastName, email, role string) error
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email, role string) error
	MoveToTeam(ctx context.Context, id, teamID uuid.UUID, firstName, lastName, email, role string) error
	Reassign(ctx context.Context, id, teamID, userID uuid.UUID, firstName, lastName, role string) error
}

// PreferenceStoreInterface is the persistence boundary for the per-user
// active-team preference.
type PreferenceStoreInterface interface {
	Upsert(ctx context.Context, userID, teamID uuid.UUID) error
}

// TeamReader resolves team records for responses and notifications.
type TeamReader interface {
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
}

// UserReader resolves user records for membership checks and display
// names.
type UserReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// InviteNotifier delivers invite emails. Sends are best-effort: a
// failure never fails the operation that triggered it.
type InviteNotifier interface {
	SendTeamInvite(to, teamName, inviterName, inviteURL, role string) error
}
