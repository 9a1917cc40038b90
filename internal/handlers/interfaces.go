package handlers

import (
	"context"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/oauth"
	"github.com/svetozar/covelo-api/internal/services"
)

// InviteServiceInterface defines the methods used by handlers from InviteService
type InviteServiceInterface interface {
	CreateInvite(ctx context.Context, caller services.Caller, teamID uuid.UUID, email, role string) (*models.TeamInvite, error)
	ListInvitesForTeam(ctx context.Context, caller services.Caller, teamID uuid.UUID) ([]models.TeamInvite, error)
	ListInvitesForUser(ctx context.Context, caller services.Caller) ([]models.TeamInvite, error)
	RevokeInvite(ctx context.Context, caller services.Caller, inviteID uuid.UUID) error
}

// ReconcilerInterface defines the methods used by handlers from MembershipReconciler
type ReconcilerInterface interface {
	Resolve(ctx context.Context, caller services.Caller, inviteID uuid.UUID, action services.ResolveAction) (*models.Team, error)
}

// UserStoreInterface defines the methods used by handlers from UserStore
type UserStoreInterface interface {
	FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateName(ctx context.Context, id uuid.UUID, firstName, lastName string) (*models.User, error)
}

// TeamStoreInterface defines the methods used by handlers from TeamStore
type TeamStoreInterface interface {
	Create(ctx context.Context, name string, ownerID uuid.UUID) (*models.Team, error)
	GetByID(ctx context.Context, teamID uuid.UUID) (*models.Team, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Team, []string, error)
}

// MembershipStoreInterface defines the methods used by handlers from MembershipStore
type MembershipStoreInterface interface {
	GetRole(ctx context.Context, teamID, userID uuid.UUID) (string, error)
}

// RosterStoreInterface defines the methods used by handlers from RosterStore
type RosterStoreInterface interface {
	ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error)
}

// PreferenceStoreInterface defines the methods used by handlers from PreferenceStore
type PreferenceStoreInterface interface {
	Get(ctx context.Context, userID uuid.UUID) (*models.TeamPreference, error)
}

// JWTServiceInterface defines the methods used by handlers from JWTService
type JWTServiceInterface interface {
	GenerateTokenPair(userID uuid.UUID, email string) (*services.TokenPair, error)
	ValidateRefreshToken(token string) (uuid.UUID, error)
}
