package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/store"
)

var (
	ErrForbidden      = errors.New("admin or owner role required")
	ErrAlreadyMember  = errors.New("user is already a team member")
	ErrAlreadyInvited = errors.New("a pending invite already exists for this email")
	ErrInviteNotFound = errors.New("invite not found or already processed")
	ErrInviteExpired  = errors.New("invite has expired")
)

// InviteService orchestrates invite creation, listing and revocation.
// It holds no state of its own; all consistency comes from the stores.
type InviteService struct {
	invites     InviteStoreInterface
	memberships MembershipStoreInterface
	teams       TeamReader
	users       UserReader
	authz       *AuthzService
	notifier    InviteNotifier
	baseURL     string
	expiry      time.Duration
}

func NewInviteService(
	invites InviteStoreInterface,
	memberships MembershipStoreInterface,
	teams TeamReader,
	users UserReader,
	authz *AuthzService,
	notifier InviteNotifier,
	baseURL string,
	expiry time.Duration,
) *InviteService {
	return &InviteService{
		invites:     invites,
		memberships: memberships,
		teams:       teams,
		users:       users,
		authz:       authz,
		notifier:    notifier,
		baseURL:     baseURL,
		expiry:      expiry,
	}
}

// CreateInvite records a pending invite and sends the invite email as a
// best-effort side effect.
//
// The already-member and already-invited checks are read-then-write and
// intentionally not wrapped in a transaction: two concurrent calls for
// the same (team, email) can both pass and both insert. Acceptance is
// idempotent, so the second invite is harmless and resolves to nothing.
func (s *InviteService) CreateInvite(ctx context.Context, caller Caller, teamID uuid.UUID, email, role string) (*models.TeamInvite, error) {
	if teamID == uuid.Nil {
		return nil, &ValidationError{Field: "team_id", Message: "team id is required"}
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, &ValidationError{Field: "email", Message: "email is required"}
	}
	if !ValidEmail(email) {
		return nil, &ValidationError{Field: "email", Message: "email address is invalid"}
	}

	if role == "" {
		role = models.RoleMember
	}
	switch role {
	case models.RoleOwner, models.RoleAdmin, models.RoleMember:
	default:
		return nil, &ValidationError{Field: "role", Message: "unknown role"}
	}

	isAdmin, err := s.authz.IsTeamAdmin(ctx, teamID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team role: %w", err)
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	if user, err := s.users.GetByEmail(ctx, email); err == nil {
		isMember, err := s.memberships.Exists(ctx, teamID, user.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to check membership: %w", err)
		}
		if isMember {
			return nil, ErrAlreadyMember
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if _, err := s.invites.FindPendingByTeamAndEmail(ctx, teamID, email); err == nil {
		return nil, ErrAlreadyInvited
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("failed to check pending invites: %w", err)
	}

	token, err := generateInviteToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate invite token: %w", err)
	}

	invite, err := s.invites.Create(ctx, teamID, email, role, token, caller.UserID, time.Now().Add(s.expiry))
	if err != nil {
		return nil, err
	}

	s.sendInviteEmail(ctx, invite, caller)

	return invite, nil
}

// sendInviteEmail is best-effort: failures are logged and never
// propagated, invite creation stands either way.
func (s *InviteService) sendInviteEmail(ctx context.Context, invite *models.TeamInvite, caller Caller) {
	team, err := s.teams.GetByID(ctx, invite.TeamID)
	if err != nil {
		log.Printf("invite %s: skipping email, failed to load team: %v", invite.ID, err)
		return
	}

	inviterName := "A team member"
	if inviter, err := s.users.GetByID(ctx, caller.UserID); err == nil {
		inviterName = inviter.DisplayName()
	}

	inviteURL := fmt.Sprintf("%s/invites/%s?token=%s", s.baseURL, invite.ID, invite.Token)

	if err := s.notifier.SendTeamInvite(invite.Email, team.Name, inviterName, inviteURL, invite.Role); err != nil {
		log.Printf("invite %s: failed to send email to %s: %v", invite.ID, invite.Email, err)
	}
}

// ListInvitesForTeam returns the team's pending invites, newest first.
// Admin or owner only.
func (s *InviteService) ListInvitesForTeam(ctx context.Context, caller Caller, teamID uuid.UUID) ([]models.TeamInvite, error) {
	isAdmin, err := s.authz.IsTeamAdmin(ctx, teamID, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to check team role: %w", err)
	}
	if !isAdmin {
		return nil, ErrForbidden
	}

	return s.invites.ListPendingByTeam(ctx, teamID)
}

// ListInvitesForUser returns pending, unexpired invites addressed to the
// caller's email.
func (s *InviteService) ListInvitesForUser(ctx context.Context, caller Caller) ([]models.TeamInvite, error) {
	return s.invites.ListPendingByEmail(ctx, strings.ToLower(caller.Email), time.Now())
}

// RevokeInvite deletes a pending invite. Processed and unknown invites
// are indistinguishable to the caller.
func (s *InviteService) RevokeInvite(ctx context.Context, caller Caller, inviteID uuid.UUID) error {
	invite, err := s.invites.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return err
	}

	if invite.Status != models.InviteStatusPending {
		return ErrInviteNotFound
	}

	isAdmin, err := s.authz.IsTeamAdmin(ctx, invite.TeamID, caller.UserID)
	if err != nil {
		return fmt.Errorf("failed to check team role: %w", err)
	}
	if !isAdmin {
		return ErrForbidden
	}

	if err := s.invites.DeletePending(ctx, inviteID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrInviteNotFound
		}
		return err
	}
	return nil
}

func generateInviteToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
