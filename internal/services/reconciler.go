package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/store"
)

// ResolveAction is what the invitee does with a pending invite.
type ResolveAction string

const (
	ActionAccept  ResolveAction = "accept"
	ActionDecline ResolveAction = "decline"
)

// MembershipReconciler drives the pending -> accepted/declined/expired
// transition and keeps the legacy roster projection in agreement with
// the canonical membership table afterwards.
type MembershipReconciler struct {
	invites     InviteStoreInterface
	memberships MembershipStoreInterface
	roster      RosterStoreInterface
	prefs       PreferenceStoreInterface
	teams       TeamReader
	users       UserReader
}

func NewMembershipReconciler(
	invites InviteStoreInterface,
	memberships MembershipStoreInterface,
	roster RosterStoreInterface,
	prefs PreferenceStoreInterface,
	teams TeamReader,
	users UserReader,
) *MembershipReconciler {
	return &MembershipReconciler{
		invites:     invites,
		memberships: memberships,
		roster:      roster,
		prefs:       prefs,
		teams:       teams,
		users:       users,
	}
}

// Resolve accepts or declines a pending invite on behalf of the caller.
// On accept it returns the joined team.
//
// Expiry is enforced lazily here: an invite past its expires_at is
// flipped to expired and the attempt fails, regardless of the requested
// action. That status write is the only mutation a failed attempt makes.
//
// The accept path is a sequence of independently idempotent store writes
// with no cross-step transaction; the invite status update is the commit
// point. A crash before it leaves a pending invite that can simply be
// resolved again.
func (r *MembershipReconciler) Resolve(ctx context.Context, caller Caller, inviteID uuid.UUID, action ResolveAction) (*models.Team, error) {
	switch action {
	case ActionAccept, ActionDecline:
	default:
		return nil, &ValidationError{Field: "action", Message: "action must be accept or decline"}
	}

	invite, err := r.invites.GetByID(ctx, inviteID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	// Invites addressed to someone else are reported exactly like
	// missing ones.
	if !strings.EqualFold(invite.Email, caller.Email) {
		return nil, ErrInviteNotFound
	}

	if invite.Status.Terminal() {
		return nil, ErrInviteNotFound
	}

	if invite.Expired(time.Now()) {
		if err := r.invites.UpdateStatus(ctx, invite.ID, models.InviteStatusPending, models.InviteStatusExpired); err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("invite %s: failed to mark expired: %v", invite.ID, err)
		}
		return nil, ErrInviteExpired
	}

	if action == ActionDecline {
		if err := r.invites.UpdateStatus(ctx, invite.ID, models.InviteStatusPending, models.InviteStatusDeclined); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return nil, ErrInviteNotFound
			}
			return nil, err
		}
		return nil, nil
	}

	user, err := r.users.GetByID(ctx, caller.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if err := r.memberships.Upsert(ctx, invite.TeamID, user.ID, invite.Role); err != nil {
		return nil, err
	}

	// The roster projection only feeds dashboard listings; the
	// membership row above stays authoritative even when this fails.
	if err := r.reconcileRoster(ctx, invite, user); err != nil {
		log.Printf("invite %s: roster reconciliation failed for user %s: %v", invite.ID, user.ID, err)
	}

	if err := r.invites.UpdateStatus(ctx, invite.ID, models.InviteStatusPending, models.InviteStatusAccepted); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInviteNotFound
		}
		return nil, err
	}

	if err := r.prefs.Upsert(ctx, user.ID, invite.TeamID); err != nil {
		return nil, err
	}

	team, err := r.teams.GetByID(ctx, invite.TeamID)
	if err != nil {
		return nil, err
	}
	return team, nil
}

type rosterOutcome int

const (
	rosterNotResolved rosterOutcome = iota
	rosterUpdated
	rosterInserted
)

type rosterStrategy struct {
	name  string
	apply func(ctx context.Context) (rosterOutcome, error)
}

// reconcileRoster brings the legacy team_members row for the user in
// line with the accepted invite. The table is uniquely keyed by user_id
// and email system-wide, so a plain insert collides for any user who has
// ever joined another team; the resolution precedence below always
// converges on exactly one row per user, relocated to the team they most
// recently accepted into. Rows are never deleted or duplicated.
func (r *MembershipReconciler) reconcileRoster(ctx context.Context, invite *models.TeamInvite, user *models.User) error {
	role := models.RosterRole(invite.Role)

	strategies := []rosterStrategy{
		{
			// Retry after a partial accept: the row already points
			// at this team.
			name: "update existing row",
			apply: func(ctx context.Context) (rosterOutcome, error) {
				existing, err := r.roster.FindByTeamAndUser(ctx, invite.TeamID, user.ID)
				if errors.Is(err, store.ErrNotFound) {
					return rosterNotResolved, nil
				}
				if err != nil {
					return rosterNotResolved, err
				}
				if err := r.roster.UpdateProfile(ctx, existing.ID, user.FirstName, user.LastName, user.Email, role); err != nil {
					return rosterNotResolved, err
				}
				return rosterUpdated, nil
			},
		},
		{
			// First team the user ever joins.
			name: "insert new row",
			apply: func(ctx context.Context) (rosterOutcome, error) {
				err := r.roster.Insert(ctx, invite.TeamID, user.ID, user.FirstName, user.LastName, user.Email, role)
				if errors.Is(err, store.ErrDuplicate) {
					return rosterNotResolved, nil
				}
				if err != nil {
					return rosterNotResolved, err
				}
				return rosterInserted, nil
			},
		},
		{
			// User already has a row on another team: move it. The
			// steady-state path for every second and later accept.
			name: "move row by user",
			apply: func(ctx context.Context) (rosterOutcome, error) {
				existing, err := r.roster.FindByUserID(ctx, user.ID)
				if errors.Is(err, store.ErrNotFound) {
					return rosterNotResolved, nil
				}
				if err != nil {
					return rosterNotResolved, err
				}
				if err := r.roster.MoveToTeam(ctx, existing.ID, invite.TeamID, user.FirstName, user.LastName, user.Email, role); err != nil {
					return rosterNotResolved, err
				}
				return rosterUpdated, nil
			},
		},
		{
			// Row created before this user's id was known to the
			// table: claim it by email.
			name: "reassign row by email",
			apply: func(ctx context.Context) (rosterOutcome, error) {
				existing, err := r.roster.FindByEmail(ctx, user.Email)
				if errors.Is(err, store.ErrNotFound) {
					return rosterNotResolved, nil
				}
				if err != nil {
					return rosterNotResolved, err
				}
				if err := r.roster.Reassign(ctx, existing.ID, invite.TeamID, user.ID, user.FirstName, user.LastName, role); err != nil {
					return rosterNotResolved, err
				}
				return rosterUpdated, nil
			},
		},
	}

	for _, strategy := range strategies {
		outcome, err := strategy.apply(ctx)
		if err != nil {
			return fmt.Errorf("%s: %w", strategy.name, err)
		}
		if outcome != rosterNotResolved {
			return nil
		}
	}

	return fmt.Errorf("no roster row could be resolved for %s", user.Email)
}
