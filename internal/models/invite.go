package models

import (
	"time"

	"github.com/google/uuid"
)

// InviteStatus is the closed set of invite lifecycle states. An invite is
// created pending and transitions exactly once to one of the terminal
// states; terminal states are immutable.
type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
	InviteStatusExpired  InviteStatus = "expired"
)

func (s InviteStatus) Valid() bool {
	switch s {
	case InviteStatusPending, InviteStatusAccepted, InviteStatusDeclined, InviteStatusExpired:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transition.
func (s InviteStatus) Terminal() bool {
	return s != InviteStatusPending
}

type TeamInvite struct {
	ID        uuid.UUID    `json:"id"`
	TeamID    uuid.UUID    `json:"team_id"`
	Email     string       `json:"email"`
	Role      string       `json:"role"`
	Status    InviteStatus `json:"status"`
	Token     string       `json:"-"`
	InvitedBy uuid.UUID    `json:"invited_by"`
	CreatedAt time.Time    `json:"created_at"`
	ExpiresAt time.Time    `json:"expires_at"`

	// Joined display fields, populated by list queries.
	InviterEmail *string `json:"inviter_email,omitempty"`
	Team         *Team   `json:"team,omitempty"`
}

// Expired reports whether the invite is past its expiry, regardless of
// the stored status. The stored status is only flipped lazily on the
// next resolve attempt.
func (i *TeamInvite) Expired(now time.Time) bool {
	return now.After(i.ExpiresAt)
}

// RosterRole maps an invite role onto the role column of the legacy
// roster table, which predates the owner role.
func RosterRole(inviteRole string) string {
	if inviteRole == RoleOwner {
		return RoleAdmin
	}
	return inviteRole
}
