package dto

import (
	"time"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
)

type CreateInviteRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}

// TeamInviteResponse is the shape team admins see. The invite token is
// never serialized.
type TeamInviteResponse struct {
	ID        uuid.UUID           `json:"id"`
	Email     string              `json:"email"`
	Role      string              `json:"role"`
	Status    models.InviteStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
}

func NewTeamInviteResponse(invite models.TeamInvite) TeamInviteResponse {
	return TeamInviteResponse{
		ID:        invite.ID,
		Email:     invite.Email,
		Role:      invite.Role,
		Status:    invite.Status,
		CreatedAt: invite.CreatedAt,
		ExpiresAt: invite.ExpiresAt,
	}
}

type InvitedByUser struct {
	Email string `json:"email"`
}

type InviteTeam struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
	Logo *string   `json:"logo"`
}

// MyInviteResponse is the shape invitees see when listing their own
// pending invites.
type MyInviteResponse struct {
	ID            uuid.UUID           `json:"id"`
	Role          string              `json:"role"`
	Status        models.InviteStatus `json:"status"`
	CreatedAt     time.Time           `json:"created_at"`
	ExpiresAt     time.Time           `json:"expires_at"`
	InvitedByUser *InvitedByUser      `json:"invited_by_user"`
	Team          *InviteTeam         `json:"team"`
}

func NewMyInviteResponse(invite models.TeamInvite) MyInviteResponse {
	resp := MyInviteResponse{
		ID:        invite.ID,
		Role:      invite.Role,
		Status:    invite.Status,
		CreatedAt: invite.CreatedAt,
		ExpiresAt: invite.ExpiresAt,
	}
	if invite.InviterEmail != nil {
		resp.InvitedByUser = &InvitedByUser{Email: *invite.InviterEmail}
	}
	if invite.Team != nil {
		resp.Team = &InviteTeam{
			ID:   invite.Team.ID,
			Name: invite.Team.Name,
			Logo: invite.Team.LogoURL,
		}
	}
	return resp
}

type CreateInviteResponse struct {
	Invite  TeamInviteResponse `json:"invite"`
	Message string             `json:"message"`
}

type AcceptInviteResponse struct {
	Message string       `json:"message"`
	Team    TeamResponse `json:"team"`
}
