package dto

import (
	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/models"
)

type CreateTeamRequest struct {
	Name string `json:"name"`
}

type TeamResponse struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	LogoURL *string   `json:"logo_url,omitempty"`
	Role    string    `json:"role,omitempty"`
}

func NewTeamResponse(team models.Team, role string) TeamResponse {
	return TeamResponse{
		ID:      team.ID,
		Name:    team.Name,
		LogoURL: team.LogoURL,
		Role:    role,
	}
}

// RosterMemberResponse mirrors a row of the legacy roster projection.
type RosterMemberResponse struct {
	ID        uuid.UUID  `json:"id"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
}

func NewRosterMemberResponse(m models.TeamMember) RosterMemberResponse {
	return RosterMemberResponse{
		ID:        m.ID,
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Email:     m.Email,
		Role:      m.Role,
		Active:    m.Active,
	}
}
