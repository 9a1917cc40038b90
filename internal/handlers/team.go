package handlers

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/svetozar/covelo-api/internal/middleware"
	"github.com/svetozar/covelo-api/internal/store"
	"github.com/svetozar/covelo-api/pkg/dto"
)

type TeamHandler struct {
	teams       TeamStoreInterface
	memberships MembershipStoreInterface
	roster      RosterStoreInterface
}

func NewTeamHandler(teams TeamStoreInterface, memberships MembershipStoreInterface, roster RosterStoreInterface) *TeamHandler {
	return &TeamHandler{
		teams:       teams,
		memberships: memberships,
		roster:      roster,
	}
}

func (h *TeamHandler) Create(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.CreateTeamRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.Name == "" {
		c.BadRequest("name is required")
		return
	}

	team, err := h.teams.Create(context.Background(), req.Name, caller.UserID)
	if err != nil {
		c.InternalServerError("failed to create team")
		return
	}

	_ = c.JSON(201, dto.NewTeamResponse(*team, "owner"))
}

func (h *TeamHandler) List(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teams, roles, err := h.teams.ListByUser(context.Background(), caller.UserID)
	if err != nil {
		c.InternalServerError("failed to get teams")
		return
	}

	response := make([]dto.TeamResponse, len(teams))
	for i, team := range teams {
		response[i] = dto.NewTeamResponse(team, roles[i])
	}

	_ = c.JSON(200, response)
}

func (h *TeamHandler) Get(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	role, err := h.memberships.GetRole(context.Background(), teamID, caller.UserID)
	if err != nil {
		c.NotFound("team not found")
		return
	}

	team, err := h.teams.GetByID(context.Background(), teamID)
	if err != nil {
		c.NotFound("team not found")
		return
	}

	_ = c.JSON(200, dto.NewTeamResponse(*team, role))
}

// GetRoster lists the team's members from the legacy roster projection,
// which is what the dashboard renders.
func (h *TeamHandler) GetRoster(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	teamID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.BadRequest("invalid team id")
		return
	}

	if _, err := h.memberships.GetRole(context.Background(), teamID, caller.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.NotFound("team not found")
			return
		}
		c.InternalServerError("failed to check membership")
		return
	}

	members, err := h.roster.ListByTeam(context.Background(), teamID)
	if err != nil {
		c.InternalServerError("failed to get members")
		return
	}

	response := make([]dto.RosterMemberResponse, len(members))
	for i, m := range members {
		response[i] = dto.NewRosterMemberResponse(m)
	}

	_ = c.JSON(200, response)
}
