package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/m1z23r/drift/pkg/drift"
	"github.com/svetozar/covelo-api/internal/middleware"
	"github.com/svetozar/covelo-api/internal/services"
	"github.com/svetozar/covelo-api/pkg/dto"
)

type InviteHandler struct {
	inviteService InviteServiceInterface
	reconciler    ReconcilerInterface
}

func NewInviteHandler(inviteService InviteServiceInterface, reconciler ReconcilerInterface) *InviteHandler {
	return &InviteHandler{
		inviteService: inviteService,
		reconciler:    reconciler,
	}
}

// Create handles POST /teams/:id/invites.
func (h *InviteHandler) Create(c *drift.Context) {
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

	var req dto.CreateInviteRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	invite, err := h.inviteService.CreateInvite(context.Background(), caller, teamID, req.Email, req.Role)
	if err != nil {
		h.respondError(c, err)
		return
	}

	_ = c.JSON(201, dto.CreateInviteResponse{
		Invite:  dto.NewTeamInviteResponse(*invite),
		Message: fmt.Sprintf("Invite sent to %s", invite.Email),
	})
}

// ListForTeam handles GET /teams/:id/invites.
func (h *InviteHandler) ListForTeam(c *drift.Context) {
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

	invites, err := h.inviteService.ListInvitesForTeam(context.Background(), caller, teamID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]dto.TeamInviteResponse, len(invites))
	for i, invite := range invites {
		response[i] = dto.NewTeamInviteResponse(invite)
	}

	_ = c.JSON(200, response)
}

// ListMine handles GET /invites.
func (h *InviteHandler) ListMine(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	invites, err := h.inviteService.ListInvitesForUser(context.Background(), caller)
	if err != nil {
		h.respondError(c, err)
		return
	}

	response := make([]dto.MyInviteResponse, len(invites))
	for i, invite := range invites {
		response[i] = dto.NewMyInviteResponse(invite)
	}

	_ = c.JSON(200, response)
}

// Accept handles POST /invites/:inviteId/accept.
func (h *InviteHandler) Accept(c *drift.Context) {
	h.resolve(c, services.ActionAccept)
}

// Decline handles POST /invites/:inviteId/decline.
func (h *InviteHandler) Decline(c *drift.Context) {
	h.resolve(c, services.ActionDecline)
}

func (h *InviteHandler) resolve(c *drift.Context, action services.ResolveAction) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inviteID, err := uuid.Parse(c.Param("inviteId"))
	if err != nil {
		c.BadRequest("invalid invite id")
		return
	}

	team, err := h.reconciler.Resolve(context.Background(), caller, inviteID, action)
	if err != nil {
		h.respondError(c, err)
		return
	}

	if action == services.ActionDecline {
		_ = c.JSON(200, map[string]string{"message": "Invite declined"})
		return
	}

	_ = c.JSON(200, dto.AcceptInviteResponse{
		Message: fmt.Sprintf("You have joined %s", team.Name),
		Team:    dto.NewTeamResponse(*team, ""),
	})
}

// Revoke handles DELETE /teams/:id/invites/:inviteId.
func (h *InviteHandler) Revoke(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	inviteID, err := uuid.Parse(c.Param("inviteId"))
	if err != nil {
		c.BadRequest("invalid invite id")
		return
	}

	if err := h.inviteService.RevokeInvite(context.Background(), caller, inviteID); err != nil {
		h.respondError(c, err)
		return
	}

	_ = c.JSON(200, map[string]string{"message": "Invite revoked"})
}

func (h *InviteHandler) respondError(c *drift.Context, err error) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.BadRequest(validationErr.Error())
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden("admin or owner role required")
	case errors.Is(err, services.ErrAlreadyMember):
		_ = c.JSON(409, map[string]string{"error": "user is already a team member"})
	case errors.Is(err, services.ErrAlreadyInvited):
		_ = c.JSON(409, map[string]string{"error": "this email has already been invited"})
	case errors.Is(err, services.ErrInviteExpired):
		c.BadRequest("invite has expired")
	case errors.Is(err, services.ErrInviteNotFound):
		c.NotFound("invite not found or already processed")
	default:
		c.InternalServerError("something went wrong")
	}
}
