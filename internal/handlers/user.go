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

type UserHandler struct {
	users UserStoreInterface
	prefs PreferenceStoreInterface
}

func NewUserHandler(users UserStoreInterface, prefs PreferenceStoreInterface) *UserHandler {
	return &UserHandler{users: users, prefs: prefs}
}

func (h *UserHandler) GetMe(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	user, err := h.users.GetByID(context.Background(), caller.UserID)
	if err != nil {
		c.NotFound("user not found")
		return
	}

	response := dto.MeResponse{UserResponse: dto.NewUserResponse(*user)}

	pref, err := h.prefs.Get(context.Background(), caller.UserID)
	if err == nil {
		response.CurrentTeamID = &pref.CurrentTeamID
	} else if !errors.Is(err, store.ErrNotFound) {
		c.InternalServerError("failed to load team preference")
		return
	}

	_ = c.JSON(200, response)
}

func (h *UserHandler) UpdateMe(c *drift.Context) {
	caller := middleware.GetCaller(c)
	if caller.UserID == uuid.Nil {
		c.Unauthorized("not authenticated")
		return
	}

	var req dto.UpdateUserRequest
	if err := c.BindJSON(&req); err != nil {
		c.BadRequest("invalid request body")
		return
	}

	if req.FirstName == "" && req.LastName == "" {
		c.BadRequest("nothing to update")
		return
	}

	user, err := h.users.UpdateName(context.Background(), caller.UserID, req.FirstName, req.LastName)
	if err != nil {
		c.InternalServerError("failed to update user")
		return
	}

	_ = c.JSON(200, dto.NewUserResponse(*user))
}
