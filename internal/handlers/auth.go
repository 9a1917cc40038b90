package handlers

import (
	"context"
	"sync"
	"time"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/svetozar/covelo-api/internal/config"
	"github.com/svetozar/covelo-api/internal/oauth"
	"github.com/svetozar/covelo-api/pkg/dto"
)

type AuthHandler struct {
	providers  map[string]oauth.Provider
	users      UserStoreInterface
	jwtService JWTServiceInterface
	states     sync.Map
}

type stateData struct {
	expiresAt time.Time
}

func NewAuthHandler(cfg *config.Config, users UserStoreInterface, jwtService JWTServiceInterface) *AuthHandler {
	h := &AuthHandler{
		providers:  make(map[string]oauth.Provider),
		users:      users,
		jwtService: jwtService,
	}

	if cfg.Google.ClientID != "" {
		h.providers["google"] = oauth.NewGoogleProvider(cfg.Google)
	}

	go h.cleanupStates()

	return h
}

func (h *AuthHandler) cleanupStates() {
	ticker := time.NewTicker(1 * time.Minute)
	for range ticker.C {
		now := time.Now()
		h.states.Range(func(key, value any) bool {
			if sd, ok := value.(stateData); ok && now.After(sd.expiresAt) {
				h.states.Delete(key)
			}
			return true
		})
	}
}

func (h *AuthHandler) GetConsentURL(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("unsupported provider: " + provider)
		return
	}

	state, err := oauth.GenerateState()
	if err != nil {
		c.InternalServerError("failed to generate state")
		return
	}

	h.states.Store(state, stateData{expiresAt: time.Now().Add(10 * time.Minute)})

	_ = c.JSON(200, dto.ConsentURLResponse{
		URL: p.GetConsentURL(state),
	})
}

func (h *AuthHandler) Callback(c *drift.Context) {
	provider := c.Param("provider")

	p, ok := h.providers[provider]
	if !ok {
		c.BadRequest("unsupported provider: " + provider)
		return
	}

	state := c.QueryParam("state")
	if state == "" {
		c.BadRequest("missing state parameter")
		return
	}

	sd, ok := h.states.LoadAndDelete(state)
	if !ok {
		c.BadRequest("invalid or expired state")
		return
	}
	if sdTyped, ok := sd.(stateData); !ok || time.Now().After(sdTyped.expiresAt) {
		c.BadRequest("invalid or expired state")
		return
	}

	code := c.QueryParam("code")
	if code == "" {
		c.BadRequest("missing code parameter")
		return
	}

	info, err := p.ExchangeCode(context.Background(), code)
	if err != nil {
		c.InternalServerError("failed to exchange authorization code")
		return
	}

	user, err := h.users.FindOrCreateFromOAuth(context.Background(), info)
	if err != nil {
		c.InternalServerError("failed to sign in")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to issue tokens")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	})
}

func (h *AuthHandler) RefreshToken(c *drift.Context) {
	var req dto.RefreshRequest
	if err := c.BindJSON(&req); err != nil || req.RefreshToken == "" {
		c.BadRequest("refresh_token is required")
		return
	}

	userID, err := h.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		c.Unauthorized("invalid or expired refresh token")
		return
	}

	user, err := h.users.GetByID(context.Background(), userID)
	if err != nil {
		c.Unauthorized("user no longer exists")
		return
	}

	pair, err := h.jwtService.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		c.InternalServerError("failed to issue tokens")
		return
	}

	_ = c.JSON(200, dto.TokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    pair.ExpiresIn,
	})
}
