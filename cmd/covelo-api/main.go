package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/m1z23r/drift/pkg/drift"
	"github.com/m1z23r/drift/pkg/middleware"
	"github.com/svetozar/covelo-api/internal/config"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/handlers"
	authmw "github.com/svetozar/covelo-api/internal/middleware"
	"github.com/svetozar/covelo-api/internal/services"
	"github.com/svetozar/covelo-api/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx := context.Background()

	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	inviteStore := store.NewInviteStore(db)
	membershipStore := store.NewMembershipStore(db)
	rosterStore := store.NewRosterStore(db)
	preferenceStore := store.NewPreferenceStore(db)
	teamStore := store.NewTeamStore(db)
	userStore := store.NewUserStore(db)

	jwtService := services.NewJWTService(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	emailService := services.NewEmailService(cfg.SMTP)
	authzService := services.NewAuthzService(membershipStore)
	inviteService := services.NewInviteService(
		inviteStore, membershipStore, teamStore, userStore,
		authzService, emailService, cfg.BaseURL, cfg.InviteExpiry,
	)
	reconciler := services.NewMembershipReconciler(
		inviteStore, membershipStore, rosterStore, preferenceStore, teamStore, userStore,
	)

	authHandler := handlers.NewAuthHandler(cfg, userStore, jwtService)
	userHandler := handlers.NewUserHandler(userStore, preferenceStore)
	teamHandler := handlers.NewTeamHandler(teamStore, membershipStore, rosterStore)
	inviteHandler := handlers.NewInviteHandler(inviteService, reconciler)

	app := drift.New()

	if cfg.IsProduction() {
		app.SetMode(drift.ReleaseMode)
	} else {
		app.SetMode(drift.DebugMode)
	}

	app.Use(middleware.Recovery())
	app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
		MaxAge:       86400,
	}))
	app.Use(middleware.BodyParser())

	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Get("/:provider/consent", authHandler.GetConsentURL)
	auth.Get("/:provider/callback", authHandler.Callback)
	auth.Post("/refresh", authHandler.RefreshToken)

	protected := api.Group("")
	protected.Use(authmw.Auth(jwtService))

	protected.Get("/users/me", userHandler.GetMe)
	protected.Patch("/users/me", userHandler.UpdateMe)

	protected.Get("/teams", teamHandler.List)
	protected.Post("/teams", teamHandler.Create)
	protected.Get("/teams/:id", teamHandler.Get)
	protected.Get("/teams/:id/members", teamHandler.GetRoster)

	protected.Get("/teams/:id/invites", inviteHandler.ListForTeam)
	protected.Post("/teams/:id/invites", inviteHandler.Create)
	protected.Delete("/teams/:id/invites/:inviteId", inviteHandler.Revoke)

	protected.Get("/invites", inviteHandler.ListMine)
	protected.Post("/invites/:inviteId/accept", inviteHandler.Accept)
	protected.Post("/invites/:inviteId/decline", inviteHandler.Decline)

	api.Get("/health", func(c *drift.Context) {
		_ = c.JSON(200, map[string]string{"status": "ok"})
	})

	go func() {
		addr := fmt.Sprintf(":%s", cfg.Port)
		log.Printf("Server starting on %s", addr)
		if err := app.Run(addr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
}
