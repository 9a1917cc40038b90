package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/models"
)

type InviteStore struct {
	db *database.DB
}

func NewInviteStore(db *database.DB) *InviteStore {
	return &InviteStore{db: db}
}

func (s *InviteStore) Create(ctx context.Context, teamID uuid.UUID, email, role, token string, invitedBy uuid.UUID, expiresAt time.Time) (*models.TeamInvite, error) {
	var invite models.TeamInvite
	err := s.db.Pool.QueryRow(ctx, `
		INSERT INTO team_invites (team_id, email, role, status, token, invited_by, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, team_id, email, role, status, token, invited_by, created_at, expires_at
	`, teamID, email, role, models.InviteStatusPending, token, invitedBy, expiresAt).Scan(
		&invite.ID, &invite.TeamID, &invite.Email, &invite.Role,
		&invite.Status, &invite.Token, &invite.InvitedBy, &invite.CreatedAt, &invite.ExpiresAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create invite: %w", err)
	}
	return &invite, nil
}

func (s *InviteStore) GetByID(ctx context.Context, inviteID uuid.UUID) (*models.TeamInvite, error) {
	var invite models.TeamInvite
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, team_id, email, role, status, token, invited_by, created_at, expires_at
		FROM team_invites WHERE id = $1
	`, inviteID).Scan(
		&invite.ID, &invite.TeamID, &invite.Email, &invite.Role,
		&invite.Status, &invite.Token, &invite.InvitedBy, &invite.CreatedAt, &invite.ExpiresAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &invite, nil
}

// FindPendingByTeamAndEmail backs the duplicate-invite check on creation.
func (s *InviteStore) FindPendingByTeamAndEmail(ctx context.Context, teamID uuid.UUID, email string) (*models.TeamInvite, error) {
	var invite models.TeamInvite
	err := s.db.Pool.QueryRow(ctx, `
		SELECT id, team_id, email, role, status, token, invited_by, created_at, expires_at
		FROM team_invites
		WHERE team_id = $1 AND email = $2 AND status = $3
		LIMIT 1
	`, teamID, email, models.InviteStatusPending).Scan(
		&invite.ID, &invite.TeamID, &invite.Email, &invite.Role,
		&invite.Status, &invite.Token, &invite.InvitedBy, &invite.CreatedAt, &invite.ExpiresAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &invite, nil
}

func (s *InviteStore) ListPendingByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamInvite, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, email, role, status, token, invited_by, created_at, expires_at
		FROM team_invites
		WHERE team_id = $1 AND status = $2
		ORDER BY created_at DESC
	`, teamID, models.InviteStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.TeamInvite
	for rows.Next() {
		var invite models.TeamInvite
		if err := rows.Scan(
			&invite.ID, &invite.TeamID, &invite.Email, &invite.Role,
			&invite.Status, &invite.Token, &invite.InvitedBy, &invite.CreatedAt, &invite.ExpiresAt,
		); err != nil {
			return nil, err
		}
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// ListPendingByEmail returns unexpired pending invites addressed to an
// email, enriched with the inviter's email and team display fields.
func (s *InviteStore) ListPendingByEmail(ctx context.Context, email string, now time.Time) ([]models.TeamInvite, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT ti.id, ti.team_id, ti.email, ti.role, ti.status, ti.token, ti.invited_by, ti.created_at, ti.expires_at,
		       u.email,
		       t.id, t.name, t.logo_url
		FROM team_invites ti
		JOIN teams t ON ti.team_id = t.id
		LEFT JOIN users u ON ti.invited_by = u.id
		WHERE ti.email = $1 AND ti.status = $2 AND ti.expires_at > $3
		ORDER BY ti.created_at DESC
	`, email, models.InviteStatusPending, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invites []models.TeamInvite
	for rows.Next() {
		var invite models.TeamInvite
		var team models.Team
		if err := rows.Scan(
			&invite.ID, &invite.TeamID, &invite.Email, &invite.Role,
			&invite.Status, &invite.Token, &invite.InvitedBy, &invite.CreatedAt, &invite.ExpiresAt,
			&invite.InviterEmail,
			&team.ID, &team.Name, &team.LogoURL,
		); err != nil {
			return nil, err
		}
		invite.Team = &team
		invites = append(invites, invite)
	}
	return invites, rows.Err()
}

// UpdateStatus transitions an invite out of the expected current status.
// Returns ErrNotFound when the invite is missing or no longer in that
// status, which keeps terminal states immutable under concurrent calls.
func (s *InviteStore) UpdateStatus(ctx context.Context, inviteID uuid.UUID, from, to models.InviteStatus) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE team_invites SET status = $1 WHERE id = $2 AND status = $3
	`, to, inviteID, from)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *InviteStore) DeletePending(ctx context.Context, inviteID uuid.UUID) error {
	result, err := s.db.Pool.Exec(ctx, `
		DELETE FROM team_invites WHERE id = $1 AND status = $2
	`, inviteID, models.InviteStatusPending)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
