package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/models"
)

type MembershipStore struct {
	db *database.DB
}

func NewMembershipStore(db *database.DB) *MembershipStore {
	return &MembershipStore{db: db}
}

// Upsert creates or refreshes the canonical (team, user) row. Re-running
// with the same arguments is a no-op, which makes invite acceptance
// safely retryable.
func (s *MembershipStore) Upsert(ctx context.Context, teamID, userID uuid.UUID, role string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO team_memberships (team_id, user_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, user_id) DO UPDATE SET role = EXCLUDED.role
	`, teamID, userID, role)
	if err != nil {
		return fmt.Errorf("failed to upsert membership: %w", err)
	}
	return nil
}

func (s *MembershipStore) Exists(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var exists bool
	err := s.db.Pool.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM team_memberships WHERE team_id = $1 AND user_id = $2)
	`, teamID, userID).Scan(&exists)
	return exists, err
}

// GetRole returns the membership role for (team, user), or ErrNotFound
// when no membership row exists.
func (s *MembershipStore) GetRole(ctx context.Context, teamID, userID uuid.UUID) (string, error) {
	var role string
	err := s.db.Pool.QueryRow(ctx, `
		SELECT role FROM team_memberships WHERE team_id = $1 AND user_id = $2
	`, teamID, userID).Scan(&role)
	if err != nil {
		return "", translate(err)
	}
	return role, nil
}

func (s *MembershipStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.TeamMembership, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT id, team_id, user_id, role, created_at
		FROM team_memberships
		WHERE user_id = $1
		ORDER BY created_at
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []models.TeamMembership
	for rows.Next() {
		var m models.TeamMembership
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Role, &m.CreatedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, rows.Err()
}
