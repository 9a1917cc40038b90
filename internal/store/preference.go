package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/models"
)

type PreferenceStore struct {
	db *database.DB
}

func NewPreferenceStore(db *database.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// Upsert switches the user's active team.
func (s *PreferenceStore) Upsert(ctx context.Context, userID, teamID uuid.UUID) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO user_team_preferences (user_id, current_team_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET
			current_team_id = EXCLUDED.current_team_id,
			updated_at = NOW()
	`, userID, teamID)
	if err != nil {
		return fmt.Errorf("failed to upsert team preference: %w", err)
	}
	return nil
}

func (s *PreferenceStore) Get(ctx context.Context, userID uuid.UUID) (*models.TeamPreference, error) {
	var pref models.TeamPreference
	err := s.db.Pool.QueryRow(ctx, `
		SELECT user_id, current_team_id, updated_at
		FROM user_team_preferences WHERE user_id = $1
	`, userID).Scan(&pref.UserID, &pref.CurrentTeamID, &pref.UpdatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &pref, nil
}
