package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/models"
)

// RosterStore persists the legacy team_members projection. The table is
// uniquely keyed by user_id and by email system-wide; callers must never
// end up with more than one row per user.
type RosterStore struct {
	db *database.DB
}

func NewRosterStore(db *database.DB) *RosterStore {
	return &RosterStore{db: db}
}

const rosterColumns = `id, team_id, user_id, first_name, last_name, email, role, active, created_at, updated_at`

func scanMember(row interface{ Scan(dest ...any) error }, m *models.TeamMember) error {
	return row.Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.FirstName, &m.LastName,
		&m.Email, &m.Role, &m.Active, &m.CreatedAt, &m.UpdatedAt,
	)
}

func (s *RosterStore) FindByTeamAndUser(ctx context.Context, teamID, userID uuid.UUID) (*models.TeamMember, error) {
	var m models.TeamMember
	err := scanMember(s.db.Pool.QueryRow(ctx, `
		SELECT `+rosterColumns+` FROM team_members WHERE team_id = $1 AND user_id = $2
	`, teamID, userID), &m)
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *RosterStore) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.TeamMember, error) {
	var m models.TeamMember
	err := scanMember(s.db.Pool.QueryRow(ctx, `
		SELECT `+rosterColumns+` FROM team_members WHERE user_id = $1
	`, userID), &m)
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *RosterStore) FindByEmail(ctx context.Context, email string) (*models.TeamMember, error) {
	var m models.TeamMember
	err := scanMember(s.db.Pool.QueryRow(ctx, `
		SELECT `+rosterColumns+` FROM team_members WHERE email = $1
	`, email), &m)
	if err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

// Insert adds a fresh roster row. Returns ErrDuplicate when the user_id
// or email unique constraint is hit.
func (s *RosterStore) Insert(ctx context.Context, teamID, userID uuid.UUID, firstName, lastName, email, role string) error {
	_, err := s.db.Pool.Exec(ctx, `
		INSERT INTO team_members (team_id, user_id, first_name, last_name, email, role, active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
	`, teamID, userID, firstName, lastName, email, role)
	return translate(err)
}

// UpdateProfile refreshes the display fields of an existing row in place.
func (s *RosterStore) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, email, role string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE team_members
		SET first_name = $1, last_name = $2, email = $3, role = $4, active = TRUE, updated_at = NOW()
		WHERE id = $5
	`, firstName, lastName, email, role, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// MoveToTeam relocates a user's single roster row to a new team. This is
// the steady-state path when a user accepts an invite to a second team.
func (s *RosterStore) MoveToTeam(ctx context.Context, id, teamID uuid.UUID, firstName, lastName, email, role string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE team_members
		SET team_id = $1, first_name = $2, last_name = $3, email = $4, role = $5, active = TRUE, updated_at = NOW()
		WHERE id = $6
	`, teamID, firstName, lastName, email, role, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Reassign points a roster row at a new team and user at once, covering
// rows created before the user's id was known to this table.
func (s *RosterStore) Reassign(ctx context.Context, id, teamID, userID uuid.UUID, firstName, lastName, role string) error {
	result, err := s.db.Pool.Exec(ctx, `
		UPDATE team_members
		SET team_id = $1, user_id = $2, first_name = $3, last_name = $4, role = $5, active = TRUE, updated_at = NOW()
		WHERE id = $6
	`, teamID, userID, firstName, lastName, role, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RosterStore) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]models.TeamMember, error) {
	rows, err := s.db.Pool.Query(ctx, `
		SELECT `+rosterColumns+` FROM team_members
		WHERE team_id = $1 AND active = TRUE
		ORDER BY created_at
	`, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var members []models.TeamMember
	for rows.Next() {
		var m models.TeamMember
		if err := scanMember(rows, &m); err != nil {
			return nil, err
		}
		members = append(members, m)
	}
	return members, rows.Err()
}
