package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/svetozar/covelo-api/internal/database"
	"github.com/svetozar/covelo-api/internal/models"
	"github.com/svetozar/covelo-api/internal/oauth"
)

type UserStore struct {
	db *database.DB
}

func NewUserStore(db *database.DB) *UserStore {
	return &UserStore{db: db}
}

const userColumns = `id, email, first_name, last_name, avatar_url, provider, provider_id, created_at, updated_at`

func scanUser(row interface{ Scan(dest ...any) error }, u *models.User) error {
	return row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName, &u.AvatarURL,
		&u.Provider, &u.ProviderID, &u.CreatedAt, &u.UpdatedAt,
	)
}

func (s *UserStore) FindOrCreateFromOAuth(ctx context.Context, info *oauth.UserInfo) (*models.User, error) {
	email := strings.ToLower(info.Email)

	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE provider = $1 AND provider_id = $2
	`, info.Provider, info.ID), &user)

	if err == nil {
		if user.Email != email || user.FirstName != info.FirstName || user.LastName != info.LastName {
			_, _ = s.db.Pool.Exec(ctx, `
				UPDATE users SET email = $1, first_name = $2, last_name = $3, avatar_url = $4, updated_at = NOW()
				WHERE id = $5
			`, email, info.FirstName, info.LastName, nullableString(info.AvatarURL), user.ID)
			user.Email = email
			user.FirstName = info.FirstName
			user.LastName = info.LastName
			if info.AvatarURL != "" {
				user.AvatarURL = &info.AvatarURL
			}
		}
		return &user, nil
	}

	err = scanUser(s.db.Pool.QueryRow(ctx, `
		INSERT INTO users (email, first_name, last_name, avatar_url, provider, provider_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+userColumns+`
	`, email, info.FirstName, info.LastName, nullableString(info.AvatarURL), info.Provider, info.ID), &user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id), &user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		SELECT `+userColumns+` FROM users WHERE email = $1
	`, strings.ToLower(email)), &user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *UserStore) UpdateName(ctx context.Context, id uuid.UUID, firstName, lastName string) (*models.User, error) {
	var user models.User
	err := scanUser(s.db.Pool.QueryRow(ctx, `
		UPDATE users SET first_name = $1, last_name = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+userColumns+`
	`, firstName, lastName, id), &user)
	if err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
