package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jroosing/dyndns/internal/records"
)

// User is the slice of the users table the control plane consumes.
type User struct {
	ID        int64
	Username  string
	Role      string
	APIKey    string
	CreatedAt time.Time
}

// RoleSuperAdmin is the role allowed to curate zones and advanced records.
const RoleSuperAdmin = "Super-Admin"

// UserByAPIKey resolves a bearer token to its user. Unknown tokens fail with
// records.ErrInvalidCredential.
func (s *Queries) UserByAPIKey(ctx context.Context, apiKey string) (User, error) {
	if apiKey == "" {
		return User{}, records.Errorf(records.ErrInvalidCredential, "Invalid API key")
	}
	var (
		u       User
		created int64
	)
	err := s.q.QueryRowContext(ctx,
		`SELECT id, username, role, api_key, created_at FROM users WHERE api_key = ?`, apiKey,
	).Scan(&u.ID, &u.Username, &u.Role, &u.APIKey, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, records.Errorf(records.ErrInvalidCredential, "Invalid API key")
	}
	if err != nil {
		return User{}, fmt.Errorf("failed to look up api key: %w", err)
	}
	u.CreatedAt = time.UnixMilli(created).UTC()
	return u, nil
}

// CreateUser inserts a user. Duplicate usernames or keys fail with
// records.ErrConflict.
func (s *Queries) CreateUser(ctx context.Context, username, role, apiKey string) (User, error) {
	if role == "" {
		role = "User"
	}
	now := s.now()
	res, err := s.q.ExecContext(ctx,
		`INSERT INTO users (username, role, api_key, created_at) VALUES (?, ?, ?, ?)`,
		username, role, apiKey, now)
	if err != nil {
		if isUniqueViolation(err) {
			return User{}, records.Errorf(records.ErrConflict, "User %s already exists", username)
		}
		return User{}, fmt.Errorf("failed to create user %s: %w", username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return User{}, fmt.Errorf("failed to read user id: %w", err)
	}
	return User{ID: id, Username: username, Role: role, APIKey: apiKey, CreatedAt: time.UnixMilli(now).UTC()}, nil
}
