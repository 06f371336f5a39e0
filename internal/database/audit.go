package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// AdminAction is one admin_logs entry.
type AdminAction struct {
	ID             int64
	AdminUsername  string
	Action         string
	TargetUsername string
	Details        string
	Timestamp      time.Time
}

// LogAdminAction appends an entry to admin_logs.
func (s *Queries) LogAdminAction(ctx context.Context, a AdminAction) error {
	_, err := s.q.ExecContext(ctx, `
		INSERT INTO admin_logs (admin_username, action, target_username, details, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, a.AdminUsername, a.Action, sql.NullString{String: a.TargetUsername, Valid: a.TargetUsername != ""}, a.Details, s.now())
	if err != nil {
		return fmt.Errorf("failed to log admin action: %w", err)
	}
	return nil
}

// AdminActions returns the newest entries first, at most limit.
func (s *Queries) AdminActions(ctx context.Context, limit int) ([]AdminAction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, admin_username, action, COALESCE(target_username, ''), COALESCE(details, ''), timestamp
		FROM admin_logs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin logs: %w", err)
	}
	defer rows.Close()

	var out []AdminAction
	for rows.Next() {
		var (
			a  AdminAction
			ts int64
		)
		if err := rows.Scan(&a.ID, &a.AdminUsername, &a.Action, &a.TargetUsername, &a.Details, &ts); err != nil {
			return nil, fmt.Errorf("failed to scan admin log: %w", err)
		}
		a.Timestamp = time.UnixMilli(ts).UTC()
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate admin logs: %w", err)
	}
	return out, nil
}
