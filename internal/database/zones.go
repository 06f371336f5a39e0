package database

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jroosing/dyndns/internal/records"
)

// ListAdditionalZones returns every additional zone in insertion order.
func (s *Queries) ListAdditionalZones(ctx context.Context) ([]records.Zone, error) {
	rows, err := s.q.QueryContext(ctx, `
		SELECT id, domain_name, nameservers, created_at
		FROM additional_domains
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query additional domains: %w", err)
	}
	defer rows.Close()

	var zones []records.Zone
	for rows.Next() {
		z, err := scanZone(rows)
		if err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate additional domains: %w", err)
	}
	return zones, nil
}

// AdditionalZone returns the additional zone named name.
func (s *Queries) AdditionalZone(ctx context.Context, name string) (records.Zone, error) {
	row := s.q.QueryRowContext(ctx, `
		SELECT id, domain_name, nameservers, created_at
		FROM additional_domains WHERE domain_name = ?
	`, name)
	z, err := scanZone(row)
	if err != nil {
		return records.Zone{}, notFound(err, "Zone not found")
	}
	return z, nil
}

// InsertAdditionalZone creates an additional_domains row. A duplicate name
// fails with records.ErrConflict.
func (s *Queries) InsertAdditionalZone(ctx context.Context, name string, nameservers []string) (int64, error) {
	ns, err := json.Marshal(nameservers)
	if err != nil {
		return 0, fmt.Errorf("failed to encode nameservers: %w", err)
	}
	now := s.now()
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO additional_domains (domain_name, nameservers, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`, name, string(ns), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, records.Errorf(records.ErrConflict, "This domain already exists")
		}
		return 0, fmt.Errorf("failed to insert additional domain %s: %w", name, err)
	}
	return res.LastInsertId()
}

// DeleteAdditionalZone removes the zone row; its apex records cascade.
func (s *Queries) DeleteAdditionalZone(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM additional_domains WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete additional domain: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return records.Errorf(records.ErrNotFound, "Zone not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanZone(r rowScanner) (records.Zone, error) {
	var (
		z       records.Zone
		ns      string
		created int64
	)
	if err := r.Scan(&z.ID, &z.Name, &ns, &created); err != nil {
		return records.Zone{}, err
	}
	if ns != "" {
		if err := json.Unmarshal([]byte(ns), &z.Nameservers); err != nil {
			return records.Zone{}, fmt.Errorf("failed to decode nameservers of %s: %w", z.Name, err)
		}
	}
	z.CreatedAt = time.UnixMilli(created).UTC()
	return z, nil
}
