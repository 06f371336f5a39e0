package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jroosing/dyndns/internal/records"
)

const domainColumns = `id, domain_name, user_id, is_advanced_record, created_at, updated_at`

func scanDomain(r rowScanner) (records.DomainRow, error) {
	var (
		d        records.DomainRow
		userID   sql.NullInt64
		advanced int
		created  int64
		updated  int64
	)
	if err := r.Scan(&d.ID, &d.Name, &userID, &advanced, &created, &updated); err != nil {
		return records.DomainRow{}, err
	}
	d.UserID = userID.Int64
	d.Advanced = advanced != 0
	d.CreatedAt = time.UnixMilli(created).UTC()
	d.UpdatedAt = time.UnixMilli(updated).UTC()
	return d, nil
}

// Domain returns the domain row named name.
func (s *Queries) Domain(ctx context.Context, name string) (records.DomainRow, error) {
	row := s.q.QueryRowContext(ctx, `SELECT `+domainColumns+` FROM domains WHERE domain_name = ?`, name)
	d, err := scanDomain(row)
	if err != nil {
		return records.DomainRow{}, notFound(err, "Domain not found")
	}
	return d, nil
}

// AdvancedDomain returns the advanced-record-owned domain named name.
func (s *Queries) AdvancedDomain(ctx context.Context, name string) (records.DomainRow, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE domain_name = ? AND is_advanced_record = 1`, name)
	d, err := scanDomain(row)
	if err != nil {
		return records.DomainRow{}, notFound(err, "Subdomain not found")
	}
	return d, nil
}

// UserDomain returns the domain named name if userID owns it.
func (s *Queries) UserDomain(ctx context.Context, name string, userID int64) (records.DomainRow, error) {
	row := s.q.QueryRowContext(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE domain_name = ? AND user_id = ?`, name, userID)
	d, err := scanDomain(row)
	if err != nil {
		return records.DomainRow{}, notFound(err, "Domain not found or not owned by user: "+name)
	}
	return d, nil
}

// ListUserDomains returns the domains owned by userID ordered by name.
func (s *Queries) ListUserDomains(ctx context.Context, userID int64) ([]records.DomainRow, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+domainColumns+` FROM domains WHERE user_id = ? ORDER BY domain_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user domains: %w", err)
	}
	defer rows.Close()

	var out []records.DomainRow
	for rows.Next() {
		d, err := scanDomain(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan domain: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domains: %w", err)
	}
	return out, nil
}

// InsertDomain creates a domain row. userID zero stores a system or
// advanced-owned row. Names are globally unique; a duplicate fails with
// records.ErrConflict.
func (s *Queries) InsertDomain(ctx context.Context, name string, userID int64, advanced bool) (int64, error) {
	now := s.now()
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO domains (user_id, domain_name, is_advanced_record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`, nullInt(userID), name, boolInt(advanced), now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, records.Errorf(records.ErrConflict, "Domain %s already exists", name)
		}
		return 0, fmt.Errorf("failed to insert domain %s: %w", name, err)
	}
	return res.LastInsertId()
}

// EnsureSystemDomain inserts an unowned domain row unless the name exists.
func (s *Queries) EnsureSystemDomain(ctx context.Context, name string) error {
	now := s.now()
	_, err := s.q.ExecContext(ctx, `
		INSERT OR IGNORE INTO domains (user_id, domain_name, is_advanced_record, created_at, updated_at)
		VALUES (NULL, ?, 0, ?, ?)
	`, name, now, now)
	if err != nil {
		return fmt.Errorf("failed to insert system domain %s: %w", name, err)
	}
	return nil
}

// DeleteDomain removes a domain row; its records cascade.
func (s *Queries) DeleteDomain(ctx context.Context, id int64) error {
	res, err := s.q.ExecContext(ctx, `DELETE FROM domains WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete domain: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return records.Errorf(records.ErrNotFound, "Domain not found")
	}
	return nil
}

// DeleteDomainsUnder removes every domain strictly below zone.
func (s *Queries) DeleteDomainsUnder(ctx context.Context, zone string) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM domains WHERE domain_name LIKE '%.' || ?`, zone)
	if err != nil {
		return 0, fmt.Errorf("failed to delete domains under %s: %w", zone, err)
	}
	return res.RowsAffected()
}

// UnownedAdvancedDomainIDs lists advanced-record-owned domains with no user.
func (s *Queries) UnownedAdvancedDomainIDs(ctx context.Context) ([]int64, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id FROM domains WHERE user_id IS NULL AND is_advanced_record = 1 ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query advanced domains: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan domain id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate domain ids: %w", err)
	}
	return ids, nil
}

// DeleteDomainIfUnused removes an unowned domain row only while it has no
// records. It reports whether a row was deleted.
func (s *Queries) DeleteDomainIfUnused(ctx context.Context, id int64) (bool, error) {
	res, err := s.q.ExecContext(ctx, `
		DELETE FROM domains
		WHERE id = ? AND user_id IS NULL
		  AND NOT EXISTS (SELECT 1 FROM dns_records WHERE domain_id = ?)
	`, id, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete unused domain %d: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return n > 0, nil
}
