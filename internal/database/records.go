package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jroosing/dyndns/internal/records"
)

const recordColumns = `r.id, r.domain_id, r.additional_domain_id, r.record_type, r.content, r.ttl,
	r.is_advanced_record, r.created_at, r.updated_at`

// ownerClause renders the predicate selecting records of o. The base apex is
// the only owner with both references NULL.
func ownerClause(o records.Owner) (string, []any) {
	switch o.Kind() {
	case records.OwnerDomain:
		return "domain_id = ?", []any{o.ID()}
	case records.OwnerAdditionalZone:
		return "domain_id IS NULL AND additional_domain_id = ?", []any{o.ID()}
	default:
		return "domain_id IS NULL AND additional_domain_id IS NULL", nil
	}
}

func scanRecord(r rowScanner, extra ...any) (records.Record, error) {
	var (
		rec      records.Record
		domainID sql.NullInt64
		zoneID   sql.NullInt64
		kind     string
		advanced int
		created  int64
		updated  int64
	)
	dest := append([]any{&rec.ID, &domainID, &zoneID, &kind, &rec.Content, &rec.TTL, &advanced, &created, &updated}, extra...)
	if err := r.Scan(dest...); err != nil {
		return records.Record{}, fmt.Errorf("failed to scan record: %w", err)
	}
	k, err := records.ParseKind(kind)
	if err != nil {
		return records.Record{}, fmt.Errorf("record %d: %w", rec.ID, err)
	}
	rec.Kind = k
	rec.ZoneID = zoneID.Int64
	switch {
	case domainID.Valid:
		rec.Owner = records.Domain(domainID.Int64)
	case zoneID.Valid:
		rec.Owner = records.AdditionalZone(zoneID.Int64)
	default:
		rec.Owner = records.BaseApex()
	}
	rec.Advanced = advanced != 0
	rec.CreatedAt = time.UnixMilli(created).UTC()
	rec.UpdatedAt = time.UnixMilli(updated).UTC()
	return rec, nil
}

// InsertRecord stores rec and returns its id. Owner and ZoneID decide the
// domain_id/additional_domain_id pair.
func (s *Queries) InsertRecord(ctx context.Context, rec records.Record) (int64, error) {
	var domainID, zoneID sql.NullInt64
	switch rec.Owner.Kind() {
	case records.OwnerDomain:
		domainID = nullInt(rec.Owner.ID())
		zoneID = nullInt(rec.ZoneID)
	case records.OwnerAdditionalZone:
		zoneID = nullInt(rec.Owner.ID())
	}
	now := s.now()
	res, err := s.q.ExecContext(ctx, `
		INSERT INTO dns_records (domain_id, additional_domain_id, is_additional_domain, record_type,
		                         content, ttl, is_advanced_record, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, domainID, zoneID, boolInt(zoneID.Valid), rec.Kind.String(), rec.Content, rec.TTL, boolInt(rec.Advanced), now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to insert %s record: %w", rec.Kind, err)
	}
	return res.LastInsertId()
}

// Records returns the records of owner, restricted to kind unless kind is zero.
func (s *Queries) Records(ctx context.Context, owner records.Owner, kind records.Kind) ([]records.Record, error) {
	where, args := ownerClause(owner)
	query := `SELECT ` + recordColumns + ` FROM dns_records r WHERE ` + where
	if kind != 0 {
		query += ` AND r.record_type = ?`
		args = append(args, kind.String())
	}
	query += ` ORDER BY r.id`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []records.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}
	return out, nil
}

// DeleteRecords removes the records of owner with any of kinds and returns
// the number of rows deleted.
func (s *Queries) DeleteRecords(ctx context.Context, owner records.Owner, kinds ...records.Kind) (int64, error) {
	if len(kinds) == 0 {
		return 0, nil
	}
	where, args := ownerClause(owner)
	placeholders := make([]string, len(kinds))
	for i, k := range kinds {
		placeholders[i] = "?"
		args = append(args, k.String())
	}
	res, err := s.q.ExecContext(ctx,
		`DELETE FROM dns_records WHERE `+where+` AND record_type IN (`+strings.Join(placeholders, ",")+`)`, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete records: %w", err)
	}
	return res.RowsAffected()
}

// AdvancedFilter selects advanced records for deletion.
type AdvancedFilter struct {
	Owner records.Owner
	Kind  records.Kind
	TTL   int
	// Content restricts the match to one value when non-empty.
	Content string
	// IDs, when set, selects exactly these records (still scoped to Owner and Kind).
	IDs []int64
}

// DeleteAdvancedRecords removes advanced records matching f.
func (s *Queries) DeleteAdvancedRecords(ctx context.Context, f AdvancedFilter) (int64, error) {
	where, args := ownerClause(f.Owner)
	query := `DELETE FROM dns_records WHERE is_advanced_record = 1 AND ` + where + ` AND record_type = ?`
	args = append(args, f.Kind.String())

	if len(f.IDs) > 0 {
		placeholders := make([]string, len(f.IDs))
		for i, id := range f.IDs {
			placeholders[i] = "?"
			args = append(args, id)
		}
		query += ` AND id IN (` + strings.Join(placeholders, ",") + `)`
	} else {
		query += ` AND ttl = ?`
		args = append(args, f.TTL)
		if f.Content != "" {
			query += ` AND content = ?`
			args = append(args, f.Content)
		}
	}

	res, err := s.q.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to delete advanced records: %w", err)
	}
	return res.RowsAffected()
}

// NamedRecord pairs a record with the name of its owning domain, empty for
// apex records.
type NamedRecord struct {
	DomainName string
	Record     records.Record
}

// AdvancedRecords lists the advanced records of zone with their domain names.
func (s *Queries) AdvancedRecords(ctx context.Context, zone records.Zone) ([]NamedRecord, error) {
	query := `SELECT ` + recordColumns + `, COALESCE(d.domain_name, '')
		FROM dns_records r
		LEFT JOIN domains d ON r.domain_id = d.id
		WHERE r.is_advanced_record = 1 AND `
	var args []any
	if zone.IsBase() {
		query += `r.additional_domain_id IS NULL`
	} else {
		query += `r.additional_domain_id = ?`
		args = append(args, zone.ID)
	}
	query += ` ORDER BY COALESCE(d.domain_name, ''), r.record_type, r.id`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query advanced records: %w", err)
	}
	defer rows.Close()

	var out []NamedRecord
	for rows.Next() {
		var nr NamedRecord
		rec, err := scanRecord(rows, &nr.DomainName)
		if err != nil {
			return nil, err
		}
		nr.Record = rec
		out = append(out, nr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate advanced records: %w", err)
	}
	return out, nil
}

// DeleteZoneRecords removes every record tagged with the additional zone id.
func (s *Queries) DeleteZoneRecords(ctx context.Context, zoneID int64) (int64, error) {
	res, err := s.q.ExecContext(ctx, `DELETE FROM dns_records WHERE additional_domain_id = ?`, zoneID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete zone records: %w", err)
	}
	return res.RowsAffected()
}
