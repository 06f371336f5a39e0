package database

import (
	"context"
	"fmt"
	"strings"
)

// Answer is one row returned to an external resolver.
type Answer struct {
	Type    string
	Name    string
	Content string
	TTL     int
}

// LookupName returns, in order: records of the domain named name, the base
// apex records when baseApex is set, and the apex records of the additional
// zone named name. An empty qtype matches every type.
func (s *Queries) LookupName(ctx context.Context, name, qtype string, baseApex bool) ([]Answer, error) {
	typeFilter := ""
	if qtype != "" {
		typeFilter = " AND r.record_type = ?"
	}

	var (
		parts []string
		args  []any
	)
	parts = append(parts, `
		SELECT 1 AS branch, r.id AS id, r.record_type, d.domain_name, r.content, r.ttl
		FROM dns_records r
		JOIN domains d ON r.domain_id = d.id
		WHERE d.domain_name = ?`+typeFilter)
	args = append(args, name)
	if qtype != "" {
		args = append(args, qtype)
	}

	if baseApex {
		parts = append(parts, `
		SELECT 2 AS branch, r.id AS id, r.record_type, ? AS domain_name, r.content, r.ttl
		FROM dns_records r
		WHERE r.domain_id IS NULL AND r.additional_domain_id IS NULL AND r.is_additional_domain = 0`+typeFilter)
		args = append(args, name)
		if qtype != "" {
			args = append(args, qtype)
		}
	}

	parts = append(parts, `
		SELECT 3 AS branch, r.id AS id, r.record_type, z.domain_name, r.content, r.ttl
		FROM dns_records r
		JOIN additional_domains z ON r.additional_domain_id = z.id
		WHERE r.domain_id IS NULL AND z.domain_name = ?`+typeFilter)
	args = append(args, name)
	if qtype != "" {
		args = append(args, qtype)
	}

	query := strings.Join(parts, "\n\t\tUNION ALL") + "\n\t\tORDER BY branch, id"
	return s.queryAnswers(ctx, query, args...)
}

// LookupTXTByNames returns the TXT records of the domains named in names.
func (s *Queries) LookupTXTByNames(ctx context.Context, names []string) ([]Answer, error) {
	if len(names) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(names))
	args := make([]any, len(names))
	for i, n := range names {
		placeholders[i] = "?"
		args[i] = n
	}
	query := `
		SELECT 1 AS branch, r.id AS id, r.record_type, d.domain_name, r.content, r.ttl
		FROM dns_records r
		JOIN domains d ON r.domain_id = d.id
		WHERE r.record_type = 'TXT' AND d.domain_name IN (` + strings.Join(placeholders, ",") + `)
		ORDER BY r.id`
	return s.queryAnswers(ctx, query, args...)
}

func (s *Queries) queryAnswers(ctx context.Context, query string, args ...any) ([]Answer, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to run lookup: %w", err)
	}
	defer rows.Close()

	out := []Answer{}
	for rows.Next() {
		var (
			a      Answer
			branch int
			id     int64
		)
		if err := rows.Scan(&branch, &id, &a.Type, &a.Name, &a.Content, &a.TTL); err != nil {
			return nil, fmt.Errorf("failed to scan lookup row: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lookup rows: %w", err)
	}
	return out, nil
}
