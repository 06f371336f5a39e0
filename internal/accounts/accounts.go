// Package accounts serves the user-facing side of the control plane:
// resolving API keys to users and managing the subdomains a user owns
// under the base domain.
package accounts

import (
	"context"
	"log/slog"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/zones"
)

// Domain is an owned subdomain with its current dynamic records.
type Domain struct {
	records.DomainRow
	Records []records.Record
}

// Service manages user-owned domains.
type Service struct {
	db     *database.DB
	zones  *zones.Directory
	cache  *cache.Service
	logger *slog.Logger
}

// NewService creates a Service.
func NewService(db *database.DB, dir *zones.Directory, c *cache.Service, logger *slog.Logger) *Service {
	return &Service{db: db, zones: dir, cache: c, logger: logger}
}

// Authenticate resolves an API key to its user.
func (s *Service) Authenticate(ctx context.Context, apiKey string) (database.User, error) {
	return s.db.UserByAPIKey(ctx, apiKey)
}

// ListDomains returns the domains owned by userID with their records,
// ordered by name.
func (s *Service) ListDomains(ctx context.Context, userID int64) ([]Domain, error) {
	return cache.GetOrLoad(s.cache, cache.UserDomains, cache.UserKey(userID), func() ([]Domain, error) {
		rows, err := s.db.ListUserDomains(ctx, userID)
		if err != nil {
			return nil, err
		}
		out := make([]Domain, 0, len(rows))
		for _, row := range rows {
			recs, err := s.db.Records(ctx, records.Domain(row.ID), 0)
			if err != nil {
				return nil, err
			}
			out = append(out, Domain{DomainRow: row, Records: recs})
		}
		return out, nil
	})
}

// AddDomain registers label as a subdomain of the base domain owned by
// userID. Names are unique across every user and zone.
func (s *Service) AddDomain(ctx context.Context, userID int64, label string) (records.DomainRow, error) {
	label = records.Normalize(label)
	if !records.IsLabel(label) {
		return records.DomainRow{}, records.Invalid("Invalid subdomain format")
	}
	base, err := s.zones.Base(ctx)
	if err != nil {
		return records.DomainRow{}, err
	}
	full := label + "." + base

	var row records.DomainRow
	err = s.db.Update(ctx, func(tx *database.Tx) error {
		if _, err := tx.InsertDomain(ctx, full, userID, false); err != nil {
			return err
		}
		row, err = tx.Domain(ctx, full)
		return err
	})
	if err != nil {
		return records.DomainRow{}, err
	}

	s.cache.Invalidate(cache.UserDomains, cache.UserKey(userID))
	s.logInfo("domain registered", "domain", full, "user_id", userID)
	return row, nil
}

// DeleteDomain removes a domain owned by userID and its records. name may
// be a label or a name under the base domain.
func (s *Service) DeleteDomain(ctx context.Context, userID int64, name string) error {
	base, err := s.zones.Base(ctx)
	if err != nil {
		return err
	}
	full := records.Qualify(records.Normalize(name), base)

	err = s.db.Update(ctx, func(tx *database.Tx) error {
		d, err := tx.UserDomain(ctx, full, userID)
		if err != nil {
			return err
		}
		return tx.DeleteDomain(ctx, d.ID)
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(cache.UserDomains, cache.UserKey(userID))
	s.cache.InvalidateAll(cache.DNSRecords)
	s.logInfo("domain deleted", "domain", full, "user_id", userID)
	return nil
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}
