// Package advanced manages administrator-curated records (CNAME, MX, NS,
// ALIAS, multi-value A/AAAA, TXT) per zone and owner name, and garbage
// collects the implicit domain rows that anchor them.
package advanced

import (
	"context"
	"log/slog"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/metrics"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/zones"
)

// MaxTTL is the largest TTL an administrator may set.
const MaxTTL = 2147483647

// Manager validates, stores, replaces, lists and deletes advanced records.
type Manager struct {
	db     *database.DB
	zones  *zones.Directory
	cache  *cache.Service
	logger *slog.Logger
}

// NewManager creates a Manager.
func NewManager(db *database.DB, dir *zones.Directory, c *cache.Service, logger *slog.Logger) *Manager {
	return &Manager{db: db, zones: dir, cache: c, logger: logger}
}

// AddRequest describes a record set to store.
type AddRequest struct {
	Zone    string
	Name    string // records.RootMarker or a zone-relative label chain
	Type    string
	Content string // comma separated except for TXT
	TTL     int
}

// DeleteRequest selects advanced records to remove.
type DeleteRequest struct {
	Zone    string
	Name    string
	Type    string
	TTL     int
	Content string
	IDs     []int64
}

// Entry is one advanced record with its zone-relative name.
type Entry struct {
	Name   string
	Record records.Record
}

type validated struct {
	zone   records.Zone
	name   string
	kind   records.Kind
	values []string
}

func (m *Manager) validateAdd(ctx context.Context, req AddRequest) (validated, error) {
	zone, err := m.zones.Resolve(ctx, req.Zone)
	if err != nil {
		return validated{}, err
	}
	name := records.Normalize(req.Name)
	if err := records.ValidateOwnerName(name); err != nil {
		return validated{}, err
	}
	kind, err := records.ParseKind(req.Type)
	if err != nil {
		return validated{}, err
	}
	if !kind.Advanced() {
		return validated{}, records.Invalid("%s records are managed by the system", kind)
	}
	if name == records.RootMarker && kind == records.KindNS {
		return validated{}, records.Invalid("Root NS records are managed by the system")
	}
	if req.TTL <= 0 || req.TTL > MaxTTL {
		return validated{}, records.Invalid("Invalid TTL: %d", req.TTL)
	}

	values := kind.SplitValues(req.Content)
	if len(values) == 0 {
		return validated{}, records.Invalid("Record content is required")
	}
	if kind.SingleValued() && len(values) > 1 {
		return validated{}, records.Invalid("%s records accept a single value", kind)
	}
	for _, v := range values {
		if err := kind.Validate(v); err != nil {
			return validated{}, err
		}
	}
	return validated{zone: zone, name: name, kind: kind, values: values}, nil
}

// Add validates req and replaces the (owner, type) record set with its
// values. Every value is validated before the store is touched; all writes
// share one transaction.
func (m *Manager) Add(ctx context.Context, req AddRequest) error {
	v, err := m.validateAdd(ctx, req)
	if err != nil {
		metrics.AdvancedMutations.WithLabelValues("add", "invalid").Inc()
		return err
	}

	var (
		createdDomain bool
		ownerUserID   int64
	)
	err = m.db.Update(ctx, func(tx *database.Tx) error {
		owner := v.zone.Apex()
		if v.name != records.RootMarker {
			full := v.name + "." + v.zone.Name
			d, err := tx.Domain(ctx, full)
			switch {
			case err == nil:
				owner = records.Domain(d.ID)
				ownerUserID = d.UserID
			case isNotFound(err):
				id, err := tx.InsertDomain(ctx, full, 0, true)
				if err != nil {
					return err
				}
				owner = records.Domain(id)
				createdDomain = true
			default:
				return err
			}
		}

		if _, err := tx.DeleteRecords(ctx, owner, v.kind); err != nil {
			return err
		}
		for _, content := range v.values {
			rec := records.Record{Owner: owner, ZoneID: v.zone.ID, Kind: v.kind, Content: content, TTL: req.TTL, Advanced: true}
			if _, err := tx.InsertRecord(ctx, rec); err != nil {
				return err
			}
		}
		return nil
	})
	metrics.AdvancedMutations.WithLabelValues("add", metrics.Result(err)).Inc()
	if err != nil {
		return err
	}

	m.invalidate(ownerUserID)
	if createdDomain {
		m.cache.InvalidateAll(cache.UnusedAdvanced)
	}
	m.logInfo("advanced record set stored",
		"zone", v.zone.Name, "name", v.name, "type", v.kind.String(), "values", len(v.values))
	return nil
}

// Delete removes the advanced records selected by req and then sweeps
// unused advanced domains. A non-apex name must be an advanced-record domain.
// It fails with records.ErrNotFound when nothing matched.
func (m *Manager) Delete(ctx context.Context, req DeleteRequest) (int64, error) {
	zone, err := m.zones.Resolve(ctx, req.Zone)
	if err != nil {
		return 0, err
	}
	name := records.Normalize(req.Name)
	if err := records.ValidateOwnerName(name); err != nil {
		return 0, err
	}
	kind, err := records.ParseKind(req.Type)
	if err != nil {
		return 0, err
	}

	var (
		deleted     int64
		ownerUserID int64
	)
	err = m.db.Update(ctx, func(tx *database.Tx) error {
		owner := zone.Apex()
		if name != records.RootMarker {
			d, err := tx.AdvancedDomain(ctx, name+"."+zone.Name)
			if err != nil {
				return err
			}
			owner = records.Domain(d.ID)
			ownerUserID = d.UserID
		}

		n, err := tx.DeleteAdvancedRecords(ctx, database.AdvancedFilter{
			Owner:   owner,
			Kind:    kind,
			TTL:     req.TTL,
			Content: req.Content,
			IDs:     req.IDs,
		})
		if err != nil {
			return err
		}
		if n == 0 {
			return records.Errorf(records.ErrNotFound, "No matching DNS records found to delete")
		}
		deleted = n
		return nil
	})
	metrics.AdvancedMutations.WithLabelValues("delete", metrics.Result(err)).Inc()
	if err != nil {
		return 0, err
	}

	m.invalidate(ownerUserID)
	if _, err := m.SweepUnusedDomains(ctx); err != nil {
		m.logWarn("orphan cleanup failed", "err", err)
	}
	m.logInfo("advanced records deleted",
		"zone", zone.Name, "name", name, "type", kind.String(), "count", deleted)
	return deleted, nil
}

// List returns the advanced records of zone with zone-relative names. The
// result is a snapshot read through the advanced-records cache.
func (m *Manager) List(ctx context.Context, zoneName string) ([]Entry, error) {
	zone, err := m.zones.Resolve(ctx, zoneName)
	if err != nil {
		return nil, err
	}
	return cache.GetOrLoad(m.cache, cache.AdvancedRecords, zone.Name, func() ([]Entry, error) {
		rows, err := m.db.AdvancedRecords(ctx, zone)
		if err != nil {
			return nil, err
		}
		out := make([]Entry, len(rows))
		for i, r := range rows {
			name := records.RootMarker
			if r.DomainName != "" {
				name = records.Relative(r.DomainName, zone.Name)
			}
			out[i] = Entry{Name: name, Record: r.Record}
		}
		return out, nil
	})
}

func (m *Manager) invalidate(userID int64) {
	m.cache.InvalidateAll(cache.AdvancedRecords)
	m.cache.InvalidateAll(cache.DNSRecords)
	if userID != 0 {
		m.cache.Invalidate(cache.UserDomains, cache.UserKey(userID))
	}
}

func (m *Manager) logInfo(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Info(msg, args...)
	}
}

func (m *Manager) logWarn(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, args...)
	}
}
