// Package lookup answers record queries from an external authoritative
// nameserver polling the control plane.
package lookup

import (
	"context"
	"log/slog"
	"strings"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/metrics"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/zones"
)

// TypeAny matches every record type.
const TypeAny = "ANY"

// Resolver resolves (qname, qtype) pairs against the record store.
type Resolver struct {
	db     *database.DB
	zones  *zones.Directory
	cache  *cache.Service
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(db *database.DB, dir *zones.Directory, c *cache.Service, logger *slog.Logger) *Resolver {
	return &Resolver{db: db, zones: dir, cache: c, logger: logger}
}

// Lookup returns the records answering qname/qtype. An empty result is not
// an error. It fails with records.ErrConfigurationMissing before the base
// domain is configured.
func (r *Resolver) Lookup(ctx context.Context, qname, qtype string) ([]database.Answer, error) {
	base, err := r.zones.Base(ctx)
	if err != nil {
		metrics.LookupRequests.WithLabelValues("error").Inc()
		return nil, err
	}

	name := records.Normalize(qname)
	typ := strings.ToUpper(strings.TrimSpace(qtype))
	if typ == TypeAny {
		typ = ""
	}

	answers, err := cache.GetOrLoad(r.cache, cache.DNSRecords, name+"|"+typ, func() ([]database.Answer, error) {
		if suffix, ok := strings.CutPrefix(name, "*."); ok {
			if typ != "" && typ != records.KindTXT.String() {
				return []database.Answer{}, nil
			}
			return r.db.LookupTXTByNames(ctx, wildcardNames(suffix))
		}
		return r.db.LookupName(ctx, name, typ, name == base)
	})
	if err != nil {
		metrics.LookupRequests.WithLabelValues("error").Inc()
		if r.logger != nil {
			r.logger.Error("lookup failed", "qname", name, "qtype", qtype, "err", err)
		}
		return nil, err
	}

	if len(answers) == 0 {
		metrics.LookupRequests.WithLabelValues("empty").Inc()
		return []database.Answer{}, nil
	}
	metrics.LookupRequests.WithLabelValues("answer").Inc()
	out := make([]database.Answer, len(answers))
	copy(out, answers)
	return out, nil
}

// wildcardNames lists the owner names a wildcard query for *.suffix may
// match: the suffix itself, *.suffix, the wildcard one level up, and "*".
func wildcardNames(suffix string) []string {
	names := []string{suffix, "*." + suffix}
	if _, parent, ok := strings.Cut(suffix, "."); ok {
		names = append(names, "*."+parent)
	}
	return append(names, "*")
}
