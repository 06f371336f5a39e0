package advanced

import (
	"context"
	"errors"
	"fmt"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/metrics"
	"github.com/jroosing/dyndns/internal/records"
)

const candidatesKey = "candidates"

// SweepUnusedDomains deletes advanced-owned domains that have no user and
// no records left. The candidate list is cached; each deletion re-checks
// emptiness atomically, so a stale candidate list never removes a domain
// that gained records.
func (m *Manager) SweepUnusedDomains(ctx context.Context) (int, error) {
	ids, err := cache.GetOrLoad(m.cache, cache.UnusedAdvanced, candidatesKey, func() ([]int64, error) {
		return m.db.UnownedAdvancedDomainIDs(ctx)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to list advanced domains: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	removed := 0
	err = m.db.Update(ctx, func(tx *database.Tx) error {
		for _, id := range ids {
			ok, err := tx.DeleteDomainIfUnused(ctx, id)
			if err != nil {
				return err
			}
			if ok {
				removed++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		metrics.OrphansSwept.Add(float64(removed))
		m.cache.InvalidateAll(cache.UnusedAdvanced)
		m.cache.InvalidateAll(cache.DNSRecords)
		m.logInfo("unused advanced domains removed", "count", removed)
	}
	return removed, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, records.ErrNotFound)
}
