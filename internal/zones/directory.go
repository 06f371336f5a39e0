// Package zones enumerates the configured zones and manages their lifecycle.
//
// The Directory is the authorization boundary for every zone-scoped
// operation: a zone that it does not list does not exist. The base domain is
// always listed first, followed by additional zones in insertion order.
package zones

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/clock"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
)

const zonesKey = "all"

// Directory lists zones, reading through the zones cache.
type Directory struct {
	db     *database.DB
	cache  *cache.Service
	clock  clock.Clock
	logger *slog.Logger
}

// NewDirectory creates a Directory.
func NewDirectory(db *database.DB, c *cache.Service, clk clock.Clock, logger *slog.Logger) *Directory {
	if clk == nil {
		clk = clock.System
	}
	return &Directory{db: db, cache: c, clock: clk, logger: logger}
}

// List returns every zone, base domain first. It fails with
// records.ErrConfigurationMissing before the base domain is configured.
func (d *Directory) List(ctx context.Context) ([]records.Zone, error) {
	zones, err := cache.GetOrLoad(d.cache, cache.Zones, zonesKey, func() ([]records.Zone, error) {
		return d.load(ctx)
	})
	if err != nil {
		return nil, err
	}
	return slices.Clone(zones), nil
}

func (d *Directory) load(ctx context.Context) ([]records.Zone, error) {
	base, err := d.db.BaseDomain(ctx)
	if err != nil {
		return nil, err
	}
	apexNS, err := d.db.Records(ctx, records.BaseApex(), records.KindNS)
	if err != nil {
		return nil, err
	}
	baseZone := records.Zone{Name: base}
	for _, r := range apexNS {
		baseZone.Nameservers = append(baseZone.Nameservers, r.Content)
	}

	extra, err := d.db.ListAdditionalZones(ctx)
	if err != nil {
		return nil, err
	}
	return append([]records.Zone{baseZone}, extra...), nil
}

// Names returns the zone names in directory order.
func (d *Directory) Names(ctx context.Context) ([]string, error) {
	zones, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(zones))
	for i, z := range zones {
		names[i] = z.Name
	}
	return names, nil
}

// Resolve returns the zone named name, failing with records.ErrUnknownZone
// when it is not listed.
func (d *Directory) Resolve(ctx context.Context, name string) (records.Zone, error) {
	name = records.Normalize(name)
	zones, err := d.List(ctx)
	if err != nil {
		return records.Zone{}, err
	}
	for _, z := range zones {
		if z.Name == name {
			return z, nil
		}
	}
	return records.Zone{}, records.Errorf(records.ErrUnknownZone, "Zone not available: %s", name)
}

// Base returns the base domain name.
func (d *Directory) Base(ctx context.Context) (string, error) {
	zones, err := d.List(ctx)
	if err != nil {
		return "", err
	}
	return zones[0].Name, nil
}

// Descriptor describes a zone to an external resolver.
type Descriptor struct {
	ID             int
	Zone           string
	Masters        []string
	NotifiedSerial int
	Serial         int
	LastCheck      int64
	Kind           string
}

// Descriptors lists every zone with a stable numeric id: the base domain is
// 1 and additional zones follow from 2 in directory order. Serials are not
// persisted; both serial fields are reported as 1.
func (d *Directory) Descriptors(ctx context.Context) ([]Descriptor, error) {
	zones, err := d.List(ctx)
	if err != nil {
		return nil, err
	}
	now := d.clock.Now().Unix()
	out := make([]Descriptor, len(zones))
	for i, z := range zones {
		out[i] = Descriptor{
			ID:             i + 1,
			Zone:           z.Name,
			Masters:        []string{},
			NotifiedSerial: 1,
			Serial:         1,
			LastCheck:      now,
			Kind:           "native",
		}
	}
	return out, nil
}

// Invalidate drops the cached zone list.
func (d *Directory) Invalidate() {
	d.cache.InvalidateAll(cache.Zones)
}
