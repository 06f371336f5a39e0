package zones

import (
	"context"
	"fmt"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
)

// MaxNameservers bounds the nameserver list of a zone.
const MaxNameservers = 6

const (
	systemRecordTTL = 60
	soaTTL          = 3600
)

func soaContent(zone string) string {
	return fmt.Sprintf("%s hostmaster.%s 1 3600 1800 1209600 3600", zone, zone)
}

// normalizeNameservers validates a zone's nameserver list: 1..MaxNameservers
// unique host names, none equal to the zone and none inside another zone.
func normalizeNameservers(zone string, raw []string, others []string) ([]string, error) {
	ns := make([]string, 0, len(raw))
	seen := map[string]bool{}
	for _, n := range raw {
		n = records.Normalize(n)
		if n == "" {
			continue
		}
		if !records.IsHostname(n) {
			return nil, records.Invalid("Invalid nameserver: %s", n)
		}
		if n == zone {
			return nil, records.Invalid("Nameserver cannot be the same as the domain: %s", n)
		}
		if seen[n] {
			return nil, records.Invalid("Duplicate nameserver: %s", n)
		}
		for _, o := range others {
			if records.InZone(n, o) {
				return nil, records.Invalid("Nameserver %s belongs to another zone (%s)", n, o)
			}
		}
		seen[n] = true
		ns = append(ns, n)
	}
	if len(ns) == 0 {
		return nil, records.Invalid("At least one nameserver is required")
	}
	if len(ns) > MaxNameservers {
		return nil, records.Invalid("A maximum of %d nameservers is allowed", MaxNameservers)
	}
	return ns, nil
}

// checkOverlap rejects a zone equal to, above, or below an existing zone.
func checkOverlap(name string, existing []string) error {
	for _, z := range existing {
		switch {
		case z == name:
			return records.Errorf(records.ErrConflict, "This domain already exists")
		case records.InZone(name, z):
			return records.Invalid("Domain %s is a subdomain of an existing zone (%s)", name, z)
		case records.InZone(z, name):
			return records.Invalid("Domain %s contains an existing zone (%s)", name, z)
		}
	}
	return nil
}

// writeApex inserts the system NS, ALIAS and SOA records of a zone apex and
// system domain rows for nameservers inside the zone.
func writeApex(ctx context.Context, tx *database.Tx, zone records.Zone, nameservers []string) error {
	apex := zone.Apex()
	for _, ns := range nameservers {
		if records.InZone(ns, zone.Name) {
			if err := tx.EnsureSystemDomain(ctx, ns); err != nil {
				return err
			}
		}
		if _, err := tx.InsertRecord(ctx, records.Record{Owner: apex, ZoneID: zone.ID, Kind: records.KindNS, Content: ns, TTL: systemRecordTTL}); err != nil {
			return err
		}
	}
	if _, err := tx.InsertRecord(ctx, records.Record{Owner: apex, ZoneID: zone.ID, Kind: records.KindALIAS, Content: nameservers[0], TTL: systemRecordTTL}); err != nil {
		return err
	}
	if _, err := tx.InsertRecord(ctx, records.Record{Owner: apex, ZoneID: zone.ID, Kind: records.KindSOA, Content: soaContent(zone.Name), TTL: soaTTL}); err != nil {
		return err
	}
	return nil
}

// SetupBaseDomain performs first-time configuration of the base domain. It
// fails with records.ErrConflict when a base domain is already set.
func (d *Directory) SetupBaseDomain(ctx context.Context, domain string, nameservers []string) error {
	domain = records.Normalize(domain)
	if !records.IsHostname(domain) {
		return records.Invalid("Invalid domain name: %s", domain)
	}

	err := d.db.Update(ctx, func(tx *database.Tx) error {
		cfg, err := tx.AppConfig(ctx)
		if err != nil {
			return err
		}
		if cfg.BaseDomain != "" {
			return records.Errorf(records.ErrConflict, "Base domain is already configured: %s", cfg.BaseDomain)
		}

		extra, err := tx.ListAdditionalZones(ctx)
		if err != nil {
			return err
		}
		others := zoneNames(extra)
		if err := checkOverlap(domain, others); err != nil {
			return err
		}
		ns, err := normalizeNameservers(domain, nameservers, others)
		if err != nil {
			return err
		}

		if err := writeApex(ctx, tx, records.Zone{Name: domain}, ns); err != nil {
			return err
		}
		if err := tx.EnsureSystemDomain(ctx, "hostmaster."+domain); err != nil {
			return err
		}
		return tx.SetBaseDomain(ctx, domain)
	})
	if err != nil {
		return err
	}

	d.invalidateAfterZoneChange()
	d.logInfo("base domain configured", "domain", domain)
	return nil
}

// AddAdditional registers an additional zone with its apex records.
func (d *Directory) AddAdditional(ctx context.Context, domain string, nameservers []string) (records.Zone, error) {
	domain = records.Normalize(domain)
	if !records.IsHostname(domain) {
		return records.Zone{}, records.Invalid("Invalid domain name: %s", domain)
	}

	var zone records.Zone
	err := d.db.Update(ctx, func(tx *database.Tx) error {
		base, err := tx.BaseDomain(ctx)
		if err != nil {
			return err
		}
		extra, err := tx.ListAdditionalZones(ctx)
		if err != nil {
			return err
		}
		existing := append([]string{base}, zoneNames(extra)...)
		if err := checkOverlap(domain, existing); err != nil {
			return err
		}
		ns, err := normalizeNameservers(domain, nameservers, existing)
		if err != nil {
			return err
		}

		id, err := tx.InsertAdditionalZone(ctx, domain, ns)
		if err != nil {
			return err
		}
		zone = records.Zone{ID: id, Name: domain, Nameservers: ns}
		return writeApex(ctx, tx, zone, ns)
	})
	if err != nil {
		return records.Zone{}, err
	}

	d.invalidateAfterZoneChange()
	d.logInfo("additional zone added", "domain", domain, "nameservers", len(zone.Nameservers))
	return zone, nil
}

// DeleteAdditional removes an additional zone, every domain below it, and
// their records. It requires the delete flag in app_config.
func (d *Directory) DeleteAdditional(ctx context.Context, domain string) error {
	domain = records.Normalize(domain)

	err := d.db.Update(ctx, func(tx *database.Tx) error {
		cfg, err := tx.AppConfig(ctx)
		if err != nil {
			return err
		}
		if !cfg.DeleteBaseDomainEnabled {
			return records.Errorf(records.ErrConflict, "Zone deletion is disabled")
		}
		zone, err := tx.AdditionalZone(ctx, domain)
		if err != nil {
			return err
		}
		if _, err := tx.DeleteZoneRecords(ctx, zone.ID); err != nil {
			return err
		}
		if _, err := tx.DeleteDomainsUnder(ctx, zone.Name); err != nil {
			return err
		}
		return tx.DeleteAdditionalZone(ctx, zone.ID)
	})
	if err != nil {
		return err
	}

	d.invalidateAfterZoneChange()
	d.cache.InvalidateAll(cache.UserDomains)
	d.logInfo("additional zone deleted", "domain", domain)
	return nil
}

// AppConfig returns the cached configuration singleton.
func (d *Directory) AppConfig(ctx context.Context) (database.AppConfig, error) {
	return cache.GetOrLoad(d.cache, cache.AppConfig, "appConfig", func() (database.AppConfig, error) {
		return d.db.AppConfig(ctx)
	})
}

// SetDeleteEnabled toggles whether additional zones may be deleted.
func (d *Directory) SetDeleteEnabled(ctx context.Context, enabled bool) error {
	if err := d.db.SetDeleteBaseDomainEnabled(ctx, enabled); err != nil {
		return err
	}
	d.cache.InvalidateAll(cache.AppConfig)
	return nil
}

func (d *Directory) invalidateAfterZoneChange() {
	d.cache.InvalidateAll(cache.Zones)
	d.cache.InvalidateAll(cache.AppConfig)
	d.cache.InvalidateAll(cache.AdvancedRecords)
	d.cache.InvalidateAll(cache.DNSRecords)
}

func (d *Directory) logInfo(msg string, args ...any) {
	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}

func zoneNames(zones []records.Zone) []string {
	out := make([]string, len(zones))
	for i, z := range zones {
		out[i] = z.Name
	}
	return out
}
