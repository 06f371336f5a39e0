package records

import (
	"regexp"
	"strings"

	"github.com/miekg/dns"
)

// RootMarker names the apex of a zone in zone-relative notation.
const RootMarker = "@"

// MaxSubdomainLevels bounds the label count of a zone-relative owner name.
const MaxSubdomainLevels = 10

var (
	hostnameRe = regexp.MustCompile(`^(?:[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?\.)+[a-z0-9][a-z0-9-]{0,61}[a-z0-9]$`)
	labelRe    = regexp.MustCompile(`^[a-z0-9](?:[a-z0-9-]{0,61}[a-z0-9])?$`)
	// Owner labels may also be service labels (_dmarc) or a leading wildcard.
	ownerLabelRe = regexp.MustCompile(`^[a-z0-9_](?:[a-z0-9_-]{0,61}[a-z0-9_])?$`)
)

// Normalize lowercases a name and strips surrounding space and the root dot.
func Normalize(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	return strings.TrimSuffix(name, ".")
}

// IsHostname reports whether name is a multi-label host name such as
// "ns1.example.com". Single labels and trailing dots are rejected.
func IsHostname(name string) bool {
	if len(name) > 253 || !hostnameRe.MatchString(name) {
		return false
	}
	_, ok := dns.IsDomainName(name)
	return ok
}

// IsLabel reports whether s is a single LDH label.
func IsLabel(s string) bool {
	return labelRe.MatchString(s)
}

// InZone reports whether name equals zone or sits below it. Matching is on
// whole labels, so "notexample.com" is not in "example.com".
func InZone(name, zone string) bool {
	if name == "" || zone == "" {
		return false
	}
	return dns.IsSubDomain(dns.Fqdn(zone), dns.Fqdn(name))
}

// Qualify returns name as a fully-qualified name under zone.
func Qualify(name, zone string) string {
	if InZone(name, zone) {
		return name
	}
	return name + "." + zone
}

// Relative renders a fully-qualified name relative to zone, using RootMarker
// for the apex.
func Relative(name, zone string) string {
	if name == zone {
		return RootMarker
	}
	return strings.TrimSuffix(name, "."+zone)
}

// ValidateOwnerName checks a zone-relative owner name: the root marker or a
// chain of at most MaxSubdomainLevels labels, optionally led by "*".
func ValidateOwnerName(name string) error {
	if name == RootMarker {
		return nil
	}
	if name == "" {
		return Invalid("record name is required")
	}
	labels := dns.SplitDomainName(name)
	if len(labels) > MaxSubdomainLevels {
		return Invalid("a maximum of %d subdomain levels is allowed", MaxSubdomainLevels)
	}
	for i, l := range labels {
		if l == "*" && i == 0 {
			continue
		}
		if !ownerLabelRe.MatchString(l) {
			return Invalid("invalid record name: %s", name)
		}
	}
	return nil
}
