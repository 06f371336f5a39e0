// Package records defines the vocabulary shared by the zone, update, lookup
// and advanced-record components: record kinds with their content grammar,
// owner references, zones, name helpers and the error taxonomy.
package records

import (
	"net/netip"
	"strconv"
	"strings"

	"github.com/miekg/dns"
)

// Kind is a record type stored in dns_records.
type Kind uint8

const (
	KindA Kind = iota + 1
	KindAAAA
	KindTXT
	KindNS
	KindSOA
	KindALIAS
	KindCNAME
	KindMX
)

// kindSpec describes how a Kind behaves. Every Kind has exactly one entry.
type kindSpec struct {
	name string
	// single means at most one value may be active per owner and kind on
	// the advanced path.
	single bool
	// advanced means administrators may curate the kind.
	advanced bool
	validate func(content string) error
}

var kindSpecs = map[Kind]kindSpec{
	KindA:     {name: "A", advanced: true, validate: validateIPv4},
	KindAAAA:  {name: "AAAA", advanced: true, validate: validateIPv6},
	KindTXT:   {name: "TXT", single: true, advanced: true, validate: validateText},
	KindNS:    {name: "NS", advanced: true, validate: validateTarget},
	KindSOA:   {name: "SOA", validate: validateSOA},
	KindALIAS: {name: "ALIAS", single: true, advanced: true, validate: validateTarget},
	KindCNAME: {name: "CNAME", single: true, advanced: true, validate: validateTarget},
	KindMX:    {name: "MX", advanced: true, validate: validateMX},
}

// AllKinds lists every kind in declaration order.
func AllKinds() []Kind {
	return []Kind{KindA, KindAAAA, KindTXT, KindNS, KindSOA, KindALIAS, KindCNAME, KindMX}
}

// ParseKind maps a type mnemonic (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for k, spec := range kindSpecs {
		if spec.name == s {
			return k, nil
		}
	}
	if _, known := dns.StringToType[s]; known {
		return 0, Invalid("unsupported record type: %s", s)
	}
	return 0, Invalid("unknown record type: %s", s)
}

func (k Kind) String() string {
	if spec, ok := kindSpecs[k]; ok {
		return spec.name
	}
	return "TYPE" + strconv.Itoa(int(k))
}

// Valid reports whether k is a defined kind.
func (k Kind) Valid() bool {
	_, ok := kindSpecs[k]
	return ok
}

// SingleValued reports whether only one value per owner may exist for k on
// the advanced path.
func (k Kind) SingleValued() bool { return kindSpecs[k].single }

// Advanced reports whether administrators may write k directly.
func (k Kind) Advanced() bool { return kindSpecs[k].advanced }

// Validate checks content against the kind's grammar.
func (k Kind) Validate(content string) error {
	spec, ok := kindSpecs[k]
	if !ok {
		return Invalid("unknown record type")
	}
	return spec.validate(content)
}

// SplitValues turns raw administrator input into candidate values. TXT is
// taken as one trimmed value; every other kind is comma separated.
func (k Kind) SplitValues(raw string) []string {
	if k == KindTXT {
		v := strings.TrimSpace(raw)
		if v == "" {
			return nil
		}
		return []string{v}
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func validateIPv4(content string) error {
	addr, err := netip.ParseAddr(content)
	if err != nil || !addr.Is4() {
		return Invalid("invalid IPv4 address: %s", content)
	}
	return nil
}

func validateIPv6(content string) error {
	addr, err := netip.ParseAddr(content)
	if err != nil || !addr.Is6() || addr.Is4In6() || addr.Zone() != "" {
		return Invalid("invalid IPv6 address: %s", content)
	}
	return nil
}

func validateText(string) error { return nil }

func validateTarget(content string) error {
	if !IsHostname(Normalize(content)) {
		return Invalid("invalid domain name: %s", content)
	}
	return nil
}

func validateMX(content string) error {
	fields := strings.Fields(content)
	if len(fields) != 2 {
		return Invalid("MX record must be \"<priority> <domain>\": %s", content)
	}
	prio, err := strconv.Atoi(fields[0])
	if err != nil || prio < 0 || prio > 65535 {
		return Invalid("invalid MX priority: %s", fields[0])
	}
	return validateTarget(fields[1])
}

// validateSOA checks "<mname> <rname> <serial> <refresh> <retry> <expire> <minimum>".
func validateSOA(content string) error {
	fields := strings.Fields(content)
	if len(fields) != 7 {
		return Invalid("invalid SOA record: %s", content)
	}
	for _, f := range fields[:2] {
		if err := validateTarget(f); err != nil {
			return err
		}
	}
	for _, f := range fields[2:] {
		if _, err := strconv.ParseUint(f, 10, 32); err != nil {
			return Invalid("invalid SOA record: %s", content)
		}
	}
	return nil
}
