package records

import "time"

// OwnerKind tags which entity a record hangs off.
type OwnerKind uint8

const (
	// OwnerBaseApex is the apex of the base domain (no domain row, no zone row).
	OwnerBaseApex OwnerKind = iota
	// OwnerAdditionalZone is the apex of an additional zone.
	OwnerAdditionalZone
	// OwnerDomain is a row in the domains table.
	OwnerDomain
)

func (k OwnerKind) String() string {
	switch k {
	case OwnerBaseApex:
		return "base-apex"
	case OwnerAdditionalZone:
		return "additional-zone"
	case OwnerDomain:
		return "domain"
	default:
		return "unknown"
	}
}

// Owner is a tagged reference to whatever owns a record.
type Owner struct {
	kind OwnerKind
	id   int64
}

// BaseApex returns the owner of base-domain apex records.
func BaseApex() Owner { return Owner{kind: OwnerBaseApex} }

// AdditionalZone returns the owner of an additional zone's apex records.
func AdditionalZone(id int64) Owner { return Owner{kind: OwnerAdditionalZone, id: id} }

// Domain returns the owner for records of a domains row.
func Domain(id int64) Owner { return Owner{kind: OwnerDomain, id: id} }

func (o Owner) Kind() OwnerKind { return o.kind }

// ID is the referenced row id; zero for the base apex.
func (o Owner) ID() int64 { return o.id }

// Zone is a configured zone. ID is zero for the base domain and the
// additional_domains row id otherwise.
type Zone struct {
	ID          int64
	Name        string
	Nameservers []string
	CreatedAt   time.Time
}

// IsBase reports whether z is the base domain.
func (z Zone) IsBase() bool { return z.ID == 0 }

// Apex returns the owner of z's apex records.
func (z Zone) Apex() Owner {
	if z.IsBase() {
		return BaseApex()
	}
	return AdditionalZone(z.ID)
}

// Record is one row of dns_records.
type Record struct {
	ID int64
	// Owner identifies the owning domain or zone apex.
	Owner Owner
	// ZoneID is the additional zone the record belongs to, zero for the base domain.
	ZoneID    int64
	Kind      Kind
	Content   string
	TTL       int
	Advanced  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DomainRow is one row of the domains table.
type DomainRow struct {
	ID        int64
	Name      string
	UserID    int64 // zero when system or advanced owned
	Advanced  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserOwned reports whether a user owns the domain.
func (d DomainRow) UserOwned() bool { return d.UserID != 0 }
