// Package update implements the dynamic update protocol: an authenticated
// user refreshes the A, AAAA or TXT value of one or more owned subdomains
// and receives a plain-text transcript of what happened.
package update

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"strings"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/metrics"
	"github.com/jroosing/dyndns/internal/pool"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/zones"
)

// RecordTTL is the TTL of every dynamically written record.
const RecordTTL = 60

// Transcript markers.
const (
	StatusOK = "OK"
	StatusKO = "KO"
	Updated  = "UPDATED"
	NoChange = "NOCHANGE"
)

// Request is one update call.
type Request struct {
	Names []string
	Token string
	IP    string
	IPv6  string
	TXT   string
	Clear bool
	// Verbose adds the value line and NOCHANGE marker when nothing changed.
	Verbose bool
	// Client is the observed address of the caller, used when no explicit
	// value is supplied.
	Client netip.Addr
}

// Result is the transcript of a processed request.
type Result struct {
	OK      bool
	Updated bool
	Lines   []string
}

// Text renders the transcript: the status line followed by every line.
func (r Result) Text() string {
	status := StatusKO
	if r.OK {
		status = StatusOK
	}
	return pool.JoinLines(append([]string{status}, r.Lines...))
}

// Engine applies update requests.
type Engine struct {
	db     *database.DB
	zones  *zones.Directory
	cache  *cache.Service
	logger *slog.Logger
}

// NewEngine creates an Engine.
func NewEngine(db *database.DB, dir *zones.Directory, c *cache.Service, logger *slog.Logger) *Engine {
	return &Engine{db: db, zones: dir, cache: c, logger: logger}
}

type outcome uint8

const (
	outcomeUnchanged outcome = iota
	outcomeChanged
)

// Update authenticates req.Token and applies req to each named subdomain.
//
// Request-level failures are returned as errors and nothing is written:
// missing names or token and malformed addresses fail with
// records.ErrInvalidRecord, an unknown token with
// records.ErrInvalidCredential. Per-name failures are reported in the
// transcript and never abort the rest of the batch.
func (e *Engine) Update(ctx context.Context, req Request) (Result, error) {
	names := splitNames(req.Names)
	if len(names) == 0 || req.Token == "" {
		metrics.UpdateRequests.WithLabelValues(StatusKO).Inc()
		return Result{}, records.Invalid("Missing required parameters: domains and token")
	}
	ip, ipv6, err := e.resolveValues(req)
	if err != nil {
		metrics.UpdateRequests.WithLabelValues(StatusKO).Inc()
		return Result{}, err
	}

	user, err := e.db.UserByAPIKey(ctx, req.Token)
	if err != nil {
		metrics.UpdateRequests.WithLabelValues(StatusKO).Inc()
		return Result{}, err
	}
	base, err := e.zones.Base(ctx)
	if err != nil {
		metrics.UpdateRequests.WithLabelValues(StatusKO).Inc()
		return Result{}, err
	}

	var (
		res       Result
		shown     bool
		unchanged bool
	)
	for _, name := range names {
		if strings.Contains(name, ".") && !records.InZone(name, base) {
			res.Lines = append(res.Lines, "KO: Only a single subdomain is allowed for domain: "+name)
			metrics.UpdateNames.WithLabelValues("invalid").Inc()
			continue
		}
		full := records.Qualify(name, base)

		changes, err := e.apply(ctx, user.ID, full, req, ip, ipv6)
		if errors.Is(err, records.ErrNotFound) {
			res.Lines = append(res.Lines, "KO: Domain not found or not owned by user: "+full)
			metrics.UpdateNames.WithLabelValues("not_found").Inc()
			continue
		}
		if err != nil {
			metrics.UpdateRequests.WithLabelValues(StatusKO).Inc()
			e.cache.Invalidate(cache.UserDomains, cache.UserKey(user.ID))
			return Result{}, err
		}
		res.OK = true

		nameChanged := false
		for _, c := range changes {
			if c.outcome != outcomeChanged {
				unchanged = true
				continue
			}
			nameChanged = true
			if !shown {
				res.Lines = append(res.Lines, c.line)
				shown = true
			}
		}
		if nameChanged {
			res.Updated = true
			metrics.UpdateNames.WithLabelValues("updated").Inc()
		} else {
			metrics.UpdateNames.WithLabelValues("nochange").Inc()
		}
		e.logDebug("update applied", "domain", full, "changed", nameChanged, "clear", req.Clear)
	}

	if res.OK {
		e.cache.Invalidate(cache.UserDomains, cache.UserKey(user.ID))
		e.cache.InvalidateAll(cache.DNSRecords)
	}

	switch {
	case res.Updated:
		res.Lines = append(res.Lines, Updated)
	case unchanged && req.Verbose:
		shownValue := ip
		if shownValue == "" {
			shownValue = ipv6
		}
		if shownValue == "" {
			shownValue = "TXT=" + req.TXT
		}
		res.Lines = append(res.Lines, shownValue, NoChange)
	}

	status := StatusKO
	if res.OK {
		status = StatusOK
	}
	metrics.UpdateRequests.WithLabelValues(status).Inc()
	return res, nil
}

// resolveValues validates the supplied addresses and substitutes the
// caller's address when no value of any kind was supplied. The family of
// the substituted address is decided once for the whole batch.
func (e *Engine) resolveValues(req Request) (string, string, error) {
	ip := strings.TrimSpace(req.IP)
	ipv6 := strings.TrimSpace(req.IPv6)

	if ip != "" {
		if err := records.KindA.Validate(ip); err != nil {
			return "", "", records.Invalid("Invalid IP address format")
		}
	}
	if ipv6 != "" {
		if err := records.KindAAAA.Validate(ipv6); err != nil {
			return "", "", records.Invalid("Invalid IP address format")
		}
	}
	if ip != "" || ipv6 != "" || req.TXT != "" {
		return ip, ipv6, nil
	}

	addr := req.Client.Unmap()
	switch {
	case !addr.IsValid():
		return "", "", records.Invalid("Invalid detected IP address format")
	case addr.Is4():
		return addr.String(), "", nil
	default:
		return "", addr.WithZone("").String(), nil
	}
}

type change struct {
	outcome outcome
	line    string
}

// apply runs the clear/replace steps for one owned domain inside one
// transaction.
func (e *Engine) apply(ctx context.Context, userID int64, full string, req Request, ip, ipv6 string) ([]change, error) {
	var changes []change
	err := e.db.Update(ctx, func(tx *database.Tx) error {
		d, err := tx.UserDomain(ctx, full, userID)
		if err != nil {
			return err
		}
		owner := records.Domain(d.ID)

		if req.Clear {
			if _, err := tx.DeleteRecords(ctx, owner, records.KindA, records.KindAAAA, records.KindTXT); err != nil {
				return err
			}
		}

		if req.TXT != "" {
			c, err := replace(ctx, tx, owner, records.KindTXT, req.TXT, "TXT="+req.TXT)
			if err != nil {
				return err
			}
			changes = append(changes, c)
			return nil
		}
		if ip != "" {
			c, err := replace(ctx, tx, owner, records.KindA, ip, ip)
			if err != nil {
				return err
			}
			changes = append(changes, c)
		}
		if ipv6 != "" {
			c, err := replace(ctx, tx, owner, records.KindAAAA, ipv6, ipv6)
			if err != nil {
				return err
			}
			changes = append(changes, c)
		}
		return nil
	})
	return changes, err
}

// replace writes content as the only record of kind for owner unless it is
// already the current value.
func replace(ctx context.Context, tx *database.Tx, owner records.Owner, kind records.Kind, content, line string) (change, error) {
	current, err := tx.Records(ctx, owner, kind)
	if err != nil {
		return change{}, err
	}
	if len(current) == 1 && current[0].Content == content {
		return change{outcome: outcomeUnchanged, line: line}, nil
	}
	if _, err := tx.DeleteRecords(ctx, owner, kind); err != nil {
		return change{}, err
	}
	rec := records.Record{Owner: owner, Kind: kind, Content: content, TTL: RecordTTL}
	if _, err := tx.InsertRecord(ctx, rec); err != nil {
		return change{}, err
	}
	return change{outcome: outcomeChanged, line: line}, nil
}

func splitNames(raw []string) []string {
	var out []string
	for _, r := range raw {
		for _, n := range strings.Split(r, ",") {
			if n = records.Normalize(n); n != "" {
				out = append(out, n)
			}
		}
	}
	return out
}

func (e *Engine) logDebug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
