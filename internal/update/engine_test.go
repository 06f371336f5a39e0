package update_test

import (
	"context"
	"net/netip"
	"path/filepath"
	"testing"
	"time"

	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/clock"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/update"
	"github.com/jroosing/dyndns/internal/zones"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "token-alice"

type fixture struct {
	engine *update.Engine
	db     *database.DB
	dir    *zones.Directory
	domain records.DomainRow
}

func newFixture(t *testing.T, setup bool) fixture {
	t.Helper()
	clk := clock.NewFixed(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	db, err := database.Open(filepath.Join(t.TempDir(), "update.db"), database.WithClock(clk))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := cache.NewService(cache.Options{Clock: clk})
	dir := zones.NewDirectory(db, c, clk, nil)
	ctx := context.Background()

	u, err := db.CreateUser(ctx, "alice", "User", token)
	require.NoError(t, err)

	f := fixture{engine: update.NewEngine(db, dir, c, nil), db: db, dir: dir}
	if setup {
		require.NoError(t, dir.SetupBaseDomain(ctx, "example.com", []string{"ns1.example.com"}))
		id, err := db.InsertDomain(ctx, "a.example.com", u.ID, false)
		require.NoError(t, err)
		f.domain, err = db.Domain(ctx, "a.example.com")
		require.NoError(t, err)
		require.Equal(t, id, f.domain.ID)
	}
	return f
}

func (f fixture) contents(t *testing.T, kind records.Kind) []string {
	t.Helper()
	recs, err := f.db.Records(context.Background(), records.Domain(f.domain.ID), kind)
	require.NoError(t, err)
	var out []string
	for _, r := range recs {
		out = append(out, r.Content)
		assert.Equal(t, update.RecordTTL, r.TTL)
	}
	return out
}

func TestBatchPartialFailure(t *testing.T) {
	f := newFixture(t, true)

	res, err := f.engine.Update(context.Background(), update.Request{
		Names: []string{"a,b"},
		Token: token,
		IP:    "9.9.9.9",
	})
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.True(t, res.Updated)
	assert.Equal(t, []string{
		"9.9.9.9",
		"KO: Domain not found or not owned by user: b.example.com",
		"UPDATED",
	}, res.Lines)
	assert.Equal(t, "OK\n9.9.9.9\nKO: Domain not found or not owned by user: b.example.com\nUPDATED", res.Text())
	assert.Equal(t, []string{"9.9.9.9"}, f.contents(t, records.KindA))
}

func TestUpdateIsIdempotent(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	req := update.Request{Names: []string{"a"}, Token: token, IP: "192.0.2.1", IPv6: "2001:db8::1"}

	res, err := f.engine.Update(ctx, req)
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Equal(t, []string{"192.0.2.1", "UPDATED"}, res.Lines)

	res, err = f.engine.Update(ctx, req)
	require.NoError(t, err)
	assert.False(t, res.Updated)
	assert.Equal(t, "OK", res.Text())

	req.Verbose = true
	res, err = f.engine.Update(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, "OK\n192.0.2.1\nNOCHANGE", res.Text())

	assert.Equal(t, []string{"192.0.2.1"}, f.contents(t, records.KindA))
	assert.Equal(t, []string{"2001:db8::1"}, f.contents(t, records.KindAAAA))
}

func TestUpdateReplacesValue(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, IP: "192.0.2.1"})
	require.NoError(t, err)
	_, err = f.engine.Update(ctx, update.Request{Names: []string{"A.example.com"}, Token: token, IP: "192.0.2.2"})
	require.NoError(t, err)

	assert.Equal(t, []string{"192.0.2.2"}, f.contents(t, records.KindA))
}

func TestRequestLevelFailures(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	tests := []struct {
		name string
		req  update.Request
		want error
	}{
		{"missing names", update.Request{Token: token, IP: "192.0.2.1"}, records.ErrInvalidRecord},
		{"missing token", update.Request{Names: []string{"a"}, IP: "192.0.2.1"}, records.ErrInvalidRecord},
		{"bad token", update.Request{Names: []string{"a"}, Token: "nope", IP: "192.0.2.1"}, records.ErrInvalidCredential},
		{"bad ipv4", update.Request{Names: []string{"a"}, Token: token, IP: "300.1.1.1"}, records.ErrInvalidRecord},
		{"ipv6 as ip", update.Request{Names: []string{"a"}, Token: token, IP: "2001:db8::1"}, records.ErrInvalidRecord},
		{"bad ipv6", update.Request{Names: []string{"a"}, Token: token, IPv6: "2001:db8::zz"}, records.ErrInvalidRecord},
		{"no client address", update.Request{Names: []string{"a"}, Token: token}, records.ErrInvalidRecord},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.engine.Update(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// A malformed literal fails before any name is touched.
	_, err := f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, IP: "192.0.2.1", IPv6: "bogus"})
	assert.ErrorIs(t, err, records.ErrInvalidRecord)
	assert.Empty(t, f.contents(t, records.KindA))
}

func TestClientAddressSubstitution(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	res, err := f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, Client: netip.MustParseAddr("::ffff:192.0.2.5")})
	require.NoError(t, err)
	assert.Equal(t, []string{"192.0.2.5", "UPDATED"}, res.Lines)
	assert.Equal(t, []string{"192.0.2.5"}, f.contents(t, records.KindA))

	_, err = f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, Client: netip.MustParseAddr("2001:db8::9")})
	require.NoError(t, err)
	assert.Equal(t, []string{"2001:db8::9"}, f.contents(t, records.KindAAAA))
	assert.Equal(t, []string{"192.0.2.5"}, f.contents(t, records.KindA))
}

func TestTXTAndClear(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()

	_, err := f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, IP: "192.0.2.1"})
	require.NoError(t, err)

	res, err := f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, TXT: "challenge", Client: netip.MustParseAddr("192.0.2.99")})
	require.NoError(t, err)
	assert.Equal(t, []string{"TXT=challenge", "UPDATED"}, res.Lines)
	assert.Equal(t, []string{"challenge"}, f.contents(t, records.KindTXT))
	assert.Equal(t, []string{"192.0.2.1"}, f.contents(t, records.KindA))

	res, err = f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, TXT: "challenge", Verbose: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"TXT=challenge", "NOCHANGE"}, res.Lines)

	res, err = f.engine.Update(ctx, update.Request{Names: []string{"a"}, Token: token, TXT: "next", Clear: true})
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.Empty(t, f.contents(t, records.KindA))
	assert.Equal(t, []string{"next"}, f.contents(t, records.KindTXT))
}

func TestForeignNamesAreRejectedPerName(t *testing.T) {
	f := newFixture(t, true)

	res, err := f.engine.Update(context.Background(), update.Request{
		Names: []string{"x.notexample.com", "a.example.com.evil.net"},
		Token: token,
		IP:    "192.0.2.1",
	})
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, "KO\nKO: Only a single subdomain is allowed for domain: x.notexample.com\n"+
		"KO: Only a single subdomain is allowed for domain: a.example.com.evil.net", res.Text())
	assert.Empty(t, f.contents(t, records.KindA))
}

func TestUpdateBeforeSetup(t *testing.T) {
	f := newFixture(t, false)
	_, err := f.engine.Update(context.Background(), update.Request{Names: []string{"a"}, Token: token, IP: "192.0.2.1"})
	assert.ErrorIs(t, err, records.ErrConfigurationMissing)
}
