package accounts_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jroosing/dyndns/internal/accounts"
	"github.com/jroosing/dyndns/internal/cache"
	"github.com/jroosing/dyndns/internal/clock"
	"github.com/jroosing/dyndns/internal/database"
	"github.com/jroosing/dyndns/internal/records"
	"github.com/jroosing/dyndns/internal/update"
	"github.com/jroosing/dyndns/internal/zones"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *accounts.Service
	engine *update.Engine
	db     *database.DB
	alice  database.User
	bob    database.User
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	clk := clock.NewFixed(time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC))
	db, err := database.Open(filepath.Join(t.TempDir(), "accounts.db"), database.WithClock(clk))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	c := cache.NewService(cache.Options{Clock: clk})
	dir := zones.NewDirectory(db, c, clk, nil)
	ctx := context.Background()
	require.NoError(t, dir.SetupBaseDomain(ctx, "example.com", []string{"ns1.example.com"}))

	alice, err := db.CreateUser(ctx, "alice", "User", "key-alice")
	require.NoError(t, err)
	bob, err := db.CreateUser(ctx, "bob", "User", "key-bob")
	require.NoError(t, err)

	return fixture{
		svc:    accounts.NewService(db, dir, c, nil),
		engine: update.NewEngine(db, dir, c, nil),
		db:     db,
		alice:  alice,
		bob:    bob,
	}
}

func TestAuthenticate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	u, err := f.svc.Authenticate(ctx, "key-alice")
	require.NoError(t, err)
	assert.Equal(t, f.alice.ID, u.ID)

	_, err = f.svc.Authenticate(ctx, "nope")
	assert.ErrorIs(t, err, records.ErrInvalidCredential)
	_, err = f.svc.Authenticate(ctx, "")
	assert.ErrorIs(t, err, records.ErrInvalidCredential)
}

func TestAddAndListDomains(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	row, err := f.svc.AddDomain(ctx, f.alice.ID, "Home")
	require.NoError(t, err)
	assert.Equal(t, "home.example.com", row.Name)
	assert.Equal(t, f.alice.ID, row.UserID)

	_, err = f.svc.AddDomain(ctx, f.bob.ID, "home")
	assert.ErrorIs(t, err, records.ErrConflict)
	_, err = f.svc.AddDomain(ctx, f.bob.ID, "ns1")
	assert.ErrorIs(t, err, records.ErrConflict)

	for _, bad := range []string{"", "-x", "a.b", "bad_label"} {
		_, err = f.svc.AddDomain(ctx, f.bob.ID, bad)
		assert.ErrorIs(t, err, records.ErrInvalidRecord, bad)
	}

	list, err := f.svc.ListDomains(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "home.example.com", list[0].Name)
	assert.Empty(t, list[0].Records)

	list, err = f.svc.ListDomains(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListReflectsUpdates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddDomain(ctx, f.alice.ID, "home")
	require.NoError(t, err)

	// Prime the cache, then update through the protocol.
	_, err = f.svc.ListDomains(ctx, f.alice.ID)
	require.NoError(t, err)
	_, err = f.engine.Update(ctx, update.Request{Names: []string{"home"}, Token: "key-alice", IP: "192.0.2.1"})
	require.NoError(t, err)

	list, err := f.svc.ListDomains(ctx, f.alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Len(t, list[0].Records, 1)
	assert.Equal(t, records.KindA, list[0].Records[0].Kind)
	assert.Equal(t, "192.0.2.1", list[0].Records[0].Content)
}

func TestDeleteDomain(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	_, err := f.svc.AddDomain(ctx, f.alice.ID, "home")
	require.NoError(t, err)

	err = f.svc.DeleteDomain(ctx, f.bob.ID, "home")
	assert.ErrorIs(t, err, records.ErrNotFound)

	require.NoError(t, f.svc.DeleteDomain(ctx, f.alice.ID, "home.example.com"))
	_, err = f.db.Domain(ctx, "home.example.com")
	assert.ErrorIs(t, err, records.ErrNotFound)

	err = f.svc.DeleteDomain(ctx, f.alice.ID, "home")
	assert.ErrorIs(t, err, records.ErrNotFound)
}
