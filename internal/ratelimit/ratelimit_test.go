package ratelimit_test

import (
	"net/netip"
	"testing"
	"time"

	"github.com/jroosing/dyndns/internal/clock"
	"github.com/jroosing/dyndns/internal/ratelimit"
	"github.com/stretchr/testify/assert"
)

func TestBucket_BurstThenRefill(t *testing.T) {
	clk := clock.NewFixed(time.Unix(1000, 0))
	b := ratelimit.NewBucket(ratelimit.BucketConfig{Rate: 1, Burst: 2, MaxEntries: 10}, clk)

	assert.True(t, b.Allow("k"))
	assert.True(t, b.Allow("k"))
	assert.False(t, b.Allow("k"))

	clk.Advance(time.Second)
	assert.True(t, b.Allow("k"))
	assert.False(t, b.Allow("k"))
}

func TestBucket_Disabled(t *testing.T) {
	b := ratelimit.NewBucket(ratelimit.BucketConfig{Rate: 0, Burst: 0}, nil)
	for range 100 {
		assert.True(t, b.Allow("k"))
	}
}

func TestBucket_MaxEntries(t *testing.T) {
	clk := clock.NewFixed(time.Unix(1000, 0))
	b := ratelimit.NewBucket(ratelimit.BucketConfig{Rate: 1, Burst: 1, MaxEntries: 2, Cleanup: time.Minute}, clk)

	assert.True(t, b.Allow("a"))
	assert.True(t, b.Allow("b"))
	assert.False(t, b.Allow("c"))
	assert.Equal(t, 2, b.Len())

	// Idle keys are reclaimed once the cleanup interval has passed.
	clk.Advance(2 * time.Minute)
	assert.True(t, b.Allow("c"))
	assert.Equal(t, 1, b.Len())
}

func TestLimiter_PerAddressAndPrefix(t *testing.T) {
	clk := clock.NewFixed(time.Unix(1000, 0))
	l := ratelimit.New(ratelimit.Settings{
		MaxIPEntries:     100,
		MaxPrefixEntries: 100,
		PrefixRate:       1,
		PrefixBurst:      4,
		IPRate:           1,
		IPBurst:          2,
	}, clk)

	a := netip.MustParseAddr("192.0.2.1")
	b := netip.MustParseAddr("192.0.2.2")
	other := netip.MustParseAddr("198.51.100.1")

	assert.True(t, l.Allow(a))
	assert.True(t, l.Allow(a))
	assert.False(t, l.Allow(a), "per-address burst exhausted")

	// The /24 has one token left; the rejected request above still took one.
	assert.True(t, l.Allow(b))
	assert.False(t, l.Allow(b), "prefix burst exhausted")

	assert.True(t, l.Allow(other))
	assert.True(t, l.Allow(netip.MustParseAddr("::ffff:198.51.100.1")))
}

func TestLimiter_Nil(t *testing.T) {
	var l *ratelimit.Limiter
	assert.True(t, l.Allow(netip.MustParseAddr("192.0.2.1")))
}

func TestSettingsString(t *testing.T) {
	s := ratelimit.Settings{Cleanup: time.Minute, IPRate: 2, IPBurst: 5, MaxIPEntries: 10}
	assert.Equal(t, "global=disabled prefix=disabled ip=2rps/5 cleanup=1m0s max_ip=10 max_prefix=0", s.String())
}
