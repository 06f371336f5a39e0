package helpers_test

import (
	"math"
	"testing"

	"github.com/jroosing/dyndns/internal/helpers"
	"github.com/stretchr/testify/assert"
)

func TestClampInt(t *testing.T) {
	tests := []struct {
		name      string
		v, lo, hi int
		want      int
	}{
		{"below", -5, 0, 10, 0},
		{"inside", 5, 0, 10, 5},
		{"above", 50, 0, 10, 10},
		{"at lower", 0, 0, 10, 0},
		{"at upper", 10, 0, 10, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, helpers.ClampInt(tt.v, tt.lo, tt.hi))
		})
	}
}

func TestClampUint64ToInt64(t *testing.T) {
	assert.Equal(t, int64(42), helpers.ClampUint64ToInt64(42))
	assert.Equal(t, int64(math.MaxInt64), helpers.ClampUint64ToInt64(math.MaxUint64))
}

func TestIntParam(t *testing.T) {
	assert.Equal(t, 100, helpers.IntParam("", 100, 1, 500))
	assert.Equal(t, 100, helpers.IntParam("abc", 100, 1, 500))
	assert.Equal(t, 25, helpers.IntParam(" 25 ", 100, 1, 500))
	assert.Equal(t, 500, helpers.IntParam("100000", 100, 1, 500))
	assert.Equal(t, 1, helpers.IntParam("-3", 100, 1, 500))
}

func TestFlagParam(t *testing.T) {
	for _, s := range []string{"true", "TRUE", "True", "1", " true "} {
		assert.True(t, helpers.FlagParam(s), s)
	}
	for _, s := range []string{"", "false", "0", "yes", "on"} {
		assert.False(t, helpers.FlagParam(s), s)
	}
}
