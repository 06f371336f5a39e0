package pool_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/jroosing/dyndns/internal/pool"
	"github.com/stretchr/testify/assert"
)

func TestPool_GetAndPut(t *testing.T) {
	p := pool.New(func() []string {
		return make([]string, 0, 8)
	})

	s := p.Get()
	assert.NotNil(t, s)
	assert.Equal(t, 8, cap(s))
	p.Put(s)
}

func TestPool_ConstructorCalled(t *testing.T) {
	callCount := 0
	p := pool.New(func() int {
		callCount++
		return callCount
	})

	assert.Equal(t, 1, p.Get())
	assert.Equal(t, 2, p.Get())
}

func TestPool_ResetOnPut(t *testing.T) {
	p := pool.NewWithReset(
		func() *strings.Builder { return new(strings.Builder) },
		func(b *strings.Builder) { b.Reset() },
	)

	b := p.Get()
	b.WriteString("stale")
	p.Put(b)
	assert.Equal(t, 0, b.Len())
}

func TestJoinLines(t *testing.T) {
	assert.Equal(t, "", pool.JoinLines(nil))
	assert.Equal(t, "OK", pool.JoinLines([]string{"OK"}))
	assert.Equal(t, "OK\n192.0.2.1\nUPDATED", pool.JoinLines([]string{"OK", "192.0.2.1", "UPDATED"}))
}

func TestJoinLines_Concurrent(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, "a\nb", pool.JoinLines([]string{"a", "b"}))
		}()
	}
	wg.Wait()
}
