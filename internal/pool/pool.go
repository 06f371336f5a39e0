// Package pool provides typed wrappers around sync.Pool.
package pool

import (
	"strings"
	"sync"
)

// Pool is a generic wrapper around sync.Pool.
type Pool[T any] struct {
	internal sync.Pool
	reset    func(T)
}

// New creates a new Pool with the given constructor.
func New[T any](newFn func() T) *Pool[T] {
	return &Pool[T]{
		internal: sync.Pool{
			New: func() any {
				return newFn()
			},
		},
	}
}

// NewWithReset is New with a function that clears an item before it is
// returned to the pool.
func NewWithReset[T any](newFn func() T, reset func(T)) *Pool[T] {
	p := New(newFn)
	p.reset = reset
	return p
}

// Get retrieves an item from the pool.
func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

// Put returns an item to the pool.
func (p *Pool[T]) Put(item T) {
	if p.reset != nil {
		p.reset(item)
	}
	p.internal.Put(item)
}

var builders = NewWithReset(
	func() *strings.Builder { return new(strings.Builder) },
	func(b *strings.Builder) { b.Reset() },
)

// JoinLines joins lines with "\n" using a pooled builder.
func JoinLines(lines []string) string {
	b := builders.Get()
	defer builders.Put(b)
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(l)
	}
	return b.String()
}
