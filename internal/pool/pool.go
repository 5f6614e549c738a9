// Package pool provides typed wrappers over sync.Pool.
package pool

import (
	"bytes"
	"sync"
)

// Pool is a generic wrapper around sync.Pool.
type Pool[T any] struct {
	internal sync.Pool
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

func (p *Pool[T]) Get() T {
	return p.internal.Get().(T)
}

func (p *Pool[T]) Put(item T) {
	p.internal.Put(item)
}

// BufferPool hands out reset buffers. Buffers grown past maxCap are dropped on
// Put so one large upstream response does not pin memory.
type BufferPool struct {
	pool   *Pool[*bytes.Buffer]
	maxCap int
}

// NewBufferPool creates a BufferPool; maxCap <= 0 keeps every buffer.
func NewBufferPool(maxCap int) *BufferPool {
	return &BufferPool{
		pool:   New(func() *bytes.Buffer { return new(bytes.Buffer) }),
		maxCap: maxCap,
	}
}

// Get returns an empty buffer.
func (b *BufferPool) Get() *bytes.Buffer {
	buf := b.pool.Get()
	buf.Reset()
	return buf
}

// Put returns buf to the pool. The caller must not use buf afterwards.
func (b *BufferPool) Put(buf *bytes.Buffer) {
	if buf == nil || (b.maxCap > 0 && buf.Cap() > b.maxCap) {
		return
	}
	b.pool.Put(buf)
}
