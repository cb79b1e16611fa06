// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package addrcache

import (
	"container/list"
	"context"
	"sync"
	"time"
)

const (
	// DefaultTTL is the caching time applied when WithTTL is not given.
	DefaultTTL = 5 * time.Second

	// DefaultSweepInterval is how often the eviction sweep runs when
	// WithSweepInterval is not given.
	DefaultSweepInterval = 5 * time.Second
)

var _ Cache[struct{}] = (*TTLCache[struct{}])(nil)

// Option configures a TTLCache.
type Option func(*config)

type config struct {
	ttl        time.Duration
	sweepEvery time.Duration
}

// WithTTL sets the caching time. Non-positive values keep DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(cfg *config) {
		if ttl > 0 {
			cfg.ttl = ttl
		}
	}
}

// WithSweepInterval sets the eviction sweep interval. Non-positive
// values keep DefaultSweepInterval.
func WithSweepInterval(interval time.Duration) Option {
	return func(cfg *config) {
		if interval > 0 {
			cfg.sweepEvery = interval
		}
	}
}

// TTLCache is the standard Cache implementation.
//
// Two structures back it, kept in lock-step under one lock: an ordered
// list of entries (front = most recently offered) and a per-address
// count of live instances, so Contains stays O(1) even with duplicates.
//
// TTLCache owns a background eviction goroutine. Call Close to stop it;
// afterwards the cache is permanently empty, Offer returns false, and
// Take fails with ErrClosed.
type TTLCache[A comparable] struct {
	mu     sync.RWMutex
	avail  *sync.Cond // signaled on Offer, broadcast on Close
	order  *list.List // of *entry[A], front = most recent
	counts map[A]int  // live instances per address, zero counts deleted

	ttl        time.Duration
	sweepEvery time.Duration
	closed     bool

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New constructs a TTLCache and starts its eviction sweep.
func New[A comparable](opts ...Option) *TTLCache[A] {
	cfg := config{
		ttl:        DefaultTTL,
		sweepEvery: DefaultSweepInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c := &TTLCache[A]{
		order:      list.New(),
		counts:     make(map[A]int),
		ttl:        cfg.ttl,
		sweepEvery: cfg.sweepEvery,
		cancel:     cancel,
	}
	c.avail = sync.NewCond(&c.mu)

	c.wg.Add(1)
	go c.sweepLoop(ctx)

	return c
}

// Offer adds the address and reports whether it was accepted. It always
// succeeds on an open cache; there is no capacity bound.
func (c *TTLCache[A]) Offer(addr A) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return false
	}

	c.order.PushFront(newEntry(addr))
	c.counts[addr]++
	c.avail.Signal()
	return true
}

// Contains reports whether at least one instance of the address is
// currently cached.
func (c *TTLCache[A]) Contains(addr A) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.counts[addr] > 0
}

// Remove deletes the most recently offered instance of the given
// address and reports whether one was found.
func (c *TTLCache[A]) Remove(addr A) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.counts[addr] == 0 {
		return false
	}
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if elem.Value.(*entry[A]).addr == addr {
			c.removeElement(elem)
			return true
		}
	}
	// A positive count with no matching entry cannot happen: both
	// structures mutate under the write lock held here.
	return false
}

// Peek returns the most recently offered address without removing it.
func (c *TTLCache[A]) Peek() (A, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if front := c.order.Front(); front != nil {
		return front.Value.(*entry[A]).addr, true
	}
	var zero A
	return zero, false
}

// Pop removes and returns the most recently offered address.
func (c *TTLCache[A]) Pop() (A, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.popFront()
}

// Take removes and returns the most recently offered address, waiting
// until one becomes available. It returns ctx.Err() if the context ends
// first, or ErrClosed if the cache is closed while waiting.
func (c *TTLCache[A]) Take(ctx context.Context) (A, error) {
	// Waking the cond on cancellation lets the wait loop observe
	// ctx.Err; Wait alone would sleep through it. The callback must
	// hold the lock, or a broadcast landing between the ctx.Err check
	// below and Wait registering the waiter is lost and the canceled
	// Take never wakes.
	stop := context.AfterFunc(ctx, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.avail.Broadcast()
	})
	defer stop()

	c.mu.Lock()
	defer c.mu.Unlock()

	for c.order.Len() == 0 {
		var zero A
		if c.closed {
			return zero, ErrClosed
		}
		if err := ctx.Err(); err != nil {
			return zero, err
		}
		c.avail.Wait()
	}

	addr, _ := c.popFront()
	return addr, nil
}

// Close stops the eviction sweep, discards all cached addresses, and
// releases any callers blocked in Take with ErrClosed. Close is
// idempotent; the cache stays permanently empty afterwards.
func (c *TTLCache[A]) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.order.Init()
	clear(c.counts)
	c.avail.Broadcast()
	c.mu.Unlock()

	// Stop the sweep outside the lock; its ticks take the same lock.
	c.cancel()
	c.wg.Wait()
}

// Len returns the number of cached addresses, counting duplicates.
func (c *TTLCache[A]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// IsEmpty reports whether the cache holds no addresses.
func (c *TTLCache[A]) IsEmpty() bool {
	return c.Len() == 0
}

// TTL returns the current caching time.
func (c *TTLCache[A]) TTL() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.ttl
}

// SetTTL changes the caching time. Entries record their creation time,
// so the new TTL applies to everything already cached at the next sweep.
func (c *TTLCache[A]) SetTTL(ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ttl = ttl
}

// popFront removes the front entry. Callers must hold the write lock.
func (c *TTLCache[A]) popFront() (A, bool) {
	front := c.order.Front()
	if front == nil {
		var zero A
		return zero, false
	}
	return c.removeElement(front), true
}

// removeElement unlinks an entry and decrements its address count,
// dropping the count key at zero. Callers must hold the write lock.
func (c *TTLCache[A]) removeElement(elem *list.Element) A {
	e := elem.Value.(*entry[A])
	c.order.Remove(elem)
	if c.counts[e.addr] <= 1 {
		delete(c.counts, e.addr)
	} else {
		c.counts[e.addr]--
	}
	return e.addr
}
