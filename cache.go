// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package addrcache provides a concurrency-safe cache of recently seen
// addresses with LIFO retrieval and TTL-driven FIFO eviction.
package addrcache

import (
	"context"
	"errors"
)

// ErrClosed is returned by Take when the cache is closed before or while
// waiting for an address.
var ErrClosed = errors.New("addrcache: cache closed")

// Cache remembers recently offered addresses for a bounded time.
//
// Retrieval is LIFO: Peek, Pop, and Take operate on the most recently
// offered surviving address. Expiry is FIFO: a background sweep evicts
// the oldest addresses once they outlive the TTL. Duplicate addresses
// are permitted and counted separately.
type Cache[A comparable] interface {
	// Offer adds the address and reports whether it was accepted.
	// It returns false only on a closed cache.
	Offer(addr A) bool

	// Contains reports whether at least one instance of the address
	// is currently cached.
	Contains(addr A) bool

	// Remove deletes the most recently offered instance of the given
	// address and reports whether one was found.
	Remove(addr A) bool

	// Peek returns the most recently offered address without removing
	// it. The second result is false if the cache is empty.
	Peek() (A, bool)

	// Pop removes and returns the most recently offered address.
	// The second result is false if the cache is empty.
	Pop() (A, bool)

	// Take removes and returns the most recently offered address,
	// waiting until one becomes available. It returns ctx.Err() if the
	// context ends first, or ErrClosed if the cache is closed.
	Take(ctx context.Context) (A, error)

	// Close stops the eviction sweep, discards all cached addresses,
	// and releases any callers blocked in Take.
	Close()

	// Len returns the number of cached addresses, counting duplicates.
	Len() int

	// IsEmpty reports whether the cache holds no addresses.
	IsEmpty() bool
}
