// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package addrcache

import (
	"context"
	"time"
)

// sweepLoop periodically evicts expired entries until ctx is canceled.
func (c *TTLCache[A]) sweepLoop(ctx context.Context) {
	defer c.wg.Done()

	ticker := time.NewTicker(c.sweepEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			c.evictExpired(now)
		}
	}
}

// evictExpired removes every entry older than the TTL. Entries are
// insertion-ordered, so the back-to-front scan stops at the first live
// one. The TTL is read here, not at offer time, so SetTTL affects
// entries already cached.
func (c *TTLCache[A]) evictExpired(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for back := c.order.Back(); back != nil; back = c.order.Back() {
		if now.Sub(back.Value.(*entry[A]).createdAt) <= c.ttl {
			return
		}
		c.removeElement(back)
	}
}
