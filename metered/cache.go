// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package metered provides a Prometheus-instrumented address cache
// wrapper.
package metered

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/addrcache"
)

var _ addrcache.Cache[struct{}] = (*Cache[struct{}])(nil)

// Cache wraps an addrcache.Cache with metrics.
type Cache[A comparable] struct {
	addrcache.Cache[A]
	metrics *cacheMetrics
}

// New creates a new metered cache wrapper.
func New[A comparable](
	namespace string,
	registry prometheus.Registerer,
	c addrcache.Cache[A],
) (*Cache[A], error) {
	metrics, err := newMetrics(namespace, registry)
	return &Cache[A]{
		Cache:   c,
		metrics: metrics,
	}, err
}

func (c *Cache[A]) Offer(addr A) bool {
	start := time.Now()
	ok := c.Cache.Offer(addr)
	offerDuration := time.Since(start)

	c.metrics.offerCount.Inc()
	c.metrics.offerTime.Add(float64(offerDuration))
	c.metrics.len.Set(float64(c.Cache.Len()))
	return ok
}

func (c *Cache[A]) Contains(addr A) bool {
	start := time.Now()
	has := c.Cache.Contains(addr)
	containsDuration := time.Since(start)

	if has {
		c.metrics.containsCount.With(hitLabels).Inc()
		c.metrics.containsTime.With(hitLabels).Add(float64(containsDuration))
	} else {
		c.metrics.containsCount.With(missLabels).Inc()
		c.metrics.containsTime.With(missLabels).Add(float64(containsDuration))
	}
	return has
}

func (c *Cache[A]) Remove(addr A) bool {
	ok := c.Cache.Remove(addr)
	if ok {
		c.metrics.removeCount.Inc()
	}
	c.metrics.len.Set(float64(c.Cache.Len()))
	return ok
}

func (c *Cache[A]) Pop() (A, bool) {
	addr, ok := c.Cache.Pop()
	if ok {
		c.metrics.popCount.Inc()
	}
	c.metrics.len.Set(float64(c.Cache.Len()))
	return addr, ok
}

func (c *Cache[A]) Take(ctx context.Context) (A, error) {
	start := time.Now()
	addr, err := c.Cache.Take(ctx)
	waitDuration := time.Since(start)

	if err != nil {
		var zero A
		return zero, err
	}
	// Recorded only on success so take_wait_time/take_count stays the
	// average wait of takes that returned an address.
	c.metrics.takeCount.Inc()
	c.metrics.takeWaitTime.Add(float64(waitDuration))
	c.metrics.len.Set(float64(c.Cache.Len()))
	return addr, nil
}

func (c *Cache[_]) Close() {
	c.Cache.Close()
	c.metrics.len.Set(float64(c.Cache.Len()))
}
