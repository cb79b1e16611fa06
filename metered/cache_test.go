// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metered

import (
	"context"
	"net/netip"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/addrcache"
)

func TestMeteredCache(t *testing.T) {
	require := require.New(t)

	loopback := netip.MustParseAddr("127.0.0.1")
	lan := netip.MustParseAddr("192.168.0.1")

	registry := prometheus.NewRegistry()
	cache, err := New("test", registry, addrcache.New[netip.Addr]())
	require.NoError(err)
	defer cache.Close()

	require.True(cache.Offer(loopback))
	require.True(cache.Offer(lan))
	require.Equal(float64(2), testutil.ToFloat64(cache.metrics.offerCount))
	require.Equal(float64(2), testutil.ToFloat64(cache.metrics.len))

	require.True(cache.Contains(loopback))
	require.False(cache.Contains(netip.MustParseAddr("10.0.0.1")))
	require.Equal(float64(1), testutil.ToFloat64(cache.metrics.containsCount.With(hitLabels)))
	require.Equal(float64(1), testutil.ToFloat64(cache.metrics.containsCount.With(missLabels)))

	addr, ok := cache.Pop()
	require.True(ok)
	require.Equal(lan, addr)
	require.Equal(float64(1), testutil.ToFloat64(cache.metrics.popCount))
	require.Equal(float64(1), testutil.ToFloat64(cache.metrics.len))

	addr, err = cache.Take(context.Background())
	require.NoError(err)
	require.Equal(loopback, addr)
	require.Equal(float64(1), testutil.ToFloat64(cache.metrics.takeCount))
	require.Equal(float64(0), testutil.ToFloat64(cache.metrics.len))

	require.False(cache.Remove(loopback))
	require.Equal(float64(0), testutil.ToFloat64(cache.metrics.removeCount))

	cache.Close()
	require.Equal(float64(0), testutil.ToFloat64(cache.metrics.len))
}

func TestMeteredCacheTakeErrorNotRecorded(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()
	cache, err := New("take_err", registry, addrcache.New[netip.Addr]())
	require.NoError(err)
	defer cache.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = cache.Take(ctx)
	require.ErrorIs(err, context.Canceled)

	// Failed takes contribute to neither series, so
	// take_wait_time/take_count stays the average successful wait.
	require.Equal(float64(0), testutil.ToFloat64(cache.metrics.takeCount))
	require.Equal(float64(0), testutil.ToFloat64(cache.metrics.takeWaitTime))

	const delay = 50 * time.Millisecond
	timer := time.AfterFunc(delay, func() {
		cache.Offer(netip.MustParseAddr("127.0.0.1"))
	})
	defer timer.Stop()

	_, err = cache.Take(context.Background())
	require.NoError(err)
	require.Equal(float64(1), testutil.ToFloat64(cache.metrics.takeCount))
	require.GreaterOrEqual(testutil.ToFloat64(cache.metrics.takeWaitTime), float64(delay))
}

func TestMeteredCacheDuplicateNamespace(t *testing.T) {
	require := require.New(t)

	registry := prometheus.NewRegistry()

	first, err := New("dup", registry, addrcache.New[netip.Addr]())
	require.NoError(err)
	defer first.Close()

	second, err := New("dup", registry, addrcache.New[netip.Addr]())
	require.Error(err)
	second.Close()
}
