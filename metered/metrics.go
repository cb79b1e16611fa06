// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metered

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

const resultLabel = "result"

var (
	resultLabels = []string{resultLabel}
	hitLabels    = prometheus.Labels{resultLabel: "hit"}
	missLabels   = prometheus.Labels{resultLabel: "miss"}
)

type cacheMetrics struct {
	offerCount prometheus.Counter
	offerTime  prometheus.Counter

	containsCount *prometheus.CounterVec
	containsTime  *prometheus.CounterVec

	takeCount    prometheus.Counter
	takeWaitTime prometheus.Counter

	popCount    prometheus.Counter
	removeCount prometheus.Counter

	len prometheus.Gauge
}

func newMetrics(namespace string, reg prometheus.Registerer) (*cacheMetrics, error) {
	m := &cacheMetrics{
		offerCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_count",
			Help:      "number of addresses offered to the cache",
		}),
		offerTime: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "offer_time",
			Help:      "cumulative nanoseconds spent in offers",
		}),
		containsCount: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contains_count",
			Help:      "number of containment checks",
		}, resultLabels),
		containsTime: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "contains_time",
			Help:      "cumulative nanoseconds spent in containment checks",
		}, resultLabels),
		takeCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "take_count",
			Help:      "number of takes that returned an address",
		}),
		takeWaitTime: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "take_wait_time",
			Help:      "cumulative nanoseconds callers spent blocked in take",
		}),
		popCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pop_count",
			Help:      "number of pops that returned an address",
		}),
		removeCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "remove_count",
			Help:      "number of targeted removals that found an address",
		}),
		len: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "len",
			Help:      "number of addresses currently cached",
		}),
	}
	return m, errors.Join(
		reg.Register(m.offerCount),
		reg.Register(m.offerTime),
		reg.Register(m.containsCount),
		reg.Register(m.containsTime),
		reg.Register(m.takeCount),
		reg.Register(m.takeWaitTime),
		reg.Register(m.popCount),
		reg.Register(m.removeCount),
		reg.Register(m.len),
	)
}
