// Copyright 2021 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package merkle

import (
	m "github.com/ethersphere/mtree/pkg/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

type metrics struct {
	BuildCount         prometheus.Counter
	LeafHashCount      prometheus.Counter
	NodeHashCount      prometheus.Counter
	BuildDuration      prometheus.Histogram
	CompareCount       prometheus.Counter
	VisitedCount       prometheus.Counter
	DivergentCount     prometheus.Counter
	ShapeMismatchCount prometheus.Counter
}

var defaultMetrics = newMetrics()

func newMetrics() metrics {
	subsystem := "merkle"

	return metrics{
		BuildCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "build_count",
			Help:      "Number of built trees.",
		}),
		LeafHashCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "leaf_hash_count",
			Help:      "Number of hashed leaf identifiers.",
		}),
		NodeHashCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "node_hash_count",
			Help:      "Number of hashed internal nodes.",
		}),
		BuildDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "build_duration_seconds",
			Help:      "Histogram of tree build durations.",
			Buckets:   []float64{0.0001, 0.001, 0.01, 0.1, 1, 10},
		}),
		CompareCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "compare_count",
			Help:      "Number of tree comparisons.",
		}),
		VisitedCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "compare_visited_count",
			Help:      "Number of node pairs visited by comparisons.",
		}),
		DivergentCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "compare_divergent_count",
			Help:      "Number of divergent node pairs reported by comparisons.",
		}),
		ShapeMismatchCount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: m.Namespace,
			Subsystem: subsystem,
			Name:      "compare_shape_mismatch_count",
			Help:      "Number of comparisons rejected because of differing tree shapes.",
		}),
	}
}

// Metrics returns the collectors of the package wide build and compare metrics.
func Metrics() []prometheus.Collector {
	return m.PrometheusCollectorsFromFields(defaultMetrics)
}
