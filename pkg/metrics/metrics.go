// Copyright 2020 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"io"
	"reflect"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

func NewCounter(opts CounterOpts) Counter {
	return prometheus.NewCounter(opts)
}

func NewHistogram(opts HistogramOpts) Histogram {
	return prometheus.NewHistogram(opts)
}

func NewRegistry() MetricsRegistererGatherer {
	return prometheus.NewRegistry()
}

// PrometheusCollectorsFromFields returns all the exported struct fields of i
// that implement the prometheus.Collector interface and are initialised.
func PrometheusCollectorsFromFields(i interface{}) (cs []Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}

// WriteText gathers all metrics from the registry and writes
// them to w in the prometheus text exposition format.
func WriteText(w io.Writer, reg MetricsRegistererGatherer) error {
	mfs, err := reg.Gather()
	if err != nil {
		return err
	}
	enc := expfmt.NewEncoder(w, expfmt.NewFormat(TypeTextPlain))
	for _, mf := range mfs {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}
	return nil
}
