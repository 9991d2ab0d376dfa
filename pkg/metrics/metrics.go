// Copyright 2025 The Sigstore Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics counts what a tree walk did and can dump the result in
// the Prometheus text exposition format.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "treesha1sum"

// Metrics holds the collectors for one process. All methods are safe on a
// nil receiver so callers can leave metrics disabled.
type Metrics struct {
	registry *prometheus.Registry

	entriesTotal     *prometheus.CounterVec
	bytesHashedTotal prometheus.Counter
	errorsTotal      *prometheus.CounterVec
	hashDuration     prometheus.Histogram
	walkDuration     prometheus.Gauge
}

// New registers a fresh set of collectors on a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		entriesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "entries_total",
				Help:      "Number of reported entries by kind",
			},
			[]string{"kind"},
		),
		bytesHashedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "bytes_hashed_total",
				Help:      "Total bytes streamed through hash engines",
			},
		),
		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "errors_total",
				Help:      "Number of per-entry failures by stage",
			},
			[]string{"stage"},
		),
		hashDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "file_hash_duration_seconds",
				Help:      "Time to hash a single regular file",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 10),
			},
		),
		walkDuration: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "walk_duration_seconds",
				Help:      "Wall time of the last completed walk",
			},
		),
	}
}

// Registry exposes the underlying registry, e.g. for promhttp or testutil.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveEntry counts one reported entry of the given kind label.
func (m *Metrics) ObserveEntry(kind string) {
	if m == nil {
		return
	}
	m.entriesTotal.WithLabelValues(kind).Inc()
}

// ObserveHash records a successful file hash.
func (m *Metrics) ObserveHash(bytes int64, d time.Duration) {
	if m == nil {
		return
	}
	m.bytesHashedTotal.Add(float64(bytes))
	m.hashDuration.Observe(d.Seconds())
}

// ObserveError counts a failure at stage ("read", "list", "stat", "depth").
func (m *Metrics) ObserveError(stage string) {
	if m == nil {
		return
	}
	m.errorsTotal.WithLabelValues(stage).Inc()
}

// ObserveWalk records the total duration of a walk.
func (m *Metrics) ObserveWalk(d time.Duration) {
	if m == nil {
		return
	}
	m.walkDuration.Set(d.Seconds())
}

// WriteTextfile atomically writes all metrics to path in the text format
// read by the node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics to %q: %w", path, err)
	}
	return nil
}
