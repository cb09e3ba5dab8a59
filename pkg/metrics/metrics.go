// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package metrics records resolution runs as Prometheus metrics.
//
// A Recorder owns a private registry so that a run exports only its own
// series. It implements resolver.Observer; after the run, WriteTextfile
// writes the registry in the text exposition format for the node
// exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/resolver"
	"github.com/NVIDIA/findcuda/pkg/search"
)

// Probe outcome labels.
const (
	ProbeMatched  = "matched"
	ProbeRejected = "rejected"
)

// Recorder collects the metrics of resolution runs.
type Recorder struct {
	registry *prometheus.Registry

	probes     *prometheus.CounterVec
	components *prometheus.CounterVec
	failures   *prometheus.CounterVec
	runs       *prometheus.CounterVec
	duration   prometheus.Histogram
}

var _ resolver.Observer = (*Recorder)(nil)

// New returns a Recorder with its own registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)
	return &Recorder{
		registry: reg,
		probes: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findcuda_search_probes_total",
				Help: "Candidate files inspected during searches",
			},
			[]string{"kind"}, // matched or rejected
		),
		components: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findcuda_components_resolved_total",
				Help: "Components resolved",
			},
			[]string{"component"},
		),
		failures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findcuda_resolution_failures_total",
				Help: "Failed resolutions by error code",
			},
			[]string{"code"},
		),
		runs: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "findcuda_resolution_runs_total",
				Help: "Resolution runs",
			},
			[]string{"status"}, // success or error
		),
		duration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "findcuda_resolution_duration_seconds",
				Help:    "Time taken to resolve a request",
				Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10},
			},
		),
	}
}

// Registry returns the recorder's registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// OnProbe counts a candidate as matched or rejected.
func (r *Recorder) OnProbe(p search.Probe) {
	kind := ProbeRejected
	if p.Matched {
		kind = ProbeMatched
	}
	r.probes.WithLabelValues(kind).Inc()
}

// OnTransition records nothing; state changes are not exported.
func (r *Recorder) OnTransition(resolver.Transition) {}

// OnComponent counts a resolved component.
func (r *Recorder) OnComponent(n component.Name, _ component.Config) {
	r.components.WithLabelValues(string(n)).Inc()
}

// OnComplete observes the run duration and counts the run by status. A
// failed run is also counted by its error code.
func (r *Recorder) OnComplete(elapsed time.Duration, err error) {
	r.duration.Observe(elapsed.Seconds())
	if err != nil {
		r.failures.WithLabelValues(string(errors.CodeOf(err))).Inc()
		r.runs.WithLabelValues("error").Inc()
		return
	}
	r.runs.WithLabelValues("success").Inc()
}

// WriteTextfile writes all metrics to path in the text exposition format.
// The file is replaced atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to write metrics", err, map[string]any{"path": path})
	}
	return nil
}
