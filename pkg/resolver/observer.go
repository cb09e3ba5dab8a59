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

package resolver

import (
	"log/slog"
	"time"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/search"
)

// State is a step of a resolution run.
type State int

const (
	Idle State = iota
	CoreResolved
	SublibrariesResolved
	Consistent
	Inconsistent
	Done
	Failed
)

var stateNames = [...]string{
	Idle:                 "Idle",
	CoreResolved:         "CoreResolved",
	SublibrariesResolved: "SublibrariesResolved",
	Consistent:           "Consistent",
	Inconsistent:         "Inconsistent",
	Done:                 "Done",
	Failed:               "Failed",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "Unknown"
	}
	return stateNames[s]
}

// Transition is reported each time a run changes state.
type Transition struct {
	From      State
	To        State
	Component component.Name
	Err       error
}

// Observer receives the checkpoints of a run. The resolver never logs or
// records metrics itself.
type Observer interface {
	search.Observer
	OnTransition(Transition)
	OnComponent(component.Name, component.Config)
	OnComplete(elapsed time.Duration, err error)
}

// NopObserver ignores everything. Embed it to implement only some of the
// callbacks.
type NopObserver struct{}

var (
	_ Observer = NopObserver{}
	_ Observer = MultiObserver{}
	_ Observer = (*LogObserver)(nil)
)

// OnProbe does nothing.
func (NopObserver) OnProbe(search.Probe) {}

// OnTransition does nothing.
func (NopObserver) OnTransition(Transition) {}

// OnComponent does nothing.
func (NopObserver) OnComponent(component.Name, component.Config) {}

// OnComplete does nothing.
func (NopObserver) OnComplete(time.Duration, error) {}

// MultiObserver fans checkpoints out to several observers.
type MultiObserver []Observer

// OnProbe forwards p to every observer in order.
func (m MultiObserver) OnProbe(p search.Probe) {
	for _, o := range m {
		o.OnProbe(p)
	}
}

// OnTransition forwards t to every observer in order.
func (m MultiObserver) OnTransition(t Transition) {
	for _, o := range m {
		o.OnTransition(t)
	}
}

// OnComponent forwards the resolved component to every observer in order.
func (m MultiObserver) OnComponent(n component.Name, cfg component.Config) {
	for _, o := range m {
		o.OnComponent(n, cfg)
	}
}

// OnComplete forwards the run outcome to every observer in order.
func (m MultiObserver) OnComplete(elapsed time.Duration, err error) {
	for _, o := range m {
		o.OnComplete(elapsed, err)
	}
}

// LogObserver writes checkpoints to a structured logger at debug level.
type LogObserver struct {
	log *slog.Logger
}

// NewLogObserver returns an observer logging to l, or the default logger
// when l is nil.
func NewLogObserver(l *slog.Logger) *LogObserver {
	if l == nil {
		l = slog.Default()
	}
	return &LogObserver{log: l}
}

// OnProbe logs one inspected candidate.
func (o *LogObserver) OnProbe(p search.Probe) {
	o.log.Debug("probe",
		slog.String("pattern", p.Pattern),
		slog.String("path", p.Path),
		slog.String("version", p.Version),
		slog.String("required", p.Required),
		slog.Bool("matched", p.Matched))
}

// OnTransition logs a state change, with the component and error when set.
func (o *LogObserver) OnTransition(t Transition) {
	attrs := []any{
		slog.String("from", t.From.String()),
		slog.String("to", t.To.String()),
	}
	if t.Component != "" {
		attrs = append(attrs, slog.String("component", string(t.Component)))
	}
	if t.Err != nil {
		attrs = append(attrs, slog.String("error", t.Err.Error()))
	}
	o.log.Debug("state transition", attrs...)
}

// OnComponent logs the name and version of a resolved component.
func (o *LogObserver) OnComponent(n component.Name, cfg component.Config) {
	o.log.Debug("component resolved",
		slog.String("component", string(n)),
		slog.String("version", cfg[component.Key(n, component.AttrVersion)]))
}

// OnComplete logs the elapsed time and the error of a failed run.
func (o *LogObserver) OnComplete(elapsed time.Duration, err error) {
	if err != nil {
		o.log.Debug("resolution failed", slog.Duration("elapsed", elapsed), slog.String("error", err.Error()))
		return
	}
	o.log.Debug("resolution complete", slog.Duration("elapsed", elapsed))
}
