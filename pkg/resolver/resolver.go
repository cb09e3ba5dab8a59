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
	"context"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/extractor"
	"github.com/NVIDIA/findcuda/pkg/search"
)

// Request selects what a run resolves.
type Request struct {
	// Components to resolve. Requesting only the runtime resolves it with
	// every dependent library; naming dependent libraries resolves the
	// runtime and just those.
	Components []component.Name

	// Versions constrains components that read their own version, keyed by
	// component. The constraint is a version prefix, e.g. "8" or "11.4".
	Versions map[component.Name]string

	// Arch is the host machine name, e.g. "x86_64" or "aarch64".
	Arch string
}

// Result is the merged attribute map of a run.
type Result map[string]string

// Keys returns the attribute names, sorted.
func (r Result) Keys() []string {
	keys := make([]string, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithObserver sets the observer notified of transitions and probes.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		if o != nil {
			r.observer = o
		}
	}
}

// WithExtractor overrides the version extractor.
func WithExtractor(x *extractor.Extractor) Option {
	return func(r *Resolver) {
		if x != nil {
			r.extractor = x
		}
	}
}

// Resolver resolves requests against a fixed list of search roots.
type Resolver struct {
	roots     []string
	runner    component.Runner
	extractor *extractor.Extractor
	observer  Observer
}

// New returns a Resolver searching roots in order.
func New(roots []string, runner component.Runner, opts ...Option) *Resolver {
	r := &Resolver{
		roots:     append([]string(nil), roots...),
		runner:    runner,
		extractor: extractor.New(),
		observer:  NopObserver{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// run carries the state of one resolution.
type run struct {
	r      *Resolver
	env    component.Env
	state  State
	result Result
}

func (x *run) transition(to State, n component.Name, err error) {
	x.r.observer.OnTransition(Transition{From: x.state, To: to, Component: n, Err: err})
	x.state = to
}

func (x *run) fail(n component.Name, err error) (Result, error) {
	x.transition(Failed, n, err)
	return nil, err
}

// Resolve runs the request to completion.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Result, error) {
	start := time.Now()
	x := &run{
		r: r,
		env: component.Env{
			Engine:    search.NewEngine(r.roots, search.WithObserver(r.observer)),
			Extractor: r.extractor,
			Runner:    r.runner,
		},
		state:  Idle,
		result: Result{},
	}
	res, err := x.resolve(ctx, req)
	r.observer.OnComplete(time.Since(start), err)
	return res, err
}

func (x *run) resolve(ctx context.Context, req Request) (Result, error) {
	if len(req.Components) == 0 {
		return x.fail("", errors.New(errors.ErrCodeInvalidRequest, "no components requested"))
	}
	for _, n := range req.Components {
		if !n.IsValid() {
			return x.fail(n, errors.NewWithContext(errors.ErrCodeUnsupportedComponent,
				"component "+string(n)+" is not supported", map[string]any{"component": string(n)}))
		}
		if def, _ := component.Lookup(n); !def.EnabledOn(req.Arch) {
			return x.fail(n, errors.NewWithContext(errors.ErrCodeUnsupportedComponent,
				"component "+string(n)+" is not supported on "+req.Arch,
				map[string]any{"component": string(n), "arch": req.Arch}))
		}
	}

	dependents, standalone, needCore := plan(req)

	coreVersion := ""
	if needCore {
		core, err := component.ResolveCore(ctx, x.env, req.Versions[component.CUDA])
		if err != nil {
			return x.fail(component.CUDA, err)
		}
		fromBinary, fromNVVM := core.ToolkitRoots()
		if fromBinary != fromNVVM {
			err := errors.NewWithContext(errors.ErrCodeInconsistentPath,
				"inconsistent CUDA toolkit path: "+fromBinary+" vs "+fromNVVM,
				map[string]any{"binaryRoot": fromBinary, "nvvmRoot": fromNVVM})
			x.transition(Inconsistent, component.CUDA, err)
			return x.fail(component.CUDA, err)
		}
		core.Config[component.Key(component.CUDA, component.AttrToolkitPath)] = fromBinary
		x.merge(component.CUDA, core.Config)
		coreVersion = core.Version
		x.transition(CoreResolved, component.CUDA, nil)
	}

	for _, n := range append(dependents, standalone...) {
		def, _ := component.Lookup(n)
		res, err := def.Resolve(ctx, x.env, coreVersion, req.Versions[n])
		if err != nil {
			return x.fail(n, err)
		}
		x.merge(n, res.Config)
	}
	x.transition(SublibrariesResolved, "", nil)

	canonical, err := canonicalize(x.result)
	if err != nil {
		return x.fail("", err)
	}
	x.transition(Consistent, "", nil)
	x.transition(Done, "", nil)
	return canonical, nil
}

func (x *run) merge(n component.Name, cfg component.Config) {
	for k, v := range cfg {
		x.result[k] = v
	}
	x.r.observer.OnComponent(n, cfg)
}

// plan orders the requested components. Dependent libraries keep the fixed
// resolution order and are dropped when disabled on arch; standalone
// components keep request order.
func plan(req Request) (dependents, standalone []component.Name, needCore bool) {
	requested := make(map[component.Name]bool, len(req.Components))
	explicit := false
	for _, n := range req.Components {
		requested[n] = true
		def, _ := component.Lookup(n)
		if def.RequiresCore() {
			explicit = true
		}
	}

	needCore = requested[component.CUDA] || explicit
	for _, n := range component.Dependents() {
		def, _ := component.Lookup(n)
		if !def.EnabledOn(req.Arch) {
			continue
		}
		if requested[n] || (requested[component.CUDA] && !explicit) {
			dependents = append(dependents, n)
		}
	}
	for _, n := range req.Components {
		if def, _ := component.Lookup(n); def.Kind == component.KindStandalone {
			standalone = append(standalone, n)
		}
	}
	return dependents, standalone, needCore
}

// canonicalize resolves symlinks in every *_dir and *_path value.
func canonicalize(in Result) (Result, error) {
	out := make(Result, len(in))
	for k, v := range in {
		if !strings.HasSuffix(k, "_dir") && !strings.HasSuffix(k, "_path") {
			out[k] = v
			continue
		}
		resolved, err := filepath.EvalSymlinks(v)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal,
				"failed to canonicalize "+k, err, map[string]any{"path": v})
		}
		abs, err := filepath.Abs(resolved)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInternal,
				"failed to canonicalize "+k, err, map[string]any{"path": v})
		}
		out[k] = abs
	}
	return out, nil
}
