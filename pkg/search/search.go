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

package search

import (
	"path/filepath"
	"strings"

	"github.com/NVIDIA/findcuda/pkg/defaults"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/version"
)

// VersionFunc returns the version declared by a candidate file. An empty
// version with a nil error marks the candidate as unversioned, which never
// satisfies a versioned lookup.
type VersionFunc func(path string) (string, error)

// Artifact is a discovered file and, for versioned lookups, its version.
type Artifact struct {
	Path    string
	Version string
}

// Dir returns the directory containing the artifact.
func (a Artifact) Dir() string {
	return filepath.Dir(a.Path)
}

// Probe describes one candidate inspected by the engine.
type Probe struct {
	Pattern  string
	Path     string
	Version  string
	Required string
	Matched  bool
}

// Observer is notified of every candidate the engine inspects.
type Observer interface {
	OnProbe(Probe)
}

type nopObserver struct{}

func (nopObserver) OnProbe(Probe) {}

// Option configures an Engine.
type Option func(*Engine)

// WithObserver sets the observer notified of each probe.
func WithObserver(o Observer) Option {
	return func(e *Engine) {
		if o != nil {
			e.observer = o
		}
	}
}

// Engine searches a fixed, ordered list of base roots.
type Engine struct {
	roots    []string
	observer Observer
}

// NewEngine returns an engine over the given roots. The slice is copied.
func NewEngine(roots []string, opts ...Option) *Engine {
	e := &Engine{
		roots:    append([]string(nil), roots...),
		observer: nopObserver{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Roots returns a copy of the engine's base roots.
func (e *Engine) Roots() []string {
	return append([]string(nil), e.roots...)
}

// Cartesian returns every root joined with every relative path, roots outer.
func Cartesian(roots, rels []string) []string {
	out := make([]string, 0, len(roots)*len(rels))
	for _, root := range roots {
		for _, rel := range rels {
			out = append(out, filepath.Join(root, rel))
		}
	}
	return out
}

// dirs returns the glob prefixes for rels. Roots are literal paths, so their
// metacharacters are escaped; rels may carry wildcards.
func (e *Engine) dirs(rels []string) []string {
	escaped := make([]string, len(e.roots))
	for i, root := range e.roots {
		escaped[i] = EscapeGlob(root)
	}
	return Cartesian(escaped, rels)
}

// EscapeGlob quotes the filepath.Match metacharacters in path.
func EscapeGlob(path string) string {
	if !strings.ContainsAny(path, `*?[\`) {
		return path
	}
	var b strings.Builder
	for _, r := range path {
		switch r {
		case '*', '?', '[', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}

// FindFile returns the first path matching any of the patterns, without a
// version check.
func (e *Engine) FindFile(rels []string, patterns ...string) (string, error) {
	for _, dir := range e.dirs(rels) {
		for _, pattern := range patterns {
			matches, err := glob(dir, pattern)
			if err != nil {
				return "", err
			}
			if len(matches) > 0 {
				e.observer.OnProbe(Probe{Pattern: pattern, Path: matches[0], Matched: true})
				return matches[0], nil
			}
		}
	}
	return "", NotFound(e.roots, rels, strings.Join(patterns, ", "))
}

// FindVersioned returns the first candidate whose version satisfies
// required. An empty requirement accepts the first candidate that declares
// any version.
func (e *Engine) FindVersioned(rels, patterns []string, required string, fn VersionFunc) (Artifact, error) {
	for _, dir := range e.dirs(rels) {
		for _, pattern := range patterns {
			matches, err := glob(dir, pattern)
			if err != nil {
				return Artifact{}, err
			}
			for _, path := range matches {
				actual, err := fn(path)
				if err != nil {
					return Artifact{}, errors.WrapWithContext(errors.ErrCodeInternal,
						"failed to determine version", err, map[string]any{"path": path})
				}
				// Unversioned candidates never satisfy a lookup, even with
				// an empty requirement.
				ok := actual != "" && version.Matches(actual, required)
				e.observer.OnProbe(Probe{Pattern: pattern, Path: path, Version: actual, Required: required, Matched: ok})
				if ok {
					return Artifact{Path: path, Version: actual}, nil
				}
			}
		}
	}

	what := strings.Join(patterns, ", ")
	if required != "" {
		what += " matching version " + required
	}
	return Artifact{}, NotFound(e.roots, rels, what)
}

// FindHeader returns the first header declaring a version that satisfies
// required, searching the standard header paths.
func (e *Engine) FindHeader(patterns []string, required string, fn VersionFunc) (Artifact, error) {
	return e.FindVersioned(defaults.HeaderPaths, patterns, required, fn)
}

// FindLibrary returns the first shared library for stem whose soname major
// equals the major of required, searching the standard library paths.
func (e *Engine) FindLibrary(stem, required string) (string, error) {
	return e.FindFile(defaults.LibraryPaths, LibraryPattern(stem, required))
}

// LibraryPattern returns the glob for lib<stem>.so.<major>*. An empty
// requirement yields lib<stem>.so.*.
func LibraryPattern(stem, required string) string {
	return "lib" + stem + ".so." + version.MajorOf(required) + "*"
}

func glob(dir, pattern string) ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, pattern))
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"invalid search pattern", err, map[string]any{"dir": dir, "pattern": pattern})
	}
	return matches, nil
}
