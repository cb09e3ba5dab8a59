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

// Package roots determines the ordered list of directories a run searches.
//
// Determination happens once, at the process boundary, from plain values:
// the explicit toolkit path, the search path override list and a PATH
// lookup function. The resolver only ever sees the resulting list.
//
// The toolkit path is the explicit path when set, otherwise two levels
// above ptxas found on PATH, otherwise /usr/local/cuda. With no override
// list the candidates are /usr/local/cuda and /usr, with the toolkit path
// prepended when it differs from the first. An override list must contain
// the toolkit path. Entries may be globs. Candidates that do not exist are
// dropped.
package roots

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/NVIDIA/findcuda/pkg/defaults"
	"github.com/NVIDIA/findcuda/pkg/errors"
)

// Options are the boundary inputs of root determination.
type Options struct {
	// CUDAPath is the explicit toolkit path, e.g. from CUDA_PATH.
	CUDAPath string

	// SearchPaths overrides the default candidates.
	SearchPaths []string

	// LookPath finds an executable on PATH. Nil skips the lookup.
	LookPath func(file string) (string, error)

	// Exists reports whether a candidate directory exists. Defaults to os.Stat.
	Exists func(path string) bool
}

// Roots is the outcome of determination.
type Roots struct {
	// CUDAPath is the resolved toolkit path.
	CUDAPath string

	// Paths are the existing search roots, in order.
	Paths []string
}

// Determine computes the search roots for opts.
func Determine(opts Options) (Roots, error) {
	exists := opts.Exists
	if exists == nil {
		exists = dirExists
	}

	cudaPath, located := locateToolkit(opts.CUDAPath, opts.LookPath)

	var candidates []string
	overrides := SplitList(strings.Join(opts.SearchPaths, ","))
	if len(overrides) > 0 {
		// The default toolkit path is only a fallback and need not be listed.
		if located && !slices.Contains(overrides, cudaPath) {
			return Roots{}, errors.NewWithContext(errors.ErrCodeInconsistentPath,
				"inconsistent CUDA toolkit path: "+cudaPath+" not in candidates ["+strings.Join(overrides, ", ")+"]",
				map[string]any{"cudaPath": cudaPath, "candidates": overrides})
		}
		candidates = overrides
	} else {
		candidates = defaults.DefaultSearchRoots()
		if candidates[0] != cudaPath {
			candidates = append([]string{cudaPath}, candidates...)
		}
	}

	expanded, err := expand(candidates)
	if err != nil {
		return Roots{}, err
	}

	paths := make([]string, 0, len(expanded))
	for _, p := range expanded {
		if exists(p) && !slices.Contains(paths, p) {
			paths = append(paths, p)
		}
	}
	return Roots{CUDAPath: cudaPath, Paths: paths}, nil
}

// ToolkitPath returns explicit when set, otherwise the directory two
// levels above ptxas on PATH, otherwise the default toolkit path.
func ToolkitPath(explicit string, lookPath func(string) (string, error)) string {
	p, _ := locateToolkit(explicit, lookPath)
	return p
}

// locateToolkit reports whether the path came from explicit or ptxas rather
// than the built-in default.
func locateToolkit(explicit string, lookPath func(string) (string, error)) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if lookPath != nil {
		if p, err := lookPath(defaults.ToolkitBinaryProbe); err == nil && p != "" {
			return filepath.Clean(filepath.Join(p, "..", "..")), true
		}
	}
	return defaults.ToolkitPath, false
}

// SplitList splits a comma-separated list, dropping blank entries.
func SplitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// expand replaces glob entries by their sorted matches. Plain entries are
// kept as is.
func expand(candidates []string) ([]string, error) {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if !strings.ContainsAny(c, "*?[") {
			out = append(out, c)
			continue
		}
		matches, err := filepath.Glob(c)
		if err != nil {
			return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"invalid search path pattern", err, map[string]any{"pattern": c})
		}
		out = append(out, matches...)
	}
	return out, nil
}

func dirExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
