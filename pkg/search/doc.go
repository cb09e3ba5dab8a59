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

// Package search locates files under an ordered set of base roots.
//
// Every lookup expands the cartesian product of roots and relative
// sub-paths, roots outer and relative paths inner, and globs the file
// pattern inside each resulting directory. The first match in that
// enumeration wins:
//
//	e := search.NewEngine([]string{"/usr/local/cuda", "/usr"})
//	path, err := e.FindFile(defaults.HeaderPaths, "cupti.h")
//
// Versioned lookups additionally ask a VersionFunc for each candidate and
// keep the first one whose version is prefix-compatible with the
// requirement:
//
//	a, err := e.FindVersioned(defaults.HeaderPaths, []string{"cuda.h"}, "11", x.CUDAVersion)
//
// Within one directory candidates are visited in filepath.Glob order, which
// is lexical.
//
// When nothing matches, a NOT_FOUND StructuredError lists every root,
// relative path and file pattern that was searched.
package search
