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

// Package toolkittest builds synthetic toolkit installations for tests.
//
// A Toolkit writes headers declaring the version macros the resolver reads
// and empty shared libraries named the way the installers name them. No
// binary is executable; process output is scripted through Runner.
//
//	tk := toolkittest.New(t, t.TempDir())
//	tk.CUDA("11.4", "11.4.120")
//	tk.Sublibrary("cublas_api.h", "CUBLAS_VER", "cublas", "11.6.5")
package toolkittest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/NVIDIA/findcuda/pkg/version"
)

// Toolkit is a synthetic installation rooted at Root.
type Toolkit struct {
	t    *testing.T
	Root string
}

// New returns a Toolkit rooted at root.
func New(t *testing.T, root string) *Toolkit {
	t.Helper()
	require(t, os.MkdirAll(root, 0o755))
	return &Toolkit{t: t, Root: root}
}

// Write creates rel under the root with the given content and returns the
// absolute path.
func (tk *Toolkit) Write(rel, content string) string {
	tk.t.Helper()
	path := filepath.Join(tk.Root, rel)
	require(tk.t, os.MkdirAll(filepath.Dir(path), 0o755))
	require(tk.t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Header writes include/<name> declaring the given macros in order.
func (tk *Toolkit) Header(name string, macros ...Macro) string {
	tk.t.Helper()
	var b strings.Builder
	b.WriteString("#pragma once\n")
	for _, m := range macros {
		fmt.Fprintf(&b, "#define %s %d\n", m.Name, m.Value)
	}
	return tk.Write(filepath.Join("include", name), b.String())
}

// Library writes lib64/lib<stem>.so.<ver>.
func (tk *Toolkit) Library(stem, ver string) string {
	tk.t.Helper()
	return tk.Write(filepath.Join("lib64", "lib"+stem+".so."+ver), "")
}

// CUDA writes the runtime header, cudart, nvcc, libdevice and CUPTI for a
// "major.minor" runtime.
func (tk *Toolkit) CUDA(runtime, compiler string) {
	tk.t.Helper()
	v := version.MustParseVersion(runtime)
	minor := 0
	if len(v.Parts) > 1 {
		minor = v.Parts[1]
	}
	tk.Header("cuda.h", Macro{"CUDA_VERSION", v.Major()*1000 + minor*10})
	tk.Library("cudart", runtime+".100")
	tk.Write("bin/nvcc", "")
	tk.Write("nvvm/libdevice/libdevice.10.bc", "")
	tk.Write("extras/CUPTI/include/cupti.h", "")
	tk.Write(filepath.Join("extras/CUPTI/lib64", "libcupti.so."+runtime), "")
}

// Sublibrary writes header declaring <prefix>_MAJOR/_MINOR/_PATCH for ver
// and lib<stem>.so.<ver>.
func (tk *Toolkit) Sublibrary(header, prefix, stem, ver string) {
	tk.t.Helper()
	v := version.MustParseVersion(ver)
	names := []string{"MAJOR", "MINOR", "PATCH"}
	macros := make([]Macro, 0, len(names))
	for i, n := range names {
		if i < len(v.Parts) {
			macros = append(macros, Macro{prefix + "_" + n, v.Parts[i]})
		}
	}
	tk.Header(header, macros...)
	tk.Library(stem, ver)
}

// Macro is a #define with an integer value.
type Macro struct {
	Name  string
	Value int
}

// NVCCBanner returns "nvcc --version" output for a compiler release.
func NVCCBanner(release string) string {
	v := version.MustParseVersion(release)
	return "nvcc: NVIDIA (R) Cuda compiler driver\n" +
		"Copyright (c) 2005-2021 NVIDIA Corporation\n" +
		"Cuda compilation tools, release " + strconv.Itoa(v.Major()) + "." + strconv.Itoa(v.Parts[1]) +
		", V" + release + "\n"
}

// Runner scripts external tool output.
type Runner struct {
	// NVCC maps an nvcc path to its release. Unknown paths fail.
	NVCC map[string]string

	// Driver is the reported driver version; empty fails the query.
	Driver string

	NVCCCalls   []string
	DriverCalls int
}

// NVCCOutput returns the scripted banner for path.
func (r *Runner) NVCCOutput(_ context.Context, path string) ([]byte, error) {
	r.NVCCCalls = append(r.NVCCCalls, path)
	release, ok := r.NVCC[path]
	if !ok {
		return nil, fmt.Errorf("unexpected nvcc invocation: %s", path)
	}
	return []byte(NVCCBanner(release)), nil
}

// DriverOutput returns the scripted driver version.
func (r *Runner) DriverOutput(context.Context) ([]byte, error) {
	r.DriverCalls++
	if r.Driver == "" {
		return nil, fmt.Errorf("nvidia-smi: no devices found")
	}
	return []byte(r.Driver + "\n"), nil
}

func require(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatal(err)
	}
}
