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
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/defaults"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/search"
	"github.com/NVIDIA/findcuda/pkg/toolkittest"
)

type recorder struct {
	NopObserver
	states     []State
	components []component.Name
	probes     int
	completed  bool
	err        error
}

func (r *recorder) OnProbe(search.Probe) { r.probes++ }

func (r *recorder) OnTransition(t Transition) { r.states = append(r.states, t.To) }

func (r *recorder) OnComponent(n component.Name, _ component.Config) {
	r.components = append(r.components, n)
}

func (r *recorder) OnComplete(_ time.Duration, err error) {
	r.completed = true
	r.err = err
}

// bundle writes an 11.4 runtime and every dependent library.
func bundle(tk *toolkittest.Toolkit) {
	tk.CUDA("11.4", "11.4.120")
	tk.Sublibrary("cublas_api.h", "CUBLAS_VER", "cublas", "11.4.2")
	tk.Sublibrary("cusolver_common.h", "CUSOLVER_VER", "cusolver", "11.2.0")
	tk.Sublibrary("curand.h", "CURAND_VER", "curand", "10.2.5")
	tk.Sublibrary("cufft.h", "CUFFT_VER", "cufft", "10.5.1")
	tk.Sublibrary("cusparse.h", "CUSPARSE_VER", "cusparse", "11.6.0")
	tk.Sublibrary("nvjpeg.h", "NVJPEG_VER", "nvjpeg", "11.5.2")
	tk.Sublibrary("npp.h", "NPP_VER", "nppc", "11.4.0")
	tk.Header("nvml.h", toolkittest.Macro{Name: "NVML_API_VERSION", Value: 11})
	tk.Library("nvidia-ml", "470.57.02")
}

func realPath(t *testing.T, path string) string {
	t.Helper()
	p, err := filepath.EvalSymlinks(path)
	require.NoError(t, err)
	return p
}

func TestResolveEndToEnd(t *testing.T) {
	base := t.TempDir()
	tk := toolkittest.New(t, filepath.Join(base, "cuda-11.4"))
	bundle(tk)

	// Search through a symlink; results must name the real directories.
	link := filepath.Join(base, "cuda")
	require.NoError(t, os.Symlink(tk.Root, link))

	r := &toolkittest.Runner{NVCC: map[string]string{filepath.Join(link, "bin", "nvcc"): "11.4.120"}}
	obs := &recorder{}
	res, err := New([]string{link}, r, WithObserver(obs)).Resolve(context.Background(), Request{
		Components: []component.Name{component.CUDA, component.CuBLAS},
		Arch:       "x86_64",
	})
	require.NoError(t, err)

	root := realPath(t, tk.Root)
	assert.Equal(t, Result{
		"cuda_version":       "11.4",
		"cuda_include_dir":   filepath.Join(root, "include"),
		"cuda_library_dir":   filepath.Join(root, "lib64"),
		"cuda_binary_dir":    filepath.Join(root, "bin"),
		"cuda_toolkit_path":  root,
		"nvvm_library_dir":   filepath.Join(root, "nvvm", "libdevice"),
		"cupti_include_dir":  filepath.Join(root, "extras", "CUPTI", "include"),
		"cupti_library_dir":  filepath.Join(root, "extras", "CUPTI", "lib64"),
		"cublas_version":     "11",
		"cublas_include_dir": filepath.Join(root, "include"),
		"cublas_library_dir": filepath.Join(root, "lib64"),
	}, res)

	assert.Equal(t, []State{CoreResolved, SublibrariesResolved, Consistent, Done}, obs.states)
	assert.Equal(t, []component.Name{component.CUDA, component.CuBLAS}, obs.components)
	assert.Positive(t, obs.probes)
	assert.True(t, obs.completed)
	assert.NoError(t, obs.err)
	assert.Zero(t, r.DriverCalls)
}

func TestResolveBundle(t *testing.T) {
	tests := []struct {
		arch    string
		want    []component.Name
		absent  []component.Name
		drivers int
	}{
		{
			arch: "x86_64",
			want: []component.Name{component.CUDA, component.CuBLAS, component.CuSOLVER, component.CuRAND,
				component.CuFFT, component.CuSPARSE, component.NVML, component.NvJPEG, component.NPP},
			drivers: 1,
		},
		{
			arch: "aarch64",
			want: []component.Name{component.CUDA, component.CuBLAS, component.CuSOLVER, component.CuRAND,
				component.CuFFT, component.CuSPARSE, component.NPP},
			absent: []component.Name{component.NVML, component.NvJPEG},
		},
	}
	for _, tt := range tests {
		t.Run(tt.arch, func(t *testing.T) {
			tk := toolkittest.New(t, t.TempDir())
			bundle(tk)
			r := &toolkittest.Runner{
				NVCC:   map[string]string{filepath.Join(tk.Root, "bin", "nvcc"): "11.4.120"},
				Driver: "470.57.02",
			}
			obs := &recorder{}
			res, err := New([]string{tk.Root}, r, WithObserver(obs)).Resolve(context.Background(), Request{
				Components: []component.Name{component.CUDA},
				Arch:       tt.arch,
			})
			require.NoError(t, err)

			assert.Equal(t, tt.want, obs.components)
			for _, n := range tt.want {
				assert.Contains(t, res, component.Key(n, component.AttrVersion))
			}
			for _, n := range tt.absent {
				assert.NotContains(t, res, component.Key(n, component.AttrVersion))
			}
			assert.Equal(t, tt.drivers, r.DriverCalls)
			assert.Equal(t, "11", res["cusolver_version"])
			assert.Equal(t, "10", res["curand_version"])
		})
	}
}

func TestResolveStandaloneSkipsRuntime(t *testing.T) {
	tk := toolkittest.New(t, t.TempDir())
	tk.Sublibrary("nccl.h", "NCCL", "nccl", "2.11.4")

	r := &toolkittest.Runner{}
	obs := &recorder{}
	res, err := New([]string{tk.Root}, r, WithObserver(obs)).Resolve(context.Background(), Request{
		Components: []component.Name{component.NCCL},
		Arch:       "x86_64",
	})
	require.NoError(t, err)

	root := realPath(t, tk.Root)
	assert.Equal(t, Result{
		"nccl_version":     "2",
		"nccl_include_dir": filepath.Join(root, "include"),
		"nccl_library_dir": filepath.Join(root, "lib64"),
	}, res)
	assert.Empty(t, r.NVCCCalls)
	assert.Equal(t, []State{SublibrariesResolved, Consistent, Done}, obs.states)
}

func TestResolveVersionConstraint(t *testing.T) {
	tk := toolkittest.New(t, t.TempDir())
	tk.Header("cudnn.h",
		toolkittest.Macro{Name: "CUDNN_MAJOR", Value: 7},
		toolkittest.Macro{Name: "CUDNN_MINOR", Value: 6},
		toolkittest.Macro{Name: "CUDNN_PATCHLEVEL", Value: 5})
	tk.Library("cudnn", "7.6.5")

	req := Request{
		Components: []component.Name{component.CuDNN},
		Versions:   map[component.Name]string{component.CuDNN: "8"},
	}
	_, err := New([]string{tk.Root}, nil).Resolve(context.Background(), req)
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	req.Versions[component.CuDNN] = "7.6"
	res, err := New([]string{tk.Root}, nil).Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "7", res["cudnn_version"])
}

func TestResolveInconsistentToolkitPath(t *testing.T) {
	base := t.TempDir()
	a := toolkittest.New(t, filepath.Join(base, "opt", "toolkit-A"))
	b := toolkittest.New(t, filepath.Join(base, "opt", "toolkit-B"))
	a.CUDA("11.4", "11.4.120")
	// libdevice only exists under B.
	require.NoError(t, os.RemoveAll(filepath.Join(a.Root, "nvvm")))
	b.Write("nvvm/libdevice/libdevice.10.bc", "")

	r := &toolkittest.Runner{NVCC: map[string]string{filepath.Join(a.Root, "bin", "nvcc"): "11.4.120"}}
	obs := &recorder{}
	res, err := New([]string{a.Root, b.Root}, r, WithObserver(obs)).Resolve(context.Background(), Request{
		Components: []component.Name{component.CUDA},
		Arch:       "x86_64",
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInconsistentPath))
	assert.Contains(t, err.Error(), "toolkit-A")
	assert.Contains(t, err.Error(), "toolkit-B")
	assert.Equal(t, []State{Inconsistent, Failed}, obs.states)
	assert.Empty(t, obs.components)
	assert.Equal(t, err, obs.err)
}

func TestResolveMissingLibrary(t *testing.T) {
	first := toolkittest.New(t, t.TempDir())
	second := toolkittest.New(t, t.TempDir())
	first.Header("nccl.h",
		toolkittest.Macro{Name: "NCCL_MAJOR", Value: 2},
		toolkittest.Macro{Name: "NCCL_MINOR", Value: 11},
		toolkittest.Macro{Name: "NCCL_PATCH", Value: 4})

	obs := &recorder{}
	res, err := New([]string{first.Root, second.Root}, nil, WithObserver(obs)).Resolve(context.Background(), Request{
		Components: []component.Name{component.NCCL},
	})
	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.IsCode(err, errors.ErrCodeNotFound))

	msg := err.Error()
	assert.NotContains(t, msg, "\n")
	assert.Contains(t, msg, "libnccl.so.2*")
	assert.Contains(t, msg, first.Root)
	assert.Contains(t, msg, second.Root)
	for _, rel := range defaults.LibraryPaths {
		assert.Contains(t, msg, "'"+rel+"'")
	}
	assert.Equal(t, Failed, obs.states[len(obs.states)-1])
}

func TestResolveRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name string
		req  Request
		code errors.ErrorCode
	}{
		{name: "empty", req: Request{}, code: errors.ErrCodeInvalidRequest},
		{name: "unsupported", req: Request{Components: []component.Name{"opencl"}}, code: errors.ErrCodeUnsupportedComponent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(nil, nil).Resolve(context.Background(), tt.req)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.CodeOf(err))
		})
	}
}

func TestResolveRejectsArchGatedComponent(t *testing.T) {
	tk := toolkittest.New(t, t.TempDir())
	bundle(tk)

	for _, n := range []component.Name{component.NVML, component.NvJPEG} {
		t.Run(string(n), func(t *testing.T) {
			r := &toolkittest.Runner{
				NVCC:   map[string]string{filepath.Join(tk.Root, "bin", "nvcc"): "11.4.120"},
				Driver: "535.104.05",
			}
			obs := &recorder{}
			res, err := New([]string{tk.Root}, r, WithObserver(obs)).Resolve(context.Background(), Request{
				Components: []component.Name{component.CUDA, n},
				Arch:       "aarch64",
			})
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, errors.ErrCodeUnsupportedComponent, errors.CodeOf(err))
			assert.Contains(t, err.Error(), "aarch64")
			assert.Empty(t, r.NVCCCalls)
			assert.Zero(t, r.DriverCalls)
			assert.Equal(t, []State{Failed}, obs.states)
			assert.Zero(t, obs.probes)
		})
	}
}

func TestPlan(t *testing.T) {
	tests := []struct {
		name           string
		req            Request
		wantDependents []component.Name
		wantStandalone []component.Name
		wantCore       bool
	}{
		{
			name:           "explicit sublibraries keep fixed order",
			req:            Request{Components: []component.Name{component.NPP, component.CuBLAS}, Arch: "x86_64"},
			wantDependents: []component.Name{component.CuBLAS, component.NPP},
			wantCore:       true,
		},
		{
			name: "bundle gated on arch",
			req:  Request{Components: []component.Name{component.CUDA}, Arch: "aarch64"},
			wantDependents: []component.Name{component.CuBLAS, component.CuSOLVER, component.CuRAND,
				component.CuFFT, component.CuSPARSE, component.NPP},
			wantCore: true,
		},
		{
			name:           "standalone only",
			req:            Request{Components: []component.Name{component.TensorRT, component.CuDNN}},
			wantStandalone: []component.Name{component.TensorRT, component.CuDNN},
		},
		{
			name:           "mixed",
			req:            Request{Components: []component.Name{component.NCCL, component.CuFFT}, Arch: "x86_64"},
			wantDependents: []component.Name{component.CuFFT},
			wantStandalone: []component.Name{component.NCCL},
			wantCore:       true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dep, sa, core := plan(tt.req)
			assert.Equal(t, tt.wantDependents, dep)
			assert.Equal(t, tt.wantStandalone, sa)
			assert.Equal(t, tt.wantCore, core)
		})
	}
}

func TestResultKeys(t *testing.T) {
	r := Result{"nccl_version": "2", "cuda_version": "11.4", "cublas_version": "11"}
	assert.Equal(t, []string{"cublas_version", "cuda_version", "nccl_version"}, r.Keys())
}

func TestMachineName(t *testing.T) {
	assert.Equal(t, "x86_64", MachineName("amd64"))
	assert.Equal(t, "aarch64", MachineName("arm64"))
	assert.Equal(t, "riscv64", MachineName("riscv64"))
	assert.NotEmpty(t, HostArch())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "CoreResolved", CoreResolved.String())
	assert.Equal(t, "Unknown", State(42).String())
	assert.True(t, strings.HasPrefix(Failed.String(), "Fail"))
}
