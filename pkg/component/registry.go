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

package component

import "github.com/NVIDIA/findcuda/pkg/defaults"

// Kind selects the resolution procedure of a component.
type Kind int

const (
	// KindCore is the CUDA runtime.
	KindCore Kind = iota
	// KindGated inherits the runtime version below Threshold.
	KindGated
	// KindDriver keys its library by the installed driver version.
	KindDriver
	// KindStandalone does not depend on the runtime.
	KindStandalone
)

// Definition holds the static description of a component.
type Definition struct {
	// Name is the component identifier and the prefix of its attributes.
	Name Name

	// Kind selects the resolution procedure.
	Kind Kind

	// Headers are the file names searched for; the first match that declares
	// a version wins.
	Headers []string

	// Macros are read from the header, in order, and joined with "." to form
	// the component version.
	Macros []string

	// PartialMacros accepts a version made of the leading macros that are
	// present.
	PartialMacros bool

	// Library is the shared library stem (libLibrary.so.*).
	Library string

	// Threshold is the runtime version from which a gated component reads
	// its own header macros.
	Threshold string

	// X86Only restricts the component to x86_64 hosts.
	X86Only bool
}

var registry = map[Name]Definition{
	CUDA: {
		Name:    CUDA,
		Kind:    KindCore,
		Headers: []string{"cuda.h"},
		Macros:  []string{"CUDA_VERSION"},
		Library: "cudart",
	},
	CuBLAS: {
		Name:      CuBLAS,
		Kind:      KindGated,
		Headers:   []string{"cublas_api.h"},
		Macros:    []string{"CUBLAS_VER_MAJOR", "CUBLAS_VER_MINOR", "CUBLAS_VER_PATCH"},
		Library:   "cublas",
		Threshold: "10.1",
	},
	CuSOLVER: {
		Name:      CuSOLVER,
		Kind:      KindGated,
		Headers:   []string{"cusolver_common.h"},
		Macros:    []string{"CUSOLVER_VER_MAJOR", "CUSOLVER_VER_MINOR", "CUSOLVER_VER_PATCH"},
		Library:   "cusolver",
		Threshold: "11.0",
	},
	CuRAND: {
		Name:      CuRAND,
		Kind:      KindGated,
		Headers:   []string{"curand.h"},
		Macros:    []string{"CURAND_VER_MAJOR", "CURAND_VER_MINOR", "CURAND_VER_PATCH"},
		Library:   "curand",
		Threshold: "11.0",
	},
	CuFFT: {
		Name:      CuFFT,
		Kind:      KindGated,
		Headers:   []string{"cufft.h"},
		Macros:    []string{"CUFFT_VER_MAJOR", "CUFFT_VER_MINOR", "CUFFT_VER_PATCH"},
		Library:   "cufft",
		Threshold: "11.0",
	},
	CuSPARSE: {
		Name:      CuSPARSE,
		Kind:      KindGated,
		Headers:   []string{"cusparse.h"},
		Macros:    []string{"CUSPARSE_VER_MAJOR", "CUSPARSE_VER_MINOR", "CUSPARSE_VER_PATCH"},
		Library:   "cusparse",
		Threshold: "11.0",
	},
	NVML: {
		Name:    NVML,
		Kind:    KindDriver,
		Headers: []string{"nvml.h"},
		Macros:  []string{"NVML_API_VERSION"},
		Library: "nvidia-ml",
		X86Only: true,
	},
	NvJPEG: {
		Name:      NvJPEG,
		Kind:      KindGated,
		Headers:   []string{"nvjpeg.h"},
		Macros:    []string{"NVJPEG_VER_MAJOR", "NVJPEG_VER_MINOR", "NVJPEG_VER_PATCH"},
		Library:   "nvjpeg",
		Threshold: "11.0",
		X86Only:   true,
	},
	// NPP ships one library per function group (nppc, nppial, nppicc, ...);
	// the core library locates them all.
	NPP: {
		Name:      NPP,
		Kind:      KindGated,
		Headers:   []string{"npp.h"},
		Macros:    []string{"NPP_VER_MAJOR", "NPP_VER_MINOR", "NPP_VER_PATCH"},
		Library:   "nppc",
		Threshold: "11.0",
	},
	CuDNN: {
		Name:          CuDNN,
		Kind:          KindStandalone,
		Headers:       []string{"cudnn.h", "cudnn_version.h"},
		Macros:        []string{"CUDNN_MAJOR", "CUDNN_MINOR", "CUDNN_PATCHLEVEL"},
		PartialMacros: true,
		Library:       "cudnn",
	},
	NCCL: {
		Name:    NCCL,
		Kind:    KindStandalone,
		Headers: []string{"nccl.h"},
		Macros:  []string{"NCCL_MAJOR", "NCCL_MINOR", "NCCL_PATCH"},
		Library: "nccl",
	},
	TensorRT: {
		Name:    TensorRT,
		Kind:    KindStandalone,
		Headers: []string{"NvInferVersion.h"},
		Macros:  []string{"NV_TENSORRT_MAJOR", "NV_TENSORRT_MINOR", "NV_TENSORRT_PATCH"},
		Library: "nvinfer",
	},
}

// dependents is the order in which runtime-dependent components resolve.
var dependents = []Name{CuBLAS, CuSOLVER, CuRAND, CuFFT, CuSPARSE, NVML, NvJPEG, NPP}

// Lookup returns the definition of a component.
func Lookup(n Name) (Definition, bool) {
	d, ok := registry[n]
	return d, ok
}

// Dependents returns the runtime-dependent components in resolution order.
func Dependents() []Name {
	return append([]Name(nil), dependents...)
}

// RequiresCore reports whether resolving n needs the runtime version.
func (d Definition) RequiresCore() bool {
	return d.Kind == KindGated || d.Kind == KindDriver
}

// EnabledOn reports whether the component is resolved on the given machine
// architecture (as reported by uname -m).
func (d Definition) EnabledOn(arch string) bool {
	return !d.X86Only || arch == defaults.ArchX86_64
}
