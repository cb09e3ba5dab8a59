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

// Package component describes the toolkit components the resolver can
// locate and implements the per-component resolution procedure.
//
// Components form a closed set. Each one is a Definition holding its static
// data (headers, version macros, library stem, version policy) and all of
// them are resolved by the same generic procedure:
//
//   - KindCore: the CUDA runtime itself (cuda.h, cudart, nvcc, libdevice, CUPTI).
//   - KindGated: math and imaging libraries whose version is locked to the
//     runtime version below Threshold and read from their own header macros
//     at or above it.
//   - KindDriver: NVML, whose library is keyed by the installed driver version.
//   - KindStandalone: cuDNN, NCCL and TensorRT, independent of the runtime.
//
// Resolution returns a Config, a flat attribute map with keys of the form
// <component>_<attribute> (e.g. "cublas_include_dir").
//
//	def, _ := component.Lookup(component.CuBLAS)
//	res, err := def.Resolve(ctx, env, "11.4", "")
//	fmt.Println(res.Config["cublas_version"]) // "11"
package component
