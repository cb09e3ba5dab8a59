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

// Package extractor reads version information out of toolkit headers and
// captured tool output.
//
// Header versions are composed from one or more "#define NAME <integer>"
// macros joined with dots in the order requested:
//
//	x := extractor.New()
//	v, err := x.Macros(path, "CUBLAS_VER_MAJOR", "CUBLAS_VER_MINOR", "CUBLAS_VER_PATCH")
//	// v == "11.5.1"
//
// The CUDA runtime encodes its version as major*1000 + minor*10 in a single
// CUDA_VERSION macro; CUDAVersion decodes it arithmetically.
//
// An empty version with a nil error means the input declares no usable
// version; callers treat such candidates as non-matching.
package extractor
