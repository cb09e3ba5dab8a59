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

package defaults

// Installation roots used when no override is given.
const (
	// ToolkitPath is the conventional CUDA installation directory.
	ToolkitPath = "/usr/local/cuda"

	// SystemPrefix is the distribution package prefix.
	SystemPrefix = "/usr"

	// ToolkitBinaryProbe is looked up on PATH to infer the toolkit path
	// when no explicit path is given.
	ToolkitBinaryProbe = "ptxas"
)

// HeaderPaths is the ordered set of sub-directories searched for headers.
var HeaderPaths = []string{
	"",
	"include",
	"include/cuda",
	"include/*-linux-gnu",
	"extras/CUPTI/include",
	"include/cuda/CUPTI",
	"local/cuda/extras/CUPTI/include",
}

// LibraryPaths is the ordered set of sub-directories searched for shared libraries.
var LibraryPaths = []string{
	"",
	"lib64",
	"lib",
	"lib/*-linux-gnu",
	"lib/x64",
	"extras/CUPTI/*",
	"local/cuda/lib64",
	"local/cuda/extras/CUPTI/lib64",
}

// BinaryPaths is the ordered set of sub-directories searched for nvcc.
var BinaryPaths = []string{
	"",
	"bin",
	"local/cuda/bin",
}

// DeviceLibraryPaths is the ordered set of sub-directories searched for libdevice.
var DeviceLibraryPaths = []string{
	"nvvm/libdevice",
	"share/cuda",
	"lib/nvidia-cuda-toolkit/libdevice",
	"local/cuda/nvvm/libdevice",
}

// DefaultSearchRoots returns the roots probed when no override list is given.
func DefaultSearchRoots() []string {
	return []string{ToolkitPath, SystemPrefix}
}
