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

import (
	"context"
	"path/filepath"

	"github.com/NVIDIA/findcuda/pkg/defaults"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/search"
)

const (
	nvccBinary    = "nvcc"
	libdeviceGlob = "libdevice*.10.bc"
	cuptiHeader   = "cupti.h"
	cuptiLibrary  = "cupti"
)

// Core is the resolved CUDA runtime.
type Core struct {
	Config Config

	// Version is the "major.minor" runtime version.
	Version string

	// CompilerVersion is the full nvcc release, e.g. "11.4.152".
	CompilerVersion string

	BinaryDir string
	NVVMDir   string
}

// ToolkitRoots returns the installation root implied by the compiler
// directory and the one implied by the libdevice directory.
func (c Core) ToolkitRoots() (fromBinary, fromNVVM string) {
	return filepath.Clean(filepath.Join(c.BinaryDir, "..")),
		filepath.Clean(filepath.Join(c.NVVMDir, "..", ".."))
}

// ResolveCore locates the CUDA runtime header, library, compiler,
// libdevice and CUPTI. required constrains the runtime version.
func ResolveCore(ctx context.Context, env Env, required string) (Core, error) {
	if err := ctx.Err(); err != nil {
		return Core{}, errors.Wrap(errors.ErrCodeInternal, "resolution canceled", err)
	}

	header, err := env.Engine.FindHeader([]string{"cuda.h"}, required, env.Extractor.CUDAVersion)
	if err != nil {
		return Core{}, err
	}
	cudaVersion := header.Version

	cudart, err := env.Engine.FindLibrary(registry[CUDA].Library, cudaVersion)
	if err != nil {
		return Core{}, err
	}

	nvcc, err := env.Engine.FindVersioned(defaults.BinaryPaths, []string{nvccBinary}, cudaVersion,
		func(path string) (string, error) {
			out, err := env.Runner.NVCCOutput(ctx, path)
			if err != nil {
				return "", err
			}
			return env.Extractor.NVCCVersion(out)
		})
	if err != nil {
		return Core{}, err
	}

	libdevice, err := env.Engine.FindFile(defaults.DeviceLibraryPaths, libdeviceGlob)
	if err != nil {
		return Core{}, err
	}

	cuptiHdr, err := env.Engine.FindFile(defaults.HeaderPaths, cuptiHeader)
	if err != nil {
		return Core{}, err
	}
	cuptiLib, err := env.Engine.FindLibrary(cuptiLibrary, "")
	if err != nil {
		return Core{}, err
	}

	core := Core{
		Version:         cudaVersion,
		CompilerVersion: nvcc.Version,
		BinaryDir:       nvcc.Dir(),
		NVVMDir:         search.Artifact{Path: libdevice}.Dir(),
	}
	core.Config = Config{
		Key(CUDA, AttrVersion):     cudaVersion,
		Key(CUDA, AttrIncludeDir):  header.Dir(),
		Key(CUDA, AttrLibraryDir):  search.Artifact{Path: cudart}.Dir(),
		Key(CUDA, AttrBinaryDir):   core.BinaryDir,
		Key(NVVM, AttrLibraryDir):  core.NVVMDir,
		Key(CUPTI, AttrIncludeDir): search.Artifact{Path: cuptiHdr}.Dir(),
		Key(CUPTI, AttrLibraryDir): search.Artifact{Path: cuptiLib}.Dir(),
	}
	return core, nil
}
