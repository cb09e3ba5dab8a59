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
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/NVIDIA/findcuda/pkg/errors"
)

// Name identifies a toolkit component.
type Name string

// Supported components.
const (
	CUDA     Name = "cuda"
	CuBLAS   Name = "cublas"
	CuSOLVER Name = "cusolver"
	CuRAND   Name = "curand"
	CuFFT    Name = "cufft"
	CuSPARSE Name = "cusparse"
	NVML     Name = "nvml"
	NvJPEG   Name = "nvjpeg"
	NPP      Name = "npp"
	CuDNN    Name = "cudnn"
	NCCL     Name = "nccl"
	TensorRT Name = "tensorrt"
)

// Pseudo-components reported alongside the runtime.
const (
	NVVM  Name = "nvvm"
	CUPTI Name = "cupti"
)

// String returns the component name.
func (n Name) String() string {
	return string(n)
}

// IsValid reports whether n is a supported component.
func (n Name) IsValid() bool {
	_, ok := registry[n]
	return ok
}

// ParseName parses a component name case-insensitively.
func ParseName(s string) (Name, error) {
	n := Name(cases.Fold().String(strings.TrimSpace(s)))
	if !n.IsValid() {
		return "", errors.NewWithContext(errors.ErrCodeUnsupportedComponent,
			"component "+s+" is not supported (supported: "+strings.Join(SupportedNames(), ", ")+")",
			map[string]any{"component": s})
	}
	return n, nil
}

// ParseNames parses every name, failing on the first unsupported one.
// Duplicates are dropped; order of first appearance is kept.
func ParseNames(raw []string) ([]Name, error) {
	out := make([]Name, 0, len(raw))
	for _, s := range raw {
		n, err := ParseName(s)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out, nil
}

// SupportedNames returns all supported component names, sorted.
func SupportedNames() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, string(n))
	}
	slices.Sort(names)
	return names
}
