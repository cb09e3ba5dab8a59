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

package extractor

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/NVIDIA/findcuda/pkg/defaults"
	"github.com/NVIDIA/findcuda/pkg/file"
)

const cudaVersionMacro = "CUDA_VERSION"

var nvccPattern = regexp.MustCompile(`^Cuda compilation tools, release \d+\.\d+, V(\d+\.\d+\.\d+)`)

// Extractor reads version macros from header files.
type Extractor struct {
	headers *file.Parser
	output  *file.Parser
}

// New returns an Extractor with the default header size limit.
func New() *Extractor {
	return &Extractor{
		headers: file.NewParser(file.WithMaxSize(defaults.HeaderMaxSize)),
		output:  file.NewParser(file.WithMaxSize(defaults.CommandOutputMaxSize), file.WithTrimSpace(true)),
	}
}

// Macros returns the values of the named macros joined with ".". When any
// macro is absent the result is empty.
func (x *Extractor) Macros(path string, names ...string) (string, error) {
	return x.macros(path, names, false)
}

// PartialMacros is like Macros but keeps the leading macros that are
// present, stopping at the first missing one. The result is empty only when
// the first macro is absent.
func (x *Extractor) PartialMacros(path string, names ...string) (string, error) {
	return x.macros(path, names, true)
}

func (x *Extractor) macros(path string, names []string, partial bool) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	lines, err := x.headers.GetLines(path)
	if err != nil {
		return "", err
	}

	values := make([]string, 0, len(names))
	for _, name := range names {
		v, ok := define(lines, name)
		if !ok {
			if partial {
				break
			}
			return "", nil
		}
		values = append(values, v)
	}
	return strings.Join(values, "."), nil
}

// CUDAVersion returns the "major.minor" runtime version declared by cuda.h.
// A missing or zero CUDA_VERSION yields an empty version.
func (x *Extractor) CUDAVersion(path string) (string, error) {
	raw, err := x.Macros(path, cudaVersionMacro)
	if err != nil || raw == "" {
		return "", err
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("invalid %s %q in %s: %w", cudaVersionMacro, raw, path, err)
	}
	return DecodeCUDAVersion(n), nil
}

// DecodeCUDAVersion converts the integer encoding major*1000 + minor*10 into
// "major.minor". Zero decodes to "".
func DecodeCUDAVersion(n int) string {
	if n <= 0 {
		return ""
	}
	return fmt.Sprintf("%d.%d", n/1000, n%1000/10)
}

// NVCCVersion scans "nvcc --version" output for the full compiler release.
func (x *Extractor) NVCCVersion(output []byte) (string, error) {
	lines, err := x.output.Split(output)
	if err != nil {
		return "", fmt.Errorf("nvcc output: %w", err)
	}
	for _, line := range lines {
		if m := nvccPattern.FindStringSubmatch(line); m != nil {
			return m[1], nil
		}
	}
	return "", nil
}

// DriverVersion returns the first reported driver version from
// "nvidia-smi --query-gpu=driver_version --format=csv,noheader" output.
// Hosts with several GPUs print one line per device.
func (x *Extractor) DriverVersion(output []byte) (string, error) {
	lines, err := x.output.Split(output)
	if err != nil {
		return "", fmt.Errorf("nvidia-smi output: %w", err)
	}
	if len(lines) == 0 {
		return "", nil
	}
	return lines[0], nil
}

func define(lines []string, name string) (string, bool) {
	re := regexp.MustCompile(`^#define ` + regexp.QuoteMeta(name) + ` +(\d+)`)
	for _, line := range lines {
		if m := re.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}
