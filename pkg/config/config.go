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

// Package config loads the optional findcuda configuration file and
// merges it with command line values.
//
// Example file:
//
//	cudaPath: /usr/local/cuda-11.4
//	searchPaths:
//	  - /usr/local/cuda-11.4
//	  - /opt/nvidia/*
//	components: [cuda, cudnn]
//	versions:
//	  cudnn: "8"
//	format: text
//	output: /etc/findcuda/cuda.yaml
//	logLevel: info
//	metricsFile: /var/lib/node_exporter/findcuda.prom
//
// Values set on the command line or in the environment take precedence
// over the file.
package config

import (
	"strings"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/serializer"
)

// File is the configuration file schema.
type File struct {
	CUDAPath    string            `json:"cudaPath,omitempty" yaml:"cudaPath,omitempty"`
	SearchPaths []string          `json:"searchPaths,omitempty" yaml:"searchPaths,omitempty"`
	Components  []string          `json:"components,omitempty" yaml:"components,omitempty"`
	Versions    map[string]string `json:"versions,omitempty" yaml:"versions,omitempty"`
	Arch        string            `json:"arch,omitempty" yaml:"arch,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Output      string            `json:"output,omitempty" yaml:"output,omitempty"`
	LogLevel    string            `json:"logLevel,omitempty" yaml:"logLevel,omitempty"`
	LogFormat   string            `json:"logFormat,omitempty" yaml:"logFormat,omitempty"`
	MetricsFile string            `json:"metricsFile,omitempty" yaml:"metricsFile,omitempty"`
}

// Load reads the file at path. Unknown fields are an error.
func Load(path string) (*File, error) {
	f, err := serializer.FromFile[File](path)
	if err != nil {
		return nil, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
			"failed to load config", err, map[string]any{"path": path})
	}
	return f, nil
}

// Merge returns f with every non-empty field of override applied. Maps are
// merged key by key.
func (f File) Merge(override File) File {
	out := f
	if override.CUDAPath != "" {
		out.CUDAPath = override.CUDAPath
	}
	if len(override.SearchPaths) > 0 {
		out.SearchPaths = override.SearchPaths
	}
	if len(override.Components) > 0 {
		out.Components = override.Components
	}
	if override.Arch != "" {
		out.Arch = override.Arch
	}
	if override.Format != "" {
		out.Format = override.Format
	}
	if override.Output != "" {
		out.Output = override.Output
	}
	if override.LogLevel != "" {
		out.LogLevel = override.LogLevel
	}
	if override.LogFormat != "" {
		out.LogFormat = override.LogFormat
	}
	if override.MetricsFile != "" {
		out.MetricsFile = override.MetricsFile
	}
	if len(override.Versions) > 0 {
		merged := make(map[string]string, len(f.Versions)+len(override.Versions))
		for k, v := range f.Versions {
			merged[k] = v
		}
		for k, v := range override.Versions {
			merged[k] = v
		}
		out.Versions = merged
	}
	return out
}

// ParseVersions parses name=version pairs.
func ParseVersions(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, ver, ok := strings.Cut(p, "=")
		name, ver = strings.TrimSpace(name), strings.TrimSpace(ver)
		if !ok || name == "" || ver == "" {
			return nil, errors.NewWithContext(errors.ErrCodeInvalidRequest,
				"invalid version requirement "+p+", expected name=version",
				map[string]any{"value": p})
		}
		out[name] = ver
	}
	return out, nil
}

// Validate checks formats, component names and version keys.
func (f File) Validate() error {
	if _, ok := serializer.ParseFormat(f.Format); !ok {
		return errors.NewWithContext(errors.ErrCodeInvalidRequest,
			"unsupported format "+f.Format+" (supported: "+strings.Join(serializer.SupportedFormats(), ", ")+")",
			map[string]any{"format": f.Format})
	}
	if _, err := component.ParseNames(f.Components); err != nil {
		return err
	}
	_, err := f.RequiredVersions()
	return err
}

// RequiredVersions returns the version map keyed by component.
func (f File) RequiredVersions() (map[component.Name]string, error) {
	out := make(map[component.Name]string, len(f.Versions))
	for k, v := range f.Versions {
		n, err := component.ParseName(k)
		if err != nil {
			return nil, err
		}
		out[n] = v
	}
	return out, nil
}
