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
	"maps"
	"strings"

	"github.com/NVIDIA/findcuda/pkg/defaults"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/extractor"
	"github.com/NVIDIA/findcuda/pkg/search"
	"github.com/NVIDIA/findcuda/pkg/version"
)

// Attribute suffixes of a Config key.
const (
	AttrVersion       = "version"
	AttrIncludeDir    = "include_dir"
	AttrLibraryDir    = "library_dir"
	AttrBinaryDir     = "binary_dir"
	AttrDriverVersion = "driver_version"
	AttrToolkitPath   = "toolkit_path"
)

// Runner runs the external tools queried during resolution.
type Runner interface {
	NVCCOutput(ctx context.Context, path string) ([]byte, error)
	DriverOutput(ctx context.Context) ([]byte, error)
}

// Env bundles the collaborators a resolution needs.
type Env struct {
	Engine    *search.Engine
	Extractor *extractor.Extractor
	Runner    Runner
}

// Config maps <component>_<attribute> to a value.
type Config map[string]string

// Key returns the Config key of attr for component n.
func Key(n Name, attr string) string {
	return string(n) + "_" + attr
}

// Merge copies every attribute of other into c.
func (c Config) Merge(other Config) {
	maps.Copy(c, other)
}

// Resolution is the outcome of resolving one component.
type Resolution struct {
	Config Config

	// Header and Library are the discovered file paths.
	Header  string
	Library string

	// HeaderVersion is the full version read from the header, empty when
	// the component is locked to the runtime version.
	HeaderVersion string

	// Locked is set when the component inherited the runtime version.
	Locked bool
}

// Resolve locates the header and library of a non-core component.
// coreVersion is the resolved runtime version and is only consulted by
// components that depend on it. required constrains the header version of
// components that read their own macros.
func (d Definition) Resolve(ctx context.Context, env Env, coreVersion, required string) (Resolution, error) {
	if err := ctx.Err(); err != nil {
		return Resolution{}, errors.Wrap(errors.ErrCodeInternal, "resolution canceled", err)
	}

	switch d.Kind {
	case KindCore:
		return Resolution{}, errors.New(errors.ErrCodeInvalidRequest, "use ResolveCore for "+string(d.Name))
	case KindDriver:
		return d.resolveDriver(ctx, env, required)
	case KindGated:
		if coreVersion == "" {
			return Resolution{}, errors.New(errors.ErrCodeInvalidRequest,
				string(d.Name)+" requires the CUDA runtime version")
		}
		ok, err := version.AtLeast(coreVersion, d.Threshold)
		if err != nil {
			return Resolution{}, errors.WrapWithContext(errors.ErrCodeInvalidRequest,
				"invalid CUDA version", err, map[string]any{"version": coreVersion})
		}
		if !ok {
			return d.resolveLocked(env, coreVersion, required)
		}
	}
	return d.resolveOwn(env, required)
}

// resolveOwn reads the component version from its header macros.
func (d Definition) resolveOwn(env Env, required string) (Resolution, error) {
	header, err := env.Engine.FindHeader(d.Headers, required, d.headerVersion(env.Extractor))
	if err != nil {
		return Resolution{}, err
	}
	major := version.MajorOf(header.Version)
	library, err := env.Engine.FindLibrary(d.Library, major)
	if err != nil {
		return Resolution{}, err
	}
	return d.resolution(header.Path, library, major, header.Version, false), nil
}

// resolveLocked uses the runtime version without reading any macro. A
// requirement is checked against that version.
func (d Definition) resolveLocked(env Env, coreVersion, required string) (Resolution, error) {
	if required != "" && !version.Matches(coreVersion, required) {
		return Resolution{}, search.NotFound(env.Engine.Roots(), defaults.HeaderPaths,
			strings.Join(d.Headers, ", ")+" matching version "+required)
	}
	header, err := env.Engine.FindFile(defaults.HeaderPaths, d.Headers...)
	if err != nil {
		return Resolution{}, err
	}
	library, err := env.Engine.FindLibrary(d.Library, coreVersion)
	if err != nil {
		return Resolution{}, err
	}
	return d.resolution(header, library, coreVersion, "", true), nil
}

// resolveDriver reports the header API version and looks the library up
// by the installed driver version.
func (d Definition) resolveDriver(ctx context.Context, env Env, required string) (Resolution, error) {
	header, err := env.Engine.FindHeader(d.Headers, required, d.headerVersion(env.Extractor))
	if err != nil {
		return Resolution{}, err
	}
	out, err := env.Runner.DriverOutput(ctx)
	if err != nil {
		return Resolution{}, err
	}
	driver, err := env.Extractor.DriverVersion(out)
	if err != nil {
		return Resolution{}, errors.Wrap(errors.ErrCodeInternal, "failed to read driver version", err)
	}
	if driver == "" {
		return Resolution{}, errors.New(errors.ErrCodeNotFound, "nvidia-smi reported no driver version")
	}
	library, err := env.Engine.FindLibrary(d.Library, driver)
	if err != nil {
		return Resolution{}, err
	}
	res := d.resolution(header.Path, library, header.Version, header.Version, false)
	res.Config[Key(d.Name, AttrDriverVersion)] = driver
	return res, nil
}

func (d Definition) resolution(header, library, reported, headerVersion string, locked bool) Resolution {
	return Resolution{
		Config: Config{
			Key(d.Name, AttrVersion):    reported,
			Key(d.Name, AttrIncludeDir): search.Artifact{Path: header}.Dir(),
			Key(d.Name, AttrLibraryDir): search.Artifact{Path: library}.Dir(),
		},
		Header:        header,
		Library:       library,
		HeaderVersion: headerVersion,
		Locked:        locked,
	}
}

func (d Definition) headerVersion(x *extractor.Extractor) search.VersionFunc {
	if d.PartialMacros {
		return func(path string) (string, error) {
			return x.PartialMacros(path, d.Macros...)
		}
	}
	return func(path string) (string, error) {
		return x.Macros(path, d.Macros...)
	}
}
