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

// Package resolver aggregates component resolutions into one flat result.
//
// A run walks a fixed sequence of states:
//
//	Idle -> CoreResolved -> SublibrariesResolved -> Consistent -> Done
//
// and moves to Failed from any of them. The runtime is resolved first when
// any requested component depends on it; the toolkit root implied by the
// compiler directory must agree with the one implied by the libdevice
// directory. Dependent libraries then resolve in a fixed order, followed by
// the standalone components. Finally every directory and path value is
// canonicalized with symlinks resolved.
//
// Any failure aborts the run and no partial result is returned.
//
//	r := resolver.New(roots, runner.New())
//	res, err := r.Resolve(ctx, resolver.Request{
//		Components: []component.Name{component.CUDA},
//		Arch:       resolver.HostArch(),
//	})
package resolver
