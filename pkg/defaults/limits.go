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

// Limits for inputs read during resolution.
const (
	// HeaderMaxSize caps the size of a header scanned for version macros.
	// cuda.h in recent toolkits is close to 1MB.
	HeaderMaxSize = 16 << 20

	// CommandOutputMaxSize caps captured process output.
	CommandOutputMaxSize = 1 << 20
)

// Platform gating.
const (
	// ArchX86_64 is the machine name on which NVML and nvJPEG are resolved.
	ArchX86_64 = "x86_64"
)
