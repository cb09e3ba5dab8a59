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

package resolver

import "runtime"

// machineNames maps GOARCH values to the names reported by uname -m.
var machineNames = map[string]string{
	"amd64":   "x86_64",
	"arm64":   "aarch64",
	"ppc64le": "ppc64le",
	"s390x":   "s390x",
	"386":     "i686",
}

// HostArch returns the machine name of the running binary's architecture.
func HostArch() string {
	return MachineName(runtime.GOARCH)
}

// MachineName converts a GOARCH value to its uname -m name. Unknown values
// are returned unchanged.
func MachineName(goarch string) string {
	if m, ok := machineNames[goarch]; ok {
		return m
	}
	return goarch
}
