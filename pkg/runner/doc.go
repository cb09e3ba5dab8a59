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

// Package runner is the process boundary of the resolver. It runs toolkit
// binaries (nvcc, nvidia-smi) and returns their captured standard output.
//
// Commands block until the process exits; no timeout or retry is applied.
// A non-zero exit status is reported as an INTERNAL StructuredError that
// names the command.
//
// The default implementation is backed by k8s.io/utils/exec so tests can
// substitute k8s.io/utils/exec/testing fakes:
//
//	fake := &testingexec.FakeExec{...}
//	r := runner.NewWithExec(fake)
package runner
