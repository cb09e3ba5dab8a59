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

package runner

import (
	"context"
	"strings"

	"k8s.io/utils/exec"

	"github.com/NVIDIA/findcuda/pkg/errors"
)

const (
	nvidiaSMICommand = "nvidia-smi"
)

var driverQueryArgs = []string{"--query-gpu=driver_version", "--format=csv,noheader"}

// Runner executes external commands.
type Runner struct {
	exec exec.Interface
}

// New returns a Runner that executes real processes.
func New() *Runner {
	return NewWithExec(exec.New())
}

// NewWithExec returns a Runner backed by the given exec implementation.
func NewWithExec(e exec.Interface) *Runner {
	return &Runner{exec: e}
}

// Output runs name with args and returns its standard output.
func (r *Runner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := r.exec.CommandContext(ctx, name, args...).Output()
	if err != nil {
		details := map[string]any{
			"command": name,
			"args":    args,
		}
		if ee, ok := err.(exec.ExitError); ok {
			details["exitStatus"] = ee.ExitStatus()
		}
		return nil, errors.WrapWithContext(errors.ErrCodeInternal,
			"failed to run "+strings.Join(append([]string{name}, args...), " "), err, details)
	}
	return out, nil
}

// LookPath searches PATH for an executable.
func (r *Runner) LookPath(file string) (string, error) {
	return r.exec.LookPath(file)
}

// NVCCOutput runs "<path> --version".
func (r *Runner) NVCCOutput(ctx context.Context, path string) ([]byte, error) {
	return r.Output(ctx, path, "--version")
}

// DriverOutput queries the installed driver version through nvidia-smi.
func (r *Runner) DriverOutput(ctx context.Context) ([]byte, error) {
	return r.Output(ctx, nvidiaSMICommand, driverQueryArgs...)
}
