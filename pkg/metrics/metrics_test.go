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

package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/search"
)

func TestRecorder(t *testing.T) {
	r := New()

	r.OnProbe(search.Probe{Path: "/a", Matched: false})
	r.OnProbe(search.Probe{Path: "/b", Matched: false})
	r.OnProbe(search.Probe{Path: "/c", Matched: true})
	r.OnComponent(component.CUDA, nil)
	r.OnComponent(component.CuBLAS, nil)
	r.OnComplete(50*time.Millisecond, nil)
	r.OnComplete(10*time.Millisecond, errors.New(errors.ErrCodeNotFound, "missing"))

	assert.Equal(t, 2.0, testutil.ToFloat64(r.probes.WithLabelValues(ProbeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.probes.WithLabelValues(ProbeMatched)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.components.WithLabelValues("cublas")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("NOT_FOUND")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(r.duration))
}

func TestRecorderFailureCodeDefaultsToInternal(t *testing.T) {
	r := New()
	r.OnComplete(time.Millisecond, os.ErrPermission)
	assert.Equal(t, 1.0, testutil.ToFloat64(r.failures.WithLabelValues("INTERNAL")))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.OnComponent(component.NCCL, nil)
	r.OnComplete(time.Millisecond, nil)

	path := filepath.Join(t.TempDir(), "findcuda.prom")
	require.NoError(t, r.WriteTextfile(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(b)
	assert.Contains(t, out, `findcuda_components_resolved_total{component="nccl"} 1`)
	assert.Contains(t, out, "findcuda_resolution_duration_seconds_count 1")
	assert.True(t, strings.Contains(out, "# HELP findcuda_resolution_runs_total"))

	err = r.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, errors.ErrCodeInternal))
}

func TestRecordersAreIsolated(t *testing.T) {
	a, b := New(), New()
	a.OnComponent(component.CUDA, nil)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.components.WithLabelValues("cuda")))
}
