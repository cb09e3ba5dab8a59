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

// Package logging configures structured logging for findcuda.
//
// Logs go to stderr so that stdout carries only the resolution result.
// Every record carries the module name, the build version and a run id
// that ties together the records of one invocation.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: search probes and state transitions, with source location
//   - INFO: run summary (default)
//   - WARN/WARNING: recoverable problems
//   - ERROR: failures
//
// # Usage
//
//	logging.SetDefault(logging.Options{Module: "findcuda", Version: version, Level: "debug"})
//	slog.Debug("candidate", "path", path)
//
// Text output for terminals:
//
//	logger := logging.New(logging.Options{Module: "findcuda", Format: logging.FormatText})
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable sets the level when --log-level is
// not given:
//
//	LOG_LEVEL=debug findcuda cuda
//
// # Output Format
//
// JSON by default:
//
//	{
//	    "time": "2025-01-15T10:30:00.123Z",
//	    "level": "INFO",
//	    "msg": "resolution complete",
//	    "module": "findcuda",
//	    "version": "v1.0.0",
//	    "run": "3f1c0c6e-8f55-4b8a-9d43-2e2f0b7f1c11",
//	    "components": 9
//	}
package logging
