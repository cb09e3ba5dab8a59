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

package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// EnvLogLevel is the environment variable holding the default level.
const EnvLogLevel = "LOG_LEVEL"

// Options configures a logger.
type Options struct {
	Module  string
	Version string

	// Level is parsed with ParseLogLevel.
	Level string

	// Format is FormatJSON (default) or FormatText.
	Format string

	// Output defaults to os.Stderr.
	Output io.Writer

	// RunID identifies the invocation. A random UUID is used when empty.
	RunID string
}

// New returns a logger for opts.
func New(opts Options) *slog.Logger {
	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	level := ParseLogLevel(opts.Level)
	ho := &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	}

	var h slog.Handler
	if strings.EqualFold(opts.Format, FormatText) {
		h = slog.NewTextHandler(out, ho)
	} else {
		h = slog.NewJSONHandler(out, ho)
	}

	runID := opts.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	return slog.New(h).With(
		slog.String("module", opts.Module),
		slog.String("version", opts.Version),
		slog.String("run", runID),
	)
}

// SetDefault installs a logger for opts as the slog default and returns it.
func SetDefault(opts Options) *slog.Logger {
	l := New(opts)
	slog.SetDefault(l)
	return l
}

// ParseLogLevel converts a level name to a slog.Level. Unknown names map
// to info.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
