/*
Copyright © 2025 NVIDIA Corporation
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"
	"k8s.io/utils/exec"

	"github.com/NVIDIA/findcuda/pkg/component"
	"github.com/NVIDIA/findcuda/pkg/config"
	"github.com/NVIDIA/findcuda/pkg/errors"
	"github.com/NVIDIA/findcuda/pkg/logging"
	"github.com/NVIDIA/findcuda/pkg/metrics"
	"github.com/NVIDIA/findcuda/pkg/resolver"
	"github.com/NVIDIA/findcuda/pkg/roots"
	"github.com/NVIDIA/findcuda/pkg/runner"
	"github.com/NVIDIA/findcuda/pkg/serializer"
)

const (
	name           = "findcuda"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

// Option configures the command.
type Option func(*options)

type options struct {
	exec   exec.Interface
	stdout io.Writer
	stderr io.Writer
}

// WithExec sets the process executor used for nvcc, nvidia-smi and the
// PATH lookup.
func WithExec(e exec.Interface) Option {
	return func(o *options) {
		o.exec = e
	}
}

// WithOutput sets the result and diagnostic writers.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = stdout
		o.stderr = stderr
	}
}

// Execute runs the command with the process arguments and exits non-zero
// on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewCommand().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, singleLine(err.Error()))
		stop()
		os.Exit(1)
	}
}

// NewCommand returns the root command.
func NewCommand(opts ...Option) *cli.Command {
	o := &options{
		exec:   exec.New(),
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &cli.Command{
		Name:      name,
		Usage:     "Locate an installed CUDA toolkit and report its configuration",
		Version:   fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		ArgsUsage: "COMPONENT...",
		Description: fmt.Sprintf(`Locates the requested components of a CUDA toolkit installation, determines
their versions, checks that they belong to one toolkit and prints their
include, library and binary directories.

Supported components: %s`, strings.Join(component.SupportedNames(), ", ")),
		Writer:    o.stdout,
		ErrWriter: o.stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "cuda-path",
				Usage:   "CUDA toolkit installation path",
				Sources: cli.EnvVars("CUDA_PATH"),
			},
			&cli.StringSliceFlag{
				Name:    "search-paths",
				Usage:   "Comma-separated directories to search (globs allowed); must include the toolkit path",
				Sources: cli.EnvVars("FINDCUDA_PATHS", "MY_CUDA_PATHS"),
			},
			&cli.StringSliceFlag{
				Name:  "require",
				Usage: "Version prefix a component must match, as NAME=VERSION (e.g. cudnn=8)",
			},
			&cli.StringFlag{
				Name:  "arch",
				Usage: "Machine name used to gate nvml and nvjpeg (default: host architecture)",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML configuration file",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"t"},
				Usage:   fmt.Sprintf("Output format (supported values: %s)", strings.Join(serializer.SupportedFormats(), ", ")),
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Write the result to this file instead of stdout (\"-\" for stdout)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Sources: cli.EnvVars(logging.EnvLogLevel),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (json, text)",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write Prometheus metrics of the run to this file",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			return run(ctx, cmd, o)
		},
	}
}

func run(ctx context.Context, cmd *cli.Command, o *options) error {
	settings, err := settingsFromCmd(cmd)
	if err != nil {
		return err
	}

	logger := logging.SetDefault(logging.Options{
		Module:  name,
		Version: version,
		Level:   settings.LogLevel,
		Format:  settings.LogFormat,
		Output:  o.stderr,
	})

	names, err := component.ParseNames(settings.Components)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		return errors.New(errors.ErrCodeInvalidRequest,
			"no components requested (supported: "+strings.Join(component.SupportedNames(), ", ")+")")
	}
	versions, err := settings.RequiredVersions()
	if err != nil {
		return err
	}
	format, _ := serializer.ParseFormat(settings.Format)

	r := runner.NewWithExec(o.exec)
	rs, err := roots.Determine(roots.Options{
		CUDAPath:    settings.CUDAPath,
		SearchPaths: settings.SearchPaths,
		LookPath:    r.LookPath,
	})
	if err != nil {
		return err
	}

	arch := settings.Arch
	if arch == "" {
		arch = resolver.HostArch()
	}
	logger.Debug("search roots",
		slog.String("cudaPath", rs.CUDAPath),
		slog.Any("roots", rs.Paths),
		slog.String("arch", arch))

	recorder := metrics.New()
	res, err := resolver.New(rs.Paths, r,
		resolver.WithObserver(resolver.MultiObserver{resolver.NewLogObserver(logger), recorder}),
	).Resolve(ctx, resolver.Request{
		Components: names,
		Versions:   versions,
		Arch:       arch,
	})

	if settings.MetricsFile != "" {
		if merr := recorder.WriteTextfile(settings.MetricsFile); merr != nil {
			logger.Warn("failed to write metrics", slog.String("error", merr.Error()))
		}
	}
	if err != nil {
		return err
	}

	logger.Info("resolution complete", slog.Int("attributes", len(res)))
	return writeResult(ctx, format, settings.Output, o.stdout, res)
}

// writeResult serializes res to path, or to stdout when path is empty or "-".
func writeResult(ctx context.Context, format serializer.Format, path string, stdout io.Writer, res resolver.Result) error {
	if p := strings.TrimSpace(path); p == "" || p == "-" {
		return serializer.NewWriter(format, stdout).Serialize(ctx, res)
	}
	w, err := serializer.NewFileWriterOrStdout(format, path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to open output", err)
	}
	if err := w.Serialize(ctx, res); err != nil {
		_ = w.Close()
		return err
	}
	if err := w.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, "failed to close output", err)
	}
	return nil
}

// settingsFromCmd merges the configuration file with flags and environment.
func settingsFromCmd(cmd *cli.Command) (config.File, error) {
	var base config.File
	if path := cmd.String("config"); path != "" {
		f, err := config.Load(path)
		if err != nil {
			return config.File{}, err
		}
		base = *f
	}

	versions, err := config.ParseVersions(cmd.StringSlice("require"))
	if err != nil {
		return config.File{}, err
	}

	merged := base.Merge(config.File{
		CUDAPath:    cmd.String("cuda-path"),
		SearchPaths: roots.SplitList(strings.Join(cmd.StringSlice("search-paths"), ",")),
		Components:  cmd.Args().Slice(),
		Versions:    versions,
		Arch:        cmd.String("arch"),
		Format:      cmd.String("format"),
		Output:      cmd.String("output"),
		LogLevel:    cmd.String("log-level"),
		LogFormat:   cmd.String("log-format"),
		MetricsFile: cmd.String("metrics-file"),
	})
	if err := merged.Validate(); err != nil {
		return config.File{}, err
	}
	return merged, nil
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
