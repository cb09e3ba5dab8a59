// Package cli implements the findcuda command line.
//
// # Overview
//
// findcuda locates an installed CUDA toolkit and prints the version and
// the canonical include, library and binary directories of each requested
// component, for consumption by a build system.
//
// # Usage
//
//	findcuda [flags] COMPONENT...
//
// Components: cuda, cublas, cusolver, curand, cufft, cusparse, nvml, nvjpeg,
// npp, cudnn, nccl, tensorrt. Requesting cuda alone also resolves every
// library that depends on it; naming those libraries explicitly resolves
// cuda and just those.
//
// # Flags
//
//	--cuda-path PATH       Toolkit path ($CUDA_PATH)
//	--search-paths LIST    Comma-separated search roots, globs allowed ($FINDCUDA_PATHS, $MY_CUDA_PATHS)
//	--require NAME=VER     Version prefix a component must match (repeatable)
//	--arch NAME            Machine name gating nvml and nvjpeg (default: host)
//	--config FILE          YAML configuration file
//	--format FORMAT        text (default), json, yaml, table
//	--log-level LEVEL      debug, info, warn, error ($LOG_LEVEL)
//	--log-format FORMAT    json (default) or text
//	--metrics-file FILE    Write Prometheus metrics of the run to FILE
//
// # Output
//
// Text output is one "key: value" line per attribute, sorted:
//
//	cuda_binary_dir: /usr/local/cuda-11.4/bin
//	cuda_include_dir: /usr/local/cuda-11.4/include
//	cuda_version: 11.4
//	...
//
// On failure a single diagnostic line is written to stderr and the process
// exits with status 1.
package cli
