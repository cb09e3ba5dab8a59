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

// Package serializer writes resolution results and reads configuration
// files in several formats.
//
// # Supported Formats
//
// Text (default):
//   - One "key: value" line per attribute, sorted by key
//   - The format build systems parse
//
// JSON:
//   - Indented object, keys sorted by encoding/json
//
// YAML:
//   - gopkg.in/yaml.v3, two-space indent
//
// Table:
//   - Aligned FIELD/VALUE columns for terminals
//   - Write-only
//
// Nested values are flattened to dotted keys for text and table output.
//
// # Usage
//
//	w := serializer.NewWriter(serializer.FormatText, os.Stdout)
//	if err := w.Serialize(ctx, result); err != nil {
//		return err
//	}
//
// Reading a configuration file with strict field checking:
//
//	cfg, err := serializer.FromFile[config.File]("findcuda.yaml")
package serializer
