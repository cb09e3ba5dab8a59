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

// Package file reads text inputs (C headers, captured process output) as
// lines for the version extractor.
//
// Parser enforces a size cap and rejects content that is not valid UTF-8:
//
//	p := file.NewParser(file.WithMaxSize(16 << 20))
//	lines, err := p.GetLines("/usr/local/cuda/include/cuda.h")
package file
