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

package search

import (
	"fmt"
	"slices"
	"strings"

	"github.com/NVIDIA/findcuda/pkg/errors"
)

// NotFound builds the NOT_FOUND error for a search over roots and rels.
// Roots are listed sorted, relative paths in search order.
func NotFound(roots, rels []string, what string) *errors.StructuredError {
	sorted := slices.Clone(roots)
	slices.Sort(sorted)

	msg := fmt.Sprintf("could not find any %s in any subdirectory [%s] of [%s]",
		what, quoteAll(rels), quoteAll(sorted))

	return errors.NewWithContext(errors.ErrCodeNotFound, msg, map[string]any{
		"roots":         sorted,
		"relativePaths": slices.Clone(rels),
		"pattern":       what,
	})
}

func quoteAll(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "'" + s + "'"
	}
	return strings.Join(quoted, ", ")
}
