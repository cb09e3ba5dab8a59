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

// Package version implements the dotted version values used throughout the
// toolkit search, together with the two predicates the resolver relies on:
// prefix compatibility (Matches) and ordinal comparison (AtLeast).
package version

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Error types for version parsing failures
var (
	ErrEmptyVersion      = errors.New("version string is empty")
	ErrNonNumeric        = errors.New("version component is not numeric")
	ErrNegativeComponent = errors.New("version component cannot be negative")
)

// Version is a dotted sequence of non-negative integers such as "11", "11.4"
// or "535.104.05". It may be partial; Precision reports how many components
// were given.
type Version struct {
	Parts []int `json:"parts,omitempty" yaml:"parts,omitempty"`
}

// NewVersion creates a Version from its components.
func NewVersion(parts ...int) Version {
	return Version{Parts: append([]int(nil), parts...)}
}

// String returns the dotted form. Leading zeros of the original input are
// not preserved.
func (v Version) String() string {
	s := make([]string, len(v.Parts))
	for i, p := range v.Parts {
		s[i] = strconv.Itoa(p)
	}
	return strings.Join(s, ".")
}

// Precision returns the number of components.
func (v Version) Precision() int {
	return len(v.Parts)
}

// Major returns the first component, or 0 for an empty Version.
func (v Version) Major() int {
	if len(v.Parts) == 0 {
		return 0
	}
	return v.Parts[0]
}

// ParseVersion parses a dotted version string. Surrounding whitespace and an
// optional "v" prefix are ignored.
func ParseVersion(s string) (Version, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "v")
	if s == "" {
		return Version{}, ErrEmptyVersion
	}

	parts := strings.Split(s, ".")
	v := Version{Parts: make([]int, 0, len(parts))}
	for _, part := range parts {
		if part == "" {
			return Version{}, fmt.Errorf("%w: empty component", ErrNonNumeric)
		}
		num, err := strconv.Atoi(part)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrNonNumeric, part)
		}
		if num < 0 {
			return Version{}, fmt.Errorf("%w: %d", ErrNegativeComponent, num)
		}
		v.Parts = append(v.Parts, num)
	}
	return v, nil
}

// MustParseVersion parses a version string and panics if parsing fails.
// Only use this for hardcoded strings or in tests.
func MustParseVersion(s string) Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(fmt.Sprintf("MustParseVersion: %v", err))
	}
	return v
}

// Compare compares v and other as integer sequences, component by component.
// When one is a prefix of the other the shorter one sorts first, so
// "11" < "11.0". Returns -1, 0 or 1.
func (v Version) Compare(other Version) int {
	n := min(len(v.Parts), len(other.Parts))
	for i := 0; i < n; i++ {
		switch {
		case v.Parts[i] < other.Parts[i]:
			return -1
		case v.Parts[i] > other.Parts[i]:
			return 1
		}
	}
	switch {
	case len(v.Parts) < len(other.Parts):
		return -1
	case len(v.Parts) > len(other.Parts):
		return 1
	}
	return 0
}

// EqualsOrNewer returns true if v is equal to or newer than other.
func (v Version) EqualsOrNewer(other Version) bool {
	return v.Compare(other) >= 0
}

// Matches reports whether actual satisfies required as a dotted prefix.
// An empty requirement is always satisfied. The test is a plain string
// prefix after trimming whitespace:
//
//	required  actual  result
//	--------  ------  ------
//	1         1.1     true
//	1.2       1       false
//	1.2       1.3     false
//	""        1       true
func Matches(actual, required string) bool {
	actual = strings.TrimSpace(actual)
	required = strings.TrimSpace(required)
	return strings.HasPrefix(actual, required)
}

// AtLeast reports whether actual is ordinally greater than or equal to
// required. Both must parse as versions.
func AtLeast(actual, required string) (bool, error) {
	a, err := ParseVersion(actual)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", actual, err)
	}
	r, err := ParseVersion(required)
	if err != nil {
		return false, fmt.Errorf("invalid version %q: %w", required, err)
	}
	return a.EqualsOrNewer(r), nil
}

// MajorOf returns the first dotted segment of s, or "" when s is empty.
func MajorOf(s string) string {
	major, _, _ := strings.Cut(strings.TrimSpace(s), ".")
	return major
}
