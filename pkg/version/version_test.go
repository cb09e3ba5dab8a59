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

package version

import (
	"errors"
	"testing"
)

func TestMatches(t *testing.T) {
	tests := []struct {
		actual   string
		required string
		want     bool
	}{
		{"1.1", "1", true},
		{"1", "1.2", false},
		{"1.2", "1.3", false},
		{"1", "", true},
		{"", "", true},
		{"11.2", "11", true},
		{"11.4.2", "11.4", true},
		{" 11.4 ", "11.4", true},
		{"11.4", " 11 ", true},
		{"10.2", "11", false},
		{"535.104.05", "535", true},
	}

	for _, tt := range tests {
		t.Run(tt.actual+"~"+tt.required, func(t *testing.T) {
			if got := Matches(tt.actual, tt.required); got != tt.want {
				t.Errorf("Matches(%q, %q) = %v, want %v", tt.actual, tt.required, got, tt.want)
			}
		})
	}
}

func TestMatchesReflexive(t *testing.T) {
	for _, v := range []string{"1", "11.4", "12.2.140", "535.104.05", "8.9.7"} {
		if !Matches(v, v) {
			t.Errorf("Matches(%q, %q) = false", v, v)
		}
		if !Matches(v, "") {
			t.Errorf("Matches(%q, \"\") = false", v)
		}
	}
}

func TestAtLeast(t *testing.T) {
	tests := []struct {
		actual   string
		required string
		want     bool
	}{
		{"11.4", "11.0", true},
		{"11.0", "11.0", true},
		{"10.2", "11.0", false},
		{"10.1", "10.1", true},
		{"10.0", "10.1", false},
		{"12.0", "11.8", true},
		{"9.10", "9.2", true},
		{"11", "11.0", false},
	}

	for _, tt := range tests {
		t.Run(tt.actual+">="+tt.required, func(t *testing.T) {
			got, err := AtLeast(tt.actual, tt.required)
			if err != nil {
				t.Fatalf("AtLeast() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("AtLeast(%q, %q) = %v, want %v", tt.actual, tt.required, got, tt.want)
			}
		})
	}
}

func TestAtLeastInvalid(t *testing.T) {
	if _, err := AtLeast("11.x", "11.0"); !errors.Is(err, ErrNonNumeric) {
		t.Errorf("expected ErrNonNumeric, got %v", err)
	}
	if _, err := AtLeast("11.4", ""); !errors.Is(err, ErrEmptyVersion) {
		t.Errorf("expected ErrEmptyVersion, got %v", err)
	}
}

func TestAtLeastOrderProperties(t *testing.T) {
	versions := []string{"9.0", "9.2", "10.0", "10.1", "10.2", "11.0", "11.4", "12.0", "12.10"}

	for _, a := range versions {
		ok, _ := AtLeast(a, a)
		if !ok {
			t.Errorf("AtLeast(%q, %q) must be reflexive", a, a)
		}
		for _, b := range versions {
			ab, _ := AtLeast(a, b)
			ba, _ := AtLeast(b, a)
			if a != b && ab && ba {
				t.Errorf("AtLeast must be antisymmetric: %q and %q satisfy both directions", a, b)
			}
			for _, c := range versions {
				bc, _ := AtLeast(b, c)
				ac, _ := AtLeast(a, c)
				if ab && bc && !ac {
					t.Errorf("AtLeast must be transitive: %q>=%q>=%q but not %q>=%q", a, b, c, a, c)
				}
			}
		}
	}
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{name: "major", input: "11", want: "11"},
		{name: "major minor", input: "11.4", want: "11.4"},
		{name: "driver", input: "535.104.05", want: "535.104.5"},
		{name: "four parts", input: "8.9.7.29", want: "8.9.7.29"},
		{name: "v prefix", input: "v12.2", want: "12.2"},
		{name: "whitespace", input: " 12.2\n", want: "12.2"},
		{name: "empty", input: "", wantErr: ErrEmptyVersion},
		{name: "empty component", input: "11..4", wantErr: ErrNonNumeric},
		{name: "letters", input: "11.x", wantErr: ErrNonNumeric},
		{name: "negative", input: "-1", wantErr: ErrNegativeComponent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseVersion(tt.input)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseVersion(%q) error = %v, want %v", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseVersion(%q) unexpected error: %v", tt.input, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseVersion(%q) = %s, want %s", tt.input, got, tt.want)
			}
		})
	}
}

func TestVersionAccessors(t *testing.T) {
	v := MustParseVersion("11.4.2")
	if v.Major() != 11 {
		t.Errorf("Major() = %d, want 11", v.Major())
	}
	if v.Precision() != 3 {
		t.Errorf("Precision() = %d, want 3", v.Precision())
	}
	if (Version{}).Major() != 0 {
		t.Error("empty version must have major 0")
	}
}

func TestMajorOf(t *testing.T) {
	tests := map[string]string{
		"11.4.2":     "11",
		"8":          "8",
		"":           "",
		" 535.104 ":  "535",
		"12.2.140.1": "12",
	}
	for in, want := range tests {
		if got := MajorOf(in); got != want {
			t.Errorf("MajorOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestMustParseVersionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid input")
		}
	}()
	_ = MustParseVersion("not-a-version")
}
