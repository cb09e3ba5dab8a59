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
	"testing"
)

// FuzzParseVersion performs fuzz testing on ParseVersion to find edge cases
func FuzzParseVersion(f *testing.F) {
	f.Add("1")
	f.Add("v1")
	f.Add("11.4")
	f.Add("12.2.140")
	f.Add("535.104.05")
	f.Add("0")
	f.Add("")
	f.Add(".")
	f.Add("..")
	f.Add("1.")
	f.Add(".1")
	f.Add("1..2")
	f.Add("v")
	f.Add("-1")
	f.Add("1.-2")
	f.Add("a.b.c")
	f.Add("1.2.3.4.5")
	f.Add("   1.2.3")

	f.Fuzz(func(t *testing.T, input string) {
		v, err := ParseVersion(input)
		if err != nil {
			return
		}

		if v.Precision() < 1 {
			t.Errorf("ParseVersion(%q) returned no components", input)
		}
		for _, p := range v.Parts {
			if p < 0 {
				t.Errorf("ParseVersion(%q) returned negative component: %+v", input, v)
			}
		}

		// Re-parsing the string form must round-trip.
		s := v.String()
		v2, err := ParseVersion(s)
		if err != nil {
			t.Fatalf("Re-parsing %q (from %q) failed: %v", s, input, err)
		}
		if v.Compare(v2) != 0 {
			t.Errorf("Round-trip mismatch for %q: %+v != %+v", input, v, v2)
		}

		// A version always matches its own string form and is at least itself.
		if !Matches(s, s) {
			t.Errorf("Matches(%q, %q) = false", s, s)
		}
		if !v.EqualsOrNewer(v2) {
			t.Errorf("%s must be EqualsOrNewer than itself", s)
		}
	})
}
