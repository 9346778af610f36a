/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package pathglob

import (
	"errors"
	"testing"
)

func TestCompileMatches(t *testing.T) {
	tests := []struct {
		name  string
		glob  string
		match []string
		miss  []string
	}{
		{
			"literal", "/a/b", []string{"/a/b"}, []string{"/a/b/", "/a/bc", "/a"},
		},
		{
			"single star", "/a/*", []string{"/a/b", "/a/"}, []string{"/a/b/c", "/a"},
		},
		{
			"trailing double star", "/a/**", []string{"/a/", "/a/b/c"}, []string{"/a"},
		},
		{
			"slash-double-star-slash", "/a/**/c", []string{"/a/c", "/a/b/c", "/a/b/d/c"}, []string{"/a/c/d"},
		},
		{
			"trailing optional slash", "/a/b/?", []string{"/a/b", "/a/b/"}, []string{"/a/bc"},
		},
		{
			"percent-decoded literal slash", "/a%2Fb", []string{"/a/b"}, []string{"/a%2Fb"},
		},
		{
			"percent-decoded literal star", "/a%2Ab", []string{"/a*b"}, []string{"/aXb"},
		},
		{
			"unrelated escape left encoded", "/a%41b", []string{"/a%41b"}, []string{"/aAb"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			re, err := Compile(tt.glob)
			if err != nil {
				t.Fatalf("Compile(%q) error: %v", tt.glob, err)
			}
			for _, m := range tt.match {
				if !re.MatchString(m) {
					t.Errorf("Compile(%q).MatchString(%q) = false, want true", tt.glob, m)
				}
			}
			for _, m := range tt.miss {
				if re.MatchString(m) {
					t.Errorf("Compile(%q).MatchString(%q) = true, want false", tt.glob, m)
				}
			}
		})
	}
}

func TestCompileRejectsMalformedEscape(t *testing.T) {
	tests := []string{"/a%", "/a%2", "/a%gg"}
	for _, glob := range tests {
		t.Run(glob, func(t *testing.T) {
			if _, err := Compile(glob); !errors.Is(err, ErrMalformedEscape) {
				t.Errorf("Compile(%q) error = %v, want ErrMalformedEscape", glob, err)
			}
		})
	}
}
