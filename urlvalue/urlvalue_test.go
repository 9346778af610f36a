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

package urlvalue

import "testing"

func TestURLValueAccessors(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)
	v := Resolve(ctx, "http://User@Example.COM:80/a/b?q=1#frag")

	if got, ok := v.Authority(); !ok || got != "User@Example.COM:80" {
		t.Errorf("Authority() = (%q, %v), want (%q, true)", got, ok, "User@Example.COM:80")
	}
	if got, ok := v.Path(); !ok || got != "/a/b" {
		t.Errorf("Path() = (%q, %v), want (%q, true)", got, ok, "/a/b")
	}
	if got, ok := v.Query(); !ok || got != "q=1" {
		t.Errorf("Query() = (%q, %v), want (%q, true)", got, ok, "q=1")
	}
	if got, ok := v.Fragment(); !ok || got != "frag" {
		t.Errorf("Fragment() = (%q, %v), want (%q, true)", got, ok, "frag")
	}
	if v.Scheme() != "http" {
		t.Errorf("Scheme() = %q, want http", v.Scheme())
	}
	if !v.IsHierarchical() {
		t.Errorf("IsHierarchical() = false, want true")
	}
}

func TestURLValueContentSchemes(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)
	v := Resolve(ctx, "data:text/plain;base64,SGVsbG8=#x")

	meta, ok := v.ContentMetadata()
	if !ok || meta != "text/plain;base64" {
		t.Errorf("ContentMetadata() = (%q, %v), want (%q, true)", meta, ok, "text/plain;base64")
	}
	content, ok := v.Content()
	if !ok || content != "SGVsbG8=" {
		t.Errorf("Content() = (%q, %v), want (%q, true)", content, ok, "SGVsbG8=")
	}
	frag, ok := v.Fragment()
	if !ok || frag != "x" {
		t.Errorf("Fragment() = (%q, %v), want (%q, true)", frag, ok, "x")
	}
}

func TestNormalized(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"lowercases scheme and host", "HTTP://Example.COM/a", "http://example.com/a"},
		{"collapses unreserved percent escapes", "http://example.com/%7Euser", "http://example.com/~user"},
		{"keeps reserved escapes, uppercases hex", "http://example.com/a%2fb", "http://example.com/a%2Fb"},
		{"removes default http port", "http://example.com:80/a", "http://example.com/a"},
		{"removes default https port", "https://example.com:443/a", "https://example.com/a"},
		{"removes default ftp port", "ftp://example.com:21/a", "ftp://example.com/a"},
		{"keeps non-default port", "http://example.com:8080/a", "http://example.com:8080/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(ctx, tt.ref).Normalized()
			if got != tt.want {
				t.Errorf("Resolve(%q).Normalized() = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestLoosen(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"strips query and fragment", "http://example.com/a?b=1#c", "http://example.com/a"},
		{"no-op when absent", "http://example.com/a", "http://example.com/a"},
		{"strips fragment only", "http://example.com/a#c", "http://example.com/a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Loosen(ctx, tt.ref).String()
			if got != tt.want {
				t.Errorf("Loosen(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestURLValueJSONRoundTrip(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)
	v := Resolve(ctx, "http://example.com/a/b")

	data, err := v.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON() error: %v", err)
	}

	var got URLValue
	if err := got.UnmarshalJSON(data); err != nil {
		t.Fatalf("UnmarshalJSON() error: %v", err)
	}
	if got.String() != v.String() {
		t.Errorf("round trip: got %q, want %q", got.String(), v.String())
	}
}

func TestReencode(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"decodes valid UTF-8 percent run", "http://example.com/%E2%98%83", "http://example.com/☃"},
		{"leaves invalid UTF-8 run encoded", "http://example.com/%FF%FE", "http://example.com/%FF%FE"},
		{"decodes a lone escape for an ASCII byte", "http://example.com/100%25done", "http://example.com/100%done"},
		{"leaves a truncated escape untouched", "http://example.com/100%2", "http://example.com/100%2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reencode(ctx, tt.ref).String()
			if got != tt.want {
				t.Errorf("Reencode(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}
