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

import (
	"testing"

	"github.com/triclass/urlclassifier/scheme"
)

func TestEndOfScheme(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		wantScheme string
		wantRest   string
		wantOK     bool
	}{
		{"absolute http", "http://example.com/a", "http", "//example.com/a", true},
		{"relative path", "/a/b", "", "/a/b", false},
		{"relative no slash", "a/b", "", "a/b", false},
		{"colon appears after slash", "/a:b", "", "/a:b", false},
		{"colon at position zero", ":foo", "", ":foo", false},
		{"query before colon", "?a:b", "", "?a:b", false},
		{"mailto", "mailto:foo@example.com", "mailto", "foo@example.com", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotScheme, gotRest, gotOK := endOfScheme(tt.ref)
			if gotScheme != tt.wantScheme || gotRest != tt.wantRest || gotOK != tt.wantOK {
				t.Errorf("endOfScheme(%q) = (%q, %q, %v), want (%q, %q, %v)",
					tt.ref, gotScheme, gotRest, gotOK, tt.wantScheme, tt.wantRest, tt.wantOK)
			}
		})
	}
}

func mustContext(t *testing.T, base string) *Context {
	t.Helper()
	ctx, err := NewContext(nil, base)
	if err != nil {
		t.Fatalf("NewContext(%q) error: %v", base, err)
	}
	return ctx
}

func TestResolveAbsoluteReference(t *testing.T) {
	ctx := mustContext(t, "http://example.org./base/")

	tests := []struct {
		name string
		ref  string
		want string
	}{
		{"simple absolute", "http://example.com/a/b", "http://example.com/a/b"},
		{"absolute with dot segments", "http://example.com/a/./b/../c", "http://example.com/a/c"},
		{"data scheme", "data:text/plain;base64,SGVsbG8=", "data:text/plain;base64,SGVsbG8="},
		{"mailto", "mailto:a@example.com", "mailto:a@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(ctx, tt.ref).String()
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveRelativeReference(t *testing.T) {
	ctx := mustContext(t, "http://example.org./a/b/c")

	// Table mirrors RFC 3986 Section 5.4.1's "Normal Examples".
	tests := []struct {
		ref  string
		want string
	}{
		{"g", "http://example.org./a/b/g"},
		{"./g", "http://example.org./a/b/g"},
		{"g/", "http://example.org./a/b/g/"},
		{"/g", "http://example.org./g"},
		{"//g", "http://g"},
		{"?y", "http://example.org./a/b/c?y"},
		{"g?y", "http://example.org./a/b/g?y"},
		{"#s", "http://example.org./a/b/c#s"},
		{"g#s", "http://example.org./a/b/g#s"},
		{"g?y#s", "http://example.org./a/b/g?y#s"},
		{".", "http://example.org./a/b/"},
		{"./", "http://example.org./a/b/"},
		{"..", "http://example.org./a/"},
		{"../", "http://example.org./a/"},
		{"../g", "http://example.org./a/g"},
		{"../..", "http://example.org./"},
		{"../../", "http://example.org./"},
		{"../../g", "http://example.org./g"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got := Resolve(ctx, tt.ref).String()
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveAbnormalExamples(t *testing.T) {
	ctx := mustContext(t, "http://example.org./a/b/c")

	// RFC 3986 Section 5.4.2's "Abnormal Examples", restricted to the cases
	// that do not depend on a query with no authority/path (out of scope
	// for this scheme model's http).
	tests := []struct {
		ref  string
		want string
	}{
		{"../../../g", "http://example.org./g"},
		{"../../../../g", "http://example.org./g"},
		{"/./g", "http://example.org./g"},
		{"/../g", "http://example.org./g"},
		{"g.", "http://example.org./a/b/g."},
		{".g", "http://example.org./a/b/.g"},
		{"g..", "http://example.org./a/b/g.."},
		{"..g", "http://example.org./a/b/..g"},
		{"./../g", "http://example.org./a/g"},
		{"./g/.", "http://example.org./a/b/g/"},
		{"g/./h", "http://example.org./a/b/g/h"},
		{"g/../h", "http://example.org./a/b/h"},
	}
	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			got := Resolve(ctx, tt.ref).String()
			if got != tt.want {
				t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
			}
		})
	}
}

func TestResolveReachedRootsParent(t *testing.T) {
	ctx := mustContext(t, "http://example.org./a/b/c")

	tests := []struct {
		name string
		ref  string
		want bool
	}{
		{"within bounds", "../g", false},
		{"one past root", "../../../g", true},
		{"absolute past root", "/../../g", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := Resolve(ctx, tt.ref)
			if got := v.PathSimplificationReachedRootsParent(); got != tt.want {
				t.Errorf("PathSimplificationReachedRootsParent() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveInheritsPlaceholderAuthority(t *testing.T) {
	ctx := mustContext(t, DefaultBaseURL)

	v := Resolve(ctx, "/a/b")
	if !v.InheritsPlaceholderAuthority() {
		t.Errorf("relative reference against default base: InheritsPlaceholderAuthority() = false, want true")
	}

	v2 := Resolve(ctx, "http://real-host.example/a")
	if v2.InheritsPlaceholderAuthority() {
		t.Errorf("absolute reference with own authority: InheritsPlaceholderAuthority() = true, want false")
	}
}

func TestResolvePathAuthorityAmbiguity(t *testing.T) {
	registry := scheme.NewRegistry().WithScheme(&scheme.Scheme{
		Name:         "x-test",
		Hierarchical: true,
		DefaultPort:  scheme.NoDefaultPort,
		NaturalParts: scheme.Path,
	})
	ctx, err := NewContext(registry, "x-test:/a/b")
	if err != nil {
		t.Fatalf("NewContext error: %v", err)
	}

	// Merging ".." against "/a/" pops the "a" segment, leaving "/" + "/x"
	// from the ref's own leading "//x" remainder: a merged path that reads
	// back as "//x" with no authority anywhere in sight.
	v := Resolve(ctx, "..//x")
	if !v.CornerCases().Has(PathAuthorityAmbiguity) {
		t.Errorf("Resolve(%q): CornerCases() missing PathAuthorityAmbiguity", "..//x")
	}
	if v.String() != "x-test:%2F/x" {
		t.Errorf("Resolve(%q) = %q, want %q", "..//x", v.String(), "x-test:%2F/x")
	}

	v2 := Resolve(mustContext(t, "http://example.org./a/"), "file:///etc/passwd")
	if v2.CornerCases().Has(PathAuthorityAmbiguity) {
		t.Errorf("file:///etc/passwd has an (empty) authority, want no PathAuthorityAmbiguity")
	}
}

func TestResolveEncodedDotPathSegment(t *testing.T) {
	ctx := mustContext(t, "http://example.org./a/b/")

	v := Resolve(ctx, "%2e%2e/g")
	if !v.CornerCases().Has(EncodedDotPathSegment) {
		t.Errorf("CornerCases() missing EncodedDotPathSegment for %%2e%%2e segment")
	}
}
