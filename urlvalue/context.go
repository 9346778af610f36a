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
	"errors"

	"github.com/triclass/urlclassifier/scheme"
)

// DefaultBaseURL is the default base used by a Context created with
// NewDefaultContext: a sentinel hostname RFC 2606 guarantees will never be
// assigned, so authorities inherited from it are syntactically
// distinguishable from authorities a reference actually supplied.
const DefaultBaseURL = "http://example.org./"

// PlaceholderAuthority is the authority component of DefaultBaseURL.
const PlaceholderAuthority = "example.org."

// Context bundles a scheme registry with a base URL against which relative
// references are resolved.
type Context struct {
	registry   *scheme.Registry
	baseText   string
	baseScheme *scheme.Scheme
	baseRanges *scheme.PartRanges
}

// NewContext constructs a Context from a registry and an absolute,
// hierarchical base URL. Parsing of the base is validated eagerly: it must
// have a scheme and, if the scheme is naturally hierarchical, must be
// syntactically absolute.
func NewContext(registry *scheme.Registry, baseURL string) (*Context, error) {
	if registry == nil {
		registry = scheme.NewRegistry()
	}
	schemeName, rest, hasScheme := endOfScheme(baseURL)
	if !hasScheme {
		return nil, newParseError(&kindError{message: "base URL has no scheme", input: baseURL})
	}
	baseScheme, _ := registry.Lookup(schemeName)
	ranges := scheme.Decompose(baseScheme, baseURL, len(schemeName)+1, len(baseURL))
	if baseScheme.Hierarchical && !hasNetworkOrAbsolutePath(rest) {
		return nil, newParseError(&kindError{message: "base URL must be an absolute hierarchical reference", input: baseURL})
	}
	return &Context{
		registry:   registry,
		baseText:   baseURL,
		baseScheme: baseScheme,
		baseRanges: ranges,
	}, nil
}

// NewDefaultContext returns a Context using DefaultBaseURL as its base.
func NewDefaultContext(registry *scheme.Registry) *Context {
	ctx, err := NewContext(registry, DefaultBaseURL)
	if err != nil {
		// DefaultBaseURL is a constant, known-good absolute URL; this can
		// only fail if the registry rejects "http", which built-ins never do.
		panic("urlvalue: invalid DefaultBaseURL: " + err.Error())
	}
	return ctx
}

// Registry returns the context's scheme registry.
func (c *Context) Registry() *scheme.Registry { return c.registry }

// BaseURL returns the context's base URL text.
func (c *Context) BaseURL() string { return c.baseText }

func hasNetworkOrAbsolutePath(rest string) bool {
	return len(rest) > 0 && rest[0] == '/'
}

// kindError is the internal, richer error describing why a Context could
// not be constructed: a message plus the malformed input that triggered it.
type kindError struct {
	message string
	input   string
}

func (e *kindError) Error() string {
	return "urlvalue: " + e.message + ": " + e.input
}

// ParseError is returned when a Context cannot be constructed (normal
// classification failures surface as the Invalid verdict, not a Go error).
// Err unwraps to whatever the underlying kindError itself wrapped, if
// anything.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.Err }

// newParseError wraps err as a ParseError, returning nil for a nil err.
func newParseError(err error) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Message: err.Error(), Err: errors.Unwrap(err)}
}
