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

// Package urlvalue resolves a (possibly relative) URL reference against a
// base into an absolute URLValue, with the structural parts a classifier
// needs exposed as lazy accessors.
package urlvalue

import (
	"encoding/hex"
	"encoding/json"
	"strings"
	"unicode/utf8"

	"github.com/triclass/urlclassifier/scheme"
)

// URLValue is the result of resolving a reference against a Context: an
// absolute URL, its scheme, its structural part ranges, and the diagnostic
// facts attached to the resolution (placeholder-authority inheritance, path
// root overrun, corner cases observed along the way).
type URLValue struct {
	ctx          *Context
	originalText string
	text         string
	scheme       *scheme.Scheme
	ranges       *scheme.PartRanges

	inheritsPlaceholderAuthority bool
	reachedRootsParent           bool
	cornerCases                  CornerCaseSet
}

// Resolve absolutizes text against ctx's base.
func Resolve(ctx *Context, text string) *URLValue {
	urlText, sch, ranges, cc, reachedRootsParent := ctx.absolutize(text)

	_, refHadOwnAuthority := ownAuthority(ctx, text)

	v := &URLValue{
		ctx:                ctx,
		originalText:       text,
		text:               urlText,
		scheme:             sch,
		ranges:             ranges,
		reachedRootsParent: reachedRootsParent,
		cornerCases:        cc,
	}
	if !refHadOwnAuthority {
		if auth, ok := v.Authority(); ok && auth == PlaceholderAuthority {
			v.inheritsPlaceholderAuthority = true
		}
	}
	return v
}

// ownAuthority reports whether text, read as a reference in isolation
// (without merging against the base), supplies its own authority. This is
// the test for whether an absolutized authority was inherited from the base
// rather than given by the reference.
func ownAuthority(ctx *Context, text string) (string, bool) {
	schemeName, rest, hasOwnScheme := endOfScheme(text)
	var sch *scheme.Scheme
	var body string
	if hasOwnScheme {
		sch, _ = ctx.registry.Lookup(schemeName)
		body = rest
	} else {
		sch = ctx.baseScheme
		body = text
	}
	if !sch.Hierarchical {
		return "", false
	}
	r := scheme.Decompose(sch, body, 0, len(body))
	if !r.HasAuthority() {
		return "", false
	}
	return body[r.AuthorityLeft:r.AuthorityRight], true
}

// String returns the absolutized URL text.
func (v *URLValue) String() string { return v.text }

// OriginalText returns the text as originally supplied to Resolve, before
// absolutization.
func (v *URLValue) OriginalText() string { return v.originalText }

// Scheme returns the name of the URL's registered scheme descriptor. An
// unregistered scheme resolves to scheme.Unknown, so this is "" for it.
func (v *URLValue) Scheme() string { return v.scheme.Name }

// IsHierarchical reports whether the URL's scheme is hierarchical.
func (v *URLValue) IsHierarchical() bool { return v.scheme.Hierarchical }

// NaturallyHasAuthority reports whether the URL's scheme naturally carries
// an authority part, independent of whether this particular value happened
// to supply one.
func (v *URLValue) NaturallyHasAuthority() bool { return v.scheme.HasAuthority() }

// NaturallyHasQuery reports whether the URL's scheme naturally carries a
// query part.
func (v *URLValue) NaturallyHasQuery() bool { return v.scheme.HasQuery() }

// NaturallyHasContent reports whether the URL's scheme naturally embeds
// opaque content rather than a hierarchical path.
func (v *URLValue) NaturallyHasContent() bool { return v.scheme.HasContent() }

// SchemeDefaultPort returns the scheme's default port, or
// scheme.NoDefaultPort if it has none.
func (v *URLValue) SchemeDefaultPort() int { return v.scheme.DefaultPort }

// Authority returns the authority component and whether it is present.
func (v *URLValue) Authority() (string, bool) {
	if !v.ranges.HasAuthority() {
		return "", false
	}
	return v.text[v.ranges.AuthorityLeft:v.ranges.AuthorityRight], true
}

// Path returns the path component and whether it is present (hierarchical
// schemes always carry a path, possibly empty).
func (v *URLValue) Path() (string, bool) {
	if !v.ranges.HasPath() {
		return "", false
	}
	return v.text[v.ranges.PathLeft:v.ranges.PathRight], true
}

// Query returns the query component (without the leading '?') and whether
// it is present.
func (v *URLValue) Query() (string, bool) {
	if !v.ranges.HasQuery() {
		return "", false
	}
	return v.text[v.ranges.QueryLeft:v.ranges.QueryRight], true
}

// Fragment returns the fragment component (without the leading '#') and
// whether it is present.
func (v *URLValue) Fragment() (string, bool) {
	if !v.ranges.HasFragment() {
		return "", false
	}
	return v.text[v.ranges.FragmentLeft:v.ranges.FragmentRight], true
}

// Content returns the scheme-specific part of a non-hierarchical URL
// (excluding any content metadata and the fragment) and whether it is
// present.
func (v *URLValue) Content() (string, bool) {
	if !v.ranges.HasContent() {
		return "", false
	}
	return v.text[v.ranges.ContentLeft:v.ranges.ContentRight], true
}

// ContentMetadata returns the metadata segment preceding the first comma
// in a data-like scheme's content (e.g. "text/plain;base64" in
// "data:text/plain;base64,..."), and whether it is present.
func (v *URLValue) ContentMetadata() (string, bool) {
	if !v.ranges.HasContentMeta() {
		return "", false
	}
	return v.text[v.ranges.ContentMetaLeft:v.ranges.ContentMetaRight], true
}

// InheritsPlaceholderAuthority reports whether the reference had no
// authority of its own and the absolutized authority is exactly
// PlaceholderAuthority.
func (v *URLValue) InheritsPlaceholderAuthority() bool { return v.inheritsPlaceholderAuthority }

// PathSimplificationReachedRootsParent reports whether dot-segment removal
// encountered a ".." with nothing left to pop.
func (v *URLValue) PathSimplificationReachedRootsParent() bool { return v.reachedRootsParent }

// CornerCases returns the corner cases observed while resolving this value.
func (v *URLValue) CornerCases() CornerCaseSet { return v.cornerCases }

// Normalized returns the syntax-based normal form of the URL text (RFC 3986
// §6.2.2): lowercased scheme; a host lowercased and IDNA-folded with a
// default port dropped; percent-encoding triples collapsed back to their
// unreserved character where possible and uppercased otherwise; components
// NFC-folded. Path, query, and fragment have already had their structural
// ambiguities resolved by Resolve, so no further dot-segment handling is
// done here.
func (v *URLValue) Normalized() string {
	var out []byte
	out = append(out, []byte(lowerASCII(v.scheme.Name))...)
	out = append(out, ':')
	if auth, ok := v.Authority(); ok {
		out = append(out, "//"...)
		out = append(out, normalizeAuthorityCase(auth, v.scheme)...)
	}
	if v.scheme.Hierarchical {
		if path, ok := v.Path(); ok {
			out = append(out, normalizeComponent(path)...)
		}
	} else {
		if meta, ok := v.ContentMetadata(); ok {
			out = append(out, normalizeComponent(meta)...)
			out = append(out, ',')
		}
		if content, ok := v.Content(); ok {
			out = append(out, normalizeComponent(content)...)
		}
	}
	if q, ok := v.Query(); ok {
		out = append(out, '?')
		out = append(out, normalizeComponent(q)...)
	}
	if f, ok := v.Fragment(); ok {
		out = append(out, '#')
		out = append(out, normalizeComponent(f)...)
	}
	return string(out)
}

// Loosen strips the query and fragment from text, returning a reference
// that resolves to the same resource path but ignores request parameters
// and in-page anchors. It is a convenience layered over Resolve for callers
// that want to compare URLs up to their path.
func Loosen(ctx *Context, text string) *URLValue {
	v := Resolve(ctx, text)
	if !v.ranges.HasQuery() && !v.ranges.HasFragment() {
		return v
	}
	end := len(v.text)
	if v.ranges.HasFragment() {
		end = v.ranges.FragmentLeft - 1
	}
	if v.ranges.HasQuery() {
		end = v.ranges.QueryLeft - 1
	}
	return Resolve(ctx, v.text[:end])
}

// Reencode decodes contiguous runs of percent-encoded octets in text that
// form valid UTF-8, whatever characters they decode to (so "%25" becomes
// "%"), leaving any other escape untouched, then resolves the result
// against ctx. This
// is a convenience for callers handing this module URI-only references
// produced upstream by something that isn't IRI-aware; it sits in front of
// Resolve rather than on the classifier's hot path, which always works
// from already-decoded component text.
func Reencode(ctx *Context, text string) *URLValue {
	var b strings.Builder
	b.Grow(len(text))

	i := 0
	for i < len(text) {
		if text[i] != '%' {
			b.WriteByte(text[i])
			i++
			continue
		}

		start := i
		var decoded []byte
		for i < len(text) && text[i] == '%' {
			if i+2 >= len(text) || !isHexDigit(text[i+1]) || !isHexDigit(text[i+2]) {
				break
			}
			octet, _ := hex.DecodeString(text[i+1 : i+3])
			decoded = append(decoded, octet[0])
			i += 3
		}

		if i == start {
			b.WriteByte(text[start])
			i++
			continue
		}

		if utf8.Valid(decoded) {
			b.Write(decoded)
		} else {
			b.WriteString(text[start:i])
		}
	}

	return Resolve(ctx, b.String())
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// MarshalJSON implements json.Marshaler, encoding the value as its absolute
// URL text.
func (v *URLValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.text)
}

// UnmarshalJSON implements json.Unmarshaler. Because resolution needs a
// Context, a value decoded this way is always resolved against
// NewDefaultContext with the built-in scheme registry; callers needing a
// custom base or registry should decode the string themselves and call
// Resolve directly.
func (v *URLValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*v = *Resolve(NewDefaultContext(nil), s)
	return nil
}
