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

package classify

import (
	"regexp"
	"strings"

	"github.com/triclass/urlclassifier/pathglob"
	"github.com/triclass/urlclassifier/pctencode"
	"github.com/triclass/urlclassifier/urlvalue"
)

// URLClassifier applies the top-level classification rules to a resolved
// URL.
type URLClassifier interface {
	Apply(v *urlvalue.URLValue, diag Receiver) Classification
}

// MediaTypeClassifier classifies the content-metadata segment of a
// data-like scheme (e.g. the "text/plain;base64" of a "data:" URL).
type MediaTypeClassifier interface {
	Apply(mediaType string, diag Receiver) Classification
}

// MediaTypeClassifierFunc adapts a plain function to a MediaTypeClassifier.
type MediaTypeClassifierFunc func(string) Classification

// Apply calls f.
func (f MediaTypeClassifierFunc) Apply(mediaType string, _ Receiver) Classification {
	return f(mediaType)
}

// ContentClassifier classifies the opaque content of a non-hierarchical
// scheme (e.g. the payload of a "data:" or "mailto:" URL).
type ContentClassifier interface {
	Apply(content string, diag Receiver) Classification
}

// ContentClassifierFunc adapts a plain function to a ContentClassifier.
type ContentClassifierFunc func(string) Classification

// Apply calls f.
func (f ContentClassifierFunc) Apply(content string, _ Receiver) Classification {
	return f(content)
}

type topLevelClassifier struct {
	allowedSchemes  map[string]struct{}
	mediaType       MediaTypeClassifier
	authority       AuthorityClassifier
	positiveGlobs   []*regexp.Regexp
	negativeGlobs   []*regexp.Regexp
	query           QueryClassifier
	fragment        FragmentClassifier
	content         ContentClassifier
	allowNULs       bool
	allowRootParent bool
	tolerated       urlvalue.CornerCaseSet
}

// evalStep runs one classifier step against a collecting receiver wrapping
// underlying, discarding its notes on a Match verdict and flushing them
// otherwise: a successful evaluation emits nothing.
func evalStep(underlying Receiver, run func(Receiver) Classification) Classification {
	buf := Collecting(underlying)
	c := run(buf)
	if c == Match {
		buf.Clear()
	} else {
		buf.Flush()
	}
	return c
}

// Apply runs the classifier's fixed evaluation order: corner cases, NUL
// bytes, scheme, authority, path, media type, content, query, fragment.
func (t *topLevelClassifier) Apply(v *urlvalue.URLValue, diag Receiver) Classification {
	for cc := range v.CornerCases() {
		if !t.tolerated.Has(cc) {
			diag.Note("untolerated corner case", cc.String())
			return Invalid
		}
	}

	if !t.allowNULs && strings.IndexByte(v.OriginalText(), 0) >= 0 {
		diag.Note("NUL byte in original URL text", v.OriginalText())
		return Invalid
	}

	if t.allowedSchemes != nil {
		if _, ok := t.allowedSchemes[v.Scheme()]; !ok {
			diag.Note("scheme not allowed", v.Scheme())
			return NotAMatch
		}
	}

	if t.authority != nil {
		_, hasAuth := v.Authority()
		if v.NaturallyHasAuthority() || hasAuth {
			c := evalStep(diag, func(d Receiver) Classification { return t.authority.Apply(v, d) })
			if c != Match {
				return c
			}
		}
	}

	if path, hasPath := v.Path(); hasPath {
		c := evalStep(diag, func(d Receiver) Classification { return t.applyPath(v, path, d) })
		if c != Match {
			return c
		}
	}

	if t.mediaType != nil {
		if meta, ok := v.ContentMetadata(); ok {
			c := evalStep(diag, func(d Receiver) Classification { return t.mediaType.Apply(meta, d) })
			if c != Match {
				return c
			}
		}
	}

	if t.content != nil {
		content, hasContent := v.Content()
		if v.NaturallyHasContent() || hasContent {
			c := evalStep(diag, func(d Receiver) Classification { return t.content.Apply(content, d) })
			if c != Match {
				return c
			}
		}
	}

	if t.query != nil {
		rawQuery, hasQuery := v.Query()
		if v.NaturallyHasQuery() || hasQuery {
			c := evalStep(diag, func(d Receiver) Classification { return t.query.Apply(rawQuery, hasQuery, d) })
			if c != Match {
				return c
			}
		}
	}

	if t.fragment == nil {
		return Match
	}
	rawFragment, hasFragment := v.Fragment()
	return evalStep(diag, func(d Receiver) Classification { return t.fragment.Apply(rawFragment, hasFragment, d) })
}

// applyPath decodes path and checks it against the root's-parent policy and
// the negative/positive path-glob sets.
func (t *topLevelClassifier) applyPath(v *urlvalue.URLValue, path string, diag Receiver) Classification {
	decodedPath, ok := pctencode.Decode(path, 0, len(path), false, t.allowNULs)
	if !ok {
		diag.Note("path percent-decode failed", path)
		return Invalid
	}
	if v.PathSimplificationReachedRootsParent() && !t.allowRootParent {
		diag.Note("path simplification reached root's parent", path)
		return NotAMatch
	}
	for _, neg := range t.negativeGlobs {
		if neg.MatchString(decodedPath) {
			diag.Note("path matched a negative glob", decodedPath)
			return NotAMatch
		}
	}
	if len(t.positiveGlobs) > 0 {
		for _, pos := range t.positiveGlobs {
			if pos.MatchString(decodedPath) {
				return Match
			}
		}
		diag.Note("path matched no positive glob", decodedPath)
		return NotAMatch
	}
	return Match
}

// TopLevelBuilder configures a URLClassifier.
type TopLevelBuilder struct {
	allowedSchemes  map[string]struct{}
	mediaType       MediaTypeClassifier
	authority       AuthorityClassifier
	positiveGlobs   []string
	negativeGlobs   []string
	query           QueryClassifier
	fragment        FragmentClassifier
	content         ContentClassifier
	allowNULs       bool
	allowRootParent bool
	tolerated       map[urlvalue.CornerCase]struct{}
}

// NewTopLevelBuilder returns an empty TopLevelBuilder.
func NewTopLevelBuilder() *TopLevelBuilder {
	return &TopLevelBuilder{}
}

// AllowSchemes configures the scheme allow-set.
func (b *TopLevelBuilder) AllowSchemes(schemes ...string) *TopLevelBuilder {
	if b.allowedSchemes == nil {
		b.allowedSchemes = make(map[string]struct{}, len(schemes))
	}
	for _, s := range schemes {
		b.allowedSchemes[s] = struct{}{}
	}
	return b
}

// MediaType configures the media-type sub-classifier.
func (b *TopLevelBuilder) MediaType(c MediaTypeClassifier) *TopLevelBuilder {
	b.mediaType = c
	return b
}

// Authority configures the authority sub-classifier.
func (b *TopLevelBuilder) Authority(c AuthorityClassifier) *TopLevelBuilder {
	b.authority = c
	return b
}

// AllowPathGlobs configures the positive path-glob set.
func (b *TopLevelBuilder) AllowPathGlobs(globs ...string) *TopLevelBuilder {
	b.positiveGlobs = append(b.positiveGlobs, globs...)
	return b
}

// DenyPathGlobs configures the negative path-glob set.
func (b *TopLevelBuilder) DenyPathGlobs(globs ...string) *TopLevelBuilder {
	b.negativeGlobs = append(b.negativeGlobs, globs...)
	return b
}

// Query configures the query sub-classifier.
func (b *TopLevelBuilder) Query(c QueryClassifier) *TopLevelBuilder {
	b.query = c
	return b
}

// Fragment configures the fragment sub-classifier.
func (b *TopLevelBuilder) Fragment(c FragmentClassifier) *TopLevelBuilder {
	b.fragment = c
	return b
}

// Content configures the content sub-classifier.
func (b *TopLevelBuilder) Content(c ContentClassifier) *TopLevelBuilder {
	b.content = c
	return b
}

// AllowNULs permits an embedded NUL in the original URL text or a decoded
// path (default: deny).
func (b *TopLevelBuilder) AllowNULs() *TopLevelBuilder {
	b.allowNULs = true
	return b
}

// AllowRootParent permits path simplification to reach root's parent
// (default: deny).
func (b *TopLevelBuilder) AllowRootParent() *TopLevelBuilder {
	b.allowRootParent = true
	return b
}

// TolerateCornerCases configures the set of corner cases that do not cause
// an Invalid verdict.
func (b *TopLevelBuilder) TolerateCornerCases(ccs ...urlvalue.CornerCase) *TopLevelBuilder {
	if b.tolerated == nil {
		b.tolerated = make(map[urlvalue.CornerCase]struct{}, len(ccs))
	}
	for _, cc := range ccs {
		b.tolerated[cc] = struct{}{}
	}
	return b
}

// Build compiles the configured path-globs and returns the URLClassifier.
// A malformed path-glob is an eager error.
func (b *TopLevelBuilder) Build() (URLClassifier, error) {
	t := &topLevelClassifier{
		allowedSchemes:  b.allowedSchemes,
		mediaType:       b.mediaType,
		authority:       b.authority,
		query:           b.query,
		fragment:        b.fragment,
		content:         b.content,
		allowNULs:       b.allowNULs,
		allowRootParent: b.allowRootParent,
	}
	if b.tolerated != nil {
		t.tolerated = urlvalue.CornerCaseSet(make(map[urlvalue.CornerCase]struct{}, len(b.tolerated)))
		for cc := range b.tolerated {
			t.tolerated[cc] = struct{}{}
		}
	}
	for _, g := range b.positiveGlobs {
		re, err := pathglob.Compile(g)
		if err != nil {
			return nil, newParseError(&kindError{component: "top-level", message: "invalid positive path glob", detail: g})
		}
		t.positiveGlobs = append(t.positiveGlobs, re)
	}
	for _, g := range b.negativeGlobs {
		re, err := pathglob.Compile(g)
		if err != nil {
			return nil, newParseError(&kindError{component: "top-level", message: "invalid negative path glob", detail: g})
		}
		t.negativeGlobs = append(t.negativeGlobs, re)
	}
	return t, nil
}
