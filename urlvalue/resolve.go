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
	"strings"

	"github.com/triclass/urlclassifier/scheme"
)

// endOfScheme detects whether ref is an absolute reference (carries its own
// scheme): the first ':' that occurs before any '/', '?', or '#' and not at
// position 0.
func endOfScheme(ref string) (schemeName, rest string, ok bool) {
	for i := 0; i < len(ref); i++ {
		switch ref[i] {
		case '/', '?', '#':
			return "", ref, false
		case ':':
			if i == 0 {
				return "", ref, false
			}
			return ref[:i], ref[i+1:], true
		}
	}
	return "", ref, false
}

// mergedParts is the scratch struct the merge algorithm fills in before the
// final text is recomposed: a struct of optionals, not a class hierarchy.
type mergedParts struct {
	hasAuthority         bool
	authority            string
	path                 string // hierarchical schemes
	content, contentMeta string // non-hierarchical schemes
	hasContentMeta       bool
	hasQuery             bool
	query                string
	hasFragment          bool
	fragment             string
}

// absolutize parses originalText (possibly relative) against c's base,
// producing an absolute urlText plus its PartRanges and any corner cases
// observed along the way.
func (c *Context) absolutize(originalText string) (urlText string, finalScheme *scheme.Scheme, finalRanges *scheme.PartRanges, cc CornerCaseSet, reachedRootsParent bool) {
	ccb := &cornerCaseBuilder{}
	refSchemeName, rest, hasOwnScheme := endOfScheme(originalText)

	var m mergedParts
	var sch *scheme.Scheme

	if hasOwnScheme {
		// Case A: absolute reference.
		sch, _ = c.registry.Lookup(refSchemeName)
		refRanges := scheme.Decompose(sch, rest, 0, len(rest))

		m.hasAuthority = refRanges.HasAuthority()
		if m.hasAuthority {
			m.authority = rest[refRanges.AuthorityLeft:refRanges.AuthorityRight]
		}
		m.hasQuery = refRanges.HasQuery()
		if m.hasQuery {
			m.query = rest[refRanges.QueryLeft:refRanges.QueryRight]
		}
		m.hasFragment = refRanges.HasFragment()
		if m.hasFragment {
			m.fragment = rest[refRanges.FragmentLeft:refRanges.FragmentRight]
		}

		if sch.Hierarchical {
			rawPath := ""
			if refRanges.HasPath() {
				rawPath = rest[refRanges.PathLeft:refRanges.PathRight]
			}
			if fixupEncodedDots(rawPath) {
				ccb.add(EncodedDotPathSegment)
			}
			normPath, reached, relMerged := removeDotSegments(rawPath)
			if reached {
				reachedRootsParent = true
			}
			if relMerged {
				ccb.add(RelativeURLMergedToAbsolute)
			}
			m.path = normPath
		} else {
			if refRanges.HasContent() {
				m.content = rest[refRanges.ContentLeft:refRanges.ContentRight]
			}
			m.hasContentMeta = refRanges.HasContentMeta()
			if m.hasContentMeta {
				m.contentMeta = rest[refRanges.ContentMetaLeft:refRanges.ContentMetaRight]
			}
		}
	} else {
		// Case B: relative reference, resolved against the base.
		sch = c.baseScheme
		refRanges := scheme.Decompose(sch, originalText, 0, len(originalText))

		baseHasAuthority := c.baseRanges.HasAuthority()
		var baseAuthority string
		if baseHasAuthority {
			baseAuthority = c.baseText[c.baseRanges.AuthorityLeft:c.baseRanges.AuthorityRight]
		}

		if refRanges.HasAuthority() {
			m.hasAuthority = true
			m.authority = originalText[refRanges.AuthorityLeft:refRanges.AuthorityRight]
			m.hasQuery = refRanges.HasQuery()
			if m.hasQuery {
				m.query = originalText[refRanges.QueryLeft:refRanges.QueryRight]
			}
			if sch.Hierarchical {
				rawPath := ""
				if refRanges.HasPath() {
					rawPath = originalText[refRanges.PathLeft:refRanges.PathRight]
				}
				if fixupEncodedDots(rawPath) {
					ccb.add(EncodedDotPathSegment)
				}
				normPath, reached, relMerged := removeDotSegments(rawPath)
				if reached {
					reachedRootsParent = true
				}
				if relMerged {
					ccb.add(RelativeURLMergedToAbsolute)
				}
				m.path = normPath
			} else if refRanges.HasContent() {
				m.content = originalText[refRanges.ContentLeft:refRanges.ContentRight]
				m.hasContentMeta = refRanges.HasContentMeta()
				if m.hasContentMeta {
					m.contentMeta = originalText[refRanges.ContentMetaLeft:refRanges.ContentMetaRight]
				}
			}
		} else {
			m.hasAuthority = baseHasAuthority
			m.authority = baseAuthority

			if sch.Hierarchical {
				refPath := ""
				if refRanges.HasPath() {
					refPath = originalText[refRanges.PathLeft:refRanges.PathRight]
				}
				basePath := c.baseText[c.baseRanges.PathLeft:c.baseRanges.PathRight]

				if refPath == "" {
					m.path = basePath
					if refRanges.HasQuery() {
						m.hasQuery = true
						m.query = originalText[refRanges.QueryLeft:refRanges.QueryRight]
					} else if c.baseRanges.HasQuery() {
						m.hasQuery = true
						m.query = c.baseText[c.baseRanges.QueryLeft:c.baseRanges.QueryRight]
					}
				} else {
					if fixupEncodedDots(refPath) {
						ccb.add(EncodedDotPathSegment)
					}
					var normPath string
					var reached, relMerged bool
					if strings.HasPrefix(refPath, "/") {
						normPath, reached, relMerged = removeDotSegments(refPath)
					} else {
						mergeBase := basePath
						if mergeBase == "" && baseHasAuthority {
							mergeBase = "/"
						}
						normPath, reached, relMerged = resolvePath(mergeBase, refPath)
					}
					if reached {
						reachedRootsParent = true
					}
					if relMerged {
						ccb.add(RelativeURLMergedToAbsolute)
					}
					m.path = normPath
					m.hasQuery = refRanges.HasQuery()
					if m.hasQuery {
						m.query = originalText[refRanges.QueryLeft:refRanges.QueryRight]
					}
				}
			} else {
				if refRanges.HasContent() {
					m.content = originalText[refRanges.ContentLeft:refRanges.ContentRight]
					m.hasContentMeta = refRanges.HasContentMeta()
					if m.hasContentMeta {
						m.contentMeta = originalText[refRanges.ContentMetaLeft:refRanges.ContentMetaRight]
					}
					m.hasQuery = refRanges.HasQuery()
					if m.hasQuery {
						m.query = originalText[refRanges.QueryLeft:refRanges.QueryRight]
					}
				} else {
					m.content = c.baseText[c.baseRanges.ContentLeft:c.baseRanges.ContentRight]
					m.hasContentMeta = c.baseRanges.HasContentMeta()
					if m.hasContentMeta {
						m.contentMeta = c.baseText[c.baseRanges.ContentMetaLeft:c.baseRanges.ContentMetaRight]
					}
					if refRanges.HasQuery() {
						m.hasQuery = true
						m.query = originalText[refRanges.QueryLeft:refRanges.QueryRight]
					} else if c.baseRanges.HasQuery() {
						m.hasQuery = true
						m.query = c.baseText[c.baseRanges.QueryLeft:c.baseRanges.QueryRight]
					}
				}
			}
		}

		m.hasFragment = refRanges.HasFragment()
		if m.hasFragment {
			m.fragment = originalText[refRanges.FragmentLeft:refRanges.FragmentRight]
		}
		// Take the name from the base text: an unregistered base scheme
		// maps to scheme.Unknown, whose Name is empty.
		refSchemeName, _, _ = endOfScheme(c.baseText)
	}

	if sch.Hierarchical && !m.hasAuthority && strings.HasPrefix(m.path, "//") {
		ccb.add(PathAuthorityAmbiguity)
	}

	urlText = composeFinalText(sch, refSchemeName, m)
	finalRanges = scheme.Decompose(sch, urlText, len(refSchemeName)+1, len(urlText))
	return urlText, sch, finalRanges, ccb.build(), reachedRootsParent
}

// composeFinalText reassembles the resolved parts into the final URL text,
// delegating the scheme-specific ambiguity-safe serialization to
// scheme.Recompose so the authority/path escaping logic lives in one place.
func composeFinalText(sch *scheme.Scheme, schemeName string, m mergedParts) string {
	var partsSource strings.Builder
	ranges := &scheme.PartRanges{
		AuthorityLeft: scheme.Absent, PathLeft: scheme.Absent, QueryLeft: scheme.Absent,
		FragmentLeft: scheme.Absent, ContentLeft: scheme.Absent, ContentMetaLeft: scheme.Absent,
	}

	if m.hasAuthority {
		ranges.AuthorityLeft = partsSource.Len()
		partsSource.WriteString(m.authority)
		ranges.AuthorityRight = partsSource.Len()
	}
	if sch.Hierarchical {
		ranges.PathLeft = partsSource.Len()
		partsSource.WriteString(m.path)
		ranges.PathRight = partsSource.Len()
	} else {
		if m.hasContentMeta {
			ranges.ContentMetaLeft = partsSource.Len()
			partsSource.WriteString(m.contentMeta)
			ranges.ContentMetaRight = partsSource.Len()
		}
		ranges.ContentLeft = partsSource.Len()
		partsSource.WriteString(m.content)
		ranges.ContentRight = partsSource.Len()
	}
	if m.hasQuery {
		ranges.QueryLeft = partsSource.Len()
		partsSource.WriteString(m.query)
		ranges.QueryRight = partsSource.Len()
	}
	if m.hasFragment {
		ranges.FragmentLeft = partsSource.Len()
		partsSource.WriteString(m.fragment)
		ranges.FragmentRight = partsSource.Len()
	}

	var out strings.Builder
	out.WriteString(schemeName)
	out.WriteByte(':')
	scheme.Recompose(sch, partsSource.String(), ranges, &out)
	return out.String()
}
