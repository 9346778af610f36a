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

// Package hostglob implements a host-glob matcher, grouping globs into a
// handful of suffix tries keyed by their wildcard shape.
package hostglob

import (
	"errors"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// HostGlob is one compiled glob pattern: an optional ancestor-label
// wildcard (anySubdomain/aSubdomain, mutually exclusive), an optional
// trailing any-public-suffix wildcard, and the literal label run between
// them.
type HostGlob struct {
	anySubdomain    bool
	aSubdomain      bool
	anyPublicSuffix bool
	middleParts     []string // left-to-right, as in the domain name
}

// ErrMatchAnyHost is returned by Parse for the literal glob "**", which
// does not compile to a HostGlob: it sets the authority classifier's
// matchAnyHost flag instead.
var ErrMatchAnyHost = errors.New("hostglob: \"**\" matches any host and has no HostGlob form")

// ErrEmptyLabel is returned when a glob contains a "." with nothing, or
// only a wildcard marker, on one side.
var ErrEmptyLabel = errors.New("hostglob: empty label in glob")

// Parse compiles one glob pattern. Labels are IDNA-normalized (ToASCII
// then ToUnicode, enforcing STD3 ASCII rules) and NFC-folded the same way
// a matched host's labels are, so trie comparison is exact-string-equal
// regardless of either side's original Unicode normalization form.
func Parse(glob string) (*HostGlob, error) {
	if glob == "**" {
		return nil, ErrMatchAnyHost
	}

	s := glob
	g := &HostGlob{}

	switch {
	case strings.HasPrefix(s, "**."):
		g.anySubdomain = true
		s = s[3:]
	case strings.HasPrefix(s, "*."):
		g.aSubdomain = true
		s = s[2:]
	}

	if strings.HasSuffix(s, ".*") {
		g.anyPublicSuffix = true
		s = s[:len(s)-2]
	}

	if s == "" {
		g.middleParts = nil
		return g, nil
	}

	for _, label := range strings.Split(s, ".") {
		if label == "" {
			return nil, ErrEmptyLabel
		}
		normalized, err := normalizeLabel(label)
		if err != nil {
			return nil, err
		}
		g.middleParts = append(g.middleParts, normalized)
	}
	return g, nil
}

func normalizeLabel(label string) (string, error) {
	lowered := strings.ToLower(label)
	ascii, err := idna.Lookup.ToASCII(lowered)
	if err != nil {
		return "", err
	}
	uni, err := idna.ToUnicode(ascii)
	if err != nil {
		return "", err
	}
	return norm.NFC.String(uni), nil
}

// groupKey is the 3-bit (anyPublicSuffix, anySubdomain, aSubdomain) key
// used to bucket globs sharing a trie.
func (g *HostGlob) groupKey() uint8 {
	var k uint8
	if g.anyPublicSuffix {
		k |= 1 << 2
	}
	if g.anySubdomain {
		k |= 1 << 1
	}
	if g.aSubdomain {
		k |= 1 << 0
	}
	return k
}
