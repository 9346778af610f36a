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

// Package scheme models the pluggable, per-scheme structural descriptors
// that the resolver and classifier consult to know whether a reference is
// hierarchical, which structural parts it naturally carries, and how to
// decompose and recompose its scheme-specific part.
package scheme

import "strings"

// Parts is a bitset over the structural parts a scheme may naturally carry.
type Parts uint8

const (
	// Authority marks a scheme that naturally carries a "//authority" part.
	Authority Parts = 1 << iota
	// Path marks a scheme whose scheme-specific part is a hierarchical path.
	Path
	// Query marks a scheme that naturally carries a "?query" part.
	Query
	// Content marks a scheme whose scheme-specific part is opaque content
	// rather than a hierarchical path (e.g. "data:", "mailto:").
	Content
)

// Has reports whether p includes all bits of other.
func (p Parts) Has(other Parts) bool { return p&other == other }

// NoDefaultPort is the sentinel used when a scheme has no default port.
const NoDefaultPort = -1

// Scheme is an immutable structural descriptor for one URL scheme.
//
// Name is the canonical lowercase scheme name. Hierarchical schemes parse
// their scheme-specific part as "//authority/path?query"; non-hierarchical
// schemes parse it as opaque "content#fragment".
type Scheme struct {
	Name            string
	Hierarchical    bool
	DefaultPort     int
	NaturalParts    Parts
	// DataLikeContent indicates the scheme splits its content into a leading
	// metadata segment and a payload segment at the first unescaped comma,
	// the way "data:" does (RFC 2397). Only meaningful when !Hierarchical.
	DataLikeContent bool
}

// HasAuthority reports whether the scheme naturally carries an authority.
func (s *Scheme) HasAuthority() bool { return s.NaturalParts.Has(Authority) }

// HasPath reports whether the scheme naturally carries a hierarchical path.
func (s *Scheme) HasPath() bool { return s.NaturalParts.Has(Path) }

// HasQuery reports whether the scheme naturally carries a query.
func (s *Scheme) HasQuery() bool { return s.NaturalParts.Has(Query) }

// HasContent reports whether the scheme naturally carries opaque content.
func (s *Scheme) HasContent() bool { return s.NaturalParts.Has(Content) }

// Unknown is the sentinel scheme used for references whose scheme is not
// registered: hierarchical, carries authority/path/query, and has no
// default port — the generic RFC 3986 shape.
var Unknown = &Scheme{
	Name:         "",
	Hierarchical: true,
	DefaultPort:  NoDefaultPort,
	NaturalParts: Authority | Path | Query,
}

// normalizeName lower-cases a scheme name the way every comparison in this
// package expects; scheme names are case-insensitive per RFC 3986 §3.1.
func normalizeName(name string) string {
	return strings.ToLower(name)
}
