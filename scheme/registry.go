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

package scheme

// builtins lists the schemes compiled into every Registry. The hierarchical
// vs. opaque-content split and the no-authority scheme set mirror the
// "NoAuthority" list published by hueristiq/hq-go-url's schemes package
// (bitcoin, cid, file, magnet, mailto, mid, sms, tel, xmpp), restricted to
// the subset relevant to a classifier that must decompose/recompose parts.
// The one exception is "file", which is modelled here with an authority so
// that "file:///path" keeps its empty authority.
var builtins = []*Scheme{
	{Name: "http", Hierarchical: true, DefaultPort: 80, NaturalParts: Authority | Path | Query},
	{Name: "https", Hierarchical: true, DefaultPort: 443, NaturalParts: Authority | Path | Query},
	{Name: "ws", Hierarchical: true, DefaultPort: 80, NaturalParts: Authority | Path | Query},
	{Name: "wss", Hierarchical: true, DefaultPort: 443, NaturalParts: Authority | Path | Query},
	{Name: "ftp", Hierarchical: true, DefaultPort: 21, NaturalParts: Authority | Path | Query},
	{Name: "file", Hierarchical: true, DefaultPort: NoDefaultPort, NaturalParts: Authority | Path},
	{Name: "blob", Hierarchical: true, DefaultPort: NoDefaultPort, NaturalParts: Path},
	{Name: "data", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content, DataLikeContent: true},
	{Name: "javascript", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content},
	{Name: "mailto", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content | Query},
	{Name: "about", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content},
	{Name: "tel", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content},
	{Name: "sms", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content},
	{Name: "urn", Hierarchical: false, DefaultPort: NoDefaultPort, NaturalParts: Content},
}

// Registry maps lowercase scheme names to their Scheme descriptor. Registries
// are immutable once returned by NewRegistry/WithScheme; callers that want a
// custom scheme set call WithScheme to obtain a new, extended Registry.
type Registry struct {
	byName map[string]*Scheme
}

// NewRegistry returns a Registry pre-populated with the built-in schemes.
func NewRegistry() *Registry {
	r := &Registry{byName: make(map[string]*Scheme, len(builtins))}
	for _, s := range builtins {
		r.byName[s.Name] = s
	}
	return r
}

// WithScheme returns a new Registry identical to r but with s merged in by
// name (a user-supplied scheme with the same name as a built-in replaces
// it). r is left unmodified, preserving registry immutability after
// construction.
func (r *Registry) WithScheme(s *Scheme) *Registry {
	name := normalizeName(s.Name)
	next := &Registry{byName: make(map[string]*Scheme, len(r.byName)+1)}
	for k, v := range r.byName {
		next.byName[k] = v
	}
	merged := *s
	merged.Name = name
	next.byName[name] = &merged
	return next
}

// Lookup returns the Scheme registered under name (case-insensitively), or
// (Unknown, false) if no scheme is registered under that name.
func (r *Registry) Lookup(name string) (*Scheme, bool) {
	s, ok := r.byName[normalizeName(name)]
	if !ok {
		return Unknown, false
	}
	return s, true
}
