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

import "github.com/triclass/urlclassifier/urlvalue"

// evaluateOr implements the "or" evaluation rule shared by every combinator
// below: the first child Match wins immediately; an Invalid child keeps
// the running verdict at Invalid unless a later child still returns Match;
// otherwise the result is NotAMatch.
func evaluateOr(n int, at func(i int) Classification) Classification {
	result := Match
	for i := 0; i < n; i++ {
		switch at(i) {
		case Match:
			return Match
		case Invalid:
			result = Invalid
		}
	}
	if result == Invalid {
		return Invalid
	}
	return NotAMatch
}

// flatten splices any same-kind "or" operand's children into the result,
// preserving order.
func flatten[T any](operands []T, isOr func(T) ([]T, bool)) []T {
	out := make([]T, 0, len(operands))
	for _, o := range operands {
		if children, ok := isOr(o); ok {
			out = append(out, children...)
		} else {
			out = append(out, o)
		}
	}
	return out
}

// --- Authority ---

type orAuthority struct{ children []AuthorityClassifier }

func (o *orAuthority) Apply(v *urlvalue.URLValue, diag Receiver) Classification {
	return evaluateOr(len(o.children), func(i int) Classification { return o.children[i].Apply(v, diag) })
}

type authorityNever struct{}

func (authorityNever) Apply(*urlvalue.URLValue, Receiver) Classification { return NotAMatch }

// AuthorityOr combines authority classifiers with "or" semantics.
func AuthorityOr(operands ...AuthorityClassifier) AuthorityClassifier {
	flat := flatten(operands, func(c AuthorityClassifier) ([]AuthorityClassifier, bool) {
		o, ok := c.(*orAuthority)
		if !ok {
			return nil, false
		}
		return o.children, true
	})
	switch len(flat) {
	case 0:
		return authorityNever{}
	case 1:
		return flat[0]
	default:
		return &orAuthority{children: flat}
	}
}

// --- Query ---

type orQuery struct{ children []QueryClassifier }

func (o *orQuery) Apply(rawQuery string, hasQuery bool, diag Receiver) Classification {
	return evaluateOr(len(o.children), func(i int) Classification {
		return o.children[i].Apply(rawQuery, hasQuery, diag)
	})
}

type queryNever struct{}

func (queryNever) Apply(string, bool, Receiver) Classification { return NotAMatch }

// QueryOr combines query classifiers with "or" semantics.
func QueryOr(operands ...QueryClassifier) QueryClassifier {
	flat := flatten(operands, func(c QueryClassifier) ([]QueryClassifier, bool) {
		o, ok := c.(*orQuery)
		if !ok {
			return nil, false
		}
		return o.children, true
	})
	switch len(flat) {
	case 0:
		return queryNever{}
	case 1:
		return flat[0]
	default:
		return &orQuery{children: flat}
	}
}

// --- Fragment ---

type orFragment struct{ children []FragmentClassifier }

func (o *orFragment) Apply(rawFragment string, hasFragment bool, diag Receiver) Classification {
	return evaluateOr(len(o.children), func(i int) Classification {
		return o.children[i].Apply(rawFragment, hasFragment, diag)
	})
}

type fragmentNever struct{}

func (fragmentNever) Apply(string, bool, Receiver) Classification { return NotAMatch }

// FragmentOr combines fragment classifiers with "or" semantics.
func FragmentOr(operands ...FragmentClassifier) FragmentClassifier {
	flat := flatten(operands, func(c FragmentClassifier) ([]FragmentClassifier, bool) {
		o, ok := c.(*orFragment)
		if !ok {
			return nil, false
		}
		return o.children, true
	})
	switch len(flat) {
	case 0:
		return fragmentNever{}
	case 1:
		return flat[0]
	default:
		return &orFragment{children: flat}
	}
}

// --- Top-level URL ---

type orURL struct{ children []URLClassifier }

func (o *orURL) Apply(v *urlvalue.URLValue, diag Receiver) Classification {
	return evaluateOr(len(o.children), func(i int) Classification { return o.children[i].Apply(v, diag) })
}

type urlNever struct{}

func (urlNever) Apply(*urlvalue.URLValue, Receiver) Classification { return NotAMatch }

// URLOr combines top-level URL classifiers with "or" semantics.
func URLOr(operands ...URLClassifier) URLClassifier {
	flat := flatten(operands, func(c URLClassifier) ([]URLClassifier, bool) {
		o, ok := c.(*orURL)
		if !ok {
			return nil, false
		}
		return o.children, true
	})
	switch len(flat) {
	case 0:
		return urlNever{}
	case 1:
		return flat[0]
	default:
		return &orURL{children: flat}
	}
}
