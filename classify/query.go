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
	"strings"

	"github.com/triclass/urlclassifier/pctencode"
)

// QueryClassifier applies the query rules to a resolved URL's raw query
// string.
type QueryClassifier interface {
	Apply(rawQuery string, hasQuery bool, diag Receiver) Classification
}

type queryClassifier struct {
	mayKeySet       map[string]struct{}
	mayKeyPredicate func(string) bool
	onceKeySet      map[string]struct{}
	oncePredicate   func(string) bool
	mustKeys        []string
	valuePredicates map[string]func(string) bool
}

// Apply traverses the decoded key/value pairs of the query string,
// checking each against the configured allow-set, repeat policy, and value
// predicates.
func (q *queryClassifier) Apply(rawQuery string, hasQuery bool, diag Receiver) Classification {
	present := make(map[string]struct{})
	seen := make(map[string]struct{})

	if hasQuery {
		query := strings.TrimPrefix(rawQuery, "?")
		for _, pair := range strings.Split(query, "&") {
			if pair == "" {
				continue
			}
			rawKey, rawVal, hasVal := pair, "", false
			if i := strings.IndexByte(pair, '='); i >= 0 {
				rawKey, rawVal, hasVal = pair[:i], pair[i+1:], true
			}

			key, ok := pctencode.Decode(rawKey, 0, len(rawKey), true, false)
			if !ok {
				diag.Note("query key percent-decode failed", rawKey)
				return Invalid
			}
			var value string
			if hasVal {
				value, ok = pctencode.Decode(rawVal, 0, len(rawVal), true, false)
				if !ok {
					diag.Note("query value percent-decode failed", rawVal)
					return Invalid
				}
			}
			present[key] = struct{}{}

			if !q.keyAllowed(key) {
				diag.Note("query key not allowed", key)
				return NotAMatch
			}
			if _, already := seen[key]; already && q.repeatForbidden(key) {
				diag.Note("query key repeated", key)
				return NotAMatch
			}
			seen[key] = struct{}{}

			if p, ok := q.valuePredicates[key]; ok && !p(value) {
				diag.Note("query value rejected", key)
				return NotAMatch
			}
		}
	}

	for _, k := range q.mustKeys {
		if _, ok := present[k]; !ok {
			diag.Note("required query key missing", k)
			return NotAMatch
		}
	}
	return Match
}

func (q *queryClassifier) keyAllowed(key string) bool {
	if q.mayKeySet == nil && q.mayKeyPredicate == nil {
		return true
	}
	if q.mayKeySet != nil {
		if _, ok := q.mayKeySet[key]; ok {
			return true
		}
	}
	return q.mayKeyPredicate != nil && q.mayKeyPredicate(key)
}

func (q *queryClassifier) repeatForbidden(key string) bool {
	if q.onceKeySet != nil {
		if _, ok := q.onceKeySet[key]; ok {
			return true
		}
	}
	return q.oncePredicate != nil && q.oncePredicate(key)
}

// QueryBuilder configures a QueryClassifier.
type QueryBuilder struct {
	mayKeySet       map[string]struct{}
	mayKeyPredicate func(string) bool
	onceKeySet      map[string]struct{}
	oncePredicate   func(string) bool
	mustKeys        []string
	valuePredicates map[string]func(string) bool
}

// NewQueryBuilder returns an empty QueryBuilder.
func NewQueryBuilder() *QueryBuilder {
	return &QueryBuilder{}
}

// MayHaveKeys configures the key allow-set.
func (b *QueryBuilder) MayHaveKeys(keys ...string) *QueryBuilder {
	if b.mayKeySet == nil {
		b.mayKeySet = make(map[string]struct{}, len(keys))
	}
	for _, k := range keys {
		b.mayKeySet[k] = struct{}{}
	}
	return b
}

// MayHaveKeysMatching configures the key predicate; it unions with any
// configured allow-set rather than replacing it.
func (b *QueryBuilder) MayHaveKeysMatching(p func(string) bool) *QueryBuilder {
	b.mayKeyPredicate = p
	return b
}

// MayNotRepeatKeys configures the set of keys that may appear at most once.
func (b *QueryBuilder) MayNotRepeatKeys(keys ...string) *QueryBuilder {
	if b.onceKeySet == nil {
		b.onceKeySet = make(map[string]struct{}, len(keys))
	}
	for _, k := range keys {
		b.onceKeySet[k] = struct{}{}
	}
	return b
}

// MayNotRepeatKeysMatching configures a predicate selecting keys that may
// appear at most once.
func (b *QueryBuilder) MayNotRepeatKeysMatching(p func(string) bool) *QueryBuilder {
	b.oncePredicate = p
	return b
}

// MustHaveKeys configures keys that must appear at least once.
func (b *QueryBuilder) MustHaveKeys(keys ...string) *QueryBuilder {
	b.mustKeys = append(b.mustKeys, keys...)
	return b
}

// ValueMustMatch configures a predicate the decoded value of key must
// satisfy. Calling it more than once for the same key intersects the
// predicates (both must accept).
func (b *QueryBuilder) ValueMustMatch(key string, p func(string) bool) *QueryBuilder {
	if b.valuePredicates == nil {
		b.valuePredicates = make(map[string]func(string) bool)
	}
	if existing, ok := b.valuePredicates[key]; ok {
		b.valuePredicates[key] = func(v string) bool { return existing(v) && p(v) }
	} else {
		b.valuePredicates[key] = p
	}
	return b
}

// Build returns the configured QueryClassifier.
func (b *QueryBuilder) Build() (QueryClassifier, error) {
	return &queryClassifier{
		mayKeySet:       b.mayKeySet,
		mayKeyPredicate: b.mayKeyPredicate,
		onceKeySet:      b.onceKeySet,
		oncePredicate:   b.oncePredicate,
		mustKeys:        b.mustKeys,
		valuePredicates: b.valuePredicates,
	}, nil
}
