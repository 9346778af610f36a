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
	"github.com/triclass/urlclassifier/pctencode"
	"github.com/triclass/urlclassifier/urlvalue"
)

// FragmentClassifier applies the fragment rules to a resolved URL's raw
// fragment.
type FragmentClassifier interface {
	Apply(rawFragment string, hasFragment bool, diag Receiver) Classification
}

type fragmentClassifier struct {
	predicate     func(*string) bool
	asRelativeURL URLClassifier
}

// Apply evaluates the disjunction of the fragment predicate and, when
// configured, re-classifying the fragment's content as a relative URL
// against the default context.
func (f *fragmentClassifier) Apply(rawFragment string, hasFragment bool, diag Receiver) Classification {
	var decoded string
	var present *string
	if hasFragment {
		d, ok := pctencode.Decode(rawFragment, 0, len(rawFragment), false, false)
		if !ok {
			diag.Note("fragment percent-decode failed", rawFragment)
			return Invalid
		}
		decoded = d
		withHash := "#" + d
		present = &withHash
	}

	result := NotAMatch
	if f.predicate != nil && f.predicate(present) {
		result = Match
	}

	if f.asRelativeURL != nil && hasFragment {
		v := urlvalue.Resolve(urlvalue.NewDefaultContext(nil), decoded)
		c := f.asRelativeURL.Apply(v, diag)
		if c == Invalid {
			return Invalid
		}
		if c == Match {
			result = Match
		}
	}
	return result
}

// FragmentBuilder configures a FragmentClassifier.
type FragmentBuilder struct {
	predicate     func(*string) bool
	asRelativeURL URLClassifier
}

// NewFragmentBuilder returns an empty FragmentBuilder.
func NewFragmentBuilder() *FragmentBuilder {
	return &FragmentBuilder{}
}

// Predicate configures the predicate over the optional, '#'-prefixed
// fragment string; nil is passed for an absent fragment.
func (b *FragmentBuilder) Predicate(p func(*string) bool) *FragmentBuilder {
	b.predicate = p
	return b
}

// AsRelativeURL configures the sub-classifier the fragment's content (minus
// its leading '#') is re-classified against, resolved as a relative
// reference against the default context.
func (b *FragmentBuilder) AsRelativeURL(c URLClassifier) *FragmentBuilder {
	b.asRelativeURL = c
	return b
}

// Build returns the configured FragmentClassifier.
func (b *FragmentBuilder) Build() (FragmentClassifier, error) {
	return &fragmentClassifier{predicate: b.predicate, asRelativeURL: b.asRelativeURL}, nil
}
