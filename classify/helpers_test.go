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

// stubURLClassifier is a test double recording the last URL it classified.
type stubURLClassifier struct {
	result   Classification
	lastText string
}

func (s *stubURLClassifier) Apply(v *urlvalue.URLValue, _ Receiver) Classification {
	s.lastText = v.OriginalText()
	return s.result
}

// stubAuthorityClassifier always returns a fixed verdict.
type stubAuthorityClassifier struct{ result Classification }

func (s stubAuthorityClassifier) Apply(*urlvalue.URLValue, Receiver) Classification {
	return s.result
}

// stubQueryClassifier always returns a fixed verdict.
type stubQueryClassifier struct{ result Classification }

func (s stubQueryClassifier) Apply(string, bool, Receiver) Classification { return s.result }

// stubFragmentClassifier always returns a fixed verdict.
type stubFragmentClassifier struct{ result Classification }

func (s stubFragmentClassifier) Apply(string, bool, Receiver) Classification { return s.result }
