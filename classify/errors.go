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

import "errors"

// kindError is the internal, richer error describing one structurally
// invalid builder option: which component rejected it, what was wrong, and
// the offending value.
type kindError struct {
	component string
	message   string
	detail    string
}

func (e *kindError) Error() string {
	return "classify: " + e.component + ": " + e.message + ": " + e.detail
}

// ParseError is returned by a builder's Build method when it was configured
// with a structurally invalid option: misconfiguration is an eager error
// raised at build time, not at evaluation time. Err unwraps to whatever the
// underlying kindError itself wrapped, if anything.
type ParseError struct {
	Message string
	Err     error
}

func (e *ParseError) Error() string { return e.Message }

func (e *ParseError) Unwrap() error { return e.Err }

// newParseError wraps err as a ParseError, returning nil for a nil err.
func newParseError(err error) *ParseError {
	if err == nil {
		return nil
	}
	return &ParseError{Message: err.Error(), Err: errors.Unwrap(err)}
}
