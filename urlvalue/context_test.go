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
	"errors"
	"fmt"
	"testing"
)

func TestNewContextRejectsMissingScheme(t *testing.T) {
	if _, err := NewContext(nil, "/no/scheme"); err == nil {
		t.Errorf("NewContext(%q) error = nil, want error", "/no/scheme")
	}
}

func TestNewContextRejectsRelativeHierarchicalBase(t *testing.T) {
	if _, err := NewContext(nil, "http:a/b"); err == nil {
		t.Errorf("NewContext(%q) error = nil, want error", "http:a/b")
	}
}

func TestNewContextAcceptsNonHierarchicalBase(t *testing.T) {
	if _, err := NewContext(nil, "urn:example:a"); err != nil {
		t.Errorf("NewContext(%q) error = %v, want nil", "urn:example:a", err)
	}
}

func TestNewDefaultContext(t *testing.T) {
	ctx := NewDefaultContext(nil)
	if ctx.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", ctx.BaseURL(), DefaultBaseURL)
	}
}

func TestKindErrorMessage(t *testing.T) {
	err := &kindError{message: "bad base", input: "nope"}
	want := "urlvalue: bad base: nope"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestNewParseError(t *testing.T) {
	t.Run("nil error", func(t *testing.T) {
		if err := newParseError(nil); err != nil {
			t.Errorf("newParseError(nil) = %v, want nil", err)
		}
	})

	t.Run("wraps a kindError", func(t *testing.T) {
		inner := &kindError{message: "bad base", input: "nope"}
		err := newParseError(inner)
		if err.Message != inner.Error() {
			t.Errorf("Message = %q, want %q", err.Message, inner.Error())
		}
		if err.Err != nil {
			t.Errorf("Err = %v, want nil (kindError has no further cause to unwrap)", err.Err)
		}
	})

	t.Run("unwraps a chained error", func(t *testing.T) {
		cause := errors.New("root cause")
		wrapped := fmt.Errorf("context: %w", cause)
		err := newParseError(wrapped)
		if !errors.Is(err, cause) {
			t.Errorf("errors.Is(err, cause) = false, want true")
		}
	})
}
