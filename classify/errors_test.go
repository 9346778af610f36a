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
	"errors"
	"fmt"
	"testing"
)

func TestKindErrorString(t *testing.T) {
	err := &kindError{component: "authority", message: "not a valid IPv4 literal", detail: "not-an-ip"}
	want := "classify: authority: not a valid IPv4 literal: not-an-ip"
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
		inner := &kindError{component: "authority", message: "not a valid IPv4 literal", detail: "not-an-ip"}
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
