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
	"strings"

	"github.com/triclass/urlclassifier/pctencode"
)

// dotSegmentState accumulates the two corner-case observations that can
// occur during removeDotSegments, in addition to the normalized path.
type dotSegmentState struct {
	reachedRootsParent       bool
	relativeMergedToAbsolute bool
}

// applyDotSegmentRules handles rules 2A-2D of RFC 3986, Section 5.2.4. It
// modifies the input path `in` and output buffer `output` if a rule is
// matched, and records the relative-merged-to-absolute deviation in st when
// applicable.
func applyDotSegmentRules(in string, output []string, st *dotSegmentState) (string, []string, bool) {
	// Rule 2A: "../" or "./"
	if strings.HasPrefix(in, "../") {
		return in[3:], output, true
	}
	if strings.HasPrefix(in, "./") {
		return in[2:], output, true
	}
	// Rule 2B: "/./" or "/."
	if strings.HasPrefix(in, "/./") {
		return "/" + in[3:], output, true
	}
	if in == "/." {
		return "/", output, true
	}
	// Rule 2C: "/../" or "/.."
	if strings.HasPrefix(in, "/../") || in == "/.." {
		newIn := "/"
		if len(in) > len("/..") {
			newIn += in[4:]
		}
		if len(output) > 0 {
			lastSegment := output[len(output)-1]
			output = output[:len(output)-1]

			if len(output) == 0 && !strings.HasPrefix(lastSegment, "/") {
				// Deviation from RFC 3986 §5.2.4: the ".." would have
				// synthesized a leading "/" on what was, until now, a
				// relative path. Elide it instead of letting the relative
				// reference become absolute-looking.
				newIn = strings.TrimPrefix(newIn, "/")
				st.relativeMergedToAbsolute = true
			}
		} else {
			// Nothing to pop: the ".." is trying to navigate above the root.
			st.reachedRootsParent = true
		}
		return newIn, output, true
	}
	// Rule 2D: "." or ".."
	if in == "." || in == ".." {
		if in == ".." && len(output) == 0 {
			st.reachedRootsParent = true
		}
		return "", output, true
	}
	return in, output, false
}

// extractFirstSegment handles rule 2E of RFC 3986, Section 5.2.4.
func extractFirstSegment(in string) (string, string) {
	slashIndex := strings.Index(in, "/")
	if slashIndex == 0 {
		nextSlash := strings.Index(in[1:], "/")
		if nextSlash == -1 {
			return in, ""
		}
		return in[:nextSlash+1], in[nextSlash+1:]
	}
	if slashIndex == -1 {
		return in, ""
	}
	return in[:slashIndex], in[slashIndex:]
}

// removeDotSegments implements the "Remove Dot Segments" algorithm from RFC
// 3986, Section 5.2.4, with a deviation for relative paths whose ".." would
// otherwise synthesize a leading "/".
func removeDotSegments(input string) (result string, reachedRootsParent bool, relativeMergedToAbsolute bool) {
	var output []string
	in := input
	st := &dotSegmentState{}

	for len(in) > 0 {
		var ruleApplied bool
		in, output, ruleApplied = applyDotSegmentRules(in, output, st)
		if ruleApplied {
			continue
		}
		segment, remainder := extractFirstSegment(in)
		in = remainder
		output = append(output, segment)
	}

	return strings.Join(output, ""), st.reachedRootsParent, st.relativeMergedToAbsolute
}

// resolvePath resolves a relative path against a base path according to RFC
// 3986, Section 5.2.2: merge (strip the base's trailing segment, append the
// reference's path) then normalize.
func resolvePath(basePath, relPath string) (string, bool, bool) {
	lastSlash := strings.LastIndex(basePath, "/")
	if lastSlash == -1 {
		return removeDotSegments(relPath)
	}
	return removeDotSegments(basePath[:lastSlash+1] + relPath)
}

// fixupEncodedDots scans a path's segments for one containing an encoded
// dot ("%2E"/"%2e") that, once percent-decoded, equals "." or "..". It
// reports whether any such segment was found; in the default (non-rewriting)
// mode it never mutates the path.
func fixupEncodedDots(path string) (found bool) {
	start := 0
	for start <= len(path) {
		end := strings.IndexByte(path[start:], '/')
		var segment string
		if end == -1 {
			segment = path[start:]
		} else {
			segment = path[start : start+end]
		}
		if containsEncodedDot(segment) {
			if decoded, ok := pctencode.Decode(segment, 0, len(segment), false, true); ok {
				if decoded == "." || decoded == ".." {
					found = true
				}
			}
		}
		if end == -1 {
			break
		}
		start += end + 1
	}
	return found
}

func containsEncodedDot(segment string) bool {
	for i := 0; i+2 < len(segment); i++ {
		if segment[i] == '%' && segment[i+1] == '2' && (segment[i+2] == 'E' || segment[i+2] == 'e') {
			return true
		}
	}
	return false
}
