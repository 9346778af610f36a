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
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"

	"github.com/triclass/urlclassifier/pctencode"
	"github.com/triclass/urlclassifier/scheme"
)

func lowerASCII(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if 'A' <= c && c <= 'Z' {
			c += 'a' - 'A'
		}
		b.WriteByte(c)
	}
	return b.String()
}

// normalizeComponent applies RFC 3986 §6.2.2.2 percent-encoding
// normalization and folds the result to NFC, mirroring iri.Ref.Normalize.
func normalizeComponent(s string) string {
	return norm.NFC.String(pctencode.NormalizeEncoding(s))
}

// normalizeAuthorityCase lowercases the host portion of an authority and,
// for a non-bracketed (non-IPv6) host, folds it through IDNA to its
// canonical Unicode form. Userinfo is left as-is: RFC 3986 treats it as
// case-sensitive. A port equal to sch's default port is dropped, mirroring
// iri/autority.go's normalizeHostAndPort.
func normalizeAuthorityCase(authority string, sch *scheme.Scheme) string {
	userinfo, hostport := splitUserinfo(authority)
	host, port := splitHostPort(hostport)

	lowered := lowerASCII(host)
	if !strings.HasPrefix(lowered, "[") {
		if ascii, err := idna.ToASCII(lowered); err == nil {
			if uni, err := idna.ToUnicode(ascii); err == nil {
				lowered = uni
			}
		}
	}

	if port != "" && sch.DefaultPort != scheme.NoDefaultPort {
		if n, err := strconv.Atoi(port); err == nil && n == sch.DefaultPort {
			port = ""
		}
	}

	var b strings.Builder
	if userinfo != "" {
		b.WriteString(userinfo)
		b.WriteByte('@')
	}
	b.WriteString(lowered)
	if port != "" {
		b.WriteByte(':')
		b.WriteString(port)
	}
	return b.String()
}

func splitUserinfo(authority string) (userinfo, hostport string) {
	if at := strings.LastIndex(authority, "@"); at != -1 {
		return authority[:at], authority[at+1:]
	}
	return "", authority
}

func splitHostPort(hostport string) (host, port string) {
	if strings.HasPrefix(hostport, "[") {
		if end := strings.LastIndex(hostport, "]"); end != -1 {
			if len(hostport) > end+1 && hostport[end+1] == ':' {
				return hostport[:end+1], hostport[end+2:]
			}
			return hostport[:end+1], ""
		}
		return hostport, ""
	}
	if colon := strings.LastIndex(hostport, ":"); colon != -1 {
		return hostport[:colon], hostport[colon+1:]
	}
	return hostport, ""
}
