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
	"net"
	"strconv"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/bidi"

	"github.com/triclass/urlclassifier/hostglob"
	"github.com/triclass/urlclassifier/internal/publicsuffix"
	"github.com/triclass/urlclassifier/pctencode"
	"github.com/triclass/urlclassifier/urlvalue"
)

// AuthorityClassifier applies the authority rules to a resolved URL's
// authority.
type AuthorityClassifier interface {
	Apply(v *urlvalue.URLValue, diag Receiver) Classification
}

type authorityClassifier struct {
	usernamePredicate func(string) bool
	ports             map[int]struct{}
	portPredicate     func(int) bool
	ipv4Set           map[string]struct{}
	ipv6Set           map[string]struct{}
	domainSet         map[string]struct{}
	hostGlobs         *hostglob.Matcher
	matchAnyHost      bool
}

// Apply runs the userinfo, host, and port checks in order, short-circuiting
// on the first structural failure.
func (a *authorityClassifier) Apply(v *urlvalue.URLValue, diag Receiver) Classification {
	auth, hasAuth := v.Authority()
	if !hasAuth {
		if v.NaturallyHasAuthority() {
			diag.Note("authority absent but scheme requires one", v.Scheme())
			return Invalid
		}
		return NotAMatch
	}

	userinfo, hostport, hasUserinfo := splitAtLastAt(auth)
	if strings.IndexByte(userinfo, ':') >= 0 {
		diag.Note("password present in userinfo", userinfo)
		return Invalid
	}

	result := Match

	if hasUserinfo {
		username, ok := pctencode.Decode(userinfo, 0, len(userinfo), false, false)
		if !ok {
			diag.Note("userinfo percent-decode failed", userinfo)
			return Invalid
		}
		if a.usernamePredicate == nil {
			result = NotAMatch
		} else if !a.usernamePredicate(username) {
			diag.Note("username rejected", username)
			result = NotAMatch
		}
	}

	host, portStr, hasPort := splitHostPort(hostport)
	if !hasPort && portStr == malformedBracket {
		diag.Note("unterminated IP-literal host", hostport)
		return Invalid
	}

	port := v.SchemeDefaultPort()
	if hasPort && portStr != "" {
		n, err := strconv.Atoi(portStr)
		if err != nil {
			diag.Note("non-numeric port", portStr)
			return Invalid
		}
		if n == 0 || n >= 65536 {
			diag.Note("port out of range", n)
			return Invalid
		}
		port = n
	}

	if host == "" {
		diag.Note("empty host", auth)
		return Invalid
	}

	hostMatched, hostIsInvalid, invalidDetail := a.matchHost(host)
	if hostIsInvalid {
		diag.Note("host parse failed", invalidDetail)
		return Invalid
	}

	if v.InheritsPlaceholderAuthority() && !a.matchAnyHost {
		diag.Note("authority inherited from placeholder base", auth)
		result = NotAMatch
	}

	hostConfigured := a.ipv4Set != nil || a.ipv6Set != nil || a.domainSet != nil || a.hostGlobs != nil || a.matchAnyHost
	if hostConfigured && !hostMatched {
		diag.Note("host not in any configured allow-list", host)
		result = NotAMatch
	}

	portConfigured := a.ports != nil || a.portPredicate != nil
	if portConfigured {
		portMatched := false
		if a.ports != nil {
			if _, ok := a.ports[port]; ok {
				portMatched = true
			}
		}
		if !portMatched && a.portPredicate != nil && a.portPredicate(port) {
			portMatched = true
		}
		if !portMatched {
			diag.Note("port not in configured allow-set", port)
			result = NotAMatch
		}
	}

	return result
}

const malformedBracket = "\x00malformed-bracket\x00"

// splitAtLastAt splits an authority string at its last '@'.
func splitAtLastAt(authority string) (userinfo, rest string, hasUserinfo bool) {
	i := strings.LastIndexByte(authority, '@')
	if i < 0 {
		return "", authority, false
	}
	return authority[:i], authority[i+1:], true
}

// splitHostPort splits host[:port], respecting a bracketed IPv6 literal.
// When the bracket is unterminated, it reports that via the malformedBracket
// sentinel in portStr with hasPort==false.
func splitHostPort(hostport string) (host, portStr string, hasPort bool) {
	if strings.HasPrefix(hostport, "[") {
		end := strings.IndexByte(hostport, ']')
		if end < 0 {
			return hostport, malformedBracket, false
		}
		host = hostport[:end+1]
		rest := hostport[end+1:]
		if strings.HasPrefix(rest, ":") {
			return host, rest[1:], true
		}
		return host, "", false
	}
	if i := strings.LastIndexByte(hostport, ':'); i >= 0 {
		return hostport[:i], hostport[i+1:], true
	}
	return hostport, "", false
}

// matchHost dispatches between IP-literal and domain-name host matching and
// reports whether host matched the configured allow-set. invalid is true on
// structural parse failure (bad bracket contents, decode failure, bad
// IDNA).
func (a *authorityClassifier) matchHost(host string) (matched, invalid bool, detail string) {
	if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		literal := host[1 : len(host)-1]
		ip := net.ParseIP(literal)
		if ip == nil {
			return false, true, literal
		}
		if a.matchAnyHost {
			return true, false, ""
		}
		if a.ipv6Set != nil {
			if _, ok := a.ipv6Set[ip.String()]; ok {
				return true, false, ""
			}
		}
		return false, false, ""
	}

	if looksLikeDottedIPv4(host) {
		ip := net.ParseIP(host)
		if ip == nil || ip.To4() == nil {
			return false, true, host
		}
		if a.matchAnyHost {
			return true, false, ""
		}
		if a.ipv4Set != nil {
			if _, ok := a.ipv4Set[ip.String()]; ok {
				return true, false, ""
			}
		}
		return false, false, ""
	}

	decoded, ok := pctencode.Decode(host, 0, len(host), false, false)
	if !ok {
		return false, true, host
	}
	unicodeHost, err := idna.ToUnicode(decoded)
	if err != nil {
		return false, true, decoded
	}
	if !validBidiHost(unicodeHost) {
		return false, true, unicodeHost
	}
	domain := publicsuffix.Parse(unicodeHost)

	if a.matchAnyHost {
		return true, false, ""
	}
	if a.domainSet != nil {
		if _, ok := a.domainSet[canonicalDomainKey(domain.Labels())]; ok {
			return true, false, ""
		}
	}
	if a.hostGlobs != nil && a.hostGlobs.Match(domain) {
		return true, false, ""
	}
	return false, false, ""
}

// looksLikeDottedIPv4 reports whether host is syntactically a dotted-decimal
// IPv4 literal, as opposed to a domain name that happens to contain only
// digits and dots.
func looksLikeDottedIPv4(host string) bool {
	if strings.Count(host, ".") != 3 {
		return false
	}
	for _, r := range host {
		if (r < '0' || r > '9') && r != '.' {
			return false
		}
	}
	return true
}

func canonicalDomainKey(labels []string) string {
	return strings.Join(labels, ".")
}

// validBidiHost reports whether a decoded domain-name host satisfies the
// RFC 3987 §4.2 structural bidi rules, checked per dot-separated label: a
// label must not mix left-to-right and right-to-left characters, and a
// label using right-to-left characters must start and end with one.
func validBidiHost(host string) bool {
	for _, label := range strings.Split(host, ".") {
		if !validBidiLabel(label) {
			return false
		}
	}
	return true
}

func validBidiLabel(label string) bool {
	if label == "" {
		return true
	}
	runes := []rune(label)
	var hasLTR, hasRTL bool
	for _, r := range runes {
		prop, _ := bidi.LookupRune(r)
		switch prop.Class() {
		case bidi.L:
			hasLTR = true
		case bidi.R, bidi.AL:
			hasRTL = true
		}
	}
	if hasLTR && hasRTL {
		return false
	}
	if !hasRTL {
		return true
	}
	isRTL := func(r rune) bool {
		prop, _ := bidi.LookupRune(r)
		c := prop.Class()
		return c == bidi.R || c == bidi.AL
	}
	return isRTL(runes[0]) && isRTL(runes[len(runes)-1])
}

// AuthorityBuilder configures an AuthorityClassifier.
type AuthorityBuilder struct {
	usernamePredicate func(string) bool
	ports             map[int]struct{}
	portPredicate     func(int) bool
	ipv4s             []string
	ipv6s             []string
	domains           []string
	hostGlobs         []string
	matchAnyHost      bool
}

// NewAuthorityBuilder returns an empty AuthorityBuilder.
func NewAuthorityBuilder() *AuthorityBuilder {
	return &AuthorityBuilder{}
}

// UsernamePredicate configures the userinfo predicate.
func (b *AuthorityBuilder) UsernamePredicate(p func(string) bool) *AuthorityBuilder {
	b.usernamePredicate = p
	return b
}

// AllowPorts configures the explicit port allow-set.
func (b *AuthorityBuilder) AllowPorts(ports ...int) *AuthorityBuilder {
	if b.ports == nil {
		b.ports = make(map[int]struct{}, len(ports))
	}
	for _, p := range ports {
		b.ports[p] = struct{}{}
	}
	return b
}

// PortPredicate configures the port predicate.
func (b *AuthorityBuilder) PortPredicate(p func(int) bool) *AuthorityBuilder {
	b.portPredicate = p
	return b
}

// AllowIPv4 adds literal IPv4 addresses to the allow-set.
func (b *AuthorityBuilder) AllowIPv4(addrs ...string) *AuthorityBuilder {
	b.ipv4s = append(b.ipv4s, addrs...)
	return b
}

// AllowIPv6 adds literal IPv6 addresses to the allow-set.
func (b *AuthorityBuilder) AllowIPv6(addrs ...string) *AuthorityBuilder {
	b.ipv6s = append(b.ipv6s, addrs...)
	return b
}

// AllowDomains adds canonical domain names to the allow-set.
func (b *AuthorityBuilder) AllowDomains(domains ...string) *AuthorityBuilder {
	b.domains = append(b.domains, domains...)
	return b
}

// AllowHostGlobs adds host-glob patterns to the allow-set.
func (b *AuthorityBuilder) AllowHostGlobs(globs ...string) *AuthorityBuilder {
	b.hostGlobs = append(b.hostGlobs, globs...)
	return b
}

// MatchAnyHost configures the classifier to accept any host.
func (b *AuthorityBuilder) MatchAnyHost() *AuthorityBuilder {
	b.matchAnyHost = true
	return b
}

// Build validates and returns the configured AuthorityClassifier. Malformed
// IP literals or host-globs are eager errors.
func (b *AuthorityBuilder) Build() (AuthorityClassifier, error) {
	a := &authorityClassifier{
		usernamePredicate: b.usernamePredicate,
		ports:             b.ports,
		portPredicate:     b.portPredicate,
		matchAnyHost:      b.matchAnyHost,
	}

	if len(b.ipv4s) > 0 {
		a.ipv4Set = make(map[string]struct{}, len(b.ipv4s))
		for _, s := range b.ipv4s {
			ip := net.ParseIP(s)
			if ip == nil || ip.To4() == nil {
				return nil, newParseError(&kindError{component: "authority", message: "not a valid IPv4 literal", detail: s})
			}
			a.ipv4Set[ip.String()] = struct{}{}
		}
	}
	if len(b.ipv6s) > 0 {
		a.ipv6Set = make(map[string]struct{}, len(b.ipv6s))
		for _, s := range b.ipv6s {
			ip := net.ParseIP(s)
			if ip == nil || ip.To4() != nil {
				return nil, newParseError(&kindError{component: "authority", message: "not a valid IPv6 literal", detail: s})
			}
			a.ipv6Set[ip.String()] = struct{}{}
		}
	}
	if len(b.domains) > 0 {
		a.domainSet = make(map[string]struct{}, len(b.domains))
		for _, d := range b.domains {
			a.domainSet[canonicalDomainKey(publicsuffix.Parse(d).Labels())] = struct{}{}
		}
	}
	if len(b.hostGlobs) > 0 {
		globs := make([]*hostglob.HostGlob, 0, len(b.hostGlobs))
		for _, g := range b.hostGlobs {
			compiled, err := hostglob.Parse(g)
			if err != nil {
				if errors.Is(err, hostglob.ErrMatchAnyHost) {
					a.matchAnyHost = true
					continue
				}
				return nil, newParseError(&kindError{component: "authority", message: "invalid host glob", detail: g})
			}
			globs = append(globs, compiled)
		}
		if len(globs) > 0 {
			a.hostGlobs = hostglob.NewMatcher(globs)
		}
	}

	return a, nil
}
