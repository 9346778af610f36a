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

package publicsuffix

// suffixes is a compiled-in sample of the Public Suffix List (ICANN
// section plus a handful of well-known PRIVATE entries), dotted-label
// form, one entry per registrable-suffix boundary. It is intentionally a
// representative subset rather than the full list: enough generic,
// country-code, and multi-label/private suffixes to exercise every shape
// HostGlobMatcher's anyPublicSuffix group needs to handle, not a
// production-grade exhaustive table.
var suffixes = []string{
	// generic
	"com", "net", "org", "info", "biz", "name", "io", "dev", "app",
	"xyz", "online", "site", "tech",
	// country-code, single label
	"uk", "de", "fr", "jp", "cn", "ru", "us", "ca", "au", "br", "in",
	"nl", "se", "ch", "eu",
	// country-code, multi-label (second-level registries)
	"co.uk", "org.uk", "gov.uk", "ac.uk", "net.uk",
	"co.jp", "ne.jp", "or.jp",
	"com.au", "net.au", "org.au", "gov.au",
	"com.br", "net.br",
	"co.in", "net.in", "org.in",
	"com.cn", "net.cn", "org.cn",
	// private (PSL PRIVATE section): suffixes a hosting provider carves out
	// for its customers' subdomains
	"github.io", "githubusercontent.com", "herokuapp.com", "netlify.app",
	"vercel.app", "pages.dev", "blogspot.com", "s3.amazonaws.com",
}
