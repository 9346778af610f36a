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

// Package publicsuffix splits a host into labels and identifies its
// longest matching public suffix, via a suffix array over a compiled-in
// suffix table. The lookup grows a candidate suffix one label at a time
// from the right and keeps the longest candidate found in the table, so a
// multi-label entry such as "s3.amazonaws.com" is found even when
// "amazonaws.com" is not itself listed; it is adapted from the TLD lookup
// in hueristiq/hq-go-url's domain_parser.go.
package publicsuffix

import (
	"index/suffixarray"
	"strings"
	"sync"

	"golang.org/x/net/idna"
	"golang.org/x/text/unicode/norm"
)

// Domain is the parsed result of a host string: its dot-separated labels
// and how many of the trailing labels form its public suffix.
type Domain struct {
	labels           []string
	suffixLabelCount int
}

// Labels returns the domain's labels, in order, root-most last.
func (d *Domain) Labels() []string { return d.labels }

// HasPublicSuffix reports whether any trailing run of labels matched a
// known public suffix.
func (d *Domain) HasPublicSuffix() bool { return d.suffixLabelCount > 0 }

// PublicSuffix returns the trailing labels that form the domain's public
// suffix. It is only meaningful when HasPublicSuffix is true.
func (d *Domain) PublicSuffix() []string {
	if d.suffixLabelCount == 0 {
		return nil
	}
	return d.labels[len(d.labels)-d.suffixLabelCount:]
}

var (
	tableOnce sync.Once
	table     *suffixarray.Index
)

// index lazily builds the suffix array over the compiled-in suffix list,
// NUL-delimited so a Lookup match cannot straddle two distinct entries.
func index() *suffixarray.Index {
	tableOnce.Do(func() {
		table = suffixarray.New([]byte("\x00" + strings.Join(suffixes, "\x00") + "\x00"))
	})
	return table
}

// Parse splits host into labels and determines its public suffix. Each
// label is IDNA-normalized (ToASCII then ToUnicode, mirroring the fold
// used elsewhere in this module for host comparison) and NFC-folded
// before suffix matching, so "CO.UK" and "co.uk" are recognized
// identically and a label's composed and decomposed Unicode forms compare
// equal to a hostglob pattern's own NFC-folded labels.
func Parse(host string) *Domain {
	rawLabels := strings.Split(host, ".")
	labels := make([]string, len(rawLabels))
	for i, l := range rawLabels {
		labels[i] = normalizeLabel(l)
	}

	return &Domain{
		labels:           labels,
		suffixLabelCount: suffixLabelCount(labels),
	}
}

func normalizeLabel(label string) string {
	lowered := strings.ToLower(label)
	if ascii, err := idna.ToASCII(lowered); err == nil {
		if uni, err := idna.ToUnicode(ascii); err == nil {
			lowered = uni
		}
	}
	return norm.NFC.String(lowered)
}

// suffixLabelCount finds the longest trailing run of labels registered
// as a public suffix, growing the candidate one label at a time from the
// right and continuing past misses so a longer registered run is still
// found (adapted from hueristiq/hq-go-url's findTLDOffset technique,
// generalized from TLD-only to the full public suffix list).
func suffixLabelCount(labels []string) int {
	idx := index()
	matched := 0
	for i := len(labels) - 1; i >= 0; i-- {
		candidate := strings.Join(labels[i:], ".")
		if len(idx.Lookup([]byte("\x00"+candidate+"\x00"), 1)) == 0 {
			continue
		}
		matched = len(labels) - i
	}
	return matched
}
