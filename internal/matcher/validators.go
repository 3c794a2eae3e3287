// --------------------------------------------------------------------------------
// Author: Thomas F McGeehan V
//
// This file is part of a software project developed by Thomas F McGeehan V.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.
//
// For more information about the MIT License, please visit:
// https://opensource.org/licenses/MIT
//
// Acknowledgment appreciated but not required.
// --------------------------------------------------------------------------------

package matcher

import (
	"strings"

	"github.com/placewise/placematch/internal/standardizer"
)

// Neutral is the "no evidence either way" score the rule validators return
// when their primary input is absent or unparseable. Downstream ensemble math
// depends on this exact value.
const Neutral = 0.5

// PhoneRegionScore checks the geography implied by a phone number against
// the candidate's formatted address. Pure and total; always in [0,1].
func PhoneRegionScore(phone, candidateAddr string) float64 {
	if strings.TrimSpace(phone) == "" {
		return Neutral
	}
	addr := strings.ToLower(candidateAddr)
	area := areaCode(digitsOnly(phone))

	switch {
	case floridaAreaCodes[area]:
		if containsAny(addr, "florida", "fl") {
			return 1.0
		}
		return 0.0
	case validNANPAreaCode(area):
		// A real US area code outside the metro tables only tells us the
		// candidate should be in the US at all.
		if containsAny(addr, "united states", "usa") {
			return 0.9
		}
		return 0.0
	case hasUKPrefix(phone):
		if containsAny(addr, "united kingdom", "uk", "london") {
			return 1.0
		}
		return 0.0
	}
	return Neutral
}

// AddressMatchScore measures how much of the supplied street address appears
// in the candidate's formatted address. It extracts "word + street-suffix"
// bigrams and returns the fraction found verbatim, case-insensitively. Both
// sides pass through suffix standardization first so "Boulevard" and "Blvd"
// compare equal. Returns Neutral when no bigrams can be extracted.
func AddressMatchScore(address, candidateAddr string) float64 {
	if strings.TrimSpace(address) == "" {
		return Neutral
	}
	bigrams := streetBigrams(address)
	if len(bigrams) == 0 {
		return Neutral
	}
	cand := standardizer.StandardizeStreet(candidateAddr)
	hits := 0
	for _, bg := range bigrams {
		if strings.Contains(cand, bg) {
			hits++
		}
	}
	return float64(hits) / float64(len(bigrams))
}

// streetBigrams returns the lowercase "word suffix" pairs of an address,
// e.g. "main st" from "123 Main Street".
func streetBigrams(address string) []string {
	tokens := strings.Fields(standardizer.StandardizeStreet(address))
	var bigrams []string
	for i := 1; i < len(tokens); i++ {
		if standardizer.IsStreetSuffix(tokens[i]) {
			bigrams = append(bigrams, tokens[i-1]+" "+tokens[i])
		}
	}
	return bigrams
}

// bigramOverlap is the feature-extractor flavor of AddressMatchScore: it
// returns 0 rather than the neutral sentinel when nothing was extracted, so
// an unparseable address contributes no signal to the learned model.
func bigramOverlap(address, candidateAddrLower string) float64 {
	bigrams := streetBigrams(address)
	if len(bigrams) == 0 {
		return 0
	}
	cand := standardizer.StandardizeStreet(candidateAddrLower)
	hits := 0
	for _, bg := range bigrams {
		if strings.Contains(cand, bg) {
			hits++
		}
	}
	return float64(hits) / float64(len(bigrams))
}

// AreaMatchScore measures keyword agreement between a free-text area hint
// and the candidate's formatted address using the fixed region keyword list.
// Returns Neutral when the hint names no known region.
func AreaMatchScore(area, candidateAddr string) float64 {
	if strings.TrimSpace(area) == "" {
		return Neutral
	}
	hint := strings.ToLower(area)
	addr := strings.ToLower(candidateAddr)
	found, matched := 0, 0
	for _, kw := range areaKeywords {
		if strings.Contains(hint, kw) {
			found++
			if strings.Contains(addr, kw) {
				matched++
			}
		}
	}
	if found == 0 {
		return Neutral
	}
	return float64(matched) / float64(found)
}
