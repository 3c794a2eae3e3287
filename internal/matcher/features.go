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
	"unicode"

	"github.com/jdkato/prose/v2"
)

// FeatureDim is the fixed width of every feature vector. Missing optional
// inputs zero-fill their segment rather than shrinking the vector.
const FeatureDim = 50

// Segment offsets into the feature vector.
const (
	nameSegment      = 0  // 10 slots
	phoneSegment     = 10 // 15 slots
	addressSegment   = 25 // 10 slots
	areaSegment      = 35 // 10 slots
	candidateSegment = 45 // 5 slots
)

var nameCategories = []string{"restaurant", "coffee", "bank", "shop", "market", "hotel"}

// NANP area codes grouped by metro. The fourth set (Bay Area) fills the last
// of the four metro flags alongside Florida, NYC and LA.
var (
	floridaAreaCodes = map[string]bool{
		"305": true, "786": true, "954": true, "754": true, "561": true,
		"407": true, "321": true, "813": true, "727": true, "239": true,
		"941": true, "352": true, "386": true, "904": true, "850": true,
	}
	nycAreaCodes = map[string]bool{
		"212": true, "718": true, "917": true, "646": true, "347": true,
		"929": true, "332": true,
	}
	laAreaCodes = map[string]bool{
		"213": true, "310": true, "323": true, "424": true, "747": true,
		"818": true,
	}
	bayAreaCodes = map[string]bool{
		"415": true, "510": true, "650": true, "408": true, "925": true,
		"628": true,
	}
)

var areaKeywords = []string{"london", "florida", "california", "new york", "uk", "usa"}

// ExtractFeatures builds the fixed-width feature vector for a query/candidate
// pair. It is pure and total: it never fails, and absent optional inputs leave
// their segment at zero.
func ExtractFeatures(q Query, place Place) []float64 {
	f := make([]float64, FeatureDim)
	candAddr := strings.ToLower(place.FormattedAddress)

	fillNameSegment(f[nameSegment:], q.Name)
	if q.Phone != "" {
		fillPhoneSegment(f[phoneSegment:], q.Phone, candAddr)
	}
	if q.Address != "" {
		fillAddressSegment(f[addressSegment:], q.Address, candAddr)
	}
	if q.Area != "" {
		fillAreaSegment(f[areaSegment:], q.Area, candAddr)
	}
	fillCandidateSegment(f[candidateSegment:], q.Name, place, candAddr)
	return f
}

// Name segment (10 slots): token count, character length, six business
// category flags, digit flag, punctuation flag.
func fillNameSegment(seg []float64, name string) {
	lower := strings.ToLower(name)
	seg[0] = ratio(float64(len(tokenize(name))), 10)
	seg[1] = ratio(float64(len(name)), 50)
	for i, cat := range nameCategories {
		seg[2+i] = boolFeature(strings.Contains(lower, cat))
	}
	seg[8] = boolFeature(strings.ContainsFunc(name, unicode.IsDigit))
	seg[9] = boolFeature(strings.ContainsAny(name, "&'"))
}

// Phone segment (15 slots): presence, digit length, US/UK format flags, four
// metro area-code flags, a generic NANP flag, and five cross-consistency
// flags checking the candidate address against the region the phone implies.
// Slot 14 is reserved.
func fillPhoneSegment(seg []float64, phone, candAddr string) {
	digits := digitsOnly(phone)
	area := areaCode(digits)

	seg[0] = 1
	seg[1] = ratio(float64(len(digits)), 15)
	seg[2] = boolFeature(area != "")
	seg[3] = boolFeature(hasUKPrefix(phone))
	seg[4] = boolFeature(floridaAreaCodes[area])
	seg[5] = boolFeature(nycAreaCodes[area])
	seg[6] = boolFeature(laAreaCodes[area])
	seg[7] = boolFeature(bayAreaCodes[area])
	seg[8] = boolFeature(validNANPAreaCode(area))
	seg[9] = boolFeature(floridaAreaCodes[area] && containsAny(candAddr, "florida", "fl"))
	seg[10] = boolFeature(nycAreaCodes[area] && containsAny(candAddr, "new york", "ny"))
	seg[11] = boolFeature((laAreaCodes[area] || bayAreaCodes[area]) && containsAny(candAddr, "california", "ca"))
	seg[12] = boolFeature(hasUKPrefix(phone) && containsAny(candAddr, "united kingdom", "uk", "london"))
	seg[13] = boolFeature(validNANPAreaCode(area) && containsAny(candAddr, "united states", "usa"))
}

// Address segment (10 slots): presence, length, four street-suffix flags,
// digit flag, bigram overlap ratio against the candidate address, token
// count. Slot 9 is reserved.
func fillAddressSegment(seg []float64, address, candAddr string) {
	lower := strings.ToLower(address)
	seg[0] = 1
	seg[1] = ratio(float64(len(address)), 100)
	seg[2] = boolFeature(containsAny(lower, "street", " st"))
	seg[3] = boolFeature(containsAny(lower, "road", " rd"))
	seg[4] = boolFeature(containsAny(lower, "avenue", " ave"))
	seg[5] = boolFeature(containsAny(lower, "boulevard", " blvd"))
	seg[6] = boolFeature(strings.ContainsFunc(address, unicode.IsDigit))
	seg[7] = bigramOverlap(address, candAddr)
	seg[8] = ratio(float64(len(tokenize(address))), 10)
}

// Area segment (10 slots): presence, six region keyword flags, keyword
// overlap ratio against the candidate address, keyword count. Slot 9 is
// reserved.
func fillAreaSegment(seg []float64, area, candAddr string) {
	lower := strings.ToLower(area)
	seg[0] = 1
	found := 0
	matched := 0
	for i, kw := range areaKeywords {
		if strings.Contains(lower, kw) {
			seg[1+i] = 1
			found++
			if strings.Contains(candAddr, kw) {
				matched++
			}
		}
	}
	if found > 0 {
		seg[7] = float64(matched) / float64(found)
	}
	seg[8] = ratio(float64(found), float64(len(areaKeywords)))
}

// Candidate-quality segment (5 slots): address length, comma-separated
// component count, country flags, and first-token overlap between the
// candidate name and the query name.
func fillCandidateSegment(seg []float64, queryName string, place Place, candAddr string) {
	seg[0] = ratio(float64(len(place.FormattedAddress)), 100)
	if place.FormattedAddress != "" {
		seg[1] = ratio(float64(len(strings.Split(place.FormattedAddress, ","))), 8)
	}
	seg[2] = boolFeature(containsAny(candAddr, "united states", "usa"))
	seg[3] = boolFeature(containsAny(candAddr, "united kingdom", "uk"))
	seg[4] = boolFeature(firstTokenOverlap(queryName, place.Name))
}

// tokenize splits text with prose, falling back to whitespace fields when the
// document cannot be built.
func tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	doc, err := prose.NewDocument(text, prose.WithTagging(false), prose.WithExtraction(false))
	if err != nil {
		return strings.Fields(text)
	}
	tokens := make([]string, 0, len(doc.Tokens()))
	for _, tok := range doc.Tokens() {
		tokens = append(tokens, tok.Text)
	}
	return tokens
}

// firstTokenOverlap reports whether the first token of the query name appears
// in the candidate name, case-insensitively.
func firstTokenOverlap(queryName, candName string) bool {
	qt := strings.Fields(strings.ToLower(queryName))
	if len(qt) == 0 || candName == "" {
		return false
	}
	return strings.Contains(strings.ToLower(candName), qt[0])
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// areaCode extracts the NANP area code from a bare digit string: the first
// three digits of a 10-digit number, or the three after the leading 1 of an
// 11-digit number. Anything else yields "".
func areaCode(digits string) string {
	switch {
	case len(digits) == 10:
		return digits[:3]
	case len(digits) == 11 && digits[0] == '1':
		return digits[1:4]
	}
	return ""
}

// validNANPAreaCode reports whether the code falls in the assignable NANP
// range (leading digit 2-9).
func validNANPAreaCode(area string) bool {
	return len(area) == 3 && area[0] >= '2' && area[0] <= '9'
}

// hasUKPrefix matches +44 or a 0 trunk prefix followed by a London (20),
// mobile (7), or geographic (1) code.
func hasUKPrefix(phone string) bool {
	p := strings.TrimSpace(phone)
	var rest string
	switch {
	case strings.HasPrefix(p, "+44"):
		rest = digitsOnly(p[3:])
	case strings.HasPrefix(p, "0"):
		rest = digitsOnly(p[1:])
	default:
		return false
	}
	return strings.HasPrefix(rest, "20") || strings.HasPrefix(rest, "7") || strings.HasPrefix(rest, "1")
}

func containsAny(haystack string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}

func ratio(n, max float64) float64 {
	if n <= 0 {
		return 0
	}
	if n >= max {
		return 1
	}
	return n / max
}

func boolFeature(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
