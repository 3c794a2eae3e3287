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

package standardizer

import (
	"regexp"
	"strings"
)

// Suffix abbreviations applied word-by-word so "Main Street" and "Main St"
// standardize to the same text.
var abbreviations = map[string]string{
	"street":    "st",
	"road":      "rd",
	"avenue":    "ave",
	"boulevard": "blvd",
	"circle":    "cir",
	"court":     "ct",
	"drive":     "dr",
	"highway":   "hwy",
	"lane":      "ln",
	"place":     "pl",
	"terrace":   "ter",
	"northwest": "nw",
	"southeast": "se",
	"southwest": "sw",
	"northeast": "ne",
}

// Suffixes the address matcher treats as street designators.
var streetSuffixes = map[string]bool{
	"st": true, "rd": true, "ave": true, "blvd": true,
}

var spaceRe = regexp.MustCompile(`\s+`)
var punctRe = regexp.MustCompile(`[.,;]`)

// StandardizeStreet lowercases an address, strips punctuation and extra
// whitespace, and abbreviates street suffixes.
func StandardizeStreet(street string) string {
	street = strings.ToLower(strings.TrimSpace(street))
	street = punctRe.ReplaceAllString(street, " ")
	street = spaceRe.ReplaceAllString(street, " ")

	words := strings.Split(street, " ")
	for i, w := range words {
		if short, ok := abbreviations[w]; ok {
			words[i] = short
		}
	}
	return strings.Join(words, " ")
}

// IsStreetSuffix reports whether a standardized token is a street designator.
func IsStreetSuffix(token string) bool {
	return streetSuffixes[token] || abbreviations[token] != "" && streetSuffixes[abbreviations[token]]
}
