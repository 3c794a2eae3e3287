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

import "time"

// Query is the caller-supplied description of the location being matched.
// Only Name is required; the other fields sharpen the score when present.
type Query struct {
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	Area    string `json:"area,omitempty"`
}

// LatLng is a geographic coordinate pair in decimal degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Place is a candidate record returned by the upstream places lookup.
// The engine treats it as read-only. Location is nil when the provider
// returned no geometry.
type Place struct {
	PlaceID          string  `json:"place_id"`
	Name             string  `json:"name,omitempty"`
	FormattedAddress string  `json:"formatted_address"`
	Location         *LatLng `json:"location,omitempty"`
}

// ID returns the cache identity of the candidate. Some providers omit the
// place ID, in which case the formatted address stands in for it.
func (p Place) ID() string {
	if p.PlaceID != "" {
		return p.PlaceID
	}
	return p.FormattedAddress
}

// TrainingExample is one labeled feedback observation retained in the
// engine's bounded training buffer.
type TrainingExample struct {
	Features  []float64
	Label     float64
	Timestamp time.Time

	// Optional metadata used by SearchSimilar.
	Name        string
	Lat, Lng    float64
	HasLocation bool
}

// SimilarPlace is one result from SearchSimilar: a previously confirmed
// location whose name resembles the query text.
type SimilarPlace struct {
	Name       string  `json:"name"`
	Lat        float64 `json:"lat"`
	Lng        float64 `json:"lng"`
	Confidence float64 `json:"confidence"`
}
