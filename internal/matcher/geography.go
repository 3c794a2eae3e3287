package matcher

import "strings"

// Region is a named rectangular service area with representative cities used
// to match free-text area hints.
type Region struct {
	Name   string
	MinLat float64
	MaxLat float64
	MinLng float64
	MaxLng float64
	Cities []string
}

// GeoValidator checks coordinates against a static table of named regions.
// The table is immutable after construction.
type GeoValidator struct {
	regions []Region
}

// NewGeoValidator builds the validator with its built-in region table.
func NewGeoValidator() *GeoValidator {
	return &GeoValidator{
		regions: []Region{
			{
				Name:   "london",
				MinLat: 51.28, MaxLat: 51.70,
				MinLng: -0.51, MaxLng: 0.33,
				Cities: []string{"london", "westminster", "camden", "croydon"},
			},
			{
				Name:   "florida",
				MinLat: 24.40, MaxLat: 31.00,
				MinLng: -87.63, MaxLng: -80.03,
				Cities: []string{"miami", "orlando", "tampa", "jacksonville", "fort lauderdale"},
			},
			{
				Name:   "california",
				MinLat: 32.53, MaxLat: 42.01,
				MinLng: -124.41, MaxLng: -114.13,
				Cities: []string{"los angeles", "san francisco", "san diego", "sacramento", "san jose"},
			},
			{
				Name:   "new york",
				MinLat: 40.48, MaxLat: 45.01,
				MinLng: -79.76, MaxLng: -71.85,
				Cities: []string{"new york", "brooklyn", "queens", "manhattan", "buffalo"},
			},
		},
	}
}

// Validate scores a coordinate against the area hint. 0.95 when the point
// lies inside a region the hint names, 0.2 when the hint names a region but
// the point is elsewhere (the user claimed a region the candidate is not
// in), and the neutral 0.5 when the hint is empty or names no known region.
func (g *GeoValidator) Validate(lat, lng float64, areaHint string) float64 {
	if strings.TrimSpace(areaHint) == "" {
		return Neutral
	}
	hint := strings.ToLower(areaHint)

	matched := false
	for _, r := range g.regions {
		if !regionMentioned(r, hint) {
			continue
		}
		matched = true
		if lat >= r.MinLat && lat <= r.MaxLat && lng >= r.MinLng && lng <= r.MaxLng {
			return 0.95
		}
	}
	if matched {
		return 0.2
	}
	return Neutral
}

func regionMentioned(r Region, hint string) bool {
	if strings.Contains(hint, r.Name) {
		return true
	}
	for _, city := range r.Cities {
		if strings.Contains(hint, city) {
			return true
		}
	}
	return false
}
