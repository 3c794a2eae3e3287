package matcher

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

const similarityFloor = 0.3

// SearchSimilar scans the confirmed training examples for names resembling
// text and returns up to limit of them, best first. Confidence is normalized
// Levenshtein similarity. The buffer is capped at a hundred entries, so a
// linear scan is fine.
func (e *Engine) SearchSimilar(text string, limit int) []SimilarPlace {
	if limit <= 0 || strings.TrimSpace(text) == "" {
		return nil
	}
	query := normalizeString(text)

	e.mu.RLock()
	var results []SimilarPlace
	for _, ex := range e.buffer {
		if ex.Label != 1 || ex.Name == "" || !ex.HasLocation {
			continue
		}
		sim := nameSimilarity(query, normalizeString(ex.Name))
		if sim > similarityFloor {
			results = append(results, SimilarPlace{
				Name:       ex.Name,
				Lat:        ex.Lat,
				Lng:        ex.Lng,
				Confidence: sim,
			})
		}
	}
	e.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Confidence > results[j].Confidence
	})
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}

// nameSimilarity is 1 - editDistance/maxLength over normalized strings,
// in [0,1].
func nameSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	maxLen := utf8.RuneCountInString(a)
	if n := utf8.RuneCountInString(b); n > maxLen {
		maxLen = n
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// Normalize string by removing punctuation and converting to lowercase
func normalizeString(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == ' ' {
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
