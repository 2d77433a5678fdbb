package categorize

import "unicode/utf8"

// Scorer turns a substring keyword hit into a confidence value. It is
// an interface so alternative scoring strategies can be swapped in
// without touching the matching passes.
type Scorer interface {
	Score(keyword, description string) float64
}

// LengthRatioScorer scores a hit by how much of the description the
// keyword covers: min(cap, keywordRunes/descriptionRunes * 1.5).
type LengthRatioScorer struct {
	Cap float64 // zero means the default 0.95
}

const (
	defaultCap  = 0.95
	ratioWeight = 1.5
)

// Score implements Scorer. Lengths are counted in runes so Hebrew
// keywords score the same as Latin ones.
func (s LengthRatioScorer) Score(keyword, description string) float64 {
	n := utf8.RuneCountInString(description)
	if n == 0 {
		return 0
	}
	cap := s.Cap
	if cap == 0 {
		cap = defaultCap
	}
	c := float64(utf8.RuneCountInString(keyword)) / float64(n) * ratioWeight
	if c > cap {
		c = cap
	}
	return c
}
