// Package similarity decides whether two statement descriptions refer
// to the same merchant. It deliberately trades precision for recall:
// matches trigger bulk category rewrites, so every strategy requires
// meaningful distinctiveness (length >= 3, whole-word boundaries)
// before declaring one.
package similarity

import (
	"strings"

	"github.com/osadchistudio/family-finance-sub001/internal/signature"
	"github.com/osadchistudio/family-finance-sub001/internal/textnorm"
)

// analyzed caches the derived views of one description so each strategy
// stays a cheap pure predicate.
type analyzed struct {
	norm   string
	sig    string
	hasSig bool
	tokens []string // significant tokens, boilerplate removed
}

func analyze(description string) analyzed {
	norm := textnorm.Normalize(description)
	sig, ok := signature.Extract(description)
	return analyzed{
		norm:   norm,
		sig:    sig,
		hasSig: ok,
		tokens: signature.Significant(strings.Fields(norm)),
	}
}

// strategy is one independent match heuristic. Strategies are evaluated
// in order with short-circuit on the first true result.
type strategy func(a, b analyzed) bool

var strategies = []strategy{
	sameNormalized,
	sameSignature,
	sameCompactSignature,
	signatureInsideCandidate,
	signatureInsideSource,
	sameFirstToken,
	tokenOverlap,
}

const overlapThreshold = 0.6

// SameMerchant reports whether two descriptions refer to the same
// merchant. Empty normalized text never matches anything, including
// itself.
func SameMerchant(source, candidate string) bool {
	a, b := analyze(source), analyze(candidate)
	if a.norm == "" || b.norm == "" {
		return false
	}
	for _, match := range strategies {
		if match(a, b) {
			return true
		}
	}
	return false
}

func sameNormalized(a, b analyzed) bool {
	return a.norm == b.norm
}

func sameSignature(a, b analyzed) bool {
	return a.hasSig && b.hasSig && a.sig == b.sig
}

// sameCompactSignature handles spacing variants of the same compact
// brand, e.g. "ag bar" vs "agbar".
func sameCompactSignature(a, b analyzed) bool {
	if !a.hasSig || !b.hasSig {
		return false
	}
	return strings.ReplaceAll(a.sig, " ", "") == strings.ReplaceAll(b.sig, " ", "")
}

func signatureInsideCandidate(a, b analyzed) bool {
	return a.hasSig && len([]rune(a.sig)) >= 3 && containsWholeWord(b.norm, a.sig)
}

func signatureInsideSource(a, b analyzed) bool {
	return signatureInsideCandidate(b, a)
}

func sameFirstToken(a, b analyzed) bool {
	if len(a.tokens) == 0 || len(b.tokens) == 0 {
		return false
	}
	first := a.tokens[0]
	return len([]rune(first)) >= 3 && first == b.tokens[0]
}

// tokenOverlap matches when the significant-token sets share at least
// overlapThreshold of the larger side.
func tokenOverlap(a, b analyzed) bool {
	if len(a.tokens) == 0 || len(b.tokens) == 0 {
		return false
	}
	set := make(map[string]struct{}, len(a.tokens))
	for _, tok := range a.tokens {
		set[tok] = struct{}{}
	}
	shared := 0
	seen := make(map[string]struct{}, len(b.tokens))
	for _, tok := range b.tokens {
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		if _, ok := set[tok]; ok {
			shared++
		}
	}
	max := len(set)
	if len(seen) > max {
		max = len(seen)
	}
	return float64(shared)/float64(max) >= overlapThreshold
}

// containsWholeWord reports whether needle occurs in haystack delimited
// by string boundaries or spaces. The needle may itself contain a space
// (two-token signatures).
func containsWholeWord(haystack, needle string) bool {
	if needle == "" {
		return false
	}
	for i := 0; i+len(needle) <= len(haystack); {
		j := strings.Index(haystack[i:], needle)
		if j < 0 {
			return false
		}
		start := i + j
		end := start + len(needle)
		startOK := start == 0 || haystack[start-1] == ' '
		endOK := end == len(haystack) || haystack[end] == ' '
		if startOK && endOK {
			return true
		}
		i = start + 1
	}
	return false
}
