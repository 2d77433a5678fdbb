// Package signature derives a short canonical token from a merchant
// description. The signature is the stable identity used for fuzzy
// matching and keyword learning.
package signature

import (
	"strings"
	"unicode/utf8"

	"github.com/osadchistudio/family-finance-sub001/internal/textnorm"
)

// generic holds banking boilerplate tokens that never identify a
// merchant: transfer/charge vocabulary, issuer brands, payment apps and
// bank names, in Hebrew and Latin script. Tokens are compared after
// normalization.
var generic = map[string]struct{}{
	// Hebrew banking vocabulary.
	"העברה":  {},
	"העברת":  {},
	"הוראת":  {},
	"קבע":    {},
	"תשלום":  {},
	"תשלומים": {},
	"חיוב":   {},
	"חיובים": {},
	"זיכוי":  {},
	"כרטיס":  {},
	"אשראי":  {},
	"עסקת":   {},
	"משיכה":  {},
	"הפקדה":  {},
	"הפקדת":  {},
	"שיק":    {},
	"עמלה":   {},
	"עמלת":   {},
	"ריבית":  {},
	"לחודש":  {},
	"בנקאית": {},
	// Hebrew bank and issuer names.
	"בנק":      {},
	"הפועלים":  {},
	"לאומי":    {},
	"דיסקונט":  {},
	"מזרחי":    {},
	"טפחות":    {},
	"הבינלאומי": {},
	"ויזה":     {},
	"ישראכרט":  {},
	"מסטרקארד": {},
	"מקס":      {},
	"כאל":      {},
	// Hebrew payment apps.
	"ביט":     {},
	"פייבוקס": {},
	// Latin counterparts.
	"transfer":   {},
	"payment":    {},
	"charge":     {},
	"credit":     {},
	"debit":      {},
	"card":       {},
	"deposit":    {},
	"withdrawal": {},
	"fee":        {},
	"interest":   {},
	"standing":   {},
	"order":      {},
	"bank":       {},
	"hapoalim":   {},
	"leumi":      {},
	"discount":   {},
	"mizrahi":    {},
	"visa":       {},
	"mastercard": {},
	"isracard":   {},
	"amex":       {},
	"max":        {},
	"cal":        {},
	"bit":        {},
	"paybox":     {},
	"paypal":     {},
	"pos":        {},
	"atm":        {},
}

// Extract returns the merchant signature of a description, or false
// when the description is boilerplate-only. A very short first token is
// not distinctive on its own, so it is joined with the next token when
// one exists.
func Extract(description string) (string, bool) {
	toks := Significant(textnorm.Tokens(description))
	if len(toks) == 0 {
		return "", false
	}
	first := toks[0]
	if utf8.RuneCountInString(first) <= 2 && len(toks) > 1 {
		return first + " " + toks[1], true
	}
	return first, true
}

// Significant filters normalized tokens down to the ones that can
// identify a merchant: longer than one rune, not purely numeric, not
// generic banking boilerplate.
func Significant(tokens []string) []string {
	var out []string
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) <= 1 {
			continue
		}
		if numeric(tok) {
			continue
		}
		if _, ok := generic[tok]; ok {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func numeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// IsGeneric reports whether a normalized token is banking boilerplate.
func IsGeneric(token string) bool {
	_, ok := generic[strings.ToLower(token)]
	return ok
}
