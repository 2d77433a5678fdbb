package categorize

import (
	"math"

	"github.com/jbrukh/bayesian"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/signature"
	"github.com/osadchistudio/family-finance-sub001/internal/textnorm"
)

// Suggestion is a category proposal for an uncategorized transaction.
type Suggestion struct {
	CategoryID string
	Confidence float64
}

// Suggester proposes categories for uncategorized descriptions using a
// TF-IDF naive-Bayes classifier trained on the already-categorized
// history. It complements the keyword table: the table encodes explicit
// user decisions, the suggester generalizes from them.
type Suggester struct {
	cl      *bayesian.Classifier
	classes []bayesian.Class
}

// NewSuggester trains a Suggester on categorized transactions. Returns
// false when the history holds fewer than two distinct categories,
// which is too little signal to classify against.
func NewSuggester(history []model.Transaction) (*Suggester, bool) {
	seen := make(map[string]bool)
	for _, t := range history {
		if t.CategoryID != "" {
			seen[t.CategoryID] = true
		}
	}
	if len(seen) < 2 {
		return nil, false
	}

	classes := make([]bayesian.Class, 0, len(seen))
	for id := range seen {
		classes = append(classes, bayesian.Class(id))
	}

	cl := bayesian.NewClassifierTfIdf(classes...)
	for _, t := range history {
		if t.CategoryID == "" {
			continue
		}
		terms := classificationTerms(t.Description)
		if len(terms) == 0 {
			continue
		}
		cl.Learn(terms, bayesian.Class(t.CategoryID))
	}
	cl.ConvertTermsFreqToTfIdf()

	return &Suggester{cl: cl, classes: classes}, true
}

// Suggest returns the most likely category for a description with a
// softmax-normalized confidence, or false when the description carries
// no classifiable terms.
func (s *Suggester) Suggest(description string) (Suggestion, bool) {
	terms := classificationTerms(description)
	if len(terms) == 0 {
		return Suggestion{}, false
	}

	scores, _, _ := s.cl.LogScores(terms)
	if len(scores) == 0 {
		return Suggestion{}, false
	}

	maxScore := scores[0]
	for _, sc := range scores {
		if sc > maxScore {
			maxScore = sc
		}
	}
	var sumExp float64
	exp := make([]float64, len(scores))
	for i, sc := range scores {
		exp[i] = math.Exp(sc - maxScore)
		sumExp += exp[i]
	}

	best := 0
	for i := range exp {
		if exp[i] > exp[best] {
			best = i
		}
	}
	return Suggestion{
		CategoryID: string(s.classes[best]),
		Confidence: exp[best] / sumExp,
	}, true
}

// classificationTerms strips boilerplate before training/classifying so
// the classifier learns merchants, not bank vocabulary.
func classificationTerms(description string) []string {
	return signature.Significant(textnorm.Tokens(description))
}
