package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/osadchistudio/family-finance-sub001/internal/aiclass"
	"github.com/osadchistudio/family-finance-sub001/internal/categories"
	"github.com/osadchistudio/family-finance-sub001/internal/categorize"
	"github.com/osadchistudio/family-finance-sub001/internal/dedup"
	"github.com/osadchistudio/family-finance-sub001/internal/id"
	"github.com/osadchistudio/family-finance-sub001/internal/ledger"
	"github.com/osadchistudio/family-finance-sub001/internal/logger"
	"github.com/osadchistudio/family-finance-sub001/internal/model"
	"github.com/osadchistudio/family-finance-sub001/internal/recurring"
	"github.com/osadchistudio/family-finance-sub001/internal/signature"
	"github.com/osadchistudio/family-finance-sub001/internal/store"
)

// aiConfidence is recorded for AI-assigned categories. Keyword matches
// carry their scored confidence; the classifier gives none, so matches
// get a flat value below exact-keyword certainty.
const aiConfidence = 0.9

// Pipeline wires the import flow: dedup against history, keyword
// categorization, recurring detection, then an AI pass over whatever
// the keyword table could not place. Classifier and Store are optional;
// nil disables the AI pass and keyword learning respectively. Logging
// is taken from the context via logger.FromContext.
type Pipeline struct {
	Ledger     *ledger.Service
	Table      *categorize.Table
	Recurring  *recurring.Set
	Categories *categories.Service
	Classifier aiclass.Classifier
	Store      *store.Store
}

// Outcome is one imported transaction and how it was categorized.
type Outcome struct {
	ID          string
	Description string
	CategoryID  string
	Confidence  float64
	IsRecurring bool
	Source      string // "keyword", "ai", or "" when uncategorized
}

// Result summarizes one import batch.
type Result struct {
	BatchID    string
	Imported   []Outcome
	Duplicates int
	Skipped    []string
}

// Run imports rows for one account. Malformed rows are skipped and
// reported, never fatal; duplicates are counted and dropped. The
// surviving transactions are appended to the ledger in one pass.
func (p *Pipeline) Run(ctx context.Context, accountID int, inst model.InstitutionKind, rows []Row) (*Result, error) {
	log := logger.FromContext(ctx)

	existing, err := p.Ledger.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading ledger: %w", err)
	}
	index := dedup.NewIndex(existing)

	res := &Result{BatchID: uuid.NewString()}
	seqs := make(map[string]int)

	var txns []model.Transaction
	for i, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			msg := fmt.Sprintf("row %d (%s): bad amount %q", i+1, row.Description, row.Amount)
			log.Warn().Str("batch", res.BatchID).Msg(msg)
			res.Skipped = append(res.Skipped, msg)
			continue
		}

		if index.Seen(accountID, row.Reference, row.Date, amount, row.Description) {
			res.Duplicates++
			continue
		}

		txnID, err := p.nextID(seqs, row.Date.Year(), int(row.Date.Month()))
		if err != nil {
			return nil, err
		}

		t := model.Transaction{
			ID:          txnID,
			AccountID:   accountID,
			Date:        row.Date,
			Description: row.Description,
			Amount:      amount,
			Reference:   row.Reference,
			Institution: inst,
			IsRecurring: p.Recurring.IsRecurring(row.Description),
		}

		out := Outcome{ID: t.ID, Description: t.Description, IsRecurring: t.IsRecurring}
		if m, ok := p.Table.Categorize(t.Description); ok {
			t.CategoryID = m.CategoryID
			t.IsAutoCategorized = true
			out.CategoryID = m.CategoryID
			out.Confidence = m.Confidence
			out.Source = "keyword"
		}

		txns = append(txns, t)
		res.Imported = append(res.Imported, out)
	}

	p.classifyRemainder(ctx, log, res, txns)

	if len(txns) > 0 {
		if err := p.Ledger.Append(txns); err != nil {
			return nil, fmt.Errorf("appending batch: %w", err)
		}
	}

	log.Info().
		Str("batch", res.BatchID).
		Int("imported", len(res.Imported)).
		Int("duplicates", res.Duplicates).
		Int("skipped", len(res.Skipped)).
		Msg("import complete")
	return res, nil
}

// classifyRemainder runs the AI pass over transactions the keyword
// table left uncategorized. Classifier failure degrades to leaving them
// uncategorized; it never fails the import.
func (p *Pipeline) classifyRemainder(ctx context.Context, log zerolog.Logger, res *Result, txns []model.Transaction) {
	if p.Classifier == nil {
		return
	}

	var descriptions []string
	uniq := make(map[string]struct{})
	for _, t := range txns {
		if t.CategoryID != "" {
			continue
		}
		if _, ok := uniq[t.Description]; ok {
			continue
		}
		uniq[t.Description] = struct{}{}
		descriptions = append(descriptions, t.Description)
	}
	if len(descriptions) == 0 {
		return
	}

	names, err := p.Classifier.Categorize(ctx, descriptions, p.Categories.All())
	if err != nil {
		log.Warn().Err(err).Str("batch", res.BatchID).Msg("AI classification unavailable, leaving uncategorized")
		return
	}
	resolved := aiclass.Resolve(names, p.Categories.ByName)

	// txns and res.Imported were appended in lockstep, so indexes line
	// up.
	for i := range txns {
		if txns[i].CategoryID != "" {
			continue
		}
		catID, ok := resolved[txns[i].Description]
		if !ok {
			continue
		}
		txns[i].CategoryID = catID
		txns[i].IsAutoCategorized = true
		res.Imported[i].CategoryID = catID
		res.Imported[i].Confidence = aiConfidence
		res.Imported[i].Source = "ai"
	}

	p.learnKeywords(log, res.BatchID, resolved)
}

// learnKeywords persists a keyword per AI-resolved merchant so the next
// import of the same merchant skips the classifier.
func (p *Pipeline) learnKeywords(log zerolog.Logger, batchID string, resolved map[string]string) {
	if p.Store == nil {
		return
	}
	for desc, catID := range resolved {
		kw, ok := signature.Extract(desc)
		if !ok {
			continue
		}
		added, err := p.Store.PutCategoryKeyword(model.CategoryKeyword{
			CategoryID: catID,
			Keyword:    kw,
		})
		if err != nil {
			log.Warn().Err(err).Str("batch", batchID).Str("keyword", kw).Msg("keyword not saved")
			continue
		}
		if added {
			log.Debug().Str("keyword", kw).Str("category", catID).Msg("learned keyword from AI match")
		}
	}
}

// nextID hands out sequence numbers per month, consulting the ledger
// once per month then counting locally within the batch.
func (p *Pipeline) nextID(seqs map[string]int, year, month int) (string, error) {
	key := fmt.Sprintf("%04d-%02d", year, month)
	seq, ok := seqs[key]
	if !ok {
		next, err := p.Ledger.NextSeq(year, month)
		if err != nil {
			return "", fmt.Errorf("sequencing %s: %w", key, err)
		}
		seq = next
	}
	seqs[key] = seq + 1
	return id.Format(year, month, seq), nil
}
