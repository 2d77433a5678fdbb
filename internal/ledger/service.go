// Package ledger stores transactions in month-sharded CSV files under
// the data root: <root>/YYYY/MM/transactions.csv.
package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/osadchistudio/family-finance-sub001/internal/id"
	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// Service provides read and bulk-update access to the transaction
// files.
type Service struct {
	dataRoot string
}

// NewService creates a ledger Service rooted at dataRoot.
func NewService(dataRoot string) *Service {
	return &Service{dataRoot: dataRoot}
}

// Append writes transactions to their month files, creating directories
// and headers as needed. Callers assign IDs before appending.
func (s *Service) Append(txns []model.Transaction) error {
	byMonth := make(map[string][]model.Transaction)
	var order []string
	for _, t := range txns {
		key := t.Date.Format("2006/01")
		if _, seen := byMonth[key]; !seen {
			order = append(order, key)
		}
		byMonth[key] = append(byMonth[key], t)
	}
	sort.Strings(order)

	for _, key := range order {
		if err := s.appendMonth(byMonth[key]); err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) appendMonth(txns []model.Transaction) error {
	first := txns[0]
	path := s.monthPath(first.Date.Year(), int(first.Date.Month()))

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating ledger dir: %w", err)
	}

	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening ledger: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendTransactions(f, txns); err != nil {
		return fmt.Errorf("appending transactions: %w", err)
	}
	return nil
}

// ReadMonth reads all transactions for a given year/month. A missing
// month file is an empty month, not an error.
func (s *Service) ReadMonth(year, month int) ([]model.Transaction, error) {
	return s.readFile(s.monthPath(year, month))
}

// ReadAll reads every transaction across all month files, oldest file
// first.
func (s *Service) ReadAll() ([]model.Transaction, error) {
	paths, err := s.monthFiles()
	if err != nil {
		return nil, err
	}

	var all []model.Transaction
	for _, path := range paths {
		txns, err := s.readFile(path)
		if err != nil {
			return nil, err
		}
		all = append(all, txns...)
	}
	return all, nil
}

// NextSeq returns the next available sequence number for a month.
func (s *Service) NextSeq(year, month int) (int, error) {
	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return 0, err
	}

	maxSeq := 0
	for _, t := range txns {
		_, _, seq, err := id.Parse(t.ID)
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq + 1, nil
}

// SetCategory assigns a category to the given transactions, marking
// them auto or manually categorized. Returns the number actually
// changed; re-applying the same category counts zero, so cascades are
// idempotent.
func (s *Service) SetCategory(ids []string, categoryID string, auto bool) (int, error) {
	return s.update(ids, func(t *model.Transaction) bool {
		if t.CategoryID == categoryID && t.IsAutoCategorized == auto {
			return false
		}
		t.CategoryID = categoryID
		t.IsAutoCategorized = auto
		return true
	})
}

// SetRecurring flips the recurring flag on the given transactions.
// Returns the number actually changed.
func (s *Service) SetRecurring(ids []string, recurring bool) (int, error) {
	return s.update(ids, func(t *model.Transaction) bool {
		if t.IsRecurring == recurring {
			return false
		}
		t.IsRecurring = recurring
		return true
	})
}

// Get returns a transaction by ID.
func (s *Service) Get(txnID string) (model.Transaction, error) {
	year, month, _, err := id.Parse(txnID)
	if err != nil {
		return model.Transaction{}, err
	}
	txns, err := s.ReadMonth(year, month)
	if err != nil {
		return model.Transaction{}, err
	}
	for _, t := range txns {
		if t.ID == txnID {
			return t, nil
		}
	}
	return model.Transaction{}, fmt.Errorf("transaction %s not found", txnID)
}

// update applies mutate to the matching transactions and rewrites only
// the month files that changed.
func (s *Service) update(ids []string, mutate func(*model.Transaction) bool) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	want := make(map[string]struct{}, len(ids))
	for _, txnID := range ids {
		want[txnID] = struct{}{}
	}

	paths, err := s.monthFiles()
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, path := range paths {
		txns, err := s.readFile(path)
		if err != nil {
			return changed, err
		}

		dirty := false
		for i := range txns {
			if _, ok := want[txns[i].ID]; !ok {
				continue
			}
			if mutate(&txns[i]) {
				dirty = true
				changed++
			}
		}
		if !dirty {
			continue
		}

		if err := s.rewriteFile(path, txns); err != nil {
			return changed, err
		}
	}
	return changed, nil
}

func (s *Service) rewriteFile(path string, txns []model.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("rewriting ledger %s: %w", path, err)
	}
	defer f.Close()

	if err := WriteTransactions(f, txns); err != nil {
		return fmt.Errorf("rewriting ledger %s: %w", path, err)
	}
	return nil
}

func (s *Service) readFile(path string) ([]model.Transaction, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening ledger %s: %w", path, err)
	}
	defer f.Close()

	txns, err := ReadTransactions(f)
	if err != nil {
		return nil, fmt.Errorf("reading ledger %s: %w", path, err)
	}
	return txns, nil
}

func (s *Service) monthFiles() ([]string, error) {
	pattern := filepath.Join(s.dataRoot, "[0-9][0-9][0-9][0-9]", "[0-9][0-9]", "transactions.csv")
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("listing ledger files: %w", err)
	}
	sort.Strings(paths)
	return paths, nil
}

func (s *Service) monthPath(year, month int) string {
	return filepath.Join(s.dataRoot, fmt.Sprintf("%04d", year), fmt.Sprintf("%02d", month), "transactions.csv")
}
