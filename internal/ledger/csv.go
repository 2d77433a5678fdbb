package ledger

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// Header is the CSV header for transactions.csv.
const Header = "id,account_id,date,description,amount,category_id,auto_categorized,recurring,excluded,reference,institution"

const (
	numFields      = 11
	dateFormat     = "2006-01-02"
	colID          = 0
	colAcctID      = 1
	colDate        = 2
	colDesc        = 3
	colAmount      = 4
	colCategory    = 5
	colAuto        = 6
	colRecurring   = 7
	colExcluded    = 8
	colRef         = 9
	colInstitution = 10
)

// ReadTransactions reads all transactions from a transactions.csv reader.
func ReadTransactions(r io.Reader) ([]model.Transaction, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading transactions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var txns []model.Transaction
	for i, rec := range records[1:] {
		txn, err := UnmarshalTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		txns = append(txns, txn)
	}
	return txns, nil
}

// WriteTransactions writes transactions to a writer (including header).
func WriteTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

// AppendTransactions appends transactions to an existing file writer
// (no header).
func AppendTransactions(w io.Writer, txns []model.Transaction) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, txn := range txns {
		if err := cw.Write(MarshalTransaction(txn)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	return cw.Error()
}

// MarshalTransaction converts a Transaction to a CSV row.
func MarshalTransaction(t model.Transaction) []string {
	row := make([]string, numFields)
	row[colID] = t.ID
	row[colAcctID] = strconv.Itoa(t.AccountID)
	row[colDate] = t.Date.Format(dateFormat)
	row[colDesc] = t.Description
	row[colAmount] = t.Amount.StringFixed(2)
	row[colCategory] = t.CategoryID
	row[colAuto] = boolField(t.IsAutoCategorized)
	row[colRecurring] = boolField(t.IsRecurring)
	row[colExcluded] = boolField(t.IsExcluded)
	row[colRef] = t.Reference
	row[colInstitution] = string(t.Institution)
	return row
}

// UnmarshalTransaction converts a CSV row to a Transaction.
func UnmarshalTransaction(record []string) (model.Transaction, error) {
	if len(record) != numFields {
		return model.Transaction{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	date, err := time.Parse(dateFormat, record[colDate])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing date %q: %w", record[colDate], err)
	}

	accountID, err := strconv.Atoi(record[colAcctID])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing account_id %q: %w", record[colAcctID], err)
	}

	amount, err := decimal.NewFromString(record[colAmount])
	if err != nil {
		return model.Transaction{}, fmt.Errorf("parsing amount %q: %w", record[colAmount], err)
	}

	return model.Transaction{
		ID:                record[colID],
		AccountID:         accountID,
		Date:              date,
		Description:       record[colDesc],
		Amount:            amount,
		CategoryID:        record[colCategory],
		IsAutoCategorized: record[colAuto] == "true",
		IsRecurring:       record[colRecurring] == "true",
		IsExcluded:        record[colExcluded] == "true",
		Reference:         record[colRef],
		Institution:       model.InstitutionKind(record[colInstitution]),
	}, nil
}

func boolField(b bool) string {
	if b {
		return "true"
	}
	return ""
}
