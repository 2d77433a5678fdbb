package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// BankParser parses checking-account CSV exports:
// date,description,amount,reference with DD/MM/YYYY dates.
type BankParser struct{}

const (
	bankDateFormat = "02/01/2006"
	bankNumFields  = 4
	bankColDate    = 0
	bankColDesc    = 1
	bankColAmount  = 2
	bankColRef     = 3
)

// Format returns the parser name.
func (p *BankParser) Format() string { return "bank" }

// Parse reads a bank CSV and returns Rows.
func (p *BankParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = bankNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading bank CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		date, err := time.Parse(bankDateFormat, rec[bankColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[bankColDate], err)
		}
		rows = append(rows, Row{
			Date:        date,
			Description: rec[bankColDesc],
			Amount:      rec[bankColAmount],
			Reference:   rec[bankColRef],
		})
	}
	return rows, nil
}
