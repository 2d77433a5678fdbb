package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// CardParser parses credit-card CSV exports:
// date,merchant,charge,voucher with DD/MM/YYYY dates. Charges appear as
// positive numbers on card statements and are negated into expenses.
type CardParser struct{}

const (
	cardDateFormat = "02/01/2006"
	cardNumFields  = 4
	cardColDate    = 0
	cardColDesc    = 1
	cardColCharge  = 2
	cardColVoucher = 3
)

// Format returns the parser name.
func (p *CardParser) Format() string { return "card" }

// Parse reads a card CSV and returns Rows.
func (p *CardParser) Parse(r io.Reader) ([]Row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = cardNumFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading card CSV: %w", err)
	}

	if len(records) <= 1 {
		return nil, nil
	}

	var rows []Row
	for i, rec := range records[1:] {
		date, err := time.Parse(cardDateFormat, rec[cardColDate])
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing date %q: %w", i+2, rec[cardColDate], err)
		}
		rows = append(rows, Row{
			Date:        date,
			Description: rec[cardColDesc],
			Amount:      negate(rec[cardColCharge]),
			Reference:   rec[cardColVoucher],
		})
	}
	return rows, nil
}

// negate flips the sign of a raw amount string without parsing it, so
// malformed numbers still reach the pipeline's per-row error handling.
func negate(raw string) string {
	raw = strings.TrimSpace(raw)
	switch {
	case raw == "":
		return raw
	case strings.HasPrefix(raw, "-"):
		return raw[1:]
	default:
		return "-" + raw
	}
}
