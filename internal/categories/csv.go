package categories

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/osadchistudio/family-finance-sub001/internal/model"
)

// Header is the CSV header for categories.csv.
const Header = "id,name,color,icon,type"

const (
	numFields = 5
	colID     = 0
	colName   = 1
	colColor  = 2
	colIcon   = 3
	colType   = 4
)

// ReadCategories reads all categories from a categories.csv reader.
func ReadCategories(r io.Reader) ([]model.Category, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading categories CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	var cats []model.Category
	for i, rec := range records[1:] {
		cat, err := unmarshalCategory(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		cats = append(cats, cat)
	}
	return cats, nil
}

// WriteCategories writes categories to a writer (including header).
func WriteCategories(w io.Writer, cats []model.Category) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(Header, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, c := range cats {
		row := []string{c.ID, c.Name, c.Color, c.Icon, string(c.Type)}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	return cw.Error()
}

func unmarshalCategory(record []string) (model.Category, error) {
	if len(record) != numFields {
		return model.Category{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}

	catType := model.CategoryType(record[colType])
	switch catType {
	case model.CategoryTypeIncome, model.CategoryTypeExpense:
	default:
		return model.Category{}, fmt.Errorf("unknown category type %q", record[colType])
	}

	return model.Category{
		ID:    record[colID],
		Name:  record[colName],
		Color: record[colColor],
		Icon:  record[colIcon],
		Type:  catType,
	}, nil
}
