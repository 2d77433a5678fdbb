// Package auditlog records learning and cascade events so a user can
// trace why a transaction's category or recurring flag changed.
package auditlog

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Entry is one row in the audit log.
type Entry struct {
	Timestamp time.Time
	Action    string // e.g. "import", "learn-keyword", "cascade-category"
	Keyword   string
	Category  string
	Affected  int
	BatchID   string
}

// Header is the CSV header for audit-log.csv.
const Header = "timestamp,action,keyword,category,affected,batch_id"

const (
	numFields   = 6
	logDir      = "logs"
	logFile     = "logs/audit-log.csv"
	colTime     = 0
	colAction   = 1
	colKeyword  = 2
	colCategory = 3
	colAffected = 4
	colBatchID  = 5
)

// MarshalEntry converts an Entry to a CSV row.
func MarshalEntry(e Entry) []string {
	row := make([]string, numFields)
	row[colTime] = e.Timestamp.Format(time.RFC3339)
	row[colAction] = e.Action
	row[colKeyword] = e.Keyword
	row[colCategory] = e.Category
	row[colAffected] = strconv.Itoa(e.Affected)
	row[colBatchID] = e.BatchID
	return row
}

// UnmarshalEntry converts a CSV row to an Entry.
func UnmarshalEntry(record []string) (Entry, error) {
	if len(record) != numFields {
		return Entry{}, fmt.Errorf("expected %d fields, got %d", numFields, len(record))
	}
	ts, err := time.Parse(time.RFC3339, record[colTime])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing timestamp %q: %w", record[colTime], err)
	}
	affected, err := strconv.Atoi(record[colAffected])
	if err != nil {
		return Entry{}, fmt.Errorf("parsing affected %q: %w", record[colAffected], err)
	}
	return Entry{
		Timestamp: ts,
		Action:    record[colAction],
		Keyword:   record[colKeyword],
		Category:  record[colCategory],
		Affected:  affected,
		BatchID:   record[colBatchID],
	}, nil
}

// Append writes an entry to <dataRoot>/logs/audit-log.csv, creating the
// file with a header when missing.
func Append(dataRoot string, e Entry) error {
	if err := os.MkdirAll(filepath.Join(dataRoot, logDir), 0o755); err != nil {
		return fmt.Errorf("creating log dir: %w", err)
	}

	path := filepath.Join(dataRoot, logFile)
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	cw := csv.NewWriter(f)
	if err := cw.Write(MarshalEntry(e)); err != nil {
		return fmt.Errorf("writing audit entry: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// Read returns all audit entries, oldest first. A missing log is empty,
// not an error.
func Read(dataRoot string) ([]Entry, error) {
	f, err := os.Open(filepath.Join(dataRoot, logFile))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening audit log: %w", err)
	}
	defer f.Close()
	return readEntries(f)
}

func readEntries(r io.Reader) ([]Entry, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	var entries []Entry
	for i, rec := range records {
		if i == 0 && strings.Join(rec, ",") == Header {
			continue
		}
		e, err := UnmarshalEntry(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
