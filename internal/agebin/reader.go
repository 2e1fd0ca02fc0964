package agebin

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Input column names
const (
	colState  = "State"
	colAge    = "AgeGroup"
	colIncome = "IncomeBracket"
	colCount  = "Count"
)

// ReadRows reads header-keyed rows from r. Columns missing from the header
// read as empty, except Count, which reads as "0". A repeated header
// resolves to its last column. Records the CSV parser
// rejects are counted in malformed and skipped.
func ReadRows(r io.Reader) (rows []Row, malformed int, err error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}
	_, hasCount := index[colCount]

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			malformed++
			continue
		}
		if err != nil {
			return nil, malformed, fmt.Errorf("failed to read rows: %w", err)
		}

		row := Row{
			State:         lookup(record, index, colState),
			AgeGroup:      lookup(record, index, colAge),
			IncomeBracket: lookup(record, index, colIncome),
			Count:         "0",
		}
		if hasCount {
			row.Count = lookup(record, index, colCount)
		}
		rows = append(rows, row)
	}
	return rows, malformed, nil
}

func lookup(record []string, index map[string]int, name string) string {
	i, ok := index[name]
	if !ok || i >= len(record) {
		return ""
	}
	return record[i]
}
