package turnout

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"auelect/pkg/contracts/domain"
)

// ErrColumnsNotFound is returned when a source lacks a state or turnout column
var ErrColumnsNotFound = errors.New("state or turnout column not found")

// ColumnsError reports the headers of a source whose columns could not be resolved
type ColumnsError struct {
	Headers []string
}

func (e *ColumnsError) Error() string {
	return fmt.Sprintf("%s (headers seen: %v)", ErrColumnsNotFound, e.Headers)
}

func (e *ColumnsError) Is(target error) bool {
	return target == ErrColumnsNotFound
}

// SkipReason names why a source row was dropped
type SkipReason string

const (
	SkipEmptyState   SkipReason = "empty_state"
	SkipInvalidState SkipReason = "invalid_state"
	SkipBadTurnout   SkipReason = "bad_turnout"
	SkipNoYear       SkipReason = "no_year"
)

// SkipReasons lists every reason in reporting order
var SkipReasons = []SkipReason{SkipEmptyState, SkipInvalidState, SkipBadTurnout, SkipNoYear}

// FileResult is the outcome of parsing one source file
type FileResult struct {
	Name          string
	Year          int
	YearKnown     bool
	StateColumn   string
	TurnoutColumn string
	Records       []domain.TurnoutRecord
	Skipped       map[SkipReason]int
}

// SkippedTotal returns the number of rows dropped for any reason
func (r *FileResult) SkippedTotal() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// ParseSource parses one AEC turnout export. name is the file's base name,
// used for year inference. r must already be BOM-free UTF-8.
func ParseSource(name string, r io.Reader) (*FileResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	meta, body := SplitMetadata(string(data))
	result := &FileResult{
		Name:    name,
		Skipped: make(map[SkipReason]int),
	}
	result.Year, result.YearKnown = InferYear(name, meta)

	reader := csv.NewReader(strings.NewReader(body))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, &ColumnsError{Headers: []string{}}
	}

	headers := rows[0]
	stateCol, okState := ResolveColumn(headers, stateColumns)
	turnoutCol, okTurnout := ResolveColumn(headers, turnoutColumns)
	if !okState || !okTurnout {
		return nil, &ColumnsError{Headers: headers}
	}
	result.StateColumn, result.TurnoutColumn = stateCol, turnoutCol
	stateIdx := indexOf(headers, stateCol)
	turnoutIdx := indexOf(headers, turnoutCol)

	// Prefer the abbreviation column when the full name was picked
	abbrevIdx := -1
	if result.StateColumn == fullNameColumn {
		abbrevIdx = indexOf(headers, abbrevColumn)
	}

	for _, row := range rows[1:] {
		rec, reason := parseRow(row, stateIdx, abbrevIdx, turnoutIdx, result)
		if reason != "" {
			result.Skipped[reason]++
			continue
		}
		result.Records = append(result.Records, rec)
	}
	return result, nil
}

func parseRow(row []string, stateIdx, abbrevIdx, turnoutIdx int, file *FileResult) (domain.TurnoutRecord, SkipReason) {
	state := strings.TrimSpace(field(row, stateIdx))
	if state == "" {
		return domain.TurnoutRecord{}, SkipEmptyState
	}
	if abbrevIdx >= 0 {
		if ab := field(row, abbrevIdx); ab != "" {
			state = ab
		}
		state = strings.TrimSpace(state)
	}

	state = NormalizeState(state)
	if !IsValidState(state) {
		return domain.TurnoutRecord{}, SkipInvalidState
	}

	pct, err := ParseTurnout(field(row, turnoutIdx))
	if err != nil {
		return domain.TurnoutRecord{}, SkipBadTurnout
	}

	year, ok := file.Year, file.YearKnown
	if !ok {
		year, ok = RowYear(row)
	}
	if !ok {
		return domain.TurnoutRecord{}, SkipNoYear
	}

	return domain.TurnoutRecord{Year: year, State: state, TurnoutPct: pct}, ""
}

func field(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
