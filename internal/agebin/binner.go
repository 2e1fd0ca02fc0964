package agebin

import (
	"sort"
	"strconv"
	"strings"

	"auelect/internal/exporter"
	"auelect/pkg/contracts/domain"
)

// Row is one raw input record
type Row struct {
	State         string
	AgeGroup      string
	IncomeBracket string
	Count         string
}

// SkipReason names why a row was not aggregated. The empty reason means the
// row was added.
type SkipReason string

const (
	Added         SkipReason = ""
	SkipMissing   SkipReason = "missing_field"
	SkipTotal     SkipReason = "total"
	SkipNotStated SkipReason = "not_stated"
	SkipNational  SkipReason = "national_row"
	SkipUnmapped  SkipReason = "unmapped_category"
	SkipBadCount  SkipReason = "bad_count"
	SkipMalformed SkipReason = "malformed_record"
)

// SkipReasons lists every reason in reporting order
var SkipReasons = []SkipReason{SkipMissing, SkipTotal, SkipNotStated, SkipNational, SkipUnmapped, SkipBadCount, SkipMalformed}

// Binner accumulates counts per (State, AgeBin, IncomeBin). The zero value
// is not usable; call NewBinner.
type Binner struct {
	sums    map[domain.CellKey]int64
	skipped map[SkipReason]int
	added   int
}

// NewBinner creates an empty Binner
func NewBinner() *Binner {
	return &Binner{
		sums:    make(map[domain.CellKey]int64),
		skipped: make(map[SkipReason]int),
	}
}

// Add bins one row and adds its count. Input rows for the national state are
// dropped; that row is always derived by Cells.
func (b *Binner) Add(row Row) SkipReason {
	reason := b.add(row)
	if reason != Added {
		b.skipped[reason]++
	} else {
		b.added++
	}
	return reason
}

func (b *Binner) add(row Row) SkipReason {
	state := strings.TrimSpace(row.State)
	age := strings.TrimSpace(row.AgeGroup)
	income := strings.TrimSpace(row.IncomeBracket)
	if state == "" || age == "" || income == "" {
		return SkipMissing
	}
	if age == totalCategory || income == totalCategory {
		return SkipTotal
	}
	if income == incomeNotStated {
		return SkipNotStated
	}
	if state == domain.NationalState {
		return SkipNational
	}

	ageBin, ok := AgeBin(age)
	if !ok {
		return SkipUnmapped
	}
	incomeBin, ok := IncomeBin(income)
	if !ok {
		return SkipUnmapped
	}

	count, err := ParseCount(row.Count)
	if err != nil {
		return SkipBadCount
	}

	b.sums[domain.CellKey{State: state, AgeBin: ageBin, IncomeBin: incomeBin}] += count
	return Added
}

// ParseCount parses a count that may carry thousands separators
func ParseCount(s string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 10, 64)
}

// Skip records a row dropped before it reached Add, such as a malformed record
func (b *Binner) Skip(reason SkipReason, n int) {
	if reason == Added || n <= 0 {
		return
	}
	b.skipped[reason] += n
}

// Aggregated returns the number of rows added so far
func (b *Binner) Aggregated() int { return b.added }

// Skipped returns a copy of the per-reason skip counts
func (b *Binner) Skipped() map[SkipReason]int {
	out := make(map[SkipReason]int, len(b.skipped))
	for k, v := range b.skipped {
		out[k] = v
	}
	return out
}

// Cells returns every state cell plus the national aggregate, sorted by
// state, age bin and income bin rank. States outside the known order sort
// last, alphabetically.
func (b *Binner) Cells() []domain.AgeIncomeCell {
	national := make(map[domain.CellKey]int64)
	cells := make([]domain.AgeIncomeCell, 0, len(b.sums)+len(ageOrder)*len(incomeOrder))
	for key, count := range b.sums {
		cells = append(cells, domain.AgeIncomeCell{CellKey: key, Count: count})
		national[domain.CellKey{State: domain.NationalState, AgeBin: key.AgeBin, IncomeBin: key.IncomeBin}] += count
	}
	for key, count := range national {
		cells = append(cells, domain.AgeIncomeCell{CellKey: key, Count: count})
	}

	SortCells(cells)
	return cells
}

// SortCells orders cells by the fixed state, age and income ranks
func SortCells(cells []domain.AgeIncomeCell) {
	sort.Slice(cells, func(i, j int) bool {
		a, b := cells[i].CellKey, cells[j].CellKey
		if ra, rb := rank(stateOrder, a.State, unknownStateRank), rank(stateOrder, b.State, unknownStateRank); ra != rb {
			return ra < rb
		}
		if a.State != b.State {
			return a.State < b.State
		}
		if ra, rb := rank(ageOrder, a.AgeBin, unknownBinRank), rank(ageOrder, b.AgeBin, unknownBinRank); ra != rb {
			return ra < rb
		}
		if ra, rb := rank(incomeOrder, a.IncomeBin, unknownBinRank), rank(incomeOrder, b.IncomeBin, unknownBinRank); ra != rb {
			return ra < rb
		}
		if a.AgeBin != b.AgeBin {
			return a.AgeBin < b.AgeBin
		}
		return a.IncomeBin < b.IncomeBin
	})
}

// Records converts cells to CSV records matching domain.AgeIncomeHeaders
func Records(cells []domain.AgeIncomeCell) [][]string {
	out := make([][]string, len(cells))
	for i, c := range cells {
		out[i] = []string{c.State, c.AgeBin, c.IncomeBin, exporter.FormatInt(c.Count)}
	}
	return out
}
