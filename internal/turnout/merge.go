package turnout

import (
	"sort"
	"strconv"

	"auelect/internal/exporter"
	"auelect/pkg/contracts/domain"
)

// Merge concatenates the records of every result in order and sorts them by
// (Year, State). Duplicates are kept and the sort is stable.
func Merge(results []*FileResult) []domain.TurnoutRecord {
	var all []domain.TurnoutRecord
	for _, r := range results {
		if r == nil {
			continue
		}
		all = append(all, r.Records...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Year != all[j].Year {
			return all[i].Year < all[j].Year
		}
		return all[i].State < all[j].State
	})
	return all
}

// Records converts merged rows to CSV records matching domain.TurnoutHeaders
func Records(rows []domain.TurnoutRecord) [][]string {
	out := make([][]string, len(rows))
	for i, r := range rows {
		out[i] = []string{strconv.Itoa(r.Year), r.State, exporter.FormatFloat(r.TurnoutPct)}
	}
	return out
}
