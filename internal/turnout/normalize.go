package turnout

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	metadataYearRe = regexp.MustCompile(`(20\d{2})\s+Federal Election`)
	eventIDRe      = regexp.MustCompile(`(15508|17496|20499|24310|27966)`)
	rowYearRe      = regexp.MustCompile(`(20\d{2})`)
)

// SplitMetadata separates a leading AEC metadata line from the CSV body.
// meta is always the first line; body drops it only when it is metadata.
func SplitMetadata(text string) (meta, body string) {
	first, rest, _ := strings.Cut(text, "\n")
	first = strings.TrimSuffix(first, "\r")
	if strings.Contains(first, "Federal Election") || strings.Contains(first, "House of Representatives") {
		return first, rest
	}
	return first, text
}

// InferYear returns the election year from the metadata line, falling back
// to a known event ID in the filename. The metadata line wins.
func InferYear(filename, meta string) (int, bool) {
	if m := metadataYearRe.FindStringSubmatch(meta); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y, true
	}
	if m := eventIDRe.FindStringSubmatch(filename); m != nil {
		return EventYear(m[1])
	}
	return 0, false
}

// RowYear scans a row's joined values for the first 20xx run.
// Best-effort: a count such as "2045" in any column also matches.
func RowYear(values []string) (int, bool) {
	m := rowYearRe.FindStringSubmatch(strings.Join(values, " "))
	if m == nil {
		return 0, false
	}
	y, _ := strconv.Atoi(m[1])
	return y, true
}

// NormalizeState maps full state names to abbreviations; anything else is returned unchanged
func NormalizeState(s string) string {
	if abbr, ok := stateAbbreviations[s]; ok {
		return abbr
	}
	return s
}

// IsValidState reports whether s is one of the eight state/territory abbreviations
func IsValidState(s string) bool {
	return validStates.Contains(s)
}

// ParseTurnout parses "72.3%" or "1,234" style percentages
func ParseTurnout(s string) (float64, error) {
	cleaned := strings.TrimSpace(strings.NewReplacer("%", "", ",", "").Replace(s))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("turnout %q is not a finite number", s)
	}
	return v, nil
}

// NormalizeHeader folds compatibility characters and trims surrounding whitespace
func NormalizeHeader(h string) string {
	return strings.TrimSpace(norm.NFKC.String(h))
}

// ResolveColumn returns the first header, in order, whose normalized form is in synonyms
func ResolveColumn(headers []string, synonyms HeaderSet) (string, bool) {
	for _, h := range headers {
		if name := NormalizeHeader(h); synonyms.Contains(name) {
			return name, true
		}
	}
	return "", false
}

// indexOf returns the position of the first header normalizing to name
func indexOf(headers []string, name string) int {
	for i, h := range headers {
		if NormalizeHeader(h) == name {
			return i
		}
	}
	return -1
}
