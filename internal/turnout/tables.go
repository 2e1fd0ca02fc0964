package turnout

// Header synonyms seen across AEC export years
var (
	stateColumns = newSet(
		"StateAb",
		"State",
		"State/Territory",
		"State or Territory",
		"StateNm",
	)
	turnoutColumns = newSet(
		"TurnoutPercentage",
		"Turnout (%)",
		"Turnout Percentage",
		"Turnout %",
		"Turnout percentage",
	)
)

const (
	fullNameColumn = "StateNm"
	abbrevColumn   = "StateAb"
)

// AEC event IDs embedded in export filenames
var eventYears = map[string]int{
	"15508": 2010,
	"17496": 2013,
	"20499": 2016,
	"24310": 2019,
	"27966": 2022,
}

var stateAbbreviations = map[string]string{
	"New South Wales":              "NSW",
	"Victoria":                     "VIC",
	"Queensland":                   "QLD",
	"Western Australia":            "WA",
	"South Australia":              "SA",
	"Tasmania":                     "TAS",
	"Australian Capital Territory": "ACT",
	"Northern Territory":           "NT",
}

var validStates = newSet("NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT")

// HeaderSet is a read-only set of accepted header names
type HeaderSet struct {
	names map[string]struct{}
}

func newSet(names ...string) HeaderSet {
	m := make(map[string]struct{}, len(names))
	for _, n := range names {
		m[n] = struct{}{}
	}
	return HeaderSet{names: m}
}

// Contains reports whether name is in the set
func (s HeaderSet) Contains(name string) bool {
	_, ok := s.names[name]
	return ok
}

// StateColumns returns the accepted state column names
func StateColumns() HeaderSet { return stateColumns }

// TurnoutColumns returns the accepted turnout column names
func TurnoutColumns() HeaderSet { return turnoutColumns }

// EventYear maps a known AEC event ID to its election year
func EventYear(eventID string) (int, bool) {
	y, ok := eventYears[eventID]
	return y, ok
}
