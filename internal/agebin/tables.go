package agebin

import "auelect/pkg/contracts/domain"

var ageBins = map[string]string{
	"15-19 years":       "15-24",
	"20-24 years":       "15-24",
	"25-34 years":       "25-44",
	"35-44 years":       "25-44",
	"45-54 years":       "45-64",
	"55-64 years":       "45-64",
	"65-74 years":       "65-84",
	"75-84 years":       "65-84",
	"85 years and over": "85 years and over",
}

var incomeBins = map[string]string{
	"Negative/Nil income": "Negative/Nil to $649",
	"$1-$149":             "Negative/Nil to $649",
	"$150-$299":           "Negative/Nil to $649",
	"$300-$399":           "Negative/Nil to $649",
	"$400-$499":           "Negative/Nil to $649",
	"$500-$649":           "Negative/Nil to $649",

	"$650-$799":     "$650-$1,499",
	"$800-$999":     "$650-$1,499",
	"$1,000-$1,249": "$650-$1,499",
	"$1,250-$1,499": "$650-$1,499",

	"$1,500-$1,749":      "$1,500-$2,999",
	"$1,750-$1,999":      "$1,500-$2,999",
	"$2,000-$2,999 more": "$1,500-$2,999",

	"$3,000-$3,499":  "$3,000 and above",
	"$3,500 or more": "$3,000 and above",
}

var (
	stateOrder  = []string{"NSW", "VIC", "QLD", "WA", "SA", "TAS", "ACT", "NT", domain.NationalState}
	ageOrder    = []string{"15-24", "25-44", "45-64", "65-84", "85 years and over"}
	incomeOrder = []string{"Negative/Nil to $649", "$650-$1,499", "$1,500-$2,999", "$3,000 and above"}
)

// Ranks for values missing from an order list
const (
	unknownStateRank = 998
	unknownBinRank   = 999
)

const (
	totalCategory   = "Total"
	incomeNotStated = "Personal income not stated"
)

// AgeBin maps a census age group to its coarse bin
func AgeBin(group string) (string, bool) {
	b, ok := ageBins[group]
	return b, ok
}

// IncomeBin maps a weekly personal income bracket to its coarse bin
func IncomeBin(bracket string) (string, bool) {
	b, ok := incomeBins[bracket]
	return b, ok
}

func rank(order []string, v string, unknown int) int {
	for i, o := range order {
		if o == v {
			return i
		}
	}
	return unknown
}
