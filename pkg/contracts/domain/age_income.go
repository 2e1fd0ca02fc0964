package domain

// NationalState is the synthetic state key carrying the sum over all real states
const NationalState = "AUS"

// CellKey identifies one binned age/income cell for a state
type CellKey struct {
	State     string `json:"state" csv:"State"`
	AgeBin    string `json:"age_bin" csv:"AgeBin"`
	IncomeBin string `json:"income_bin" csv:"IncomeBin"`
}

// AgeIncomeCell is a binned, summed population count
type AgeIncomeCell struct {
	CellKey
	Count int64 `json:"count" csv:"Count" validate:"min=0"`
}

// AgeIncomeHeaders is the column order of the binned age/income file
var AgeIncomeHeaders = []string{"State", "AgeBin", "IncomeBin", "Count"}
