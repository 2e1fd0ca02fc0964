package domain

// TurnoutRecord is one state's turnout for one federal election year
type TurnoutRecord struct {
	Year       int     `json:"year" csv:"Year" validate:"required,min=2000"`
	State      string  `json:"state" csv:"State" validate:"required,oneof=NSW VIC QLD WA SA TAS ACT NT"`
	TurnoutPct float64 `json:"turnout_pct" csv:"TurnoutPct"`
}

// TurnoutHeaders is the column order of the merged turnout file
var TurnoutHeaders = []string{"Year", "State", "TurnoutPct"}
