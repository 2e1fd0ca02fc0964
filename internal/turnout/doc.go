// Package turnout merges AEC turnout-by-state CSV exports into one
// Year,State,TurnoutPct table.
//
// Exports from different election years disagree on header names, may carry
// a leading metadata line and may spell states in full. ParseSource handles
// one file; Merge combines the results; Merger.Run drives a whole directory.
package turnout
