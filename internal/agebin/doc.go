// Package agebin re-bins a census age by income cross-tabulation into coarse
// bins and derives a national AUS row from the state totals.
package agebin
