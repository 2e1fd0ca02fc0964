package agebin

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadRows(t *testing.T) {
	text := "State,AgeGroup,IncomeBracket,Count\n" +
		"NSW,15-19 years,$1-$149,\"1,234\"\n" +
		"\n" +
		"VIC,20-24 years\n"

	rows, malformed, err := ReadRows(strings.NewReader(text))
	require.NoError(t, err)
	assert.Zero(t, malformed)
	assert.Equal(t, []Row{
		{State: "NSW", AgeGroup: "15-19 years", IncomeBracket: "$1-$149", Count: "1,234"},
		{State: "VIC", AgeGroup: "20-24 years"},
	}, rows)
}

func TestReadRows_ReorderedAndPaddedHeaders(t *testing.T) {
	text := " Count ,IncomeBracket,State,AgeGroup,Extra\n" +
		"5,$650-$799,QLD,25-34 years,x\n"

	rows, _, err := ReadRows(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, []Row{
		{State: "QLD", AgeGroup: "25-34 years", IncomeBracket: "$650-$799", Count: "5"},
	}, rows)
}

func TestReadRows_MissingCountColumnReadsZero(t *testing.T) {
	rows, _, err := ReadRows(strings.NewReader("State,AgeGroup,IncomeBracket\nSA,15-19 years,$1-$149\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0", rows[0].Count)
}

func TestReadRows_Empty(t *testing.T) {
	rows, malformed, err := ReadRows(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.Zero(t, malformed)
}
