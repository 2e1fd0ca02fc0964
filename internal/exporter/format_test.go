package exporter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{72.3, "72.3"},
		{1234, "1234.0"},
		{0, "0.0"},
		{91.99, "91.99"},
		{-1.5, "-1.5"},
		{math.Inf(1), "+Inf"},
		{1e16, "1e+16"},
		{1e15, "1000000000000000.0"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{1.5e-7, "1.5e-07"},
		{-2.5e20, "-2.5e+20"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFloat(tt.input))
		})
	}
}

func TestFormatInt(t *testing.T) {
	assert.Equal(t, "0", FormatInt(0))
	assert.Equal(t, "1234567", FormatInt(1234567))
	assert.Equal(t, "-3", FormatInt(-3))
}
