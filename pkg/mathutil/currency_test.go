package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round up at midpoint", 1.235, 1.24},
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round up", -1.235, -1.24},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Exactly zero", 0.0, true},
		{"Very small positive", 0.001, true},
		{"Very small negative", -0.001, true},
		{"Just above tolerance", 0.02, false},
		{"Just below negative tolerance", -0.02, false},
		{"Exactly tolerance", 0.01, true},
		{"Exactly negative tolerance", -0.01, true},
		{"Large positive", 100.0, false},
		{"Large negative", -100.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsZero(tt.input)
			if result != tt.expected {
				t.Errorf("IsZero(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsPositive(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected bool
	}{
		{"Large positive", 100.0, true},
		{"Just above tolerance", 0.02, true},
		{"Exactly tolerance", 0.01, false},
		{"Zero", 0.0, false},
		{"Negative", -0.02, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := IsPositive(tt.input)
			if result != tt.expected {
				t.Errorf("IsPositive(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWithinTolerance(t *testing.T) {
	tests := []struct {
		name      string
		val1      float64
		val2      float64
		tolerance float64
		expected  bool
	}{
		{"Identical values", 10.0, 10.0, 0.01, true},
		{"Within tolerance", 10.0, 10.005, 0.01, true},
		{"At tolerance boundary", 10.0, 10.01, 0.01, true},
		{"Outside tolerance", 10.0, 10.02, 0.01, false},
		{"Negative values within", -5.0, -5.005, 0.01, true},
		{"Opposite signs outside", 1.0, -1.0, 0.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := WithinTolerance(tt.val1, tt.val2, tt.tolerance)
			if result != tt.expected {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, expected %v",
					tt.val1, tt.val2, tt.tolerance, result, tt.expected)
			}
		})
	}
}

func TestMinMax(t *testing.T) {
	if got := Min(1.5, 2.5); got != 1.5 {
		t.Errorf("Min(1.5, 2.5) = %v, expected 1.5", got)
	}
	if got := Min(-1.0, -2.0); got != -2.0 {
		t.Errorf("Min(-1.0, -2.0) = %v, expected -2.0", got)
	}
	if got := Max(1.5, 2.5); got != 2.5 {
		t.Errorf("Max(1.5, 2.5) = %v, expected 2.5", got)
	}
	if got := Max(-1.0, -2.0); got != -1.0 {
		t.Errorf("Max(-1.0, -2.0) = %v, expected -1.0", got)
	}
}
