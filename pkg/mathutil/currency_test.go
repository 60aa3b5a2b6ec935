package mathutil

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundUnits(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int64
	}{
		{"Round up at midpoint", "1.5", 2},
		{"Round up at even midpoint", "2.5", 3},
		{"Round down below midpoint", "1.49", 1},
		{"No rounding needed", "1234", 1234},
		{"Large number", "16666.6667", 16667},
		{"Negative midpoint away from zero", "-2.5", -3},
		{"Zero", "0", 0},
		{"Very small positive", "0.001", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundUnits(decimal.RequireFromString(tt.input))
			if !result.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("RoundUnits(%s) = %s, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		name     string
		input    int64
		expected int64
	}{
		{"Positive unchanged", 150, 150},
		{"Zero unchanged", 0, 0},
		{"Negative clamped", -25, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := NonNegative(decimal.NewFromInt(tt.input))
			if !result.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("NonNegative(%d) = %s, expected %d", tt.input, result, tt.expected)
			}
		})
	}
}

func TestIsNegative(t *testing.T) {
	if !IsNegative(decimal.NewFromInt(-1)) {
		t.Error("IsNegative(-1) = false, expected true")
	}
	if IsNegative(decimal.Zero) {
		t.Error("IsNegative(0) = true, expected false")
	}
	if IsNegative(decimal.NewFromInt(1)) {
		t.Error("IsNegative(1) = true, expected false")
	}
}

func TestApplyRatio(t *testing.T) {
	result := ApplyRatio(decimal.NewFromInt(500000), decimal.RequireFromString("0.6"))
	if !result.Equal(decimal.NewFromInt(300000)) {
		t.Errorf("ApplyRatio() = %s, expected 300000", result)
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    int64
		total    int64
		expected int64
	}{
		{"Sixty percent", 300000, 500000, 60},
		{"Zero total", 100, 0, 0},
		{"Full amount", 100, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(decimal.NewFromInt(tt.value), decimal.NewFromInt(tt.total))
			if !result.Equal(decimal.NewFromInt(tt.expected)) {
				t.Errorf("CalculatePercentage(%d, %d) = %s, expected %d", tt.value, tt.total, result, tt.expected)
			}
		})
	}
}
