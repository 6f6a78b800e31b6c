package datetime

import (
	"testing"
)

func TestOffsetDate(t *testing.T) {
	tests := []struct {
		name     string
		date     string
		months   int
		expected string
	}{
		{"Forward within year", "2025-01", 3, "2025-04"},
		{"Forward across year boundary", "2025-11", 3, "2026-02"},
		{"Forward multiple years", "2025-01", 25, "2027-02"},
		{"Backward within year", "2025-06", -2, "2025-04"},
		{"Backward across year boundary", "2025-02", -3, "2024-11"},
		{"Zero offset", "2025-06", 0, "2025-06"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := OffsetDate(tt.date, DateTimeLayout, tt.months)
			if err != nil {
				t.Fatalf("OffsetDate(%s, %d) error = %v", tt.date, tt.months, err)
			}
			if result != tt.expected {
				t.Errorf("OffsetDate(%s, %d) = %s, expected %s", tt.date, tt.months, result, tt.expected)
			}
		})
	}
}

func TestOffsetDateInvalid(t *testing.T) {
	if _, err := OffsetDate("not-a-date", DateTimeLayout, 1); err == nil {
		t.Error("OffsetDate() with invalid date should return an error")
	}
}

func TestMonthsBetween(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected int
	}{
		{"Same month", "2025-03", "2025-03", 0},
		{"One month apart", "2025-03", "2025-04", 1},
		{"Across year boundary", "2025-11", "2026-02", 3},
		{"Multiple years", "2023-01", "2025-07", 30},
		{"Reversed order is negative", "2025-07", "2025-03", -4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := MonthsBetween(tt.first, tt.second)
			if err != nil {
				t.Fatalf("MonthsBetween(%s, %s) error = %v", tt.first, tt.second, err)
			}
			if result != tt.expected {
				t.Errorf("MonthsBetween(%s, %s) = %d, expected %d", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestMonthsBetweenInvalid(t *testing.T) {
	if _, err := MonthsBetween("bogus", "2025-01"); err == nil {
		t.Error("MonthsBetween() with invalid first date should return an error")
	}
	if _, err := MonthsBetween("2025-01", "bogus"); err == nil {
		t.Error("MonthsBetween() with invalid second date should return an error")
	}
}

func TestDateBeforeDate(t *testing.T) {
	tests := []struct {
		name     string
		first    string
		second   string
		expected bool
	}{
		{"Strictly before", "2025-01", "2025-02", true},
		{"Equal dates", "2025-02", "2025-02", false},
		{"Strictly after", "2025-03", "2025-02", false},
		{"Across years", "2024-12", "2025-01", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := DateBeforeDate(tt.first, tt.second)
			if err != nil {
				t.Fatalf("DateBeforeDate(%s, %s) error = %v", tt.first, tt.second, err)
			}
			if result != tt.expected {
				t.Errorf("DateBeforeDate(%s, %s) = %v, expected %v", tt.first, tt.second, result, tt.expected)
			}
		})
	}
}

func TestAddMonths(t *testing.T) {
	base := MustParseTime(DateTimeLayout, "2025-10")
	result := AddMonths(base, 5).Format(DateTimeLayout)
	if result != "2026-03" {
		t.Errorf("AddMonths(2025-10, 5) = %s, expected 2026-03", result)
	}
}
