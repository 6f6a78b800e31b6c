// Package cpiseries provides consumer-price-index series lookup plus the
// caching boundary used to provision series data for CPI-linked plans.
package cpiseries

import (
	"fmt"
	"sort"
	"time"

	"github.com/finance-tools/loan-schedule/pkg/constants"
)

// Point is a single CPI observation.
type Point struct {
	Date  string  `json:"date" yaml:"date"`
	Index float64 `json:"index" yaml:"index"`
}

// Series is an ordered CPI series. The zero value is an empty series; every
// lookup against it is a miss.
type Series struct {
	points []Point
}

// NewSeries validates and sorts the given observations into a Series. Dates
// must parse with the standard layout and index values must not be negative.
func NewSeries(points []Point) (Series, error) {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	for _, p := range sorted {
		if _, err := time.Parse(constants.DateTimeLayout, p.Date); err != nil {
			return Series{}, fmt.Errorf("invalid CPI date %q: %w", p.Date, err)
		}
		if p.Index < 0 {
			return Series{}, fmt.Errorf("negative CPI index %.4f at %s", p.Index, p.Date)
		}
	}
	// The date layout sorts lexicographically in chronological order.
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})
	return Series{points: sorted}, nil
}

// At returns the latest index value at or before the given date. The second
// return value is false when no observation exists at or before the date.
func (s Series) At(date string) (float64, bool) {
	n := len(s.points)
	if n == 0 {
		return 0, false
	}
	// First point strictly after the date; the answer precedes it.
	i := sort.Search(n, func(i int) bool {
		return s.points[i].Date > date
	})
	if i == 0 {
		return 0, false
	}
	return s.points[i-1].Index, true
}

// Len returns the number of observations in the series.
func (s Series) Len() int {
	return len(s.points)
}

// Points returns a copy of the ordered observations.
func (s Series) Points() []Point {
	out := make([]Point, len(s.points))
	copy(out, s.points)
	return out
}
