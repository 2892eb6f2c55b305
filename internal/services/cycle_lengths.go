package services

import (
	"time"

	"github.com/terraincognita07/ovumcy/internal/models"
)

// CycleLengthSamples returns one length per adjacent pair of cycles, measured
// between their start dates. Cycles must be ordered by start date ascending.
// The stored cycle_length column is never consulted.
func CycleLengthSamples(cycles []models.Cycle) []int {
	if len(cycles) < 2 {
		return nil
	}

	lengths := make([]int, 0, len(cycles)-1)
	for i := 1; i < len(cycles); i++ {
		lengths = append(lengths, daysBetween(cycles[i-1].StartDate, cycles[i].StartDate))
	}
	return lengths
}

// PeriodLengthSamples returns end-start+1 for every cycle with an end date.
func PeriodLengthSamples(cycles []models.Cycle) []int {
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		if cycle.EndDate == nil {
			continue
		}
		lengths = append(lengths, inclusivePeriodLength(cycle.StartDate, *cycle.EndDate))
	}
	return lengths
}

// predictionPeriodLengths prefers the stored period_length and falls back to
// the end date when it is missing.
func predictionPeriodLengths(cycles []models.Cycle) []int {
	lengths := make([]int, 0, len(cycles))
	for _, cycle := range cycles {
		switch {
		case cycle.PeriodLength != nil && *cycle.PeriodLength > 0:
			lengths = append(lengths, *cycle.PeriodLength)
		case cycle.EndDate != nil:
			lengths = append(lengths, inclusivePeriodLength(cycle.StartDate, *cycle.EndDate))
		}
	}
	return lengths
}

func inclusivePeriodLength(start time.Time, end time.Time) int {
	return daysBetween(start, end) + 1
}

// daysBetween counts calendar days from a to b. Both are reduced to their UTC
// calendar date first, so zone offsets and DST never change the result.
func daysBetween(a time.Time, b time.Time) int {
	return int(CalendarDay(b).Sub(CalendarDay(a)).Hours() / 24)
}

// CalendarDay returns the calendar date of value as midnight UTC.
func CalendarDay(value time.Time) time.Time {
	y, m, d := value.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addDays(day time.Time, days int) time.Time {
	return CalendarDay(day).AddDate(0, 0, days)
}

func averageInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	var total int
	for _, value := range values {
		total += value
	}
	return float64(total) / float64(len(values))
}

func minMaxInts(values []int) (int, int) {
	if len(values) == 0 {
		return 0, 0
	}
	low, high := values[0], values[0]
	for _, value := range values[1:] {
		if value < low {
			low = value
		}
		if value > high {
			high = value
		}
	}
	return low, high
}
