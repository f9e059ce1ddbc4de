package entity

import (
	"fmt"
	"time"

	"github.com/costsynth/costsynth-go/internal/shared/types"
)

// MonthSegment is one calendar-month-aligned slice of the caller's date
// range, with the first and last segments clipped to the caller's actual
// boundaries.
type MonthSegment struct {
	Name  string
	Start time.Time
	End   time.Time
}

// MonthList splits a date range into one segment per calendar month touched,
// in chronological order. Leap years and 28/29/30/31-day months follow the
// calendar.
func MonthList(startDate, endDate time.Time) ([]MonthSegment, error) {
	if startDate.IsZero() || endDate.IsZero() || endDate.Before(startDate) {
		return nil, fmt.Errorf("month list: %w", types.ErrInvalidTimeRange)
	}

	var months []MonthSegment
	current := time.Date(startDate.Year(), startDate.Month(), 1, 0, 0, 0, 0, startDate.Location())
	for !current.After(endDate) {
		// Último dia do mês corrente: primeiro do próximo menos um dia.
		lastDay := current.AddDate(0, 1, -1)

		segment := MonthSegment{
			Name:  current.Month().String(),
			Start: current,
			End:   time.Date(lastDay.Year(), lastDay.Month(), lastDay.Day(), 0, 0, 0, 0, startDate.Location()),
		}
		if current.Year() == startDate.Year() && current.Month() == startDate.Month() {
			segment.Start = startDate
		}
		if current.Year() == endDate.Year() && current.Month() == endDate.Month() {
			segment.End = endDate
		}
		months = append(months, segment)
		current = current.AddDate(0, 1, 0)
	}
	return months, nil
}
