package generator

import (
	"fmt"
	"time"

	"github.com/costsynth/costsynth-go/internal/shared/types"
)

// TimeWindow é uma janela de uma hora dentro da linha do tempo de um gerador.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// Row is one line of a report: a mapping from every column of the provider
// schema to its rendered string value. Column order lives in the provider's
// column list, not in the row itself.
type Row map[string]string

// Generator is the contract every resource generator implements: produce the
// fully-populated row set for its hourly timeline. Each call recomputes the
// rows; nothing is cached between calls.
type Generator interface {
	GenerateData() ([]Row, error)
}

// Hours builds the list of one-hour windows between start and end. The end
// date is normalized to hour 23 of its day, and windows are emitted while the
// next full hour still fits. A start and end inside the same hour produce an
// empty timeline, which is valid.
func Hours(start, end time.Time) ([]TimeWindow, error) {
	if start.IsZero() || end.IsZero() {
		return nil, fmt.Errorf("building timeline: %w", types.ErrInvalidTimeRange)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("building timeline: end %s before start %s: %w",
			end.Format(time.RFC3339), start.Format(time.RFC3339), types.ErrInvalidTimeRange)
	}

	normalizedEnd := time.Date(end.Year(), end.Month(), end.Day(), 23, end.Minute(), end.Second(), 0, end.Location())

	hours := []TimeWindow{}
	cur := start
	for !cur.Add(time.Hour).After(normalizedEnd) {
		hours = append(hours, TimeWindow{Start: cur, End: cur.Add(time.Hour)})
		cur = cur.Add(time.Hour)
	}
	return hours, nil
}

// NextMonth returns the first day of the month following in_date's month.
func NextMonth(in time.Time) time.Time {
	first := time.Date(in.Year(), in.Month(), 1, 0, 0, 0, 0, in.Location())
	return first.AddDate(0, 1, 0)
}

// Timestamp renders a date in the fixed report timestamp format. The exact
// format is part of the output contract and must not change.
func Timestamp(in time.Time) (string, error) {
	if in.IsZero() {
		return "", fmt.Errorf("timestamp: %w", types.ErrInvalidTimeRange)
	}
	return in.Format("2006-01-02T15:04:05Z"), nil
}

// TimeInterval composes the start/end interval string used by identity
// columns.
func TimeInterval(start, end time.Time) (string, error) {
	startStr, err := Timestamp(start)
	if err != nil {
		return "", err
	}
	endStr, err := Timestamp(end)
	if err != nil {
		return "", err
	}
	return startStr + "/" + endStr, nil
}
