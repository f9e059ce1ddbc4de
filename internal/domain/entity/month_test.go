package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costsynth/costsynth-go/internal/shared/types"
)

func TestMonthList(t *testing.T) {
	t.Run("range inside one month yields one clipped segment", func(t *testing.T) {
		start := time.Date(2024, 6, 5, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 20, 0, 0, 0, 0, time.UTC)

		months, err := MonthList(start, end)

		require.NoError(t, err)
		require.Len(t, months, 1)
		assert.Equal(t, "June", months[0].Name)
		assert.Equal(t, start, months[0].Start)
		assert.Equal(t, end, months[0].End)
	})

	t.Run("range across three months clips first and last only", func(t *testing.T) {
		start := time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 7, 10, 0, 0, 0, 0, time.UTC)

		months, err := MonthList(start, end)

		require.NoError(t, err)
		require.Len(t, months, 3)

		assert.Equal(t, "May", months[0].Name)
		assert.Equal(t, start, months[0].Start)
		assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), months[0].End)

		assert.Equal(t, "June", months[1].Name)
		assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), months[1].Start)
		assert.Equal(t, time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC), months[1].End)

		assert.Equal(t, "July", months[2].Name)
		assert.Equal(t, time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), months[2].Start)
		assert.Equal(t, end, months[2].End)
	})

	t.Run("leap february keeps 29 days", func(t *testing.T) {
		start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

		months, err := MonthList(start, end)

		require.NoError(t, err)
		require.Len(t, months, 2)
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), months[0].End)
	})

	t.Run("year boundary is crossed in order", func(t *testing.T) {
		start := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

		months, err := MonthList(start, end)

		require.NoError(t, err)
		require.Len(t, months, 2)
		assert.Equal(t, "December", months[0].Name)
		assert.Equal(t, "January", months[1].Name)
		assert.Equal(t, 2024, months[1].Start.Year())
	})

	t.Run("end before start returns invalid range", func(t *testing.T) {
		start := time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

		_, err := MonthList(start, end)

		assert.True(t, errors.Is(err, types.ErrInvalidTimeRange))
	})

	t.Run("zero dates return invalid range", func(t *testing.T) {
		_, err := MonthList(time.Time{}, time.Time{})

		assert.True(t, errors.Is(err, types.ErrInvalidTimeRange))
	})
}
