package aggregator

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/penwyp/go-event-timeline/internal/core/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		panic(err)
	}
	return t
}

func config(unit model.BucketUnit, shift float64) model.TimelineConfig {
	cfg := model.DefaultTimelineConfig()
	cfg.Unit = unit
	cfg.ShiftHours = shift
	return cfg
}

func TestAggregateMinutes(t *testing.T) {
	series, err := AggregateLines([]string{
		"2024-01-01 00:00:00",
		"2024-01-01 00:00:30",
		"2024-01-01 00:01:10",
	}, config(model.UnitMinutes, 0))
	require.NoError(t, err)

	assert.Equal(t, model.UnitMinutes, series.Unit)
	assert.Equal(t, []model.Bucket{
		{Start: ts("2024-01-01 00:00:00"), Count: 2},
		{Start: ts("2024-01-01 00:01:00"), Count: 1},
	}, series.Buckets)
}

func TestAggregateHoursWithShift(t *testing.T) {
	series, err := AggregateLines([]string{
		"2024-01-01 00:10:00",
		"2024-01-01 01:20:00",
	}, config(model.UnitHours, 2))
	require.NoError(t, err)

	assert.Equal(t, []model.Bucket{
		{Start: ts("2024-01-01 02:00:00"), Count: 1},
		{Start: ts("2024-01-01 03:00:00"), Count: 1},
	}, series.Buckets)
}

func TestAggregateFillsGaps(t *testing.T) {
	series, err := AggregateLines([]string{
		"2024-01-01 10:05:00",
		"2024-01-01 14:59:59",
	}, config(model.UnitHours, 0))
	require.NoError(t, err)

	require.Equal(t, 5, series.Len())
	counts := make([]int, 0, series.Len())
	for i, b := range series.Buckets {
		counts = append(counts, b.Count)
		assert.Equal(t, ts("2024-01-01 10:00:00").Add(time.Duration(i)*time.Hour), b.Start)
	}
	assert.Equal(t, []int{1, 0, 0, 0, 1}, counts)
}

func TestAggregateDays(t *testing.T) {
	series, err := AggregateLines([]string{
		"2024-02-28 23:59:59",
		"2024-03-01 00:00:00",
		"2024-03-01 12:00:00",
	}, config(model.UnitDays, 0))
	require.NoError(t, err)

	// leap year: 28th, 29th, 1st
	assert.Equal(t, []model.Bucket{
		{Start: ts("2024-02-28 00:00:00"), Count: 1},
		{Start: ts("2024-02-29 00:00:00"), Count: 0},
		{Start: ts("2024-03-01 00:00:00"), Count: 2},
	}, series.Buckets)
}

func TestAggregateBoundary(t *testing.T) {
	// an event exactly on a boundary belongs to the later bucket
	series, err := Aggregate([]time.Time{
		ts("2024-01-01 00:00:59"),
		ts("2024-01-01 00:01:00"),
	}, config(model.UnitMinutes, 0))
	require.NoError(t, err)

	assert.Equal(t, []model.Bucket{
		{Start: ts("2024-01-01 00:00:00"), Count: 1},
		{Start: ts("2024-01-01 00:01:00"), Count: 1},
	}, series.Buckets)
}

func TestAggregateSingleEvent(t *testing.T) {
	series, err := Aggregate([]time.Time{ts("2024-01-01 07:42:13")}, config(model.UnitHours, 0))
	require.NoError(t, err)
	assert.Equal(t, []model.Bucket{{Start: ts("2024-01-01 07:00:00"), Count: 1}}, series.Buckets)
}

func TestAggregateShift(t *testing.T) {
	events := []time.Time{
		ts("2024-01-01 23:30:00"),
		ts("2024-01-02 00:15:00"),
		ts("2024-01-02 01:45:00"),
	}

	tests := []struct {
		name      string
		shift     float64
		firstWant time.Time
		counts    []int
	}{
		{"negative", -1, ts("2024-01-01 22:00:00"), []int{1, 1, 1}},
		{"fractional", 0.5, ts("2024-01-02 00:00:00"), []int{2, 0, 1}},
		{"full day", 24, ts("2024-01-02 23:00:00"), []int{1, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series, err := Aggregate(events, config(model.UnitHours, tt.shift))
			require.NoError(t, err)
			assert.Equal(t, tt.firstWant, series.First())

			counts := make([]int, 0, series.Len())
			for _, b := range series.Buckets {
				counts = append(counts, b.Count)
			}
			assert.Equal(t, tt.counts, counts)
		})
	}
}

func TestAggregateShiftMatchesPreShiftedEvents(t *testing.T) {
	events := []time.Time{
		ts("2024-01-01 00:10:00"),
		ts("2024-01-01 03:59:00"),
		ts("2024-01-01 04:00:00"),
		ts("2024-01-01 09:30:00"),
	}
	shifted := make([]time.Time, len(events))
	for i, e := range events {
		shifted[i] = e.Add(3 * time.Hour)
	}

	a, err := Aggregate(events, config(model.UnitHours, 3))
	require.NoError(t, err)
	b, err := Aggregate(shifted, config(model.UnitHours, 0))
	require.NoError(t, err)
	assert.Equal(t, b, a)
}

func TestAggregateInvariants(t *testing.T) {
	base := ts("2024-05-01 08:00:00")
	var events []time.Time
	for i := 0; i < 500; i++ {
		events = append(events, base.Add(time.Duration(i*i)*time.Second))
	}
	// unsorted input
	events[0], events[499] = events[499], events[0]
	original := append([]time.Time(nil), events...)

	for _, unit := range model.BucketUnits {
		t.Run(unit.String(), func(t *testing.T) {
			series, err := Aggregate(events, config(unit, 1.5))
			require.NoError(t, err)

			assert.Equal(t, len(events), series.Total())
			for i := 1; i < series.Len(); i++ {
				assert.Equal(t, unit.Duration(), series.Buckets[i].Start.Sub(series.Buckets[i-1].Start))
			}
			for _, b := range series.Buckets {
				assert.Equal(t, b.Start, b.Start.Truncate(unit.Duration()))
				assert.GreaterOrEqual(t, b.Count, 0)
			}

			again, err := Aggregate(events, config(unit, 1.5))
			require.NoError(t, err)
			assert.Equal(t, series, again)
		})
	}
	assert.Equal(t, original, events)
}

func TestAggregateErrors(t *testing.T) {
	events := []time.Time{ts("2024-01-01 00:00:00")}

	_, err := Aggregate(nil, config(model.UnitMinutes, 0))
	assert.ErrorIs(t, err, model.ErrEmptyInput)

	_, err = Aggregate(events, config("weeks", 0))
	var unsupported *model.UnsupportedConfigurationError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "unit", unsupported.Field)
	assert.Equal(t, "weeks", unsupported.Value)

	// an unknown unit is reported before an empty input
	_, err = Aggregate(nil, config("weeks", 0))
	assert.True(t, errors.As(err, &unsupported))

	_, err = Aggregate(events, config(model.UnitMinutes, math.NaN()))
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "shift", unsupported.Field)

	_, err = Aggregate(events, config(model.UnitMinutes, math.Inf(1)))
	assert.True(t, errors.As(err, &unsupported))
}

func TestAggregateSpanTooLong(t *testing.T) {
	events := []time.Time{
		ts("1700-01-01 00:00:00"),
		ts("1800-06-01 00:00:00"),
		ts("2100-01-01 00:00:00"),
	}

	for _, unit := range model.BucketUnits {
		t.Run(unit.String(), func(t *testing.T) {
			series, err := Aggregate(events, config(unit, 0))
			var unsupported *model.UnsupportedConfigurationError
			require.True(t, errors.As(err, &unsupported))
			assert.Equal(t, "unit", unsupported.Field)
			assert.Equal(t, string(unit), unsupported.Value)
			assert.Contains(t, err.Error(), "too long")
			assert.Zero(t, series.Len())
		})
	}

	// just under the limit still covers every event
	series, err := Aggregate([]time.Time{
		ts("1800-01-01 00:00:00"),
		ts("2090-01-01 00:00:00"),
	}, config(model.UnitDays, 0))
	require.NoError(t, err)
	assert.Equal(t, ts("1800-01-01 00:00:00"), series.First())
	assert.Equal(t, ts("2090-01-01 00:00:00"), series.Last())
	assert.Equal(t, 2, series.Total())
	assert.Equal(t, 1, series.Buckets[series.Len()-1].Count)
}

func TestAggregateBucketLimit(t *testing.T) {
	events := []time.Time{
		ts("2000-01-01 00:00:00"),
		ts("2020-01-01 00:00:00"),
	}

	_, err := Aggregate(events, config(model.UnitMinutes, 0))
	var unsupported *model.UnsupportedConfigurationError
	require.True(t, errors.As(err, &unsupported))
	assert.Equal(t, "unit", unsupported.Field)
	assert.Equal(t, "minutes", unsupported.Value)
	assert.Contains(t, err.Error(), "coarser unit")
	assert.True(t, model.IsUserError(err))

	series, err := Aggregate(events, config(model.UnitHours, 0))
	require.NoError(t, err)
	assert.Equal(t, 175321, series.Len())
	assert.Equal(t, 2, series.Total())
}

func TestAggregateLinesMalformed(t *testing.T) {
	_, err := AggregateLines([]string{"2024-01-01 00:00:00", "nope"}, config(model.UnitMinutes, 0))

	var malformed *model.MalformedInputError
	require.True(t, errors.As(err, &malformed))
	assert.Equal(t, 2, malformed.Line)
	assert.Equal(t, "nope", malformed.Value)

	_, err = AggregateLines(nil, config(model.UnitMinutes, 0))
	assert.ErrorIs(t, err, model.ErrEmptyInput)
}
