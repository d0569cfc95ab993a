package constants

import "time"

const (
	// Axis labels switch from time-of-day to calendar dates above this span
	DateFormatThreshold = 3 * 24 * time.Hour

	// Tick label layouts
	DateTickLayout = "2006-01-02"
	TimeTickLayout = "15:04"

	// Title and export layout, second precision
	TitleLayout = "2006-01-02 15:04:05"

	// Upper bound on labelled ticks along the time axis
	MaxTicks = 12

	// Upper bound on materialized buckets in one series
	MaxBuckets = 10_000_000
)

// Ranges exposed to the interactive surface
const (
	MinBarWidth  = 0.01
	MaxBarWidth  = 0.5
	BarWidthStep = 0.01

	MinShiftHours  = -24.0
	MaxShiftHours  = 24.0
	ShiftHoursStep = 1.0
)
