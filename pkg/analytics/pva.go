package analytics

import "math"

// velocityWindow is the trailing-average window in entries (not calendar
// days: absent dates are simply excluded from the window).
const velocityWindow = 7

// DailyCount is one calendar day's aggregate count.
type DailyCount struct {
	Date  string `json:"date" db:"date"`
	Count int    `json:"count" db:"count"`
}

// DailyPoint is the per-day PVA detail.
type DailyPoint struct {
	Date         string  `json:"date"`
	Value        int     `json:"value"`
	Cumulative   int     `json:"cumulative"`
	Velocity     float64 `json:"velocity"`
	Acceleration float64 `json:"acceleration"`
}

// PVA is position/velocity/acceleration over a daily count series. The
// summary fields are taken from the most recent day.
type PVA struct {
	Position     int          `json:"position"`
	Velocity     float64      `json:"velocity"`
	Acceleration float64      `json:"acceleration"`
	Daily        []DailyPoint `json:"daily"`
}

// ComputePVA derives cumulative position, trailing 7-entry average velocity,
// and acceleration (change in velocity against the window ending one entry
// earlier) for a date-sorted count series. It is pure and stateless: empty
// input yields a zeroed summary with an empty detail list, and a single entry
// yields velocity = count and acceleration = 0.
func ComputePVA(counts []DailyCount) PVA {
	out := PVA{Daily: []DailyPoint{}}

	cumulative := 0
	for i, d := range counts {
		cumulative += d.Count

		velocity := windowAvg(counts, i+1)
		// The first entry has no prior window, so its acceleration is 0.
		accel := 0.0
		if i >= 1 {
			accel = velocity - windowAvg(counts, i)
		}

		out.Daily = append(out.Daily, DailyPoint{
			Date:         d.Date,
			Value:        d.Count,
			Cumulative:   cumulative,
			Velocity:     round2(velocity),
			Acceleration: round2(accel),
		})
	}

	if n := len(out.Daily); n > 0 {
		last := out.Daily[n-1]
		out.Position = last.Cumulative
		out.Velocity = last.Velocity
		out.Acceleration = last.Acceleration
	}
	return out
}

// windowAvg averages the up-to-7 most recent counts ending at index end-1.
// The window shrinks near the start of the series.
func windowAvg(counts []DailyCount, end int) float64 {
	start := end - velocityWindow
	if start < 0 {
		start = 0
	}
	sum := 0
	for _, d := range counts[start:end] {
		sum += d.Count
	}
	return float64(sum) / float64(end-start)
}

// round2 rounds to two decimal places for display consistency.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
