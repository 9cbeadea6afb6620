package analytics

import (
	"fmt"
	"reflect"
	"testing"
)

func TestComputePVAEmpty(t *testing.T) {
	got := ComputePVA(nil)

	if got.Position != 0 || got.Velocity != 0 || got.Acceleration != 0 {
		t.Errorf("empty input summary = %+v, want zeroes", got)
	}
	if got.Daily == nil || len(got.Daily) != 0 {
		t.Errorf("empty input should produce an empty (non-nil) daily list, got %v", got.Daily)
	}
}

func TestComputePVASingleEntry(t *testing.T) {
	got := ComputePVA([]DailyCount{{Date: "2026-08-01", Count: 10}})

	if got.Position != 10 {
		t.Errorf("position = %d, want 10", got.Position)
	}
	if got.Velocity != 10.0 {
		t.Errorf("velocity = %f, want 10.0 (window size 1)", got.Velocity)
	}
	if got.Acceleration != 0 {
		t.Errorf("acceleration = %f, want 0 (no prior window)", got.Acceleration)
	}
}

func TestComputePVACumulative(t *testing.T) {
	got := ComputePVA([]DailyCount{
		{Date: "2026-08-01", Count: 5},
		{Date: "2026-08-02", Count: 3},
		{Date: "2026-08-03", Count: 2},
	})

	var cumulative []int
	for _, d := range got.Daily {
		cumulative = append(cumulative, d.Cumulative)
	}
	if !reflect.DeepEqual(cumulative, []int{5, 8, 10}) {
		t.Errorf("cumulative = %v, want [5 8 10]", cumulative)
	}
	if got.Position != 10 {
		t.Errorf("position = %d, want 10", got.Position)
	}
}

func TestComputePVAVelocityWindow(t *testing.T) {
	got := ComputePVA([]DailyCount{
		{Date: "2026-08-01", Count: 4},
		{Date: "2026-08-02", Count: 8},
		{Date: "2026-08-03", Count: 6},
	})

	// Window shrinks at the start: size min(i+1, 7).
	wantVelocity := []float64{4.0, 6.0, 6.0}
	wantAccel := []float64{0.0, 2.0, 0.0} // prior windows: none, [4], [4 8]
	for i, d := range got.Daily {
		if d.Velocity != wantVelocity[i] {
			t.Errorf("velocity[%d] = %f, want %f", i, d.Velocity, wantVelocity[i])
		}
		if d.Acceleration != wantAccel[i] {
			t.Errorf("acceleration[%d] = %f, want %f", i, d.Acceleration, wantAccel[i])
		}
	}
}

func TestComputePVATrailingWindowDropsOldest(t *testing.T) {
	// Nine days of zeroes followed by a spike: by the last day, the first
	// entries must have scrolled out of the 7-entry window.
	counts := make([]DailyCount, 10)
	for i := range counts {
		counts[i] = DailyCount{Date: fmt.Sprintf("2026-08-%02d", i+1), Count: 0}
	}
	counts[9].Count = 14

	got := ComputePVA(counts)

	if got.Velocity != 2.0 {
		t.Errorf("velocity = %f, want 2.0 (14 over a 7-entry window)", got.Velocity)
	}
	if got.Acceleration != 2.0 {
		t.Errorf("acceleration = %f, want 2.0 (prior window all zeroes)", got.Acceleration)
	}
}

func TestComputePVANonContiguousDates(t *testing.T) {
	// Gaps are not zero-filled: only present entries feed the window.
	got := ComputePVA([]DailyCount{
		{Date: "2026-08-01", Count: 6},
		{Date: "2026-08-15", Count: 2},
	})

	if got.Velocity != 4.0 {
		t.Errorf("velocity = %f, want 4.0 (two present entries averaged)", got.Velocity)
	}
	if got.Position != 8 {
		t.Errorf("position = %d, want 8", got.Position)
	}
}

func TestComputePVARounding(t *testing.T) {
	got := ComputePVA([]DailyCount{
		{Date: "2026-08-01", Count: 1},
		{Date: "2026-08-02", Count: 1},
		{Date: "2026-08-03", Count: 0},
	})

	// Velocity at day 3: 2/3 = 0.666... rounds to 0.67.
	if got.Velocity != 0.67 {
		t.Errorf("velocity = %f, want 0.67", got.Velocity)
	}
	// Prior window [1 1]: 1.0; acceleration = 2/3 - 1 rounds to -0.33.
	if got.Acceleration != -0.33 {
		t.Errorf("acceleration = %f, want -0.33", got.Acceleration)
	}
	// Cumulative stays an exact integer.
	if got.Position != 2 {
		t.Errorf("position = %d, want 2", got.Position)
	}
}
