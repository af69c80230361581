package folioscout

import "math"

// SeriesPoint is the (value, cumulative contribution) pair of one day, the
// only inputs the time-weighted return needs.
type SeriesPoint struct {
	NetWorth     float64
	Contribution float64
}

// PeriodReturn computes the growth factor of a single period between two
// adjacent points. The cash flow of the period is the change in cumulative
// contribution, attributed to the start of the period: the baseline is the
// previous value plus the flow. Degenerate baselines (zero, or producing a
// non-finite ratio) yield the neutral factor 1 so that a broken day cannot
// distort the chain.
func PeriodReturn(prev, curr SeriesPoint) float64 {
	cashFlow := curr.Contribution - prev.Contribution
	base := prev.NetWorth + cashFlow
	if base == 0 {
		return 1
	}
	ratio := curr.NetWorth / base
	if math.IsNaN(ratio) || math.IsInf(ratio, 0) {
		return 1
	}
	return ratio
}

// TWRR computes the chained time-weighted rate of return between two indices
// of a date-ordered series, immune to the distorting effect of external cash
// flows. A zero-length range is the identity: 0%.
//
// The whole-history TWRR of every snapshot is precomputed during series
// construction; this function exists for arbitrary sub-ranges, such as a
// zoomed date window, and recomputes the chain from scratch.
func TWRR(points []SeriesPoint, startIndex, endIndex int) Percent {
	if startIndex < 0 {
		startIndex = 0
	}
	if endIndex > len(points)-1 {
		endIndex = len(points) - 1
	}

	cumulativeGrowth := 1.0
	for i := startIndex + 1; i <= endIndex; i++ {
		cumulativeGrowth *= PeriodReturn(points[i-1], points[i])
	}
	return Percent((cumulativeGrowth - 1) * 100)
}

// Points projects snapshots onto the value/contribution pairs TWRR consumes.
func Points(snapshots []DailySnapshot) []SeriesPoint {
	points := make([]SeriesPoint, len(snapshots))
	for i, s := range snapshots {
		points[i] = SeriesPoint{NetWorth: s.NetWorth, Contribution: s.Contribution}
	}
	return points
}
