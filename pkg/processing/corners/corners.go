// Package corners bins distance-indexed telemetry into corner intervals
// and compares the per-corner aggregates of two drivers.
package corners

import (
	"cmp"
	"slices"

	"github.com/aprs3/f1dashboard-go/pkg/model"
)

// SegmentByCorners partitions a distance-ordered telemetry series into the
// circuit's corner intervals and computes the average value per interval.
// Interval i covers [corner[i-1].Distance, corner[i].Distance); the first
// interval starts at 0, samples past the last corner are discarded.
// An interval without samples yields an undefined row.
//
// Samples and corners are consumed in one ordered sweep, so the cost is
// O(samples + corners).
func SegmentByCorners(driver string, samples []model.AlignedSample,
	corners []model.Corner,
) []model.CornerSpeed {
	ordered := make([]model.Corner, len(corners))
	copy(ordered, corners)
	slices.SortStableFunc(ordered, func(a, b model.Corner) int {
		return cmp.Compare(a.Distance, b.Distance)
	})

	ret := make([]model.CornerSpeed, 0, len(ordered))
	start := 0.0
	sum := 0.0
	count := 0
	si := 0
	for _, corner := range ordered {
		for si < len(samples) && samples[si].Distance < corner.Distance {
			sum += samples[si].Value
			count++
			si++
		}
		row := model.CornerSpeed{
			Driver: driver,
			Corner: corner.Number,
			Start:  start,
			End:    corner.Distance,
		}
		if count > 0 {
			row.AvgSpeed = sum / float64(count)
		} else {
			row.Undefined = true
		}
		ret = append(ret, row)
		start = corner.Distance
		sum = 0.0
		count = 0
	}
	slices.SortStableFunc(ret, func(a, b model.CornerSpeed) int {
		return a.Corner - b.Corner
	})
	return ret
}

// SpeedDiff joins two corner aggregate sets on corner number and returns
// the signed difference a-b per corner. Positive means the first driver
// was faster. Corners missing on either side are dropped; corners
// undefined on either side stay in the output but are marked undefined.
func SpeedDiff(a, b []model.CornerSpeed) []model.CornerSpeedDiff {
	other := make(map[int]model.CornerSpeed, len(b))
	for i := range b {
		other[b[i].Corner] = b[i]
	}
	ret := make([]model.CornerSpeedDiff, 0, len(a))
	for i := range a {
		bRow, ok := other[a[i].Corner]
		if !ok {
			continue
		}
		row := model.CornerSpeedDiff{Corner: a[i].Corner}
		if a[i].Undefined || bRow.Undefined {
			row.Undefined = true
		} else {
			row.Diff = a[i].AvgSpeed - bRow.AvgSpeed
		}
		ret = append(ret, row)
	}
	slices.SortStableFunc(ret, func(x, y model.CornerSpeedDiff) int {
		return x.Corner - y.Corner
	})
	return ret
}
