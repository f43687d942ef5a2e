// Package strategy reconstructs tire strategies from lap records.
package strategy

import (
	"cmp"
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/aprs3/f1dashboard-go/pkg/model"
)

// QuickLapThreshold marks laps slower than this fraction of the driver's
// personal best as outliers (in/out/safety-car laps).
const QuickLapThreshold = 1.07

type stintKey struct {
	driver   string
	stint    int
	compound string
}

// StintLengths groups laps by (driver, stint, compound) and counts the
// laps per group. Rows are ordered by driver, then stint number.
func StintLengths(laps []model.Lap) []model.Stint {
	groups := lo.GroupBy(laps, func(l model.Lap) stintKey {
		return stintKey{driver: l.Driver, stint: l.Stint, compound: l.Compound}
	})
	ret := lo.MapToSlice(groups, func(k stintKey, group []model.Lap) model.Stint {
		return model.Stint{
			Driver:   k.driver,
			Stint:    k.stint,
			Compound: k.compound,
			Laps:     len(group),
		}
	})
	slices.SortStableFunc(ret, func(a, b model.Stint) int {
		if c := cmp.Compare(a.Driver, b.Driver); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Stint, b.Stint); c != 0 {
			return c
		}
		return cmp.Compare(a.Compound, b.Compound)
	})
	return ret
}

// Reconstruct derives one strategy row per driver: stop count and the
// compound sequence in stint order. Consecutive stints on the same
// compound remain distinct entries. Should the grouping ever yield more
// than one candidate row per driver, the first one wins.
func Reconstruct(laps []model.Lap) []model.Strategy {
	stints := StintLengths(laps)
	seen := make(map[string]int) // driver -> index into ret
	ret := make([]model.Strategy, 0)
	for i := range stints {
		st := stints[i]
		idx, ok := seen[st.Driver]
		if !ok {
			seen[st.Driver] = len(ret)
			ret = append(ret, model.Strategy{
				Driver:    st.Driver,
				Compounds: []string{st.Compound},
				Stops:     st.Stint - 1,
			})
			continue
		}
		ret[idx].Compounds = append(ret[idx].Compounds, st.Compound)
		if st.Stint-1 > ret[idx].Stops {
			ret[idx].Stops = st.Stint - 1
		}
	}
	return ret
}

// QuickLaps returns the driver's (lap, compound, lap time) triples
// filtered to quick laps: laps within QuickLapThreshold of the driver's
// personal best in this lap set.
func QuickLaps(laps []model.Lap, driver string) []model.CompoundLap {
	timed := lo.Filter(laps, func(l model.Lap, _ int) bool {
		return l.Driver == driver && l.Time > 0
	})
	if len(timed) == 0 {
		return []model.CompoundLap{}
	}
	best := timed[0].Time
	for i := range timed {
		if timed[i].Time < best {
			best = timed[i].Time
		}
	}
	limit := time.Duration(float64(best) * QuickLapThreshold)
	quick := lo.Filter(timed, func(l model.Lap, _ int) bool {
		return l.Time <= limit
	})
	ret := lo.Map(quick, func(l model.Lap, _ int) model.CompoundLap {
		return model.CompoundLap{Lap: l.Lap, Compound: l.Compound, Time: l.Time}
	})
	slices.SortStableFunc(ret, func(a, b model.CompoundLap) int {
		return a.Lap - b.Lap
	})
	return ret
}
