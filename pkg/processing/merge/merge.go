// Package merge joins strategy, qualifying and race classification into
// one row per driver.
package merge

import (
	"context"
	"slices"

	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/pkg/processing/strategy"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
)

// EventStrategies loads the race and qualifying sessions of an event and
// joins reconstructed strategy, qualifying rank and finish rank per
// driver. Drivers missing from any of the three sources are dropped
// (inner join). Rows are sorted by qualifying rank ascending.
func EventStrategies(ctx context.Context, src provider.SessionSource,
	year int, eventName string,
) ([]model.MergedDriverRow, error) {
	race, err := src.LoadSession(ctx, year, eventName, model.SessionRace)
	if err != nil {
		return nil, err
	}
	quali, err := src.LoadSession(ctx, year, eventName, model.SessionQualifying)
	if err != nil {
		return nil, err
	}

	strategies := strategy.Reconstruct(race.Laps)
	qualiRank := ranks(quali.Results)
	raceRank := ranks(race.Results)

	ret := make([]model.MergedDriverRow, 0, len(strategies))
	for i := range strategies {
		st := strategies[i]
		qPos, ok := qualiRank[st.Driver]
		if !ok {
			continue
		}
		fPos, ok := raceRank[st.Driver]
		if !ok {
			continue
		}
		ret = append(ret, model.MergedDriverRow{
			Driver:         st.Driver,
			QualiPosition:  qPos,
			Stops:          st.Stops,
			Compounds:      st.Compounds,
			FinishPosition: fPos,
		})
	}
	slices.SortStableFunc(ret, func(a, b model.MergedDriverRow) int {
		return a.QualiPosition - b.QualiPosition
	})
	return ret, nil
}

// ranks assigns a 1-based rank per driver from the classification order.
func ranks(results []model.ResultRow) map[string]int {
	ret := make(map[string]int, len(results))
	for i := range results {
		ret[results[i].Driver] = i + 1
	}
	return ret
}
