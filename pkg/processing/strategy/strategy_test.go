package strategy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/testsupport/basedata"
)

func TestStintLengths(t *testing.T) {
	stints := StintLengths(basedata.SampleRaceLaps())
	require.Len(t, stints, 5)
	// ordered by driver, then stint
	assert.Equal(t, model.Stint{Driver: "HAM", Stint: 1, Compound: "MEDIUM", Laps: 5},
		stints[0])
	assert.Equal(t, model.Stint{Driver: "HAM", Stint: 2, Compound: "HARD", Laps: 4},
		stints[1])
	assert.Equal(t, model.Stint{Driver: "VER", Stint: 1, Compound: "SOFT", Laps: 3},
		stints[2])
	assert.Equal(t, model.Stint{Driver: "VER", Stint: 2, Compound: "MEDIUM", Laps: 2},
		stints[3])
	assert.Equal(t, model.Stint{Driver: "VER", Stint: 3, Compound: "HARD", Laps: 4},
		stints[4])
}

func TestReconstruct(t *testing.T) {
	strategies := Reconstruct(basedata.SampleRaceLaps())
	require.Len(t, strategies, 2)
	assert.Equal(t, "HAM", strategies[0].Driver)
	assert.Equal(t, 1, strategies[0].Stops)
	assert.Equal(t, []string{"MEDIUM", "HARD"}, strategies[0].Compounds)
	assert.Equal(t, "VER", strategies[1].Driver)
	assert.Equal(t, 2, strategies[1].Stops)
	assert.Equal(t, []string{"SOFT", "MEDIUM", "HARD"}, strategies[1].Compounds)
}

func TestReconstruct_SameCompoundTwice(t *testing.T) {
	laps := []model.Lap{
		{Driver: "VER", Lap: 1, Stint: 1, Compound: "HARD", Time: 90 * time.Second},
		{Driver: "VER", Lap: 2, Stint: 2, Compound: "HARD", Time: 91 * time.Second},
	}
	strategies := Reconstruct(laps)
	require.Len(t, strategies, 1)
	assert.Equal(t, 1, strategies[0].Stops)
	assert.Equal(t, []string{"HARD", "HARD"}, strategies[0].Compounds)
}

func TestReconstruct_Empty(t *testing.T) {
	assert.Empty(t, Reconstruct([]model.Lap{}))
}

func TestQuickLaps(t *testing.T) {
	laps := []model.Lap{
		{Driver: "VER", Lap: 1, Compound: "SOFT", Time: 90 * time.Second},
		{Driver: "VER", Lap: 2, Compound: "SOFT", Time: 95 * time.Second},
		// above 107% of the 90s personal best
		{Driver: "VER", Lap: 3, Compound: "SOFT", Time: 100 * time.Second},
		// untimed laps are dropped
		{Driver: "VER", Lap: 4, Compound: "SOFT", Time: 0},
		{Driver: "HAM", Lap: 1, Compound: "HARD", Time: 89 * time.Second},
	}
	quick := QuickLaps(laps, "VER")
	require.Len(t, quick, 2)
	assert.Equal(t, 1, quick[0].Lap)
	assert.Equal(t, 2, quick[1].Lap)
	assert.Equal(t, "SOFT", quick[0].Compound)
	assert.Equal(t, 90*time.Second, quick[0].Time)
}

func TestQuickLaps_ThresholdBoundary(t *testing.T) {
	laps := []model.Lap{
		{Driver: "VER", Lap: 1, Compound: "SOFT", Time: 100 * time.Second},
		// exactly at the limit
		{Driver: "VER", Lap: 2, Compound: "SOFT", Time: 107 * time.Second},
	}
	quick := QuickLaps(laps, "VER")
	assert.Len(t, quick, 2)
}

func TestQuickLaps_UnknownDriver(t *testing.T) {
	assert.Empty(t, QuickLaps(basedata.SampleRaceLaps(), "XXX"))
}

func TestCompoundColors(t *testing.T) {
	colors := CompoundColors()
	assert.Equal(t, "#DA291C", colors["SOFT"])
	assert.Contains(t, colors, "INTERMEDIATE")
	assert.Contains(t, colors, "WET")
}
