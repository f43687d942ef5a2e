package model

import "time"

// AlignedSample is a telemetry value indexed by distance along the lap.
type AlignedSample struct {
	Distance float64 `json:"distance"` // meters
	Value    float64 `json:"value"`
}

// CornerSpeed is the average speed of one corner interval
// [Start, End). Undefined is set when the interval contained no samples.
type CornerSpeed struct {
	Driver    string  `json:"driver"`
	Corner    int     `json:"corner"`
	AvgSpeed  float64 `json:"avgSpeed"`
	Undefined bool    `json:"undefined"`
	Start     float64 `json:"start"`
	End       float64 `json:"end"`
}

// CornerSpeedDiff is the signed per-corner speed difference of two drivers.
// Positive means the first driver was faster at that corner.
type CornerSpeedDiff struct {
	Corner    int     `json:"corner"`
	Diff      float64 `json:"diff"`
	Undefined bool    `json:"undefined"`
}

// Stint is one (driver, stint, compound) group with its lap count.
type Stint struct {
	Driver   string `json:"driver"`
	Stint    int    `json:"stint"`
	Compound string `json:"compound"`
	Laps     int    `json:"laps"`
}

// Strategy is the reconstructed tire strategy of one driver.
// Compounds lists the compound of each stint in stint order; consecutive
// stints on the same compound remain distinct entries.
type Strategy struct {
	Driver    string   `json:"driver"`
	Stops     int      `json:"stops"`
	Compounds []string `json:"compounds"`
}

// CompoundLap is one quick lap with its compound, used for
// lap-time-by-compound plots.
type CompoundLap struct {
	Lap      int           `json:"lap"`
	Compound string        `json:"compound"`
	Time     time.Duration `json:"time"`
}

// MergedDriverRow joins qualifying position, strategy and finish position
// of one driver for multivariate comparison.
type MergedDriverRow struct {
	Driver         string   `json:"driver"`
	QualiPosition  int      `json:"qualiPosition"`
	Stops          int      `json:"stops"`
	Compounds      []string `json:"compounds"`
	FinishPosition int      `json:"finishPosition"`
}
