// Package basedata provides sample sessions for tests.
package basedata

import (
	"time"

	"github.com/aprs3/f1dashboard-go/pkg/model"
)

func TestTime() time.Time {
	t, _ := time.Parse(time.RFC3339, "2024-04-28T11:10:12Z")
	return t
}

func SampleCircuit() model.CircuitInfo {
	return model.CircuitInfo{
		Name:   "testcircuit",
		Length: 1000,
		Corners: []model.Corner{
			{Number: 1, Distance: 100},
			{Number: 2, Distance: 400},
			{Number: 3, Distance: 900},
		},
	}
}

func SampleDrivers() []model.DriverInfo {
	return []model.DriverInfo{
		{Code: "VER", FullName: "Max Verstappen", Team: "Red Bull Racing", TeamColor: "#0600EF"},
		{Code: "HAM", FullName: "Lewis Hamilton", Team: "Mercedes", TeamColor: "#00D2BE"},
	}
}

// SampleRaceLaps models a two stop race for VER (SOFT-MEDIUM-HARD) and a
// one stop race for HAM (MEDIUM-HARD).
func SampleRaceLaps() []model.Lap {
	ret := make([]model.Lap, 0, 18)
	addStint := func(driver string, startLap, stint, count int,
		compound string, base time.Duration,
	) {
		for i := range count {
			ret = append(ret, model.Lap{
				Driver:   driver,
				Lap:      startLap + i,
				Time:     base + time.Duration(i)*100*time.Millisecond,
				Compound: compound,
				Stint:    stint,
				Accurate: true,
			})
		}
	}
	addStint("VER", 1, 1, 3, "SOFT", 90*time.Second)
	addStint("VER", 4, 2, 2, "MEDIUM", 91*time.Second)
	addStint("VER", 6, 3, 4, "HARD", 92*time.Second)
	addStint("HAM", 1, 1, 5, "MEDIUM", 91*time.Second)
	addStint("HAM", 6, 2, 4, "HARD", 92*time.Second)
	return ret
}

// ConstantSpeedTelemetry emits samples at a fixed speed. With speed in
// km/h and interval dt the covered distance is speed/3.6 * elapsed
// seconds.
//
//nolint:whitespace // editor/linter issue
func ConstantSpeedTelemetry(
	lap, count int, speed float64, dt time.Duration,
) []model.TelemetrySample {
	ret := make([]model.TelemetrySample, 0, count)
	for i := range count {
		ret = append(ret, model.TelemetrySample{
			Lap:      lap,
			Time:     time.Duration(i) * dt,
			Speed:    speed,
			Throttle: 100,
		})
	}
	return ret
}

func SampleRaceSession() *model.Session {
	return &model.Session{
		Year:      2024,
		EventName: "Testland Grand Prix",
		Type:      model.SessionRace,
		Drivers:   SampleDrivers(),
		Laps:      SampleRaceLaps(),
		Telemetry: map[string][]model.TelemetrySample{
			// 180 km/h is 50 m/s, 144 km/h is 40 m/s
			"VER": ConstantSpeedTelemetry(1, 21, 180, time.Second),
			"HAM": ConstantSpeedTelemetry(1, 26, 144, time.Second),
		},
		Results: []model.ResultRow{
			{Position: 1, Driver: "VER", FullName: "Max Verstappen", Team: "Red Bull Racing"},
			{Position: 2, Driver: "HAM", FullName: "Lewis Hamilton", Team: "Mercedes"},
		},
		Circuit: SampleCircuit(),
	}
}

func SampleQualiSession() *model.Session {
	ret := SampleRaceSession()
	ret.Type = model.SessionQualifying
	ret.Results = []model.ResultRow{
		{Position: 1, Driver: "HAM", FullName: "Lewis Hamilton", Team: "Mercedes"},
		{Position: 2, Driver: "VER", FullName: "Max Verstappen", Team: "Red Bull Racing"},
	}
	return ret
}

func SampleEventDescriptor() model.EventDescriptor {
	return model.EventDescriptor{
		Year: 2024,
		Name: "Testland Grand Prix",
		Date: TestTime(),
		Sessions: []string{
			"Practice 1", "Practice 2", "Practice 3", "Qualifying", "Race",
		},
	}
}
