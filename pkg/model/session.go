package model

import "time"

type SessionType string

const (
	SessionPractice1  SessionType = "Practice 1"
	SessionPractice2  SessionType = "Practice 2"
	SessionPractice3  SessionType = "Practice 3"
	SessionQualifying SessionType = "Qualifying"
	SessionRace       SessionType = "Race"
)

// Session holds all data of a loaded session. It is immutable once loaded.
type Session struct {
	Year      int                          `json:"year"`
	EventName string                       `json:"eventName"`
	Type      SessionType                  `json:"type"`
	Drivers   []DriverInfo                 `json:"drivers"`
	Laps      []Lap                        `json:"laps"`
	Telemetry map[string][]TelemetrySample `json:"telemetry"` // key: driver code
	Results   []ResultRow                  `json:"results"`   // classification order
	Circuit   CircuitInfo                  `json:"circuit"`
}

type DriverInfo struct {
	Code      string `json:"code"` // short code, e.g. VER
	FullName  string `json:"fullName"`
	Team      string `json:"team"`
	TeamColor string `json:"teamColor"`
}

// Lap is one lap record of a driver.
type Lap struct {
	Driver   string        `json:"driver"`
	Lap      int           `json:"lap"`
	Time     time.Duration `json:"time"`
	Compound string        `json:"compound"`
	Stint    int           `json:"stint"` // starts at 1, increments at each pit stop
	Accurate bool          `json:"accurate"`
}

// TelemetrySample is one raw car data sample within a lap.
// Time is the elapsed time since the start of the lap.
type TelemetrySample struct {
	Lap      int           `json:"lap"`
	Time     time.Duration `json:"time"`
	Speed    float64       `json:"speed"`    // km/h
	Throttle float64       `json:"throttle"` // percent
}

type ResultRow struct {
	Position int    `json:"position"`
	Driver   string `json:"driver"`
	FullName string `json:"fullName"`
	Team     string `json:"team"`
}

type CircuitInfo struct {
	Name    string   `json:"name"`
	Length  float64  `json:"length"` // meters
	Corners []Corner `json:"corners"`
}

// Corner is a corner reference point along the lap. Corners are numbered
// 1-based in physical order, Distance is the marker along the lap in meters.
type Corner struct {
	Number   int     `json:"number"`
	Distance float64 `json:"distance"`
}

// Driver returns the roster entry for the given driver code.
func (s *Session) Driver(code string) (DriverInfo, bool) {
	for i := range s.Drivers {
		if s.Drivers[i].Code == code {
			return s.Drivers[i], true
		}
	}
	return DriverInfo{}, false
}

// DriverCodes returns the short codes of all drivers in the session.
func (s *Session) DriverCodes() []string {
	codes := make([]string, 0, len(s.Drivers))
	for i := range s.Drivers {
		codes = append(codes, s.Drivers[i].Code)
	}
	return codes
}

// DriverLaps returns all lap records of the given driver.
func (s *Session) DriverLaps(code string) []Lap {
	laps := make([]Lap, 0)
	for i := range s.Laps {
		if s.Laps[i].Driver == code {
			laps = append(laps, s.Laps[i])
		}
	}
	return laps
}
