package provider

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/ohler55/ojg/oj"

	"github.com/aprs3/f1dashboard-go/log"
	"github.com/aprs3/f1dashboard-go/pkg/model"
)

// SnapshotSource reads sessions from snapshot files produced by the
// offline batch job. Layout:
//
//	<dir>/schedule.json
//	<dir>/<year>/<event-slug>/<session-slug>.json
type SnapshotSource struct {
	dir string
	now func() time.Time
	l   *log.Logger
}

type SnapshotOption func(*SnapshotSource)

func WithClock(now func() time.Time) SnapshotOption {
	return func(s *SnapshotSource) {
		s.now = now
	}
}

func WithLogger(l *log.Logger) SnapshotOption {
	return func(s *SnapshotSource) {
		s.l = l
	}
}

func NewSnapshotSource(dir string, opts ...SnapshotOption) *SnapshotSource {
	ret := &SnapshotSource{
		dir: dir,
		now: time.Now,
		l:   log.Default().Named("provider"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// wire format of the snapshot files; durations are stored as seconds
type (
	scheduleEntry struct {
		Year     int      `json:"year"`
		Name     string   `json:"name"`
		Date     string   `json:"date"` // RFC3339
		Sessions []string `json:"sessions"`
	}
	sessionDoc struct {
		Year      int                       `json:"year"`
		EventName string                    `json:"eventName"`
		Type      string                    `json:"type"`
		Drivers   []model.DriverInfo        `json:"drivers"`
		Laps      []lapDoc                  `json:"laps"`
		Telemetry map[string][]telemetryDoc `json:"telemetry"`
		Results   []model.ResultRow         `json:"results"`
		Circuit   model.CircuitInfo         `json:"circuit"`
	}
	lapDoc struct {
		Driver   string  `json:"driver"`
		Lap      int     `json:"lap"`
		Time     float64 `json:"time"` // seconds
		Compound string  `json:"compound"`
		Stint    int     `json:"stint"`
		Accurate bool    `json:"accurate"`
	}
	telemetryDoc struct {
		Lap      int     `json:"lap"`
		Time     float64 `json:"time"` // seconds since lap start
		Speed    float64 `json:"speed"`
		Throttle float64 `json:"throttle"`
	}
)

func (s *SnapshotSource) Events(ctx context.Context, years YearRange) (
	[]model.EventDescriptor, error,
) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(s.dir, "schedule.json"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	var entries []scheduleEntry
	if err := oj.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	cutoff := s.now().Add(-24 * time.Hour)
	byYear := make(map[int][]model.EventDescriptor)
	for i := range entries {
		e := entries[i]
		if e.Year < years.From || e.Year > years.To {
			continue
		}
		date, err := time.Parse(time.RFC3339, e.Date)
		if err != nil {
			s.l.Warn("skipping schedule entry with invalid date",
				log.String("event", e.Name), log.String("date", e.Date))
			continue
		}
		if !date.Before(cutoff) {
			continue
		}
		byYear[e.Year] = append(byYear[e.Year], model.EventDescriptor{
			Year:     e.Year,
			Name:     e.Name,
			Date:     date,
			Sessions: e.Sessions,
		})
	}
	ret := make([]model.EventDescriptor, 0)
	for year := years.To; year >= years.From; year-- {
		events := byYear[year]
		slices.SortStableFunc(events, func(a, b model.EventDescriptor) int {
			return b.Date.Compare(a.Date)
		})
		ret = append(ret, events...)
	}
	return ret, nil
}

//nolint:whitespace // editor/linter issue
func (s *SnapshotSource) LoadSession(
	ctx context.Context,
	year int,
	eventName string,
	sessionType model.SessionType,
) (*model.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	fn := filepath.Join(s.dir,
		fmt.Sprintf("%d", year), slug(eventName), slug(string(sessionType))+".json")
	data, err := os.ReadFile(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %d %s %s",
				ErrSessionNotFound, year, eventName, sessionType)
		}
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	doc := sessionDoc{}
	if err := oj.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
	s.l.Debug("loaded session snapshot",
		log.Int("year", year),
		log.String("event", eventName),
		log.String("session", string(sessionType)),
		log.Int("laps", len(doc.Laps)))
	return convertSessionDoc(&doc), nil
}

func convertSessionDoc(doc *sessionDoc) *model.Session {
	ret := &model.Session{
		Year:      doc.Year,
		EventName: doc.EventName,
		Type:      model.SessionType(doc.Type),
		Drivers:   doc.Drivers,
		Results:   doc.Results,
		Circuit:   doc.Circuit,
		Laps:      make([]model.Lap, 0, len(doc.Laps)),
		Telemetry: make(map[string][]model.TelemetrySample),
	}
	for i := range doc.Laps {
		l := doc.Laps[i]
		ret.Laps = append(ret.Laps, model.Lap{
			Driver:   l.Driver,
			Lap:      l.Lap,
			Time:     secs(l.Time),
			Compound: l.Compound,
			Stint:    l.Stint,
			Accurate: l.Accurate,
		})
	}
	for driver, samples := range doc.Telemetry {
		conv := make([]model.TelemetrySample, 0, len(samples))
		for i := range samples {
			conv = append(conv, model.TelemetrySample{
				Lap:      samples[i].Lap,
				Time:     secs(samples[i].Time),
				Speed:    samples[i].Speed,
				Throttle: samples[i].Throttle,
			})
		}
		ret.Telemetry[driver] = conv
	}
	return ret
}

func secs(arg float64) time.Duration {
	return time.Duration(arg * float64(time.Second))
}

func slug(arg string) string {
	return strings.ReplaceAll(strings.ToLower(arg), " ", "_")
}
