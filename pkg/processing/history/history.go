// Package history aggregates the flat historical snapshot files.
package history

import (
	"cmp"
	"encoding/csv"
	"fmt"
	"os"
	"slices"
	"strconv"
	"time"

	"github.com/samber/lo"

	"github.com/aprs3/f1dashboard-go/log"
	"github.com/aprs3/f1dashboard-go/pkg/model"
)

// Engine computes country and team aggregations over the snapshot files.
// Both computations are pure functions of the file contents and the year
// range.
type Engine struct {
	scheduleFile string
	winnersFile  string
	palette      map[string]string
	defaultColor string
	l            *log.Logger
}

type Option func(*Engine)

func WithPalette(arg map[string]string) Option {
	return func(e *Engine) {
		e.palette = arg
	}
}

func WithDefaultColor(arg string) Option {
	return func(e *Engine) {
		e.defaultColor = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(e *Engine) {
		e.l = arg
	}
}

func New(scheduleFile, winnersFile string, opts ...Option) *Engine {
	ret := &Engine{
		scheduleFile: scheduleFile,
		winnersFile:  winnersFile,
		palette:      DefaultPalette(),
		defaultColor: DefaultColor,
		l:            log.Default().Named("history"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// CountryCounts returns the number of events per country within the
// inclusive year range, with resolved ISO-3166 alpha-3 codes. Countries
// whose code cannot be resolved are dropped.
func (e *Engine) CountryCounts(startYear, endYear int) (
	[]model.CountryEventCount, error,
) {
	rows, err := readCSV(e.scheduleFile, ';')
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, row := range rows {
		year, ok := eventYear(row["EventDate"])
		if !ok {
			e.l.Warn("skipping row with unparsable date",
				log.String("date", row["EventDate"]))
			continue
		}
		if year < startYear || year > endYear {
			continue
		}
		counts[row["Country"]]++
	}
	ret := make([]model.CountryEventCount, 0, len(counts))
	for country, count := range counts {
		iso, ok := isoCode(country)
		if !ok {
			e.l.Warn("no ISO code for country", log.String("country", country))
			continue
		}
		ret = append(ret, model.CountryEventCount{
			Country: country,
			Count:   count,
			ISO:     iso,
		})
	}
	slices.SortStableFunc(ret, func(a, b model.CountryEventCount) int {
		if c := cmp.Compare(b.Count, a.Count); c != 0 {
			return c
		}
		return cmp.Compare(a.Country, b.Country)
	})
	return ret, nil
}

// TeamWins returns the number of race wins per team within the inclusive
// year range, sorted by wins descending. The display color falls back to
// the default color when the team is not in the palette.
func (e *Engine) TeamWins(startYear, endYear int) ([]model.TeamWins, error) {
	rows, err := readCSV(e.winnersFile, ',')
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int)
	for _, row := range rows {
		season, err := strconv.Atoi(row["Season"])
		if err != nil {
			e.l.Warn("skipping row with unparsable season",
				log.String("season", row["Season"]))
			continue
		}
		if season < startYear || season > endYear {
			continue
		}
		counts[row["Team"]]++
	}
	ret := lo.MapToSlice(counts, func(team string, wins int) model.TeamWins {
		color, ok := e.palette[team]
		if !ok {
			e.l.Warn("no color for team, using default", log.String("team", team))
			color = e.defaultColor
		}
		return model.TeamWins{Team: team, Wins: wins, Color: color}
	})
	slices.SortStableFunc(ret, func(a, b model.TeamWins) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return cmp.Compare(a.Team, b.Team)
	})
	return ret, nil
}

// readCSV reads a headered CSV file into one map per row.
func readCSV(filename string, comma rune) ([]map[string]string, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", filename, err)
	}
	defer f.Close()
	r := csv.NewReader(f)
	r.Comma = comma
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading snapshot %s: %w", filename, err)
	}
	if len(records) == 0 {
		return []map[string]string{}, nil
	}
	header := records[0]
	ret := make([]map[string]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		ret = append(ret, row)
	}
	return ret, nil
}

func eventYear(arg string) (int, bool) {
	for _, layout := range []string{"2006-01-02", "2006-01-02 15:04:05", time.RFC3339} {
		if t, err := time.Parse(layout, arg); err == nil {
			return t.Year(), true
		}
	}
	return 0, false
}
