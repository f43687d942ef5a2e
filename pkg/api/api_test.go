package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/pkg/processing/history"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
	"github.com/aprs3/f1dashboard-go/testsupport/basedata"
)

type fakeSource struct {
	race  *model.Session
	quali *model.Session
}

func (f *fakeSource) Events(_ context.Context, years provider.YearRange) (
	[]model.EventDescriptor, error,
) {
	desc := basedata.SampleEventDescriptor()
	if desc.Year < years.From || desc.Year > years.To {
		return []model.EventDescriptor{}, nil
	}
	return []model.EventDescriptor{desc}, nil
}

//nolint:whitespace // editor/linter issue
func (f *fakeSource) LoadSession(
	_ context.Context, year int, eventName string, sessionType model.SessionType,
) (*model.Session, error) {
	if year != 2024 || eventName != "Testland Grand Prix" {
		return nil, provider.ErrSessionNotFound
	}
	switch sessionType {
	case model.SessionRace:
		return f.race, nil
	case model.SessionQualifying:
		return f.quali, nil
	default:
		return nil, provider.ErrSessionNotFound
	}
}

func newTestMux() *http.ServeMux {
	handlers := NewHandlers(&fakeSource{
		race:  basedata.SampleRaceSession(),
		quali: basedata.SampleQualiSession(),
	})
	mux := http.NewServeMux()
	handlers.Register(mux)
	return mux
}

func doGet(t *testing.T, mux *http.ServeMux, url string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := doGet(t, newTestMux(), "/healthz")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestEvents(t *testing.T) {
	rec := doGet(t, newTestMux(), "/api/events?from=2023&to=2024")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []model.EventDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	require.Len(t, events, 1)
	assert.Equal(t, "Testland Grand Prix", events[0].Name)
}

func TestEvents_MissingParamsYieldEmptyList(t *testing.T) {
	rec := doGet(t, newTestMux(), "/api/events?from=2023")
	require.Equal(t, http.StatusOK, rec.Code)
	var events []model.EventDescriptor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &events))
	assert.Empty(t, events)
}

func TestEvents_BadParams(t *testing.T) {
	rec := doGet(t, newTestMux(), "/api/events?from=xx&to=2024")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessions(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/sessions?year=2024&event=Testland+Grand+Prix")
	require.Equal(t, http.StatusOK, rec.Code)
	var slots []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &slots))
	assert.Equal(t,
		[]string{"Race", "Qualifying", "Practice 3", "Practice 2", "Practice 1"},
		slots)
}

func TestSessions_UnknownEvent(t *testing.T) {
	rec := doGet(t, newTestMux(), "/api/sessions?year=2024&event=Nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTelemetryCompare(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/telemetry/compare?year=2024&event=Testland+Grand+Prix"+
			"&session=Race&driver1=VER&driver2=HAM")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp telemetryCompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Max Verstappen", resp.Driver1.FullName)
	assert.Equal(t, "Lewis Hamilton", resp.Driver2.FullName)
	assert.NotEmpty(t, resp.Series1)
	assert.NotEmpty(t, resp.Series2)
	assert.Len(t, resp.Corners, 3)
}

func TestTelemetryCompare_UnknownDriverYieldsEmptySeries(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/telemetry/compare?year=2024&event=Testland+Grand+Prix"+
			"&session=Race&driver1=XXX&driver2=HAM")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp telemetryCompareResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Series1)
	assert.NotEmpty(t, resp.Series2)
}

func TestTelemetryCompare_BadChannel(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/telemetry/compare?year=2024&event=Testland+Grand+Prix"+
			"&session=Race&driver1=VER&driver2=HAM&channel=brake")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestTelemetryCompare_SessionNotFound(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/telemetry/compare?year=2021&event=Testland+Grand+Prix"+
			"&session=Race&driver1=VER&driver2=HAM")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCornerDiff(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/corners/diff?year=2024&event=Testland+Grand+Prix"+
			"&session=Race&driver1=VER&driver2=HAM")
	require.Equal(t, http.StatusOK, rec.Code)
	var diff []model.CornerSpeedDiff
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &diff))
	require.Len(t, diff, 3)
	// constant 180 vs 144 km/h
	assert.InDelta(t, 36.0, diff[0].Diff, 0.001)
}

func TestStrategy(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/strategy?year=2024&event=Testland+Grand+Prix")
	require.Equal(t, http.StatusOK, rec.Code)
	var strategies []model.Strategy
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &strategies))
	require.Len(t, strategies, 2)
}

func TestLapTimes(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/laptimes?year=2024&event=Testland+Grand+Prix&session=Race&driver=VER")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp lapTimesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "VER", resp.Driver)
	assert.NotEmpty(t, resp.Laps)
	assert.Contains(t, resp.Colors, "SOFT")
}

func TestStrategyMerge(t *testing.T) {
	rec := doGet(t, newTestMux(),
		"/api/event/strategy-merge?year=2024&event=Testland+Grand+Prix")
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []model.MergedDriverRow
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "HAM", rows[0].Driver)
}

func TestHistoryEndpoints_NotConfigured(t *testing.T) {
	rec := doGet(t, newTestMux(), "/api/history/countries?start=1990&end=1994")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func historyFile(t *testing.T, name, content string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(fn, []byte(content), 0o644))
	return fn
}

func TestHistoryEndpoints(t *testing.T) {
	handlers := NewHandlers(
		&fakeSource{},
		WithHistoryEngine(history.New(
			historyFile(t, "schedule.csv",
				"Country;Location;EventDate;EventName;OfficialEventName\n"+
					"France;Le Castellet;1990-07-08;French Grand Prix;French GP\n"),
			historyFile(t, "winners.csv",
				"Season,Race,Winner,Team\n"+
					"1990,French Grand Prix,Alain Prost,Ferrari\n"))))
	mux := http.NewServeMux()
	handlers.Register(mux)

	rec := doGet(t, mux, "/api/history/countries?start=1990&end=1994")
	require.Equal(t, http.StatusOK, rec.Code)
	var countries []model.CountryEventCount
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &countries))
	require.Len(t, countries, 1)
	assert.Equal(t, "FRA", countries[0].ISO)

	rec = doGet(t, mux, "/api/history/teamwins?start=1990&end=1994")
	require.Equal(t, http.StatusOK, rec.Code)
	var wins []model.TeamWins
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &wins))
	require.Len(t, wins, 1)
	assert.Equal(t, "Ferrari", wins[0].Team)
}
