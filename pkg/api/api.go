// Package api exposes the derivation engines as JSON endpoints for the
// dashboard frontend. Each panel has its own endpoint so that a failing
// computation never affects the other panels.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/aprs3/f1dashboard-go/log"
	"github.com/aprs3/f1dashboard-go/pkg/model"
	"github.com/aprs3/f1dashboard-go/pkg/processing/corners"
	"github.com/aprs3/f1dashboard-go/pkg/processing/history"
	"github.com/aprs3/f1dashboard-go/pkg/processing/merge"
	"github.com/aprs3/f1dashboard-go/pkg/processing/strategy"
	"github.com/aprs3/f1dashboard-go/pkg/processing/telemetry"
	"github.com/aprs3/f1dashboard-go/pkg/provider"
)

type Handlers struct {
	source  provider.SessionSource
	history *history.Engine
	l       *log.Logger
}

type Option func(*Handlers)

func WithHistoryEngine(arg *history.Engine) Option {
	return func(h *Handlers) {
		h.history = arg
	}
}

func WithLogger(arg *log.Logger) Option {
	return func(h *Handlers) {
		h.l = arg
	}
}

func NewHandlers(source provider.SessionSource, opts ...Option) *Handlers {
	ret := &Handlers{
		source: source,
		l:      log.Default().Named("api"),
	}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

func (h *Handlers) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.handleHealth)
	mux.HandleFunc("GET /api/events", h.handleEvents)
	mux.HandleFunc("GET /api/sessions", h.handleSessions)
	mux.HandleFunc("GET /api/telemetry/compare", h.handleTelemetryCompare)
	mux.HandleFunc("GET /api/corners/diff", h.handleCornerDiff)
	mux.HandleFunc("GET /api/strategy", h.handleStrategy)
	mux.HandleFunc("GET /api/laptimes", h.handleLapTimes)
	mux.HandleFunc("GET /api/history/countries", h.handleCountryCounts)
	mux.HandleFunc("GET /api/history/teamwins", h.handleTeamWins)
	mux.HandleFunc("GET /api/event/strategy-merge", h.handleStrategyMerge)
}

func (h *Handlers) handleHealth(w http.ResponseWriter, _ *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handlers) handleEvents(w http.ResponseWriter, r *http.Request) {
	from, okFrom, err := queryInt(r, "from")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	to, okTo, err := queryInt(r, "to")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	if !okFrom || !okTo {
		// selection incomplete, recovered locally
		h.writeJSON(w, http.StatusOK, []model.EventDescriptor{})
		return
	}
	events, err := h.source.Events(r.Context(), provider.YearRange{From: from, To: to})
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, events)
}

func (h *Handlers) handleSessions(w http.ResponseWriter, r *http.Request) {
	year, okYear, err := queryInt(r, "year")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	event := r.URL.Query().Get("event")
	if !okYear || event == "" {
		h.writeJSON(w, http.StatusOK, []string{})
		return
	}
	events, err := h.source.Events(r.Context(), provider.YearRange{From: year, To: year})
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	for i := range events {
		if events[i].Name == event {
			h.writeJSON(w, http.StatusOK, provider.SessionSlots(events[i]))
			return
		}
	}
	h.writeError(w, http.StatusNotFound, "unknown event")
}

type telemetryCompareResponse struct {
	Driver1 model.DriverInfo      `json:"driver1"`
	Driver2 model.DriverInfo      `json:"driver2"`
	Series1 []model.AlignedSample `json:"series1"`
	Series2 []model.AlignedSample `json:"series2"`
	Corners []model.Corner        `json:"corners"`
}

func (h *Handlers) handleTelemetryCompare(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.sessionSelection(w, r)
	if !ok {
		return
	}
	driver1 := r.URL.Query().Get("driver1")
	driver2 := r.URL.Query().Get("driver2")
	if driver1 == "" || driver2 == "" {
		h.writeJSON(w, http.StatusOK, telemetryCompareResponse{})
		return
	}
	channel := telemetry.ChannelSpeed
	if arg := r.URL.Query().Get("channel"); arg != "" {
		var err error
		if channel, err = telemetry.ParseChannel(arg); err != nil {
			h.badRequest(w, err)
			return
		}
	}
	session, err := h.source.LoadSession(r.Context(), sel.year, sel.event, sel.sType)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	resp := telemetryCompareResponse{Corners: session.Circuit.Corners}
	resp.Driver1, _ = session.Driver(driver1)
	resp.Driver2, _ = session.Driver(driver2)
	resp.Series1 = h.alignedOrEmpty(session, driver1, channel)
	resp.Series2 = h.alignedOrEmpty(session, driver2, channel)
	h.writeJSON(w, http.StatusOK, resp)
}

// alignedOrEmpty maps a missing fastest lap to an empty series so a
// single driver without valid laps does not take down the whole panel.
func (h *Handlers) alignedOrEmpty(session *model.Session, driver string,
	channel telemetry.Channel,
) []model.AlignedSample {
	aligned, err := telemetry.AlignFastestLap(session, driver, channel)
	if err != nil {
		h.l.Warn("no aligned telemetry", log.String("driver", driver),
			log.ErrorField(err))
		return []model.AlignedSample{}
	}
	return aligned
}

func (h *Handlers) handleCornerDiff(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.sessionSelection(w, r)
	if !ok {
		return
	}
	driver1 := r.URL.Query().Get("driver1")
	driver2 := r.URL.Query().Get("driver2")
	if driver1 == "" || driver2 == "" {
		h.writeJSON(w, http.StatusOK, []model.CornerSpeedDiff{})
		return
	}
	session, err := h.source.LoadSession(r.Context(), sel.year, sel.event, sel.sType)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	aligned1 := h.alignedOrEmpty(session, driver1, telemetry.ChannelSpeed)
	aligned2 := h.alignedOrEmpty(session, driver2, telemetry.ChannelSpeed)
	diff := corners.SpeedDiff(
		corners.SegmentByCorners(driver1, aligned1, session.Circuit.Corners),
		corners.SegmentByCorners(driver2, aligned2, session.Circuit.Corners))
	h.writeJSON(w, http.StatusOK, diff)
}

func (h *Handlers) handleStrategy(w http.ResponseWriter, r *http.Request) {
	year, okYear, err := queryInt(r, "year")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	event := r.URL.Query().Get("event")
	if !okYear || event == "" {
		h.writeJSON(w, http.StatusOK, []model.Strategy{})
		return
	}
	session, err := h.source.LoadSession(r.Context(), year, event, model.SessionRace)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, strategy.Reconstruct(session.Laps))
}

type lapTimesResponse struct {
	Driver string              `json:"driver"`
	Laps   []model.CompoundLap `json:"laps"`
	Colors map[string]string   `json:"colors"`
}

func (h *Handlers) handleLapTimes(w http.ResponseWriter, r *http.Request) {
	sel, ok := h.sessionSelection(w, r)
	if !ok {
		return
	}
	driver := r.URL.Query().Get("driver")
	if driver == "" {
		h.writeJSON(w, http.StatusOK, lapTimesResponse{})
		return
	}
	session, err := h.source.LoadSession(r.Context(), sel.year, sel.event, sel.sType)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, lapTimesResponse{
		Driver: driver,
		Laps:   strategy.QuickLaps(session.Laps, driver),
		Colors: strategy.CompoundColors(),
	})
}

func (h *Handlers) handleCountryCounts(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.yearRange(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		h.writeError(w, http.StatusServiceUnavailable, "history engine not configured")
		return
	}
	rows, err := h.history.CountryCounts(start, end)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *Handlers) handleTeamWins(w http.ResponseWriter, r *http.Request) {
	start, end, ok := h.yearRange(w, r)
	if !ok {
		return
	}
	if h.history == nil {
		h.writeError(w, http.StatusServiceUnavailable, "history engine not configured")
		return
	}
	rows, err := h.history.TeamWins(start, end)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

func (h *Handlers) handleStrategyMerge(w http.ResponseWriter, r *http.Request) {
	year, okYear, err := queryInt(r, "year")
	if err != nil {
		h.badRequest(w, err)
		return
	}
	event := r.URL.Query().Get("event")
	if !okYear || event == "" {
		h.writeJSON(w, http.StatusOK, []model.MergedDriverRow{})
		return
	}
	rows, err := merge.EventStrategies(r.Context(), h.source, year, event)
	if err != nil {
		h.upstreamError(w, err)
		return
	}
	h.writeJSON(w, http.StatusOK, rows)
}

type sessionSelection struct {
	year  int
	event string
	sType model.SessionType
}

// sessionSelection extracts the (year, event, session) triple. A partial
// selection writes an empty result and reports false.
func (h *Handlers) sessionSelection(w http.ResponseWriter, r *http.Request) (
	sessionSelection, bool,
) {
	year, okYear, err := queryInt(r, "year")
	if err != nil {
		h.badRequest(w, err)
		return sessionSelection{}, false
	}
	event := r.URL.Query().Get("event")
	sType := r.URL.Query().Get("session")
	if !okYear || event == "" || sType == "" {
		h.writeJSON(w, http.StatusOK, struct{}{})
		return sessionSelection{}, false
	}
	return sessionSelection{
		year:  year,
		event: event,
		sType: model.SessionType(sType),
	}, true
}

func (h *Handlers) yearRange(w http.ResponseWriter, r *http.Request) (int, int, bool) {
	start, okStart, err := queryInt(r, "start")
	if err != nil {
		h.badRequest(w, err)
		return 0, 0, false
	}
	end, okEnd, err := queryInt(r, "end")
	if err != nil {
		h.badRequest(w, err)
		return 0, 0, false
	}
	if !okStart || !okEnd {
		h.writeJSON(w, http.StatusOK, []struct{}{})
		return 0, 0, false
	}
	return start, end, true
}

func (h *Handlers) upstreamError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, provider.ErrSessionNotFound):
		h.writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, provider.ErrLoadFailed):
		h.writeError(w, http.StatusBadGateway, err.Error())
	default:
		h.l.Error("request failed", log.ErrorField(err))
		h.writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *Handlers) badRequest(w http.ResponseWriter, err error) {
	h.writeError(w, http.StatusBadRequest, err.Error())
}

func (h *Handlers) writeError(w http.ResponseWriter, status int, msg string) {
	h.writeJSON(w, status, map[string]string{"error": msg})
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.l.Error("could not write response", log.ErrorField(err))
	}
}

// queryInt reads an integer query param. The second return value is false
// when the param is absent.
func queryInt(r *http.Request, name string) (int, bool, error) {
	arg := r.URL.Query().Get(name)
	if arg == "" {
		return 0, false, nil
	}
	val, err := strconv.Atoi(arg)
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}
