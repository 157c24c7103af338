// Package web serves the calendar conversion API and the refreshed events
// snapshot over HTTP.
package web

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"jcal/internal/calendar"
	"jcal/internal/config"
	"jcal/internal/ics"
	appLog "jcal/internal/log"
	"jcal/internal/model"
)

// Snapshotter provides the current events snapshot.
type Snapshotter interface {
	Snapshot() (ics.Snapshot, error)
}

// Server provides HTTP APIs for date conversion and event access.
type Server struct {
	cfg    *config.Config
	loc    *time.Location
	events Snapshotter
	now    func() time.Time
	mux    *http.ServeMux
}

// NewServer constructs a new Server. events may be nil when no feed is
// refreshed; the events endpoints then answer 503.
func NewServer(cfg *config.Config, events Snapshotter) *Server {
	s := &Server{
		cfg:    cfg,
		loc:    cfg.Location(),
		events: events,
		now:    time.Now,
		mux:    http.NewServeMux(),
	}
	s.registerRoutes()
	return s
}

// Handler returns the underlying http.Handler for this server.
func (s *Server) Handler() http.Handler {
	h := http.Handler(s.mux)
	if s.basicAuthEnabled() {
		appLog.Info("HTTP basic auth enabled", "listen", "http://"+s.cfg.Listen)
		return s.basicAuthMiddleware(h)
	}
	return h
}

// ListenAndServe serves on cfg.Listen until ctx is done, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info("starting HTTP server", "listen", "http://"+s.cfg.Listen)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	appLog.Info("HTTP server stopped")
	return nil
}

// basicAuthEnabled reports whether HTTP Basic Auth is configured. Empty
// credentials disable it.
func (s *Server) basicAuthEnabled() bool {
	if s.cfg == nil || s.cfg.BasicAuth == nil {
		return false
	}
	return s.cfg.BasicAuth.Username != "" && s.cfg.BasicAuth.Password != ""
}

// basicAuthMiddleware wraps all handlers except /health with HTTP Basic Auth.
func (s *Server) basicAuthMiddleware(next http.Handler) http.Handler {
	username := s.cfg.BasicAuth.Username
	password := s.cfg.BasicAuth.Password

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			next.ServeHTTP(w, r)
			return
		}

		u, p, ok := r.BasicAuth()
		if !ok || !secureCompare(u, username) || !secureCompare(p, password) {
			w.Header().Set("WWW-Authenticate", `Basic realm="jcal", charset="UTF-8"`)
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// secureCompare compares two strings in constant time.
func secureCompare(a, b string) bool {
	if len(a) != len(b) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)
	s.mux.HandleFunc("GET /api/convert", s.handleConvert)
	s.mux.HandleFunc("GET /api/today", s.handleToday)
	s.mux.HandleFunc("GET /api/month", s.handleMonth)
	s.mux.HandleFunc("GET /api/events", s.handleEvents)
	s.mux.HandleFunc("GET /api/events.ics", s.handleEventsICS)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// dateDTO is a date viewed through one calendar.
type dateDTO struct {
	Calendar  string `json:"calendar"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`
	Day       int    `json:"day"`
	WeekDay   int    `json:"weekday"`
	YearDay   int    `json:"year_day"`
	MonthDays int    `json:"month_days"`
	Leap      bool   `json:"leap"`
	Text      string `json:"text"`
}

func toDateDTO(d calendar.Date, layout string) dateDTO {
	return dateDTO{
		Calendar:  d.Calendar().String(),
		Year:      d.FullYear(),
		Month:     d.MonthNumber(),
		Day:       d.Date(),
		WeekDay:   d.Day(),
		YearDay:   d.YearDay(),
		MonthDays: d.MonthDays(d.MonthNumber()),
		Leap:      d.IsLeapYear(),
		Text:      d.Format(layout),
	}
}

type convertResponse struct {
	Input    string    `json:"input"`
	Instant  time.Time `json:"instant"`
	Timezone string    `json:"timezone"`
	From     dateDTO   `json:"from"`
	To       dateDTO   `json:"to"`
}

// handleConvert parses a date written in one calendar and renders it in
// another.
//
// GET /api/convert?date=1403/01/01&from=jalali&to=gregorian&format=YYYY-MM-DD
//   - from: calendar of date (default: config calendar)
//   - to:   target calendar (default: the other calendar)
func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	input := q.Get("date")
	if input == "" {
		writeError(w, http.StatusBadRequest, "missing date")
		return
	}

	from, ok := s.kindParam(w, q.Get("from"))
	if !ok {
		return
	}
	to := otherKind(from)
	if q.Get("to") != "" {
		if to, ok = s.kindParam(w, q.Get("to")); !ok {
			return
		}
	}
	layout := s.layoutParam(q.Get("format"))

	d, err := calendar.Parse(from, input, s.dateOptions()...)
	if err != nil {
		var pe *calendar.ParseError
		if errors.As(err, &pe) {
			writeError(w, http.StatusBadRequest, pe.Reason)
			return
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, convertResponse{
		Input:    input,
		Instant:  d.Time(),
		Timezone: s.loc.String(),
		From:     toDateDTO(d, layout),
		To:       toDateDTO(d.In(to), layout),
	})
}

// handleToday returns the current date in the requested calendar.
func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, ok := s.kindParam(w, q.Get("calendar"))
	if !ok {
		return
	}
	d := calendar.Now(kind, s.dateOptions()...)
	writeJSON(w, http.StatusOK, toDateDTO(d, s.layoutParam(q.Get("format"))))
}

type dayDTO struct {
	Jalali    model.Stamp `json:"jalali"`
	Gregorian model.Stamp `json:"gregorian"`
}

type monthResponse struct {
	Calendar     string      `json:"calendar"`
	Year         int         `json:"year"`
	Month        int         `json:"month"`
	MonthDays    int         `json:"month_days"`
	Leap         bool        `json:"leap"`
	FirstWeekday int         `json:"first_weekday"`
	Weeks        [][]*dayDTO `json:"weeks"`
}

// handleMonth returns a month grid with every day in both calendars.
//
// GET /api/month?calendar=jalali&year=1403&month=1
//
// year and month default to the current month. Weeks start on the
// configured week_start; cells outside the month are null.
func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	kind, ok := s.kindParam(w, q.Get("calendar"))
	if !ok {
		return
	}
	today := calendar.Now(kind, s.dateOptions()...)
	year := parseIntDefault(q.Get("year"), today.FullYear())
	month := parseIntDefault(q.Get("month"), today.MonthNumber())

	first := s.cfg.FirstWeekday()
	grid := calendar.MonthGrid(kind, year, month, first)
	if grid == nil {
		writeError(w, http.StatusBadRequest, "month must be between 1 and 12")
		return
	}

	resp := monthResponse{
		Calendar:     kind.String(),
		Year:         year,
		Month:        month,
		MonthDays:    kind.MonthDays(year, month),
		Leap:         kind.IsLeap(year),
		FirstWeekday: int(first),
		Weeks:        make([][]*dayDTO, 0, len(grid)),
	}
	for _, week := range grid {
		row := make([]*dayDTO, len(week))
		for i, cd := range week {
			if cd.Day == 0 {
				continue
			}
			jd := kind.ToJD(cd.Year, cd.Month, cd.Day)
			row[i] = &dayDTO{
				Jalali:    dayStamp(calendar.Jalali, calendar.Jalali.FromJD(jd)),
				Gregorian: dayStamp(calendar.Gregorian, calendar.Gregorian.FromJD(jd)),
			}
		}
		resp.Weeks = append(resp.Weeks, row)
	}
	writeJSON(w, http.StatusOK, resp)
}

func dayStamp(kind calendar.Kind, cd calendar.CalendarDate) model.Stamp {
	return model.Stamp{
		Calendar: kind.String(),
		Year:     cd.Year,
		Month:    cd.Month,
		Day:      cd.Day,
		WeekDay:  cd.WeekDay,
		Text:     calendar.FormatFields(cd, calendar.Clock{}, calendar.DefaultLayout, calendar.FormatOptions{}),
	}
}

// eventsResponse is the JSON response shape for /api/events.
type eventsResponse struct {
	ics.Snapshot
	DisplayTimeZone string `json:"display_timezone"`
	Calendar        string `json:"calendar"`
	WeekStart       string `json:"week_start"`
}

// handleEvents returns the annotated occurrences of the last refresh.
func (s *Server) handleEvents(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	if snap.Occurrences == nil {
		snap.Occurrences = []model.Occurrence{}
	}
	writeJSON(w, http.StatusOK, eventsResponse{
		Snapshot:        snap,
		DisplayTimeZone: s.loc.String(),
		Calendar:        s.cfg.Kind().String(),
		WeekStart:       s.cfg.WeekStart,
	})
}

// handleEventsICS re-exports the last refresh as an iCalendar feed.
func (s *Server) handleEventsICS(w http.ResponseWriter, _ *http.Request) {
	snap, ok := s.snapshot(w)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(ics.ExportICS(snap.Occurrences, s.now())))
}

func (s *Server) snapshot(w http.ResponseWriter) (ics.Snapshot, bool) {
	if s.events == nil {
		writeError(w, http.StatusServiceUnavailable, "no ICS sources configured")
		return ics.Snapshot{}, false
	}
	snap, err := s.events.Snapshot()
	if err != nil {
		appLog.Error("api events: snapshot unavailable", err)
		writeError(w, http.StatusServiceUnavailable, "events not available yet")
		return ics.Snapshot{}, false
	}
	return snap, true
}

func (s *Server) dateOptions() []calendar.Option {
	return []calendar.Option{
		calendar.InLocation(s.loc),
		calendar.WithNow(s.now),
		calendar.WithOneBasedClock(s.cfg.OneBasedClock),
	}
}

// kindParam resolves a calendar query parameter, writing a 400 on unknown
// names. Empty means the configured calendar.
func (s *Server) kindParam(w http.ResponseWriter, name string) (calendar.Kind, bool) {
	if name == "" {
		return s.cfg.Kind(), true
	}
	k, err := calendar.ParseKind(name)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return 0, false
	}
	return k, true
}

func (s *Server) layoutParam(layout string) string {
	if layout != "" {
		return layout
	}
	return s.cfg.DateFormat
}

func otherKind(k calendar.Kind) calendar.Kind {
	if k == calendar.Jalali {
		return calendar.Gregorian
	}
	return calendar.Jalali
}

func parseIntDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		appLog.Error("failed to write JSON response", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	type errResp struct {
		Error string `json:"error"`
	}
	writeJSON(w, status, errResp{Error: msg})
}
