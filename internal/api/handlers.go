package api

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
	"github.com/litescript/ls-almanac/internal/metrics"
)

var errBadParam = errors.New("invalid query parameter")

// query is a parsed request: who is observing, when, and how to present it.
type query struct {
	Observer    almanac.Observer
	Time        time.Time
	Location    *time.Location
	UTCMidnight bool
}

// parseQuery reads lat, lon, height, time, tz and utc, falling back to the
// server defaults. Values are checked for syntax; height must not
// be negative.
func (s *Server) parseQuery(r *http.Request) (query, error) {
	q := query{
		Observer:    s.defaults.Observer,
		Time:        s.now(),
		Location:    s.defaults.Location,
		UTCMidnight: s.defaults.UTCMidnight,
	}
	v := r.URL.Query()

	var err error
	if q.Observer.LatDeg, err = floatParam(v.Get("lat"), "lat", q.Observer.LatDeg); err != nil {
		return q, err
	}
	if q.Observer.LonDeg, err = floatParam(v.Get("lon"), "lon", q.Observer.LonDeg); err != nil {
		return q, err
	}
	if q.Observer.HeightM, err = floatParam(v.Get("height"), "height", q.Observer.HeightM); err != nil {
		return q, err
	}
	if q.Observer.HeightM < 0 {
		return q, fmt.Errorf("%w: height %q must not be negative", errBadParam, v.Get("height"))
	}
	if v.Has("lat") || v.Has("lon") {
		q.Observer.Name = ""
	}

	if raw := v.Get("time"); raw != "" {
		if q.Time, err = parseTime(raw); err != nil {
			return q, err
		}
	}
	if raw := v.Get("tz"); raw != "" {
		if q.Location, err = time.LoadLocation(raw); err != nil {
			return q, fmt.Errorf("%w: tz %q", errBadParam, raw)
		}
	}
	if raw := v.Get("utc"); raw != "" {
		if q.UTCMidnight, err = strconv.ParseBool(raw); err != nil {
			return q, fmt.Errorf("%w: utc %q", errBadParam, raw)
		}
	}

	return q, nil
}

func floatParam(raw, name string, def float64) (float64, error) {
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %s %q", errBadParam, name, raw)
	}
	return f, nil
}

// parseTime accepts RFC 3339 or Unix milliseconds.
func parseTime(raw string) (time.Time, error) {
	if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q", errBadParam, raw)
	}
	return t, nil
}

// requestInfo echoes the resolved request in every response.
type requestInfo struct {
	Time     time.Time              `json:"time"`
	Observer almanac.ObserverExport `json:"observer"`
}

func (q query) info() requestInfo {
	return requestInfo{
		Time: q.Time.In(q.Location),
		Observer: almanac.ObserverExport{
			Name:      q.Observer.Name,
			Latitude:  q.Observer.LatDeg,
			Longitude: q.Observer.LonDeg,
			Height:    q.Observer.HeightM,
		},
	}
}

type sunPositionResponse struct {
	requestInfo
	almanac.PositionExport
	Daylight string `json:"daylight"`
}

type sunTimesResponse struct {
	requestInfo
	almanac.SunTimesExport
}

type moonPositionResponse struct {
	requestInfo
	almanac.PositionExport
	DistanceKm       float64 `json:"distance_km"`
	ParallacticAngle float64 `json:"parallactic_angle"`
}

type moonIlluminationResponse struct {
	Time time.Time `json:"time"`
	almanac.IlluminationExport
}

type moonTimesResponse struct {
	requestInfo
	almanac.MoonTimesExport
}

// withQuery parses the request and answers 400 on malformed parameters.
func (s *Server) withQuery(h func(http.ResponseWriter, query)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q, err := s.parseQuery(r)
		if err != nil {
			s.logger.Debug("bad request", "component", "api", "path", r.URL.Path, "error", err)
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h(w, q)
	}
}

func (s *Server) handleSunPosition(w http.ResponseWriter, q query) {
	metrics.ObserveComputation(metrics.KindSunPosition)
	pos := astro.SunPosition(q.Time, q.Observer.LatDeg, q.Observer.LonDeg)
	respondJSON(w, http.StatusOK, sunPositionResponse{
		requestInfo:    q.info(),
		PositionExport: almanac.ExportPosition(pos),
		Daylight:       astro.DaylightPhase(pos.Altitude).String(),
	})
}

func (s *Server) handleSunTimes(w http.ResponseWriter, q query) {
	metrics.ObserveComputation(metrics.KindSunTimes)
	times := astro.SunTimes(q.Time, q.Observer.LatDeg, q.Observer.LonDeg, q.Observer.HeightM)
	export := almanac.ExportSunTimes(times, q.Location)
	metrics.ObserveMissingEvents(export.Missing)
	respondJSON(w, http.StatusOK, sunTimesResponse{
		requestInfo:    q.info(),
		SunTimesExport: export,
	})
}

func (s *Server) handleMoonPosition(w http.ResponseWriter, q query) {
	metrics.ObserveComputation(metrics.KindMoonPosition)
	pos := astro.MoonPosition(q.Time, q.Observer.LatDeg, q.Observer.LonDeg)
	respondJSON(w, http.StatusOK, moonPositionResponse{
		requestInfo:      q.info(),
		PositionExport:   almanac.ExportPosition(pos.HorizontalPosition),
		DistanceKm:       pos.DistanceKm,
		ParallacticAngle: pos.ParallacticAngle,
	})
}

func (s *Server) handleMoonIllumination(w http.ResponseWriter, q query) {
	metrics.ObserveComputation(metrics.KindMoonIllumination)
	respondJSON(w, http.StatusOK, moonIlluminationResponse{
		Time:               q.Time.In(q.Location),
		IlluminationExport: almanac.ExportIllumination(astro.MoonIllumination(q.Time)),
	})
}

func (s *Server) handleMoonTimes(w http.ResponseWriter, q query) {
	metrics.ObserveComputation(metrics.KindMoonTimes)
	mt := astro.MoonTimes(q.Time.In(q.Location), q.Observer.LatDeg, q.Observer.LonDeg, q.UTCMidnight)
	respondJSON(w, http.StatusOK, moonTimesResponse{
		requestInfo:     q.info(),
		MoonTimesExport: almanac.ExportMoonTimes(mt, q.Location),
	})
}

func (s *Server) handleAlmanac(w http.ResponseWriter, q query) {
	metrics.ObserveComputation(metrics.KindAlmanac)
	report := almanac.Build(q.Observer, q.Time, almanac.Options{
		Location:    q.Location,
		UTCMidnight: q.UTCMidnight,
	})
	metrics.ObserveMissingEvents(report.MissingSunEvents())
	respondJSON(w, http.StatusOK, report.Export())
}
