// Package state provides thread-safe state management for the application.
package state

import (
	"sync"
	"time"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/astro"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventDaylightChange EventType = "DAYLIGHT_CHANGE"
	EventMoonrise       EventType = "MOONRISE"
	EventMoonset        EventType = "MOONSET"
	EventPhaseChange    EventType = "PHASE_CHANGE"
)

// Event represents a transition seen between two consecutive reports.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Body      string    `json:"body"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	// Current state
	current         *almanac.Report
	lastCompute     time.Time
	computeDuration time.Duration

	// Altitude history in degrees
	sunHistory    []TimeSeries
	moonHistory   []TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	// Configuration
	refreshInterval time.Duration
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   120, // 1 hour at one refresh every 30s
		MaxEvents:       50,
		RefreshInterval: 30 * time.Second,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistoryLen
	if maxHistory <= 0 {
		maxHistory = 120
	}
	return &Manager{
		maxHistoryLen:   maxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
	}
}

// Update atomically replaces the current report.
func (m *Manager) Update(r almanac.Report, computeDuration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCompute = time.Now()
	m.computeDuration = computeDuration

	if m.current != nil && m.current.Observer != r.Observer {
		// A different place makes the old series meaningless.
		m.sunHistory = nil
		m.moonHistory = nil
	} else if m.current != nil {
		m.detectEvents(*m.current, r)
	}

	m.current = &r

	m.sunHistory = appendBounded(m.sunHistory, TimeSeries{
		Timestamp: r.Time,
		Value:     astro.RadToDeg(r.Sun.Altitude),
	}, m.maxHistoryLen)
	m.moonHistory = appendBounded(m.moonHistory, TimeSeries{
		Timestamp: r.Time,
		Value:     astro.RadToDeg(r.Moon.Altitude),
	}, m.maxHistoryLen)
}

func appendBounded(series []TimeSeries, p TimeSeries, max int) []TimeSeries {
	series = append(series, p)
	if len(series) > max {
		series = series[len(series)-max:]
	}
	return series
}

// detectEvents compares the new report with the previous one and generates events.
func (m *Manager) detectEvents(prev, next almanac.Report) {
	ts := next.Time

	if prev.Daylight != next.Daylight {
		m.addEvent(Event{
			Type:      EventDaylightChange,
			Timestamp: ts,
			Body:      "sun",
			From:      prev.Daylight.String(),
			To:        next.Daylight.String(),
		})
	}

	wasUp := prev.Moon.Altitude > 0
	isUp := next.Moon.Altitude > 0
	switch {
	case !wasUp && isUp:
		m.addEvent(Event{Type: EventMoonrise, Timestamp: ts, Body: "moon"})
	case wasUp && !isUp:
		m.addEvent(Event{Type: EventMoonset, Timestamp: ts, Body: "moon"})
	}

	if from, to := prev.PhaseName(), next.PhaseName(); from != to {
		m.addEvent(Event{
			Type:      EventPhaseChange,
			Timestamp: ts,
			Body:      "moon",
			From:      from,
			To:        to,
		})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Report          *almanac.Report
	LastCompute     time.Time
	ComputeDuration time.Duration
	NextRefresh     time.Time
	SunHistory      []TimeSeries
	MoonHistory     []TimeSeries
	Events          []Event
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var report *almanac.Report
	if m.current != nil {
		r := *m.current
		report = &r
	}

	var next time.Time
	if !m.lastCompute.IsZero() {
		next = m.lastCompute.Add(m.refreshInterval)
	}

	return Snapshot{
		Report:          report,
		LastCompute:     m.lastCompute,
		ComputeDuration: m.computeDuration,
		NextRefresh:     next,
		SunHistory:      copySeries(m.sunHistory),
		MoonHistory:     copySeries(m.moonHistory),
		Events:          m.getEventsOrdered(),
	}
}

func copySeries(s []TimeSeries) []TimeSeries {
	if len(s) == 0 {
		return nil
	}
	out := make([]TimeSeries, len(s))
	copy(out, s)
	return out
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	// If buffer isn't full yet, just copy
	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}
