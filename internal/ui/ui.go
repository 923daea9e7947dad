// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/version"
)

// Page represents the current UI page.
type Page int

const (
	PageSun Page = iota
	PageMoon
	pageCount
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers a recompute of the report.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// ReportMsg carries a freshly computed report.
	ReportMsg struct {
		Report   almanac.Report
		Duration time.Duration
	}
)

// recentEventCount is how many transitions the footer lists.
const recentEventCount = 3

// Model is the root Bubble Tea model.
type Model struct {
	// Dependencies
	state    *state.Manager
	observer almanac.Observer
	opts     almanac.Options
	now      func() time.Time

	// UI state
	page     Page
	width    int
	height   int
	ready    bool
	animTick int

	// Sub-models
	sunPage  SunPageModel
	moonPage MoonPageModel

	// Data snapshot (updated on ReportMsg)
	snapshot state.Snapshot
}

// New creates a new root UI model for obs.
func New(stateMgr *state.Manager, obs almanac.Observer, opts almanac.Options) Model {
	return Model{
		state:    stateMgr,
		observer: obs,
		opts:     opts,
		now:      time.Now,
		page:     PageSun,
		sunPage:  NewSunPageModel(),
		moonPage: NewMoonPageModel(),
	}
}

// WithClock returns a copy of the model that reads the time from now.
func (m Model) WithClock(now func() time.Time) Model {
	m.now = now
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.computeCmd(),
		tickCmd(m.state.RefreshInterval()),
		animTickCmd(),
	)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1", "s":
			m.page = PageSun
		case "2", "m":
			m.page = PageMoon

		case "tab", "right", "l":
			m.page = (m.page + 1) % pageCount
		case "shift+tab", "left", "h":
			m.page = (m.page + pageCount - 1) % pageCount

		case "r":
			cmds = append(cmds, m.computeCmd())

		default:
			cmds = append(cmds, m.updateActivePage(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Header takes ~4 lines, footer ~2 plus events
		contentHeight := msg.Height - 6 - recentEventCount
		m.sunPage = m.sunPage.SetSize(msg.Width, contentHeight)
		m.moonPage = m.moonPage.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd(m.state.RefreshInterval()), m.computeCmd())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case ReportMsg:
		m.state.Update(msg.Report, msg.Duration)
		m.snapshot = m.state.Snapshot()
		m.sunPage = m.sunPage.UpdateData(m.snapshot)
		m.moonPage = m.moonPage.UpdateData(m.snapshot)

	default:
		cmds = append(cmds, m.updateActivePage(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) updateActivePage(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.page {
	case PageSun:
		m.sunPage, cmd = m.sunPage.Update(msg)
	case PageMoon:
		m.moonPage, cmd = m.moonPage.Update(msg)
	}
	return cmd
}

// ActivePage returns the page currently shown.
func (m Model) ActivePage() Page {
	return m.page
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.page {
	case PageSun:
		content = m.sunPage.View()
	case PageMoon:
		content = m.moonPage.View()
	}

	return m.renderHeader() + "\n" + content + "\n" + m.renderFooter()
}

// computeCmd builds a report off the UI goroutine.
func (m Model) computeCmd() tea.Cmd {
	obs, opts, now := m.observer, m.opts, m.now
	return func() tea.Msg {
		start := time.Now()
		r := almanac.Build(obs, now(), opts)
		return ReportMsg{Report: r, Duration: time.Since(start)}
	}
}

func (m Model) renderHeader() string {
	return m.renderLogo() + m.renderTabs() + "\n"
}

func (m Model) renderLogo() string {
	logo := "  ☀  L S · A L M A N A C  ☾"
	runes := []rune(logo)

	var b strings.Builder
	b.WriteString("\n")
	for col, r := range runes {
		color := gradientColor(col, 0, len(runes), 1)
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Bold(true).Render(string(r)))
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("   Sun & Moon almanac | v%s", version.Version)))
	b.WriteString("\n")
	return b.String()
}

// gradientColor returns a hex color for a position in the logo gradient.
// Creates a dusk sky effect: deep blue -> purple -> amber
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.5 {
		// Blue to Purple
		t := xRatio / 0.5
		r = 59 + t*(139-59)
		g = 130 + t*(92-130)
		b = 246
	} else {
		// Purple to Amber
		t := (xRatio - 0.5) / 0.5
		r = 139 + t*(245-139)
		g = 92 + t*(158-92)
		b = 246 + t*(11-246)
	}

	// Vertical fade: brighter at top, darker toward bottom
	brightnessFactor := 1.0 - (yRatio * 0.5)
	r *= brightnessFactor
	g *= brightnessFactor
	b *= brightnessFactor

	return fmt.Sprintf("#%02X%02X%02X", clampByte(r), clampByte(g), clampByte(b))
}

func clampByte(v float64) int {
	switch {
	case v > 255:
		return 255
	case v < 0:
		return 0
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Sun", "[2] Moon"}
	activeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#9D4EDD")).Bold(true)

	var parts []string
	for i, tab := range tabs {
		if Page(i) == m.page {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	accentStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#7B2CBF"))

	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]

	var b strings.Builder

	for _, e := range m.state.RecentEvents(recentEventCount) {
		b.WriteString("  " + dimStyle.Render(formatEvent(e, m.opts.Location)) + "\n")
	}

	var status string
	if !m.snapshot.LastCompute.IsZero() {
		countdown := time.Until(m.snapshot.NextRefresh).Round(time.Second)
		if countdown < 0 {
			countdown = 0
		}
		status = accentStyle.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", int(countdown.Seconds())))
		if m.snapshot.ComputeDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.ComputeDuration.Round(time.Microsecond).String() + ")")
		}
	} else {
		status = accentStyle.Render(spinner) + " " + m.renderShimmerText("Computing...")
	}

	help := dimStyle.Render("tab/←→: switch page | r: refresh | q: quit")
	b.WriteString("  " + status + "  " + dimStyle.Render("|") + "  " + help)
	return b.String()
}

// formatEvent renders a state transition for the footer.
func formatEvent(e state.Event, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	clock := e.Timestamp.In(loc).Format("15:04")
	switch e.Type {
	case state.EventMoonrise:
		return clock + "  Moon rose"
	case state.EventMoonset:
		return clock + "  Moon set"
	case state.EventPhaseChange:
		return clock + "  Moon phase: " + e.To
	default:
		return clock + "  Sky: " + e.From + " → " + e.To
	}
}

// renderShimmerText renders text with a subtle moving shine effect.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	textLen := len(runes)
	if textLen == 0 {
		return ""
	}

	pos := m.animTick % (textLen + 8)

	var result strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var r8, g8, b8 int
		if dist <= 1 {
			r8, g8, b8 = 180, 160, 220
		} else if dist <= 3 {
			r8, g8, b8 = 140, 120, 180
		} else if dist <= 5 {
			r8, g8, b8 = 110, 90, 150
		} else {
			r8, g8, b8 = 80, 70, 120
		}

		hexColor := fmt.Sprintf("#%02X%02X%02X", r8, g8, b8)
		result.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(string(r)))
	}

	return result.String()
}

func tickCmd(interval time.Duration) tea.Cmd {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}
