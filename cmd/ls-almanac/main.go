// Command ls-almanac shows Sun and Moon positions, twilight events, moon
// rise/set and lunar phase for an observer, as a terminal UI, a text or JSON
// report, or an HTTP API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	_ "time/tzdata"

	"github.com/litescript/ls-almanac/internal/almanac"
	"github.com/litescript/ls-almanac/internal/api"
	"github.com/litescript/ls-almanac/internal/config"
	"github.com/litescript/ls-almanac/internal/logging"
	"github.com/litescript/ls-almanac/internal/metrics"
	"github.com/litescript/ls-almanac/internal/state"
	"github.com/litescript/ls-almanac/internal/ui"
)

// CLI flags
var (
	envFile       string
	summaryMode   bool
	jsonMode      bool
	serveMode     bool
	watchInterval time.Duration
	timeArg       string
)

const (
	defaultRefresh = 30 * time.Second
	minRefresh     = 1 * time.Second
	maxRefresh     = 10 * time.Minute
)

func main() {
	// Parse flags
	name := flag.String("name", "", "Observer name (overrides ALMANAC_OBSERVER_NAME)")
	lat := flag.Float64("lat", 0, "Observer latitude in degrees, north positive")
	lon := flag.Float64("lon", 0, "Observer longitude in degrees, east positive")
	height := flag.Float64("height", 0, "Observer height above the horizon in metres")
	tz := flag.String("tz", "", "IANA time zone for display (overrides ALMANAC_TIMEZONE)")
	utc := flag.Bool("utc", false, "Start the moon rise/set day at UTC midnight")
	addr := flag.String("addr", "", "HTTP listen address for -serve (overrides ALMANAC_SERVER_ADDR)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	refresh := flag.Duration("refresh", defaultRefresh, "TUI recompute interval (e.g. 30s, 1m)")
	flag.StringVar(&envFile, "env", config.DefaultEnvFile, "Path to a .env file (empty to skip)")
	flag.BoolVar(&summaryMode, "summary", false, "Print text summary instead of TUI")
	flag.BoolVar(&jsonMode, "json", false, "Print the report as JSON instead of TUI")
	flag.BoolVar(&serveMode, "serve", false, "Serve the HTTP API")
	flag.DurationVar(&watchInterval, "watch", 0, "Repeat the summary or JSON at interval (e.g. 1m)")
	flag.StringVar(&timeArg, "time", "", "Instant to compute for (RFC3339 or Unix milliseconds); default now")
	flag.Parse()

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Explicit flags win over the environment
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			cfg.Observer.Name = *name
		case "lat":
			cfg.Observer.Lat = *lat
			if !isFlagSet("name") {
				cfg.Observer.Name = ""
			}
		case "lon":
			cfg.Observer.Lon = *lon
			if !isFlagSet("name") {
				cfg.Observer.Name = ""
			}
		case "height":
			cfg.Observer.Height = *height
		case "tz":
			cfg.Timezone = *tz
		case "utc":
			cfg.UTCMidnight = *utc
		case "addr":
			cfg.Server.Addr = *addr
		case "log-level":
			cfg.Log.Level = *logLevel
		}
	})

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Validate refresh interval
	if *refresh < minRefresh {
		*refresh = minRefresh
	} else if *refresh > maxRefresh {
		*refresh = maxRefresh
	}

	// Set up logging
	logger := logging.New(cfg.Log)

	loc, _ := cfg.Location() // checked by Validate
	obs := cfg.DefaultObserver()
	opts := almanac.Options{Location: loc, UTCMidnight: cfg.UTCMidnight}

	at, err := parseTimeArg(timeArg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if serveMode {
		defaults := api.Defaults{Observer: obs, Location: loc, UTCMidnight: cfg.UTCMidnight}
		if err := runServer(ctx, cfg.Server, defaults, logger); err != nil {
			os.Exit(1)
		}
		return
	}

	// Headless mode: no TUI. Also used when stdout is not a terminal.
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))
	if summaryMode || jsonMode || !isTTY {
		if err := runHeadless(ctx, obs, opts, at, logger); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = *refresh
	stateMgr := state.NewManager(stateCfg)

	model := ui.New(stateMgr, obs, opts)
	if !at.IsZero() {
		model = model.WithClock(func() time.Time { return at })
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	// Run TUI (blocks until quit)
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		os.Exit(1)
	}
}

func isFlagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

// parseTimeArg accepts RFC3339 or Unix milliseconds. Empty means now,
// reported as the zero time.
func parseTimeArg(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid -time %q: want RFC3339 or Unix milliseconds", s)
	}
	return t, nil
}

// runHeadless prints the summary or JSON once, or repeatedly with -watch.
func runHeadless(ctx context.Context, obs almanac.Observer, opts almanac.Options, at time.Time, logger *slog.Logger) error {
	outputOnce := func() error {
		t := at
		if t.IsZero() {
			t = time.Now()
		}

		start := time.Now()
		r := almanac.Build(obs, t, opts)
		metrics.ObserveComputation(metrics.KindAlmanac)
		logger.Debug("report computed",
			"component", "cli",
			"observer", obs.Name,
			"duration", time.Since(start))

		if jsonMode {
			if err := r.Export().WriteJSON(os.Stdout); err != nil {
				return fmt.Errorf("write JSON to stdout: %w", err)
			}
			return nil
		}
		r.WriteSummary(os.Stdout)
		return nil
	}

	// Single run
	if watchInterval == 0 {
		return outputOnce()
	}

	// Watch mode: repeat at interval
	if err := outputOnce(); err != nil {
		logger.Error("output failed", "component", "cli", "error", err)
	}

	ticker := time.NewTicker(watchInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			fmt.Println()
			if err := outputOnce(); err != nil {
				logger.Error("output failed", "component", "cli", "error", err)
			}
		}
	}
}

// runServer serves the API until ctx is cancelled, then shuts down gracefully.
func runServer(ctx context.Context, cfg config.ServerConfig, defaults api.Defaults, logger *slog.Logger) error {
	srv := api.NewServer(cfg, defaults, logger)

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := srv.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("received shutdown signal", "component", "api")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", "component", "api", "error", err)
		}

		logger.Info("shutdown completed", "component", "api")
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Error("application error", "error", err)
		return err
	}
	return nil
}
