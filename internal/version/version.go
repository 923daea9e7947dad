// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - HTTP API with Prometheus metrics, env/.env configuration
// 0.2.0 - Moon rise/set scan, illumination and phase names, JSON export
// 0.1.0 - Initial release: Sun page, twilight events, headless summary
