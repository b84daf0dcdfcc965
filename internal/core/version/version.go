// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Set via -ldflags "-X 'lawsearch/internal/core/version.version=v0.1.0'
// -X 'lawsearch/internal/core/version.commit=abcd' -X 'lawsearch/internal/core/version.date=2026-01-02'"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// Info returns the build information for the named binary
func Info(service string) BuildInfo {
	if service == "" {
		service = "lawsearch"
	}
	return BuildInfo{Service: service, Version: version, Commit: commit, Date: date}
}

// String is the short form printed by the CLI
func (b BuildInfo) String() string {
	return b.Service + " " + b.Version + " (" + b.Commit + ", " + b.Date + ")"
}
