// Package version provides information about the build version of the service.
package version

// BuildInfo holds version information about the service build.
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the build information. The version, commit, and date variables
// are intended to be set at build time using -ldflags.
func Info() BuildInfo {
	// Set via -ldflags "-X 'telejoin/internal/core/version.version=v0.1.0'
	// -X 'telejoin/internal/core/version.commit=abcd' -X 'telejoin/internal/core/version.date=2026-10-01'"
	return BuildInfo{
		Service: service,
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

// SetService overrides the reported service name; binaries call it once in main
func SetService(name string) {
	if name != "" {
		service = name
	}
}

var (
	service = "telejoin"
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
