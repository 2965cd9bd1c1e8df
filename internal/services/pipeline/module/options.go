package module

import (
	"telejoin/internal/platform/config"
)

// DefaultSources are the telemetry exports read when nothing is configured
var DefaultSources = []string{"DataFrame.xlsx", "DataFrame2.xlsx"}

// Options holds configuration options for the pipeline
type Options struct {
	Sources    []string
	SchemaFile string
	Cache      bool
	CacheMax   int
	Watch      bool
}

// FromConfig reads the pipeline options from config with TELEJOIN_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("TELEJOIN_")
	return Options{
		Sources:    c.MayCSV("TELEMETRY_PATHS", DefaultSources),
		SchemaFile: c.MayString("SCHEMA_FILE", ""),
		Cache:      c.MayBool("CACHE", true),
		CacheMax:   c.MayInt("CACHE_MAX", 64),
		Watch:      c.MayBool("WATCH", false),
	}
}
