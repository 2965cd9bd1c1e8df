package module

import (
	"telejoin/internal/platform/config"
)

// Options holds configuration options for the crossref api
type Options struct {
	MaxUpload int64
}

// FromConfig reads crossref options from cfg with API_ prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("API_")
	return Options{
		MaxUpload: c.MayBytes("MAX_UPLOAD", 20<<20),
	}
}
