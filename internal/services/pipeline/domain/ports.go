package domain

import (
	"context"

	"telejoin/internal/core/crossref"
	"telejoin/internal/core/memo"
)

// RunnerPort is what the HTTP and CLI surfaces call
type RunnerPort interface {
	// Run loads both sources, joins and filters; an empty join returns the
	// partial Result together with an EmptyResult warning
	Run(ctx context.Context, payload []byte, sel crossref.Selection) (Result, error)

	// Join loads both sources and joins without filtering
	Join(ctx context.Context, payload []byte) (Joined, error)

	// Telemetry loads every configured telemetry source
	Telemetry(ctx context.Context) ([]crossref.TelemetryRecord, error)

	// TelemetrySummary describes the configured telemetry sources
	TelemetrySummary(ctx context.Context) (TelemetrySummary, error)
}

// CachePort exposes the pipeline memo caches for inspection and purging
type CachePort interface {
	CacheStats() map[string]memo.Stats
	Invalidate()
}
