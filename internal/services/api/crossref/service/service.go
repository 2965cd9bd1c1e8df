// Package service maps crossref requests onto the pipeline runner
package service

import (
	"context"

	"telejoin/internal/core/crossref"
	"telejoin/internal/core/dates"
	"telejoin/internal/core/memo"
	perr "telejoin/internal/platform/errors"
	"telejoin/internal/services/api/crossref/domain"
	pipe "telejoin/internal/services/pipeline/domain"
)

// Service defines the crossref service contract
type Service interface{ domain.ServicePort }

// Svc implements Service over the pipeline ports
type Svc struct {
	runner pipe.RunnerPort
	cache  pipe.CachePort
}

// New creates a crossref service; cache may be nil when caching is not exposed
func New(runner pipe.RunnerPort, cache pipe.CachePort) *Svc {
	if runner == nil {
		panic("crossref.Service requires a non nil RunnerPort")
	}
	return &Svc{runner: runner, cache: cache}
}

// Run joins the uploaded visits with telemetry and applies the selection
// an empty join comes back as output plus an EmptyResult warning
func (s *Svc) Run(ctx context.Context, payload []byte, source string, in domain.RunInput) (domain.RunOutput, error) {
	sel, err := SelectionOf(in)
	if err != nil {
		return domain.RunOutput{}, err
	}
	res, err := s.runner.Run(ctx, payload, sel)
	if err != nil && !perr.IsWarning(err) {
		return domain.RunOutput{}, sourceErr(err)
	}
	return domain.RunOutput{Result: res, Source: source}, err
}

// Telemetry summarizes the configured telemetry sources
func (s *Svc) Telemetry(ctx context.Context) (pipe.TelemetrySummary, error) {
	sum, err := s.runner.TelemetrySummary(ctx)
	if err != nil {
		return sum, sourceErr(err)
	}
	return sum, nil
}

// sourceErr reports telemetry failures as Unavailable; the sources are server
// side, so a bad telemetry file is not the caller's fault
func sourceErr(err error) error {
	if perr.OpOf(err) != pipe.OpTelemetry {
		return err
	}
	return perr.WithOp(perr.Wrap(err, perr.ErrorCodeUnavailable, "telemetry source unavailable"), pipe.OpTelemetry)
}

// Cache reports cache counters
func (s *Svc) Cache() domain.CacheOutput {
	if s.cache == nil {
		return domain.CacheOutput{Caches: map[string]memo.Stats{}}
	}
	return domain.CacheOutput{Caches: s.cache.CacheStats()}
}

// Purge drops cached telemetry and joins
func (s *Svc) Purge() {
	if s.cache != nil {
		s.cache.Invalidate()
	}
}

// SelectionOf turns bound form values into a selection
func SelectionOf(in domain.RunInput) (crossref.Selection, error) {
	var sel crossref.Selection
	if in.Date != nil {
		d, err := dates.ParseDMY(*in.Date)
		if err != nil {
			return sel, perr.WithField(perr.Validationf("date must be a date in DD/MM/YYYY format"), "date")
		}
		sel = sel.And(crossref.ByDate(d))
	}
	if in.Owner != nil {
		sel = sel.And(crossref.ByOwner(*in.Owner))
	}
	return sel, nil
}
