// Package service runs the telemetry and visit loaders, the join and the
// selection, with optional memoization per stage
package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"

	"telejoin/internal/core/crossref"
	"telejoin/internal/core/memo"
	"telejoin/internal/core/schema"
	perr "telejoin/internal/platform/errors"
	"telejoin/internal/platform/logger"
	pstrings "telejoin/internal/platform/strings"
	"telejoin/internal/services/ingest"
	"telejoin/internal/services/pipeline/domain"

	"github.com/google/uuid"
)

// Service defines the pipeline service contract
type Service interface {
	domain.RunnerPort
}

// Config holds the sources and cache settings
type Config struct {
	Sources  []string
	Schema   schema.Schema
	Cache    bool
	CacheMax int
}

// Svc implements the pipeline
type Svc struct {
	cfg       Config
	schemaKey string

	telemetry *memo.Cache[[]crossref.TelemetryRecord]
	visits    *memo.Cache[[]crossref.VisitRecord]
	joins     *memo.Cache[[]crossref.JoinedRecord]

	newID func() string
}

// New constructs a pipeline service
func New(cfg Config) *Svc {
	if len(cfg.Sources) == 0 {
		panic("pipeline.Service requires at least one telemetry source")
	}
	opts := []memo.Option{memo.Enabled(cfg.Cache), memo.WithMax(cfg.CacheMax)}
	return &Svc{
		cfg:       cfg,
		schemaKey: fmt.Sprintf("%+v", cfg.Schema),
		telemetry: memo.New[[]crossref.TelemetryRecord](opts...),
		visits:    memo.New[[]crossref.VisitRecord](opts...),
		joins:     memo.New[[]crossref.JoinedRecord](opts...),
		newID:     uuid.NewString,
	}
}

// Sources returns the configured telemetry paths
func (s *Svc) Sources() []string { return append([]string(nil), s.cfg.Sources...) }

// Run loads, joins and filters in one go
func (s *Svc) Run(ctx context.Context, payload []byte, sel crossref.Selection) (domain.Result, error) {
	j, err := s.Join(ctx, payload)
	if err != nil {
		return domain.Result{RunID: j.RunID, Selection: sel}, err
	}
	res := j.Select(sel)
	logger.C(logger.WithRun(ctx, j.RunID)).Debug().
		Str("date", pstrings.Deref(dateText(sel), "all")).
		Str("owner", pstrings.Deref(sel.Owner, "all")).
		Int("filtered", res.Filtered).
		Msg("selection applied")
	if res.Total == 0 {
		return res, perr.WithOp(perr.EmptyResultf(domain.MsgEmptyJoin), domain.OpJoin)
	}
	return res, nil
}

// Join loads telemetry then visits and joins them
// Any load failure aborts; no partial data is returned
func (s *Svc) Join(ctx context.Context, payload []byte) (domain.Joined, error) {
	runID := s.newID()
	ctx = logger.WithRun(ctx, runID)
	log := logger.C(ctx)

	tel, telKey, err := s.loadTelemetry(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("telemetry load failed")
		return domain.Joined{RunID: runID}, err
	}
	vis, visKey, err := s.loadVisits(ctx, payload)
	if err != nil {
		log.Warn().Err(err).Msg("visit load failed")
		return domain.Joined{RunID: runID}, err
	}

	rows, err := s.joins.Do(ctx, memo.KeyOf("join", string(telKey), string(visKey)),
		func(context.Context) ([]crossref.JoinedRecord, error) {
			return crossref.Join(vis, tel), nil
		})
	if err != nil {
		return domain.Joined{RunID: runID}, err
	}

	log.Info().Int("telemetry", len(tel)).Int("visits", len(vis)).Int("joined", len(rows)).Msg("crossref run")
	return domain.Joined{RunID: runID, Rows: rows, Options: crossref.OptionsOf(rows)}, nil
}

// Telemetry loads every configured source, concatenated in order
func (s *Svc) Telemetry(ctx context.Context) ([]crossref.TelemetryRecord, error) {
	recs, _, err := s.loadTelemetry(ctx)
	return recs, err
}

// TelemetrySummary describes the configured sources
func (s *Svc) TelemetrySummary(ctx context.Context) (domain.TelemetrySummary, error) {
	recs, err := s.Telemetry(ctx)
	if err != nil {
		return domain.TelemetrySummary{}, err
	}
	return domain.SummarizeTelemetry(s.cfg.Sources, recs), nil
}

// Visits loads one visit payload
func (s *Svc) Visits(ctx context.Context, payload []byte) ([]crossref.VisitRecord, error) {
	recs, _, err := s.loadVisits(ctx, payload)
	return recs, err
}

// Invalidate drops cached telemetry and joins; visits are keyed by content
func (s *Svc) Invalidate() {
	s.telemetry.Purge()
	s.joins.Purge()
}

// CacheStats reports per-stage cache counters
func (s *Svc) CacheStats() map[string]memo.Stats {
	return map[string]memo.Stats{
		"telemetry": s.telemetry.Stats(),
		"visits":    s.visits.Stats(),
		"join":      s.joins.Stats(),
	}
}

func (s *Svc) loadTelemetry(ctx context.Context) ([]crossref.TelemetryRecord, memo.Key, error) {
	if !s.cfg.Cache {
		recs, err := ingest.LoadTelemetryFiles(ctx, s.cfg.Sources, s.cfg.Schema)
		if err != nil {
			return nil, "", loadErr(err, domain.OpTelemetry, domain.MsgTelemetryFailed)
		}
		return recs, "", nil
	}
	var (
		out  []crossref.TelemetryRecord
		keys = make([]string, 0, len(s.cfg.Sources))
	)
	for _, path := range s.cfg.Sources {
		key := s.sourceKey(path)
		recs, err := s.telemetry.Do(ctx, key, func(ctx context.Context) ([]crossref.TelemetryRecord, error) {
			return ingest.LoadTelemetryFile(ctx, path, s.cfg.Schema)
		})
		if err != nil {
			return nil, "", loadErr(err, domain.OpTelemetry, domain.MsgTelemetryFailed)
		}
		out = append(out, recs...)
		keys = append(keys, string(key))
	}
	return out, memo.KeyOf(keys...), nil
}

func (s *Svc) loadVisits(ctx context.Context, payload []byte) ([]crossref.VisitRecord, memo.Key, error) {
	sum := sha256.Sum256(payload)
	key := memo.KeyOf("visits", hex.EncodeToString(sum[:]), s.schemaKey)
	recs, err := s.visits.Do(ctx, key, func(ctx context.Context) ([]crossref.VisitRecord, error) {
		return ingest.LoadVisits(ctx, payload, s.cfg.Schema)
	})
	if err != nil {
		return nil, "", loadErr(err, domain.OpVisits, domain.MsgVisitsFailed)
	}
	return recs, key, nil
}

// sourceKey identifies a telemetry file by path, size and mtime
// A missing file still gets a key; the load itself reports the error
func (s *Svc) sourceKey(path string) memo.Key {
	var size, mod string
	if fi, err := os.Stat(path); err == nil {
		size = strconv.FormatInt(fi.Size(), 10)
		mod = strconv.FormatInt(fi.ModTime().UnixNano(), 10)
	}
	return memo.KeyOf("telemetry", path, size, mod, s.schemaKey)
}

// loadErr keeps FileFormat errors and folds everything else into UnknownLoad
func loadErr(err error, op, msg string) error {
	code := perr.ErrorCodeUnknownLoad
	if perr.IsCode(err, perr.ErrorCodeFileFormat) {
		code = perr.ErrorCodeFileFormat
	}
	return perr.WithOp(perr.Wrap(err, code, msg), op)
}

func dateText(sel crossref.Selection) *string {
	if sel.Date == nil {
		return nil
	}
	d := sel.Date.Format()
	return &d
}
