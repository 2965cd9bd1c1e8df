// Package domain holds the pipeline result shapes and the port other modules call
package domain

import (
	"telejoin/internal/core/crossref"
	"telejoin/internal/core/dates"
)

// Operation labels attached to load errors with perr.WithOp
const (
	OpTelemetry = "telemetry"
	OpVisits    = "visits"
	OpJoin      = "join"
)

// User facing messages, one per failure kind the presentation layers surface
const (
	MsgTelemetryFailed = "error reading telemetry"
	MsgVisitsFailed    = "error reading visits"
	MsgEmptyJoin       = "no completed visit matches a telemetry date"
)

// Result is one pipeline run
// Options describe the full joined set so a caller can change Selection
// without losing choices; Rows is already filtered
type Result struct {
	RunID     string                  `json:"run_id"`
	Rows      []crossref.JoinedRecord `json:"rows"`
	Total     int                     `json:"total"`
	Filtered  int                     `json:"filtered"`
	Options   crossref.Options        `json:"options"`
	Selection crossref.Selection      `json:"selection"`
}

// Joined holds an unfiltered join; Select narrows it without reloading
type Joined struct {
	RunID   string
	Rows    []crossref.JoinedRecord
	Options crossref.Options
}

// Select applies sel to the joined rows
func (j Joined) Select(sel crossref.Selection) Result {
	rows := crossref.Filter(j.Rows, sel)
	return Result{
		RunID:     j.RunID,
		Rows:      rows,
		Total:     len(j.Rows),
		Filtered:  len(rows),
		Options:   j.Options,
		Selection: sel,
	}
}

// TelemetrySummary describes the loaded telemetry sources
type TelemetrySummary struct {
	Sources []string    `json:"sources"`
	Records int         `json:"records"`
	Dates   int         `json:"dates"`
	First   *dates.Date `json:"first,omitempty"`
	Last    *dates.Date `json:"last,omitempty"`
}

// SummarizeTelemetry counts records and distinct dates
func SummarizeTelemetry(sources []string, recs []crossref.TelemetryRecord) TelemetrySummary {
	s := TelemetrySummary{Sources: append([]string(nil), sources...), Records: len(recs)}
	seen := make(map[dates.Date]struct{}, len(recs))
	for _, r := range recs {
		seen[r.Date] = struct{}{}
		if s.First == nil || r.Date.Before(*s.First) {
			d := r.Date
			s.First = &d
		}
		if s.Last == nil || s.Last.Before(r.Date) {
			d := r.Date
			s.Last = &d
		}
	}
	s.Dates = len(seen)
	return s
}
