// Package ingest turns telemetry and visit workbooks into records
// Rows whose date cannot be parsed are dropped, never reported
package ingest

import (
	"context"

	"telejoin/internal/core/crossref"
	"telejoin/internal/core/dates"
	"telejoin/internal/core/normalize"
	"telejoin/internal/core/schema"
	"telejoin/internal/core/sheet"
	perr "telejoin/internal/platform/errors"
	"telejoin/internal/platform/logger"
)

// LoadTelemetryFiles loads each source on its own and concatenates the
// records in path order. The first failing source aborts the whole load
func LoadTelemetryFiles(ctx context.Context, paths []string, s schema.Schema) ([]crossref.TelemetryRecord, error) {
	if len(paths) == 0 {
		return nil, perr.InvalidArgf("no telemetry sources configured")
	}
	var out []crossref.TelemetryRecord
	for _, p := range paths {
		recs, err := LoadTelemetryFile(ctx, p, s)
		if err != nil {
			return nil, err
		}
		out = append(out, recs...)
	}
	return out, nil
}

// LoadTelemetryFile loads one telemetry workbook from disk
func LoadTelemetryFile(ctx context.Context, path string, s schema.Schema) ([]crossref.TelemetryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tab, err := sheet.Open(path)
	if err != nil {
		return nil, err
	}
	recs, err := LoadTelemetry(ctx, tab, s)
	if err != nil {
		return nil, perr.Wrapf(err, perr.CodeOf(err), "telemetry source %s", path)
	}
	logger.C(ctx).Debug().Str("path", path).Int("rows", tab.Len()).Int("kept", len(recs)).Msg("telemetry source loaded")
	return recs, nil
}

// LoadTelemetry selects the date and address columns and parses dates day first
func LoadTelemetry(ctx context.Context, tab *sheet.Table, s schema.Schema) ([]crossref.TelemetryRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cols, err := tab.Columns(s.Telemetry.Columns()...)
	if err != nil {
		return nil, err
	}
	dateCol, addrCol := cols[0], cols[1]

	out := make([]crossref.TelemetryRecord, 0, tab.Len())
	for r := range tab.Len() {
		d, ok := dates.ParseCell(tab.Cell(r, dateCol), dates.DayFirst, tab.Date1904)
		if !ok {
			continue
		}
		out = append(out, crossref.TelemetryRecord{Date: d, Address: tab.Cell(r, addrCol)})
	}
	return out, nil
}

// LoadVisits reads an uploaded visit workbook and keeps completed activities
// Dates use the month first default; telemetry is the only day first source
func LoadVisits(ctx context.Context, payload []byte, s schema.Schema) ([]crossref.VisitRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	tab, err := sheet.Parse(payload)
	if err != nil {
		return nil, err
	}
	recs, err := VisitsFromTable(ctx, tab, s)
	if err != nil {
		return nil, err
	}
	logger.C(ctx).Debug().Int("rows", tab.Len()).Int("kept", len(recs)).Msg("visits loaded")
	return recs, nil
}

// VisitsFromTable applies the visit rules to an already opened table
func VisitsFromTable(ctx context.Context, tab *sheet.Table, s schema.Schema) ([]crossref.VisitRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cols, err := tab.Columns(s.Visits.Columns()...)
	if err != nil {
		return nil, err
	}
	startCol, refCol, statusCol, ownerCol := cols[0], cols[1], cols[2], cols[3]

	out := make([]crossref.VisitRecord, 0, tab.Len())
	for r := range tab.Len() {
		status := tab.Cell(r, statusCol)
		if !normalize.Contains(status, s.CompletedMarker) {
			continue
		}
		d, ok := dates.ParseCell(tab.Cell(r, startCol), dates.MonthFirst, tab.Date1904)
		if !ok {
			continue
		}
		out = append(out, crossref.VisitRecord{
			Date:      d,
			Owner:     tab.Cell(r, ownerCol),
			Reference: tab.Cell(r, refCol),
			Status:    status,
		})
	}
	return out, nil
}
