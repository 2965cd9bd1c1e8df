// Package crossref joins completed field visits to telemetry on calendar date
// and narrows the result by date and owner
package crossref

import "telejoin/internal/core/dates"

// TelemetryRecord is one geocoded communication event
type TelemetryRecord struct {
	Date    dates.Date
	Address string
}

// VisitRecord is one completed field activity; Status keeps the raw text
type VisitRecord struct {
	Date      dates.Date
	Owner     string
	Reference string
	Status    string
}

// JoinedRecord pairs a visit with a telemetry event on the same date
type JoinedRecord struct {
	Date      dates.Date `json:"date"`
	Owner     string     `json:"owner"`
	Reference string     `json:"reference"`
	Address   string     `json:"address"`
}

// Selection narrows joined rows; nil fields select everything
type Selection struct {
	Date  *dates.Date `json:"date,omitempty"`
	Owner *string     `json:"owner,omitempty"`
}

// Options are the distinct values a Selection can pick from
type Options struct {
	Dates  []dates.Date `json:"dates"`
	Owners []string     `json:"owners"`
}
