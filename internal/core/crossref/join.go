package crossref

import (
	"cmp"
	"slices"

	"telejoin/internal/core/dates"
)

// Join is an inner join of visits and telemetry on Date
// Output follows visit order, then telemetry order within a date. Exact
// duplicate rows collapse to their first occurrence
func Join(visits []VisitRecord, telemetry []TelemetryRecord) []JoinedRecord {
	byDate := make(map[dates.Date][]string, len(telemetry))
	for _, t := range telemetry {
		byDate[t.Date] = append(byDate[t.Date], t.Address)
	}

	seen := make(map[JoinedRecord]struct{})
	out := make([]JoinedRecord, 0)
	for _, v := range visits {
		for _, addr := range byDate[v.Date] {
			row := JoinedRecord{Date: v.Date, Owner: v.Owner, Reference: v.Reference, Address: addr}
			if _, dup := seen[row]; dup {
				continue
			}
			seen[row] = struct{}{}
			out = append(out, row)
		}
	}
	return out
}

// Filter keeps rows matching every set field of sel
func Filter(rows []JoinedRecord, sel Selection) []JoinedRecord {
	out := make([]JoinedRecord, 0, len(rows))
	for _, r := range rows {
		if sel.Date != nil && r.Date != *sel.Date {
			continue
		}
		if sel.Owner != nil && r.Owner != *sel.Owner {
			continue
		}
		out = append(out, r)
	}
	return out
}

// OptionsOf returns the distinct dates and owners in rows, each sorted ascending
func OptionsOf(rows []JoinedRecord) Options {
	ds := make([]dates.Date, 0, len(rows))
	owners := make([]string, 0, len(rows))
	for _, r := range rows {
		ds = append(ds, r.Date)
		owners = append(owners, r.Owner)
	}
	slices.SortFunc(ds, dates.Date.Compare)
	slices.SortFunc(owners, cmp.Compare[string])
	return Options{Dates: slices.Compact(ds), Owners: slices.Compact(owners)}
}

// IsEmpty reports whether sel narrows nothing
func (s Selection) IsEmpty() bool { return s.Date == nil && s.Owner == nil }

// ByDate returns a Selection on d alone
func ByDate(d dates.Date) Selection { return Selection{Date: &d} }

// ByOwner returns a Selection on owner alone
func ByOwner(owner string) Selection { return Selection{Owner: &owner} }

// And merges o into s, o wins on fields it sets
func (s Selection) And(o Selection) Selection {
	if o.Date != nil {
		s.Date = o.Date
	}
	if o.Owner != nil {
		s.Owner = o.Owner
	}
	return s
}
