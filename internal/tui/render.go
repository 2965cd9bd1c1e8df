// Package tui renders join results for the terminal: a static table for
// scripted use and an interactive browser
package tui

import (
	"fmt"
	"strings"

	"telejoin/internal/core/crossref"
	pipe "telejoin/internal/services/pipeline/domain"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Columns are the result headers in display order
var Columns = []string{"Date", "Owner", "Reference", "Address"}

// Cells flattens a joined record into display cells; dates print DD/MM/YYYY
func Cells(r crossref.JoinedRecord) []string {
	return []string{r.Date.Format(), r.Owner, r.Reference, r.Address}
}

// RenderTable draws rows as a bordered table
func RenderTable(rows []crossref.JoinedRecord, st Styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(Columns...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.Header
			}
			return st.Cell
		})
	for _, r := range rows {
		t.Row(Cells(r)...)
	}
	return t.Render()
}

// RenderResult draws a run: the table plus a count line, or the warning alone
func RenderResult(res pipe.Result, warning error, st Styles) string {
	if warning != nil {
		return st.Warning.Render(warning.Error())
	}
	var b strings.Builder
	b.WriteString(RenderTable(res.Rows, st))
	b.WriteString("\n")
	b.WriteString(st.Footnote.Render(fmt.Sprintf("%d of %d rows", res.Filtered, res.Total)))
	return b.String()
}

// RenderSummary draws the telemetry sources summary
func RenderSummary(s pipe.TelemetrySummary, st Styles) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(_, col int) lipgloss.Style {
			if col == 0 {
				return st.Label.Padding(0, 1)
			}
			return st.Cell
		})
	for _, src := range s.Sources {
		t.Row("source", src)
	}
	t.Row("records", fmt.Sprint(s.Records))
	t.Row("dates", fmt.Sprint(s.Dates))
	if s.First != nil {
		t.Row("first", s.First.Format())
	}
	if s.Last != nil {
		t.Row("last", s.Last.Format())
	}
	return t.Render()
}
