package tui

import (
	"fmt"
	"strings"

	"telejoin/internal/core/crossref"
	"telejoin/internal/core/dates"
	pipe "telejoin/internal/services/pipeline/domain"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// All is the selector entry that narrows nothing
const All = "all"

// Focus names the selector receiving left/right
type Focus int

const (
	// FocusDate moves the date selector
	FocusDate Focus = iota
	// FocusOwner moves the owner selector
	FocusOwner
)

// selector cycles through a fixed option list; index 0 is always All
type selector struct {
	label   string
	options []string
	idx     int
}

func newSelector(label string, values []string) selector {
	return selector{label: label, options: append([]string{All}, values...)}
}

func (s *selector) move(delta int) {
	n := len(s.options)
	s.idx = ((s.idx+delta)%n + n) % n
}

func (s selector) value() string { return s.options[s.idx] }

// Model browses one joined run with a date and an owner selector
type Model struct {
	joined pipe.Joined
	dates  []dates.Date
	date   selector
	owner  selector
	focus  Focus
	table  table.Model
	result pipe.Result
	styles Styles
}

// NewModel builds a browser over j with both selectors on All
func NewModel(j pipe.Joined) Model {
	ds := make([]string, len(j.Options.Dates))
	for i, d := range j.Options.Dates {
		ds[i] = d.Format()
	}
	t := table.New(
		table.WithColumns([]table.Column{
			{Title: Columns[0], Width: 12},
			{Title: Columns[1], Width: 22},
			{Title: Columns[2], Width: 28},
			{Title: Columns[3], Width: 40},
		}),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	m := Model{
		joined: j,
		dates:  j.Options.Dates,
		date:   newSelector("Date", ds),
		owner:  newSelector("Owner", j.Options.Owners),
		table:  t,
		styles: DefaultStyles(),
	}
	m.apply()
	return m
}

// Selection is the selection the selectors currently describe
func (m Model) Selection() crossref.Selection {
	var sel crossref.Selection
	if m.date.idx > 0 {
		sel = sel.And(crossref.ByDate(m.dates[m.date.idx-1]))
	}
	if m.owner.idx > 0 {
		sel = sel.And(crossref.ByOwner(m.owner.value()))
	}
	return sel
}

// Result is the filtered run on screen
func (m Model) Result() pipe.Result { return m.result }

// Focused reports which selector has focus
func (m Model) Focused() Focus { return m.focus }

func (m *Model) apply() {
	m.result = m.joined.Select(m.Selection())
	rows := make([]table.Row, len(m.result.Rows))
	for i, r := range m.result.Rows {
		rows[i] = Cells(r)
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

func (m *Model) focused() *selector {
	if m.focus == FocusOwner {
		return &m.owner
	}
	return &m.date
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd { return nil }

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.focus = (m.focus + 1) % 2
			return m, nil
		case "left", "h":
			m.focused().move(-1)
			m.apply()
			return m, nil
		case "right", "l":
			m.focused().move(1)
			m.apply()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Telemetry × Visits"))
	b.WriteString("\n\n")
	for _, f := range []Focus{FocusDate, FocusOwner} {
		s := m.date
		if f == FocusOwner {
			s = m.owner
		}
		style := m.styles.Blurred
		if f == m.focus {
			style = m.styles.Focused
		}
		b.WriteString(m.styles.Label.Render(s.label + ": "))
		b.WriteString(style.Render("‹ " + s.value() + " ›"))
		b.WriteString("  ")
	}
	b.WriteString("\n\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(m.styles.Footnote.Render(fmt.Sprintf(
		"%d of %d rows · tab switch · ←/→ change · ↑/↓ scroll · q quit",
		m.result.Filtered, m.result.Total,
	)))
	return b.String()
}

// Browse runs the interactive browser until the user quits
func Browse(j pipe.Joined, opts ...tea.ProgramOption) error {
	_, err := tea.NewProgram(NewModel(j), opts...).Run()
	return err
}
