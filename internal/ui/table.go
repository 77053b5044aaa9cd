package ui

import (
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/racesearch/internal/results"
)

// resultColumn describes one column of the results table.
type resultColumn struct {
	title   string
	width   int
	compact bool // shown below LayoutCompactWidth
	value   func(results.AthleteRaceResult) string
}

var resultColumns = []resultColumn{
	{"Pos", 4, true, func(r results.AthleteRaceResult) string { return strconv.Itoa(r.Position) }},
	{"Bib", 5, true, func(r results.AthleteRaceResult) string { return strconv.Itoa(r.BibNumber) }},
	{"Name", 0, true, func(r results.AthleteRaceResult) string { return r.Athlete.FullName() }},
	{"Club", 18, false, func(r results.AthleteRaceResult) string { return r.SportsClub }},
	{"Cat", 5, true, func(r results.AthleteRaceResult) string { return r.Category }},
	{"S", 2, true, func(r results.AthleteRaceResult) string { return string(r.Athlete.Gender) }},
	{"Year", 5, false, func(r results.AthleteRaceResult) string { return yearString(r.Athlete.YearOfBirth) }},
	{"Time", 11, true, func(r results.AthleteRaceResult) string { return results.FormatTime(r.TimeSecs) }},
	{"Gap", 11, false, func(r results.AthleteRaceResult) string { return results.FormatGap(r.GapSecs) }},
	{"Pace", 6, true, func(r results.AthleteRaceResult) string { return results.FormatPace(r.PaceMinKm) }},
	{"Race", 22, false, func(r results.AthleteRaceResult) string { return r.Race.Name }},
}

func yearString(year int) string {
	if year <= 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// visibleColumns returns the columns that fit width.
func visibleColumns(width int) []resultColumn {
	if width >= LayoutCompactWidth {
		return resultColumns
	}
	out := make([]resultColumn, 0, len(resultColumns))
	for _, col := range resultColumns {
		if col.compact {
			out = append(out, col)
		}
	}
	return out
}

// tableColumns sizes cols for width, giving the name column what is left.
func tableColumns(cols []resultColumn, width int) []table.Column {
	fixed := 0
	for _, col := range cols {
		fixed += col.width + cellPadding
	}
	nameWidth := maxInt(width-fixed-cellPadding, nameColumnMin)

	out := make([]table.Column, 0, len(cols))
	for _, col := range cols {
		w := col.width
		if w == 0 {
			w = nameWidth
		}
		out = append(out, table.Column{Title: col.title, Width: w})
	}
	return out
}

// tableRows renders data in the order the API returned it.
func tableRows(cols []resultColumn, data []results.AthleteRaceResult) []table.Row {
	rows := make([]table.Row, 0, len(data))
	for _, r := range data {
		row := make(table.Row, 0, len(cols))
		for _, col := range cols {
			row = append(row, col.value(r))
		}
		rows = append(rows, row)
	}
	return rows
}

func newResultsTable() table.Model {
	return table.New(
		table.WithColumns(tableColumns(resultColumns, LayoutCompactWidth)),
		table.WithFocused(false),
		table.WithHeight(minTableHeight),
	)
}

// refreshTable rebuilds columns and rows from the current outcome and size.
// Rows are cleared first since the table renders on every setter and rows
// must never be wider than the columns.
func (m *Model) refreshTable() {
	cols := visibleColumns(m.width)
	m.table.SetRows(nil)
	m.table.SetColumns(tableColumns(cols, m.width))
	m.table.SetRows(tableRows(cols, m.outcome.Data))
	m.table.SetHeight(maxInt(m.height-headerHeight-searchBarHeight-footerHeight, minTableHeight))
	if n := len(m.outcome.Data); m.table.Cursor() >= n {
		m.table.SetCursor(maxInt(n-1, 0))
	}
	m.table.SetStyles(m.tableStyles())
}

func (m Model) tableStyles() table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(m.theme.Border)).
		BorderBottom(true).
		Foreground(lipgloss.Color(m.theme.Accent)).
		Bold(true)
	s.Cell = s.Cell.Foreground(lipgloss.Color(m.theme.Text))
	s.Selected = m.theme.Styles().Selected.Bold(false)
	if !m.table.Focused() {
		s.Selected = s.Cell
	}
	return s
}

// renderResults renders the table or an empty-state message.
func (m Model) renderResults() string {
	if len(m.outcome.Data) == 0 {
		styles := m.theme.Styles()
		msg := styles.MutedText.Render("No results")
		height := maxInt(m.height-headerHeight-searchBarHeight-footerHeight, minTableHeight)
		return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
	}
	return m.table.View()
}
