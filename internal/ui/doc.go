// Package ui provides the terminal interface for racesearch.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns a raceresults.Tracker and renders
// its outcome; it never fetches on its own. The package is organized into
// focused files:
//
//   - app.go: Model, key routing, focus handling and the Run function
//   - search.go: search input, button state and the submit command
//   - table.go: results table columns, rows and responsive column sets
//   - header.go: status bar and footer help line
//   - help.go: help overlay
//   - theme.go: color themes and Lipgloss styles
//
// # Search Flow
//
// Enter in the search box trims the input and calls Tracker.Set. When a
// request is due, the returned Call runs inside a tea.Cmd and comes back as
// a searchDoneMsg, which Update hands to Tracker.Resolve. Completions from
// superseded searches are rejected there, so the screen only ever shows the
// seed or the newest successful response.
//
// The button next to the input mirrors the outcome:
//
//   - disabled: the input is blank; Enter does nothing
//   - loading: a search is in flight; Enter does nothing
//   - retry: the last search failed; Enter issues it again
//   - ready: Enter issues the search
//
// ctrl+l clears the input and returns to the seed, dropping any search in
// flight.
//
// # Keyboard
//
// tab switches between the search box and the results table. In the table,
// j/k and g/G move the selection, / returns to the search box, T cycles the
// theme (persisted through the prefs package), ? shows help and q quits.
// ctrl+c quits from anywhere. Quitting closes the tracker.
//
// # Layout
//
// Below LayoutCompactWidth columns the club, year, gap and race columns are
// hidden. The API URL is shown in the header from LayoutURLWidth columns.
package ui
