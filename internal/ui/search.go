package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/racesearch/internal/raceresults"
)

const searchPlaceholder = "Search your name or a race"

// buttonState is what the search button shows next to the input.
type buttonState int

const (
	buttonReady buttonState = iota
	buttonDisabled
	buttonLoading
	buttonRetry
)

func (s buttonState) String() string {
	switch s {
	case buttonDisabled:
		return "disabled"
	case buttonLoading:
		return "loading"
	case buttonRetry:
		return "retry"
	default:
		return "ready"
	}
}

// searchButton derives the button from the trimmed input and the current
// outcome. Blank input wins over every other state.
func searchButton(input string, out raceresults.Outcome) buttonState {
	switch {
	case strings.TrimSpace(input) == "":
		return buttonDisabled
	case out.Loading:
		return buttonLoading
	case out.Error:
		return buttonRetry
	default:
		return buttonReady
	}
}

// canSubmit reports whether pressing the button issues a search.
func (s buttonState) canSubmit() bool {
	return s == buttonReady || s == buttonRetry
}

func newSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = searchPlaceholder
	ti.Prompt = "> "
	ti.Focus()
	return ti
}

// searchDoneMsg carries a finished call back into Update.
type searchDoneMsg raceresults.Completion

func searchCmd(ctx context.Context, call raceresults.Call) tea.Cmd {
	return func() tea.Msg {
		return searchDoneMsg(call.Do(ctx))
	}
}

// submit sends the trimmed input to the tracker. It returns nil when the
// button does not accept a press or the tracker has nothing to fetch.
func (m *Model) submit() tea.Cmd {
	query := strings.TrimSpace(m.input.Value())
	if !searchButton(query, m.outcome).canSubmit() {
		return nil
	}
	call, ok := m.tracker.Set(query)
	m.syncOutcome()
	if !ok {
		return nil
	}
	m.logger.Debug("search submitted", "query", query, "generation", call.Generation)
	return tea.Batch(searchCmd(m.ctx, call), m.spinner.Tick)
}

// reset clears the input and puts the seed back on screen.
func (m *Model) reset() {
	m.input.SetValue("")
	m.tracker.Set("")
	m.syncOutcome()
}

// renderSearchBar renders the input box and the button side by side.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles()
	state := searchButton(m.input.Value(), m.outcome)

	focused := m.focus == focusSearch
	border := m.theme.Border
	if focused {
		border = m.theme.BorderFocus
	}
	inputWidth := m.width - searchButtonWidth - 2 // -2 for borders
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth - len(m.input.Prompt) - 1
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(border)).
		Background(lipgloss.Color(m.theme.SearchBoxBg(focused))).
		Width(inputWidth).
		Render(m.input.View())

	label := "Search"
	switch state {
	case buttonLoading:
		label = m.spinner.View() + "Searching"
	case buttonRetry:
		label = "Retry"
	}
	button := lipgloss.NewStyle().
		Width(searchButtonWidth).
		Height(searchBarHeight).
		AlignVertical(lipgloss.Center).
		Render(styles.ButtonStyle(state).Render(label))

	return lipgloss.JoinHorizontal(lipgloss.Top, box, button)
}
