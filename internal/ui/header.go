package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/racesearch/internal/state"
)

// renderHeader renders the status bar: logo, search status, result count
// and, on wide terminals, the API URL.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	bg := NewBgStyle(m.theme.Surface)

	parts := []string{
		bg.Render("racesearch", styles.Logo),
		m.statusText(styles, bg),
	}
	if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}
	if m.width >= LayoutURLWidth && m.tracker != nil {
		parts = append(parts,
			bg.Render("api", styles.FaintText)+bg.Space()+
				bg.Render(truncateMiddle(m.tracker.URL(), 50), styles.MutedText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, "  "))
}

// statusText describes the outcome in a few words.
func (m Model) statusText(styles Styles, bg BgStyle) string {
	query := m.query
	count := len(m.outcome.Data)
	switch m.outcome.Phase {
	case state.Pending:
		return bg.Render(fmt.Sprintf("Searching %q", query), styles.InfoText)
	case state.Failed:
		return bg.Render(fmt.Sprintf("Search %q failed", query), styles.DangerText) +
			bg.Space() + bg.Render("press enter to retry", styles.WarningText)
	case state.Succeeded:
		return bg.Render(fmt.Sprintf("%s for %q", pluralResults(count), query), styles.SuccessText)
	default:
		return bg.Render(fmt.Sprintf("Latest results (%s)", pluralResults(count)), styles.MutedText)
	}
}

func pluralResults(n int) string {
	if n == 1 {
		return "1 result"
	}
	return fmt.Sprintf("%d results", n)
}

// renderFooter renders the short help line.
func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Width(m.width).Render(m.help.ShortHelpView(m.keys.ShortHelp()))
}

// helpStyles applies the theme to the bubbles help renderer.
func (m *Model) helpStyles() {
	key := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	desc := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Muted))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	m.help.Styles.ShortKey = key
	m.help.Styles.ShortDesc = desc
	m.help.Styles.ShortSeparator = sep
	m.help.Styles.FullKey = key
	m.help.Styles.FullDesc = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	m.help.Styles.FullSeparator = sep
}
