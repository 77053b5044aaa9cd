package ui

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/racesearch/internal/prefs"
	"github.com/five82/racesearch/internal/raceresults"
)

// focusArea is the pane receiving key input.
type focusArea int

const (
	focusSearch focusArea = iota
	focusResults
)

// Options configures the UI.
type Options struct {
	Context   context.Context
	Tracker   *raceresults.Tracker
	Logger    *slog.Logger
	ThemeName string
	PrefsPath string
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx       context.Context
	tracker   *raceresults.Tracker
	logger    *slog.Logger
	prefsPath string

	// UI state
	theme    Theme
	keys     keyMap
	help     help.Model
	input    textinput.Model
	table    table.Model
	spinner  spinner.Model
	focus    focusArea
	width    int
	height   int
	ready    bool
	showHelp bool

	// Data state
	outcome     raceresults.Outcome
	query       string
	lastUpdated time.Time
}

// New creates a new Bubble Tea model showing the tracker's current outcome.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	themeName := opts.ThemeName
	if themeName == "" {
		themeName = themeOrder[0]
	}

	m := Model{
		ctx:       ctx,
		tracker:   opts.Tracker,
		logger:    logger,
		prefsPath: opts.PrefsPath,
		theme:     GetTheme(themeName),
		keys:      DefaultKeyMap(),
		help:      help.New(),
		input:     newSearchInput(),
		table:     newResultsTable(),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
		focus:     focusSearch,
	}
	m.helpStyles()
	m.syncOutcome()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tea.EnterAltScreen, textinput.Blink)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ready = true
		m.refreshTable()
		return m, nil

	case searchDoneMsg:
		if m.tracker.Resolve(raceresults.Completion(msg)) {
			m.syncOutcome()
		}
		return m, nil

	case spinner.TickMsg:
		if !m.outcome.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderResults())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key closes help
	if m.showHelp {
		m.showHelp = false
		return m, nil
	}

	switch {
	case msg.Type == tea.KeyCtrlC:
		return m.quit()
	case key.Matches(msg, m.keys.SwitchPane):
		return m, m.toggleFocus()
	case key.Matches(msg, m.keys.Reset):
		m.reset()
		return m, nil
	}

	if m.focus == focusSearch {
		return m.handleSearchKey(msg)
	}
	return m.handleResultsKey(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Submit):
		return m, m.submit()
	case key.Matches(msg, m.keys.Leave):
		return m, m.setFocus(focusResults)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.quit()
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil
	case key.Matches(msg, m.keys.CycleTheme):
		m.cycleTheme()
		return m, nil
	case key.Matches(msg, m.keys.FocusSearch):
		return m, m.setFocus(focusSearch)
	case key.Matches(msg, m.keys.Top):
		m.table.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Bottom):
		m.table.GotoBottom()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// quit closes the tracker so late completions are dropped, then exits.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.tracker != nil {
		m.tracker.Close()
	}
	return m, tea.Quit
}

func (m *Model) toggleFocus() tea.Cmd {
	if m.focus == focusSearch {
		return m.setFocus(focusResults)
	}
	return m.setFocus(focusSearch)
}

func (m *Model) setFocus(f focusArea) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	if f == focusSearch {
		m.table.Blur()
		cmd = m.input.Focus()
	} else {
		m.input.Blur()
		m.table.Focus()
	}
	m.table.SetStyles(m.tableStyles())
	return cmd
}

// cycleTheme switches to the next theme and persists the choice.
func (m *Model) cycleTheme() {
	m.theme = GetTheme(NextTheme(m.theme.Name))
	m.helpStyles()
	m.table.SetStyles(m.tableStyles())
	if m.prefsPath == "" {
		return
	}
	if err := prefs.Save(m.prefsPath, prefs.Prefs{Theme: m.theme.Name}); err != nil {
		m.logger.Warn("save preferences failed", "error", err)
	}
}

// syncOutcome copies the tracker's state into the model.
func (m *Model) syncOutcome() {
	if m.tracker == nil {
		return
	}
	prevPhase := m.outcome.Phase
	m.outcome = m.tracker.Snapshot()
	m.query = m.tracker.Query()
	if m.outcome.Phase != prevPhase && !m.outcome.Loading {
		m.lastUpdated = time.Now()
	}
	m.refreshTable()
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	final, err := p.Run()
	if fm, ok := final.(Model); ok && fm.tracker != nil {
		fm.tracker.Close()
	}
	return err
}
