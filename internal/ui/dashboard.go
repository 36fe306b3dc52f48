package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/krisk248/IITM-reap-project/internal/shared"
)

const barWidth = 24

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true).MarginBottom(1)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	totalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500")).Bold(true)
	borderStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240"))
)

// keyMap defines the [key.Binding] mapping for the dashboard.
type keyMap struct {
	up   key.Binding
	down key.Binding
	sort key.Binding
	quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		sort: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle sort")),
		quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.up, k.down, k.sort, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.up, k.down}, {k.sort, k.quit}}
}

// Model is the dashboard application state.
type Model struct {
	title  string
	rows   []CourseRow
	mode   SortMode
	table  table.Model
	help   help.Model
	keys   keyMap
	width  int
	height int
}

// NewModel creates a dashboard model from report rows.
func NewModel(title string, rows []CourseRow) *Model {
	m := &Model{
		title: title,
		rows:  rows,
		help:  help.New(),
		keys:  newKeyMap(),
	}
	m.table = m.buildTable()
	return m
}

func (m *Model) buildTable() table.Model {
	columns := []table.Column{
		{Title: "Course", Width: 40},
		{Title: "Duration", Width: 34},
		{Title: "Hours", Width: barWidth},
	}

	ordered := sortRows(m.rows, m.mode)
	max := maxSeconds(ordered)

	rows := make([]table.Row, 0, len(ordered))
	for _, row := range ordered {
		rows = append(rows, table.Row{
			row.Name,
			shared.FormatSeconds(row.Seconds),
			barStyle.Render(renderBar(row.Seconds, max, barWidth)),
		})
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(min(len(rows)+1, 20)),
	)
	return t
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.sort):
			m.mode = m.mode.next()
			cursor := m.table.Cursor()
			m.table = m.buildTable()
			m.table.SetCursor(cursor)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the dashboard.
func (m *Model) View() string {
	title := titleStyle.Render(m.title)
	total := totalStyle.Render(fmt.Sprintf("Total: %s across %d courses",
		shared.FormatSeconds(totalSeconds(m.rows)), len(m.rows)))
	footer := fmt.Sprintf("sorted by %s", m.mode)
	helpView := m.help.ShortHelpView(m.keys.ShortHelp())

	return fmt.Sprintf("%s\n%s\n%s\n%s\n\n%s",
		title, borderStyle.Render(m.table.View()), total, footer, helpView)
}
