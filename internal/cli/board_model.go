package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akulinich/ballast/internal/allocation"
	"github.com/akulinich/ballast/internal/capacity"
	"github.com/akulinich/ballast/internal/cli/formatter"
	"github.com/akulinich/ballast/internal/contract"
	"github.com/akulinich/ballast/internal/domain"
)

// boardKeyMap defines the interactive board key bindings.
type boardKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Left      key.Binding
	Right     key.Binding
	MoveLeft  key.Binding
	MoveRight key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Optimize  key.Binding
	Apply     key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultBoardKeyMap() boardKeyMap {
	return boardKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "cursor up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "cursor down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev lane")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next lane")),
		MoveLeft:  key.NewBinding(key.WithKeys("H", "shift+left"), key.WithHelp("H", "move item left")),
		MoveRight: key.NewBinding(key.WithKeys("L", "shift+right"), key.WithHelp("L", "move item right")),
		MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move item up")),
		MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move item down")),
		Optimize:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "optimize")),
		Apply:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "apply candidate")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k boardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.MoveLeft, k.MoveRight, k.Optimize, k.Quit, k.Help}
}

func (k boardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.MoveUp, k.MoveDown, k.MoveLeft, k.MoveRight},
		{k.Optimize, k.Apply, k.Refresh, k.Quit},
	}
}

type boardLoadedMsg struct {
	view *contract.BoardView
	err  error
}

type optimizeDoneMsg struct {
	outcome *contract.OptimizeOutcome
	err     error
}

type appliedMsg struct{ err error }

// boardModel is the interactive planning board. Lanes render as columns
// with the unassigned pool as the last column; an in-flight optimizer run
// resolves against the session token, so a manual move made while it runs
// invalidates the candidate instead of being clobbered by it.
type boardModel struct {
	app    *App
	planID string

	keys boardKeyMap
	help help.Model

	view    *contract.BoardView
	columns []boardColumn
	col     int
	row     int

	candidate  *contract.OptimizeOutcome
	optimizing bool
	status     string
	err        error
	width      int
	height     int
}

type boardColumn struct {
	id    string
	title string
	pace  string
	meter string
	items []domain.WorkItem
}

func newBoardModel(app *App, planID string) *boardModel {
	return &boardModel{
		app:    app,
		planID: planID,
		keys:   defaultBoardKeyMap(),
		help:   help.New(),
	}
}

func (m *boardModel) Init() tea.Cmd {
	return m.load()
}

func (m *boardModel) load() tea.Cmd {
	app, planID := m.app, m.planID
	return func() tea.Msg {
		view, err := app.Board.GetBoard(context.Background(), contract.NewBoardRequest(planID))
		return boardLoadedMsg{view: view, err: err}
	}
}

func (m *boardModel) runOptimize() tea.Cmd {
	app, planID := m.app, m.planID
	return func() tea.Msg {
		outcome, err := app.Optimize.Optimize(context.Background(), contract.NewOptimizeRequest(planID))
		return optimizeDoneMsg{outcome: outcome, err: err}
	}
}

func (m *boardModel) applyCandidate() tea.Cmd {
	app, planID, outcome := m.app, m.planID, m.candidate
	return func() tea.Msg {
		err := app.Optimize.Accept(context.Background(), contract.AcceptRequest{
			PlanID:    planID,
			Token:     outcome.Token,
			Candidate: outcome.Candidate,
		})
		return appliedMsg{err: err}
	}
}

func (m *boardModel) moveSelected(toCol, toIndex int) tea.Cmd {
	item, ok := m.selected()
	if !ok || toCol < 0 || toCol >= len(m.columns) {
		return nil
	}
	app, planID := m.app, m.planID
	req := contract.NewMoveRequest(planID, item.ID, m.columns[toCol].id)
	req.Index = toIndex
	return func() tea.Msg {
		view, err := app.Board.MoveItem(context.Background(), req)
		return boardLoadedMsg{view: view, err: err}
	}
}

func (m *boardModel) selected() (domain.WorkItem, bool) {
	if m.col >= len(m.columns) {
		return domain.WorkItem{}, false
	}
	items := m.columns[m.col].items
	if m.row >= len(items) {
		return domain.WorkItem{}, false
	}
	return items[m.row], true
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.view = msg.view
		m.rebuildColumns()
		return m, nil

	case optimizeDoneMsg:
		m.optimizing = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.candidate = msg.outcome
		if len(msg.outcome.Moves) == 0 {
			m.candidate = nil
			m.status = "Already balanced."
		} else {
			m.status = fmt.Sprintf("Candidate ready: %d moves, balance %.2f. Press a to apply.",
				len(msg.outcome.Moves), msg.outcome.Metrics.BalanceScore)
		}
		return m, nil

	case appliedMsg:
		m.candidate = nil
		if errors.Is(msg.err, allocation.ErrStaleResult) {
			m.status = "Candidate went stale after a manual edit; discarded."
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.status = "Rebalance applied."
		return m, m.load()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *boardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
			m.clampRow()
		}
		return m, nil

	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.columns)-1 {
			m.col++
			m.clampRow()
		}
		return m, nil

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.col < len(m.columns) && m.row < len(m.columns[m.col].items)-1 {
			m.row++
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveLeft):
		return m, m.moveSelected(m.col-1, -1)

	case key.Matches(msg, m.keys.MoveRight):
		return m, m.moveSelected(m.col+1, -1)

	case key.Matches(msg, m.keys.MoveUp):
		if m.row > 0 {
			return m, m.moveSelected(m.col, m.row-1)
		}
		return m, nil

	case key.Matches(msg, m.keys.MoveDown):
		return m, m.moveSelected(m.col, m.row+1)

	case key.Matches(msg, m.keys.Optimize):
		if m.optimizing {
			return m, nil
		}
		m.optimizing = true
		m.status = "Optimizing…"
		return m, m.runOptimize()

	case key.Matches(msg, m.keys.Apply):
		if m.candidate == nil {
			m.status = "No candidate; press o first."
			return m, nil
		}
		return m, m.applyCandidate()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.load()
	}
	return m, nil
}

func (m *boardModel) rebuildColumns() {
	riskByID := make(map[string]capacity.SprintRisk, len(m.view.Risks))
	for _, r := range m.view.Risks {
		riskByID[r.ContainerID] = r
	}

	m.columns = m.columns[:0]
	for _, lane := range m.view.Lanes {
		pace := ""
		if r, ok := riskByID[lane.Container.ID]; ok {
			pace = formatter.RiskIndicator(r.Level)
		}
		m.columns = append(m.columns, boardColumn{
			id:    lane.Container.ID,
			title: lane.Container.Name,
			pace:  pace,
			meter: formatter.RenderMeter(lane.Usage.UtilizationPct(), 12),
			items: lane.Items,
		})
	}
	m.columns = append(m.columns, boardColumn{
		id:    domain.UnassignedID,
		title: "Unassigned",
		items: m.view.Unassigned,
	})
	if m.col >= len(m.columns) {
		m.col = len(m.columns) - 1
	}
	m.clampRow()
}

func (m *boardModel) clampRow() {
	if m.col >= len(m.columns) {
		m.row = 0
		return
	}
	if n := len(m.columns[m.col].items); m.row >= n {
		m.row = n - 1
	}
	if m.row < 0 {
		m.row = 0
	}
}

var (
	colStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(formatter.ColorDim).
			Padding(0, 1).
			Width(28)
	colActiveStyle = colStyle.
			BorderForeground(formatter.ColorHeader)
	cursorStyle = lipgloss.NewStyle().
			Foreground(formatter.ColorFg).
			Background(formatter.ColorDim)
)

func (m *boardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("Error: %v\n\nPress r to retry, q to quit.\n", m.err)
	}
	if m.view == nil {
		return "Loading…\n"
	}

	cols := make([]string, 0, len(m.columns))
	for ci, col := range m.columns {
		var b strings.Builder
		b.WriteString(formatter.Bold(col.title))
		if col.pace != "" {
			b.WriteString("  " + col.pace)
		}
		b.WriteString("\n")
		if col.meter != "" {
			b.WriteString(col.meter + "\n")
		}
		if len(col.items) == 0 {
			b.WriteString(formatter.Dim("(empty)") + "\n")
		}
		for ri, item := range col.items {
			line := fmt.Sprintf("%s %s", formatter.Points(item.Points), item.Title)
			if ci == m.col && ri == m.row {
				line = cursorStyle.Render(line)
			}
			b.WriteString(line + "\n")
		}

		style := colStyle
		if ci == m.col {
			style = colActiveStyle
		}
		cols = append(cols, style.Render(b.String()))
	}

	board := lipgloss.JoinHorizontal(lipgloss.Top, cols...)

	var footer strings.Builder
	if len(m.view.Warnings) > 0 {
		footer.WriteString(formatter.FormatWarnings(m.view.Warnings))
	}
	if m.status != "" {
		footer.WriteString(m.status + "\n")
	}
	footer.WriteString(m.help.View(m.keys))

	return lipgloss.JoinVertical(lipgloss.Left, board, footer.String())
}
