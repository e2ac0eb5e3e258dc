package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/irr-runner/internal/core"
	"github.com/vovakirdan/irr-runner/internal/storage"
)

const (
	boardLimit    = 100
	boardMinWidth = 50
	boardChrome   = 10 // title, stats, borders and help
)

// BoardView selects which runs the scoreboard lists.
type BoardView int

const (
	BoardTop BoardView = iota
	BoardRecent
)

func (v BoardView) String() string {
	if v == BoardRecent {
		return "Recent Runs"
	}
	return "Top Runs"
}

// Next returns the other view.
func (v BoardView) Next() BoardView {
	if v == BoardTop {
		return BoardRecent
	}
	return BoardTop
}

// ScoreboardKeyMap holds the scoreboard bindings and feeds the help view.
type ScoreboardKeyMap struct {
	Up         key.Binding
	Down       key.Binding
	SwitchView key.Binding
	Quit       key.Binding
}

func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.SwitchView, k.Quit}
}

func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultScoreboardKeyMap returns the stock bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	bind := func(label, desc string, keys ...string) key.Binding {
		return key.NewBinding(key.WithKeys(keys...), key.WithHelp(label, desc))
	}
	return ScoreboardKeyMap{
		Up:         bind("up/k", "scroll up", "up", "k"),
		Down:       bind("down/j", "scroll down", "down", "j"),
		SwitchView: bind("tab", "top/recent", "tab", "shift+tab", "left", "right", "h", "l"),
		Quit:       bind("q", "quit", "q", "esc", "ctrl+c"),
	}
}

var boardStyle = struct {
	title, stats, frame, help, empty lipgloss.Style
}{
	title: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")),
	stats: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	frame: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).Padding(0, 1),
	help:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	empty: lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
}

// ScoreboardModel lists recorded runs from the store.
type ScoreboardModel struct {
	store    *storage.Store
	view     BoardView
	runs     []storage.RunRecord
	stats    *storage.RunStats
	err      error
	table    table.Model
	help     help.Model
	keys     ScoreboardKeyMap
	width    int
	height   int
	quitting bool
}

// NewScoreboardModel loads the top runs. A nil store shows an empty board.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		keys:   DefaultScoreboardKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.layout()
	m.reload()
	return m
}

// layout rebuilds the table for the current window; the player column
// absorbs up to ten spare cells.
func (m *ScoreboardModel) layout() {
	cols := []table.Column{
		{Title: "Rank", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Outcome", Width: 9},
		{Title: "Chase", Width: 7},
		{Title: "Player", Width: 10},
		{Title: "Date", Width: 13},
	}
	spare := max(m.width-6, boardMinWidth)
	for _, c := range cols {
		spare -= c.Width + 2
	}
	cols[4].Width += min(max(spare, 0), 10)

	styles := table.DefaultStyles()
	styles.Header = styles.Header.Bold(true).BorderBottom(true).
		BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	styles.Selected = styles.Selected.Bold(false).
		Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))

	m.table = table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(max(m.height-boardChrome, 3)),
		table.WithStyles(styles),
	)
	m.fillRows()
}

// reload queries the store for the current view.
func (m *ScoreboardModel) reload() {
	m.runs, m.stats, m.err = nil, nil, nil
	if m.store != nil {
		fetch := m.store.TopRuns
		if m.view == BoardRecent {
			fetch = m.store.RecentRuns
		}
		m.runs, m.err = fetch(boardLimit)
		if stats, err := m.store.Stats(); err == nil {
			m.stats = stats
		}
	}
	m.fillRows()
}

func (m *ScoreboardModel) fillRows() {
	rows := make([]table.Row, 0, len(m.runs))
	for i, r := range m.runs {
		rows = append(rows, RunRow(i+1, r))
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// RunRow formats one run as a table row.
func RunRow(rank int, r storage.RunRecord) table.Row {
	outcome, chase, player := "caught", "-", r.Player
	if r.Outcome == core.OutcomeWin {
		outcome = "win"
	}
	if r.Chased {
		chase = "escaped"
	}
	if player == "" {
		player = "local"
	}
	return table.Row{
		fmt.Sprintf("#%d", rank),
		fmt.Sprintf("%.2f%%", r.Score),
		outcome,
		chase,
		player,
		r.CreatedAt.Local().Format("Jan 02 15:04"),
	}
}

func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		if key.Matches(msg, m.keys.SwitchView) {
			m.view = m.view.Next()
			m.reload()
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m ScoreboardModel) View() string {
	if m.quitting {
		return ""
	}

	parts := []string{
		boardStyle.title.Render(centerText("IRR RUNNER - "+strings.ToUpper(m.view.String()), m.width)),
	}
	if line := m.statsLine(); line != "" {
		parts = append(parts, boardStyle.stats.Render(centerText(line, m.width)))
	}
	parts = append(parts,
		boardStyle.frame.Render(m.body())+"\n"+boardStyle.help.Render(m.help.View(m.keys)))
	return strings.Join(parts, "\n\n")
}

func (m ScoreboardModel) statsLine() string {
	if m.stats == nil || m.stats.Runs == 0 {
		return ""
	}
	st := m.stats
	return fmt.Sprintf("%d runs  %d wins  %d escapes  best %.2f%%  avg %.2f%%",
		st.Runs, st.Wins, st.Escapes, st.HighScore, st.AvgScore)
}

func (m ScoreboardModel) body() string {
	if m.err != nil {
		return boardStyle.empty.Render("Could not load runs: " + m.err.Error())
	}
	if len(m.runs) == 0 {
		return boardStyle.empty.Render("No runs recorded yet.\nPlay a run to set a high score!")
	}
	return m.table.View()
}

// IsQuitting reports whether the user closed the board.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

func centerText(text string, width int) string {
	if pad := width - lipgloss.Width(text); pad > 1 {
		return strings.Repeat(" ", pad/2) + text
	}
	return text
}

// RunScoreboard shows the board in the alternate screen until the user quits.
func RunScoreboard(store *storage.Store, width, height int) error {
	_, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	return err
}
