// Package ui provides the read-only terminal board.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/task-cli/internal/todo"
	"github.com/nibzard/task-cli/internal/tracker"
	"github.com/nibzard/task-cli/internal/utils"
)

// SnapshotSource loads the current task list.
type SnapshotSource interface {
	Snapshot() (*tracker.Snapshot, error)
}

// BoardOption configures the board.
type BoardOption func(*boardModel)

// WithRefreshInterval sets how often the board reloads the task file.
func WithRefreshInterval(d time.Duration) BoardOption {
	return func(m *boardModel) {
		if d > 0 {
			m.tickInterval = d
		}
	}
}

// WithFilter starts the board filtered to status.
func WithFilter(status todo.Status) BoardOption {
	return func(m *boardModel) {
		m.filter = status
	}
}

// RunBoard shows the board until the user quits or ctx is done.
func RunBoard(ctx context.Context, src SnapshotSource, taskPath string, opts ...BoardOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("board requires a TTY")
	}

	model := newBoardModel(src, taskPath, opts...)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		return err
	}
	return nil
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	headingStyle = lipgloss.NewStyle().Bold(true)
	dimStyle     = lipgloss.NewStyle().Faint(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusStyles = map[todo.Status]lipgloss.Style{
		todo.StatusTodo:       lipgloss.NewStyle(),
		todo.StatusInProgress: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		todo.StatusDone:       lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

type boardModel struct {
	src          SnapshotSource
	taskPath     string
	snapshot     *tracker.Snapshot
	loadErr      error
	filter       todo.Status
	showHelp     bool
	width        int
	tickInterval time.Duration
	lastRefresh  time.Time
}

type tickMsg time.Time

func newBoardModel(src SnapshotSource, taskPath string, opts ...BoardOption) *boardModel {
	m := &boardModel{
		src:          src,
		taskPath:     taskPath,
		tickInterval: time.Second,
		width:        80,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *boardModel) Init() tea.Cmd {
	m.refresh()
	return tickCmd(m.tickInterval)
}

func (m *boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q", "esc":
			return m, tea.Quit
		case "r", "f5":
			m.refresh()
		case "h", "?":
			m.showHelp = !m.showHelp
		case "1":
			m.filter = todo.StatusTodo
		case "2":
			m.filter = todo.StatusInProgress
		case "3":
			m.filter = todo.StatusDone
		case "0":
			m.filter = ""
		}
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tickMsg:
		m.refresh()
		return m, tickCmd(m.tickInterval)
	}
	return m, nil
}

func (m *boardModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Task Board") + "\n\n")

	if m.showHelp {
		writeHelp(&b)
		m.writeFooter(&b)
		return b.String()
	}

	if m.loadErr != nil {
		b.WriteString(errorStyle.Render("Error loading task file:") + "\n")
		b.WriteString("  " + m.loadErr.Error() + "\n\n")
		m.writeFooter(&b)
		return b.String()
	}
	if m.snapshot == nil {
		b.WriteString("Loading...\n\n")
		m.writeFooter(&b)
		return b.String()
	}

	m.writeOverview(&b)
	m.writeTasks(&b)
	m.writeFooter(&b)
	return b.String()
}

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *boardModel) refresh() {
	snapshot, err := m.src.Snapshot()
	if err != nil {
		m.loadErr = err
		m.snapshot = nil
		return
	}
	m.loadErr = nil
	m.snapshot = snapshot
	m.lastRefresh = time.Now()
}

func (m *boardModel) writeOverview(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Overview") + "\n\n")
	parts := make([]string, 0, len(todo.Statuses())+1)
	for _, s := range todo.Statuses() {
		parts = append(parts, statusStyles[s].Render(fmt.Sprintf("%s: %d", statusLabel(s), m.snapshot.Counts[s])))
	}
	parts = append(parts, fmt.Sprintf("Total: %d", m.snapshot.Total()))
	b.WriteString("  " + strings.Join(parts, "  ") + "\n\n")
}

func (m *boardModel) writeTasks(b *strings.Builder) {
	heading := "Tasks"
	if m.filter != "" {
		heading = fmt.Sprintf("Tasks (%s, 0 to clear)", statusLabel(m.filter))
	}
	b.WriteString(headingStyle.Render(heading) + "\n\n")

	tasks := m.snapshot.Filter(m.filter)
	if len(tasks) == 0 {
		if m.filter != "" {
			b.WriteString("  No tasks with this status.\n\n")
		} else {
			b.WriteString("  No tasks yet. Add one with: task-cli add \"description\"\n\n")
		}
		return
	}
	for _, task := range tasks {
		b.WriteString(m.formatTask(task) + "\n")
	}
	b.WriteString("\n")
}

func (m *boardModel) formatTask(t todo.Task) string {
	prefix := fmt.Sprintf("  %s %3d  ", statusIcon(t.Status), t.ID)
	room := m.width - len(prefix)
	if room < 10 {
		room = 10
	}
	line := prefix + utils.Truncate(t.Description, room)
	if style, ok := statusStyles[t.Status]; ok {
		return style.Render(line)
	}
	return line
}

func writeHelp(b *strings.Builder) {
	b.WriteString(headingStyle.Render("Keyboard Shortcuts") + "\n\n")
	b.WriteString("  q, esc, ctrl+c  Quit\n")
	b.WriteString("  r, F5           Refresh now\n")
	b.WriteString("  h, ?            Toggle this help screen\n")
	b.WriteString("  1               Show todo\n")
	b.WriteString("  2               Show in progress\n")
	b.WriteString("  3               Show done\n")
	b.WriteString("  0               Show all\n\n")
}

func (m *boardModel) writeFooter(b *strings.Builder) {
	footer := fmt.Sprintf("%s | h for help | q to quit | refreshing every %s", m.taskPath, m.tickInterval)
	if !m.lastRefresh.IsZero() {
		footer += " | loaded " + m.lastRefresh.Format("15:04:05")
	}
	b.WriteString(dimStyle.Render(footer) + "\n")
}

func statusIcon(s todo.Status) string {
	switch s {
	case todo.StatusInProgress:
		return ">"
	case todo.StatusDone:
		return "x"
	case todo.StatusTodo:
		return " "
	default:
		return "?"
	}
}

func statusLabel(s todo.Status) string {
	switch s {
	case todo.StatusTodo:
		return "Todo"
	case todo.StatusInProgress:
		return "In progress"
	case todo.StatusDone:
		return "Done"
	default:
		return string(s)
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
