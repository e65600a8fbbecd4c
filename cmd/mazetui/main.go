// Command mazetui runs the maze editor as a standalone terminal app.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/beka-birhanu/maze-editor-api/editor"
	"github.com/beka-birhanu/maze-editor-api/editor/maze"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultMaze = `#########
#P......#
#.#####.#
#.#...#.#
#.#.#.#.#
#...#...#
#.#####.#
#......E#
#########`

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62"))
	wallStyle   = lipgloss.NewStyle().Background(lipgloss.Color("238"))
	pathStyle   = lipgloss.NewStyle().Background(lipgloss.Color("254"))
	startStyle  = lipgloss.NewStyle().Background(lipgloss.Color("35")).Foreground(lipgloss.Color("231")).Bold(true)
	endStyle    = lipgloss.NewStyle().Background(lipgloss.Color("160")).Foreground(lipgloss.Color("231")).Bold(true)
	routeStyle  = lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("94"))
	cursorStyle = lipgloss.NewStyle().Background(lipgloss.Color("33")).Foreground(lipgloss.Color("231")).Bold(true)
	emptyStyle  = lipgloss.NewStyle().Faint(true).Italic(true)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

type mode int

const (
	modeEdit mode = iota
	modeMaze
)

type sessionEventMsg editor.Event

type sessionClosedMsg struct{}

type model struct {
	session *editor.Session
	events  <-chan editor.Event
	input   textarea.Model
	mode    mode
	state   editor.State
	notice  string
}

func newModel(sess *editor.Session) model {
	st := sess.State()

	ta := textarea.New()
	ta.Placeholder = "# for walls, . for paths, P start, E end"
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.SetWidth(48)
	ta.SetHeight(min(12, max(5, st.Grid.Height+2)))
	ta.SetValue(st.Text)
	ta.Focus()

	return model{
		session: sess,
		events:  sess.Events(),
		input:   ta,
		mode:    modeEdit,
		state:   st,
	}
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.waitForEvent())
}

// waitForEvent blocks on the session event feed until the next update.
func (m model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-m.events
		if !ok {
			return sessionClosedMsg{}
		}
		return sessionEventMsg(ev)
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionEventMsg:
		return m.handleEvent(editor.Event(msg))

	case sessionClosedMsg:
		return m, tea.Quit

	case tea.WindowSizeMsg:
		m.input.SetWidth(min(48, max(20, msg.Width-4)))
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleEvent(ev editor.Event) (tea.Model, tea.Cmd) {
	m.state = m.session.State()

	switch ev.Type {
	case editor.EventGridRebuilt:
		m.notice = ""
	case editor.EventSolved:
		m.notice = fmt.Sprintf("solved in %d steps", ev.Total)
	case editor.EventSolveFailed:
		m.notice = ev.Notice
	case editor.EventReplayStarted:
		m.notice = "replaying route"
	case editor.EventCursorMoved:
		if ev.Total > 0 {
			m.notice = fmt.Sprintf("step %d of %d", ev.Step, ev.Total)
		}
	case editor.EventReplayEnded:
		m.notice = "replay finished"
	case editor.EventReplayAborted:
		m.notice = ev.Notice
	}

	return m, m.waitForEvent()
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "ctrl+s":
		if _, err := m.session.SolveAndReplay(); err != nil {
			m.notice = err.Error()
		}
		m.state = m.session.State()
		return m, nil

	case "esc":
		if m.mode == modeEdit {
			m.mode = modeMaze
			m.input.Blur()
			return m, nil
		}
		m.mode = modeEdit
		m.input.SetValue(m.state.Text)
		return m, m.input.Focus()
	}

	if m.mode == modeMaze {
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 {
			if _, err := m.session.ManualMove(msg.Runes[0]); err != nil {
				m.notice = err.Error()
			}
			m.state = m.session.State()
		}
		return m, nil
	}

	// Forward everything else to the textarea and apply edits live.
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if text := m.input.Value(); text != m.state.Text {
		if err := m.session.SetText(text); err != nil {
			m.notice = err.Error()
		}
		m.state = m.session.State()
	}
	return m, cmd
}

func (m model) View() string {
	sections := []string{titleStyle.Render("Maze Editor"), "", m.mazeView()}
	if m.mode == modeEdit {
		sections = append(sections, "", m.input.View())
	}
	sections = append(sections, "", m.statusView(), helpStyle.Render(m.helpView()))
	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m model) mazeView() string {
	g := m.state.Grid
	if g == nil || g.Width == 0 {
		return emptyStyle.Render("(empty maze)")
	}

	route := make(map[maze.Position]bool)
	if m.state.Solution != nil {
		for _, p := range m.state.Solution.Path {
			route[p] = true
		}
	}

	var b strings.Builder
	for y, row := range g.Rows {
		if y > 0 {
			b.WriteByte('\n')
		}
		for _, cell := range row {
			b.WriteString(m.cellView(cell, route))
		}
	}
	return b.String()
}

func (m model) cellView(c maze.Cell, route map[maze.Position]bool) string {
	if m.state.Cursor != nil && *m.state.Cursor == c.Position {
		return cursorStyle.Render("@ ")
	}
	switch c.Kind {
	case maze.KindStart:
		return startStyle.Render("S ")
	case maze.KindEnd:
		return endStyle.Render("E ")
	}
	if route[c.Position] {
		return routeStyle.Render("··")
	}
	if c.Kind == maze.KindWall {
		return wallStyle.Render("  ")
	}
	return pathStyle.Render("  ")
}

func (m model) statusView() string {
	label := "editing"
	if m.mode == modeMaze {
		label = "exploring"
	}

	parts := []string{label, fmt.Sprintf("generation %d", m.state.Generation)}
	switch {
	case m.state.Replaying:
		parts = append(parts, "replaying")
	case m.state.Solution != nil:
		parts = append(parts, fmt.Sprintf("solved in %d steps", m.state.Solution.Steps()))
	default:
		parts = append(parts, "unsolved")
	}

	status := statusStyle.Render(strings.Join(parts, " | "))
	if m.notice != "" {
		status += "\n" + noticeStyle.Render(m.notice)
	}
	return status
}

func (m model) helpView() string {
	if m.mode == modeEdit {
		return "esc: preview • ctrl+s: solve • ctrl+c: quit"
	}
	k := m.state.MoveKeys
	return fmt.Sprintf("%c%c%c%c: move • esc: edit • ctrl+s: solve • ctrl+c: quit", k.Up, k.Left, k.Down, k.Right)
}

func main() {
	step := flag.Duration("step", 150*time.Millisecond, "delay between replay steps")
	flag.Parse()

	text := defaultMaze
	if flag.NArg() > 0 {
		data, err := os.ReadFile(flag.Arg(0))
		if err != nil {
			log.Fatalf("reading maze file: %v", err)
		}
		text = string(data)
	}

	sess, err := editor.New(editor.Config{
		Text:      text,
		StepDelay: *step,
		Logger:    log.New(io.Discard, "", 0),
	})
	if err != nil {
		log.Fatalf("starting editor session: %v", err)
	}
	defer sess.Close()

	if _, err := tea.NewProgram(newModel(sess), tea.WithAltScreen()).Run(); err != nil {
		log.Fatalf("running editor: %v", err)
	}
}
