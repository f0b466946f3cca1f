package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gobrain/pkg/config"
	"gobrain/pkg/machine"
)

type keyMap struct {
	Advance key.Binding
	Autorun key.Binding
	Quit    key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Advance, k.Autorun, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Advance, k.Autorun, k.Quit}}
}

var defaultKeys = keyMap{
	Advance: key.NewBinding(
		key.WithKeys("a", " "),
		key.WithHelp("a", "advance"),
	),
	Autorun: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "autorun"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// tickMsg drives autorun stepping.
type tickMsg time.Time

// Model is the interactive stepping view. It reads machine state only
// through Snapshot and mutates it only through Step.
type Model struct {
	mach     *machine.Machine
	srcLines []string
	display  config.DisplayConfig

	keys     keyMap
	help     help.Model
	viewport viewport.Model
	ready    bool
	autorun  bool
	width    int
	height   int
}

// NewModel builds the view over an already-constructed machine. source is
// the original program text, kept only for display.
func NewModel(m *machine.Machine, source string, display config.DisplayConfig) Model {
	return Model{
		mach:     m,
		srcLines: strings.Split(source, "\n"),
		display:  display,
		keys:     defaultKeys,
		help:     help.New(),
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) tick() tea.Cmd {
	interval := time.Duration(float64(time.Second) / m.display.AutorunRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.Advance):
			m.mach.Step()
			m.refresh()
			return m, nil

		case key.Matches(msg, m.keys.Autorun):
			m.autorun = !m.autorun
			if m.autorun {
				return m, m.tick()
			}
			return m, nil
		}

	case tickMsg:
		if !m.autorun {
			return m, nil
		}
		status, _ := m.mach.Step()
		m.refresh()
		if status != machine.Running {
			m.autorun = false
			return m, nil
		}
		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Three header lines (title, output, status) plus the help footer.
		panelHeight := msg.Height - 5
		if panelHeight < 1 {
			panelHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, panelHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = panelHeight
		}
		m.help.Width = msg.Width
		m.refresh()
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) refresh() {
	if m.ready {
		m.viewport.SetContent(m.renderPanel(m.mach.Snapshot()))
	}
}

func (m Model) View() string {
	if !m.ready {
		return "loading..."
	}

	snap := m.mach.Snapshot()

	var s strings.Builder
	s.WriteString(TitleStyle.Render("gobrain"))
	s.WriteString("\n")
	s.WriteString(OutputStyle.Render(printable(snap.Output)))
	s.WriteString("\n")
	s.WriteString(m.renderStatus(snap))
	s.WriteString("\n")
	s.WriteString(m.viewport.View())
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render(m.help.View(m.keys)))

	return s.String()
}

func (m Model) renderStatus(snap machine.Snapshot) string {
	switch snap.Status {
	case machine.Completed:
		return StatusDoneStyle.Render("completed")
	case machine.Failed:
		return StatusErrorStyle.Render(fmt.Sprintf("failed: %v", snap.Err))
	default:
		return fmt.Sprintf("pc=%d dp=%d", snap.PC, snap.DP)
	}
}

// renderPanel zips the formatted tape cells with the source lines, one row
// per line, cells on the left and source on the right.
func (m Model) renderPanel(snap machine.Snapshot) string {
	cellWidth := len(m.cellText(0))

	rows := len(snap.Tape)
	if len(m.srcLines) > rows {
		rows = len(m.srcLines)
	}

	var s strings.Builder
	for row := 0; row < rows; row++ {
		if row < len(snap.Tape) {
			s.WriteString(m.renderCell(snap, row))
		} else {
			s.WriteString(strings.Repeat(" ", cellWidth))
		}
		if row < len(m.srcLines) {
			s.WriteString("  ")
			s.WriteString(m.renderSourceLine(snap, row))
		}
		s.WriteString("\n")
	}
	return s.String()
}

// cellText formats one cell in the configured columns, unstyled.
func (m Model) cellText(val byte) string {
	var b strings.Builder
	if m.display.Decimal {
		fmt.Fprintf(&b, "%03d", val)
	}
	if m.display.Hex {
		fmt.Fprintf(&b, " 0x%02x", val)
	}
	if m.display.ASCII {
		ch := byte(' ')
		if val >= 0x20 && val < 0x7f {
			ch = val
		}
		fmt.Fprintf(&b, " %c", ch)
	}
	return b.String()
}

func (m Model) renderCell(snap machine.Snapshot, idx int) string {
	text := m.cellText(snap.Tape[idx])
	if idx == snap.DP {
		return CursorStyle.Render(text)
	}
	return text
}

// renderSourceLine highlights the character under the program counter on
// its own line.
func (m Model) renderSourceLine(snap machine.Snapshot, row int) string {
	line := m.srcLines[row]
	if snap.Char == 0 || row != snap.Line || snap.Col >= len(line) {
		return line
	}
	return line[:snap.Col] +
		CursorStyle.Render(string(line[snap.Col])) +
		line[snap.Col+1:]
}

// printable renders output bytes for the single-line output display,
// keeping newlines visible as glyphs. lipgloss styling spans lines badly
// when the content wraps, so control bytes are made visible instead.
func printable(out []byte) string {
	var b strings.Builder
	for _, c := range out {
		switch {
		case c == '\n':
			b.WriteString("\\n")
		case c >= 0x20 && c < 0x7f:
			b.WriteByte(c)
		default:
			fmt.Fprintf(&b, "\\x%02x", c)
		}
	}
	if b.Len() == 0 {
		return lipgloss.NewStyle().Faint(true).Render("(no output)")
	}
	return b.String()
}
