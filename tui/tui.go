package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/cavern/engine"
	"github.com/nathoo/cavern/engine/maze"
	"github.com/nathoo/cavern/types"
)

// minMapWidth is the narrowest terminal that still gets the map panel.
const minMapWidth = 60

// transcriptLine is one line of the game log before styling. Lines are
// styled again on every resize.
type transcriptLine struct {
	text string
	kind lineKind
	echo bool
	meta bool
}

// Model is the Bubble Tea model for a cavern game.
type Model struct {
	engine *engine.Engine
	title  string

	viewport viewport.Model
	input    textinput.Model
	history  *History

	transcript []transcriptLine

	width    int
	height   int
	ready    bool
	trace    bool
	showMap  bool
	quitting bool
	reported bool
	lastCmd  string
}

// outputMsg is a batch of transcript lines, optionally echoing the input
// that produced them.
type outputMsg struct {
	input string
	lines []string
	meta  bool
}

// New returns a model that plays eng.
func New(eng *engine.Engine, title string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	return Model{
		engine:  eng,
		title:   title,
		input:   ti,
		history: NewHistory(100),
		showMap: true,
	}
}

// Run starts the Bubble Tea program. trace starts with effect and event
// tracing switched on.
func Run(eng *engine.Engine, title string, trace bool) error {
	m := New(eng, title)
	m.trace = trace
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that prints the title and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		var lines []string
		if m.title != "" {
			lines = append(lines, m.title, "")
		}
		lines = append(lines, m.engine.Step("look").Output...)
		return outputMsg{lines: lines}
	}
}

// Update handles key presses, window resizes and game output.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(m.input.Value()); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			next, _ := m.history.Next()
			m.input.SetValue(next)
			m.input.CursorEnd()
			return m, nil

		case "tab":
			m.showMap = !m.showMap
			m.layout()
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case outputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// layout sizes the viewport around the status bar, input line and map.
func (m *Model) layout() {
	if m.width == 0 {
		return
	}
	vpHeight := m.height - 2
	if vpHeight < 1 {
		vpHeight = 1
	}
	vpWidth := m.width
	if m.mapVisible() {
		vpWidth -= lipgloss.Width(m.mapPanel())
	}
	if vpWidth < 10 {
		vpWidth = 10
	}

	if !m.ready {
		m.viewport = viewport.New(vpWidth, vpHeight)
		m.viewport.KeyMap = viewportKeyMap()
		m.ready = true
	} else {
		m.viewport.Width = vpWidth
		m.viewport.Height = vpHeight
	}
	m.refreshViewport()
}

// handleEnter runs the typed line as a meta command or a game command.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if input == "" {
		return m, nil
	}
	m.history.Push(input)

	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(outputMsg{
				input: input, lines: []string{"Nothing to repeat."}, meta: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(outputMsg{input: input, lines: output, meta: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	prompt := input
	if len(m.engine.Players()) > 1 && !m.engine.Over() {
		prompt = m.engine.ActivePlayer().Name + ": " + input
	}

	result := m.engine.Step(input)
	output := result.Output
	if m.trace {
		output = append(output, formatTrace(result)...)
	}
	if m.engine.Over() && !m.reported {
		m.reported = true
		output = append(output, "")
		for _, p := range m.engine.Players() {
			output = append(output, standing(p))
		}
	}
	m = m.appendOutput(outputMsg{input: prompt, lines: output})
	// The map panel may have grown with newly visited caves.
	m.layout()
	return m, nil
}

func standing(p types.PlayerInfo) string {
	switch {
	case p.Won:
		return fmt.Sprintf("%s won in cave %s.", p.Name, p.Cave)
	case p.Dead:
		return fmt.Sprintf("%s died in cave %s.", p.Name, p.Cave)
	}
	return fmt.Sprintf("%s stopped in cave %s.", p.Name, p.Cave)
}

// appendOutput records msg in the transcript.
func (m Model) appendOutput(msg outputMsg) Model {
	if msg.input != "" {
		m.transcript = append(m.transcript, transcriptLine{text: "> " + msg.input, echo: true})
	}
	for _, line := range msg.lines {
		rl := transcriptLine{text: line, meta: msg.meta}
		if !msg.meta {
			rl.kind = classifyLine(line)
		}
		m.transcript = append(m.transcript, rl)
	}
	m.transcript = append(m.transcript, transcriptLine{})

	m.refreshViewport()
	return m
}

// refreshViewport styles the transcript for the current width.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.viewport.Width
	var styled []string
	for _, rl := range m.transcript {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}
		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.echo:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.meta:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap breaks text between words so no line exceeds width.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) > width:
			sb.WriteString("\n")
			lineLen = len(word)
		default:
			sb.WriteString(" ")
			lineLen += 1 + len(word)
		}
		sb.WriteString(word)
	}
	return sb.String()
}

// mapVisible reports whether the map panel fits and is switched on.
func (m Model) mapVisible() bool {
	return m.showMap && m.width >= minMapWidth
}

// mapPanel draws the explored maze in a bordered box; after the game the
// whole maze is revealed.
func (m Model) mapPanel() string {
	mz := m.engine.Maze()
	text := maze.RenderExplored(mz)
	if m.engine.Over() {
		text = maze.Render(mz, true)
	}
	return styleMapPanel.Render(strings.TrimRight(text, "\n"))
}

// View renders the narrative (with the map beside it), the status bar and
// the input line.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	body := m.viewport.View()
	if m.mapVisible() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, body, m.mapPanel())
	}
	return body + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta runs a slash command. quit is true for /quit and /exit.
func (m *Model) handleMeta(input string) (out []string, quit bool) {
	switch cmd := strings.Fields(input)[0]; cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/map":
		m.showMap = !m.showMap
		m.layout()
		if m.showMap {
			return []string{"Map shown."}, false
		}
		return []string{"Map hidden."}, false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdHelp() []string {
	lines := []string{
		"System:",
		"  /quit         Exit the game",
		"  /help         Show this help",
		"  /state        Show players and turn count",
		"  /map          Show or hide the map (also Tab)",
		"  /trace        Toggle effect and event trace output",
		"",
		"Game commands:",
		"  n, s, e, w (or go <dir>)   Move to the next cave",
	}
	if m.engine.Rules.Arrows() {
		lines = append(lines, "  shoot <dir> <dist>         Fire an arrow <dist> caves away")
	}
	return append(lines,
		"  look (l)                   Describe your cave",
		"  again (g)                  Repeat your last command",
		"",
		"PgUp/PgDn scroll the log; Up/Down recall earlier commands.",
	)
}

func (m *Model) cmdState() []string {
	s := m.engine.State
	output := []string{
		fmt.Sprintf("Turn: %d", s.TurnCount),
		fmt.Sprintf("Rules: %s", s.Rules),
	}
	for _, p := range m.engine.Players() {
		line := fmt.Sprintf("%s: cave %s, arrows %d, gold %d", p.Name, p.Cave, p.Arrows, p.Gold)
		switch {
		case p.Won:
			line += ", won"
		case p.Dead:
			line += ", dead"
		}
		output = append(output, line)
	}
	return output
}

func formatTrace(result types.Result) []string {
	var lines []string
	for _, e := range result.Effects {
		lines = append(lines, fmt.Sprintf("[trace] effect %s %v", e.Type, e.Params))
	}
	for _, e := range result.Events {
		lines = append(lines, fmt.Sprintf("[trace] event %s %v", e.Type, e.Data))
	}
	if len(result.Refresh) > 0 {
		lines = append(lines, fmt.Sprintf("[trace] refresh %v", result.Refresh))
	}
	return lines
}

// viewportKeyMap disables Up/Down on the viewport; they drive the input
// history instead.
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
