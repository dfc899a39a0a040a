package tui

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"distviz/domain/distribution"
	"distviz/internal/view"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	khaki   = lipgloss.NewStyle().Foreground(lipgloss.Color("186"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

const sliderWidth = 30

type screen int

const (
	screenMenu screen = iota
	screenParams
)

// Explorer is the terminal counterpart of the web page: pick a family, then move sliders
// or type exact values while the histogram and quantiles follow.
type Explorer struct {
	coord *view.Coordinator
	state *view.State

	screen screen
	class  distribution.Class
	names  map[distribution.Class][]string
	cursor int

	paramCursor int
	editing     bool
	editBuf     string
	lastRefresh []view.Surface
	err         string

	width  int
	height int
}

// NewExplorer starts on the family menu with nothing selected
func NewExplorer(coord *view.Coordinator) Explorer {
	names := make(map[distribution.Class][]string, len(distribution.Classes))
	for _, class := range distribution.Classes {
		names[class] = coord.Catalog().Names(class)
	}
	return Explorer{
		coord:  coord,
		state:  view.NewState(),
		class:  distribution.Continuous,
		names:  names,
		width:  80,
		height: 24,
	}
}

// State exposes the view state driven by the explorer
func (m Explorer) State() *view.State { return m.state }

func (m Explorer) Init() tea.Cmd { return nil }

func (m Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m Explorer) handleKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	switch m.screen {
	case screenMenu:
		return m.menuKey(msg)
	case screenParams:
		if m.editing {
			return m.editKey(msg)
		}
		return m.paramKey(msg)
	}
	return m, nil
}

func (m Explorer) menuKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	names := m.names[m.class]
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab":
		m.class = otherClass(m.class)
		m.cursor = 0
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(names)-1 {
			m.cursor++
		}
	case "enter", " ":
		if len(names) == 0 {
			return m, nil
		}
		if err := m.coord.Select(m.state, m.class, names[m.cursor]); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		m.screen = screenParams
		m.paramCursor = 0
		m.lastRefresh = nil
	}
	return m, nil
}

func (m Explorer) paramKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	params := m.state.Parameters()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc", "b":
		m.screen = screenMenu
		m.err = ""
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(params)-1 {
			m.paramCursor++
		}
	case "left", "h":
		m.nudge(params, -1)
	case "right", "l":
		m.nudge(params, 1)
	case "enter", "e":
		if len(params) > 0 {
			m.editing = true
			m.editBuf = params[m.paramCursor].InputValue()
		}
	case "r":
		m.coord.Reevaluate(m.state)
	}
	return m, nil
}

// nudge moves the focused slider one step, staying inside the slider range
func (m *Explorer) nudge(params []view.Parameter, dir float64) {
	if len(params) == 0 {
		return
	}
	p := params[m.paramCursor]
	next := p.ClampToSlider(p.SliderValue() + dir*p.Step)
	m.apply(p.Name, next, view.SurfaceSlider)
}

func (m Explorer) editKey(msg tea.KeyMsg) (Explorer, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		params := m.state.Parameters()
		m.editing = false
		raw := strings.TrimSpace(m.editBuf)
		m.editBuf = ""
		if raw == "" {
			return m, nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) {
			m.err = fmt.Sprintf("%q is not a number", raw)
			return m, nil
		}
		m.apply(params[m.paramCursor].Name, v, view.SurfaceInput)
	case tea.KeyEsc:
		m.editing = false
		m.editBuf = ""
	case tea.KeyBackspace:
		if len(m.editBuf) > 0 {
			m.editBuf = m.editBuf[:len(m.editBuf)-1]
		}
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if strings.ContainsRune("0123456789.-+eEinfINF", r) {
				m.editBuf += string(r)
			}
		}
	}
	return m, nil
}

func (m *Explorer) apply(name string, value float64, source view.Surface) {
	refresh, err := m.coord.SetParameter(m.state, name, value, source)
	if err != nil {
		m.err = err.Error()
		return
	}
	m.err = ""
	m.lastRefresh = refresh
}

func (m Explorer) View() string {
	var b strings.Builder
	switch m.screen {
	case screenMenu:
		m.viewMenu(&b)
	case screenParams:
		m.viewParams(&b)
	}
	if m.err != "" {
		b.WriteString("\n" + red.Render(m.err) + "\n")
	}
	return b.String()
}

func (m Explorer) viewMenu(b *strings.Builder) {
	b.WriteString(cyan.Render("distviz") + dim.Render("  tab switch class · enter select · q quit") + "\n\n")
	for _, class := range distribution.Classes {
		label := string(class)
		if class == m.class {
			label = white.Render("[" + label + "]")
		} else {
			label = dim.Render(" " + label + " ")
		}
		b.WriteString(label + " ")
	}
	b.WriteString("\n\n")

	names := m.names[m.class]
	// window the list around the cursor so long catalogs fit the terminal
	rows := max(m.height-8, 5)
	start := max(0, m.cursor-rows/2)
	end := min(len(names), start+rows)
	for i := start; i < end; i++ {
		if i == m.cursor {
			b.WriteString(cyan.Render("> "+names[i]) + "\n")
		} else {
			b.WriteString(dim.Render("  "+names[i]) + "\n")
		}
	}
}

func (m Explorer) viewParams(b *strings.Builder) {
	b.WriteString(cyan.Render(m.state.Header()) + "\n")
	b.WriteString(dim.Render(m.state.Help()+" · ←/→ slide · enter type · r resample · esc back") + "\n\n")

	for i, p := range m.state.Parameters() {
		cursor := "  "
		if i == m.paramCursor {
			cursor = cyan.Render("> ")
		}
		input := khaki.Render(p.InputValue())
		if i == m.paramCursor && m.editing {
			input = magenta.Render(m.editBuf + "_")
		}
		fmt.Fprintf(b, "%s%-24s %s %s\n", cursor, p.Label, sliderBar(p), input)
	}
	b.WriteString("\n")

	res := m.state.Result()
	hist, _ := m.state.Figures()
	if !res.Valid() {
		b.WriteString(red.Render(res.Message) + "\n")
		return
	}
	b.WriteString(white.Render(hist.Title) + "\n")
	b.WriteString(Plot(hist) + "\n")
	b.WriteString(khaki.Render(Summary(res)) + "\n")
}

// sliderBar draws the clamped slider position between its two marks
func sliderBar(p view.Parameter) string {
	lo, hi := p.SliderDomain.Lower, p.SliderDomain.Upper
	pos := 0
	if hi > lo {
		pos = int(math.Round((p.SliderValue() - lo) / (hi - lo) * (sliderWidth - 1)))
	}
	bar := strings.Repeat("─", pos) + "●" + strings.Repeat("─", sliderWidth-1-pos)
	return dim.Render(distribution.FormatNumber(lo)) + " " + bar + " " + dim.Render(distribution.FormatNumber(hi))
}

func otherClass(c distribution.Class) distribution.Class {
	if c == distribution.Continuous {
		return distribution.Discrete
	}
	return distribution.Continuous
}
