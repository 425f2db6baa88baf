package apps

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// staticModel renders read-only text wrapped to the window width.
type staticModel struct {
	env    *Env
	render func(width int, env *Env) string
	width  int
}

func (s *staticModel) Init() tea.Cmd          { return nil }
func (s *staticModel) Update(tea.Msg) tea.Cmd { return nil }
func (s *staticModel) Resize(width, _ int)    { s.width = width }
func (s *staticModel) View() string           { return s.render(max(1, s.width), s.env) }

// NewWelcome is the README window's Factory.
func NewWelcome(_ Host, env *Env) Content {
	return &staticModel{env: env, render: renderWelcome}
}

// NewAbout is the About This Rig Factory.
func NewAbout(_ Host, env *Env) Content {
	return &staticModel{env: env, render: renderAbout}
}

var welcomeParagraphs = []string{
	"This cloud rig is hot-wired into the net. You're running a custom build of the Puter OS, Hack'd Up Edition v0.4.2.0.",
	"The icons on your desktop are your entry points. The Terminal is your weapon of choice, ninja. A new \"toy\" has been added: 'Mr. Smiley'. Don't click it. Don't even look at it too long!",
	"Use the system wisely.",
}

func renderWelcome(width int, env *Env) string {
	th := env.theme()
	heading := lipgloss.NewStyle().Foreground(lipgloss.Color(th.PromptFg)).Bold(true)
	body := lipgloss.NewStyle().Foreground(lipgloss.Color(th.WindowFg)).Width(width)
	sig := lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))

	parts := []string{heading.Render("> Welcome, Guest User."), ""}
	for _, p := range welcomeParagraphs {
		parts = append(parts, body.Render(p), "")
	}
	parts = append(parts, sig.Render("> infopirate_x86"))
	return strings.Join(parts, "\n")
}

var rigSpecs = [][2]string{
	{"OS", "Forked from PuterOS: Hack'd Up Edition v0.4.2.0-basic"},
	{"Kernel", "6.6.6-1337HACKER"},
	{"Uptime", "93w 4d 1h 18m"},
	{"CPU", "RISC-V Fusion @ 8.1GHz (OC)"},
	{"GPU", "Tesla SuperPacks CM-900b GPU's"},
	{"Gaze I/O", "Disabled: WebGazer Sub-system v1.1"},
	{"AI/LLM Core", "ollama-Genie-v4.2.0"},
}

const rigCat = `  /\_/\
 ( o.o )
  > ^ <`

func renderAbout(width int, env *Env) string {
	th := env.theme()
	accent := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TitleActiveFg))
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(th.ButtonFg)).Width(13)
	value := lipgloss.NewStyle().Foreground(lipgloss.Color(th.WindowFg))
	quote := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TitleInactiveFg)).Italic(true).Width(width)

	cat := lipgloss.NewStyle().Foreground(lipgloss.Color(th.BorderActive)).MarginRight(2).Render(rigCat)
	infoWidth := max(10, width-lipgloss.Width(cat))

	lines := []string{
		accent.Bold(true).Render("infopirate_x86's Cloud-VM-Rig"),
		accent.Render(strings.Repeat("─", min(infoWidth, 40))),
	}
	for _, s := range rigSpecs {
		lines = append(lines, label.Render(s[0]+":")+value.MaxWidth(max(1, infoWidth-13)).Render(s[1]))
	}
	info := strings.Join(lines, "\n")

	return lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.JoinHorizontal(lipgloss.Top, cat, info),
		"",
		quote.Render(`"This is it. This is the future. This is... like, the future." - Phreak`),
	)
}
