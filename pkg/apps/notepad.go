package apps

import (
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// NotepadPlaceholder is the initial text of a new notepad.
const NotepadPlaceholder = "// Type your elite hacking notes here..."

// NotepadModel is a plain multi-line editor. Its text lives only as long
// as the window.
type NotepadModel struct {
	env    *Env
	editor textarea.Model
}

// NewNotepad is the notepad's Factory.
func NewNotepad(_ Host, env *Env) Content {
	ta := textarea.New()
	ta.ShowLineNumbers = false
	ta.Prompt = ""
	ta.CharLimit = 0
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.FocusedStyle.Base = lipgloss.NewStyle()
	ta.BlurredStyle.Base = lipgloss.NewStyle()
	ta.Cursor.SetMode(cursor.CursorStatic)
	ta.SetValue(NotepadPlaceholder)
	ta.Focus()

	return &NotepadModel{env: env, editor: ta}
}

func (n *NotepadModel) Init() tea.Cmd { return nil }

func (n *NotepadModel) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return nil
	}
	var cmd tea.Cmd
	n.editor, cmd = n.editor.Update(msg)
	return cmd
}

// Value returns the current text.
func (n *NotepadModel) Value() string { return n.editor.Value() }

func (n *NotepadModel) Resize(width, height int) {
	n.editor.SetWidth(max(1, width))
	n.editor.SetHeight(max(1, height))
}

func (n *NotepadModel) View() string {
	th := n.env.theme()
	return lipgloss.NewStyle().Foreground(lipgloss.Color(th.WindowFg)).Render(n.editor.View())
}
