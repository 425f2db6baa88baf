package apps

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/infopirate/gibson/pkg/cerebro"
	"github.com/infopirate/gibson/pkg/colors"
	"github.com/infopirate/gibson/pkg/wm"
)

// Delays of the terminal's simulated remote operations.
var (
	DownloadDelay = 500 * time.Millisecond
	ConnectDelay  = time.Second
	ScanDelay     = 1500 * time.Millisecond
)

const (
	banner       = "CEREBRO AI v2.5 Online. Type 'help' for commands."
	smileyBinary = "mr_smiley.exe"
)

const helpText = `Available commands:
  ask [question]         - Query the CEREBRO AI.
  download [url]         - Download a file via torrent.
  connect [ip]           - Connect to a remote host.
  scan/probe             - Scan remote host (must be connected).
  disconnect             - Disconnect from remote host.
  run [program]          - Execute a program (e.g., mr_smiley.exe).
  sysinfo, ls, cat, clear, exit - Standard commands.`

const sysinfoText = `System: PuterOS HE 2.0
CPU: RISC-V Fusion @ 8.1GHz
AI: CEREBRO v2.5
Status: Hacking the Planet...`

const lsText = "gibson_mainframe.log\tpasswords.txt\tmanifesto.txt\nmr_smiley.exe\t\tcookie.jar\tda_vinci_virus.exe"

const manifestoText = `"This is our world now... the world of the electron and the switch... We exist without skin color, without nationality, without religious bias... and you call us criminals. Yes, I am a criminal. My crime is that of curiosity."
- The Mentor`

const scanText = "Port 21 (FTP)\t\t- OPEN\nPort 22 (SSH)\t\t- OPEN\nPort 80 (HTTP)\t\t- OPEN\nPort 443 (HTTPS)\t- OPEN\nPort 8080 (proxy)\t- OPEN"

type lineKind int

const (
	lineInput lineKind = iota
	lineOutput
	lineError
	lineSystem
)

type termLine struct {
	kind lineKind
	text string
}

type askDoneMsg struct {
	id     wm.ID
	answer string
}

type downloadDueMsg struct {
	id   wm.ID
	link string
}

type connectDueMsg struct {
	id   wm.ID
	host string
}

type scanDueMsg struct {
	id   wm.ID
	host string
}

func (m askDoneMsg) Target() wm.ID     { return m.id }
func (m downloadDueMsg) Target() wm.ID { return m.id }
func (m connectDueMsg) Target() wm.ID  { return m.id }
func (m scanDueMsg) Target() wm.ID     { return m.id }

// TerminalModel is the fake shell.
type TerminalModel struct {
	host Host
	env  *Env

	history    []termLine
	remote     string
	busy       bool
	input      textinput.Model
	scrollback viewport.Model
	width      int
	height     int
}

// NewTerminal is the terminal's Factory.
func NewTerminal(host Host, env *Env) Content {
	in := textinput.New()
	in.Prompt = ""
	in.Cursor.SetMode(cursor.CursorStatic)
	in.Focus()

	return &TerminalModel{
		host:       host,
		env:        env,
		history:    []termLine{{kind: lineSystem, text: banner}},
		input:      in,
		scrollback: viewport.New(0, 0),
	}
}

func (t *TerminalModel) Init() tea.Cmd { return nil }

// Prompt returns the current prompt symbol.
func (t *TerminalModel) Prompt() string {
	if t.remote != "" {
		return "[" + t.remote + "]~#"
	}
	return ">"
}

// Busy reports whether a command is still running.
func (t *TerminalModel) Busy() bool { return t.busy }

func (t *TerminalModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "enter":
			if t.busy {
				return nil
			}
			line := t.input.Value()
			t.input.Reset()
			return t.Execute(line)
		case "pgup":
			t.scrollback.PageUp()
			return nil
		case "pgdown":
			t.scrollback.PageDown()
			return nil
		}
		if t.busy {
			return nil
		}
		var cmd tea.Cmd
		t.input, cmd = t.input.Update(msg)
		return cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		t.scrollback, cmd = t.scrollback.Update(msg)
		return cmd

	case askDoneMsg:
		t.push(lineOutput, msg.answer)
		t.busy = false

	case downloadDueMsg:
		if t.env != nil && t.env.Torrents != nil && t.env.Torrents.Add(msg.link) {
			t.push(lineSystem, "Torrent added. Open the Torrents app to see progress.")
		} else {
			t.push(lineError, "Could not parse link or find torrent data.")
		}
		t.busy = false

	case connectDueMsg:
		t.push(lineSystem, "Connection established. Uplink active.")
		t.remote = msg.host
		t.busy = false

	case scanDueMsg:
		t.push(lineOutput, scanText)
		t.busy = false
	}
	return nil
}

// Execute runs one command line. Commands that finish later return a
// command whose message is addressed to this window.
func (t *TerminalModel) Execute(line string) tea.Cmd {
	t.push(lineInput, t.Prompt()+" "+line)

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name := strings.ToLower(fields[0])
	args := fields[1:]
	id := t.host.WindowID
	t.env.logger().WithFields(logrus.Fields{"window": id, "cmd": name}).Debug("terminal command")

	switch name {
	case "help":
		t.push(lineOutput, helpText)

	case "ask":
		if len(args) == 0 {
			t.push(lineError, "Usage: ask [your question]")
			return nil
		}
		t.push(lineSystem, ">>> Accessing CEREBRO AI...")
		t.busy = true
		question := strings.Join(args, " ")
		client := t.cerebro()
		return func() tea.Msg {
			return askDoneMsg{id: id, answer: client.Ask(context.Background(), question)}
		}

	case "download":
		if len(args) == 0 {
			t.push(lineError, "Usage: download [url | magnet_link]")
			return nil
		}
		link := args[0]
		t.push(lineSystem, "Analyzing link: "+link)
		t.busy = true
		return tea.Tick(DownloadDelay, func(time.Time) tea.Msg {
			return downloadDueMsg{id: id, link: link}
		})

	case "sysinfo":
		t.push(lineOutput, sysinfoText)

	case "ls":
		t.push(lineOutput, lsText)

	case "cat":
		switch {
		case len(args) == 0:
			t.push(lineError, "Usage: cat [filename]")
		case args[0] == "manifesto.txt":
			t.push(lineOutput, manifestoText)
		default:
			t.push(lineError, fmt.Sprintf("cat: %s: File is encrypted with 4096-bit RSA. Nice try.", args[0]))
		}

	case "run":
		if len(args) > 0 && args[0] == smileyBinary {
			t.push(lineSystem, "Executing "+smileyBinary+"...")
			return t.host.RequestWarning()
		}
		target := ""
		if len(args) > 0 {
			target = args[0]
		}
		t.push(lineError, fmt.Sprintf("run: cannot find executable '%s'", target))

	case "connect":
		if len(args) != 1 {
			t.push(lineError, "Usage: connect [ip_address]")
			return nil
		}
		remote := args[0]
		t.push(lineSystem, "Connecting to "+remote+"...")
		t.busy = true
		return tea.Tick(ConnectDelay, func(time.Time) tea.Msg {
			return connectDueMsg{id: id, host: remote}
		})

	case "scan", "probe":
		if t.remote == "" {
			t.push(lineError, "Error: Not connected to any host.")
			return nil
		}
		remote := t.remote
		t.push(lineSystem, "Scanning "+remote+"...")
		t.busy = true
		return tea.Tick(ScanDelay, func(time.Time) tea.Msg {
			return scanDueMsg{id: id, host: remote}
		})

	case "disconnect":
		if t.remote == "" {
			t.push(lineError, "Error: Not connected to any host.")
			return nil
		}
		t.push(lineSystem, "Disconnecting from "+t.remote+"...")
		t.remote = ""

	case "clear":
		t.history = nil
		t.refresh()

	case "exit":
		return t.host.RequestClose()

	default:
		t.push(lineError, fmt.Sprintf("Command not found: %s. Type 'help'.", name))
	}
	return nil
}

// Lines returns the plain text of the scrollback.
func (t *TerminalModel) Lines() []string {
	out := make([]string, len(t.history))
	for i, l := range t.history {
		out[i] = l.text
	}
	return out
}

func (t *TerminalModel) Resize(width, height int) {
	if width == t.width && height == t.height {
		return
	}
	t.width, t.height = width, height
	t.scrollback.Width = width
	t.scrollback.Height = max(0, height-1)
	t.input.Width = max(1, width-lipgloss.Width(t.Prompt())-2)
	t.refresh()
}

func (t *TerminalModel) View() string {
	th := t.theme()
	prompt := lipgloss.NewStyle().Foreground(lipgloss.Color(th.PromptFg)).Render(t.Prompt())
	input := prompt + " " + t.input.View()
	if t.busy {
		input = prompt
	}
	if t.height <= 1 {
		return input
	}
	return lipgloss.JoinVertical(lipgloss.Left, t.scrollback.View(), input)
}

func (t *TerminalModel) push(kind lineKind, text string) {
	t.history = append(t.history, termLine{kind: kind, text: text})
	t.refresh()
}

func (t *TerminalModel) refresh() {
	if t.width <= 0 {
		return
	}
	th := t.theme()
	colorsByKind := map[lineKind]string{
		lineInput:  th.PromptFg,
		lineOutput: th.OutputFg,
		lineError:  th.ErrorFg,
		lineSystem: th.Accent,
	}
	rendered := make([]string, len(t.history))
	for i, l := range t.history {
		rendered[i] = lipgloss.NewStyle().
			Width(t.width).
			Foreground(lipgloss.Color(colorsByKind[l.kind])).
			Render(l.text)
	}
	t.scrollback.SetContent(strings.Join(rendered, "\n"))
	t.scrollback.GotoBottom()
}

func (t *TerminalModel) theme() colors.Theme {
	return t.env.theme()
}

func (t *TerminalModel) cerebro() *cerebro.Client {
	if t.env == nil {
		return nil
	}
	return t.env.Cerebro
}
