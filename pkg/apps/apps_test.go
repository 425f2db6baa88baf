package apps

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/infopirate/gibson/pkg/cerebro"
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/torrent"
	"github.com/infopirate/gibson/pkg/wm"
)

func TestCatalogTemplates(t *testing.T) {
	c := DefaultCatalog()
	tests := []struct {
		kind    wm.AppKind
		title   string
		size    geom.Size
		canOpen bool
	}{
		{Welcome, "README.txt", geom.Size{Width: 500, Height: 400}, true},
		{Terminal, "Terminal", geom.Size{Width: 640, Height: 480}, true},
		{Torrents, "Torrents", geom.Size{Width: 800, Height: 500}, true},
		{Notepad, "Notepad", geom.Size{Width: 500, Height: 400}, true},
		{About, "About This Rig", geom.Size{Width: 450, Height: 350}, true},
		{Virus, "Mr. Smiley", geom.Size{}, false},
	}
	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			tpl, ok := c.Template(tt.kind)
			if !ok {
				t.Fatalf("Template(%q) missing", tt.kind)
			}
			if tpl.Title != tt.title || tpl.DefaultSize != tt.size || tpl.CanOpen != tt.canOpen {
				t.Errorf("Template(%q) = %+v", tt.kind, tpl)
			}
		})
	}
	if _, ok := c.Template("solitaire"); ok {
		t.Errorf("unknown kind resolved")
	}
}

func TestCatalogIcons(t *testing.T) {
	var kinds []wm.AppKind
	for _, a := range DefaultCatalog().Icons() {
		kinds = append(kinds, a.Kind)
	}
	want := []wm.AppKind{Terminal, Torrents, Notepad, About, Virus}
	if len(kinds) != len(want) {
		t.Fatalf("icons = %v", kinds)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("icon %d = %s, want %s", i, kinds[i], want[i])
		}
	}
}

func TestCatalogOpensThroughManager(t *testing.T) {
	m := wm.NewManager(wm.Config{Registry: DefaultCatalog()})
	if _, ok := m.Open(Virus); ok {
		t.Fatalf("virus opened a window")
	}
	id, ok := m.Open(Torrents)
	if !ok {
		t.Fatalf("Open(torrents) failed")
	}
	w, _ := m.Window(id)
	if w.Size != (geom.Size{Width: 800, Height: 500}) {
		t.Errorf("size = %v", w.Size)
	}
}

func TestNewContent(t *testing.T) {
	c := DefaultCatalog()
	for _, a := range c.Apps() {
		content := c.NewContent(a.Kind, Host{WindowID: 1}, &Env{})
		if (content == nil) != (a.New == nil) {
			t.Errorf("NewContent(%s) = %v", a.Kind, content)
			continue
		}
		if content == nil {
			continue
		}
		content.Resize(60, 20)
		if content.View() == "" {
			t.Errorf("%s rendered nothing", a.Kind)
		}
	}
}

func TestHostRequests(t *testing.T) {
	h := Host{WindowID: 3}
	if msg, ok := h.RequestClose()().(CloseRequestMsg); !ok || msg.ID != 3 {
		t.Errorf("RequestClose msg = %#v", msg)
	}
	if msg, ok := h.RequestWarning()().(WarningRequestMsg); !ok || msg.ID != 3 {
		t.Errorf("RequestWarning msg = %#v", msg)
	}
}

func newTestTerminal(t *testing.T) (*TerminalModel, *Env) {
	t.Helper()
	env := &Env{Torrents: torrent.NewSimulator()}
	term := NewTerminal(Host{WindowID: 7}, env).(*TerminalModel)
	term.Resize(80, 24)
	return term, env
}

func lastLine(term *TerminalModel) string {
	lines := term.Lines()
	return lines[len(lines)-1]
}

func fastDelays(t *testing.T) {
	t.Helper()
	d, c, s := DownloadDelay, ConnectDelay, ScanDelay
	DownloadDelay, ConnectDelay, ScanDelay = time.Millisecond, time.Millisecond, time.Millisecond
	t.Cleanup(func() { DownloadDelay, ConnectDelay, ScanDelay = d, c, s })
}

func TestTerminalSyncCommands(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"help", "Available commands:"},
		{"sysinfo", "System: PuterOS HE 2.0"},
		{"ls", "gibson_mainframe.log"},
		{"cat manifesto.txt", "This is our world now"},
		{"cat passwords.txt", "cat: passwords.txt: File is encrypted with 4096-bit RSA. Nice try."},
		{"cat", "Usage: cat [filename]"},
		{"run doom.exe", "run: cannot find executable 'doom.exe'"},
		{"ask", "Usage: ask [your question]"},
		{"download", "Usage: download [url | magnet_link]"},
		{"connect", "Usage: connect [ip_address]"},
		{"scan", "Error: Not connected to any host."},
		{"disconnect", "Error: Not connected to any host."},
		{"HACK", "Command not found: hack. Type 'help'."},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			term, _ := newTestTerminal(t)
			if cmd := term.Execute(tt.line); cmd != nil {
				t.Fatalf("Execute(%q) returned a command", tt.line)
			}
			if got := lastLine(term); !strings.Contains(got, tt.want) {
				t.Errorf("last line = %q, want it to contain %q", got, tt.want)
			}
			if term.Busy() {
				t.Errorf("terminal busy after sync command")
			}
		})
	}
}

func TestTerminalEchoesInput(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.Execute("")
	if got := lastLine(term); got != "> " {
		t.Errorf("echo = %q", got)
	}
}

func TestTerminalClear(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.Execute("help")
	term.Execute("clear")
	if n := len(term.Lines()); n != 0 {
		t.Errorf("lines after clear = %d", n)
	}
}

func TestTerminalExitClosesWindow(t *testing.T) {
	term, _ := newTestTerminal(t)
	cmd := term.Execute("exit")
	if cmd == nil {
		t.Fatalf("exit returned no command")
	}
	if msg, ok := cmd().(CloseRequestMsg); !ok || msg.ID != 7 {
		t.Errorf("exit msg = %#v", msg)
	}
}

func TestTerminalRunSmileyRaisesWarning(t *testing.T) {
	term, _ := newTestTerminal(t)
	cmd := term.Execute("run mr_smiley.exe")
	if cmd == nil {
		t.Fatalf("no command")
	}
	if _, ok := cmd().(WarningRequestMsg); !ok {
		t.Errorf("expected WarningRequestMsg")
	}
	if got := lastLine(term); got != "Executing mr_smiley.exe..." {
		t.Errorf("last line = %q", got)
	}
}

func TestTerminalDownload(t *testing.T) {
	fastDelays(t)
	tests := []struct {
		link string
		want string
		n    int
	}{
		{"https://yts.mx/movie/karate-kid", "Torrent added. Open the Torrents app to see progress.", 1},
		{"https://example.com/nothing", "Could not parse link or find torrent data.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			term, env := newTestTerminal(t)
			cmd := term.Execute("download " + tt.link)
			if !term.Busy() || cmd == nil {
				t.Fatalf("download did not start")
			}
			if got := lastLine(term); got != "Analyzing link: "+tt.link {
				t.Errorf("progress line = %q", got)
			}
			msg := cmd()
			if tm, ok := msg.(Targeted); !ok || tm.Target() != 7 {
				t.Fatalf("continuation not addressed to window: %#v", msg)
			}
			term.Update(msg)
			if term.Busy() {
				t.Errorf("still busy")
			}
			if got := lastLine(term); got != tt.want {
				t.Errorf("result = %q, want %q", got, tt.want)
			}
			if env.Torrents.Len() != tt.n {
				t.Errorf("torrents = %d, want %d", env.Torrents.Len(), tt.n)
			}
		})
	}
}

func TestTerminalConnectScanDisconnect(t *testing.T) {
	fastDelays(t)
	term, _ := newTestTerminal(t)

	cmd := term.Execute("connect 10.0.0.1")
	if term.Prompt() != ">" {
		t.Fatalf("prompt changed before connection completed")
	}
	term.Update(cmd())
	if term.Prompt() != "[10.0.0.1]~#" {
		t.Fatalf("prompt = %q", term.Prompt())
	}
	if got := lastLine(term); got != "Connection established. Uplink active." {
		t.Errorf("connect result = %q", got)
	}

	cmd = term.Execute("probe")
	if got := lastLine(term); got != "Scanning 10.0.0.1..." {
		t.Errorf("scan line = %q", got)
	}
	term.Update(cmd())
	if got := lastLine(term); !strings.HasPrefix(got, "Port 21 (FTP)") {
		t.Errorf("scan result = %q", got)
	}

	term.Execute("disconnect")
	if got := lastLine(term); got != "Disconnecting from 10.0.0.1..." {
		t.Errorf("disconnect line = %q", got)
	}
	if term.Prompt() != ">" {
		t.Errorf("prompt after disconnect = %q", term.Prompt())
	}
}

func TestTerminalAskUnconfigured(t *testing.T) {
	term, _ := newTestTerminal(t)
	cmd := term.Execute("ask what is the gibson")
	if !term.Busy() {
		t.Fatalf("ask did not mark busy")
	}
	term.Update(cmd())
	if got := lastLine(term); got != cerebro.NotConfigured {
		t.Errorf("answer = %q", got)
	}
}

func TestTerminalIgnoresEnterWhileBusy(t *testing.T) {
	fastDelays(t)
	term, _ := newTestTerminal(t)
	term.Execute("connect 1.2.3.4")
	before := len(term.Lines())
	if cmd := term.Update(tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Errorf("enter while busy returned a command")
	}
	if len(term.Lines()) != before {
		t.Errorf("enter while busy ran a command")
	}
}

func TestTerminalTypingAndEnter(t *testing.T) {
	term, _ := newTestTerminal(t)
	term.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("ls")})
	term.Update(tea.KeyMsg{Type: tea.KeyEnter})
	lines := term.Lines()
	if lines[len(lines)-2] != "> ls" {
		t.Errorf("echo = %q", lines[len(lines)-2])
	}
}

func TestNotepadStartsWithPlaceholder(t *testing.T) {
	n := NewNotepad(Host{}, nil).(*NotepadModel)
	n.Resize(40, 10)
	if n.Value() != NotepadPlaceholder {
		t.Errorf("value = %q", n.Value())
	}
	n.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("!")})
	if !strings.HasSuffix(n.Value(), "!") {
		t.Errorf("typing ignored: %q", n.Value())
	}
}

func TestTorrentsView(t *testing.T) {
	env := &Env{Torrents: torrent.NewSimulator()}
	v := NewTorrents(Host{}, env)
	v.Resize(120, 20)
	if !strings.Contains(v.View(), "No active torrents.") {
		t.Errorf("empty view missing hint")
	}
	env.Torrents.Add("hackers")
	out := v.View()
	if !strings.Contains(out, "Total Torrents: 1") || !strings.Contains(out, "Downloading") {
		t.Errorf("view = %q", out)
	}
}
