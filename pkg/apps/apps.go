// Package apps is the application catalog: the templates the window
// manager opens from and the content shown inside each window.
package apps

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/infopirate/gibson/pkg/cerebro"
	"github.com/infopirate/gibson/pkg/colors"
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/torrent"
	"github.com/infopirate/gibson/pkg/wm"
)

// Application kinds.
const (
	Welcome  wm.AppKind = "welcome"
	Terminal wm.AppKind = "terminal"
	Torrents wm.AppKind = "torrents"
	Notepad  wm.AppKind = "notepad"
	About    wm.AppKind = "about"
	Virus    wm.AppKind = "virus"
)

// Content is what a window shows below its title bar. Contents are owned
// by the UI goroutine.
type Content interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	Resize(width, height int)
	View() string
}

// Targeted messages are delivered only to the content of one window and
// dropped when that window is gone.
type Targeted interface {
	Target() wm.ID
}

// CloseRequestMsg asks the desktop to close a window.
type CloseRequestMsg struct{ ID wm.ID }

// WarningRequestMsg asks the desktop to raise the confirmation dialog.
type WarningRequestMsg struct{ ID wm.ID }

// Host is a content's handle on its window.
type Host struct {
	WindowID wm.ID
}

// RequestClose returns a command that closes the hosting window.
func (h Host) RequestClose() tea.Cmd {
	id := h.WindowID
	return func() tea.Msg { return CloseRequestMsg{ID: id} }
}

// RequestWarning returns a command that raises the confirmation dialog.
func (h Host) RequestWarning() tea.Cmd {
	id := h.WindowID
	return func() tea.Msg { return WarningRequestMsg{ID: id} }
}

// Env carries the services shared by every window.
type Env struct {
	Torrents *torrent.Simulator
	Cerebro  *cerebro.Client
	Theme    colors.Theme
	Log      logrus.FieldLogger
}

func (e *Env) theme() colors.Theme {
	if e == nil || e.Theme.Name == "" {
		t, _ := colors.GetTheme(colors.DefaultTheme)
		return t
	}
	return e.Theme
}

func (e *Env) logger() logrus.FieldLogger {
	if e == nil || e.Log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		return l
	}
	return e.Log
}

// Factory creates the content for a new window.
type Factory func(host Host, env *Env) Content

// App is one catalog entry.
type App struct {
	Kind        wm.AppKind
	Title       string
	Icon        string
	DefaultSize geom.Size
	OnDesktop   bool

	// New is nil for entries that never get a window.
	New Factory
}

// Catalog is an ordered set of apps. It implements wm.Registry.
type Catalog struct {
	apps []App
}

// NewCatalog builds a catalog from apps, keeping their order.
func NewCatalog(apps ...App) *Catalog {
	return &Catalog{apps: apps}
}

// DefaultCatalog returns the built-in apps.
func DefaultCatalog() *Catalog {
	return NewCatalog(
		App{Kind: Welcome, Title: "README.txt", Icon: "≡", DefaultSize: geom.Size{Width: 500, Height: 400}, New: NewWelcome},
		App{Kind: Terminal, Title: "Terminal", Icon: ">_", DefaultSize: geom.Size{Width: 640, Height: 480}, OnDesktop: true, New: NewTerminal},
		App{Kind: Torrents, Title: "Torrents", Icon: "⇩", DefaultSize: geom.Size{Width: 800, Height: 500}, OnDesktop: true, New: NewTorrents},
		App{Kind: Notepad, Title: "Notepad", Icon: "≡", DefaultSize: geom.Size{Width: 500, Height: 400}, OnDesktop: true, New: NewNotepad},
		App{Kind: About, Title: "About This Rig", Icon: "(i)", DefaultSize: geom.Size{Width: 450, Height: 350}, OnDesktop: true, New: NewAbout},
		App{Kind: Virus, Title: "Mr. Smiley", Icon: "☺", OnDesktop: true},
	)
}

// Template implements wm.Registry.
func (c *Catalog) Template(kind wm.AppKind) (wm.Template, bool) {
	app, ok := c.Lookup(kind)
	if !ok {
		return wm.Template{}, false
	}
	return wm.Template{
		Kind:        app.Kind,
		Title:       app.Title,
		DefaultSize: app.DefaultSize,
		CanOpen:     app.New != nil,
	}, true
}

// Lookup returns the app for kind.
func (c *Catalog) Lookup(kind wm.AppKind) (App, bool) {
	for _, a := range c.apps {
		if a.Kind == kind {
			return a, true
		}
	}
	return App{}, false
}

// Apps returns every app in catalog order.
func (c *Catalog) Apps() []App {
	return append([]App(nil), c.apps...)
}

// Icons returns the apps shown on the desktop.
func (c *Catalog) Icons() []App {
	var out []App
	for _, a := range c.apps {
		if a.OnDesktop {
			out = append(out, a)
		}
	}
	return out
}

// NewContent creates the content for a window of kind, or nil when the
// kind has no factory.
func (c *Catalog) NewContent(kind wm.AppKind, host Host, env *Env) Content {
	app, ok := c.Lookup(kind)
	if !ok || app.New == nil {
		return nil
	}
	return app.New(host, env)
}
