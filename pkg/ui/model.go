// Package ui is the Bubble Tea front end: it maps terminal cells to desktop
// units, hit-tests mouse events against the composed screen and hosts each
// window's content.
package ui

import (
	"io"
	"math/rand"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/infopirate/gibson/pkg/apps"
	"github.com/infopirate/gibson/pkg/cerebro"
	"github.com/infopirate/gibson/pkg/colors"
	"github.com/infopirate/gibson/pkg/config"
	"github.com/infopirate/gibson/pkg/desktop"
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/gesture"
	"github.com/infopirate/gibson/pkg/torrent"
	"github.com/infopirate/gibson/pkg/wm"
)

// WelcomePosition is where the README window opens at startup.
var WelcomePosition = geom.Point{X: 150, Y: 100}

const (
	tickInterval = time.Second
	meltInterval = 60 * time.Millisecond
)

type tickMsg time.Time

type meltMsg struct{}

// ConfigReloadedMsg carries a config file change into the program.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// Options wires a Model. Zero fields get working defaults.
type Options struct {
	Config   *config.Config
	Catalog  *apps.Catalog
	Torrents *torrent.Simulator
	Cerebro  *cerebro.Client
	Log      logrus.FieldLogger
	Rand     *rand.Rand
	Now      func() time.Time
}

type click struct {
	app wm.AppKind
	at  time.Time
}

type contentSize struct {
	w, h int
}

// Model is the root tea.Model.
type Model struct {
	cfg     *config.Config
	theme   colors.Theme
	log     logrus.FieldLogger
	catalog *apps.Catalog
	env     *apps.Env
	rng     *rand.Rand
	clock   func() time.Time

	wm      *wm.Manager
	desk    *desktop.Controller
	tracker *gesture.Tracker

	contents map[wm.ID]apps.Content
	sizes    map[wm.ID]contentSize

	grid       grid
	cols, rows int
	now        time.Time
	lastClick  click

	melt      *melt
	startMelt bool
}

// New builds the model and opens the welcome window when configured to.
func New(opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	catalog := opts.Catalog
	if catalog == nil {
		catalog = apps.DefaultCatalog()
	}
	log := opts.Log
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	sim := opts.Torrents
	if sim == nil {
		sim = torrent.NewSimulator()
	}

	m := &Model{
		cfg:      cfg,
		log:      log,
		catalog:  catalog,
		rng:      rng,
		clock:    now,
		tracker:  gesture.NewTracker(),
		contents: make(map[wm.ID]apps.Content),
		sizes:    make(map[wm.ID]contentSize),
		cols:     80,
		rows:     24,
		now:      now(),
	}
	m.theme = m.lookupTheme(cfg.Theme)
	m.grid = grid{cw: cfg.Desktop.CellWidth, ch: cfg.Desktop.CellHeight}
	m.env = &apps.Env{Torrents: sim, Cerebro: opts.Cerebro, Theme: m.theme, Log: log}

	m.wm = wm.NewManager(wm.Config{Registry: catalog, Bounds: m, Rand: rng})
	m.wm.OnClose(m.tracker.Cancel)

	desktopApps := lo.Map(catalog.Apps(), func(a apps.App, _ int) desktop.App {
		return desktop.App{Kind: a.Kind, Title: a.Title, Openable: a.New != nil}
	})
	m.desk = desktop.New(desktop.Config{
		Launcher: m.wm,
		Apps:     desktopApps,
		Special:  apps.Virus,
		Info:     apps.About,
		OnEffect: m.triggerEffect,
	})

	if cfg.WelcomeOnStart() {
		m.wm.Open(apps.Welcome, wm.AtPosition(WelcomePosition))
	}
	return m
}

// Manager exposes the window manager.
func (m *Model) Manager() *wm.Manager { return m.wm }

// Desktop exposes the desktop controller.
func (m *Model) Desktop() *desktop.Controller { return m.desk }

// Usable implements wm.Bounds: the screen in desktop units minus the dock.
func (m *Model) Usable() geom.Size {
	return geom.Size{
		Width:  m.cols * m.grid.cw,
		Height: max(0, m.rows*m.grid.ch-m.cfg.Desktop.DockHeight),
	}
}

func (m *Model) dockRows() int {
	ch := m.grid.ch
	return max(1, (m.cfg.Desktop.DockHeight+ch-1)/ch)
}

func (m *Model) dockTop() int {
	return max(0, m.rows-m.dockRows())
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

func meltTick() tea.Cmd {
	return tea.Tick(meltInterval, func(time.Time) tea.Msg { return meltMsg{} })
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.reconcile())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		m.log.WithFields(logrus.Fields{"cols": m.cols, "rows": m.rows}).Debug("resize")

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tickMsg:
		m.now = time.Time(msg)
		m.env.Torrents.Tick(m.rng)
		cmds = append(cmds, tick())

	case meltMsg:
		if m.melt != nil && !m.melt.step(m.rng) {
			cmds = append(cmds, meltTick())
		}

	case ConfigReloadedMsg:
		m.applyConfig(msg.Config, msg.Err)

	case apps.CloseRequestMsg:
		m.wm.Close(msg.ID)

	case apps.WarningRequestMsg:
		m.desk.RaiseWarning()

	case apps.Targeted:
		if c, ok := m.contents[msg.Target()]; ok {
			cmds = append(cmds, c.Update(msg))
		}
	}

	if m.startMelt {
		m.startMelt = false
		m.melt = newMelt(m.cols, m.rows)
		cmds = append(cmds, meltTick())
	}
	cmds = append(cmds, m.reconcile())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.desk.EffectActive() || m.desk.DialogOpen() {
		return nil
	}
	if msg.String() == "esc" && m.desk.Menu() != nil {
		m.desk.CloseMenu()
		return nil
	}
	id := m.wm.ActiveID()
	w, ok := m.wm.Window(id)
	if !ok || !w.Visible() {
		return nil
	}
	if c, ok := m.contents[id]; ok {
		return c.Update(msg)
	}
	return nil
}

// reconcile keeps one content per open window, sized to its frame.
func (m *Model) reconcile() tea.Cmd {
	var cmds []tea.Cmd
	live := make(map[wm.ID]bool)

	for _, w := range m.wm.Windows() {
		live[w.ID] = true
		c, ok := m.contents[w.ID]
		if !ok {
			c = m.catalog.NewContent(w.Kind, apps.Host{WindowID: w.ID}, m.env)
			if c == nil {
				continue
			}
			m.contents[w.ID] = c
			cmds = append(cmds, c.Init())
			m.log.WithFields(logrus.Fields{"window": w.ID, "kind": w.Kind}).Debug("content created")
		}
		cw, ch := m.grid.contentSize(w)
		if sz := (contentSize{cw, ch}); m.sizes[w.ID] != sz {
			m.sizes[w.ID] = sz
			c.Resize(cw, ch)
		}
	}

	for id := range m.contents {
		if !live[id] {
			delete(m.contents, id)
			delete(m.sizes, id)
			m.log.WithField("window", id).Debug("content dropped")
		}
	}
	return tea.Batch(cmds...)
}

func (m *Model) triggerEffect() {
	m.log.Warn("mr_smiley.exe executed")
	m.startMelt = true
}

func (m *Model) lookupTheme(name string) colors.Theme {
	th, ok := colors.GetTheme(name)
	if !ok {
		m.log.WithField("theme", name).Warn("unknown theme, using default")
		th, _ = colors.GetTheme(colors.DefaultTheme)
	}
	return th
}

func (m *Model) applyConfig(cfg *config.Config, err error) {
	if err != nil {
		m.log.WithError(err).Warn("config reload failed, keeping previous config")
		return
	}
	if cfg == nil {
		return
	}
	m.cfg = cfg
	m.theme = m.lookupTheme(cfg.Theme)
	m.env.Theme = m.theme
	m.grid = grid{cw: cfg.Desktop.CellWidth, ch: cfg.Desktop.CellHeight}
	m.sizes = make(map[wm.ID]contentSize)
	m.log.WithField("theme", m.theme.Name).Info("config reloaded")
}
