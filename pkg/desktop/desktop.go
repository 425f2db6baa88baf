// Package desktop holds the desktop-level interaction state: which icon is
// selected, the open context menu and the confirmation dialog. It turns
// icon and desktop gestures into window manager commands.
package desktop

import (
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/wm"
)

// Launcher opens windows. *wm.Manager satisfies it.
type Launcher interface {
	Open(kind wm.AppKind, opts ...wm.OpenOption) (wm.ID, bool)
}

// App is a desktop entry as the controller sees it.
type App struct {
	Kind     wm.AppKind
	Title    string
	Openable bool
}

// MenuItem is either a labelled action or a separator.
type MenuItem struct {
	Label     string
	Action    func()
	Separator bool
}

// Menu is an open context menu anchored at a desktop position.
type Menu struct {
	At    geom.Point
	Items []MenuItem
}

// Config wires a Controller.
type Config struct {
	Launcher Launcher
	Apps     []App

	// Special is the kind that raises the confirmation dialog instead of
	// opening a window.
	Special wm.AppKind
	// Info is opened by the Properties and About menu items.
	Info wm.AppKind
	// OnEffect runs when the dialog is confirmed.
	OnEffect func()
}

// Controller is the desktop state machine.
type Controller struct {
	launcher Launcher
	apps     []App
	special  wm.AppKind
	info     wm.AppKind
	onEffect func()

	selected wm.AppKind
	menu     *Menu
	dialog   bool
	effect   bool
}

// New creates a controller with nothing selected and no overlays open.
func New(cfg Config) *Controller {
	return &Controller{
		launcher: cfg.Launcher,
		apps:     cfg.Apps,
		special:  cfg.Special,
		info:     cfg.Info,
		onEffect: cfg.OnEffect,
	}
}

// Selected returns the selected icon kind, or "" when none is.
func (c *Controller) Selected() wm.AppKind { return c.selected }

// Menu returns the open context menu, or nil.
func (c *Controller) Menu() *Menu { return c.menu }

// DialogOpen reports whether the confirmation dialog is showing.
func (c *Controller) DialogOpen() bool { return c.dialog }

// EffectActive reports whether the dialog has been confirmed.
func (c *Controller) EffectActive() bool { return c.effect }

// ClickDesktop clears the selection and closes the menu.
func (c *Controller) ClickDesktop() {
	c.selected = ""
	c.menu = nil
}

// ClickIcon selects an icon.
func (c *Controller) ClickIcon(kind wm.AppKind) {
	c.selected = kind
}

// DoubleClickIcon launches the icon's app.
func (c *Controller) DoubleClickIcon(kind wm.AppKind) (wm.ID, bool) {
	return c.Launch(kind)
}

// RightClickIcon selects the icon and opens its menu at p.
func (c *Controller) RightClickIcon(kind wm.AppKind, p geom.Point) {
	c.selected = kind
	c.menu = &Menu{
		At: p,
		Items: []MenuItem{
			{Label: "Open", Action: func() { c.Launch(kind) }},
			{Separator: true},
			{Label: "Properties", Action: func() { c.Launch(c.info) }},
		},
	}
}

// RightClickDesktop clears the selection and opens the desktop menu at p:
// one entry per openable app, a separator, then About.
func (c *Controller) RightClickDesktop(p geom.Point) {
	c.selected = ""
	var items []MenuItem
	for _, app := range c.apps {
		if !app.Openable {
			continue
		}
		kind := app.Kind
		items = append(items, MenuItem{
			Label:  "Open " + app.Title,
			Action: func() { c.Launch(kind) },
		})
	}
	items = append(items,
		MenuItem{Separator: true},
		MenuItem{Label: c.infoTitle(), Action: func() { c.Launch(c.info) }},
	)
	c.menu = &Menu{At: p, Items: items}
}

// Choose runs menu item i. The menu closes before the action runs.
// Separators and out-of-range indexes do nothing.
func (c *Controller) Choose(i int) bool {
	if c.menu == nil || i < 0 || i >= len(c.menu.Items) {
		return false
	}
	item := c.menu.Items[i]
	if item.Separator {
		return false
	}
	c.menu = nil
	if item.Action != nil {
		item.Action()
	}
	return true
}

// CloseMenu dismisses the context menu.
func (c *Controller) CloseMenu() {
	c.menu = nil
}

// Launch closes the menu and opens kind. The special kind raises the
// confirmation dialog instead.
func (c *Controller) Launch(kind wm.AppKind) (wm.ID, bool) {
	c.menu = nil
	if kind == c.special && kind != "" {
		c.dialog = true
		return wm.None, false
	}
	if c.launcher == nil {
		return wm.None, false
	}
	return c.launcher.Open(kind)
}

// RaiseWarning shows the confirmation dialog.
func (c *Controller) RaiseWarning() {
	if c.effect {
		return
	}
	c.dialog = true
}

// Confirm accepts the dialog and starts the effect.
func (c *Controller) Confirm() {
	if !c.dialog {
		return
	}
	c.dialog = false
	c.effect = true
	if c.onEffect != nil {
		c.onEffect()
	}
}

// Cancel dismisses the dialog.
func (c *Controller) Cancel() {
	c.dialog = false
}

func (c *Controller) infoTitle() string {
	for _, app := range c.apps {
		if app.Kind == c.info {
			return app.Title
		}
	}
	return "About"
}
