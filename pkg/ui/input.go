package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/infopirate/gibson/pkg/dock"
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/gesture"
	"github.com/infopirate/gibson/pkg/wm"
)

// buttonOf maps a mouse event to a gesture button. Shift+click and
// Ctrl+click count as right-click for terminals that eat the real one.
func buttonOf(msg tea.MouseMsg) gesture.Button {
	switch msg.Button {
	case tea.MouseButtonLeft:
		if msg.Shift || msg.Ctrl {
			return gesture.ButtonSecondary
		}
		return gesture.ButtonPrimary
	case tea.MouseButtonRight:
		return gesture.ButtonSecondary
	case tea.MouseButtonMiddle:
		return gesture.ButtonMiddle
	}
	return gesture.ButtonNone
}

func isWheel(b tea.MouseButton) bool {
	switch b {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown, tea.MouseButtonWheelLeft, tea.MouseButtonWheelRight:
		return true
	}
	return false
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.desk.EffectActive() {
		return nil
	}
	cell := geom.Point{X: msg.X, Y: msg.Y}
	p := m.grid.toUnits(cell)

	switch msg.Action {
	case tea.MouseActionMotion:
		if m.tracker.Listening() {
			m.tracker.Move(p)
		}
		return nil
	case tea.MouseActionRelease:
		if m.tracker.Listening() {
			m.tracker.Release(p)
		}
		return nil
	}

	hit := m.buildLayout().hitTest(cell)

	if m.desk.DialogOpen() {
		if buttonOf(msg) != gesture.ButtonPrimary {
			return nil
		}
		switch hit.Kind {
		case RegionProceed:
			m.desk.Confirm()
		case RegionAbort:
			m.desk.Cancel()
		}
		return nil
	}

	if isWheel(msg.Button) {
		if hit.Kind == RegionContent {
			return m.forwardMouse(hit.Window, msg)
		}
		return nil
	}

	btn := buttonOf(msg)
	m.log.WithFields(logrus.Fields{
		"x": msg.X, "y": msg.Y, "button": btn, "region": hit.Kind, "window": hit.Window,
	}).Debug("press")
	return m.press(hit, btn, p, msg)
}

func (m *Model) press(hit Region, btn gesture.Button, p geom.Point, msg tea.MouseMsg) tea.Cmd {
	if menu := m.desk.Menu(); menu != nil {
		switch hit.Kind {
		case RegionMenuItem:
			if btn == gesture.ButtonPrimary {
				m.desk.Choose(hit.Index)
			}
			return nil
		case RegionMenu:
			return nil
		}
		m.desk.CloseMenu()
	}

	if btn == gesture.ButtonPrimary && hit.Kind != RegionIcon {
		m.desk.ClickDesktop()
	}

	switch hit.Kind {
	case RegionNone:
		if btn == gesture.ButtonSecondary {
			m.desk.RightClickDesktop(p)
		}
	case RegionIcon:
		switch btn {
		case gesture.ButtonPrimary:
			if m.isDoubleClick(hit.App) {
				m.desk.DoubleClickIcon(hit.App)
			} else {
				m.desk.ClickIcon(hit.App)
			}
		case gesture.ButtonSecondary:
			m.desk.RightClickIcon(hit.App, p)
		}
	case RegionDockEntry:
		if btn == gesture.ButtonPrimary {
			dock.Activate(m.wm, dock.Entry{ID: hit.Window})
		}
	case RegionDock:
	default:
		return m.pressWindow(hit, btn, p, msg)
	}
	return nil
}

func (m *Model) pressWindow(hit Region, btn gesture.Button, p geom.Point, msg tea.MouseMsg) tea.Cmd {
	id := hit.Window
	w, ok := m.wm.Window(id)
	if !ok {
		return nil
	}
	focus := func() { m.wm.Focus(id) }

	switch hit.Kind {
	case RegionMinimize, RegionMaximize, RegionClose:
		if btn != gesture.ButtonPrimary {
			return nil
		}
		switch hit.Kind {
		case RegionMinimize:
			m.wm.ToggleMinimize(id)
		case RegionMaximize:
			m.wm.ToggleMaximize(id)
		case RegionClose:
			m.wm.Close(id)
		}

	case RegionTitle:
		if w.Maximized {
			focus()
			return nil
		}
		d, ok := gesture.BeginDrag(btn, p, w.Position, focus, func(pos geom.Point) {
			if cur, ok := m.wm.Window(id); ok {
				m.wm.SetGeometry(id, pos, cur.Size)
			}
		})
		if !ok {
			focus()
			return nil
		}
		m.tracker.Begin(id, d)

	case RegionEdge:
		r, ok := gesture.BeginResize(btn, hit.Handle, p, w.Frame(), wm.MinSize, focus, func(f geom.Rect) {
			m.wm.SetGeometry(id, f.Pos, f.Size)
		})
		if !ok {
			focus()
			return nil
		}
		m.tracker.Begin(id, r)

	case RegionContent:
		focus()
		return m.forwardMouse(id, msg)

	default:
		focus()
	}
	return nil
}

// forwardMouse hands a mouse event to a window's content with coordinates
// relative to the content area.
func (m *Model) forwardMouse(id wm.ID, msg tea.MouseMsg) tea.Cmd {
	c, ok := m.contents[id]
	if !ok {
		return nil
	}
	w, ok := m.wm.Window(id)
	if !ok {
		return nil
	}
	area := contentRect(m.grid.toCells(w.Frame()))
	local := msg
	local.X -= area.Pos.X
	local.Y -= area.Pos.Y
	return c.Update(local)
}

// isDoubleClick reports whether a press on app completes a double-click.
// A completed double-click resets the sequence.
func (m *Model) isDoubleClick(app wm.AppKind) bool {
	now := m.clock()
	prev := m.lastClick
	if prev.app == app && !prev.at.IsZero() && now.Sub(prev.at) <= m.cfg.Desktop.DoubleClick() {
		m.lastClick = click{}
		return true
	}
	m.lastClick = click{app: app, at: now}
	return false
}
