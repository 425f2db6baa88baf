package ui

import (
	"github.com/mattn/go-runewidth"

	"github.com/infopirate/gibson/pkg/desktop"
	"github.com/infopirate/gibson/pkg/dock"
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/gesture"
	"github.com/infopirate/gibson/pkg/wm"
)

// RegionKind says what a press on a region does.
type RegionKind int

const (
	RegionNone RegionKind = iota
	RegionIcon
	RegionFrame
	RegionContent
	RegionTitle
	RegionMinimize
	RegionMaximize
	RegionClose
	RegionEdge
	RegionDock
	RegionDockEntry
	RegionMenu
	RegionMenuItem
	RegionDialog
	RegionProceed
	RegionAbort
)

var regionNames = map[RegionKind]string{
	RegionNone:      "desktop",
	RegionIcon:      "icon",
	RegionFrame:     "frame",
	RegionContent:   "content",
	RegionTitle:     "title",
	RegionMinimize:  "minimize",
	RegionMaximize:  "maximize",
	RegionClose:     "close",
	RegionEdge:      "edge",
	RegionDock:      "dock",
	RegionDockEntry: "dock-entry",
	RegionMenu:      "menu",
	RegionMenuItem:  "menu-item",
	RegionDialog:    "dialog",
	RegionProceed:   "proceed",
	RegionAbort:     "abort",
}

func (k RegionKind) String() string { return regionNames[k] }

// Region is a clickable cell rectangle on screen.
type Region struct {
	Rect   geom.Rect // in cells
	Kind   RegionKind
	Window wm.ID
	App    wm.AppKind
	Handle gesture.Handle
	Index  int
}

// Icon column geometry, in cells.
const (
	iconLeft   = 2
	iconTop    = 1
	iconWidth  = 12
	iconHeight = 3
	iconGap    = 1
)

// Window button strip at the right of the title row.
const (
	buttonWidth = 3
	buttonStrip = 3 * buttonWidth
)

// Dialog box size, in cells.
const (
	dialogWidth  = 52
	dialogHeight = 14
)

const maxEntryWidth = 20

// grid converts between desktop units and terminal cells.
type grid struct {
	cw, ch int
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (g grid) toCells(r geom.Rect) geom.Rect {
	return geom.R(
		floorDiv(r.Pos.X, g.cw),
		floorDiv(r.Pos.Y, g.ch),
		max(buttonStrip+2, r.Size.Width/g.cw),
		max(4, r.Size.Height/g.ch),
	)
}

func (g grid) toUnits(cell geom.Point) geom.Point {
	return geom.Point{X: cell.X * g.cw, Y: cell.Y * g.ch}
}

func (g grid) cellOf(p geom.Point) geom.Point {
	return geom.Point{X: floorDiv(p.X, g.cw), Y: floorDiv(p.Y, g.ch)}
}

// contentRect is the part of a window frame below the title row and inside
// the borders.
func contentRect(frame geom.Rect) geom.Rect {
	return geom.R(frame.Pos.X+1, frame.Pos.Y+2, max(0, frame.Size.Width-2), max(0, frame.Size.Height-3))
}

func iconRect(i int) geom.Rect {
	return geom.R(iconLeft, iconTop+i*(iconHeight+iconGap), iconWidth, iconHeight)
}

// windowRegions lists a window's regions from back to front.
func windowRegions(w wm.Window, frame geom.Rect) []Region {
	x, y := frame.Pos.X, frame.Pos.Y
	wd, ht := frame.Size.Width, frame.Size.Height
	id := w.ID

	regs := []Region{
		{Rect: frame, Kind: RegionFrame, Window: id},
		{Rect: contentRect(frame), Kind: RegionContent, Window: id},
		{Rect: geom.R(x+1, y+1, max(0, wd-2-buttonStrip), 1), Kind: RegionTitle, Window: id},
		{Rect: geom.R(x+wd-1-buttonStrip, y+1, buttonWidth, 1), Kind: RegionMinimize, Window: id},
		{Rect: geom.R(x+wd-1-2*buttonWidth, y+1, buttonWidth, 1), Kind: RegionMaximize, Window: id},
		{Rect: geom.R(x+wd-1-buttonWidth, y+1, buttonWidth, 1), Kind: RegionClose, Window: id},
	}
	if w.Maximized {
		return regs
	}

	edge := func(r geom.Rect, h gesture.Handle) Region {
		return Region{Rect: r, Kind: RegionEdge, Window: id, Handle: h}
	}
	return append(regs,
		edge(geom.R(x+1, y, wd-2, 1), gesture.HandleTop),
		edge(geom.R(x+1, y+ht-1, wd-2, 1), gesture.HandleBottom),
		edge(geom.R(x, y+1, 1, ht-2), gesture.HandleLeft),
		edge(geom.R(x+wd-1, y+1, 1, ht-2), gesture.HandleRight),
		edge(geom.R(x, y, 1, 1), gesture.HandleTopLeft),
		edge(geom.R(x+wd-1, y, 1, 1), gesture.HandleTopRight),
		edge(geom.R(x, y+ht-1, 1, 1), gesture.HandleBottomLeft),
		edge(geom.R(x+wd-1, y+ht-1, 1, 1), gesture.HandleBottomRight),
	)
}

// entryWidth is the dock button width for a title.
func entryWidth(title string) int {
	return min(maxEntryWidth, runewidth.StringWidth(title)+2)
}

func dockEntryRects(entries []dock.Entry, brand string, top int) []geom.Rect {
	x := runewidth.StringWidth(brand) + 2
	rects := make([]geom.Rect, 0, len(entries))
	for _, e := range entries {
		w := entryWidth(e.Title)
		rects = append(rects, geom.R(x, top+1, w, 1))
		x += w + 1
	}
	return rects
}

// menuRect places a menu box at its anchor, shifted to stay on screen.
func menuRect(menu *desktop.Menu, g grid, cols, rows int) geom.Rect {
	w := 0
	for _, it := range menu.Items {
		w = max(w, runewidth.StringWidth(it.Label))
	}
	w += 4
	h := len(menu.Items) + 2
	at := g.cellOf(menu.At)
	x := max(0, min(at.X, cols-w))
	y := max(0, min(at.Y, rows-h))
	return geom.R(x, y, w, h)
}

func dialogRect(cols, rows int) geom.Rect {
	w := min(dialogWidth, cols)
	h := min(dialogHeight, rows)
	return geom.R(max(0, (cols-w)/2), max(0, (rows-h)/2), w, h)
}

// Dialog buttons sit one row above the last inner row.
func dialogButtons(box geom.Rect) (proceed, abort geom.Rect) {
	y := box.Bottom() - 3
	proceed = geom.R(box.Pos.X+4, y, len(proceedLabel), 1)
	abort = geom.R(box.Right()-4-len(abortLabel), y, len(abortLabel), 1)
	return proceed, abort
}

// layout is everything needed to hit-test one frame.
type layout struct {
	regions []Region
}

// buildLayout emits regions bottom to top: icons, windows by stack, the
// dock, the context menu, then the dialog.
func (m *Model) buildLayout() layout {
	var regs []Region

	for i, app := range m.catalog.Icons() {
		regs = append(regs, Region{Rect: iconRect(i), Kind: RegionIcon, App: app.Kind})
	}

	for _, w := range m.wm.Windows() {
		if !w.Visible() {
			continue
		}
		regs = append(regs, windowRegions(w, m.grid.toCells(w.Frame()))...)
	}

	top := m.dockTop()
	regs = append(regs, Region{Rect: geom.R(0, top, m.cols, m.rows-top), Kind: RegionDock})
	entries := dock.Entries(m.wm.Windows(), m.wm.ActiveID())
	for i, r := range dockEntryRects(entries, m.cfg.Brand, top) {
		regs = append(regs, Region{Rect: r, Kind: RegionDockEntry, Window: entries[i].ID, Index: i})
	}

	if menu := m.desk.Menu(); menu != nil {
		box := menuRect(menu, m.grid, m.cols, m.rows)
		regs = append(regs, Region{Rect: box, Kind: RegionMenu})
		for i := range menu.Items {
			regs = append(regs, Region{
				Rect:  geom.R(box.Pos.X+1, box.Pos.Y+1+i, box.Size.Width-2, 1),
				Kind:  RegionMenuItem,
				Index: i,
			})
		}
	}

	if m.desk.DialogOpen() {
		box := dialogRect(m.cols, m.rows)
		proceed, abort := dialogButtons(box)
		regs = append(regs,
			Region{Rect: geom.R(0, 0, m.cols, m.rows), Kind: RegionDialog},
			Region{Rect: proceed, Kind: RegionProceed},
			Region{Rect: abort, Kind: RegionAbort},
		)
	}
	return layout{regions: regs}
}

// hitTest returns the topmost region under cell, or a RegionNone region.
func (l layout) hitTest(cell geom.Point) Region {
	for i := len(l.regions) - 1; i >= 0; i-- {
		r := l.regions[i]
		if r.Rect.Contains(cell) {
			return r
		}
	}
	return Region{Kind: RegionNone}
}

// contentSize is the cell size a window's content is rendered at.
func (g grid) contentSize(w wm.Window) (int, int) {
	r := contentRect(g.toCells(w.Frame()))
	return r.Size.Width, r.Size.Height
}
