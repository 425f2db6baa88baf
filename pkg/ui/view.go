package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/infopirate/gibson/pkg/dock"
	"github.com/infopirate/gibson/pkg/perf"
	"github.com/infopirate/gibson/pkg/wm"
)

const (
	proceedLabel = "> PROCEED"
	abortLabel   = "> ABORT"
)

var dialogText = []string{
	"You are about to execute a potentially malicious program: mr_smiley.exe",
	"",
	"This action is irreversible and may result in system instability.",
	"Do you wish to proceed?",
}

func (m *Model) View() string {
	var out string
	perf.Track("render", func() { out = m.render() })
	return out
}

func (m *Model) render() string {
	if m.melt != nil {
		return m.melt.view(m.theme)
	}
	if m.cols <= 0 || m.rows <= 0 {
		return ""
	}

	screen := m.background()
	m.drawIcons(screen)

	active := m.wm.ActiveID()
	for _, w := range m.wm.Windows() {
		if !w.Visible() {
			continue
		}
		r := m.grid.toCells(w.Frame())
		overlay(screen, m.renderWindow(w, w.ID == active, r.Size.Width, r.Size.Height), r.Pos.X, r.Pos.Y, r.Size.Width, m.cols)
	}

	top := m.dockTop()
	for i, line := range m.renderDock() {
		if top+i < len(screen) {
			screen[top+i] = line
		}
	}

	if menu := m.desk.Menu(); menu != nil {
		box := menuRect(menu, m.grid, m.cols, m.rows)
		overlay(screen, m.renderMenu(box.Size.Width), box.Pos.X, box.Pos.Y, box.Size.Width, m.cols)
	}
	if m.desk.DialogOpen() {
		box := dialogRect(m.cols, m.rows)
		overlay(screen, m.renderDialog(box.Size.Width, box.Size.Height), box.Pos.X, box.Pos.Y, box.Size.Width, m.cols)
	}
	return strings.Join(screen, "\n")
}

// overlay writes fg over bg with its top-left at (x, y). Parts of fg that
// fall off any screen edge are clipped.
func overlay(bg []string, fg []string, x, y, fgW, screenW int) {
	for i, line := range fg {
		row := y + i
		if row < 0 || row >= len(bg) {
			continue
		}
		start, w := x, fgW
		if start < 0 {
			line = xansi.Cut(line, -start, fgW)
			w += start
			start = 0
		}
		if start+w > screenW {
			w = screenW - start
		}
		if w <= 0 {
			continue
		}
		line = fit(line, w)
		bg[row] = xansi.Cut(bg[row], 0, start) + line + xansi.Cut(bg[row], start+w, screenW)
	}
}

// fit pads or cuts an ANSI string to exactly w cells.
func fit(s string, w int) string {
	n := xansi.StringWidth(s)
	switch {
	case n > w:
		return xansi.Cut(s, 0, w)
	case n < w:
		return s + strings.Repeat(" ", w-n)
	}
	return s
}

func (m *Model) background() []string {
	th := m.theme
	style := lipgloss.NewStyle().
		Background(lipgloss.Color(th.DesktopBg)).
		Foreground(lipgloss.Color(th.GridFg))

	plain := strings.Repeat(" ", m.cols)
	dotted := plain
	if m.cfg.Desktop.ShowGrid {
		var b strings.Builder
		for x := 0; x < m.cols; x++ {
			if x%4 == 0 {
				b.WriteString("·")
			} else {
				b.WriteByte(' ')
			}
		}
		dotted = b.String()
	}

	rows := make([]string, m.rows)
	for y := range rows {
		if y%2 == 0 {
			rows[y] = style.Render(dotted)
		} else {
			rows[y] = style.Render(plain)
		}
	}
	return rows
}

func (m *Model) drawIcons(screen []string) {
	th := m.theme
	glyph := lipgloss.NewStyle().
		Width(iconWidth).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color(th.IconFg)).
		Background(lipgloss.Color(th.DesktopBg)).
		Bold(true)
	label := glyph.Bold(false)
	selected := label.
		Foreground(lipgloss.Color(th.IconSelectedFg)).
		Background(lipgloss.Color(th.IconSelectedBg))

	for i, app := range m.catalog.Icons() {
		r := iconRect(i)
		name := runewidth.Truncate(app.Title, iconWidth, "…")
		lbl := label.Render(name)
		if m.desk.Selected() == app.Kind {
			lbl = selected.Render(name)
		}
		overlay(screen, []string{glyph.Render(app.Icon), lbl}, r.Pos.X, r.Pos.Y, r.Size.Width, m.cols)
	}
}

// renderWindow draws a w x h cell frame: border, title row with buttons,
// then the content clipped to the remaining area.
func (m *Model) renderWindow(win wm.Window, active bool, w, h int) []string {
	th := m.theme
	innerW := max(0, w-2)

	border, titleBg, titleFg := th.BorderInactive, th.TitleInactiveBg, th.TitleInactiveFg
	if active {
		border, titleBg, titleFg = th.BorderActive, th.TitleActiveBg, th.TitleActiveFg
	}
	bar := lipgloss.NewStyle().Background(lipgloss.Color(titleBg)).Foreground(lipgloss.Color(titleFg))

	maxGlyph := "□"
	if win.Maximized {
		maxGlyph = "❐"
	}
	buttons := bar.Foreground(lipgloss.Color(th.ButtonFg)).Render("[_]["+maxGlyph+"]") +
		bar.Foreground(lipgloss.Color(th.CloseFg)).Bold(true).Render("[X]")
	titleW := max(0, innerW-buttonStrip)
	title := bar.Bold(active).Width(titleW).Render(" " + runewidth.Truncate(win.Title, max(0, titleW-1), "…"))

	body := lipgloss.NewStyle().
		Background(lipgloss.Color(th.WindowBg)).
		Foreground(lipgloss.Color(th.WindowFg))
	contentH := max(0, h-3)
	var lines []string
	if c, ok := m.contents[win.ID]; ok {
		lines = strings.Split(c.View(), "\n")
	}
	inner := make([]string, 0, contentH+1)
	inner = append(inner, fit(title+buttons, innerW))
	for i := 0; i < contentH; i++ {
		line := ""
		if i < len(lines) {
			line = lines[i]
		}
		inner = append(inner, body.Render(fit(line, innerW)))
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(border)).
		BorderBackground(lipgloss.Color(th.WindowBg)).
		Render(strings.Join(inner, "\n"))
	return strings.Split(frame, "\n")
}

func (m *Model) renderDock() []string {
	th := m.theme
	base := lipgloss.NewStyle().Background(lipgloss.Color(th.DockBg)).Foreground(lipgloss.Color(th.DockFg))
	rule := base.Foreground(lipgloss.Color(th.BorderInactive)).Render(strings.Repeat("─", m.cols))

	brand := base.Foreground(lipgloss.Color(th.BrandFg)).Bold(true).Render(m.cfg.Brand)
	var b strings.Builder
	b.WriteString(brand)
	b.WriteString(base.Render("  "))

	entries := dock.Entries(m.wm.Windows(), m.wm.ActiveID())
	for i, e := range entries {
		w := entryWidth(e.Title)
		style := base.Background(lipgloss.Color(th.EntryBg)).Foreground(lipgloss.Color(th.EntryFg))
		if e.Active {
			style = base.Background(lipgloss.Color(th.EntryActiveBg)).Foreground(lipgloss.Color(th.EntryActiveFg)).Bold(true)
		}
		if e.Minimized {
			style = style.Italic(true)
		}
		b.WriteString(style.Width(w).Render(" " + runewidth.Truncate(e.Title, w-2, "…")))
		if i < len(entries)-1 {
			b.WriteString(base.Render(" "))
		}
	}

	clock := base.Foreground(lipgloss.Color(th.ClockFg)).Render(dock.FormatClock(m.now, m.cfg.Clock.Format) + " ")
	left := b.String()
	gap := m.cols - xansi.StringWidth(left) - xansi.StringWidth(clock)
	row := left
	if gap > 0 {
		row += base.Render(strings.Repeat(" ", gap)) + clock
	}

	blank := base.Render(strings.Repeat(" ", m.cols))
	out := make([]string, m.dockRows())
	for i := range out {
		switch i {
		case 0:
			out[i] = rule
		case 1:
			out[i] = fit(row, m.cols)
		default:
			out[i] = blank
		}
	}
	if len(out) == 1 {
		out[0] = fit(row, m.cols)
	}
	return out
}

func (m *Model) renderMenu(w int) []string {
	th := m.theme
	menu := m.desk.Menu()
	item := lipgloss.NewStyle().
		Background(lipgloss.Color(th.MenuBg)).
		Foreground(lipgloss.Color(th.MenuFg)).
		Width(w - 2)
	sep := item.Foreground(lipgloss.Color(th.MenuSep))

	inner := make([]string, len(menu.Items))
	for i, it := range menu.Items {
		if it.Separator {
			inner[i] = sep.Render(strings.Repeat("─", w-2))
			continue
		}
		inner[i] = item.Render(" " + it.Label)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(th.MenuSep)).
		BorderBackground(lipgloss.Color(th.MenuBg)).
		Render(strings.Join(inner, "\n"))
	return strings.Split(box, "\n")
}

func (m *Model) renderDialog(w, h int) []string {
	th := m.theme
	innerW, innerH := max(0, w-2), max(0, h-2)
	base := lipgloss.NewStyle().
		Background(lipgloss.Color(th.DialogBg)).
		Foreground(lipgloss.Color(th.DialogFg))
	heading := base.Foreground(lipgloss.Color(th.ErrorFg)).Bold(true).Width(innerW).Align(lipgloss.Center)
	text := base.Width(innerW).Align(lipgloss.Center)

	var inner []string
	inner = append(inner, heading.Render("!! CRITICAL WARNING !!"), base.Width(innerW).Render(""))
	for _, t := range dialogText {
		inner = append(inner, strings.Split(text.Render(t), "\n")...)
	}

	buttonRow := innerH - 2
	if len(inner) > buttonRow {
		inner = inner[:max(0, buttonRow)]
	}
	for len(inner) < buttonRow {
		inner = append(inner, base.Render(strings.Repeat(" ", innerW)))
	}

	proceed := base.Background(lipgloss.Color(th.DangerBg)).Bold(true).Render(proceedLabel)
	abort := base.Bold(true).Reverse(true).Render(abortLabel)
	gap := max(1, innerW-6-len(proceedLabel)-len(abortLabel))
	buttons := base.Render("   ") + proceed + base.Render(strings.Repeat(" ", gap)) + abort + base.Render("   ")
	inner = append(inner, fit(buttons, innerW), base.Render(strings.Repeat(" ", innerW)))

	for i := range inner {
		inner[i] = fit(inner[i], innerW)
	}
	box := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(lipgloss.Color(th.DialogBorder)).
		BorderBackground(lipgloss.Color(th.DialogBg)).
		Render(strings.Join(inner, "\n"))
	return strings.Split(box, "\n")
}
