package wm

import (
	"math/rand"
	"testing"

	"github.com/infopirate/gibson/pkg/geom"
)

type stubRegistry map[AppKind]Template

func (r stubRegistry) Template(kind AppKind) (Template, bool) {
	t, ok := r[kind]
	return t, ok
}

func testRegistry() stubRegistry {
	return stubRegistry{
		"terminal": {Kind: "terminal", Title: "Terminal", DefaultSize: geom.Size{Width: 640, Height: 480}, CanOpen: true},
		"notepad":  {Kind: "notepad", Title: "Notepad", DefaultSize: geom.Size{Width: 500, Height: 400}, CanOpen: true},
		"bare":     {Kind: "bare", Title: "Bare", CanOpen: true},
		"virus":    {Kind: "virus", Title: "Mr. Smiley"},
	}
}

func newTestManager() *Manager {
	return NewManager(Config{
		Registry: testRegistry(),
		Bounds:   FixedBounds{Width: 1280, Height: 800, Chrome: 48},
		Rand:     rand.New(rand.NewSource(1)),
	})
}

func mustOpen(t *testing.T, m *Manager, kind AppKind, opts ...OpenOption) ID {
	t.Helper()
	id, ok := m.Open(kind, opts...)
	if !ok {
		t.Fatalf("Open(%q) failed", kind)
	}
	return id
}

func ids(ws []Window) []ID {
	out := make([]ID, len(ws))
	for i, w := range ws {
		out[i] = w.ID
	}
	return out
}

func equalIDs(a, b []ID) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOpenSingleTerminal(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")

	if id.String() != "W1" {
		t.Errorf("first id = %s, want W1", id)
	}
	if got := ids(m.Windows()); !equalIDs(got, []ID{id}) {
		t.Errorf("Windows() = %v, want [%s]", got, id)
	}
	if m.ActiveID() != id {
		t.Errorf("ActiveID() = %s, want %s", m.ActiveID(), id)
	}
	w, _ := m.Window(id)
	if w.Title != "Terminal" || w.Size != (geom.Size{Width: 640, Height: 480}) {
		t.Errorf("window = %+v", w)
	}
}

func TestOpenIDsAndStackIncrease(t *testing.T) {
	m := newTestManager()
	seen := map[ID]bool{}
	lastStack := 0
	for i := 0; i < 20; i++ {
		id := mustOpen(t, m, "notepad")
		if seen[id] {
			t.Fatalf("id %s reused", id)
		}
		seen[id] = true
		w, _ := m.Window(id)
		if w.Stack <= lastStack {
			t.Fatalf("stack %d not greater than %d", w.Stack, lastStack)
		}
		lastStack = w.Stack
	}
}

func TestOpenJitterRange(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 200; i++ {
		id := mustOpen(t, m, "notepad")
		w, _ := m.Window(id)
		if w.Position.X < 50 || w.Position.X >= 250 {
			t.Fatalf("x = %d out of [50,250)", w.Position.X)
		}
		if w.Position.Y < 50 || w.Position.Y >= 200 {
			t.Fatalf("y = %d out of [50,200)", w.Position.Y)
		}
	}
}

func TestOpenHintsAndFallbacks(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "bare", AtPosition(geom.Point{X: 150, Y: 100}), WithTitle("README.txt"))
	w, _ := m.Window(id)
	if w.Position != (geom.Point{X: 150, Y: 100}) {
		t.Errorf("position = %v, want (150,100)", w.Position)
	}
	if w.Size != FallbackSize {
		t.Errorf("size = %v, want fallback %v", w.Size, FallbackSize)
	}
	if w.Title != "README.txt" {
		t.Errorf("title = %q", w.Title)
	}
}

func TestOpenRejected(t *testing.T) {
	tests := []struct {
		name string
		kind AppKind
	}{
		{"unknown kind", "solitaire"},
		{"cannot open", "virus"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestManager()
			existing := mustOpen(t, m, "terminal")
			if _, ok := m.Open(tt.kind); ok {
				t.Fatalf("Open(%q) succeeded", tt.kind)
			}
			if m.Len() != 1 || m.ActiveID() != existing {
				t.Errorf("state changed: len=%d active=%s", m.Len(), m.ActiveID())
			}
		})
	}
}

func TestOpenTwoWindows(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	w2 := mustOpen(t, m, "terminal")

	if got := ids(m.Windows()); !equalIDs(got, []ID{w1, w2}) {
		t.Errorf("order = %v, want [%s %s]", got, w1, w2)
	}
	if m.ActiveID() != w2 {
		t.Errorf("active = %s, want %s", m.ActiveID(), w2)
	}
}

func TestFocusRaises(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	w2 := mustOpen(t, m, "terminal")

	m.Focus(w1)
	if got := ids(m.Windows()); !equalIDs(got, []ID{w2, w1}) {
		t.Errorf("order = %v, want [%s %s]", got, w2, w1)
	}
	if m.ActiveID() != w1 {
		t.Errorf("active = %s, want %s", m.ActiveID(), w1)
	}
}

func TestFocusAlwaysTopmost(t *testing.T) {
	m := newTestManager()
	var all []ID
	for i := 0; i < 6; i++ {
		all = append(all, mustOpen(t, m, "notepad"))
	}
	for _, id := range []ID{all[3], all[0], all[5], all[0], all[2]} {
		m.Focus(id)
		ws := m.Windows()
		if top := ws[len(ws)-1]; top.ID != id {
			t.Fatalf("after Focus(%s) top is %s", id, top.ID)
		}
	}
}

func TestFocusRestoresMinimized(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	m.ToggleMinimize(id)
	m.Focus(id)
	w, _ := m.Window(id)
	if w.Minimized {
		t.Fatalf("still minimized after focus")
	}
	if m.ActiveID() != id {
		t.Fatalf("active = %s", m.ActiveID())
	}
}

func TestCloseActive(t *testing.T) {
	t.Run("only window", func(t *testing.T) {
		m := newTestManager()
		id := mustOpen(t, m, "terminal")
		m.Close(id)
		if m.ActiveID() != None {
			t.Errorf("active = %s, want none", m.ActiveID())
		}
		if m.Len() != 0 {
			t.Errorf("len = %d", m.Len())
		}
	})

	t.Run("next highest stack", func(t *testing.T) {
		m := newTestManager()
		w1 := mustOpen(t, m, "terminal")
		w2 := mustOpen(t, m, "terminal")
		w3 := mustOpen(t, m, "terminal")
		m.Focus(w1)
		m.Focus(w3)
		m.Close(w3)
		if m.ActiveID() != w1 {
			t.Errorf("active = %s, want %s", m.ActiveID(), w1)
		}
		_ = w2
	})

	t.Run("skips minimized", func(t *testing.T) {
		m := newTestManager()
		w1 := mustOpen(t, m, "terminal")
		w2 := mustOpen(t, m, "terminal")
		w3 := mustOpen(t, m, "terminal")
		m.ToggleMinimize(w2)
		m.Focus(w3)
		m.Close(w3)
		if m.ActiveID() != w1 {
			t.Errorf("active = %s, want %s", m.ActiveID(), w1)
		}
	})
}

func TestCloseInactiveKeepsActive(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	w2 := mustOpen(t, m, "terminal")
	m.Close(w1)
	if m.ActiveID() != w2 {
		t.Errorf("active = %s, want %s", m.ActiveID(), w2)
	}
}

func TestCloseNotifiesListeners(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	var got []ID
	m.OnClose(func(closed ID) {
		// listeners may query the manager
		_ = m.Len()
		got = append(got, closed)
	})
	m.Close(id)
	m.Close(id)
	if !equalIDs(got, []ID{id}) {
		t.Errorf("notified %v, want [%s]", got, id)
	}
}

func TestToggleMinimizeActive(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	w2 := mustOpen(t, m, "terminal")

	m.ToggleMinimize(w2)
	if m.ActiveID() != None {
		t.Errorf("active = %s, want none", m.ActiveID())
	}
	w, _ := m.Window(w2)
	if !w.Minimized || w.Visible() {
		t.Errorf("window not minimized")
	}

	m.ToggleMinimize(w2)
	w, _ = m.Window(w2)
	if w.Minimized {
		t.Errorf("window still minimized")
	}
	if m.ActiveID() != None {
		t.Errorf("un-minimize changed focus to %s", m.ActiveID())
	}
	_ = w1
}

func TestToggleMinimizeInactive(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	w2 := mustOpen(t, m, "terminal")
	m.ToggleMinimize(w1)
	if m.ActiveID() != w2 {
		t.Errorf("active = %s, want %s", m.ActiveID(), w2)
	}
}

func TestMaximizeScenario(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	m.SetGeometry(id, geom.Point{X: 100, Y: 80}, geom.Size{Width: 500, Height: 400})

	m.ToggleMaximize(id)
	w, _ := m.Window(id)
	if w.Position != (geom.Point{}) || w.Size != (geom.Size{Width: 1280, Height: 752}) {
		t.Fatalf("maximized geometry = %v/%v, want (0,0)/1280x752", w.Position, w.Size)
	}
	if !w.Maximized {
		t.Fatalf("not flagged maximized")
	}

	m.ToggleMaximize(id)
	w, _ = m.Window(id)
	if w.Position != (geom.Point{X: 100, Y: 80}) || w.Size != (geom.Size{Width: 500, Height: 400}) {
		t.Fatalf("restored geometry = %v/%v, want (100,80)/500x400", w.Position, w.Size)
	}
	if w.Maximized {
		t.Fatalf("still flagged maximized")
	}
}

func TestMaximizeRoundTrip(t *testing.T) {
	m := newTestManager()
	for i := 0; i < 10; i++ {
		id := mustOpen(t, m, "notepad")
		before, _ := m.Window(id)
		m.ToggleMaximize(id)
		m.ToggleMaximize(id)
		after, _ := m.Window(id)
		if before.Frame() != after.Frame() {
			t.Fatalf("round trip %v -> %v", before.Frame(), after.Frame())
		}
	}
}

func TestMaximizeFocuses(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	mustOpen(t, m, "terminal")
	m.ToggleMaximize(w1)
	if m.ActiveID() != w1 {
		t.Errorf("active = %s, want %s", m.ActiveID(), w1)
	}
	m.ToggleMinimize(w1)
	m.ToggleMaximize(w1)
	if m.ActiveID() != w1 {
		t.Errorf("restore did not focus")
	}
}

func TestRestoreWithoutSnapshot(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	m.mu.Lock()
	win := m.find(id)
	win.Maximized = true
	win.Saved = nil
	m.mu.Unlock()

	m.ToggleMaximize(id)
	w, _ := m.Window(id)
	if w.Frame() != RestoreFallback {
		t.Errorf("frame = %v, want %v", w.Frame(), RestoreFallback)
	}
}

func TestSetGeometryKeepsStackAndFocus(t *testing.T) {
	m := newTestManager()
	w1 := mustOpen(t, m, "terminal")
	w2 := mustOpen(t, m, "terminal")
	before, _ := m.Window(w1)

	m.SetGeometry(w1, geom.Point{X: -40, Y: 10}, geom.Size{Width: 300, Height: 200})
	after, _ := m.Window(w1)
	if after.Stack != before.Stack {
		t.Errorf("stack changed %d -> %d", before.Stack, after.Stack)
	}
	if m.ActiveID() != w2 {
		t.Errorf("active = %s", m.ActiveID())
	}
	if after.Frame() != geom.R(-40, 10, 300, 200) {
		t.Errorf("frame = %v", after.Frame())
	}
}

func TestUnknownIDIsNoOp(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	ghost := ID(99)

	ops := map[string]func() bool{
		"Close":          func() bool { return m.Close(ghost) },
		"Focus":          func() bool { return m.Focus(ghost) },
		"ToggleMinimize": func() bool { return m.ToggleMinimize(ghost) },
		"ToggleMaximize": func() bool { return m.ToggleMaximize(ghost) },
		"SetGeometry":    func() bool { return m.SetGeometry(ghost, geom.Point{}, geom.Size{}) },
		"Rename":         func() bool { return m.Rename(ghost, "x") },
	}
	for name, op := range ops {
		if op() {
			t.Errorf("%s(ghost) reported success", name)
		}
	}
	if m.Len() != 1 || m.ActiveID() != id {
		t.Errorf("state changed")
	}
	if _, ok := m.Window(ghost); ok {
		t.Errorf("Window(ghost) found")
	}
}

func TestWindowsReturnsCopies(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	m.ToggleMaximize(id)

	ws := m.Windows()
	ws[0].Title = "mutated"
	ws[0].Saved.Pos.X = 999

	w, _ := m.Window(id)
	if w.Title == "mutated" || w.Saved.Pos.X == 999 {
		t.Fatalf("internal state mutated through copy")
	}
}

func TestRename(t *testing.T) {
	m := newTestManager()
	id := mustOpen(t, m, "terminal")
	m.Rename(id, "root@gibson")
	w, _ := m.Window(id)
	if w.Title != "root@gibson" {
		t.Errorf("title = %q", w.Title)
	}
}

func TestIDString(t *testing.T) {
	if None.String() != "none" {
		t.Errorf("None = %q", None.String())
	}
	if ID(7).String() != "W7" {
		t.Errorf("ID(7) = %q", ID(7).String())
	}
}
