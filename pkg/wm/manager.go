package wm

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/samber/lo"

	"github.com/infopirate/gibson/pkg/geom"
)

// Placement used by Open when no hint is given: origin plus a random jitter
// in [JitterMinX, JitterMinX+JitterSpanX) x [JitterMinY, JitterMinY+JitterSpanY).
const (
	JitterMinX  = 50
	JitterSpanX = 200
	JitterMinY  = 50
	JitterSpanY = 150
)

var (
	// FallbackSize is used when a template has no default size.
	FallbackSize = geom.Size{Width: 600, Height: 400}

	// RestoreFallback is used when un-maximizing a window that was never
	// snapshotted.
	RestoreFallback = geom.Rect{Pos: geom.Point{X: 50, Y: 50}, Size: FallbackSize}
)

// Config wires a Manager to its collaborators.
type Config struct {
	Registry Registry
	Bounds   Bounds

	// Rand drives the placement jitter. Defaults to a time-seeded source.
	Rand *rand.Rand
}

// Manager owns the window collection, the stacking counter and the active
// window. Every operation on an unknown id is a silent no-op: windows can
// disappear while a gesture for them is still in flight.
//
// SetGeometry stores whatever it is given. Keeping sizes above MinSize is
// the caller's job (see package gesture).
type Manager struct {
	mu       sync.RWMutex
	registry Registry
	bounds   Bounds
	rng      *rand.Rand

	windows []*Window // creation order
	active  ID
	nextID  ID
	stack   int

	closeListeners []func(ID)
}

// NewManager creates an empty manager.
func NewManager(cfg Config) *Manager {
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Manager{
		registry: cfg.Registry,
		bounds:   cfg.Bounds,
		rng:      rng,
		nextID:   1,
		stack:    1,
	}
}

// OpenOption adjusts a single Open call.
type OpenOption func(*openHint)

type openHint struct {
	pos   *geom.Point
	title string
}

// AtPosition places the new window at p instead of a jittered position.
func AtPosition(p geom.Point) OpenOption {
	return func(h *openHint) { h.pos = &p }
}

// WithTitle overrides the template title.
func WithTitle(title string) OpenOption {
	return func(h *openHint) { h.title = title }
}

// OnClose registers fn to be called with the id of every closed window.
// Listeners run after the manager's lock is released.
func (m *Manager) OnClose(fn func(ID)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeListeners = append(m.closeListeners, fn)
}

// Open creates a window for kind and makes it active. It returns false and
// creates nothing when the kind is unknown or its template cannot be opened.
func (m *Manager) Open(kind AppKind, opts ...OpenOption) (ID, bool) {
	if m.registry == nil {
		return None, false
	}
	tpl, ok := m.registry.Template(kind)
	if !ok || !tpl.CanOpen {
		return None, false
	}

	var hint openHint
	for _, opt := range opts {
		opt(&hint)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	pos := geom.Point{
		X: JitterMinX + m.rng.Intn(JitterSpanX),
		Y: JitterMinY + m.rng.Intn(JitterSpanY),
	}
	if hint.pos != nil {
		pos = *hint.pos
	}
	size := tpl.DefaultSize
	if size.Width <= 0 || size.Height <= 0 {
		size = FallbackSize
	}
	title := tpl.Title
	if hint.title != "" {
		title = hint.title
	}

	win := &Window{
		ID:       m.nextID,
		Kind:     kind,
		Title:    title,
		Position: pos,
		Size:     size,
		Stack:    m.nextStack(),
	}
	m.nextID++
	m.windows = append(m.windows, win)
	m.active = win.ID
	return win.ID, true
}

// Close removes a window. When it held focus, focus moves to the highest
// stacked window that is still visible, or to nobody.
func (m *Manager) Close(id ID) bool {
	m.mu.Lock()
	idx := m.indexOf(id)
	if idx < 0 {
		m.mu.Unlock()
		return false
	}
	m.windows = append(m.windows[:idx], m.windows[idx+1:]...)
	if m.active == id {
		m.active = m.topVisible()
	}
	listeners := append([]func(ID){}, m.closeListeners...)
	m.mu.Unlock()

	for _, fn := range listeners {
		fn(id)
	}
	return true
}

// Focus raises a window to the top, restores it if minimized and makes it
// active.
func (m *Manager) Focus(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focusLocked(id)
}

// ToggleMinimize flips the minimized flag. Minimizing the active window
// leaves nothing active; another window has to be focused explicitly.
func (m *Manager) ToggleMinimize(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	win := m.find(id)
	if win == nil {
		return false
	}
	win.Minimized = !win.Minimized
	if m.active == id {
		m.active = None
	}
	return true
}

// ToggleMaximize pins a window to the usable desktop area, or restores the
// geometry it had before. Both directions focus the window.
func (m *Manager) ToggleMaximize(id ID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	win := m.find(id)
	if win == nil {
		return false
	}
	if win.Maximized {
		restore := RestoreFallback
		if win.Saved != nil {
			restore = *win.Saved
		}
		win.setFrame(restore)
		win.Maximized = false
	} else {
		saved := win.Frame()
		win.Saved = &saved
		var usable geom.Size
		if m.bounds != nil {
			usable = m.bounds.Usable()
		}
		win.setFrame(geom.Rect{Size: usable})
		win.Maximized = true
	}
	m.focusLocked(id)
	return true
}

// SetGeometry overwrites a window's position and size without touching
// stacking or focus.
func (m *Manager) SetGeometry(id ID, pos geom.Point, size geom.Size) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	win := m.find(id)
	if win == nil {
		return false
	}
	win.Position = pos
	win.Size = size
	return true
}

// Rename changes a window's title.
func (m *Manager) Rename(id ID, title string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	win := m.find(id)
	if win == nil {
		return false
	}
	win.Title = title
	return true
}

// Windows returns copies of all windows ordered bottom to top.
func (m *Manager) Windows() []Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := lo.Map(m.windows, func(w *Window, _ int) Window { return w.clone() })
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Stack < out[j].Stack
	})
	return out
}

// Window returns a copy of one window.
func (m *Manager) Window(id ID) (Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win := m.find(id)
	if win == nil {
		return Window{}, false
	}
	return win.clone(), true
}

// ActiveID returns the focused window, or None.
func (m *Manager) ActiveID() ID {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// Len returns the number of open windows.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.windows)
}

func (m *Manager) focusLocked(id ID) bool {
	win := m.find(id)
	if win == nil {
		return false
	}
	win.Stack = m.nextStack()
	win.Minimized = false
	m.active = id
	return true
}

func (m *Manager) nextStack() int {
	v := m.stack
	m.stack++
	return v
}

func (m *Manager) topVisible() ID {
	visible := lo.Filter(m.windows, func(w *Window, _ int) bool { return !w.Minimized })
	if len(visible) == 0 {
		return None
	}
	top := lo.MaxBy(visible, func(a, b *Window) bool { return a.Stack > b.Stack })
	return top.ID
}

func (m *Manager) indexOf(id ID) int {
	for i, w := range m.windows {
		if w.ID == id {
			return i
		}
	}
	return -1
}

func (m *Manager) find(id ID) *Window {
	if i := m.indexOf(id); i >= 0 {
		return m.windows[i]
	}
	return nil
}
