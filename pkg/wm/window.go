// Package wm is the window manager core: the set of open windows, their
// geometry, stacking order and focus. It knows nothing about terminals or
// rendering; callers feed it commands and read back copies of its state.
package wm

import (
	"fmt"

	"github.com/infopirate/gibson/pkg/geom"
)

// Minimum window dimensions while not maximized.
const (
	MinWidth  = 250
	MinHeight = 150
)

// MinSize is MinWidth x MinHeight.
var MinSize = geom.Size{Width: MinWidth, Height: MinHeight}

// ID identifies a window for its whole lifetime. The zero ID means "no
// window".
type ID uint64

// None is the zero ID.
const None ID = 0

func (id ID) String() string {
	if id == None {
		return "none"
	}
	return fmt.Sprintf("W%d", uint64(id))
}

// AppKind names the application template a window was opened from.
type AppKind string

// Window is one open application instance. Values handed out by the
// Manager are copies; mutate through the Manager's operations.
type Window struct {
	ID        ID         `json:"id" yaml:"id"`
	Kind      AppKind    `json:"kind" yaml:"kind"`
	Title     string     `json:"title" yaml:"title"`
	Position  geom.Point `json:"position" yaml:"position"`
	Size      geom.Size  `json:"size" yaml:"size"`
	Stack     int        `json:"stack" yaml:"stack"`
	Minimized bool       `json:"minimized" yaml:"minimized"`
	Maximized bool       `json:"maximized" yaml:"maximized"`

	// Saved is the geometry captured when the window was last maximized.
	Saved *geom.Rect `json:"saved,omitempty" yaml:"saved,omitempty"`
}

// Frame returns the window's position and size as a rect.
func (w Window) Frame() geom.Rect {
	return geom.Rect{Pos: w.Position, Size: w.Size}
}

// Visible reports whether the window is drawn at all.
func (w Window) Visible() bool {
	return !w.Minimized
}

func (w *Window) setFrame(r geom.Rect) {
	w.Position = r.Pos
	w.Size = r.Size
}

func (w Window) clone() Window {
	if w.Saved != nil {
		saved := *w.Saved
		w.Saved = &saved
	}
	return w
}

// Template describes what a freshly opened window of some kind looks like.
// The manager only reads templates.
type Template struct {
	Kind        AppKind
	Title       string
	DefaultSize geom.Size
	CanOpen     bool
}

// Registry resolves application kinds to templates.
type Registry interface {
	Template(kind AppKind) (Template, bool)
}

// Bounds reports the usable desktop area: the container size minus the
// chrome reserved by the dock.
type Bounds interface {
	Usable() geom.Size
}

// FixedBounds is a Bounds with a constant container size.
type FixedBounds struct {
	Width, Height int
	Chrome        int
}

// Usable implements Bounds.
func (b FixedBounds) Usable() geom.Size {
	return geom.Size{Width: b.Width, Height: b.Height - b.Chrome}
}
