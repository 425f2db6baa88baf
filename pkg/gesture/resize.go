package gesture

import (
	"strings"

	"github.com/infopirate/gibson/pkg/geom"
)

// Handle is a set of window edges grabbed by a resize.
type Handle uint8

// Edges.
const (
	EdgeTop Handle = 1 << iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// The eight resize handles.
const (
	HandleTop         = EdgeTop
	HandleTopRight    = EdgeTop | EdgeRight
	HandleRight       = EdgeRight
	HandleBottomRight = EdgeBottom | EdgeRight
	HandleBottom      = EdgeBottom
	HandleBottomLeft  = EdgeBottom | EdgeLeft
	HandleLeft        = EdgeLeft
	HandleTopLeft     = EdgeTop | EdgeLeft
)

// Handles lists every handle clockwise from the top-left corner.
var Handles = []Handle{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// Has reports whether h includes every edge in e.
func (h Handle) Has(e Handle) bool { return e != 0 && h&e == e }

func (h Handle) String() string {
	var parts []string
	if h.Has(EdgeTop) {
		parts = append(parts, "top")
	}
	if h.Has(EdgeBottom) {
		parts = append(parts, "bottom")
	}
	if h.Has(EdgeLeft) {
		parts = append(parts, "left")
	}
	if h.Has(EdgeRight) {
		parts = append(parts, "right")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "-")
}

// Resize changes a window's frame from one of its handles.
type Resize struct {
	handle       Handle
	start        geom.Rect
	startPointer geom.Point
	min          geom.Size
	last         geom.Rect
	onChange     func(geom.Rect)
	active       bool
}

// BeginResize starts a resize session from handle h. onStart runs once
// before anything else; the front end uses it to focus the window.
func BeginResize(btn Button, h Handle, pointer geom.Point, start geom.Rect, minSize geom.Size, onStart func(), onChange func(geom.Rect)) (*Resize, bool) {
	if btn != ButtonPrimary || h == 0 {
		return nil, false
	}
	if onStart != nil {
		onStart()
	}
	return &Resize{
		handle:       h,
		start:        start,
		startPointer: pointer,
		min:          minSize,
		last:         start,
		onChange:     onChange,
		active:       true,
	}, true
}

// Move emits the frame for the new pointer position.
func (r *Resize) Move(p geom.Point) {
	if !r.active {
		return
	}
	r.last = ComputeResize(r.handle, r.start, r.last, p.Sub(r.startPointer), r.min)
	if r.onChange != nil {
		r.onChange(r.last)
	}
}

// Release ends the session.
func (r *Resize) Release(geom.Point) {
	r.active = false
}

// Active reports whether the session still listens for moves.
func (r *Resize) Active() bool { return r.active }

// Handle returns the grabbed handle.
func (r *Resize) Handle() Handle { return r.handle }

// ComputeResize returns the frame for a pointer delta measured from the
// press. Right and bottom edges follow the pointer but never shrink the
// window below min. Left and top edges move only while the resulting
// dimension stays above min; otherwise that axis keeps its value from last,
// the previously emitted frame.
func ComputeResize(h Handle, start, last geom.Rect, delta geom.Point, minSize geom.Size) geom.Rect {
	out := start

	if h.Has(EdgeRight) {
		out.Size.Width = max(minSize.Width, start.Size.Width+delta.X)
	}
	if h.Has(EdgeBottom) {
		out.Size.Height = max(minSize.Height, start.Size.Height+delta.Y)
	}
	if h.Has(EdgeLeft) {
		if w := start.Size.Width - delta.X; w > minSize.Width {
			out.Size.Width = w
			out.Pos.X = start.Pos.X + delta.X
		} else {
			out.Size.Width = last.Size.Width
			out.Pos.X = last.Pos.X
		}
	}
	if h.Has(EdgeTop) {
		if hgt := start.Size.Height - delta.Y; hgt > minSize.Height {
			out.Size.Height = hgt
			out.Pos.Y = start.Pos.Y + delta.Y
		} else {
			out.Size.Height = last.Size.Height
			out.Pos.Y = last.Pos.Y
		}
	}
	return out
}
