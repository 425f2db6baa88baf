// Package gesture turns raw pointer events into continuous drag and resize
// updates. Sessions are explicit two-state objects: they exist from the
// press that started them until the matching release, and the Tracker owns
// every session that is currently listening for pointer events.
package gesture

import "github.com/infopirate/gibson/pkg/geom"

// Button is a pointer button.
type Button int

const (
	ButtonNone Button = iota
	ButtonPrimary
	ButtonMiddle
	ButtonSecondary
)

func (b Button) String() string {
	switch b {
	case ButtonPrimary:
		return "primary"
	case ButtonMiddle:
		return "middle"
	case ButtonSecondary:
		return "secondary"
	default:
		return "none"
	}
}

// Session is a gesture in progress. Move is called for every pointer move
// and Release once when the button comes up.
type Session interface {
	Move(p geom.Point)
	Release(p geom.Point)
	Active() bool
}

// Drag moves a window by its title bar. The pointer keeps the offset it had
// from the window origin at press time; sizes are never touched and
// positions are not clamped, so windows may leave the screen.
type Drag struct {
	offset geom.Point
	onDrag func(geom.Point)
	active bool
}

// BeginDrag starts a drag session. Only the primary button drags; any other
// button returns (nil, false) without calling onStart. onStart runs exactly
// once, before any position is emitted.
func BeginDrag(btn Button, pointer, origin geom.Point, onStart func(), onDrag func(geom.Point)) (*Drag, bool) {
	if btn != ButtonPrimary {
		return nil, false
	}
	if onStart != nil {
		onStart()
	}
	return &Drag{
		offset: pointer.Sub(origin),
		onDrag: onDrag,
		active: true,
	}, true
}

// Move emits the new window origin.
func (d *Drag) Move(p geom.Point) {
	if !d.active {
		return
	}
	if d.onDrag != nil {
		d.onDrag(p.Sub(d.offset))
	}
}

// Release ends the session. Later moves are ignored.
func (d *Drag) Release(geom.Point) {
	d.active = false
}

// Active reports whether the session still listens for moves.
func (d *Drag) Active() bool { return d.active }
