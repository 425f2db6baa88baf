package gesture

import (
	"github.com/infopirate/gibson/pkg/geom"
	"github.com/infopirate/gibson/pkg/wm"
)

type entry struct {
	id      wm.ID
	session Session
}

// Tracker owns the sessions currently listening for pointer moves and
// releases, one per window. It stands in for document-level listeners: a
// session receives events only while registered, and a release or a window
// close unregisters it.
//
// A Tracker is used from the UI goroutine only.
type Tracker struct {
	entries []entry
}

// NewTracker returns an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Begin registers s for window id, releasing any session the window
// already had.
func (t *Tracker) Begin(id wm.ID, s Session) {
	if s == nil {
		return
	}
	t.Cancel(id)
	t.entries = append(t.entries, entry{id: id, session: s})
}

// Move forwards a pointer move to every registered session.
func (t *Tracker) Move(p geom.Point) {
	for _, e := range t.entries {
		e.session.Move(p)
	}
}

// Release ends every registered session and removes its listeners.
func (t *Tracker) Release(p geom.Point) {
	entries := t.entries
	t.entries = nil
	for _, e := range entries {
		e.session.Release(p)
	}
}

// Cancel drops the session for id without a final move. Wire it to
// wm.Manager.OnClose so a window closed mid-gesture leaks nothing.
func (t *Tracker) Cancel(id wm.ID) {
	for i, e := range t.entries {
		if e.id == id {
			e.session.Release(geom.Point{})
			t.entries = append(t.entries[:i], t.entries[i+1:]...)
			return
		}
	}
}

// Listening reports whether any session is registered.
func (t *Tracker) Listening() bool {
	return len(t.entries) > 0
}

// Owner returns the window whose session is registered, if any.
func (t *Tracker) Owner() (wm.ID, bool) {
	if len(t.entries) == 0 {
		return wm.None, false
	}
	return t.entries[0].id, true
}
