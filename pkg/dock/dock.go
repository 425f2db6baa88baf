// Package dock projects the window collection into taskbar entries and
// formats the dock clock.
package dock

import (
	"slices"
	"time"

	"github.com/samber/lo"

	"github.com/infopirate/gibson/pkg/wm"
)

const (
	// DefaultBrand is the label at the left end of the dock.
	DefaultBrand = "[ GIBSON ]"
	// DefaultClockLayout renders h:mm:ss AM/PM with an unpadded hour.
	DefaultClockLayout = "3:04:05 PM"
	// Height is the dock height in desktop units.
	Height = 48
)

// Entry is one taskbar button.
type Entry struct {
	ID        wm.ID  `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Active    bool   `json:"active" yaml:"active"`
	Minimized bool   `json:"minimized" yaml:"minimized"`
}

// Entries returns one entry per window in creation order, regardless of
// stacking.
func Entries(windows []wm.Window, active wm.ID) []Entry {
	out := lo.Map(windows, func(w wm.Window, _ int) Entry {
		return Entry{
			ID:        w.ID,
			Title:     w.Title,
			Active:    w.ID == active && active != wm.None,
			Minimized: w.Minimized,
		}
	})
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return out
}

// Focuser brings a window forward. *wm.Manager satisfies it.
type Focuser interface {
	Focus(id wm.ID) bool
}

// Activate handles a click on an entry: the window is raised, restored
// when minimized, and focused.
func Activate(f Focuser, e Entry) bool {
	return f.Focus(e.ID)
}

// FormatClock renders t with layout, falling back to DefaultClockLayout.
func FormatClock(t time.Time, layout string) string {
	if layout == "" {
		layout = DefaultClockLayout
	}
	return t.Format(layout)
}
