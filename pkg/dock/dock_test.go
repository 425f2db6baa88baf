package dock

import (
	"testing"
	"time"

	"github.com/infopirate/gibson/pkg/wm"
)

type registry map[wm.AppKind]wm.Template

func (r registry) Template(kind wm.AppKind) (wm.Template, bool) {
	t, ok := r[kind]
	return t, ok
}

func TestEntriesCreationOrder(t *testing.T) {
	m := wm.NewManager(wm.Config{Registry: registry{
		"terminal": {Kind: "terminal", Title: "Terminal", CanOpen: true},
		"notepad":  {Kind: "notepad", Title: "Notepad", CanOpen: true},
	}})
	w1, _ := m.Open("terminal")
	w2, _ := m.Open("notepad")
	w3, _ := m.Open("terminal")
	m.Focus(w1)
	m.ToggleMinimize(w2)

	got := Entries(m.Windows(), m.ActiveID())
	want := []Entry{
		{ID: w1, Title: "Terminal", Active: true},
		{ID: w2, Title: "Notepad", Minimized: true},
		{ID: w3, Title: "Terminal"},
	}
	if len(got) != len(want) {
		t.Fatalf("entries = %+v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestActivateRestoresMinimized(t *testing.T) {
	m := wm.NewManager(wm.Config{Registry: registry{
		"terminal": {Kind: "terminal", Title: "Terminal", CanOpen: true},
	}})
	id, _ := m.Open("terminal")
	m.ToggleMinimize(id)

	entries := Entries(m.Windows(), m.ActiveID())
	if entries[0].Active {
		t.Fatalf("minimized window reported active")
	}
	Activate(m, entries[0])

	w, _ := m.Window(id)
	if w.Minimized || m.ActiveID() != id {
		t.Fatalf("activate: minimized=%v active=%s", w.Minimized, m.ActiveID())
	}
}

func TestEntriesNoActive(t *testing.T) {
	got := Entries([]wm.Window{{ID: 2, Title: "b"}, {ID: 1, Title: "a"}}, wm.None)
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("order = %+v", got)
	}
	for _, e := range got {
		if e.Active {
			t.Errorf("entry %s active with no active window", e.ID)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"midnight", time.Date(2024, 1, 1, 0, 5, 9, 0, time.UTC), "12:05:09 AM"},
		{"noon", time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC), "12:00:00 PM"},
		{"afternoon", time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC), "3:04:05 PM"},
		{"morning", time.Date(2024, 1, 1, 9, 30, 45, 0, time.UTC), "9:30:45 AM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatClock(tt.t, ""); got != tt.want {
				t.Errorf("FormatClock = %q, want %q", got, tt.want)
			}
		})
	}
	if got := FormatClock(time.Date(2024, 1, 1, 15, 4, 5, 0, time.UTC), "15:04"); got != "15:04" {
		t.Errorf("custom layout = %q", got)
	}
}
