package torrent

import (
	"math/rand"
	"strings"
	"testing"
)

func TestAddRecognisesLinks(t *testing.T) {
	tests := []struct {
		link string
		want string
		ok   bool
	}{
		{"https://YTS.MX/movie/karate", "Karate.Kid", true},
		{"magnet:?xt=urn:btih:ba6cad6476f5328eff646ae549a39c61705244c8", "Karate.Kid", true},
		{"karate-kid.torrent", "Karate.Kid", true},
		{"http://example.org/Hackers-1995", "Hackers.1995", true},
		{"http://example.org/sneakers", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.link, func(t *testing.T) {
			s := NewSimulator()
			if got := s.Add(tt.link); got != tt.ok {
				t.Fatalf("Add = %v, want %v", got, tt.ok)
			}
			if !tt.ok {
				if s.Len() != 0 {
					t.Fatalf("unrecognised link added a transfer")
				}
				return
			}
			list := s.List()
			if len(list) != 1 || !strings.HasPrefix(list[0].Name, tt.want) {
				t.Fatalf("list = %+v", list)
			}
			if list[0].Status != Downloading || list[0].Progress != 0 {
				t.Errorf("new transfer = %+v", list[0])
			}
		})
	}
}

func TestAddDeduplicates(t *testing.T) {
	s := NewSimulator()
	s.Add("yts.mx")
	if !s.Add("karate-kid") {
		t.Fatalf("duplicate reported unrecognised")
	}
	s.Add("hackers")
	if s.Len() != 2 {
		t.Fatalf("len = %d, want 2", s.Len())
	}
	first := NewSimulator()
	first.Add("yts.mx")
	if first.List()[0].ID != s.List()[0].ID {
		t.Errorf("ids are not stable across simulators")
	}
}

func TestTickProgressesToSeeding(t *testing.T) {
	s := NewSimulator()
	s.Add("hackers")
	rng := rand.New(rand.NewSource(7))

	last := 0.0
	for i := 0; i < 50; i++ {
		s.Tick(rng)
		tr := s.List()[0]
		if tr.Progress < last || tr.Progress > 100 {
			t.Fatalf("progress %f after %f", tr.Progress, last)
		}
		if tr.Progress-last > 0.5 {
			t.Fatalf("progress jumped by %f", tr.Progress-last)
		}
		if tr.Peers < 5 || tr.Peers >= 25 || tr.Seeds < 10 || tr.Seeds >= 60 {
			t.Fatalf("swarm out of range: %+v", tr)
		}
		last = tr.Progress
	}

	if st := s.List()[0].Status; st != Downloading {
		t.Fatalf("status after 50 ticks = %s, want %s", st, Downloading)
	}

	// force completion
	s.mu.Lock()
	s.torrents[0].Progress = 99.999999
	s.mu.Unlock()
	for i := 0; i < 10 && s.List()[0].Status == Downloading; i++ {
		s.Tick(rng)
	}
	if st := s.List()[0].Status; st != Seeding {
		t.Fatalf("status at 100%% = %s, want %s", st, Seeding)
	}
	tr := s.List()[0]
	if tr.Progress != 100 || tr.DownloadSpeed != "0 KB/s" {
		t.Fatalf("completed transfer = %+v", tr)
	}
	if tr.DownloadedMB() != 4500 {
		t.Errorf("DownloadedMB = %f", tr.DownloadedMB())
	}

	s.Tick(rng)
	if s.List()[0].Status != Seeding {
		t.Errorf("seeding transfer changed status")
	}
}

func TestListIsCopy(t *testing.T) {
	s := NewSimulator()
	s.Add("hackers")
	l := s.List()
	l[0].Name = "x"
	if s.List()[0].Name == "x" {
		t.Fatalf("List exposed internal slice")
	}
}
