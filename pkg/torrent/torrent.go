// Package torrent is the fake torrent client behind the Torrents window and
// the terminal's download command. Nothing touches the network: links are
// matched against a small catalogue and progress is simulated per tick.
package torrent

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Status of a transfer.
type Status string

const (
	Downloading Status = "Downloading"
	Seeding     Status = "Seeding"
)

// Torrent is one simulated transfer.
type Torrent struct {
	ID            string  `json:"id" yaml:"id"`
	Name          string  `json:"name" yaml:"name"`
	Size          string  `json:"size" yaml:"size"`
	TotalSizeMB   int     `json:"total_size_mb" yaml:"total_size_mb"`
	Progress      float64 `json:"progress" yaml:"progress"`
	Status        Status  `json:"status" yaml:"status"`
	DownloadSpeed string  `json:"download_speed" yaml:"download_speed"`
	UploadSpeed   string  `json:"upload_speed" yaml:"upload_speed"`
	Peers         int     `json:"peers" yaml:"peers"`
	Seeds         int     `json:"seeds" yaml:"seeds"`
}

// DownloadedMB is the simulated amount transferred so far.
func (t Torrent) DownloadedMB() float64 {
	return float64(t.TotalSizeMB) * t.Progress / 100
}

type release struct {
	name   string
	size   string
	sizeMB int
	match  []string
}

var catalogue = []release{
	{
		name:   "Karate.Kid.Legends.2025.1080p.WEBRip.x264-YTS.MX.mp4",
		size:   "2.15 GB",
		sizeMB: 2150,
		match:  []string{"yts.mx", "karate-kid", "ba6cad6476f5328eff646ae549a39c61705244c8"},
	},
	{
		name:   "Hackers.1995.Collectors.Edition.1080p.BluRay.x265-RARBG.mkv",
		size:   "4.50 GB",
		sizeMB: 4500,
		match:  []string{"hackers"},
	},
}

var idNamespace = uuid.MustParse("6f1b7a3e-2c55-4b8e-9d0a-61e5c0ffee42")

func lookup(link string) (release, bool) {
	lower := strings.ToLower(link)
	for _, r := range catalogue {
		for _, m := range r.match {
			if strings.Contains(lower, m) {
				return r, true
			}
		}
	}
	return release{}, false
}

// Simulator holds the transfer list. It is safe for concurrent use.
type Simulator struct {
	mu       sync.RWMutex
	torrents []Torrent
}

// NewSimulator returns an empty simulator.
func NewSimulator() *Simulator {
	return &Simulator{}
}

// Add starts a transfer for link. It reports whether the link was
// recognised; adding a known release twice keeps the first transfer.
func (s *Simulator) Add(link string) bool {
	r, ok := lookup(link)
	if !ok {
		return false
	}
	id := uuid.NewSHA1(idNamespace, []byte(r.name)).String()

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.torrents {
		if t.ID == id {
			return true
		}
	}
	s.torrents = append(s.torrents, Torrent{
		ID:            id,
		Name:          r.name,
		Size:          r.size,
		TotalSizeMB:   r.sizeMB,
		Status:        Downloading,
		DownloadSpeed: "0 KB/s",
		UploadSpeed:   "0 KB/s",
	})
	return true
}

// Tick advances every transfer by one second.
func (s *Simulator) Tick(rng *rand.Rand) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.torrents {
		t := &s.torrents[i]
		switch t.Status {
		case Downloading:
			if t.Progress >= 100 {
				continue
			}
			t.Progress = min(100, t.Progress+rng.Float64()*0.5)
			if t.Progress >= 100 {
				t.Status = Seeding
				t.DownloadSpeed = "0 KB/s"
				t.UploadSpeed = speed(rng.Float64()*250 + 50)
			} else {
				t.DownloadSpeed = speed(rng.Float64()*1500 + 500)
				t.UploadSpeed = speed(rng.Float64() * 50)
			}
			swarm(t, rng)
		case Seeding:
			t.UploadSpeed = speed(rng.Float64()*250 + 50)
			swarm(t, rng)
		}
	}
}

// List returns a copy of the transfers in the order they were added.
func (s *Simulator) List() []Torrent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]Torrent(nil), s.torrents...)
}

// Len returns the number of transfers.
func (s *Simulator) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.torrents)
}

func swarm(t *Torrent, rng *rand.Rand) {
	t.Peers = rng.Intn(20) + 5
	t.Seeds = rng.Intn(50) + 10
}

func speed(kbs float64) string {
	return fmt.Sprintf("%.2f KB/s", kbs)
}
