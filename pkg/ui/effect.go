package ui

import (
	"math"
	"math/rand"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/infopirate/gibson/pkg/colors"
)

// TerminatedMessage is written across the screen when the effect starts.
const TerminatedMessage = "CONNECTION TERMINATED"

const (
	meltPicksPerCol = 4 // columns picked per step, as a divisor of the width
	meltAccel       = 0.35
	meltMaxFrames   = 400
)

// melt drips the message down the screen. Non-blank cells are copied
// downwards by a per-column distance that grows each time the column is
// picked; blank cells never overwrite.
type melt struct {
	cells  [][]rune
	speed  []float64
	frames int
}

func newMelt(cols, rows int) *melt {
	cols, rows = max(1, cols), max(1, rows)
	cells := make([][]rune, rows)
	for y := range cells {
		cells[y] = []rune(strings.Repeat(" ", cols))
	}

	msg := []rune(runewidth.Truncate(TerminatedMessage, cols, ""))
	x0 := max(0, (cols-len(msg))/2)
	copy(cells[rows/2][x0:], msg)

	return &melt{cells: cells, speed: make([]float64, cols)}
}

// step advances one frame and reports whether the animation is over.
func (e *melt) step(rng *rand.Rand) bool {
	if e.frames >= meltMaxFrames {
		return true
	}
	e.frames++

	rows, cols := len(e.cells), len(e.speed)
	for i := 0; i < max(1, cols/meltPicksPerCol); i++ {
		x := rng.Intn(cols)
		e.speed[x] += meltAccel
		dist := int(math.Floor(e.speed[x]))
		if dist == 0 {
			continue
		}
		for y := rows - 1; y > 0; y-- {
			src := y - dist
			if src < 0 {
				continue
			}
			if r := e.cells[src][x]; r != ' ' {
				e.cells[y][x] = r
			}
		}
	}
	return e.frames >= meltMaxFrames
}

func (e *melt) view(th colors.Theme) string {
	style := lipgloss.NewStyle().
		Foreground(lipgloss.Color(th.EffectFg)).
		Background(lipgloss.Color("#000000")).
		Bold(true)
	lines := make([]string, len(e.cells))
	for y, row := range e.cells {
		lines[y] = style.Render(string(row))
	}
	return strings.Join(lines, "\n")
}
