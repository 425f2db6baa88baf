package apps

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/infopirate/gibson/pkg/torrent"
)

// TorrentsModel lists the simulator's transfers. It has no state of its
// own; the shared tick advances the simulator and the next render shows it.
type TorrentsModel struct {
	env    *Env
	bar    progress.Model
	width  int
	height int
}

// NewTorrents is the torrent client's Factory.
func NewTorrents(_ Host, env *Env) Content {
	th := env.theme()
	return &TorrentsModel{
		env: env,
		bar: progress.New(
			progress.WithGradient(th.ProgressLo, th.ProgressHi),
			progress.WithWidth(16),
		),
	}
}

func (m *TorrentsModel) Init() tea.Cmd { return nil }

func (m *TorrentsModel) Update(tea.Msg) tea.Cmd { return nil }

func (m *TorrentsModel) Resize(width, height int) {
	m.width, m.height = width, height
}

// column widths, name excluded
const (
	colSize   = 9
	colBar    = 16
	colPct    = 7
	colStatus = 12
	colSpeed  = 13
	colCount  = 6
)

func (m *TorrentsModel) View() string {
	th := m.env.theme()
	var list []torrent.Torrent
	if m.env != nil && m.env.Torrents != nil {
		list = m.env.Torrents.List()
	}

	header := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TitleActiveFg)).Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(th.TitleInactiveFg))
	text := lipgloss.NewStyle().Foreground(lipgloss.Color(th.WindowFg))

	fixed := colSize + colBar + colPct + colStatus + 2*colSpeed + 2*colCount + 8
	nameW := max(8, m.width-fixed)

	var rows []string
	rows = append(rows, header.Render(m.row(nameW,
		"Name", "Size", "Progress", "", "Status", "DL Speed", "UL Speed", "Seeds", "Peers")))

	body := max(0, m.height-3)
	if len(list) == 0 {
		empty := lipgloss.JoinVertical(lipgloss.Center,
			muted.Render("No active torrents."),
			muted.Render("Use 'download [url]' in the terminal."),
		)
		rows = append(rows, lipgloss.Place(max(1, m.width), body, lipgloss.Center, lipgloss.Center, empty))
	} else {
		for i, t := range list {
			if i >= body {
				break
			}
			status := lipgloss.NewStyle().Foreground(lipgloss.Color(statusColor(t.Status, th.Accent, th.OutputFg))).Bold(true)
			line := m.row(nameW,
				t.Name, t.Size,
				m.bar.ViewAs(t.Progress/100),
				fmt.Sprintf("%.1f%%", t.Progress),
				status.Render(string(t.Status)),
				t.DownloadSpeed, t.UploadSpeed,
				fmt.Sprint(t.Seeds), fmt.Sprint(t.Peers))
			rows = append(rows, text.Render(line))
		}
	}

	footer := fmt.Sprintf("Total Torrents: %d", len(list))
	status := "Status: Connected"
	gap := max(1, m.width-runewidth.StringWidth(footer)-runewidth.StringWidth(status))
	rows = append(rows, "", muted.Render(footer+strings.Repeat(" ", gap)+status))

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func (m *TorrentsModel) row(nameW int, name, size, bar, pct, status, dl, ul, seeds, peers string) string {
	cell := func(s string, w int, right bool) string {
		style := lipgloss.NewStyle().Width(w).MaxWidth(w)
		if right {
			style = style.Align(lipgloss.Right)
		}
		return style.Render(s)
	}
	return strings.Join([]string{
		cell(runewidth.Truncate(name, nameW, "…"), nameW, false),
		cell(size, colSize, true),
		cell(bar, colBar, false),
		cell(pct, colPct, true),
		cell(status, colStatus, false),
		cell(dl, colSpeed, true),
		cell(ul, colSpeed, true),
		cell(seeds, colCount, true),
		cell(peers, colCount, true),
	}, " ")
}

func statusColor(s torrent.Status, downloading, seeding string) string {
	if s == torrent.Seeding {
		return seeding
	}
	return downloading
}
