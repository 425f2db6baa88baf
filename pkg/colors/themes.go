package colors

import (
	"sort"

	"github.com/muesli/termenv"
)

// Theme is a complete desktop palette.
type Theme struct {
	Name string

	DesktopBg string
	GridFg    string

	IconFg         string
	IconSelectedBg string
	IconSelectedFg string

	WindowBg        string
	WindowFg        string
	BorderActive    string
	BorderInactive  string
	TitleActiveBg   string
	TitleActiveFg   string
	TitleInactiveBg string
	TitleInactiveFg string
	ButtonFg        string
	CloseFg         string

	DockBg        string
	DockFg        string
	BrandFg       string
	ClockFg       string
	EntryActiveBg string
	EntryActiveFg string
	EntryBg       string
	EntryFg       string

	MenuBg  string
	MenuFg  string
	MenuSep string

	DialogBg     string
	DialogFg     string
	DialogBorder string
	DangerBg     string

	Accent     string
	PromptFg   string
	OutputFg   string
	ErrorFg    string
	ProgressLo string
	ProgressHi string
	EffectFg   string
}

// Themes are the built-in palettes.
var Themes = map[string]Theme{
	"gibson": {
		Name:            "gibson",
		DesktopBg:       "#000000",
		GridFg:          "#1f1f2a",
		IconFg:          "#cbd5e1",
		IconSelectedBg:  "#701a75",
		IconSelectedFg:  "#ffffff",
		WindowBg:        "#0f172a",
		WindowFg:        "#cbd5e1",
		BorderActive:    "#d946ef",
		BorderInactive:  "#334155",
		TitleActiveBg:   "#4a044e",
		TitleActiveFg:   "#f0abfc",
		TitleInactiveBg: "#1e293b",
		TitleInactiveFg: "#94a3b8",
		ButtonFg:        "#e879f9",
		CloseFg:         "#f87171",
		DockBg:          "#0f172a",
		DockFg:          "#cbd5e1",
		BrandFg:         "#e879f9",
		ClockFg:         "#f0abfc",
		EntryActiveBg:   "#86198f",
		EntryActiveFg:   "#ffffff",
		EntryBg:         "#334155",
		EntryFg:         "#cbd5e1",
		MenuBg:          "#1e293b",
		MenuFg:          "#e2e8f0",
		MenuSep:         "#475569",
		DialogBg:        "#450a0a",
		DialogFg:        "#fecaca",
		DialogBorder:    "#ef4444",
		DangerBg:        "#b91c1c",
		Accent:          "#22d3ee",
		PromptFg:        "#e879f9",
		OutputFg:        "#4ade80",
		ErrorFg:         "#f87171",
		ProgressLo:      "#a21caf",
		ProgressHi:      "#22d3ee",
		EffectFg:        "#ef4444",
	},
	"phosphor": {
		Name:            "phosphor",
		DesktopBg:       "#000000",
		GridFg:          "#0b2a0b",
		IconFg:          "#33ff33",
		IconSelectedBg:  "#33ff33",
		IconSelectedFg:  "#000000",
		WindowBg:        "#001100",
		WindowFg:        "#33ff33",
		BorderActive:    "#66ff66",
		BorderInactive:  "#116611",
		TitleActiveBg:   "#33ff33",
		TitleActiveFg:   "#001100",
		TitleInactiveBg: "#0b3d0b",
		TitleInactiveFg: "#33aa33",
		ButtonFg:        "#99ff99",
		CloseFg:         "#ccffcc",
		DockBg:          "#001a00",
		DockFg:          "#33ff33",
		BrandFg:         "#66ff66",
		ClockFg:         "#99ff99",
		EntryActiveBg:   "#33ff33",
		EntryActiveFg:   "#001100",
		EntryBg:         "#0b3d0b",
		EntryFg:         "#33ff33",
		MenuBg:          "#002200",
		MenuFg:          "#33ff33",
		MenuSep:         "#116611",
		DialogBg:        "#001100",
		DialogFg:        "#66ff66",
		DialogBorder:    "#66ff66",
		DangerBg:        "#116611",
		Accent:          "#99ff99",
		PromptFg:        "#66ff66",
		OutputFg:        "#33ff33",
		ErrorFg:         "#ccffcc",
		ProgressLo:      "#116611",
		ProgressHi:      "#66ff66",
		EffectFg:        "#66ff66",
	},
	"amber": {
		Name:            "amber",
		DesktopBg:       "#0d0700",
		GridFg:          "#2a1a00",
		IconFg:          "#ffb000",
		IconSelectedBg:  "#ffb000",
		IconSelectedFg:  "#0d0700",
		WindowBg:        "#140a00",
		WindowFg:        "#ffb000",
		BorderActive:    "#ffcc00",
		BorderInactive:  "#664400",
		TitleActiveBg:   "#ffb000",
		TitleActiveFg:   "#140a00",
		TitleInactiveBg: "#332200",
		TitleInactiveFg: "#aa7700",
		ButtonFg:        "#ffcc66",
		CloseFg:         "#ff8800",
		DockBg:          "#1a0f00",
		DockFg:          "#ffb000",
		BrandFg:         "#ffcc00",
		ClockFg:         "#ffcc66",
		EntryActiveBg:   "#ffb000",
		EntryActiveFg:   "#140a00",
		EntryBg:         "#332200",
		EntryFg:         "#ffb000",
		MenuBg:          "#1a0f00",
		MenuFg:          "#ffb000",
		MenuSep:         "#664400",
		DialogBg:        "#1a0f00",
		DialogFg:        "#ffcc66",
		DialogBorder:    "#ff8800",
		DangerBg:        "#884400",
		Accent:          "#ffcc66",
		PromptFg:        "#ffcc00",
		OutputFg:        "#ffb000",
		ErrorFg:         "#ff8800",
		ProgressLo:      "#664400",
		ProgressHi:      "#ffcc00",
		EffectFg:        "#ff8800",
	},
}

// DefaultTheme is used for unknown names.
const DefaultTheme = "gibson"

// GetTheme returns a named theme with text colors corrected for contrast.
// ok is false when the name is unknown and DefaultTheme was used instead.
func GetTheme(name string) (Theme, bool) {
	t, ok := Themes[name]
	if !ok {
		t = Themes[DefaultTheme]
	}
	t.TitleActiveFg = EnsureContrast(t.TitleActiveFg, t.TitleActiveBg, 4.5)
	t.TitleInactiveFg = EnsureContrast(t.TitleInactiveFg, t.TitleInactiveBg, 3)
	t.EntryActiveFg = EnsureContrast(t.EntryActiveFg, t.EntryActiveBg, 4.5)
	t.IconSelectedFg = EnsureContrast(t.IconSelectedFg, t.IconSelectedBg, 4.5)
	t.MenuFg = EnsureContrast(t.MenuFg, t.MenuBg, 4.5)
	return t, ok
}

// ListThemes returns the built-in theme names, sorted.
func ListThemes() []string {
	names := make([]string, 0, len(Themes))
	for name := range Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Profile returns the color profile of the controlling terminal, honoring
// NO_COLOR and CLICOLOR_FORCE.
func Profile() termenv.Profile {
	return termenv.EnvColorProfile()
}
