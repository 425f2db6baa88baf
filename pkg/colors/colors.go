// Package colors holds the desktop palettes and the hex color math used to
// keep text readable on them.
package colors

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// RGB parses "#rrggbb". ok is false for anything else.
func RGB(hex string) (r, g, b int, ok bool) {
	h := strings.TrimPrefix(hex, "#")
	if len(h) != 6 {
		return 0, 0, 0, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff), true
}

// Hex formats an RGB triple, clamping each channel to 0..255.
func Hex(r, g, b int) string {
	clamp := func(v int) int { return max(0, min(255, v)) }
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

// Luminance is the WCAG relative luminance, 0 for black and 1 for white.
// Invalid colors count as black.
func Luminance(hex string) float64 {
	r, g, b, ok := RGB(hex)
	if !ok {
		return 0
	}
	return 0.2126*linear(r) + 0.7152*linear(g) + 0.0722*linear(b)
}

func linear(c int) float64 {
	v := float64(c) / 255
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// Contrast is the WCAG contrast ratio between two colors, from 1 to 21.
func Contrast(a, b string) float64 {
	la, lb := Luminance(a), Luminance(b)
	if la < lb {
		la, lb = lb, la
	}
	return (la + 0.05) / (lb + 0.05)
}

// IsLight reports whether dark text reads better on hex than light text.
func IsLight(hex string) bool {
	return Luminance(hex) > 0.179
}

// TextOn picks black or white text for a background.
func TextOn(bg string) string {
	if IsLight(bg) {
		return "#000000"
	}
	return "#ffffff"
}

// Lighten moves each channel amount (0..1) of the way towards white.
func Lighten(hex string, amount float64) string {
	return mix(hex, 255, amount)
}

// Darken moves each channel amount (0..1) of the way towards black.
func Darken(hex string, amount float64) string {
	return mix(hex, 0, amount)
}

func mix(hex string, target int, amount float64) string {
	r, g, b, ok := RGB(hex)
	if !ok {
		return hex
	}
	step := func(c int) int {
		return int(math.Round(float64(c) + (float64(target)-float64(c))*amount))
	}
	return Hex(step(r), step(g), step(b))
}

// EnsureContrast pushes fg away from bg until the pair reaches ratio,
// falling back to TextOn(bg).
func EnsureContrast(fg, bg string, ratio float64) string {
	if Contrast(fg, bg) >= ratio {
		return fg
	}
	lighter := Luminance(fg) >= Luminance(bg)
	for amount := 0.1; amount <= 1.0; amount += 0.1 {
		var c string
		if lighter {
			c = Lighten(fg, amount)
		} else {
			c = Darken(fg, amount)
		}
		if Contrast(c, bg) >= ratio {
			return c
		}
	}
	return TextOn(bg)
}
