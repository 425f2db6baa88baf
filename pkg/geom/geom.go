// Package geom holds the value types shared by the window manager and the
// pointer trackers. All coordinates are desktop units; the front end decides
// how many units one terminal cell covers.
package geom

import "fmt"

// Point is a location in desktop coordinates.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the offset from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Size is a width/height pair.
type Size struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Rect is a positioned size.
type Rect struct {
	Pos  Point `json:"position" yaml:"position"`
	Size Size  `json:"size" yaml:"size"`
}

// R builds a Rect from its four components.
func R(x, y, w, h int) Rect {
	return Rect{Pos: Point{X: x, Y: y}, Size: Size{Width: w, Height: h}}
}

// Right returns the first x coordinate past the rect.
func (r Rect) Right() int { return r.Pos.X + r.Size.Width }

// Bottom returns the first y coordinate past the rect.
func (r Rect) Bottom() int { return r.Pos.Y + r.Size.Height }

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Pos.X && p.X < r.Right() &&
		p.Y >= r.Pos.Y && p.Y < r.Bottom()
}

// Empty reports whether r covers no area.
func (r Rect) Empty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

func (r Rect) String() string {
	return r.Pos.String() + "/" + r.Size.String()
}
