package browser

import (
	"fmt"
	"strconv"
	"strings"
)

// Epsilon is the precision used when comparing element coordinates and
// dimensions.
const Epsilon = 0.001

// Rect is an element bounding rectangle in CSS pixels.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// IsEmpty reports whether either dimension is below Epsilon.
func (r Rect) IsEmpty() bool {
	return r.Width < Epsilon || r.Height < Epsilon
}

// Contains reports whether p lies inside r. The left and top edges are
// inclusive, the right edge is exclusive and the bottom edge is inclusive.
func (r Rect) Contains(p Point) bool {
	dx := p.X - r.X
	dy := p.Y - r.Y
	return dx >= 0 && dx < r.Width && dy >= 0 && dy <= r.Height
}

func (r Rect) String() string {
	return fmt.Sprintf("{x:%g y:%g width:%g height:%g}", r.X, r.Y, r.Width, r.Height)
}

// Point is a position in CSS pixels.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (p Point) String() string {
	return fmt.Sprintf("(%g,%g)", p.X, p.Y)
}

// ParsePoint parses "x,y".
func ParsePoint(s string) (Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return Point{}, fmt.Errorf("invalid point %q, expected \"x,y\"", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Point{}, fmt.Errorf("invalid point %q: %w", s, err)
	}
	return Point{X: x, Y: y}, nil
}
