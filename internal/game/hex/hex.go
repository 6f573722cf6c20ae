// Package hex provides axial hex-grid coordinates and the integer geometry
// the board engine needs: neighbors, distance, and range enumeration.
package hex

// Coord is an axial hex coordinate (q, r).
type Coord struct {
	Q, R int
}

// Directions defines the 6 neighbor offsets in axial coordinates.
var Directions = [6]Coord{
	{1, 0}, {1, -1}, {0, -1},
	{-1, 0}, {-1, 1}, {0, 1},
}

// Add returns c translated by d.
func (c Coord) Add(d Coord) Coord {
	return Coord{c.Q + d.Q, c.R + d.R}
}

// Neighbors returns the 6 adjacent coordinates of c.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range Directions {
		out[i] = c.Add(d)
	}
	return out
}

// Distance returns the hex distance between a and b.
func Distance(a, b Coord) int {
	dq := a.Q - b.Q
	dr := a.R - b.R
	ds := -dq - dr
	return (abs(dq) + abs(dr) + abs(ds)) / 2
}

// Adjacent reports whether a and b are exactly one step apart.
func Adjacent(a, b Coord) bool {
	return Distance(a, b) == 1
}

// WithinRange returns every coordinate at distance <= radius from center,
// in a deterministic order (scanline over q, then r).
func WithinRange(center Coord, radius int) []Coord {
	if radius < 0 {
		return nil
	}
	out := make([]Coord, 0, 1+3*radius*(radius+1))
	for dq := -radius; dq <= radius; dq++ {
		lo := max(-radius, -dq-radius)
		hi := min(radius, -dq+radius)
		for dr := lo; dr <= hi; dr++ {
			out = append(out, Coord{center.Q + dq, center.R + dr})
		}
	}
	return out
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
