package blockmap

import "fmt"

// Vertex is a traced polygon corner. Coordinates are cell corners, moved by
// the trace offset.
type Vertex struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Shape is a closed polygon. The closing vertex is not repeated.
type Shape []Vertex

// Direction is the heading of the boundary walk.
type Direction uint8

const (
	Right Direction = iota
	Down
	Left
	Up
)

func (d Direction) String() string {
	switch d {
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	case Up:
		return "up"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}

// Clockwise returns d turned 90° clockwise (in image coordinates).
func (d Direction) Clockwise() Direction { return (d + 1) % 4 }

// CounterClockwise returns d turned 90° counter-clockwise.
func (d Direction) CounterClockwise() Direction { return (d + 3) % 4 }

// step is the unit cell move for each heading.
var step = [4]Cell{
	Right: {X: 1, Y: 0},
	Down:  {X: 0, Y: 1},
	Left:  {X: -1, Y: 0},
	Up:    {X: 0, Y: -1},
}

// Ahead returns the neighbour of c straight ahead.
func (d Direction) Ahead(c Cell) Cell {
	s := step[d]
	return Cell{X: c.X + s.X, Y: c.Y + s.Y}
}

// Diagonal returns the convex neighbour of c: one step ahead and one step to
// the counter-clockwise side. Heading right, that is the cell up and right.
func (d Direction) Diagonal(c Cell) Cell {
	s, t := step[d], step[d.CounterClockwise()]
	return Cell{X: c.X + s.X + t.X, Y: c.Y + s.Y + t.Y}
}

// Turn is the action the walk takes at one step.
type Turn uint8

const (
	// Concave emits a corner and turns clockwise in place.
	Concave Turn = iota
	// Straight advances one cell without emitting.
	Straight
	// Convex emits a corner, turns counter-clockwise and moves diagonally.
	Convex
)

// Neighbours records which of the two inspected cells exist.
type Neighbours uint8

const (
	NoNeighbour  Neighbours = 0
	AheadOnly    Neighbours = 1
	DiagonalOnly Neighbours = 2
	Both         Neighbours = AheadOnly | DiagonalOnly
)

// Transition is one entry of the walk's state table.
type Transition struct {
	Turn Turn
	Next Direction
}

// transitions is keyed by (heading, neighbours). The diagonal neighbour is
// checked first, so it wins whenever it exists.
var transitions = [4][4]Transition{
	Right: {
		NoNeighbour:  {Concave, Down},
		AheadOnly:    {Straight, Right},
		DiagonalOnly: {Convex, Up},
		Both:         {Convex, Up},
	},
	Down: {
		NoNeighbour:  {Concave, Left},
		AheadOnly:    {Straight, Down},
		DiagonalOnly: {Convex, Right},
		Both:         {Convex, Right},
	},
	Left: {
		NoNeighbour:  {Concave, Up},
		AheadOnly:    {Straight, Left},
		DiagonalOnly: {Convex, Down},
		Both:         {Convex, Down},
	},
	Up: {
		NoNeighbour:  {Concave, Right},
		AheadOnly:    {Straight, Up},
		DiagonalOnly: {Convex, Left},
		Both:         {Convex, Left},
	},
}

// Next looks up the transition for heading d.
func Next(d Direction, n Neighbours) Transition {
	return transitions[d][n&Both]
}

// corner places an emitted vertex relative to the current cell: the cell
// corner (DX, DY) moved by offset times (SX, SY).
type corner struct {
	DX, DY int
	SX, SY float64
}

// Concave corners are inset by the offset; convex corners reach past the
// current cell towards the diagonal neighbour.
var (
	concaveCorner = [4]corner{
		Right: {1, 0, -1, 1},
		Down:  {1, 1, -1, -1},
		Left:  {0, 1, 1, -1},
		Up:    {0, 0, 1, 1},
	}
	convexCorner = [4]corner{
		Right: {1, 0, 1, 1},
		Down:  {1, 1, -1, 1},
		Left:  {0, 1, -1, -1},
		Up:    {0, 0, 1, -1},
	}
)

func (k corner) vertex(c Cell, offset float64) Vertex {
	return Vertex{
		X: float64(c.X+k.DX) + k.SX*offset,
		Y: float64(c.Y+k.DY) + k.SY*offset,
	}
}

// Trace walks the outer boundary of a 4-connected cell set into a Shape.
//
// The walk starts at cells[0] heading right. cells[0] must be the first cell
// of the set in row-major order, which Group and Holes guarantee. At every
// step the diagonal neighbour is inspected before the one straight ahead and
// the transition table decides whether to turn concave, go straight or turn
// convex. Collinear runs emit no vertices, so the result has one vertex per
// direction change.
//
// Parameters:
//   - cells: the cell set. An empty set yields an empty Shape.
//   - offset: inset applied to every corner. Use 0 for pure topology; the
//     mesh builder uses small distinct offsets for outlines and holes so that
//     independently traced shapes never share a coordinate.
//
// Returns:
//   - Shape: corners in walk order; the walk closes on the top-left corner of
//     cells[0] (plus offset), which is the last vertex.
//   - error: ErrTraceNotClosed if the walk exceeds 4 steps per bounding-box
//     cell, which cannot happen for a well-formed set.
func Trace(cells Chunk, offset float64) (Shape, error) {
	if len(cells) == 0 {
		return Shape{}, nil
	}

	set := cells.Set()
	exists := func(c Cell) bool {
		_, ok := set[c]
		return ok
	}

	lo, hi, _ := cells.Bounds()
	limit := 4*(hi.X-lo.X+1)*(hi.Y-lo.Y+1) + 4

	first := cells[0]
	end := Vertex{X: float64(first.X) + offset, Y: float64(first.Y) + offset}

	shape := Shape{}
	current := first
	heading := Right

	for steps := 0; ; steps++ {
		if n := len(shape); n > 0 && shape[n-1] == end {
			return shape, nil
		}
		if steps >= limit {
			return shape, fmt.Errorf("%w: %d steps from (%d,%d)", ErrTraceNotClosed, steps, first.X, first.Y)
		}

		var seen Neighbours
		if exists(heading.Ahead(current)) {
			seen |= AheadOnly
		}
		if exists(heading.Diagonal(current)) {
			seen |= DiagonalOnly
		}

		t := Next(heading, seen)
		switch t.Turn {
		case Convex:
			shape = append(shape, convexCorner[heading].vertex(current, offset))
			current = heading.Diagonal(current)
		case Straight:
			current = heading.Ahead(current)
		case Concave:
			shape = append(shape, concaveCorner[heading].vertex(current, offset))
		}
		heading = t.Next
	}
}

// Area returns the signed shoelace area of the shape. Shapes traced by Trace
// are positive.
func (s Shape) Area() float64 {
	var sum float64
	for i, a := range s {
		b := s[(i+1)%len(s)]
		sum += a.X*b.Y - b.X*a.Y
	}
	return sum / 2
}

// Reversed returns a copy of s with the opposite winding.
func (s Shape) Reversed() Shape {
	r := make(Shape, len(s))
	for i, v := range s {
		r[len(s)-1-i] = v
	}
	return r
}

// Contains reports whether p lies strictly inside the shape (even-odd rule).
func (s Shape) Contains(p Vertex) bool {
	inside := false
	for i, a := range s {
		b := s[(i+1)%len(s)]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := a.X + (p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y)
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}
