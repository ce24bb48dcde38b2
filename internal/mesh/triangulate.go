package mesh

import (
	"fmt"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

// Triangle is three polygon corners in the winding of their source polygon.
type Triangle [3]blockmap.Vertex

// earVertex is one node of the ear clipper's active ring.
type earVertex struct {
	p          vec
	prev, next int
	active     bool
	convex     bool
	ear        bool
	angle      float64
}

// earTest selects how strictly a candidate ear is checked against the
// remaining polygon.
type earTest int

const (
	// earInclusive rejects an ear if any other vertex touches its triangle.
	earInclusive earTest = iota
	// earStrict only rejects vertices strictly inside the triangle.
	earStrict
	// earCollinear accepts a straight (zero-area) corner.
	earCollinear
)

// Triangulate ear-clips a simple (or weakly simple) polygon with positive
// orientation into len(poly)-2 triangles.
//
// At every step the ear with the widest opening wins, which keeps slivers
// out of the result. Bridged polygons from RemoveHoles repeat their bridge
// endpoints; coincident points never block an ear.
//
// When no ear passes the normal test the clipper relaxes to a strict
// interior test, then to clipping a straight corner as a degenerate
// triangle. Every input edge still ends up in exactly one triangle, which
// keeps extruded meshes closed. ErrTriangulate is returned when even that
// fails.
func Triangulate(poly blockmap.Shape) ([]Triangle, error) {
	n := len(poly)
	if n < 3 {
		return nil, fmt.Errorf("%w: %d vertices", ErrTriangulate, n)
	}
	if n == 3 {
		return []Triangle{{poly[0], poly[1], poly[2]}}, nil
	}

	ring := make([]earVertex, n)
	for i, p := range poly {
		ring[i] = earVertex{
			p:      p,
			prev:   (i + n - 1) % n,
			next:   (i + 1) % n,
			active: true,
		}
	}

	test := earInclusive
	for i := range ring {
		updateEar(ring, i, test)
	}

	triangles := make([]Triangle, 0, n-2)
	for remaining := n; remaining > 3; {
		ear := bestEar(ring)
		for ear < 0 && test < earCollinear {
			test++
			for i := range ring {
				if ring[i].active {
					updateEar(ring, i, test)
				}
			}
			ear = bestEar(ring)
		}
		if ear < 0 {
			return nil, fmt.Errorf("%w: no ear among %d vertices", ErrTriangulate, remaining)
		}

		v := ring[ear]
		triangles = append(triangles, Triangle{ring[v.prev].p, v.p, ring[v.next].p})

		ring[ear].active = false
		ring[v.prev].next = v.next
		ring[v.next].prev = v.prev
		remaining--

		if test != earInclusive {
			test = earInclusive
			for i := range ring {
				if ring[i].active {
					updateEar(ring, i, test)
				}
			}
			continue
		}
		updateEar(ring, v.prev, test)
		updateEar(ring, v.next, test)
	}

	for i := range ring {
		if ring[i].active {
			v := ring[i]
			triangles = append(triangles, Triangle{ring[v.prev].p, v.p, ring[v.next].p})
			break
		}
	}

	return triangles, nil
}

// bestEar returns the active ear with the largest opening, or -1.
func bestEar(ring []earVertex) int {
	best := -1
	for i := range ring {
		if !ring[i].active || !ring[i].ear {
			continue
		}
		if best < 0 || ring[i].angle > ring[best].angle {
			best = i
		}
	}
	return best
}

func updateEar(ring []earVertex, i int, test earTest) {
	v := &ring[i]
	p1, p3 := ring[v.prev].p, ring[v.next].p

	c := cross(p1, v.p, p3)
	v.convex = c > 0

	x1, y1 := normalize(p1.X-v.p.X, p1.Y-v.p.Y)
	x3, y3 := normalize(p3.X-v.p.X, p3.Y-v.p.Y)
	v.angle = x1*x3 + y1*y3

	switch {
	case v.convex:
	case test == earCollinear && c == 0:
		v.ear = true
		return
	default:
		v.ear = false
		return
	}

	v.ear = true
	for j := range ring {
		if j == i || !ring[j].active {
			continue
		}
		q := ring[j].p
		if q == v.p || q == p1 || q == p3 {
			continue
		}
		blocked := false
		if test == earInclusive {
			blocked = inside(p1, v.p, p3, q)
		} else {
			blocked = strictlyInside(p1, v.p, p3, q)
		}
		if blocked {
			v.ear = false
			return
		}
	}
}
