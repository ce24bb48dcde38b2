package mesh

import (
	"fmt"
	"math"

	"github.com/ironsheep/stamp-motif-mcp/internal/blockmap"
)

type vec = blockmap.Vertex

// isConvex reports whether p1, p2, p3 turn left (positive orientation).
// Collinear points are not convex.
func isConvex(p1, p2, p3 vec) bool {
	return cross(p1, p2, p3) > 0
}

func cross(p1, p2, p3 vec) float64 {
	return (p3.Y-p1.Y)*(p2.X-p1.X) - (p3.X-p1.X)*(p2.Y-p1.Y)
}

// inside reports whether p lies in triangle (p1, p2, p3), boundary included.
func inside(p1, p2, p3, p vec) bool {
	if isConvex(p1, p, p2) || isConvex(p2, p, p3) || isConvex(p3, p, p1) {
		return false
	}
	return true
}

// strictlyInside excludes the triangle boundary.
func strictlyInside(p1, p2, p3, p vec) bool {
	return cross(p1, p2, p) > 0 && cross(p2, p3, p) > 0 && cross(p3, p1, p) > 0
}

// inCone reports whether p lies in the cone spanned at p2 by the polygon
// corner p1, p2, p3.
func inCone(p1, p2, p3, p vec) bool {
	if isConvex(p1, p2, p3) {
		return isConvex(p1, p2, p) && isConvex(p2, p3, p)
	}
	return isConvex(p1, p2, p) || isConvex(p2, p3, p)
}

// intersects reports whether segments p11-p12 and p21-p22 cross. Segments
// that share an endpoint do not count.
func intersects(p11, p12, p21, p22 vec) bool {
	if p11 == p21 || p11 == p22 || p12 == p21 || p12 == p22 {
		return false
	}

	v1ortX, v1ortY := p12.Y-p11.Y, p11.X-p12.X
	v2ortX, v2ortY := p22.Y-p21.Y, p21.X-p22.X

	dot21 := (p21.X-p11.X)*v1ortX + (p21.Y-p11.Y)*v1ortY
	dot22 := (p22.X-p11.X)*v1ortX + (p22.Y-p11.Y)*v1ortY
	dot11 := (p11.X-p21.X)*v2ortX + (p11.Y-p21.Y)*v2ortY
	dot12 := (p12.X-p21.X)*v2ortX + (p12.Y-p21.Y)*v2ortY

	if dot11*dot12 > 0 || dot21*dot22 > 0 {
		return false
	}
	return true
}

func normalize(x, y float64) (float64, float64) {
	l := math.Hypot(x, y)
	if l == 0 {
		return 0, 0
	}
	return x / l, y / l
}

// crossesAny reports whether segment a-b crosses an edge of any polygon.
func crossesAny(a, b vec, polys ...blockmap.Shape) bool {
	for _, poly := range polys {
		for i, p := range poly {
			if intersects(a, b, p, poly[(i+1)%len(poly)]) {
				return true
			}
		}
	}
	return false
}

// RemoveHoles stitches holes into outline, producing one weakly simple
// polygon.
//
// outline must have positive orientation and every hole negative
// orientation (reverse traced holes before calling). Holes are merged one at
// a time, rightmost hole vertex first. Each is joined to the outline vertex
// that lies to its right, sees the hole vertex inside its corner cone, and
// makes the most horizontal bridge not crossing any edge. The bridge is
// walked in both directions, so the two bridge endpoints appear twice in the
// result.
//
// If no vertex to the right qualifies, any visible outline vertex is used,
// nearest first. ErrHoleBridge is returned when none is visible.
func RemoveHoles(outline blockmap.Shape, holes []blockmap.Shape) (blockmap.Shape, error) {
	poly := append(blockmap.Shape(nil), outline...)
	pending := make([]blockmap.Shape, 0, len(holes))
	for _, h := range holes {
		if len(h) > 0 {
			pending = append(pending, h)
		}
	}

	for len(pending) > 0 {
		holeIdx, pointIdx := 0, 0
		for hi, h := range pending {
			for pi, p := range h {
				if p.X > pending[holeIdx][pointIdx].X {
					holeIdx, pointIdx = hi, pi
				}
			}
		}
		hole := pending[holeIdx]
		others := append(append([]blockmap.Shape(nil), pending[:holeIdx]...), pending[holeIdx+1:]...)
		holePoint := hole[pointIdx]

		best := bestBridge(poly, hole, pointIdx, others, true)
		if best < 0 {
			best = bestBridge(poly, hole, pointIdx, others, false)
		}
		if best < 0 {
			return nil, fmt.Errorf("%w: hole point (%g,%g)", ErrHoleBridge, holePoint.X, holePoint.Y)
		}

		merged := make(blockmap.Shape, 0, len(poly)+len(hole)+2)
		merged = append(merged, poly[:best+1]...)
		for i := 0; i <= len(hole); i++ {
			merged = append(merged, hole[(i+pointIdx)%len(hole)])
		}
		merged = append(merged, poly[best:]...)

		poly = merged
		pending = others
	}

	return poly, nil
}

// bestBridge picks the outline vertex to connect to hole[pointIdx], or -1.
// With rightOnly set, only vertices strictly to the right are considered and
// the most horizontal bridge wins; otherwise the shortest visible one does.
func bestBridge(poly, hole blockmap.Shape, pointIdx int, others []blockmap.Shape, rightOnly bool) int {
	best := -1
	var bestX, bestDist float64
	n, m := len(poly), len(hole)
	holePoint := hole[pointIdx]
	holePrev, holeNext := hole[(pointIdx+m-1)%m], hole[(pointIdx+1)%m]

	for i, p := range poly {
		if rightOnly && p.X <= holePoint.X {
			continue
		}
		if !inCone(poly[(i+n-1)%n], p, poly[(i+1)%n], holePoint) {
			continue
		}
		if !rightOnly && !inCone(holePrev, holePoint, holeNext, p) {
			continue
		}

		dx, _ := normalize(p.X-holePoint.X, p.Y-holePoint.Y)
		dist := math.Hypot(p.X-holePoint.X, p.Y-holePoint.Y)
		if best >= 0 {
			if rightOnly && bestX > dx {
				continue
			}
			if !rightOnly && bestDist <= dist {
				continue
			}
		}

		if crossesAny(holePoint, p, poly, hole) || crossesAny(holePoint, p, others...) {
			continue
		}

		best, bestX, bestDist = i, dx, dist
	}

	return best
}
