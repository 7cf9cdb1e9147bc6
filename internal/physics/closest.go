package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ClosestPointOnSegment projects p onto the line through a and b and clamps
// the result to the segment. A zero-length segment returns a.
func ClosestPointOnSegment(p, a, b rl.Vector3) rl.Vector3 {
	ab := rl.Vector3Subtract(b, a)
	denom := lenSqr(ab)
	if denom < Epsilon*Epsilon {
		return a
	}
	t := clamp(rl.Vector3DotProduct(rl.Vector3Subtract(p, a), ab)/denom, 0, 1)
	return rl.Vector3Add(a, rl.Vector3Scale(ab, t))
}

// ClosestPointOnAABB clamps p componentwise into the box.
func ClosestPointOnAABB(p rl.Vector3, box AABB) rl.Vector3 {
	return rl.Vector3{
		X: clamp(p.X, box.Min.X, box.Max.X),
		Y: clamp(p.Y, box.Min.Y, box.Max.Y),
		Z: clamp(p.Z, box.Min.Z, box.Max.Z),
	}
}

// ClosestPointOnTriangle returns the nearest point on the filled triangle to
// p, using the vertex/edge/face Voronoi regions. A degenerate triangle falls
// back to the nearest point among its edges.
func ClosestPointOnTriangle(p rl.Vector3, tri Triangle) rl.Vector3 {
	if tri.IsDegenerate() {
		return closestPointOnTriangleEdges(p, tri)
	}

	a, b, c := tri.V0, tri.V1, tri.V2

	// Check if P in vertex region outside A
	ab := rl.Vector3Subtract(b, a)
	ac := rl.Vector3Subtract(c, a)
	ap := rl.Vector3Subtract(p, a)

	d1 := rl.Vector3DotProduct(ab, ap)
	d2 := rl.Vector3DotProduct(ac, ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	// Check if P in vertex region outside B
	bp := rl.Vector3Subtract(p, b)
	d3 := rl.Vector3DotProduct(ab, bp)
	d4 := rl.Vector3DotProduct(ac, bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	// Check if P in edge region of AB
	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return rl.Vector3Add(a, rl.Vector3Scale(ab, v))
	}

	// Check if P in vertex region outside C
	cp := rl.Vector3Subtract(p, c)
	d5 := rl.Vector3DotProduct(ab, cp)
	d6 := rl.Vector3DotProduct(ac, cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	// Check if P in edge region of AC
	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return rl.Vector3Add(a, rl.Vector3Scale(ac, w))
	}

	// Check if P in edge region of BC
	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return rl.Vector3Add(b, rl.Vector3Scale(rl.Vector3Subtract(c, b), w))
	}

	// P inside face region
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return rl.Vector3Add(a, rl.Vector3Add(rl.Vector3Scale(ab, v), rl.Vector3Scale(ac, w)))
}

func closestPointOnTriangleEdges(p rl.Vector3, tri Triangle) rl.Vector3 {
	best := ClosestPointOnSegment(p, tri.V0, tri.V1)
	bestDist := distSqr(p, best)
	if q := ClosestPointOnSegment(p, tri.V1, tri.V2); distSqr(p, q) < bestDist {
		best, bestDist = q, distSqr(p, q)
	}
	if q := ClosestPointOnSegment(p, tri.V2, tri.V0); distSqr(p, q) < bestDist {
		best = q
	}
	return best
}

// ClosestPointsOnSegments returns the pair of nearest points between two
// segments. Parallel and degenerate segments are resolved by clamping the
// parameters independently.
func ClosestPointsOnSegments(s1, s2 Segment) (rl.Vector3, rl.Vector3) {
	d1 := rl.Vector3Subtract(s1.End, s1.Start)
	d2 := rl.Vector3Subtract(s2.End, s2.Start)
	r := rl.Vector3Subtract(s1.Start, s2.Start)

	a := lenSqr(d1)
	e := lenSqr(d2)
	f := rl.Vector3DotProduct(d2, r)

	var s, t float32

	switch {
	case a < Epsilon*Epsilon && e < Epsilon*Epsilon:
		// Both segments are points.
		return s1.Start, s2.Start
	case a < Epsilon*Epsilon:
		t = clamp(f/e, 0, 1)
	case e < Epsilon*Epsilon:
		c := rl.Vector3DotProduct(d1, r)
		s = clamp(-c/a, 0, 1)
	default:
		c := rl.Vector3DotProduct(d1, r)
		b := rl.Vector3DotProduct(d1, d2)
		denom := a*e - b*b
		if denom > Epsilon {
			s = clamp((b*f-c*e)/denom, 0, 1)
		}
		// Parallel segments fall through with s = 0.
		t = (b*s + f) / e
		if t < 0 {
			t = 0
			s = clamp(-c/a, 0, 1)
		} else if t > 1 {
			t = 1
			s = clamp((b-c)/a, 0, 1)
		}
	}

	p1 := rl.Vector3Add(s1.Start, rl.Vector3Scale(d1, s))
	p2 := rl.Vector3Add(s2.Start, rl.Vector3Scale(d2, t))
	return p1, p2
}

// ClosestPointsSegmentTriangle returns the nearest points between a segment
// and a filled triangle, segment point first. When the segment pierces the
// triangle's interior both points are the piercing point.
func ClosestPointsSegmentTriangle(seg Segment, tri Triangle) (rl.Vector3, rl.Vector3) {
	// Interior crossing first: distance zero beats every other candidate.
	if n := tri.Normal(); lenSqr(n) > 0 {
		da := rl.Vector3DotProduct(rl.Vector3Subtract(seg.Start, tri.V0), n)
		db := rl.Vector3DotProduct(rl.Vector3Subtract(seg.End, tri.V0), n)
		if da*db < 0 {
			t := da / (da - db)
			ip := rl.Vector3Add(seg.Start, rl.Vector3Scale(rl.Vector3Subtract(seg.End, seg.Start), t))
			if distSqr(ip, ClosestPointOnTriangle(ip, tri)) < Epsilon*Epsilon {
				return ip, ip
			}
		}
	}

	bestSeg, bestTri := ClosestPointsOnSegments(seg, Segment{Start: tri.V0, End: tri.V1})
	bestDist := distSqr(bestSeg, bestTri)

	consider := func(onSeg, onTri rl.Vector3) {
		if d := distSqr(onSeg, onTri); d < bestDist {
			bestSeg, bestTri, bestDist = onSeg, onTri, d
		}
	}

	p, q := ClosestPointsOnSegments(seg, Segment{Start: tri.V1, End: tri.V2})
	consider(p, q)
	p, q = ClosestPointsOnSegments(seg, Segment{Start: tri.V2, End: tri.V0})
	consider(p, q)
	consider(seg.Start, ClosestPointOnTriangle(seg.Start, tri))
	consider(seg.End, ClosestPointOnTriangle(seg.End, tri))

	return bestSeg, bestTri
}

// ClosestPointsSegmentAABB returns the nearest points between a segment and a
// box, segment point first. There is no direct closed form; alternating
// projections between the two convex sets converge onto the nearest pair.
func ClosestPointsSegmentAABB(seg Segment, box AABB) (rl.Vector3, rl.Vector3) {
	segPt := ClosestPointOnSegment(box.Center(), seg.Start, seg.End)
	boxPt := ClosestPointOnAABB(segPt, box)

	for i := 0; i < 16; i++ {
		next := ClosestPointOnSegment(boxPt, seg.Start, seg.End)
		if distSqr(next, segPt) < Epsilon*Epsilon {
			break
		}
		segPt = next
		boxPt = ClosestPointOnAABB(segPt, box)
	}
	return segPt, boxPt
}

// SegmentAABBDistance returns the distance between a segment and a box,
// zero when they intersect.
func SegmentAABBDistance(seg Segment, box AABB) float32 {
	p, q := ClosestPointsSegmentAABB(seg, box)
	return math32.Sqrt(distSqr(p, q))
}
