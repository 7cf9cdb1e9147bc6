package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SweepCollision is the result of a continuous (swept) query. Time is the
// fraction of the supplied displacement at which contact first occurs,
// always within [0,1] when Hit is true. Point lies on the target, Normal
// points from the target toward the swept shape.
//
// Shapes that already overlap at the start of the sweep report no hit;
// resolving those is the depenetration kernel's contract.
type SweepCollision struct {
	Hit    bool
	Time   float32
	Point  rl.Vector3
	Normal rl.Vector3
}

const (
	// toiTolerance is the contact slop for iterative time-of-impact
	// advancement.
	toiTolerance = 1e-3
	// maxAdvanceIterations bounds conservative advancement; exhausting it
	// (grazing trajectories) reports no hit.
	maxAdvanceIterations = 64
)

// SweepSpherePoint sweeps a sphere along velocity against a static point,
// solving the quadratic for the swept tube.
func SweepSpherePoint(s Sphere, velocity, p rl.Vector3) SweepCollision {
	m := rl.Vector3Subtract(s.Center, p)
	c := lenSqr(m) - s.Radius*s.Radius
	if c < -Epsilon {
		return SweepCollision{}
	}
	a := lenSqr(velocity)
	if a < Epsilon*Epsilon {
		return SweepCollision{}
	}
	b := rl.Vector3DotProduct(m, velocity)
	if b >= 0 {
		// Moving away.
		return SweepCollision{}
	}
	disc := b*b - a*c
	if disc < 0 {
		return SweepCollision{}
	}
	t := (-b - math32.Sqrt(disc)) / a
	if t < 0 {
		// Touching at the start counts as a t=0 contact.
		if c > Epsilon {
			return SweepCollision{}
		}
		t = 0
	}
	if t > 1 {
		return SweepCollision{}
	}
	at := rl.Vector3Add(s.Center, rl.Vector3Scale(velocity, t))
	return SweepCollision{
		Hit:    true,
		Time:   clamp(t, 0, 1),
		Point:  p,
		Normal: rl.Vector3Normalize(rl.Vector3Subtract(at, p)),
	}
}

// SweepSphereSegment sweeps a sphere against a static segment: the lateral
// (cylinder) surface first, then the endpoint caps. The earliest sub-hit
// wins.
func SweepSphereSegment(s Sphere, velocity rl.Vector3, seg Segment) SweepCollision {
	d := rl.Vector3Subtract(seg.End, seg.Start)
	dd := lenSqr(d)
	if dd < Epsilon*Epsilon {
		return SweepSpherePoint(s, velocity, seg.Start)
	}

	// Already overlapping the segment.
	start := ClosestPointOnSegment(s.Center, seg.Start, seg.End)
	if distSqr(s.Center, start) < (s.Radius-Epsilon)*(s.Radius-Epsilon) {
		return SweepCollision{}
	}

	segLen := math32.Sqrt(dd)
	dHat := rl.Vector3Scale(d, 1/segLen)

	m := rl.Vector3Subtract(s.Center, seg.Start)
	mPerp := rl.Vector3Subtract(m, rl.Vector3Scale(dHat, rl.Vector3DotProduct(m, dHat)))
	vPerp := rl.Vector3Subtract(velocity, rl.Vector3Scale(dHat, rl.Vector3DotProduct(velocity, dHat)))

	best := SweepCollision{}

	a := lenSqr(vPerp)
	if a > Epsilon*Epsilon {
		b := rl.Vector3DotProduct(mPerp, vPerp)
		c := lenSqr(mPerp) - s.Radius*s.Radius
		if disc := b*b - a*c; disc >= 0 {
			t := (-b - math32.Sqrt(disc)) / a
			if t >= 0 && t <= 1 {
				along := rl.Vector3DotProduct(rl.Vector3Add(m, rl.Vector3Scale(velocity, t)), dHat)
				if along >= 0 && along <= segLen {
					point := rl.Vector3Add(seg.Start, rl.Vector3Scale(dHat, along))
					at := rl.Vector3Add(s.Center, rl.Vector3Scale(velocity, t))
					best = SweepCollision{
						Hit:    true,
						Time:   t,
						Point:  point,
						Normal: rl.Vector3Normalize(rl.Vector3Subtract(at, point)),
					}
				}
			}
		}
	}

	for _, end := range [2]rl.Vector3{seg.Start, seg.End} {
		if hit := SweepSpherePoint(s, velocity, end); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
		}
	}
	return best
}

// SweepSphereTriangle sweeps a sphere against a triangle: the supporting
// plane first, falling back to the three edges (which cover the vertices via
// their caps) when the plane hit lands outside the face.
func SweepSphereTriangle(s Sphere, velocity rl.Vector3, tri Triangle) SweepCollision {
	if tri.IsDegenerate() {
		return sweepSphereTriangleEdges(s, velocity, tri)
	}

	closest := ClosestPointOnTriangle(s.Center, tri)
	if distSqr(s.Center, closest) < (s.Radius-Epsilon)*(s.Radius-Epsilon) {
		return SweepCollision{}
	}

	n := tri.Normal()
	dist0 := rl.Vector3DotProduct(rl.Vector3Subtract(s.Center, tri.V0), n)
	sign := float32(1)
	if dist0 < 0 {
		sign = -1
	}
	d0 := dist0 * sign
	nd := rl.Vector3DotProduct(velocity, n) * sign

	if nd < -Epsilon {
		t := (d0 - s.Radius) / -nd
		if t < 0 {
			t = 0
		}
		if t <= 1 {
			at := rl.Vector3Add(s.Center, rl.Vector3Scale(velocity, t))
			contact := rl.Vector3Subtract(at, rl.Vector3Scale(n, sign*s.Radius))
			if distSqr(contact, ClosestPointOnTriangle(contact, tri)) < Epsilon {
				return SweepCollision{
					Hit:    true,
					Time:   t,
					Point:  contact,
					Normal: rl.Vector3Scale(n, sign),
				}
			}
		}
	}

	return sweepSphereTriangleEdges(s, velocity, tri)
}

func sweepSphereTriangleEdges(s Sphere, velocity rl.Vector3, tri Triangle) SweepCollision {
	best := SweepCollision{}
	edges := [3]Segment{
		{Start: tri.V0, End: tri.V1},
		{Start: tri.V1, End: tri.V2},
		{Start: tri.V2, End: tri.V0},
	}
	for _, edge := range edges {
		if hit := SweepSphereSegment(s, velocity, edge); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
		}
	}
	return best
}

// SweepSphereAABB sweeps a sphere against a box with a slab test on the
// Minkowski-expanded box.
func SweepSphereAABB(s Sphere, velocity rl.Vector3, box AABB) SweepCollision {
	closest := ClosestPointOnAABB(s.Center, box)
	if distSqr(s.Center, closest) < (s.Radius-Epsilon)*(s.Radius-Epsilon) {
		return SweepCollision{}
	}
	if lenSqr(velocity) < Epsilon*Epsilon {
		return SweepCollision{}
	}

	expanded := box.Expanded(s.Radius)
	origins := [3]float32{s.Center.X, s.Center.Y, s.Center.Z}
	dirs := [3]float32{velocity.X, velocity.Y, velocity.Z}
	mins := [3]float32{expanded.Min.X, expanded.Min.Y, expanded.Min.Z}
	maxs := [3]float32{expanded.Max.X, expanded.Max.Y, expanded.Max.Z}

	tEnter := float32(-math32.MaxFloat32)
	tExit := float32(math32.MaxFloat32)
	enterAxis := -1
	enterSign := float32(0)

	for axis := 0; axis < 3; axis++ {
		if math32.Abs(dirs[axis]) < Epsilon {
			if origins[axis] < mins[axis] || origins[axis] > maxs[axis] {
				return SweepCollision{}
			}
			continue
		}
		t1 := (mins[axis] - origins[axis]) / dirs[axis]
		t2 := (maxs[axis] - origins[axis]) / dirs[axis]
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
			enterSign = sign
		}
		if t2 < tExit {
			tExit = t2
		}
	}

	if tEnter > tExit || tExit < 0 || tEnter > 1 {
		return SweepCollision{}
	}
	t := clamp(tEnter, 0, 1)

	at := rl.Vector3Add(s.Center, rl.Vector3Scale(velocity, t))
	point := ClosestPointOnAABB(at, box)
	normal := rl.Vector3Zero()
	switch enterAxis {
	case 0:
		normal = rl.Vector3{X: enterSign}
	case 1:
		normal = rl.Vector3{Y: enterSign}
	case 2:
		normal = rl.Vector3{Z: enterSign}
	default:
		return SweepCollision{}
	}
	if diff := rl.Vector3Subtract(at, point); lenSqr(diff) > Epsilon*Epsilon {
		normal = rl.Vector3Normalize(diff)
	}
	// A touch the sphere is moving away from (or alongside) never deepens.
	if rl.Vector3DotProduct(velocity, normal) >= 0 {
		return SweepCollision{}
	}
	return SweepCollision{Hit: true, Time: t, Point: point, Normal: normal}
}

// SweepSphereMesh sweeps a sphere against every mesh triangle, keeping the
// earliest time of impact. Equal times keep the first triangle in index
// order.
func SweepSphereMesh(s Sphere, velocity rl.Vector3, mesh MeshData) SweepCollision {
	best := SweepCollision{}
	mesh.EachTriangle(func(_ int, tri Triangle) bool {
		if hit := SweepSphereTriangle(s, velocity, tri); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
		}
		return true
	})
	return best
}

// SweepSphereModel folds SweepSphereMesh over every sub-mesh, keeping the
// earliest hit.
func SweepSphereModel(s Sphere, velocity rl.Vector3, model Model) SweepCollision {
	best := SweepCollision{}
	for _, mesh := range model.Meshes {
		if hit := SweepSphereMesh(s, velocity, mesh); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
		}
	}
	return best
}

// segmentDistance measures the gap between a capsule's core segment and a
// target, reporting the realizing pair of points.
type segmentDistance func(seg Segment) (dist float32, onSeg, onTarget rl.Vector3)

// sweepCapsule advances a capsule along velocity against an arbitrary
// distance function. Each step consumes the current gap at full speed, so
// contact can never be overshot; the iteration budget caps grazing
// trajectories that approach but never touch.
func sweepCapsule(c Capsule, velocity rl.Vector3, distFn segmentDistance) SweepCollision {
	speed := rl.Vector3Length(velocity)
	if speed < Epsilon {
		return SweepCollision{}
	}
	if d0, _, _ := distFn(c.Segment()); d0 < c.Radius-Epsilon {
		return SweepCollision{}
	}

	t := float32(0)
	for i := 0; i < maxAdvanceIterations; i++ {
		offset := rl.Vector3Scale(velocity, t)
		cur := Segment{
			Start: rl.Vector3Add(c.Start, offset),
			End:   rl.Vector3Add(c.End, offset),
		}
		dist, onSeg, onTarget := distFn(cur)
		gap := dist - c.Radius
		if gap <= toiTolerance {
			normal := rl.Vector3Subtract(onSeg, onTarget)
			if lenSqr(normal) < Epsilon*Epsilon {
				normal = perpendicularTo(rl.Vector3Subtract(c.End, c.Start))
			} else {
				normal = rl.Vector3Normalize(normal)
			}
			// Grazing contact: against a convex target the distance along a
			// linear motion is convex, so a non-approaching touch can never
			// turn into a hit later.
			if rl.Vector3DotProduct(velocity, normal) >= 0 {
				return SweepCollision{}
			}
			return SweepCollision{Hit: true, Time: clamp(t, 0, 1), Point: onTarget, Normal: normal}
		}
		t += gap / speed
		if t > 1 {
			return SweepCollision{}
		}
	}
	return SweepCollision{}
}

// SweepCapsuleAABB sweeps a capsule against a box.
func SweepCapsuleAABB(c Capsule, velocity rl.Vector3, box AABB) SweepCollision {
	return sweepCapsule(c, velocity, func(seg Segment) (float32, rl.Vector3, rl.Vector3) {
		p, q := ClosestPointsSegmentAABB(seg, box)
		return math32.Sqrt(distSqr(p, q)), p, q
	})
}

// SweepCapsuleTriangle sweeps a capsule against a single triangle.
func SweepCapsuleTriangle(c Capsule, velocity rl.Vector3, tri Triangle) SweepCollision {
	return sweepCapsule(c, velocity, func(seg Segment) (float32, rl.Vector3, rl.Vector3) {
		p, q := ClosestPointsSegmentTriangle(seg, tri)
		return math32.Sqrt(distSqr(p, q)), p, q
	})
}

// SweepCapsuleMesh sweeps a capsule against every mesh triangle and keeps
// the earliest contact. Each triangle gets its own advancement; triangles
// far from the path bail out after a step or two.
func SweepCapsuleMesh(c Capsule, velocity rl.Vector3, mesh MeshData) SweepCollision {
	best := SweepCollision{}
	mesh.EachTriangle(func(_ int, tri Triangle) bool {
		if hit := SweepCapsuleTriangle(c, velocity, tri); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
		}
		return true
	})
	return best
}

// SweepCapsuleModel folds SweepCapsuleMesh over every sub-mesh, keeping the
// earliest hit.
func SweepCapsuleModel(c Capsule, velocity rl.Vector3, model Model) SweepCollision {
	best := SweepCollision{}
	for _, mesh := range model.Meshes {
		if hit := SweepCapsuleMesh(c, velocity, mesh); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
		}
	}
	return best
}
