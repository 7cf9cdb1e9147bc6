package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Penetration is the result of an overlap test. Normal points from the
// target toward the queried shape, so displacing the queried shape by MTV
// resolves the overlap. Depth and Normal are meaningless when Colliding is
// false.
type Penetration struct {
	Colliding bool
	Depth     float32
	Normal    rl.Vector3
}

// MTV returns the minimum translation vector, Normal scaled by Depth.
func (p Penetration) MTV() rl.Vector3 {
	return rl.Vector3Scale(p.Normal, p.Depth)
}

// spherePenetration finalizes a test that has been reduced to a sphere at
// center against a closest point on the target. fallback separates the pair
// when the two coincide.
func spherePenetration(center rl.Vector3, radius float32, closest, fallback rl.Vector3) Penetration {
	diff := rl.Vector3Subtract(center, closest)
	distSq := lenSqr(diff)
	if distSq > radius*radius {
		return Penetration{}
	}
	dist := math32.Sqrt(distSq)
	if dist < Epsilon {
		return Penetration{Colliding: true, Depth: radius, Normal: fallback}
	}
	return Penetration{
		Colliding: true,
		Depth:     radius - dist,
		Normal:    rl.Vector3Scale(diff, 1/dist),
	}
}

func insideAABB(p rl.Vector3, box AABB) bool {
	return p.X >= box.Min.X && p.X <= box.Max.X &&
		p.Y >= box.Min.Y && p.Y <= box.Max.Y &&
		p.Z >= box.Min.Z && p.Z <= box.Max.Z
}

// aabbInteriorFace returns the distance from an interior point to the
// nearest box face and that face's outward normal. Faces are checked in
// -X,+X,-Y,+Y,-Z,+Z order; the first strictly smaller distance wins.
func aabbInteriorFace(p rl.Vector3, box AABB) (float32, rl.Vector3) {
	dist := p.X - box.Min.X
	normal := rl.Vector3{X: -1}

	if d := box.Max.X - p.X; d < dist {
		dist, normal = d, rl.Vector3{X: 1}
	}
	if d := p.Y - box.Min.Y; d < dist {
		dist, normal = d, rl.Vector3{Y: -1}
	}
	if d := box.Max.Y - p.Y; d < dist {
		dist, normal = d, rl.Vector3{Y: 1}
	}
	if d := p.Z - box.Min.Z; d < dist {
		dist, normal = d, rl.Vector3{Z: -1}
	}
	if d := box.Max.Z - p.Z; d < dist {
		dist, normal = d, rl.Vector3{Z: 1}
	}
	return dist, normal
}

// aabbSegmentInteriorFace picks the face needing the least push to clear a
// segment that reaches inside the box. Plane distance is linear along the
// segment, so the point deepest past each face is always an endpoint. Same
// face order and tie-break as aabbInteriorFace.
func aabbSegmentInteriorFace(seg Segment, box AABB) (float32, rl.Vector3) {
	lo := vector3Min(seg.Start, seg.End)
	hi := vector3Max(seg.Start, seg.End)

	dist := hi.X - box.Min.X
	normal := rl.Vector3{X: -1}

	if d := box.Max.X - lo.X; d < dist {
		dist, normal = d, rl.Vector3{X: 1}
	}
	if d := hi.Y - box.Min.Y; d < dist {
		dist, normal = d, rl.Vector3{Y: -1}
	}
	if d := box.Max.Y - lo.Y; d < dist {
		dist, normal = d, rl.Vector3{Y: 1}
	}
	if d := hi.Z - box.Min.Z; d < dist {
		dist, normal = d, rl.Vector3{Z: -1}
	}
	if d := box.Max.Z - lo.Z; d < dist {
		dist, normal = d, rl.Vector3{Z: 1}
	}
	return dist, normal
}

// OverlapSphereSphere tests two spheres. Coincident centers separate along
// world up.
func OverlapSphereSphere(a, b Sphere) Penetration {
	diff := rl.Vector3Subtract(a.Center, b.Center)
	rsum := a.Radius + b.Radius
	distSq := lenSqr(diff)
	if distSq > rsum*rsum {
		return Penetration{}
	}
	dist := math32.Sqrt(distSq)
	if dist < Epsilon {
		return Penetration{Colliding: true, Depth: rsum, Normal: worldUp}
	}
	return Penetration{
		Colliding: true,
		Depth:     rsum - dist,
		Normal:    rl.Vector3Scale(diff, 1/dist),
	}
}

// OverlapSphereAABB tests a sphere against a box. A center inside the box is
// pushed out through the nearest face.
func OverlapSphereAABB(s Sphere, box AABB) Penetration {
	if insideAABB(s.Center, box) {
		dist, normal := aabbInteriorFace(s.Center, box)
		return Penetration{Colliding: true, Depth: s.Radius + dist, Normal: normal}
	}
	closest := ClosestPointOnAABB(s.Center, box)
	_, faceNormal := aabbInteriorFace(closest, box)
	return spherePenetration(s.Center, s.Radius, closest, faceNormal)
}

// OverlapSphereTriangle tests a sphere against a single triangle. A center
// exactly on the triangle is pushed along the face normal.
func OverlapSphereTriangle(s Sphere, tri Triangle) Penetration {
	closest := ClosestPointOnTriangle(s.Center, tri)
	fallback := tri.Normal()
	if lenSqr(fallback) == 0 {
		fallback = worldUp
	}
	return spherePenetration(s.Center, s.Radius, closest, fallback)
}

// OverlapCapsuleSphere tests a capsule against a sphere by treating the
// capsule as a sphere at the closest point on its segment. Coincident
// centers separate perpendicular to the capsule axis.
func OverlapCapsuleSphere(c Capsule, s Sphere) Penetration {
	closest := ClosestPointOnSegment(s.Center, c.Start, c.End)
	diff := rl.Vector3Subtract(closest, s.Center)
	rsum := c.Radius + s.Radius
	distSq := lenSqr(diff)
	if distSq > rsum*rsum {
		return Penetration{}
	}
	dist := math32.Sqrt(distSq)
	if dist < Epsilon {
		axis := rl.Vector3Subtract(c.End, c.Start)
		return Penetration{Colliding: true, Depth: rsum, Normal: perpendicularTo(axis)}
	}
	return Penetration{
		Colliding: true,
		Depth:     rsum - dist,
		Normal:    rl.Vector3Scale(diff, 1/dist),
	}
}

// OverlapSphereCapsule is OverlapCapsuleSphere with the sphere as the moving
// shape, so the normal is flipped to push the sphere out of the capsule.
func OverlapSphereCapsule(s Sphere, c Capsule) Penetration {
	pen := OverlapCapsuleSphere(c, s)
	pen.Normal = rl.Vector3Scale(pen.Normal, -1)
	return pen
}

// OverlapCapsuleCapsule tests two capsules via the closest points between
// their segments.
func OverlapCapsuleCapsule(a, b Capsule) Penetration {
	pa, pb := ClosestPointsOnSegments(a.Segment(), b.Segment())
	diff := rl.Vector3Subtract(pa, pb)
	rsum := a.Radius + b.Radius
	distSq := lenSqr(diff)
	if distSq > rsum*rsum {
		return Penetration{}
	}
	dist := math32.Sqrt(distSq)
	if dist < Epsilon {
		axis := rl.Vector3Subtract(a.End, a.Start)
		return Penetration{Colliding: true, Depth: rsum, Normal: perpendicularTo(axis)}
	}
	return Penetration{
		Colliding: true,
		Depth:     rsum - dist,
		Normal:    rl.Vector3Scale(diff, 1/dist),
	}
}

// OverlapCapsuleAABB tests a capsule against a box. When the capsule segment
// reaches inside the box the whole segment is pushed out through one face,
// so the reported depth clears the endpoint deepest past that face. A
// segment resting exactly on the surface separates along the face normal.
func OverlapCapsuleAABB(c Capsule, box AABB) Penetration {
	segPt, boxPt := ClosestPointsSegmentAABB(c.Segment(), box)
	if insideAABB(segPt, box) {
		dist, normal := aabbSegmentInteriorFace(c.Segment(), box)
		return Penetration{Colliding: true, Depth: c.Radius + dist, Normal: normal}
	}
	_, faceNormal := aabbInteriorFace(boxPt, box)
	return spherePenetration(segPt, c.Radius, boxPt, faceNormal)
}

// OverlapCapsuleTriangle tests a capsule against a single triangle. A
// segment piercing or resting on the face is pushed toward the side holding
// more of the segment, far enough to clear the endpoint on the other side.
func OverlapCapsuleTriangle(c Capsule, tri Triangle) Penetration {
	segPt, triPt := ClosestPointsSegmentTriangle(c.Segment(), tri)
	n := tri.Normal()
	if lenSqr(n) > 0 && distSqr(segPt, triPt) < Epsilon*Epsilon {
		da := rl.Vector3DotProduct(rl.Vector3Subtract(c.Start, tri.V0), n)
		db := rl.Vector3DotProduct(rl.Vector3Subtract(c.End, tri.V0), n)
		if da+db < 0 {
			n = rl.Vector3Scale(n, -1)
			da, db = -da, -db
		}
		deepest := math32.Min(da, db)
		if deepest > 0 {
			deepest = 0
		}
		return Penetration{Colliding: true, Depth: c.Radius - deepest, Normal: n}
	}
	if lenSqr(n) == 0 {
		n = perpendicularTo(rl.Vector3Subtract(c.End, c.Start))
	}
	return spherePenetration(segPt, c.Radius, triPt, n)
}

// OverlapSphereMesh tests a sphere against every mesh triangle and reports
// the penetration against the closest one. Callers are expected to have
// culled candidate triangles with their own broad phase; this walk is
// O(triangles).
func OverlapSphereMesh(s Sphere, mesh MeshData) Penetration {
	best := Penetration{}
	bestDist := float32(math32.MaxFloat32)
	mesh.EachTriangle(func(_ int, tri Triangle) bool {
		closest := ClosestPointOnTriangle(s.Center, tri)
		if d := distSqr(s.Center, closest); d < bestDist {
			if pen := OverlapSphereTriangle(s, tri); pen.Colliding {
				best, bestDist = pen, d
			}
		}
		return true
	})
	return best
}

// OverlapCapsuleMesh tests a capsule against every mesh triangle and reports
// the penetration against the closest one.
func OverlapCapsuleMesh(c Capsule, mesh MeshData) Penetration {
	best := Penetration{}
	bestDist := float32(math32.MaxFloat32)
	mesh.EachTriangle(func(_ int, tri Triangle) bool {
		segPt, triPt := ClosestPointsSegmentTriangle(c.Segment(), tri)
		if d := distSqr(segPt, triPt); d < bestDist {
			if pen := OverlapCapsuleTriangle(c, tri); pen.Colliding {
				best, bestDist = pen, d
			}
		}
		return true
	})
	return best
}

// OverlapSphereModel folds OverlapSphereMesh over every sub-mesh, keeping
// the deepest penetration. Within one mesh the closest triangle wins, which
// keeps contact normals stable on shared edges of a connected surface;
// across sub-meshes there is no shared surface, so the deepest overlap is
// the one worth resolving first.
func OverlapSphereModel(s Sphere, model Model) Penetration {
	best := Penetration{}
	for _, mesh := range model.Meshes {
		if pen := OverlapSphereMesh(s, mesh); pen.Colliding && (!best.Colliding || pen.Depth > best.Depth) {
			best = pen
		}
	}
	return best
}

// OverlapCapsuleModel folds OverlapCapsuleMesh over every sub-mesh, keeping
// the deepest penetration. As with OverlapSphereModel, closest-triangle
// selection applies within a mesh and deepest-overlap selection across
// sub-meshes.
func OverlapCapsuleModel(c Capsule, model Model) Penetration {
	best := Penetration{}
	for _, mesh := range model.Meshes {
		if pen := OverlapCapsuleMesh(c, mesh); pen.Colliding && (!best.Colliding || pen.Depth > best.Depth) {
			best = pen
		}
	}
	return best
}
