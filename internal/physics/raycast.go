package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// RaycastHit describes where a ray struck a shape.
type RaycastHit struct {
	Point    rl.Vector3
	Normal   rl.Vector3
	Distance float32
}

// RaycastAABB intersects a ray with a box using per-axis slab clipping and
// recovers the face normal from the hit point. direction need not be
// normalized; Distance is in world units.
func RaycastAABB(origin, direction rl.Vector3, maxDistance float32, box AABB) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)

	var tmin, tmax float32

	// X slab
	if direction.X != 0 {
		t1 := (box.Min.X - origin.X) / direction.X
		t2 := (box.Max.X - origin.X) / direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X < box.Min.X || origin.X > box.Max.X {
		return RaycastHit{}, false
	} else {
		tmin = -math32.MaxFloat32
		tmax = math32.MaxFloat32
	}

	// Y slab
	if direction.Y != 0 {
		t1 := (box.Min.Y - origin.Y) / direction.Y
		t2 := (box.Max.Y - origin.Y) / direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y < box.Min.Y || origin.Y > box.Max.Y {
		return RaycastHit{}, false
	}

	if tmin > tmax {
		return RaycastHit{}, false
	}

	// Z slab
	if direction.Z != 0 {
		t1 := (box.Min.Z - origin.Z) / direction.Z
		t2 := (box.Max.Z - origin.Z) / direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z < box.Min.Z || origin.Z > box.Max.Z {
		return RaycastHit{}, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return RaycastHit{}, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))

	// Recover the normal from whichever face the hit point lies on.
	var normal rl.Vector3
	epsilon := float32(0.001)
	if math32.Abs(point.X-box.Min.X) < epsilon {
		normal = rl.Vector3{X: -1}
	} else if math32.Abs(point.X-box.Max.X) < epsilon {
		normal = rl.Vector3{X: 1}
	} else if math32.Abs(point.Y-box.Min.Y) < epsilon {
		normal = rl.Vector3{Y: -1}
	} else if math32.Abs(point.Y-box.Max.Y) < epsilon {
		normal = rl.Vector3{Y: 1}
	} else if math32.Abs(point.Z-box.Min.Z) < epsilon {
		normal = rl.Vector3{Z: -1}
	} else {
		normal = rl.Vector3{Z: 1}
	}

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// RaycastSphere intersects a ray with a sphere by solving the quadratic.
func RaycastSphere(origin, direction rl.Vector3, maxDistance float32, s Sphere) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)

	oc := rl.Vector3Subtract(origin, s.Center)
	a := rl.Vector3DotProduct(direction, direction)
	b := 2.0 * rl.Vector3DotProduct(oc, direction)
	c := rl.Vector3DotProduct(oc, oc) - s.Radius*s.Radius

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return RaycastHit{}, false
	}

	t := (-b - math32.Sqrt(discriminant)) / (2 * a)
	if t < 0 {
		t = (-b + math32.Sqrt(discriminant)) / (2 * a)
	}
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := rl.Vector3Normalize(rl.Vector3Subtract(point, s.Center))

	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// RaycastTriangle intersects a ray with a triangle (Moller-Trumbore).
// Degenerate triangles never hit. The returned normal faces the ray origin.
func RaycastTriangle(origin, direction rl.Vector3, maxDistance float32, tri Triangle) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)

	edge1 := rl.Vector3Subtract(tri.V1, tri.V0)
	edge2 := rl.Vector3Subtract(tri.V2, tri.V0)
	h := rl.Vector3CrossProduct(direction, edge2)
	a := rl.Vector3DotProduct(edge1, h)
	if math32.Abs(a) < Epsilon {
		// Parallel to the plane or degenerate.
		return RaycastHit{}, false
	}

	f := 1 / a
	s := rl.Vector3Subtract(origin, tri.V0)
	u := f * rl.Vector3DotProduct(s, h)
	if u < 0 || u > 1 {
		return RaycastHit{}, false
	}

	q := rl.Vector3CrossProduct(s, edge1)
	v := f * rl.Vector3DotProduct(direction, q)
	if v < 0 || u+v > 1 {
		return RaycastHit{}, false
	}

	t := f * rl.Vector3DotProduct(edge2, q)
	if t < 0 || t > maxDistance {
		return RaycastHit{}, false
	}

	point := rl.Vector3Add(origin, rl.Vector3Scale(direction, t))
	normal := tri.Normal()
	if rl.Vector3DotProduct(normal, direction) > 0 {
		normal = rl.Vector3Scale(normal, -1)
	}
	return RaycastHit{Point: point, Normal: normal, Distance: t}, true
}

// RaycastMesh intersects a ray with every mesh triangle and returns the
// closest hit.
func RaycastMesh(origin, direction rl.Vector3, maxDistance float32, mesh MeshData) (RaycastHit, bool) {
	var closest RaycastHit
	closest.Distance = maxDistance
	found := false

	mesh.EachTriangle(func(_ int, tri Triangle) bool {
		if hit, ok := RaycastTriangle(origin, direction, maxDistance, tri); ok {
			if !found || hit.Distance < closest.Distance {
				closest = hit
				found = true
			}
		}
		return true
	})
	return closest, found
}

// RaycastModel intersects a ray with every sub-mesh of a model and returns
// the globally closest hit.
func RaycastModel(origin, direction rl.Vector3, maxDistance float32, model Model) (RaycastHit, bool) {
	var closest RaycastHit
	found := false
	for _, mesh := range model.Meshes {
		if hit, ok := RaycastMesh(origin, direction, maxDistance, mesh); ok {
			if !found || hit.Distance < closest.Distance {
				closest = hit
				found = true
			}
		}
	}
	return closest, found
}
