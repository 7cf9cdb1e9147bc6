package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Capsule is a swept-sphere volume between Start and End.
// Start and End may coincide, which degenerates to a sphere.
type Capsule struct {
	Start  rl.Vector3
	End    rl.Vector3
	Radius float32
}

// Segment returns the capsule's core segment.
func (c Capsule) Segment() Segment {
	return Segment{Start: c.Start, End: c.End}
}

// Translated returns the capsule moved by offset.
func (c Capsule) Translated(offset rl.Vector3) Capsule {
	return Capsule{
		Start:  rl.Vector3Add(c.Start, offset),
		End:    rl.Vector3Add(c.End, offset),
		Radius: c.Radius,
	}
}

// Bounds returns the capsule's axis-aligned bounding box.
func (c Capsule) Bounds() AABB {
	lo := vector3Min(c.Start, c.End)
	hi := vector3Max(c.Start, c.End)
	r := rl.Vector3{X: c.Radius, Y: c.Radius, Z: c.Radius}
	return AABB{
		Min: rl.Vector3Subtract(lo, r),
		Max: rl.Vector3Add(hi, r),
	}
}

// Lowest returns the lowest point of the capsule along world -Y.
func (c Capsule) Lowest() rl.Vector3 {
	bottom := c.Start
	if c.End.Y < c.Start.Y {
		bottom = c.End
	}
	bottom.Y -= c.Radius
	return bottom
}

// Sphere is a center plus radius.
type Sphere struct {
	Center rl.Vector3
	Radius float32
}

// Translated returns the sphere moved by offset.
func (s Sphere) Translated(offset rl.Vector3) Sphere {
	return Sphere{Center: rl.Vector3Add(s.Center, offset), Radius: s.Radius}
}

// Bounds returns the sphere's axis-aligned bounding box.
func (s Sphere) Bounds() AABB {
	r := rl.Vector3{X: s.Radius, Y: s.Radius, Z: s.Radius}
	return AABB{
		Min: rl.Vector3Subtract(s.Center, r),
		Max: rl.Vector3Add(s.Center, r),
	}
}

// AABB is an axis-aligned box. Min must be componentwise <= Max.
type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: size.X / 2, Y: size.Y / 2, Z: size.Z / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

// Center returns the box center.
func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// Expanded returns the box grown by r on every face.
func (a AABB) Expanded(r float32) AABB {
	e := rl.Vector3{X: r, Y: r, Z: r}
	return AABB{
		Min: rl.Vector3Subtract(a.Min, e),
		Max: rl.Vector3Add(a.Max, e),
	}
}

// Triangle is a single world-space mesh face.
type Triangle struct {
	V0, V1, V2 rl.Vector3
}

// Normal returns the unit face normal, or the zero vector when the
// triangle is degenerate (collinear vertices).
func (t Triangle) Normal() rl.Vector3 {
	edge1 := rl.Vector3Subtract(t.V1, t.V0)
	edge2 := rl.Vector3Subtract(t.V2, t.V0)
	n := rl.Vector3CrossProduct(edge1, edge2)
	if lenSqr(n) < Epsilon*Epsilon {
		return rl.Vector3Zero()
	}
	return rl.Vector3Normalize(n)
}

// IsDegenerate reports whether the triangle has (near) zero area.
func (t Triangle) IsDegenerate() bool {
	edge1 := rl.Vector3Subtract(t.V1, t.V0)
	edge2 := rl.Vector3Subtract(t.V2, t.V0)
	return lenSqr(rl.Vector3CrossProduct(edge1, edge2)) < Epsilon*Epsilon
}

// Bounds returns the triangle's axis-aligned bounding box.
func (t Triangle) Bounds() AABB {
	return AABB{
		Min: vector3Min(vector3Min(t.V0, t.V1), t.V2),
		Max: vector3Max(vector3Max(t.V0, t.V1), t.V2),
	}
}

// Segment is a line segment between two points. Start and End may coincide.
type Segment struct {
	Start rl.Vector3
	End   rl.Vector3
}
