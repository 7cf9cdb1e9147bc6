package physics

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Epsilon guards divisions and degeneracy checks throughout the kernels.
const Epsilon = 1e-5

// worldUp is the fallback separation direction when a penetration normal
// is otherwise undefined (coincident centers).
var worldUp = rl.Vector3{X: 0, Y: 1, Z: 0}

// clamp restricts a value to a range
func clamp(v, min, max float32) float32 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func lenSqr(v rl.Vector3) float32 {
	return rl.Vector3DotProduct(v, v)
}

func distSqr(a, b rl.Vector3) float32 {
	return lenSqr(rl.Vector3Subtract(a, b))
}

func vector3Min(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Min(a.X, b.X),
		Y: math32.Min(a.Y, b.Y),
		Z: math32.Min(a.Z, b.Z),
	}
}

func vector3Max(a, b rl.Vector3) rl.Vector3 {
	return rl.Vector3{
		X: math32.Max(a.X, b.X),
		Y: math32.Max(a.Y, b.Y),
		Z: math32.Max(a.Z, b.Z),
	}
}

// perpendicularTo returns a unit vector perpendicular to axis. Used as the
// documented fallback normal when two capsule/sphere centers coincide.
func perpendicularTo(axis rl.Vector3) rl.Vector3 {
	if lenSqr(axis) < Epsilon*Epsilon {
		return worldUp
	}
	p := rl.Vector3CrossProduct(axis, worldUp)
	if lenSqr(p) < Epsilon*Epsilon {
		// Axis is vertical, any horizontal direction separates.
		return rl.Vector3{X: 1, Y: 0, Z: 0}
	}
	return rl.Vector3Normalize(p)
}
