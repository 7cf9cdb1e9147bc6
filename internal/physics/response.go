package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SlideVelocity removes the component of velocity pointing into the surface,
// leaving the tangential component unchanged. normal must be unit length.
func SlideVelocity(velocity, normal rl.Vector3) rl.Vector3 {
	d := rl.Vector3DotProduct(velocity, normal)
	return rl.Vector3Subtract(velocity, rl.Vector3Scale(normal, d))
}

// BounceVelocity reflects velocity about normal, scaling the reflected
// normal component by bounciness in [0,1]. Zero bounciness is a pure slide,
// one is a perfectly elastic reflection. normal must be unit length.
func BounceVelocity(velocity, normal rl.Vector3, bounciness float32) rl.Vector3 {
	d := rl.Vector3DotProduct(velocity, normal)
	return rl.Vector3Subtract(velocity, rl.Vector3Scale(normal, (1+bounciness)*d))
}

// slideMove applies the single-iteration slide rule: move to the first time
// of impact, re-project the remaining displacement against the contact
// normal, and attempt the remainder once more. Multi-bounce resolution
// within one step is out of contract.
func slideMove(velocity rl.Vector3, first SweepCollision, resweep func(moved, remaining rl.Vector3) SweepCollision) (rl.Vector3, SweepCollision) {
	if !first.Hit {
		return velocity, first
	}
	moved := rl.Vector3Scale(velocity, first.Time)
	remaining := SlideVelocity(rl.Vector3Scale(velocity, 1-first.Time), first.Normal)
	if lenSqr(remaining) < Epsilon*Epsilon {
		return moved, first
	}
	if second := resweep(moved, remaining); second.Hit {
		remaining = rl.Vector3Scale(remaining, second.Time)
	}
	return rl.Vector3Add(moved, remaining), first
}

// SlideCapsuleAABB moves a capsule by velocity against a box, sliding along
// the contact when one occurs. It returns the movement actually applied and
// the first contact, whose Hit flag reports whether sliding happened.
func SlideCapsuleAABB(c Capsule, velocity rl.Vector3, box AABB) (rl.Vector3, SweepCollision) {
	first := SweepCapsuleAABB(c, velocity, box)
	return slideMove(velocity, first, func(moved, remaining rl.Vector3) SweepCollision {
		return SweepCapsuleAABB(c.Translated(moved), remaining, box)
	})
}

// SlideCapsuleMesh is SlideCapsuleAABB against a triangle mesh.
func SlideCapsuleMesh(c Capsule, velocity rl.Vector3, mesh MeshData) (rl.Vector3, SweepCollision) {
	first := SweepCapsuleMesh(c, velocity, mesh)
	return slideMove(velocity, first, func(moved, remaining rl.Vector3) SweepCollision {
		return SweepCapsuleMesh(c.Translated(moved), remaining, mesh)
	})
}

// SlideCapsuleModel is SlideCapsuleAABB against a multi-mesh model.
func SlideCapsuleModel(c Capsule, velocity rl.Vector3, model Model) (rl.Vector3, SweepCollision) {
	first := SweepCapsuleModel(c, velocity, model)
	return slideMove(velocity, first, func(moved, remaining rl.Vector3) SweepCollision {
		return SweepCapsuleModel(c.Translated(moved), remaining, model)
	})
}

// SlideSphereAABB moves a sphere by velocity against a box, sliding along
// the contact when one occurs.
func SlideSphereAABB(s Sphere, velocity rl.Vector3, box AABB) (rl.Vector3, SweepCollision) {
	first := SweepSphereAABB(s, velocity, box)
	return slideMove(velocity, first, func(moved, remaining rl.Vector3) SweepCollision {
		return SweepSphereAABB(s.Translated(moved), remaining, box)
	})
}

// SlideSphereMesh is SlideSphereAABB against a triangle mesh.
func SlideSphereMesh(s Sphere, velocity rl.Vector3, mesh MeshData) (rl.Vector3, SweepCollision) {
	first := SweepSphereMesh(s, velocity, mesh)
	return slideMove(velocity, first, func(moved, remaining rl.Vector3) SweepCollision {
		return SweepSphereMesh(s.Translated(moved), remaining, mesh)
	})
}

// DepenetrateCapsuleAABB pushes the capsule out of the box along the MTV
// when they overlap, reporting the depth pushed.
func DepenetrateCapsuleAABB(c *Capsule, box AABB) (float32, bool) {
	pen := OverlapCapsuleAABB(*c, box)
	if !pen.Colliding {
		return 0, false
	}
	*c = c.Translated(pen.MTV())
	return pen.Depth, true
}

// DepenetrateCapsuleSphere pushes the capsule out of the sphere.
func DepenetrateCapsuleSphere(c *Capsule, s Sphere) (float32, bool) {
	pen := OverlapCapsuleSphere(*c, s)
	if !pen.Colliding {
		return 0, false
	}
	*c = c.Translated(pen.MTV())
	return pen.Depth, true
}

// DepenetrateCapsuleCapsule pushes the first capsule out of the second.
func DepenetrateCapsuleCapsule(c *Capsule, other Capsule) (float32, bool) {
	pen := OverlapCapsuleCapsule(*c, other)
	if !pen.Colliding {
		return 0, false
	}
	*c = c.Translated(pen.MTV())
	return pen.Depth, true
}

// DepenetrateSphereAABB pushes the sphere out of the box.
func DepenetrateSphereAABB(s *Sphere, box AABB) (float32, bool) {
	pen := OverlapSphereAABB(*s, box)
	if !pen.Colliding {
		return 0, false
	}
	*s = s.Translated(pen.MTV())
	return pen.Depth, true
}

// depenetratePasses bounds mesh depenetration: pushing out of one triangle
// can push into a neighbor, so a few passes run until the shape is free.
const depenetratePasses = 4

// DepenetrateCapsuleMesh pushes the capsule out of a mesh, iterating because
// resolving one triangle can introduce overlap with an adjacent one. It
// returns the total depth pushed across passes.
func DepenetrateCapsuleMesh(c *Capsule, mesh MeshData) (float32, bool) {
	total := float32(0)
	moved := false
	for i := 0; i < depenetratePasses; i++ {
		pen := OverlapCapsuleMesh(*c, mesh)
		if !pen.Colliding {
			break
		}
		*c = c.Translated(pen.MTV())
		total += pen.Depth
		moved = true
		if pen.Depth < Epsilon {
			break
		}
	}
	return total, moved
}

// DepenetrateSphereMesh pushes the sphere out of a mesh, iterating like
// DepenetrateCapsuleMesh.
func DepenetrateSphereMesh(s *Sphere, mesh MeshData) (float32, bool) {
	total := float32(0)
	moved := false
	for i := 0; i < depenetratePasses; i++ {
		pen := OverlapSphereMesh(*s, mesh)
		if !pen.Colliding {
			break
		}
		*s = s.Translated(pen.MTV())
		total += pen.Depth
		moved = true
		if pen.Depth < Epsilon {
			break
		}
	}
	return total, moved
}

// groundedResult merges the two ways a shape can be grounded: already
// resting in contact (penetration counts as a t=0 hit), or a short downward
// sweep finding support within checkDistance.
func groundedResult(pen Penetration, lowest rl.Vector3, sweep SweepCollision) (SweepCollision, bool) {
	if pen.Colliding {
		return SweepCollision{Hit: true, Time: 0, Point: lowest, Normal: pen.Normal}, true
	}
	return sweep, sweep.Hit
}

// GroundedCapsuleAABB reports whether the capsule stands on the box within
// checkDistance, with the supporting contact when it does.
func GroundedCapsuleAABB(c Capsule, checkDistance float32, box AABB) (SweepCollision, bool) {
	down := rl.Vector3{Y: -checkDistance}
	return groundedResult(OverlapCapsuleAABB(c, box), c.Lowest(), SweepCapsuleAABB(c, down, box))
}

// GroundedCapsuleMesh reports whether the capsule stands on the mesh within
// checkDistance.
func GroundedCapsuleMesh(c Capsule, checkDistance float32, mesh MeshData) (SweepCollision, bool) {
	down := rl.Vector3{Y: -checkDistance}
	return groundedResult(OverlapCapsuleMesh(c, mesh), c.Lowest(), SweepCapsuleMesh(c, down, mesh))
}

// GroundedCapsuleModel reports whether the capsule stands on any sub-mesh of
// the model within checkDistance.
func GroundedCapsuleModel(c Capsule, checkDistance float32, model Model) (SweepCollision, bool) {
	down := rl.Vector3{Y: -checkDistance}
	return groundedResult(OverlapCapsuleModel(c, model), c.Lowest(), SweepCapsuleModel(c, down, model))
}

// GroundedSphereAABB reports whether the sphere rests on the box within
// checkDistance.
func GroundedSphereAABB(s Sphere, checkDistance float32, box AABB) (SweepCollision, bool) {
	down := rl.Vector3{Y: -checkDistance}
	lowest := s.Center
	lowest.Y -= s.Radius
	return groundedResult(OverlapSphereAABB(s, box), lowest, SweepSphereAABB(s, down, box))
}

// GroundedSphereMesh reports whether the sphere rests on the mesh within
// checkDistance.
func GroundedSphereMesh(s Sphere, checkDistance float32, mesh MeshData) (SweepCollision, bool) {
	down := rl.Vector3{Y: -checkDistance}
	lowest := s.Center
	lowest.Y -= s.Radius
	return groundedResult(OverlapSphereMesh(s, mesh), lowest, SweepSphereMesh(s, down, mesh))
}
