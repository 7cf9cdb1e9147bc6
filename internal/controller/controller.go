// Package controller implements a capsule character controller on top of
// the stateless internal/physics kernels: slide-based movement, gravity,
// stair stepping and ground detection, similar to Unity's
// CharacterController.
package controller

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"kine3d/internal/physics"
)

// World is the static collision geometry a controller moves against. The
// controller only reads it; ownership stays with the caller.
type World struct {
	Boxes  []physics.AABB
	Models []physics.Model
}

// CharacterController handles character movement with collision detection,
// gravity, and stair stepping.
type CharacterController struct {
	// Configuration
	Height     float32 // Total height of the capsule
	Radius     float32 // Radius of the capsule
	StepHeight float32 // Max height of steps to climb

	// Gravity
	UseGravity bool
	Gravity    float32 // Gravity strength (positive = down)

	// Position is the capsule center.
	Position rl.Vector3

	// Runtime state
	velocity rl.Vector3
	grounded bool
}

// NewCharacterController creates a character controller with defaults.
func NewCharacterController() *CharacterController {
	return &CharacterController{
		Height:     1.8,
		Radius:     0.4,
		StepHeight: 0.4,
		UseGravity: true,
		Gravity:    20.0,
	}
}

// Capsule returns the controller's collision capsule at its current
// position. A Height at or below the diameter degenerates to a sphere.
func (c *CharacterController) Capsule() physics.Capsule {
	half := c.Height/2 - c.Radius
	if half < 0 {
		half = 0
	}
	return physics.Capsule{
		Start:  rl.Vector3{X: c.Position.X, Y: c.Position.Y - half, Z: c.Position.Z},
		End:    rl.Vector3{X: c.Position.X, Y: c.Position.Y + half, Z: c.Position.Z},
		Radius: c.Radius,
	}
}

// Move moves the character by the given motion vector, handling collisions
// and steps. Returns the actual displacement after collision resolution.
func (c *CharacterController) Move(world *World, motion rl.Vector3) rl.Vector3 {
	original := c.Position

	horizontal := rl.Vector3{X: motion.X, Z: motion.Z}
	if horizontal.X != 0 || horizontal.Z != 0 {
		c.moveAxis(world, horizontal, true)
	}

	vertical := rl.Vector3{Y: motion.Y}
	if vertical.Y != 0 {
		c.moveAxis(world, vertical, false)
	}

	c.depenetrate(world)

	return rl.Vector3Subtract(c.Position, original)
}

// moveAxis sweeps the capsule along one motion component against every
// collider, slides along the earliest contact, and climbs steps on
// horizontal moves.
func (c *CharacterController) moveAxis(world *World, motion rl.Vector3, horizontal bool) {
	capsule := c.Capsule()

	best := physics.SweepCollision{}
	var hitBox *physics.AABB
	for i := range world.Boxes {
		if hit := physics.SweepCapsuleAABB(capsule, motion, world.Boxes[i]); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
			hitBox = &world.Boxes[i]
		}
	}
	for i := range world.Models {
		if hit := physics.SweepCapsuleModel(capsule, motion, world.Models[i]); hit.Hit && (!best.Hit || hit.Time < best.Time) {
			best = hit
			hitBox = nil
		}
	}

	if !best.Hit {
		c.Position = rl.Vector3Add(c.Position, motion)
		return
	}

	if horizontal && hitBox != nil && c.tryStepUp(world, motion, *hitBox) {
		return
	}

	moved := rl.Vector3Scale(motion, best.Time)
	remaining := physics.SlideVelocity(rl.Vector3Scale(motion, 1-best.Time), best.Normal)
	if remaining.X != 0 || remaining.Y != 0 || remaining.Z != 0 {
		shifted := capsule.Translated(moved)
		scale := float32(1)
		for i := range world.Boxes {
			if hit := physics.SweepCapsuleAABB(shifted, remaining, world.Boxes[i]); hit.Hit && hit.Time < scale {
				scale = hit.Time
			}
		}
		for i := range world.Models {
			if hit := physics.SweepCapsuleModel(shifted, remaining, world.Models[i]); hit.Hit && hit.Time < scale {
				scale = hit.Time
			}
		}
		moved = rl.Vector3Add(moved, rl.Vector3Scale(remaining, scale))
	}
	c.Position = rl.Vector3Add(c.Position, moved)

	// Landing on something during a downward move grounds the character.
	if !horizontal && motion.Y < 0 && best.Normal.Y > 0.5 {
		c.grounded = true
		c.velocity.Y = 0
	}
}

// tryStepUp climbs box obstacles no taller than StepHeight above the feet.
func (c *CharacterController) tryStepUp(world *World, motion rl.Vector3, box physics.AABB) bool {
	feetY := c.Position.Y - c.Height/2
	step := box.Max.Y - feetY
	if step <= 0 || step > c.StepHeight {
		return false
	}

	raised := rl.Vector3Add(c.Position, rl.Vector3{Y: step + 0.01})
	raised = rl.Vector3Add(raised, motion)
	saved := c.Position
	c.Position = raised
	capsule := c.Capsule()
	c.Position = saved

	for i := range world.Boxes {
		if physics.OverlapCapsuleAABB(capsule, world.Boxes[i]).Colliding {
			return false
		}
	}
	for i := range world.Models {
		if physics.OverlapCapsuleModel(capsule, world.Models[i]).Colliding {
			return false
		}
	}

	c.Position = raised
	c.grounded = true
	return true
}

// depenetrate pushes the capsule out of anything it still overlaps after
// the sweeps (spawn overlap, accumulated drift).
func (c *CharacterController) depenetrate(world *World) {
	capsule := c.Capsule()
	center := rl.Vector3Scale(rl.Vector3Add(capsule.Start, capsule.End), 0.5)

	for i := range world.Boxes {
		if _, ok := physics.DepenetrateCapsuleAABB(&capsule, world.Boxes[i]); ok {
			pushed := rl.Vector3Scale(rl.Vector3Add(capsule.Start, capsule.End), 0.5)
			offset := rl.Vector3Subtract(pushed, center)
			if offset.Y > 0 {
				c.grounded = true
				c.velocity.Y = 0
			}
			center = pushed
		}
	}
	for i := range world.Models {
		for _, mesh := range world.Models[i].Meshes {
			if _, ok := physics.DepenetrateCapsuleMesh(&capsule, mesh); ok {
				pushed := rl.Vector3Scale(rl.Vector3Add(capsule.Start, capsule.End), 0.5)
				offset := rl.Vector3Subtract(pushed, center)
				if offset.Y > 0 {
					c.grounded = true
					c.velocity.Y = 0
				}
				center = pushed
			}
		}
	}

	c.Position = center
}

// SimpleMove moves the character with gravity applied automatically.
func (c *CharacterController) SimpleMove(world *World, speed rl.Vector3, deltaTime float32) {
	if c.UseGravity {
		if !c.grounded || c.velocity.Y > 0 {
			c.velocity.Y -= c.Gravity * deltaTime
		} else {
			// Grounded and not jumping - keep small downward velocity to detect ground
			c.velocity.Y = -0.1
		}
	}

	motion := rl.Vector3{
		X: speed.X * deltaTime,
		Y: c.velocity.Y * deltaTime,
		Z: speed.Z * deltaTime,
	}

	// Reset grounded before move (will be set if we land)
	c.grounded = false

	c.Move(world, motion)
}

// IsGrounded returns whether the character is on the ground.
func (c *CharacterController) IsGrounded() bool {
	return c.grounded
}

// SetGrounded manually sets the grounded state.
func (c *CharacterController) SetGrounded(grounded bool) {
	c.grounded = grounded
}

// GetVelocity returns the current velocity.
func (c *CharacterController) GetVelocity() rl.Vector3 {
	return c.velocity
}

// SetVelocityY sets the vertical velocity (for jumping).
func (c *CharacterController) SetVelocityY(vy float32) {
	c.velocity.Y = vy
}
