package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestRaycastAABB(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

	hit, ok := RaycastAABB(rl.Vector3{X: -5, Y: 0, Z: 0}, rl.Vector3{X: 1, Y: 0, Z: 0}, 100, box)
	if !ok {
		t.Fatal("Ray into the box should hit")
	}
	if !approx(hit.Distance, 4, 1e-4) {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if !vecApprox(hit.Point, rl.Vector3{X: -1, Y: 0, Z: 0}, 1e-4) {
		t.Errorf("Expected entry point (-1,0,0), got %v", hit.Point)
	}
	if !vecApprox(hit.Normal, rl.Vector3{X: -1, Y: 0, Z: 0}, 1e-4) {
		t.Errorf("Expected -X face normal, got %v", hit.Normal)
	}

	if _, ok := RaycastAABB(rl.Vector3{X: -5, Y: 0, Z: 0}, rl.Vector3{X: 1, Y: 0, Z: 0}, 3, box); ok {
		t.Error("Hit beyond maxDistance should be rejected")
	}
	if _, ok := RaycastAABB(rl.Vector3{X: -5, Y: 3, Z: 0}, rl.Vector3{X: 1, Y: 0, Z: 0}, 100, box); ok {
		t.Error("Ray passing above the box should miss")
	}
}

func TestRaycastAABBFromInside(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

	hit, ok := RaycastAABB(rl.Vector3{}, rl.Vector3{X: 1, Y: 0, Z: 0}, 100, box)
	if !ok {
		t.Fatal("Ray from inside should hit the exit face")
	}
	if !vecApprox(hit.Point, rl.Vector3{X: 1, Y: 0, Z: 0}, 1e-4) {
		t.Errorf("Expected exit point (1,0,0), got %v", hit.Point)
	}
}

func TestRaycastSphere(t *testing.T) {
	s := Sphere{Center: rl.Vector3{}, Radius: 1}

	hit, ok := RaycastSphere(rl.Vector3{X: -5, Y: 0, Z: 0}, rl.Vector3{X: 1, Y: 0, Z: 0}, 100, s)
	if !ok {
		t.Fatal("Ray into the sphere should hit")
	}
	if !approx(hit.Distance, 4, 1e-4) {
		t.Errorf("Expected distance 4, got %f", hit.Distance)
	}
	if !vecApprox(hit.Normal, rl.Vector3{X: -1, Y: 0, Z: 0}, 1e-4) {
		t.Errorf("Expected normal facing the ray, got %v", hit.Normal)
	}

	if _, ok := RaycastSphere(rl.Vector3{X: -5, Y: 2, Z: 0}, rl.Vector3{X: 1, Y: 0, Z: 0}, 100, s); ok {
		t.Error("Ray passing beside the sphere should miss")
	}
}

func TestRaycastTriangle(t *testing.T) {
	tri := Triangle{
		V0: rl.Vector3{X: -1, Y: -1, Z: 0},
		V1: rl.Vector3{X: 1, Y: -1, Z: 0},
		V2: rl.Vector3{X: 0, Y: 1, Z: 0},
	}

	hit, ok := RaycastTriangle(rl.Vector3{X: 0, Y: 0, Z: -3}, rl.Vector3{X: 0, Y: 0, Z: 1}, 100, tri)
	if !ok {
		t.Fatal("Ray through the face should hit")
	}
	if !approx(hit.Distance, 3, 1e-4) {
		t.Errorf("Expected distance 3, got %f", hit.Distance)
	}
	if !vecApprox(hit.Normal, rl.Vector3{X: 0, Y: 0, Z: -1}, 1e-4) {
		t.Errorf("Normal should face the ray origin, got %v", hit.Normal)
	}

	if _, ok := RaycastTriangle(rl.Vector3{X: 5, Y: 0, Z: -3}, rl.Vector3{X: 0, Y: 0, Z: 1}, 100, tri); ok {
		t.Error("Ray beside the triangle should miss")
	}

	degenerate := Triangle{V0: tri.V0, V1: tri.V0, V2: tri.V2}
	if _, ok := RaycastTriangle(rl.Vector3{X: 0, Y: 0, Z: -3}, rl.Vector3{X: 0, Y: 0, Z: 1}, 100, degenerate); ok {
		t.Error("Degenerate triangle should never hit")
	}
}

func TestRaycastMeshClosest(t *testing.T) {
	// Stacked floors: the ray must stop at the upper one.
	model := Model{Meshes: []MeshData{
		makeFloorQuad(0, 5),
		makeFloorQuad(1, 5),
	}}

	hit, ok := RaycastModel(rl.Vector3{X: 1, Y: 5, Z: -2}, rl.Vector3{X: 0, Y: -1, Z: 0}, 100, model)
	if !ok {
		t.Fatal("Downward ray should hit the floors")
	}
	if !approx(hit.Distance, 4, 1e-4) {
		t.Errorf("Expected to stop at the upper floor, distance %f", hit.Distance)
	}
	if !approx(hit.Point.Y, 1, 1e-4) {
		t.Errorf("Expected contact at y=1, got %v", hit.Point)
	}
	if !vecApprox(hit.Normal, rl.Vector3{X: 0, Y: 1, Z: 0}, 1e-4) {
		t.Errorf("Normal should face the ray origin, got %v", hit.Normal)
	}
}

func TestRaycastMeshRespectsTransform(t *testing.T) {
	mesh := makeFloorQuad(0, 5)
	mesh.Transform = rl.MatrixTranslate(0, 2, 0)

	hit, ok := RaycastMesh(rl.Vector3{X: 1, Y: 5, Z: -2}, rl.Vector3{X: 0, Y: -1, Z: 0}, 100, mesh)
	if !ok {
		t.Fatal("Downward ray should hit the translated floor")
	}
	if !approx(hit.Point.Y, 2, 1e-4) {
		t.Errorf("Expected contact at the transformed height 2, got %v", hit.Point)
	}
}
