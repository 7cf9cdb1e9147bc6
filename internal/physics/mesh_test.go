package physics

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// makeFloorQuad builds a two-triangle horizontal quad at height y spanning
// [-half, half] on X and Z.
func makeFloorQuad(y, half float32) MeshData {
	return MeshData{
		Vertices: []rl.Vector3{
			{X: -half, Y: y, Z: -half},
			{X: half, Y: y, Z: -half},
			{X: half, Y: y, Z: half},
			{X: -half, Y: y, Z: half},
		},
		Indices:   []int32{0, 1, 2, 0, 2, 3},
		Transform: rl.MatrixIdentity(),
	}
}

func TestMeshTriangleCount(t *testing.T) {
	indexed := makeFloorQuad(0, 1)
	if got := indexed.TriangleCount(); got != 2 {
		t.Errorf("Expected 2 indexed triangles, got %d", got)
	}

	raw := MeshData{
		Vertices: []rl.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1},
			{X: 2, Y: 0, Z: 0}, {X: 3, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 1},
		},
		Transform: rl.MatrixIdentity(),
	}
	if got := raw.TriangleCount(); got != 2 {
		t.Errorf("Expected 2 non-indexed triangles, got %d", got)
	}
}

func TestTriangleAtAppliesTransform(t *testing.T) {
	mesh := makeFloorQuad(0, 1)
	mesh.Transform = rl.MatrixTranslate(10, 5, -2)

	tri := mesh.TriangleAt(0)
	if !vecApprox(tri.V0, rl.Vector3{X: 9, Y: 5, Z: -3}, 1e-5) {
		t.Errorf("Expected translated V0 (9,5,-3), got %v", tri.V0)
	}
	if !vecApprox(tri.V1, rl.Vector3{X: 11, Y: 5, Z: -3}, 1e-5) {
		t.Errorf("Expected translated V1 (11,5,-3), got %v", tri.V1)
	}
}

func TestTriangleAtOutOfRangeIndex(t *testing.T) {
	mesh := MeshData{
		Vertices: []rl.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1},
		},
		Indices:   []int32{0, 7, 2},
		Transform: rl.MatrixIdentity(),
	}
	tri := mesh.TriangleAt(0)
	if !tri.IsDegenerate() {
		t.Error("Out-of-range index should produce a degenerate triangle, not a panic")
	}
}

func TestEachTriangleSkipsDegenerate(t *testing.T) {
	mesh := MeshData{
		Vertices: []rl.Vector3{
			{X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 0},
			{X: 0, Y: 0, Z: 0}, {X: 1, Y: 0, Z: 0}, {X: 0, Y: 0, Z: 1},
		},
		Transform: rl.MatrixIdentity(),
	}

	var seen []int
	mesh.EachTriangle(func(i int, _ Triangle) bool {
		seen = append(seen, i)
		return true
	})
	if len(seen) != 1 || seen[0] != 1 {
		t.Errorf("Expected only triangle 1 to be visited, got %v", seen)
	}
}

func TestEachTriangleEarlyStop(t *testing.T) {
	mesh := makeFloorQuad(0, 1)
	visits := 0
	mesh.EachTriangle(func(_ int, _ Triangle) bool {
		visits++
		return false
	})
	if visits != 1 {
		t.Errorf("Returning false should stop iteration, got %d visits", visits)
	}
}

func TestMeshBounds(t *testing.T) {
	mesh := makeFloorQuad(1, 2)
	bounds := mesh.Bounds()
	if !vecApprox(bounds.Min, rl.Vector3{X: -2, Y: 1, Z: -2}, 1e-5) {
		t.Errorf("Expected bounds min (-2,1,-2), got %v", bounds.Min)
	}
	if !vecApprox(bounds.Max, rl.Vector3{X: 2, Y: 1, Z: 2}, 1e-5) {
		t.Errorf("Expected bounds max (2,1,2), got %v", bounds.Max)
	}
}

func TestEmptyMeshBounds(t *testing.T) {
	var mesh MeshData
	mesh.Transform = rl.MatrixIdentity()
	bounds := mesh.Bounds()
	zero := rl.Vector3{}
	if !vecApprox(bounds.Min, zero, 1e-6) || !vecApprox(bounds.Max, zero, 1e-6) {
		t.Errorf("Empty mesh should report a zero box, got %v / %v", bounds.Min, bounds.Max)
	}
}
