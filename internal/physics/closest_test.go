package physics

import (
	"testing"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

func approx(a, b, tol float32) bool {
	return math32.Abs(a-b) <= tol
}

func vecApprox(a, b rl.Vector3, tol float32) bool {
	return approx(a.X, b.X, tol) && approx(a.Y, b.Y, tol) && approx(a.Z, b.Z, tol)
}

func TestClosestPointOnSegment(t *testing.T) {
	a := rl.Vector3{X: 0, Y: 0, Z: 0}
	b := rl.Vector3{X: 2, Y: 0, Z: 0}

	got := ClosestPointOnSegment(rl.Vector3{X: 1, Y: 3, Z: 0}, a, b)
	if !vecApprox(got, rl.Vector3{X: 1, Y: 0, Z: 0}, 1e-6) {
		t.Errorf("Expected projection (1,0,0), got %v", got)
	}

	got = ClosestPointOnSegment(rl.Vector3{X: 5, Y: 0, Z: 0}, a, b)
	if !vecApprox(got, b, 1e-6) {
		t.Errorf("Expected clamp to end point, got %v", got)
	}

	got = ClosestPointOnSegment(rl.Vector3{X: -3, Y: 1, Z: 0}, a, b)
	if !vecApprox(got, a, 1e-6) {
		t.Errorf("Expected clamp to start point, got %v", got)
	}
}

func TestClosestPointOnSegmentDegenerate(t *testing.T) {
	p := rl.Vector3{X: 1, Y: 1, Z: 1}
	got := ClosestPointOnSegment(rl.Vector3{X: 5, Y: 5, Z: 5}, p, p)
	if !vecApprox(got, p, 1e-6) {
		t.Errorf("Zero-length segment should return its start, got %v", got)
	}
}

func TestClosestPointOnAABB(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

	got := ClosestPointOnAABB(rl.Vector3{X: 2, Y: 0.5, Z: -3}, box)
	if !vecApprox(got, rl.Vector3{X: 1, Y: 0.5, Z: -1}, 1e-6) {
		t.Errorf("Expected clamp (1,0.5,-1), got %v", got)
	}

	inside := rl.Vector3{X: 0.2, Y: 0, Z: -0.3}
	got = ClosestPointOnAABB(inside, box)
	if !vecApprox(got, inside, 1e-6) {
		t.Errorf("Interior point should map to itself, got %v", got)
	}
}

func TestClosestPointOnTriangleRegions(t *testing.T) {
	tri := Triangle{
		V0: rl.Vector3{X: 0, Y: 0, Z: 0},
		V1: rl.Vector3{X: 2, Y: 0, Z: 0},
		V2: rl.Vector3{X: 0, Y: 2, Z: 0},
	}

	cases := []struct {
		name string
		p    rl.Vector3
		want rl.Vector3
	}{
		{"face", rl.Vector3{X: 0.5, Y: 0.5, Z: 1}, rl.Vector3{X: 0.5, Y: 0.5, Z: 0}},
		{"vertex A", rl.Vector3{X: -1, Y: -1, Z: 0}, rl.Vector3{X: 0, Y: 0, Z: 0}},
		{"vertex B", rl.Vector3{X: 3, Y: -1, Z: 0}, rl.Vector3{X: 2, Y: 0, Z: 0}},
		{"edge AB", rl.Vector3{X: 1, Y: -1, Z: 0}, rl.Vector3{X: 1, Y: 0, Z: 0}},
		{"edge BC", rl.Vector3{X: 2, Y: 2, Z: 0}, rl.Vector3{X: 1, Y: 1, Z: 0}},
	}
	for _, tc := range cases {
		got := ClosestPointOnTriangle(tc.p, tri)
		if !vecApprox(got, tc.want, 1e-5) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestClosestPointOnTriangleDegenerate(t *testing.T) {
	// Collinear vertices collapse the triangle to a segment.
	tri := Triangle{
		V0: rl.Vector3{X: 0, Y: 0, Z: 0},
		V1: rl.Vector3{X: 1, Y: 0, Z: 0},
		V2: rl.Vector3{X: 2, Y: 0, Z: 0},
	}
	got := ClosestPointOnTriangle(rl.Vector3{X: 0.5, Y: 1, Z: 0}, tri)
	if !vecApprox(got, rl.Vector3{X: 0.5, Y: 0, Z: 0}, 1e-5) {
		t.Errorf("Expected edge fallback (0.5,0,0), got %v", got)
	}
}

func TestClosestPointsOnSegmentsCrossing(t *testing.T) {
	s1 := Segment{Start: rl.Vector3{X: -1, Y: 0, Z: 0}, End: rl.Vector3{X: 1, Y: 0, Z: 0}}
	s2 := Segment{Start: rl.Vector3{X: 0, Y: 1, Z: -1}, End: rl.Vector3{X: 0, Y: 1, Z: 1}}

	p1, p2 := ClosestPointsOnSegments(s1, s2)
	if !vecApprox(p1, rl.Vector3{X: 0, Y: 0, Z: 0}, 1e-5) {
		t.Errorf("Expected p1 (0,0,0), got %v", p1)
	}
	if !vecApprox(p2, rl.Vector3{X: 0, Y: 1, Z: 0}, 1e-5) {
		t.Errorf("Expected p2 (0,1,0), got %v", p2)
	}
}

func TestClosestPointsOnSegmentsParallel(t *testing.T) {
	s1 := Segment{Start: rl.Vector3{X: 0, Y: 0, Z: 0}, End: rl.Vector3{X: 1, Y: 0, Z: 0}}
	s2 := Segment{Start: rl.Vector3{X: 2, Y: 1, Z: 0}, End: rl.Vector3{X: 3, Y: 1, Z: 0}}

	p1, p2 := ClosestPointsOnSegments(s1, s2)
	if !vecApprox(p1, rl.Vector3{X: 1, Y: 0, Z: 0}, 1e-5) {
		t.Errorf("Expected p1 at s1 end, got %v", p1)
	}
	if !vecApprox(p2, rl.Vector3{X: 2, Y: 1, Z: 0}, 1e-5) {
		t.Errorf("Expected p2 at s2 start, got %v", p2)
	}
}

func TestClosestPointsOnSegmentsDegenerate(t *testing.T) {
	point := rl.Vector3{X: 0, Y: 0, Z: 0}
	s1 := Segment{Start: point, End: point}
	s2 := Segment{Start: rl.Vector3{X: 1, Y: -1, Z: 0}, End: rl.Vector3{X: 1, Y: 1, Z: 0}}

	p1, p2 := ClosestPointsOnSegments(s1, s2)
	if !vecApprox(p1, point, 1e-6) {
		t.Errorf("Expected p1 at the point, got %v", p1)
	}
	if !vecApprox(p2, rl.Vector3{X: 1, Y: 0, Z: 0}, 1e-5) {
		t.Errorf("Expected p2 (1,0,0), got %v", p2)
	}
}

func TestClosestPointsSegmentTrianglePiercing(t *testing.T) {
	tri := Triangle{
		V0: rl.Vector3{X: 0, Y: 0, Z: 0},
		V1: rl.Vector3{X: 4, Y: 0, Z: 0},
		V2: rl.Vector3{X: 0, Y: 4, Z: 0},
	}
	seg := Segment{Start: rl.Vector3{X: 1, Y: 1, Z: -1}, End: rl.Vector3{X: 1, Y: 1, Z: 1}}

	onSeg, onTri := ClosestPointsSegmentTriangle(seg, tri)
	want := rl.Vector3{X: 1, Y: 1, Z: 0}
	if !vecApprox(onSeg, want, 1e-5) || !vecApprox(onTri, want, 1e-5) {
		t.Errorf("Piercing segment should report the crossing point, got %v / %v", onSeg, onTri)
	}
}

func TestClosestPointsSegmentTriangleAbove(t *testing.T) {
	tri := Triangle{
		V0: rl.Vector3{X: 0, Y: 0, Z: 0},
		V1: rl.Vector3{X: 4, Y: 0, Z: 0},
		V2: rl.Vector3{X: 0, Y: 4, Z: 0},
	}
	seg := Segment{Start: rl.Vector3{X: 1, Y: 1, Z: 2}, End: rl.Vector3{X: 1, Y: 1, Z: 3}}

	onSeg, onTri := ClosestPointsSegmentTriangle(seg, tri)
	if !vecApprox(onSeg, seg.Start, 1e-5) {
		t.Errorf("Expected nearest segment point at start, got %v", onSeg)
	}
	if !vecApprox(onTri, rl.Vector3{X: 1, Y: 1, Z: 0}, 1e-5) {
		t.Errorf("Expected projection onto the face, got %v", onTri)
	}
}

func TestClosestPointsSegmentAABB(t *testing.T) {
	box := AABB{Min: rl.Vector3{X: -1, Y: -1, Z: -1}, Max: rl.Vector3{X: 1, Y: 1, Z: 1}}

	seg := Segment{Start: rl.Vector3{X: -3, Y: 3, Z: 0}, End: rl.Vector3{X: 3, Y: 3, Z: 0}}
	if d := SegmentAABBDistance(seg, box); !approx(d, 2, 1e-4) {
		t.Errorf("Expected distance 2 above the box, got %f", d)
	}

	// Segment passing through the box.
	seg = Segment{Start: rl.Vector3{X: -2, Y: 0, Z: 0}, End: rl.Vector3{X: 2, Y: 0, Z: 0}}
	if d := SegmentAABBDistance(seg, box); d > 1e-4 {
		t.Errorf("Intersecting segment should report zero distance, got %f", d)
	}

	// Off the corner.
	seg = Segment{Start: rl.Vector3{X: 2, Y: 2, Z: 0}, End: rl.Vector3{X: 4, Y: 2, Z: 0}}
	if d := SegmentAABBDistance(seg, box); !approx(d, math32.Sqrt(2), 1e-3) {
		t.Errorf("Expected corner distance sqrt(2), got %f", d)
	}
}
