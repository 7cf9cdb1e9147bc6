package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// MeshData is a borrowed, read-only view over externally owned triangle
// geometry: vertex positions, index triples and a world transform applied to
// every vertex before use. The engine never retains it past a single query.
//
// If Indices is nil the mesh is treated as non-indexed: every run of three
// vertices forms one triangle.
type MeshData struct {
	Vertices  []rl.Vector3
	Indices   []int32
	Transform rl.Matrix
}

// TriangleCount returns the number of triangles the view describes.
func (m MeshData) TriangleCount() int {
	if m.Indices != nil {
		return len(m.Indices) / 3
	}
	return len(m.Vertices) / 3
}

// TriangleAt returns triangle i transformed to world space. Out-of-range
// indices inside an index buffer produce a degenerate triangle at the origin
// rather than a panic.
func (m MeshData) TriangleAt(i int) Triangle {
	var v0, v1, v2 rl.Vector3
	if m.Indices != nil {
		i0, i1, i2 := m.Indices[i*3], m.Indices[i*3+1], m.Indices[i*3+2]
		n := int32(len(m.Vertices))
		if i0 < 0 || i0 >= n || i1 < 0 || i1 >= n || i2 < 0 || i2 >= n {
			return Triangle{}
		}
		v0, v1, v2 = m.Vertices[i0], m.Vertices[i1], m.Vertices[i2]
	} else {
		v0, v1, v2 = m.Vertices[i*3], m.Vertices[i*3+1], m.Vertices[i*3+2]
	}
	return Triangle{
		V0: rl.Vector3Transform(v0, m.Transform),
		V1: rl.Vector3Transform(v1, m.Transform),
		V2: rl.Vector3Transform(v2, m.Transform),
	}
}

// EachTriangle walks the mesh's world-space triangles in index order,
// skipping degenerate (zero-area) faces. The callback returns false to stop
// early. Iteration order is fixed, which makes equal-distance tie-breaks
// deterministic: the first triangle encountered wins.
func (m MeshData) EachTriangle(fn func(i int, tri Triangle) bool) {
	count := m.TriangleCount()
	for i := 0; i < count; i++ {
		tri := m.TriangleAt(i)
		if tri.IsDegenerate() {
			continue
		}
		if !fn(i, tri) {
			return
		}
	}
}

// Bounds returns the world-space bounding box of all mesh triangles,
// for callers running their own broad phase. An empty mesh returns a
// zero box.
func (m MeshData) Bounds() AABB {
	var bounds AABB
	first := true
	m.EachTriangle(func(_ int, tri Triangle) bool {
		tb := tri.Bounds()
		if first {
			bounds = tb
			first = false
			return true
		}
		bounds.Min = vector3Min(bounds.Min, tb.Min)
		bounds.Max = vector3Max(bounds.Max, tb.Max)
		return true
	})
	return bounds
}

// Model is the multi-mesh input of a model-level query: each sub-mesh is
// tested and the globally closest or earliest hit is reported.
type Model struct {
	Meshes []MeshData
}
