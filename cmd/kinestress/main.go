// Stress test timing the narrow-phase kernels against procedural terrain
// meshes of increasing triangle counts.
package main

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
	"gopkg.in/yaml.v3"

	"kine3d/internal/physics"
)

// Scenario describes one benchmark run. All fields have working defaults so
// a scenario file only needs the values it wants to change.
type Scenario struct {
	Seed           int64   `yaml:"seed"`
	TriangleCounts []int   `yaml:"triangle_counts"`
	Queries        int     `yaml:"queries"`
	CapsuleRadius  float32 `yaml:"capsule_radius"`
	CapsuleHeight  float32 `yaml:"capsule_height"`
	AreaSize       float32 `yaml:"area_size"`
}

func defaultScenario() Scenario {
	return Scenario{
		Seed:           42,
		TriangleCounts: []int{32, 128, 512, 2048, 8192},
		Queries:        200,
		CapsuleRadius:  0.4,
		CapsuleHeight:  1.8,
		AreaSize:       50,
	}
}

// loadScenario reads a YAML scenario file, filling unset fields from the
// defaults. A missing path returns the defaults.
func loadScenario(path string) (Scenario, error) {
	s := defaultScenario()
	if path == "" {
		return s, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return s, err
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, err
	}
	if s.Queries <= 0 {
		s.Queries = defaultScenario().Queries
	}
	if len(s.TriangleCounts) == 0 {
		s.TriangleCounts = defaultScenario().TriangleCounts
	}
	return s, nil
}

func main() {
	scenarioPath := flag.String("scenario", "", "YAML scenario file (optional)")
	flag.Parse()

	scenario, err := loadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("kinestress: loading scenario: %v", err)
	}

	fmt.Printf("kinestress: seed=%d queries=%d capsule r=%.2f h=%.2f\n\n",
		scenario.Seed, scenario.Queries, scenario.CapsuleRadius, scenario.CapsuleHeight)
	fmt.Printf("%8s  %12s %12s %12s %12s\n", "tris", "overlap", "sweep", "raycast", "grounded")

	for _, count := range scenario.TriangleCounts {
		runBench(scenario, count)
	}
}

func runBench(s Scenario, triangles int) {
	rng := rand.New(rand.NewSource(s.Seed))
	mesh := makeTerrain(rng, triangles, s.AreaSize)

	capsules := make([]physics.Capsule, s.Queries)
	velocities := make([]rl.Vector3, s.Queries)
	for i := range capsules {
		x := (rng.Float32() - 0.5) * s.AreaSize
		z := (rng.Float32() - 0.5) * s.AreaSize
		y := rng.Float32() * 4
		capsules[i] = physics.Capsule{
			Start:  rl.Vector3{X: x, Y: y, Z: z},
			End:    rl.Vector3{X: x, Y: y + s.CapsuleHeight - 2*s.CapsuleRadius, Z: z},
			Radius: s.CapsuleRadius,
		}
		velocities[i] = rl.Vector3{
			X: (rng.Float32() - 0.5) * 2,
			Y: -rng.Float32() * 2,
			Z: (rng.Float32() - 0.5) * 2,
		}
	}

	overlapTime := stopwatch(func() {
		for i := range capsules {
			physics.OverlapCapsuleMesh(capsules[i], mesh)
		}
	})
	sweepTime := stopwatch(func() {
		for i := range capsules {
			physics.SweepCapsuleMesh(capsules[i], velocities[i], mesh)
		}
	})
	raycastTime := stopwatch(func() {
		down := rl.Vector3{Y: -1}
		for i := range capsules {
			physics.RaycastMesh(capsules[i].Start, down, 100, mesh)
		}
	})
	groundedTime := stopwatch(func() {
		for i := range capsules {
			physics.GroundedCapsuleMesh(capsules[i], 0.2, mesh)
		}
	})

	fmt.Printf("%8d  %12s %12s %12s %12s\n",
		mesh.TriangleCount(), overlapTime, sweepTime, raycastTime, groundedTime)
}

func stopwatch(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

// makeTerrain builds an indexed height-field mesh of roughly the requested
// triangle count covering a size x size area.
func makeTerrain(rng *rand.Rand, triangles int, size float32) physics.MeshData {
	cells := triangles / 2
	if cells < 1 {
		cells = 1
	}
	dim := int(math32.Sqrt(float32(cells)))
	if dim < 1 {
		dim = 1
	}

	step := size / float32(dim)
	vertices := make([]rl.Vector3, 0, (dim+1)*(dim+1))
	for z := 0; z <= dim; z++ {
		for x := 0; x <= dim; x++ {
			vertices = append(vertices, rl.Vector3{
				X: float32(x)*step - size/2,
				Y: rng.Float32() * 0.5,
				Z: float32(z)*step - size/2,
			})
		}
	}

	indices := make([]int32, 0, dim*dim*6)
	rowLen := int32(dim + 1)
	for z := 0; z < dim; z++ {
		for x := 0; x < dim; x++ {
			i0 := int32(z)*rowLen + int32(x)
			i1 := i0 + 1
			i2 := i0 + rowLen
			i3 := i2 + 1
			indices = append(indices, i0, i2, i1, i1, i2, i3)
		}
	}

	return physics.MeshData{
		Vertices:  vertices,
		Indices:   indices,
		Transform: rl.MatrixIdentity(),
	}
}
