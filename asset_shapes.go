package cones

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// GenerateCone builds a cone of radius 1 whose apex sits at z = +1 and whose
// base lies in the z = -1 plane. The circle is split into the given number
// of divisions; every triangle gets its own vertices and faces outwards
// with CCW winding.
func GenerateCone(divisions int) MeshAsset {
	if divisions < 3 {
		panic(fmt.Sprintf("cone needs at least 3 divisions, got %d", divisions))
	}

	apex := mgl32.Vec3{0, 0, 1}
	baseCenter := mgl32.Vec3{0, 0, -1}
	down := mgl32.Vec3{0, 0, -1}

	ring := func(i int) (pos mgl32.Vec3, normal mgl32.Vec3, tangent mgl32.Vec3) {
		angle := 2 * math.Pi * float64(i%divisions) / float64(divisions)
		c, s := float32(math.Cos(angle)), float32(math.Sin(angle))
		// Slope of the side: radius 1 over height 2
		return mgl32.Vec3{c, s, -1}, mgl32.Vec3{2 * c, 2 * s, 1}.Normalize(), mgl32.Vec3{-s, c, 0}
	}

	mesh := MeshAsset{
		Vertices: make([]Vertex, 0, divisions*6),
		Indices:  make([]uint16, 0, divisions*6),
	}
	push := func(pos, normal, tangent mgl32.Vec3, u, v float32) {
		mesh.Indices = append(mesh.Indices, uint16(len(mesh.Vertices)))
		mesh.Vertices = append(mesh.Vertices, Vertex{
			Position: pos,
			Normal:   normal,
			Tangent:  tangent,
			TexCoord: [2]float32{u, v},
		})
	}

	for i := 0; i < divisions; i++ {
		p0, n0, t0 := ring(i)
		p1, n1, t1 := ring(i + 1)
		u0 := float32(i) / float32(divisions)
		u1 := float32(i+1) / float32(divisions)

		// The apex normal points halfway between the two base normals.
		mid := 2 * math.Pi * (float64(i) + 0.5) / float64(divisions)
		mc, ms := float32(math.Cos(mid)), float32(math.Sin(mid))
		apexNormal := mgl32.Vec3{2 * mc, 2 * ms, 1}.Normalize()
		apexTangent := mgl32.Vec3{-ms, mc, 0}

		push(p0, n0, t0, u0, 1)
		push(p1, n1, t1, u1, 1)
		push(apex, apexNormal, apexTangent, (u0+u1)/2, 0)

		push(baseCenter, down, mgl32.Vec3{1, 0, 0}, 0.5, 0.5)
		push(p1, down, mgl32.Vec3{1, 0, 0}, 0.5+p1.X()/2, 0.5+p1.Y()/2)
		push(p0, down, mgl32.Vec3{1, 0, 0}, 0.5+p0.X()/2, 0.5+p0.Y()/2)
	}

	return mesh
}
