package lantern

import (
	"math"
)

const (
	RoomSizeX = 256.0
	RoomSizeY = 128.0
	RoomSizeZ = 256.0

	roomHalfX = RoomSizeX / 2
	roomHalfY = RoomSizeY / 2
	roomHalfZ = RoomSizeZ / 2

	// largest of the three room dimensions
	roomMaxDim = RoomSizeX

	roomWallTileU    = 4.0
	roomWallTileV    = 2.0
	roomFloorTileU   = 4.0
	roomFloorTileV   = 4.0
	roomCeilingTileU = 4.0
	roomCeilingTileV = 4.0
)

type Vertex struct {
	Pos      [3]float32 `lantern:"layout" format:"float32x3" location:"0"`
	TexCoord [2]float32 `lantern:"layout" format:"float32x2" location:"1"`
	Normal   [3]float32 `lantern:"layout" format:"float32x3" location:"2"`
}

// quad expands four corners into two triangles (a,b,c)(c,d,a).
func quad(a, b, c, d Vertex) []Vertex {
	return []Vertex{a, b, c, c, d, a}
}

func wallVertex(x, y, z, u, v float32, normal [3]float32) Vertex {
	return Vertex{
		Pos:      [3]float32{x, y, z},
		TexCoord: [2]float32{u, v},
		Normal:   normal,
	}
}

// RoomVertices returns the 36 vertices of the room interior. All
// normals face inward; the camera lives inside the box.
func RoomVertices() []Vertex {
	const hx, hy, hz = roomHalfX, roomHalfY, roomHalfZ

	var verts []Vertex

	// Wall: -Z face
	n := [3]float32{0, 0, 1}
	verts = append(verts, quad(
		wallVertex(hx, hy, -hz, 0, 0, n),
		wallVertex(-hx, hy, -hz, roomWallTileU, 0, n),
		wallVertex(-hx, -hy, -hz, roomWallTileU, roomWallTileV, n),
		wallVertex(hx, -hy, -hz, 0, roomWallTileV, n),
	)...)

	// Wall: +Z face
	n = [3]float32{0, 0, -1}
	verts = append(verts, quad(
		wallVertex(-hx, hy, hz, 0, 0, n),
		wallVertex(hx, hy, hz, roomWallTileU, 0, n),
		wallVertex(hx, -hy, hz, roomWallTileU, roomWallTileV, n),
		wallVertex(-hx, -hy, hz, 0, roomWallTileV, n),
	)...)

	// Wall: -X face
	n = [3]float32{1, 0, 0}
	verts = append(verts, quad(
		wallVertex(-hx, hy, -hz, 0, 0, n),
		wallVertex(-hx, hy, hz, roomWallTileU, 0, n),
		wallVertex(-hx, -hy, hz, roomWallTileU, roomWallTileV, n),
		wallVertex(-hx, -hy, -hz, 0, roomWallTileV, n),
	)...)

	// Wall: +X face
	n = [3]float32{-1, 0, 0}
	verts = append(verts, quad(
		wallVertex(hx, hy, hz, 0, 0, n),
		wallVertex(hx, hy, -hz, roomWallTileU, 0, n),
		wallVertex(hx, -hy, -hz, roomWallTileU, roomWallTileV, n),
		wallVertex(hx, -hy, hz, 0, roomWallTileV, n),
	)...)

	// Ceiling: +Y face
	n = [3]float32{0, -1, 0}
	verts = append(verts, quad(
		wallVertex(-hx, hy, -hz, 0, 0, n),
		wallVertex(hx, hy, -hz, roomCeilingTileU, 0, n),
		wallVertex(hx, hy, hz, roomCeilingTileU, roomCeilingTileV, n),
		wallVertex(-hx, hy, hz, 0, roomCeilingTileV, n),
	)...)

	// Floor: -Y face
	n = [3]float32{0, 1, 0}
	verts = append(verts, quad(
		wallVertex(-hx, -hy, hz, 0, 0, n),
		wallVertex(hx, -hy, hz, roomFloorTileU, 0, n),
		wallVertex(hx, -hy, -hz, roomFloorTileU, roomFloorTileV, n),
		wallVertex(-hx, -hy, -hz, 0, roomFloorTileV, n),
	)...)

	return verts
}

// BuildSphereMesh generates a UV sphere used for the light markers.
func BuildSphereMesh(radius float32, slices, stacks int) ([]Vertex, []uint16) {
	var verts []Vertex

	for stack := 0; stack <= stacks; stack++ {
		phi := math.Pi * float64(stack) / float64(stacks)
		for slice := 0; slice <= slices; slice++ {
			theta := 2 * math.Pi * float64(slice) / float64(slices)

			nx := float32(math.Sin(phi) * math.Cos(theta))
			ny := float32(math.Cos(phi))
			nz := float32(math.Sin(phi) * math.Sin(theta))

			verts = append(verts, Vertex{
				Pos:      [3]float32{radius * nx, radius * ny, radius * nz},
				TexCoord: [2]float32{float32(slice) / float32(slices), float32(stack) / float32(stacks)},
				Normal:   [3]float32{nx, ny, nz},
			})
		}
	}

	var indices []uint16
	for stack := 0; stack < stacks; stack++ {
		for slice := 0; slice < slices; slice++ {
			i0 := uint16(stack*(slices+1) + slice)
			i1 := i0 + uint16(slices) + 1

			indices = append(indices, i0, i1, i0+1)
			indices = append(indices, i0+1, i1, i1+1)
		}
	}

	return verts, indices
}
