package lantern

import (
	"math"
	"testing"
)

func TestRoomVertices_CountAndBounds(t *testing.T) {
	verts := RoomVertices()

	if len(verts) != 36 {
		t.Fatalf("expected 36 vertices (6 faces), got %d", len(verts))
	}

	for i, v := range verts {
		if math.Abs(float64(v.Pos[0])) > roomHalfX ||
			math.Abs(float64(v.Pos[1])) > roomHalfY ||
			math.Abs(float64(v.Pos[2])) > roomHalfZ {
			t.Errorf("vertex %d outside the room: %v", i, v.Pos)
		}
	}
}

func TestRoomVertices_NormalsFaceInward(t *testing.T) {
	for i, v := range RoomVertices() {
		// On every face the position component along the normal axis
		// sits on the far wall, so normal . position must be negative.
		dot := v.Pos[0]*v.Normal[0] + v.Pos[1]*v.Normal[1] + v.Pos[2]*v.Normal[2]
		if dot >= 0 {
			t.Errorf("vertex %d: normal %v does not face inward at %v", i, v.Normal, v.Pos)
		}
	}
}

func TestRoomVertices_UnitNormals(t *testing.T) {
	for i, v := range RoomVertices() {
		lenSq := v.Normal[0]*v.Normal[0] + v.Normal[1]*v.Normal[1] + v.Normal[2]*v.Normal[2]
		if math.Abs(float64(lenSq)-1) > 1e-6 {
			t.Errorf("vertex %d: normal %v is not unit length", i, v.Normal)
		}
	}
}

func TestRoomVertices_TexCoordsCoverTiling(t *testing.T) {
	maxU, maxV := float32(0), float32(0)
	for _, v := range RoomVertices() {
		if v.TexCoord[0] > maxU {
			maxU = v.TexCoord[0]
		}
		if v.TexCoord[1] > maxV {
			maxV = v.TexCoord[1]
		}
	}

	if maxU != roomWallTileU {
		t.Errorf("max U %v, want %v", maxU, float32(roomWallTileU))
	}
	if maxV != roomFloorTileV {
		t.Errorf("max V %v, want %v", maxV, float32(roomFloorTileV))
	}
}

func TestBuildSphereMesh(t *testing.T) {
	const radius = 2.0
	slices, stacks := 8, 6

	verts, indices := BuildSphereMesh(radius, slices, stacks)

	wantVerts := (slices + 1) * (stacks + 1)
	if len(verts) != wantVerts {
		t.Fatalf("expected %d vertices, got %d", wantVerts, len(verts))
	}
	wantIndices := 6 * slices * stacks
	if len(indices) != wantIndices {
		t.Fatalf("expected %d indices, got %d", wantIndices, len(indices))
	}

	for i, v := range verts {
		r := math.Sqrt(float64(v.Pos[0]*v.Pos[0] + v.Pos[1]*v.Pos[1] + v.Pos[2]*v.Pos[2]))
		if math.Abs(r-radius) > 1e-4 {
			t.Errorf("vertex %d: radius %v, want %v", i, r, radius)
		}

		// Normals point out of the sphere, aligned with the position.
		n := v.Normal
		if math.Abs(float64(v.Pos[0]-radius*n[0])) > 1e-4 ||
			math.Abs(float64(v.Pos[1]-radius*n[1])) > 1e-4 ||
			math.Abs(float64(v.Pos[2]-radius*n[2])) > 1e-4 {
			t.Errorf("vertex %d: normal %v not aligned with position %v", i, n, v.Pos)
		}
	}

	for i, idx := range indices {
		if int(idx) >= len(verts) {
			t.Fatalf("index %d out of range: %d >= %d", i, idx, len(verts))
		}
	}
}
