package dynstate

import "testing"

func TestFullscreenStrip(t *testing.T) {
	coords := FullscreenStrip(false)
	if len(coords) != 6 {
		t.Fatalf("len = %d, want 6", len(coords))
	}
	want := [][2]float32{{-1, -1}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 1}}
	for i := range want {
		if coords[i] != want[i] {
			t.Errorf("coords[%d] = %v, want %v", i, coords[i], want[i])
		}
	}
}

func TestFullscreenStripReversed(t *testing.T) {
	fwd := FullscreenStrip(false)
	rev := FullscreenStrip(true)
	for i := 0; i < len(fwd); i += 2 {
		if rev[i] != fwd[i+1] || rev[i+1] != fwd[i] {
			t.Errorf("pair %d not exchanged: %v %v", i/2, rev[i], rev[i+1])
		}
	}
}

func TestLineRowsWrapsByteIndices(t *testing.T) {
	coords := LineRows(FramebufferHeight)
	if len(coords) != 256 {
		t.Fatalf("len = %d, want 256", len(coords))
	}
	// Final vertex is the right edge of the last row; its sequential
	// index, 255, doubles as the restart marker.
	last := coords[255]
	if last[0] != 1 {
		t.Errorf("last x = %v, want 1", last[0])
	}
	if last[1] <= 0.96 || last[1] >= 1 {
		t.Errorf("last y = %v, want just inside the bottom edge", last[1])
	}

	idx := SequentialIndices(len(coords))
	if idx[255] != 0xff {
		t.Errorf("idx[255] = %#x, want 0xff", idx[255])
	}
}

func TestPointGridCoversEveryPixel(t *testing.T) {
	coords := PointGrid(FramebufferWidth, FramebufferHeight)
	if len(coords) != FramebufferWidth*FramebufferHeight {
		t.Fatalf("len = %d, want %d", len(coords), FramebufferWidth*FramebufferHeight)
	}
	// First point maps to the center of pixel (0, 0).
	sx := (coords[0][0] + 1) / 2 * FramebufferWidth
	sy := (coords[0][1] + 1) / 2 * FramebufferHeight
	if sx != 0.5 || sy != 0.5 {
		t.Errorf("first point screen pos = (%v, %v), want (0.5, 0.5)", sx, sy)
	}
}

func TestMeshCoordsLineList(t *testing.T) {
	coords := MeshCoords(TopologyLineList, DefaultMesh())
	if len(coords)%2 != 0 {
		t.Fatalf("line list vertex count %d is odd", len(coords))
	}
	// Three segments per row, duplicated endpoints.
	if want := FramebufferHeight * 6; len(coords) != want {
		t.Errorf("len = %d, want %d", len(coords), want)
	}
}
