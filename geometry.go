package dynstate

// FullscreenStrip returns the six vertices of a fullscreen triangle
// strip in normalized device coordinates. With reversed set, the
// emission order flips pairwise, inverting the winding of every triangle
// without moving any vertex.
func FullscreenStrip(reversed bool) [][2]float32 {
	coords := [][2]float32{
		{-1, -1}, {-1, 1}, {0, -1}, {0, 1}, {1, -1}, {1, 1},
	}
	if !reversed {
		return coords
	}
	out := make([][2]float32, len(coords))
	for i := 0; i < len(coords); i += 2 {
		out[i] = coords[i+1]
		out[i+1] = coords[i]
	}
	return out
}

// LineRows returns four points per framebuffer row, 256 vertices for the
// standard 64-row target: the exact count at which 8-bit indices wrap.
// Each row's points sit at the left edge, the quarter marks around the
// middle, and the right edge, so the final segment of the final row
// covers precisely the last quarter of the last row.
func LineRows(rows int) [][2]float32 {
	xs := [4]float32{-1, -0.5, 0.5, 1}
	out := make([][2]float32, 0, rows*len(xs))
	for r := 0; r < rows; r++ {
		y := -1 + 2*(float32(r)+0.5)/float32(rows)
		for _, x := range xs {
			out = append(out, [2]float32{x, y})
		}
	}
	return out
}

// FullscreenList returns six vertices forming two fullscreen triangles
// for list and patch topologies.
func FullscreenList(reversed bool) [][2]float32 {
	coords := [][2]float32{
		{-1, -1}, {-1, 1}, {1, -1},
		{1, -1}, {-1, 1}, {1, 1},
	}
	if !reversed {
		return coords
	}
	out := make([][2]float32, len(coords))
	for t := 0; t < len(coords); t += 3 {
		out[t] = coords[t]
		out[t+1] = coords[t+2]
		out[t+2] = coords[t+1]
	}
	return out
}

// PointGrid returns one vertex per pixel center for point topologies.
func PointGrid(width, height int) [][2]float32 {
	out := make([][2]float32, 0, width*height)
	for y := 0; y < height; y++ {
		ny := -1 + 2*(float32(y)+0.5)/float32(height)
		for x := 0; x < width; x++ {
			nx := -1 + 2*(float32(x)+0.5)/float32(width)
			out = append(out, [2]float32{nx, ny})
		}
	}
	return out
}

// MeshCoords returns the vertex list that covers the framebuffer when
// assembled with the given topology.
func MeshCoords(topology Topology, m MeshParams) [][2]float32 {
	switch topology {
	case TopologyPointList:
		return PointGrid(FramebufferWidth, FramebufferHeight)
	case TopologyLineStrip:
		return LineRows(FramebufferHeight)
	case TopologyLineList:
		rows := LineRows(FramebufferHeight)
		out := make([][2]float32, 0, len(rows)/4*6)
		for r := 0; r+3 < len(rows); r += 4 {
			out = append(out,
				rows[r], rows[r+1],
				rows[r+1], rows[r+2],
				rows[r+2], rows[r+3])
		}
		return out
	case TopologyTriangleList, TopologyPatchList:
		return FullscreenList(m.Reversed)
	}
	return FullscreenStrip(m.Reversed)
}

// SequentialIndices returns n 8-bit indices 0..n-1. At n = 256 the last
// index is 255, which doubles as the primitive restart marker when
// restart is enabled.
func SequentialIndices(n int) []uint8 {
	out := make([]uint8, n)
	for i := range out {
		out[i] = uint8(i)
	}
	return out
}
