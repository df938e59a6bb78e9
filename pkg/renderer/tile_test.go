package renderer

import (
	"testing"
)

func TestNewTileGrid_CoversImage(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		tileSize      int
		expectedTiles int
	}{
		{"Exact fit", 64, 64, 32, 4},
		{"Partial edge tiles", 100, 50, 32, 8},
		{"Tile larger than image", 10, 10, 64, 1},
		{"Zero tile size uses one tile", 30, 20, 0, 1},
		{"Single pixel", 1, 1, 16, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 42)
			if len(tiles) != tt.expectedTiles {
				t.Fatalf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			covered := make([][]int, tt.height)
			for y := range covered {
				covered[y] = make([]int, tt.width)
			}
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Tile %d has ID %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						covered[y][x]++
					}
				}
			}

			for y := range covered {
				for x := range covered[y] {
					if covered[y][x] != 1 {
						t.Fatalf("Pixel (%d,%d) covered %d times", x, y, covered[y][x])
					}
				}
			}
		})
	}
}

func TestNewTile_DeterministicRandom(t *testing.T) {
	a := NewTile(3, NewTileGrid(8, 8, 8, 0)[0].Bounds, 100)
	b := NewTile(3, a.Bounds, 100)
	c := NewTile(4, a.Bounds, 100)

	va, vb, vc := a.Random.Float64(), b.Random.Float64(), c.Random.Float64()
	if va != vb {
		t.Errorf("Tiles with the same seed and ID should draw the same values: %f vs %f", va, vb)
	}
	if va == vc {
		t.Errorf("Tiles with different IDs should draw different values")
	}
}
