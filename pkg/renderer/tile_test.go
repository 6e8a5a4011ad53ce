package renderer

import (
	"testing"
)

func TestNewTileGrid_CoversEveryPixelOnce(t *testing.T) {
	tests := []struct {
		name                    string
		width, height, tileSize int
		expectedTiles           int
	}{
		{"exact fit", 64, 64, 32, 4},
		{"ragged edges", 100, 37, 32, 8},
		{"single tile", 10, 10, 64, 1},
		{"one pixel tiles", 3, 2, 1, 6},
		{"default tile size", 65, 1, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := NewTileGrid(tt.width, tt.height, tt.tileSize, 1)
			if len(tiles) != tt.expectedTiles {
				t.Errorf("Expected %d tiles, got %d", tt.expectedTiles, len(tiles))
			}

			coverage := make([][]int, tt.height)
			for y := range coverage {
				coverage[y] = make([]int, tt.width)
			}
			for i, tile := range tiles {
				if tile.ID != i {
					t.Errorf("Expected tile id %d, got %d", i, tile.ID)
				}
				for y := tile.Bounds.Min.Y; y < tile.Bounds.Max.Y; y++ {
					for x := tile.Bounds.Min.X; x < tile.Bounds.Max.X; x++ {
						coverage[y][x]++
					}
				}
			}

			for y := range coverage {
				for x, count := range coverage[y] {
					if count != 1 {
						t.Fatalf("Pixel (%d,%d) covered %d times", x, y, count)
					}
				}
			}
		})
	}
}

func TestNewTile_DeterministicSampler(t *testing.T) {
	a := NewTileGrid(64, 64, 16, 99)
	b := NewTileGrid(64, 64, 16, 99)
	c := NewTileGrid(64, 64, 16, 100)

	for i := range a {
		va, vb, vc := a[i].Sampler.Get1D(), b[i].Sampler.Get1D(), c[i].Sampler.Get1D()
		if va != vb {
			t.Errorf("Tile %d: same seed produced %f and %f", i, va, vb)
		}
		if va == vc {
			t.Errorf("Tile %d: different seeds produced the same value %f", i, va)
		}
	}

	if a[0].Sampler.Get1D() == a[1].Sampler.Get1D() {
		t.Error("Expected neighbouring tiles to use different sample streams")
	}
}

func TestProgress_Callback(t *testing.T) {
	var calls, last int
	progress := NewProgress(10, 3, func(done, total int) {
		calls++
		last = done
		if total != 10 {
			t.Errorf("Expected total 10, got %d", total)
		}
	})

	for i := 0; i < 10; i++ {
		progress.Add(1)
	}

	if progress.Done() != 10 || progress.Fraction() != 1 {
		t.Errorf("Expected 10 done, got %d (%f)", progress.Done(), progress.Fraction())
	}
	// Reports at 3, 6, 9 and the final pixel
	if calls != 4 || last != 10 {
		t.Errorf("Expected 4 callbacks ending at 10, got %d ending at %d", calls, last)
	}

	var nilProgress *Progress
	nilProgress.Add(1)
}
