package imgutil

import (
	"math"
	"testing"
)

func TestScaleFactor(t *testing.T) {
	tests := []struct {
		name       string
		w, h       int
		maxW, maxH int
		want       float64
	}{
		{"制限なし", 800, 600, -1, -1, 1.0},
		{"制限なし(小さい画像)", 3, 7, -1, -1, 1.0},
		{"0は制限なし扱い", 800, 600, 0, 0, 1.0},
		{"最大幅のみ", 800, 600, 400, -1, 0.5},
		{"最大高さのみ", 800, 600, -1, 150, 0.25},
		{"両方: 幅の超過が大きい", 800, 600, 400, 450, 0.5},
		{"両方: 高さの超過が大きい", 800, 600, 700, 300, 0.5},
		{"超過量が同じなら幅を優先", 800, 600, 700, 500, 700.0 / 800.0},
		{"制限内なら縮小しない", 800, 600, 1000, 1000, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ScaleFactor(tt.w, tt.h, tt.maxW, tt.maxH)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScaleFactor(%d, %d, %d, %d) = %v, want %v", tt.w, tt.h, tt.maxW, tt.maxH, got, tt.want)
			}
			if got <= 0 || got > 1 {
				t.Errorf("scale factor must be in (0, 1], got %v", got)
			}
		})
	}
}
