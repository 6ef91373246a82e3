package imaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDimensionCap(t *testing.T) {
	tests := []struct {
		quality float64
		want    int
	}{
		{0.85, 1000},
		{0.70, 1000},
		{0.61, 1000},
		{0.60, 800},
		{0.55, 800},
		{0.41, 800},
		{0.40, 600},
		{0.30, 600},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DimensionCap(tt.quality), "quality %.2f", tt.quality)
	}
}

func TestPlanDimensions(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		quality       float64
		wantW, wantH  int
	}{
		{"landscape downscaled", 4000, 3000, 0.85, 1000, 750},
		{"portrait downscaled", 3000, 4000, 0.85, 750, 1000},
		{"middle tier", 4000, 3000, 0.55, 800, 600},
		{"lowest tier", 4000, 3000, 0.40, 600, 450},
		{"never upscaled", 320, 200, 0.85, 320, 200},
		{"exactly at cap", 1000, 1000, 0.85, 1000, 1000},
		{"thin strip keeps one pixel", 10000, 2, 0.30, 600, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := PlanDimensions(tt.width, tt.height, tt.quality)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}
