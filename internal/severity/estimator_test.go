package severity

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civiclens/internal/models"
)

// fill paints a solid background.
func fill(img *image.RGBA, c color.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// rect paints a solid rectangle.
func rect(img *image.RGBA, x0, y0, x1, y1 int, c color.RGBA) {
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

var (
	white = color.RGBA{255, 255, 255, 255}
	black = color.RGBA{0, 0, 0, 255}
	blue  = color.RGBA{0, 0, 255, 255}
	dark  = color.RGBA{20, 20, 20, 255}
)

func TestFamilyOf(t *testing.T) {
	tests := []struct {
		category string
		want     Family
	}{
		{"Pothole", FamilyPothole},
		{"deep pothole on highway", FamilyPothole},
		{"Garbage", FamilyGarbage},
		{"waste dump", FamilyGarbage},
		{"Water Leakage", FamilyWater},
		{"flooded underpass", FamilyWater},
		{"Streetlight", FamilyLight},
		{"broken light fixture", FamilyLight},
		{"Traffic Congestion", FamilyUnknown},
		{"", FamilyUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FamilyOf(tt.category), "category %q", tt.category)
	}
}

func TestScaleConfidence(t *testing.T) {
	assert.Equal(t, 86.5, ScaleConfidence(0.865))
	assert.Equal(t, 100.0, ScaleConfidence(1.0))
	assert.Equal(t, 0.0, ScaleConfidence(0.0))
}

func TestAdjustForConfidence(t *testing.T) {
	tests := []struct {
		base       int
		confidence float64
		want       int
	}{
		{3, 80, 4},   // high confidence bumps up
		{3, 49.9, 2}, // low confidence bumps down
		{3, 65, 3},   // midband unchanged
		{5, 95, 5},   // capped at 5
		{1, 10, 1},   // floored at 1
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, adjustForConfidence(tt.base, tt.confidence))
	}
}

func TestEstimate_NoImageFallback(t *testing.T) {
	e := NewEstimator()

	tests := []struct {
		category   string
		confidence float64
		want       int
	}{
		{"Water Leakage", 60, 4},
		{"Pothole", 60, 4},
		{"Garbage", 60, 3},
		{"Garbage", 85, 4},
		{"Streetlight", 60, 2},
		{"Streetlight", 40, 1},
		{"Traffic Congestion", 60, 2},
		{"Traffic Congestion", 90, 3},
	}
	for _, tt := range tests {
		got := e.Estimate(tt.category, tt.confidence, nil)
		assert.Equal(t, tt.want, got, "category %q confidence %v", tt.category, tt.confidence)
	}
}

func TestEstimate_PotholeDensityCappedAtFive(t *testing.T) {
	e := NewEstimator()

	// A 45x45 dark patch on 100x100 is ~20% density: base tier 5, and the
	// high-confidence bump cannot push past the ceiling.
	img := image.NewRGBA(image.Rect(0, 0, 100, 100))
	fill(img, white)
	rect(img, 10, 10, 55, 55, black)

	got := e.Estimate("Pothole", 85, FromImage(img))
	assert.Equal(t, 5, got)
}

func TestEstimate_UnknownCategoryWithImage(t *testing.T) {
	e := NewEstimator()

	img := image.NewRGBA(image.Rect(0, 0, 50, 50))
	fill(img, white)

	// No analyzer is invoked, the default tier applies before adjustment.
	assert.Equal(t, 2, e.Estimate("Broken Pole", 60, FromImage(img)))
	assert.Equal(t, 3, e.Estimate("Broken Pole", 90, FromImage(img)))
}

func TestEstimate_AlwaysInRange(t *testing.T) {
	e := NewEstimator()

	img := image.NewRGBA(image.Rect(0, 0, 20, 20))
	fill(img, black)

	for _, category := range []string{"Pothole", "Garbage", "Water Leakage", "Streetlight", "Other", ""} {
		for _, conf := range []float64{0, 49.9, 50, 79.9, 80, 100} {
			withImage := e.Estimate(category, conf, FromImage(img))
			withoutImage := e.Estimate(category, conf, nil)
			assert.GreaterOrEqual(t, withImage, 1)
			assert.LessOrEqual(t, withImage, 5)
			assert.GreaterOrEqual(t, withoutImage, 1)
			assert.LessOrEqual(t, withoutImage, 5)
		}
	}
}

func TestDecode_MalformedDataIsHardFailure(t *testing.T) {
	_, err := Decode([]byte("definitely not an image"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrImageDecode))
}
