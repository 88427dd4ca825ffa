package severity

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"civiclens/internal/models"
)

// Pixels wraps a decoded image for the density analyzers. It is read-only;
// the analyzers never mutate the underlying buffer.
type Pixels struct {
	img  image.Image
	w, h int
}

// Decode parses raw JPEG or PNG bytes. Malformed data is a hard failure
// wrapped in models.ErrImageDecode; callers must not fall back to the
// no-image path on decode errors.
func Decode(data []byte) (*Pixels, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrImageDecode, err)
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: empty image", models.ErrImageDecode)
	}
	return &Pixels{img: img, w: b.Dx(), h: b.Dy()}, nil
}

// FromImage wraps an already-decoded image. Used by tests to build
// synthetic fixtures without an encode round trip.
func FromImage(img image.Image) *Pixels {
	b := img.Bounds()
	return &Pixels{img: img, w: b.Dx(), h: b.Dy()}
}

func (p *Pixels) Width() int  { return p.w }
func (p *Pixels) Height() int { return p.h }

func (p *Pixels) rgbAt(x, y int) (r, g, b uint8) {
	b0 := p.img.Bounds()
	r16, g16, b16, _ := p.img.At(b0.Min.X+x, b0.Min.Y+y).RGBA()
	return uint8(r16 >> 8), uint8(g16 >> 8), uint8(b16 >> 8)
}

// grayAt returns the luma of a pixel using the standard BT.601 weights.
func (p *Pixels) grayAt(x, y int) uint8 {
	r, g, b := p.rgbAt(x, y)
	return uint8(0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b))
}

// hsvAt converts a pixel to HSV with hue on [0,180) and saturation and
// value on [0,255], matching the ranges the water mask thresholds assume.
func (p *Pixels) hsvAt(x, y int) (h, s, v float64) {
	r8, g8, b8 := p.rgbAt(x, y)
	r, g, b := float64(r8), float64(g8), float64(b8)

	v = max3(r, g, b)
	mn := min3(r, g, b)
	delta := v - mn

	if v > 0 {
		s = delta / v * 255
	}
	if delta == 0 {
		return 0, s, v
	}

	switch v {
	case r:
		h = 60 * (g - b) / delta
	case g:
		h = 120 + 60*(b-r)/delta
	default:
		h = 240 + 60*(r-g)/delta
	}
	if h < 0 {
		h += 360
	}
	return h / 2, s, v
}

func max3(a, b, c float64) float64 {
	m := a
	if b > m {
		m = b
	}
	if c > m {
		m = c
	}
	return m
}

func min3(a, b, c float64) float64 {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
