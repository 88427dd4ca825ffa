package severity

// Category-specific image heuristics. Each analyzer binarizes the image,
// measures the flagged region and maps it onto a 1-5 tier. All functions
// are pure over the pixel data.

const (
	potholeGrayThreshold = 80
	garbageGrayThreshold = 150

	waterHueLow        = 90
	waterHueHigh       = 130
	waterSatThreshold  = 50
	waterValThreshold  = 50

	darkBrightnessRatio = 0.30
)

// analyzePothole flags dark pixels as candidate pothole surface, groups
// them into blobs and grades by area density.
func analyzePothole(p *Pixels) int {
	mask := buildMask(p, func(x, y int) bool {
		return p.grayAt(x, y) <= potholeGrayThreshold
	})
	_, area := blobStats(p, mask)
	density := float64(area) / float64(p.w*p.h)

	switch {
	case density > 0.15:
		return 5
	case density > 0.10:
		return 4
	case density > 0.05:
		return 3
	case density > 0.02:
		return 2
	default:
		return 1
	}
}

// analyzeGarbage counts bright blobs as debris. Either a high blob count
// or a high area density is enough to raise the tier.
func analyzeGarbage(p *Pixels) int {
	mask := buildMask(p, func(x, y int) bool {
		return p.grayAt(x, y) > garbageGrayThreshold
	})
	blobs, area := blobStats(p, mask)
	density := float64(area) / float64(p.w*p.h)

	switch {
	case blobs > 20 || density > 0.20:
		return 5
	case blobs > 10 || density > 0.10:
		return 4
	case blobs > 5 || density > 0.05:
		return 3
	case blobs > 2 || density > 0.02:
		return 2
	default:
		return 1
	}
}

// analyzeWater masks blue/wet pixels in HSV space and grades by the
// masked fraction of the image.
func analyzeWater(p *Pixels) int {
	masked := 0
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			h, s, v := p.hsvAt(x, y)
			if h >= waterHueLow && h <= waterHueHigh && s >= waterSatThreshold && v >= waterValThreshold {
				masked++
			}
		}
	}
	density := float64(masked) / float64(p.w*p.h)

	switch {
	case density > 0.20:
		return 5
	case density > 0.10:
		return 4
	case density > 0.05:
		return 3
	case density > 0.02:
		return 2
	default:
		return 1
	}
}

// analyzeLight is a two-value heuristic: a dark frame suggests a broken
// fixture, anything else is routine.
func analyzeLight(p *Pixels) int {
	var total float64
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			total += float64(p.grayAt(x, y))
		}
	}
	brightness := total / float64(p.w*p.h) / 255
	if brightness < darkBrightnessRatio {
		return 4
	}
	return 2
}

func buildMask(p *Pixels, flagged func(x, y int) bool) []bool {
	mask := make([]bool, p.w*p.h)
	for y := 0; y < p.h; y++ {
		for x := 0; x < p.w; x++ {
			mask[y*p.w+x] = flagged(x, y)
		}
	}
	return mask
}

// blobStats labels 4-connected components of the mask, returning the
// component count and the total flagged area in pixels.
func blobStats(p *Pixels, mask []bool) (blobs, area int) {
	visited := make([]bool, len(mask))
	var stack []int

	for start := range mask {
		if !mask[start] || visited[start] {
			continue
		}
		blobs++
		stack = append(stack[:0], start)
		visited[start] = true
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			area++

			x, y := idx%p.w, idx/p.w
			for _, n := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				nx, ny := n[0], n[1]
				if nx < 0 || ny < 0 || nx >= p.w || ny >= p.h {
					continue
				}
				nidx := ny*p.w + nx
				if mask[nidx] && !visited[nidx] {
					visited[nidx] = true
					stack = append(stack, nidx)
				}
			}
		}
	}
	return blobs, area
}
