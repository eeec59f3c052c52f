package types

// Overlay sizing limits, applied after scaling to the configured target.
const (
	MinOverlaySize = 100
	MaxOverlaySize = 800
)

// OverlayOptions carries the render settings for a single overlay display.
type OverlayOptions struct {
	Size         int      // target dimension in pixels for the larger side
	Opacity      float64  // 0.0 to 1.0
	Position     Position // where on screen the overlay goes
	AlwaysOnTop  bool     // keep the overlay above other windows
	ClickThrough bool     // pass pointer events through the overlay
	Custom       *Point   // saved position, used when Position is custom
}

// FitSize scales a GIF's native dimensions so its larger side matches
// target, preserving aspect ratio and clamping both sides to the
// overlay limits.
func FitSize(width, height, target int) (int, int) {
	if width <= 0 || height <= 0 {
		return MinOverlaySize, MinOverlaySize
	}

	larger := width
	if height > larger {
		larger = height
	}
	scale := float64(target) / float64(larger)
	w := int(float64(width) * scale)
	h := int(float64(height) * scale)

	// Scale up to the minimum before clamping down, so tiny GIFs
	// keep their aspect ratio.
	smaller := w
	if h < smaller {
		smaller = h
	}
	if smaller < MinOverlaySize {
		up := float64(MinOverlaySize) / float64(smaller)
		w = int(float64(w) * up)
		h = int(float64(h) * up)
	}

	if w > MaxOverlaySize || h > MaxOverlaySize {
		aspect := float64(w) / float64(h)
		if w > h {
			w = MaxOverlaySize
			h = int(float64(MaxOverlaySize) / aspect)
		} else {
			h = MaxOverlaySize
			w = int(float64(MaxOverlaySize) * aspect)
		}
	}

	return w, h
}

// PlaceOverlay computes the top-left coordinate for an overlay of the
// given size on a screen, honoring the position anchors. The rand
// argument supplies randomness for PositionRandom and may be nil for
// deterministic placement (falls back to center).
func PlaceOverlay(screenW, screenH, w, h int, pos Position, randInt func(n int) int) Point {
	const pad = 50
	const randomPad = 100

	switch pos {
	case PositionTopLeft:
		return Point{X: pad, Y: pad}
	case PositionTopRight:
		return Point{X: screenW - w - pad, Y: pad}
	case PositionBottomLeft:
		return Point{X: pad, Y: screenH - h - pad}
	case PositionBottomRight:
		return Point{X: screenW - w - pad, Y: screenH - h - pad}
	case PositionRandom:
		if randInt != nil {
			maxX := screenW - w - randomPad
			maxY := screenH - h - randomPad
			if maxX > randomPad && maxY > randomPad {
				return Point{
					X: randomPad + randInt(maxX-randomPad),
					Y: randomPad + randInt(maxY-randomPad),
				}
			}
		}
		fallthrough
	default:
		return Point{X: (screenW - w) / 2, Y: (screenH - h) / 2}
	}
}
