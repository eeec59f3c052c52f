package types_test

import (
	"testing"

	"gifpal/pkg/types"

	"github.com/stretchr/testify/assert"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		target        int
		wantW, wantH  int
	}{
		{"square scales to target", 200, 200, 400, 400, 400},
		{"wide preserves aspect", 400, 200, 400, 400, 200},
		{"tall preserves aspect", 200, 400, 400, 200, 400},
		{"tiny gif scaled up to minimum", 20, 10, 40, 200, 100},
		{"oversized clamped to maximum", 2000, 1000, 2000, 800, 400},
		{"zero dimensions fall back to minimum", 0, 0, 400, 100, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := types.FitSize(tt.width, tt.height, tt.target)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestFitSizeWithinLimits(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {50, 300}, {1920, 1080}, {333, 777}} {
		w, h := types.FitSize(dims[0], dims[1], 400)
		larger := w
		if h > larger {
			larger = h
		}
		smaller := w
		if h < smaller {
			smaller = h
		}
		assert.LessOrEqual(t, larger, types.MaxOverlaySize)
		assert.GreaterOrEqual(t, smaller, types.MinOverlaySize/2,
			"aspect preservation may undershoot the minimum on one side only")
	}
}

func TestPlaceOverlay(t *testing.T) {
	const sw, sh = 1920, 1080

	tests := []struct {
		name string
		pos  types.Position
		want types.Point
	}{
		{"center", types.PositionCenter, types.Point{X: (sw - 400) / 2, Y: (sh - 300) / 2}},
		{"top-left", types.PositionTopLeft, types.Point{X: 50, Y: 50}},
		{"top-right", types.PositionTopRight, types.Point{X: sw - 400 - 50, Y: 50}},
		{"bottom-left", types.PositionBottomLeft, types.Point{X: 50, Y: sh - 300 - 50}},
		{"bottom-right", types.PositionBottomRight, types.Point{X: sw - 400 - 50, Y: sh - 300 - 50}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := types.PlaceOverlay(sw, sh, 400, 300, tt.pos, nil)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("random stays within padded bounds", func(t *testing.T) {
		calls := 0
		randInt := func(n int) int {
			calls++
			return n - 1 // worst case
		}
		p := types.PlaceOverlay(sw, sh, 400, 300, types.PositionRandom, randInt)
		assert.Equal(t, 2, calls)
		assert.GreaterOrEqual(t, p.X, 100)
		assert.GreaterOrEqual(t, p.Y, 100)
		assert.LessOrEqual(t, p.X+400, sw-100)
		assert.LessOrEqual(t, p.Y+300, sh-100)
	})

	t.Run("random without rand falls back to center", func(t *testing.T) {
		p := types.PlaceOverlay(sw, sh, 400, 300, types.PositionRandom, nil)
		assert.Equal(t, types.Point{X: (sw - 400) / 2, Y: (sh - 300) / 2}, p)
	})
}

func TestParsePosition(t *testing.T) {
	p, err := types.ParsePosition("bottom-left")
	assert.NoError(t, err)
	assert.Equal(t, types.PositionBottomLeft, p)

	p, err = types.ParsePosition("under-the-couch")
	assert.Error(t, err)
	assert.Equal(t, types.PositionCenter, p)

	for _, v := range types.Positions() {
		assert.True(t, types.Position(v).Valid())
	}
}
