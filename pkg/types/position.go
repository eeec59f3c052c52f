package types

import "fmt"

// Position identifies where on screen an overlay should appear.
type Position string

const (
	// PositionCenter places the overlay in the middle of the screen
	PositionCenter Position = "center"
	// PositionRandom picks a random spot with padding from the edges
	PositionRandom Position = "random"
	// PositionTopLeft anchors the overlay to the top-left corner
	PositionTopLeft Position = "top-left"
	// PositionTopRight anchors the overlay to the top-right corner
	PositionTopRight Position = "top-right"
	// PositionBottomLeft anchors the overlay to the bottom-left corner
	PositionBottomLeft Position = "bottom-left"
	// PositionBottomRight anchors the overlay to the bottom-right corner
	PositionBottomRight Position = "bottom-right"
	// PositionCustom uses a previously saved per-GIF position
	PositionCustom Position = "custom"
)

// Positions lists every valid position value, in display order.
func Positions() []string {
	return []string{
		string(PositionCenter),
		string(PositionRandom),
		string(PositionTopLeft),
		string(PositionTopRight),
		string(PositionBottomLeft),
		string(PositionBottomRight),
		string(PositionCustom),
	}
}

// Valid reports whether p is one of the known position values.
func (p Position) Valid() bool {
	for _, v := range Positions() {
		if string(p) == v {
			return true
		}
	}
	return false
}

// ParsePosition converts a string to a Position, defaulting unknown
// values to center.
func ParsePosition(s string) (Position, error) {
	p := Position(s)
	if !p.Valid() {
		return PositionCenter, fmt.Errorf("unknown position %q", s)
	}
	return p, nil
}

// Point is a screen coordinate pair.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}
