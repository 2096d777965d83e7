package config

import (
	"fmt"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ParseColor parses an overlay color into red, green and blue samples in [0, 1].
//
// Two forms are accepted:
//   - hex: "#RRGGBB" or "#RGB"
//   - floats: "r,g,b", each component in [0, 1]
func ParseColor(s string) ([3]float32, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return [3]float32{}, fmt.Errorf("empty color string")
	}

	var c colorful.Color
	if strings.HasPrefix(s, "#") {
		parsed, err := colorful.Hex(s)
		if err != nil {
			return [3]float32{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		c = parsed
	} else {
		v, err := splitFloats(s)
		if err != nil {
			return [3]float32{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		c = colorful.Color{R: v[0], G: v[1], B: v[2]}
		if !c.IsValid() {
			return [3]float32{}, fmt.Errorf("color %q out of range [0,1]", s)
		}
	}

	return [3]float32{float32(c.R), float32(c.G), float32(c.B)}, nil
}
