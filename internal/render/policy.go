package render

import (
	"fmt"
	"strings"
)

// Policy selects how covering spans translate into output pixels.
type Policy int

const (
	Attenuate Policy = iota
	EdgeHighlight
	BinaryMask
	Circle
)

// String returns the canonical configuration name of the policy.
func (p Policy) String() string {
	switch p {
	case Attenuate:
		return "attenuate"
	case EdgeHighlight:
		return "edge"
	case BinaryMask:
		return "mask"
	case Circle:
		return "circle"
	}
	return fmt.Sprintf("policy(%d)", int(p))
}

// ParsePolicy resolves a configuration name. Accepted names are "attenuate",
// "edge" (or "edge-highlight"), "mask" (or "binary-mask") and "circle",
// case-insensitive.
func ParsePolicy(name string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "attenuate":
		return Attenuate, nil
	case "edge", "edge-highlight":
		return EdgeHighlight, nil
	case "mask", "binary-mask":
		return BinaryMask, nil
	case "circle":
		return Circle, nil
	}
	return 0, fmt.Errorf("unknown render policy: %q", name)
}
