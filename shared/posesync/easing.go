package posesync

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tanema/gween/ease"
)

// EasingLinear is the default curve name. It resolves to a nil curve, which
// Interpolate treats as an exact linear blend.
const EasingLinear = "linear"

var easings = map[string]ease.TweenFunc{
	EasingLinear: nil,
	"inquad":     ease.InQuad,
	"outquad":    ease.OutQuad,
	"inoutquad":  ease.InOutQuad,
	"incubic":    ease.InCubic,
	"outcubic":   ease.OutCubic,
	"inoutcubic": ease.InOutCubic,
	"insine":     ease.InSine,
	"outsine":    ease.OutSine,
	"inoutsine":  ease.InOutSine,
}

// EasingByName resolves a curve name, case-insensitively. The empty name is
// linear.
func EasingByName(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if key == "" {
		key = EasingLinear
	}
	curve, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q: must be one of %v", name, EasingNames())
	}
	return curve, nil
}

// EasingNames lists the accepted curve names in sorted order.
func EasingNames() []string {
	names := make([]string, 0, len(easings))
	for name := range easings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
