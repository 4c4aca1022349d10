package posesync

import (
	"errors"
	"fmt"

	"github.com/automoto/posesync/shared/netconfig"
	"github.com/tanema/gween/ease"
)

// ErrInvalidSettings is wrapped by every Settings validation failure.
var ErrInvalidSettings = errors.New("invalid sync settings")

// Settings is the per-entity configuration surface.
type Settings struct {
	PositionThreshold float64 `mapstructure:"positionThreshold" json:"positionThreshold"`
	RotationThreshold float64 `mapstructure:"rotationThreshold" json:"rotationThreshold"`
	ScaleThreshold    float64 `mapstructure:"scaleThreshold" json:"scaleThreshold"`
	SendInterval      float64 `mapstructure:"sendInterval" json:"sendInterval"` // seconds

	ClientAuthority  bool `mapstructure:"clientAuthority" json:"clientAuthority"`
	ExcludeOwnerEcho bool `mapstructure:"excludeOwnerEcho" json:"excludeOwnerEcho"`

	// Easing names the curve applied to the rotation/scale blend factor.
	Easing string `mapstructure:"easing" json:"easing"`

	curve ease.TweenFunc
}

// DefaultSettings returns the protocol defaults.
func DefaultSettings() Settings {
	return Settings{
		PositionThreshold: netconfig.DefaultThreshold,
		RotationThreshold: netconfig.DefaultThreshold,
		ScaleThreshold:    netconfig.DefaultThreshold,
		SendInterval:      netconfig.DefaultSendInterval,
		ExcludeOwnerEcho:  true,
		Easing:            EasingLinear,
	}
}

// Validate checks thresholds and interval and resolves the easing curve. Settings
// must be validated before use when Easing is anything but linear.
func (s *Settings) Validate() error {
	if s.PositionThreshold < 0 || s.RotationThreshold < 0 || s.ScaleThreshold < 0 {
		return fmt.Errorf("%w: thresholds must be >= 0 (position=%v rotation=%v scale=%v)",
			ErrInvalidSettings, s.PositionThreshold, s.RotationThreshold, s.ScaleThreshold)
	}
	if s.SendInterval <= 0 {
		return fmt.Errorf("%w: send interval must be > 0, got %v", ErrInvalidSettings, s.SendInterval)
	}
	curve, err := EasingByName(s.Easing)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	s.curve = curve
	return nil
}

// Thresholds returns the change detection thresholds.
func (s Settings) Thresholds() Thresholds {
	return Thresholds{
		Position: s.PositionThreshold,
		Rotation: s.RotationThreshold,
		Scale:    s.ScaleThreshold,
	}
}

// Curve returns the resolved easing curve, nil for linear.
func (s Settings) Curve() ease.TweenFunc {
	return s.curve
}
