package network

import (
	"math"

	"github.com/automoto/posesync/components"
	"github.com/go-gl/mathgl/mgl64"
)

// orbitStart is the offset from the orbit center at the orbit's current
// angle, so a freshly attached orbit starts where the entity already is.
func orbitStart(o components.OrbitData) mgl64.Vec3 {
	sin, cos := math.Sincos(o.Angle)
	return mgl64.Vec3{cos * o.Radius, 0, sin * o.Radius}
}
