package components

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
)

// PatrolData moves an entity back and forth through waypoints at a constant
// speed, turning to face its heading. It stands in for whatever simulation
// owns the entity's motion.
type PatrolData struct {
	Waypoints []mgl64.Vec3
	Speed     float64 // units per second
	Next      int
}

var Patrol = donburi.NewComponentType[PatrolData]()

// OrbitData circles an entity around Center, used by an owning client to
// produce locally authored motion.
type OrbitData struct {
	Center      mgl64.Vec3
	Radius      float64
	AngularRate float64 // radians per second
	Angle       float64
}

var Orbit = donburi.NewComponentType[OrbitData]()
