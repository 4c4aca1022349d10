package systems

import (
	"math"

	"github.com/automoto/posesync/components"
	"github.com/automoto/posesync/shared/netcomponents"
	"github.com/automoto/posesync/shared/posemath"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var up = mgl64.Vec3{0, 1, 0}

// NewDriveSystem returns the ECS system that advances Patrol and Orbit
// motion. It must run before the pose sync system in the same tick.
func NewDriveSystem(clock Clock) func(*ecs.ECS) {
	timer := &tickTimer{}
	return func(e *ecs.ECS) {
		dt := timer.advance(clock())
		if dt <= 0 {
			return
		}
		components.Patrol.Each(e.World, func(entry *donburi.Entry) {
			if entry.HasComponent(netcomponents.NetPose) {
				StepPatrol(components.Patrol.Get(entry), netcomponents.NetPose.Get(entry), dt)
			}
		})
		components.Orbit.Each(e.World, func(entry *donburi.Entry) {
			if entry.HasComponent(netcomponents.NetPose) {
				StepOrbit(components.Orbit.Get(entry), netcomponents.NetPose.Get(entry), dt)
			}
		})
	}
}

// StepPatrol moves pose toward the next waypoint and wraps around the list
// once it is reached.
func StepPatrol(p *components.PatrolData, pose *netcomponents.NetPoseData, dt float64) {
	if len(p.Waypoints) == 0 || p.Speed <= 0 {
		return
	}
	if p.Next >= len(p.Waypoints) {
		p.Next = 0
	}
	target := p.Waypoints[p.Next]
	heading := target.Sub(pose.Position)
	pose.Position = posemath.MoveTowards(pose.Position, target, p.Speed*dt)
	if heading.Len() > 0 {
		pose.Orientation = faceHeading(heading)
	}
	if pose.Position == target {
		p.Next = (p.Next + 1) % len(p.Waypoints)
	}
}

// StepOrbit advances pose along a horizontal circle.
func StepOrbit(o *components.OrbitData, pose *netcomponents.NetPoseData, dt float64) {
	if o.Radius <= 0 || o.AngularRate == 0 {
		return
	}
	o.Angle = math.Mod(o.Angle+o.AngularRate*dt, 2*math.Pi)
	sin, cos := math.Sincos(o.Angle)
	pose.Position = o.Center.Add(mgl64.Vec3{cos * o.Radius, 0, sin * o.Radius})
	// tangent of the circle in the direction of travel
	tangent := mgl64.Vec3{-sin, 0, cos}
	if o.AngularRate < 0 {
		tangent = tangent.Mul(-1)
	}
	pose.Orientation = faceHeading(tangent)
}

// faceHeading returns the yaw-only orientation looking along heading.
func faceHeading(heading mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatRotate(math.Atan2(heading.X(), heading.Z()), up)
}
