package posesync

import "github.com/automoto/posesync/shared/netconfig"

// NeedsTeleport reports whether interpolation should be abandoned in favour
// of snapping to the goal. It fires once more than TeleportSpanFactor
// start-to-goal spans have passed since the goal arrived, which catches lag
// spikes, real teleports and entities that got unstuck from obstacles. It is
// a heuristic: a legitimately paused sender looks the same.
func NeedsTeleport(start, goal PoseSample, sendInterval, now float64) bool {
	startTime := now - sendInterval
	if start.IsValid() {
		startTime = start.Timestamp
	}
	goalTime := now
	if goal.IsValid() {
		goalTime = goal.Timestamp
	}

	span := goalTime - startTime
	sinceGoal := now - goalTime
	return sinceGoal > span*netconfig.TeleportSpanFactor
}
