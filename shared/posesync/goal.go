package posesync

import "github.com/automoto/posesync/shared/posemath"

// GoalBuffer holds the sample interpolation departs from and the newest
// received target. Start is never newer than Goal.
type GoalBuffer struct {
	Start PoseSample
	Goal  PoseSample
}

// Absorb folds a newly received pose into the buffer. current is the pose
// the entity is rendered at right now.
//
// The previous goal becomes the new start, re-anchored to the rendered pose
// as long as the entity is still plausibly somewhere between the old start
// and the new goal. On the very first sample a start is synthesized one send
// interval in the past so interpolation can begin immediately.
func (b *GoalBuffer) Absorb(next, current Pose, sendInterval, now float64) {
	candidate := NewPoseSample(now, next, 0)
	candidate.Speed = EstimateSpeed(b.Goal, candidate, current.Position, sendInterval)

	if !b.Start.IsValid() {
		b.Start = NewPoseSample(now-sendInterval, current, candidate.Speed)
	} else {
		oldDistance := posemath.Distance(b.Start.Position, b.Goal.Position)
		newDistance := posemath.Distance(b.Goal.Position, candidate.Position)

		b.Start = b.Goal
		// Inherited heuristic: the sum of both legs bounds how far the
		// rendered pose may be from the old goal and still count as
		// continuous. Otherwise start keeps the old goal values.
		if posemath.Distance(current.Position, b.Start.Position) < oldDistance+newDistance {
			b.Start.Pose = current
		}
	}

	b.Goal = candidate
}

// Reset returns both samples to the invalid sentinel.
func (b *GoalBuffer) Reset() {
	b.Start = PoseSample{}
	b.Goal = PoseSample{}
}
