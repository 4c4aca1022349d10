package posesync

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// EstimateSpeed derives the movement speed needed to get from previous to
// next. The displacement is measured from previous unless previous sits
// exactly where the entity is rendered, in which case the rendered position
// is used. Without a valid previous sample the send interval stands in for
// the elapsed time. The result is always finite and non-negative.
func EstimateSpeed(previous, next PoseSample, rendered mgl64.Vec3, sendInterval float64) float64 {
	reference := rendered
	if previous.Position != rendered {
		reference = previous.Position
	}

	elapsed := sendInterval
	if previous.IsValid() {
		elapsed = next.Timestamp - previous.Timestamp
	}
	if elapsed <= 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return 0
	}

	speed := next.Position.Sub(reference).Len() / elapsed
	if math.IsNaN(speed) || math.IsInf(speed, 0) {
		return 0
	}
	return speed
}
