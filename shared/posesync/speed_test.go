package posesync

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestEstimateSpeed_FirstSampleUsesSendInterval(t *testing.T) {
	next := NewPoseSample(0, poseAt(0.1, 0, 0), 0)

	speed := EstimateSpeed(PoseSample{}, next, mgl64.Vec3{}, 0.1)

	assert.InDelta(t, 1.0, speed, 1e-9)
}

func TestEstimateSpeed_UsesElapsedBetweenSamples(t *testing.T) {
	prev := NewPoseSample(1.0, poseAt(0, 0, 0), 0)
	next := NewPoseSample(1.5, poseAt(3, 4, 0), 0)

	speed := EstimateSpeed(prev, next, mgl64.Vec3{9, 9, 9}, 0.1)

	assert.InDelta(t, 10.0, speed, 1e-9)
}

func TestEstimateSpeed_ReferenceFallsBackToRendered(t *testing.T) {
	prev := NewPoseSample(1.0, poseAt(2, 0, 0), 0)
	next := NewPoseSample(2.0, poseAt(5, 0, 0), 0)

	// previous coincides with the rendered position
	speed := EstimateSpeed(prev, next, mgl64.Vec3{2, 0, 0}, 0.1)

	assert.InDelta(t, 3.0, speed, 1e-9)
}

func TestEstimateSpeed_NeverNaNOrNegative(t *testing.T) {
	tests := []struct {
		name     string
		prev     PoseSample
		next     PoseSample
		interval float64
	}{
		{"zero elapsed", NewPoseSample(1, poseAt(0, 0, 0), 0), NewPoseSample(1, poseAt(5, 0, 0), 0), 0.1},
		{"negative elapsed", NewPoseSample(2, poseAt(0, 0, 0), 0), NewPoseSample(1, poseAt(5, 0, 0), 0), 0.1},
		{"zero interval first sample", PoseSample{}, NewPoseSample(1, poseAt(5, 0, 0), 0), 0},
		{"no displacement", NewPoseSample(1, poseAt(1, 1, 1), 0), NewPoseSample(2, poseAt(1, 1, 1), 0), 0.1},
		{"tiny elapsed", NewPoseSample(1, poseAt(0, 0, 0), 0), NewPoseSample(1+1e-12, poseAt(1e6, 0, 0), 0), 0.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			speed := EstimateSpeed(tt.prev, tt.next, mgl64.Vec3{}, tt.interval)
			assert.False(t, math.IsNaN(speed))
			assert.False(t, math.IsInf(speed, 0))
			assert.GreaterOrEqual(t, speed, 0.0)
		})
	}
}
