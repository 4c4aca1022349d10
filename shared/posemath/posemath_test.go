package posemath

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestAngle(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	tests := []struct {
		name string
		a, b mgl64.Quat
		want float64
	}{
		{"identical", mgl64.QuatIdent(), mgl64.QuatIdent(), 0},
		{"negated is same rotation", mgl64.QuatIdent(), mgl64.QuatIdent().Scale(-1), 0},
		{"quarter turn", mgl64.QuatIdent(), mgl64.QuatRotate(math.Pi/2, up), 90},
		{"small yaw", mgl64.QuatIdent(), mgl64.QuatRotate(mgl64.DegToRad(5), up), 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Angle(tt.a, tt.b), 1e-6)
		})
	}
}

func TestSameQuat(t *testing.T) {
	q := mgl64.QuatRotate(1.2, mgl64.Vec3{0, 0, 1})
	assert.True(t, SameQuat(q, q))
	assert.True(t, SameQuat(q, q.Scale(-1)))
	assert.False(t, SameQuat(q, mgl64.QuatIdent()))
}

func TestMoveTowards(t *testing.T) {
	origin := mgl64.Vec3{}
	target := mgl64.Vec3{3, 4, 0}

	assert.Equal(t, origin, MoveTowards(origin, target, 0))
	assert.Equal(t, origin, MoveTowards(origin, target, -1))
	assert.Equal(t, target, MoveTowards(origin, target, 10))
	assert.Equal(t, target, MoveTowards(target, target, 1))

	step := MoveTowards(origin, target, 1)
	assert.InDelta(t, 1, step.Len(), 1e-12)
	assert.InDelta(t, 0.6, step.X(), 1e-12)
}

func TestLerpClamps(t *testing.T) {
	a := mgl64.Vec3{0, 0, 0}
	b := mgl64.Vec3{2, 2, 2}

	assert.Equal(t, a, Lerp(a, b, -0.5))
	assert.Equal(t, b, Lerp(a, b, 1.5))
	assert.Equal(t, mgl64.Vec3{1, 1, 1}, Lerp(a, b, 0.5))
}

func TestSlerpTakesShortestArc(t *testing.T) {
	up := mgl64.Vec3{0, 1, 0}
	a := mgl64.QuatIdent()
	b := mgl64.QuatRotate(mgl64.DegToRad(40), up).Scale(-1)

	mid := Slerp(a, b, 0.5)

	assert.InDelta(t, 20, Angle(a, mid), 1e-6)
	assert.True(t, SameQuat(b, Slerp(a, b, 2)))
}

func TestDistances(t *testing.T) {
	a := mgl64.Vec3{1, 2, 3}
	b := mgl64.Vec3{4, 6, 3}
	assert.Equal(t, 25.0, SqrDistance(a, b))
	assert.Equal(t, 5.0, Distance(a, b))
	assert.True(t, SameVec3(a, mgl64.Vec3{1, 2, 3.000001}))
	assert.False(t, SameVec3(a, b))
}
