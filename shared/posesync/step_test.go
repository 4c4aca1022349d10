package posesync

import (
	"testing"

	"github.com/automoto/posesync/shared/netconfig"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	authorityRoles = ResolveRoles(true, false, false, true)
	ownerRoles     = ResolveRoles(false, true, true, true)
	observerRoles  = ResolveRoles(false, false, false, true)
)

func TestStep_AuthorityGatesOnIntervalAndChange(t *testing.T) {
	settings := DefaultSettings()
	var st SyncState
	tf := &fakeTransform{pose: IdentityPose()}
	out := &recordingSender{}

	res := Step(&st, settings, authorityRoles, tf, out, 0.05, 0.05)
	assert.False(t, res.Sent, "interval not yet elapsed")

	res = Step(&st, settings, authorityRoles, tf, out, 0.1, 0.05)
	require.True(t, res.Sent, "first send against the empty baseline")
	assert.Equal(t, 0.1, st.LastRemoteSendTime)

	res = Step(&st, settings, authorityRoles, tf, out, 0.3, 0.2)
	assert.False(t, res.Sent, "unchanged pose")
	assert.Equal(t, 0.1, st.LastRemoteSendTime, "send time only advances on send")

	tf.pose.Position = mgl64.Vec3{1, 0, 0}
	res = Step(&st, settings, authorityRoles, tf, out, 0.35, 0.05)
	assert.True(t, res.Sent)
	assert.Len(t, out.broadcasts, 2)
	assert.Empty(t, out.upstream)
	assert.Equal(t, tf.pose, st.LastSentPose)
}

func TestStep_OwnerAdvancesSendTimeRegardless(t *testing.T) {
	settings := DefaultSettings()
	settings.ClientAuthority = true
	st := SyncState{LastSentPose: IdentityPose()}
	tf := &fakeTransform{pose: IdentityPose()}
	out := &recordingSender{}

	res := Step(&st, settings, ownerRoles, tf, out, 0.2, 0.2)
	assert.False(t, res.Sent)
	assert.Equal(t, 0.2, st.LastLocalSendTime)

	tf.pose.Position = mgl64.Vec3{0, 2, 0}
	res = Step(&st, settings, ownerRoles, tf, out, 0.25, 0.05)
	assert.False(t, res.Sent, "gated by interval")

	res = Step(&st, settings, ownerRoles, tf, out, 0.31, 0.06)
	assert.True(t, res.Sent)
	assert.Equal(t, 0.31, st.LastLocalSendTime)
	require.Len(t, out.upstream, 1)
	assert.Equal(t, tf.pose, out.upstream[0])
	assert.Empty(t, out.broadcasts)
}

func TestStep_ReceiverWithoutGoalDoesNothing(t *testing.T) {
	var st SyncState
	tf := &fakeTransform{pose: IdentityPose()}

	res := Step(&st, DefaultSettings(), observerRoles, tf, &recordingSender{}, 1, 0.016)

	assert.Equal(t, StepResult{}, res)
	assert.Zero(t, tf.writes)
}

// Authority moves from the origin toward (1,0,0); the observer starts at rest
// and the first update arrives with the entity at (0.1,0,0).
func TestStep_ObserverMovesSmoothlyTowardFirstGoal(t *testing.T) {
	settings := DefaultSettings()
	var st SyncState
	tf := &fakeTransform{pose: IdentityPose()}

	now := 0.0
	require.True(t, Receive(&st, settings, observerRoles, tf, poseAt(0.1, 0, 0), now))

	assert.InDelta(t, -0.1, st.Start().Timestamp, 1e-12)
	assert.Equal(t, mgl64.Vec3{}, st.Start().Position)
	assert.Equal(t, mgl64.Vec3{0.1, 0, 0}, st.Goal().Position)
	assert.Greater(t, st.Goal().Speed, 0.0)

	const dt = 1.0 / 60
	maxStep := st.Goal().Speed*dt + 1e-9
	prevX := 0.0
	for i := 0; i < 10; i++ {
		now += dt
		res := Step(&st, settings, observerRoles, tf, &recordingSender{}, now, dt)
		require.False(t, res.Teleported)
		x := tf.pose.Position.X()
		assert.GreaterOrEqual(t, x, prevX)
		assert.LessOrEqual(t, x-prevX, maxStep, "tick %d jumped", i)
		assert.LessOrEqual(t, x, 0.1+1e-12)
		prevX = x
	}
	assert.InDelta(t, 0.1, tf.pose.Position.X(), 1e-9)
}

func TestStep_ObserverTeleportsAfterLongSilence(t *testing.T) {
	settings := DefaultSettings()
	var st SyncState
	tf := &fakeTransform{pose: IdentityPose()}

	Receive(&st, settings, observerRoles, tf, poseAt(0.1, 0, 0), 1.0)
	goal := poseAt(0.2, 0, 0)
	goal.Scale = mgl64.Vec3{2, 2, 2}
	Receive(&st, settings, observerRoles, tf, goal, 1.1)
	require.InDelta(t, 0.1, st.Goal().Timestamp-st.Start().Timestamp, 1e-9)

	res := Step(&st, settings, observerRoles, tf, &recordingSender{}, 3.1, 2.0)

	assert.True(t, res.Teleported)
	assert.Equal(t, goal, tf.pose)
	assert.False(t, st.Start().IsValid())
	assert.False(t, st.Goal().IsValid())
}

func TestReceive_SkipsSendersAndIgnoredEcho(t *testing.T) {
	settings := DefaultSettings()
	tf := &fakeTransform{pose: IdentityPose()}
	ignoring := ResolveRoles(false, true, false, true)
	require.Equal(t, netconfig.ApplyIgnore, ignoring.Apply)

	for _, roles := range []Roles{authorityRoles, ownerRoles, ignoring} {
		var st SyncState
		assert.False(t, Receive(&st, settings, roles, tf, poseAt(1, 0, 0), 1))
		assert.False(t, st.Goal().IsValid())
	}
}

func TestApplyUpstream_RejectedWhenClientAuthorityDisabled(t *testing.T) {
	settings := DefaultSettings()
	settings.ClientAuthority = false
	var st SyncState
	authoritative := poseAt(3, 0, 0)
	tf := &fakeTransform{pose: authoritative}
	out := &recordingSender{}

	ok := ApplyUpstream(&st, settings, tf, out, poseAt(99, 0, 0), true, 1)

	assert.False(t, ok)
	assert.Equal(t, authoritative, tf.pose)
	assert.Zero(t, tf.writes)
	assert.Empty(t, out.broadcasts)
}

func TestApplyUpstream_AcceptedIsAppliedAndRebroadcast(t *testing.T) {
	settings := DefaultSettings()
	settings.ClientAuthority = true
	var st SyncState
	tf := &fakeTransform{pose: IdentityPose()}
	out := &recordingSender{}
	moved := poseAt(4, 5, 6)

	require.True(t, ApplyUpstream(&st, settings, tf, out, moved, true, 2))

	assert.Equal(t, moved, tf.pose)
	assert.Equal(t, []Pose{moved}, out.broadcasts)
	assert.Equal(t, moved, st.LastSentPose)

	// The authority tick right after sees no change against the new baseline.
	res := Step(&st, settings, authorityRoles, tf, out, 2.5, 0.5)
	assert.False(t, res.Sent)
}

func TestApplyUpstream_RejectsNonOwner(t *testing.T) {
	settings := DefaultSettings()
	settings.ClientAuthority = true
	var st SyncState
	tf := &fakeTransform{pose: IdentityPose()}

	assert.False(t, ApplyUpstream(&st, settings, tf, &recordingSender{}, poseAt(1, 1, 1), false, 1))
	assert.Equal(t, IdentityPose(), tf.pose)
}
