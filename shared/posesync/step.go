package posesync

import "github.com/automoto/posesync/shared/netconfig"

// StepResult reports what one tick did.
type StepResult struct {
	Sent         bool
	Teleported   bool
	Interpolated bool
}

// Step runs one scheduler tick for one entity. dt is the time since the
// previous tick and now the current local time, both in seconds.
func Step(st *SyncState, settings Settings, roles Roles, access PoseAccessor, out Sender, now, dt float64) StepResult {
	var res StepResult

	switch roles.Send {
	case netconfig.SendAuthority:
		if now-st.LastRemoteSendTime < settings.SendInterval {
			return res
		}
		current := access.ReadPose()
		if !HasChanged(current, st.LastSentPose, settings.Thresholds()) {
			return res
		}
		out.Broadcast(current)
		st.LastSentPose = current
		st.LastRemoteSendTime = now
		res.Sent = true
		recordSend(roles.Send)

	case netconfig.SendOwner:
		if now-st.LastLocalSendTime < settings.SendInterval {
			return res
		}
		current := access.ReadPose()
		if HasChanged(current, st.LastSentPose, settings.Thresholds()) {
			out.SendUpstream(current)
			st.LastSentPose = current
			res.Sent = true
			recordSend(roles.Send)
		}
		// The interval gates attempts, not sends.
		st.LastLocalSendTime = now

	default:
		if !st.Buffer.Goal.IsValid() {
			return res
		}
		if NeedsTeleport(st.Buffer.Start, st.Buffer.Goal, settings.SendInterval, now) {
			Teleport(st, access)
			res.Teleported = true
			return res
		}
		access.WritePose(Interpolate(st.Buffer.Start, st.Buffer.Goal, access.ReadPose(), dt, now, settings.Curve()))
		res.Interpolated = true
	}
	return res
}

// Teleport snaps the rendered pose to the goal and clears the buffer so the
// stale pair is not reused.
func Teleport(st *SyncState, access PoseAccessor) {
	access.WritePose(st.Buffer.Goal.Pose)
	st.Buffer.Reset()
	recordTeleport()
}

// Receive handles an inbound DownstreamMove. It only absorbs on a pure
// receiver that applies updates, and reports whether it did.
func Receive(st *SyncState, settings Settings, roles Roles, access PoseAccessor, pose Pose, now float64) bool {
	if roles.Send != netconfig.SendNone || roles.Apply == netconfig.ApplyIgnore {
		return false
	}
	st.Buffer.Absorb(pose, access.ReadPose(), settings.SendInterval, now)
	return true
}

// ApplyUpstream handles an inbound UpstreamSync on the authority. A rejected
// update is dropped without touching the entity. An accepted one is applied
// directly, since the authority does not interpolate, becomes the new change
// baseline and is rebroadcast to every observer.
func ApplyUpstream(st *SyncState, settings Settings, access PoseAccessor, out Sender, pose Pose, senderIsOwner bool, now float64) bool {
	if !AcceptUpstream(settings.ClientAuthority, senderIsOwner) {
		recordRejected()
		return false
	}
	access.WritePose(pose)
	out.Broadcast(pose)
	st.LastSentPose = pose
	st.LastRemoteSendTime = now
	recordSend(netconfig.SendAuthority)
	return true
}
