package posesync

// SyncState is the per-entity protocol state. The zero value is ready to use:
// its empty baseline guarantees the first eligible tick sends.
type SyncState struct {
	LastSentPose       Pose
	Buffer             GoalBuffer
	LastLocalSendTime  float64 // owner side
	LastRemoteSendTime float64 // authority side
}

// Start returns the sample interpolation departs from, for read-only use.
func (s *SyncState) Start() PoseSample { return s.Buffer.Start }

// Goal returns the most recently received sample, for read-only use.
func (s *SyncState) Goal() PoseSample { return s.Buffer.Goal }

// PoseAccessor reads and writes the pose an entity is rendered at. It is
// supplied per entity by whatever owns the transform.
type PoseAccessor interface {
	ReadPose() Pose
	WritePose(Pose)
}

// Sender hands outbound updates to the transport. Both calls enqueue and
// return immediately.
type Sender interface {
	Broadcast(Pose)    // DownstreamMove, authority to all observers
	SendUpstream(Pose) // UpstreamSync, owner to authority
}
