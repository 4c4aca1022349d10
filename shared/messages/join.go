package messages

import "github.com/automoto/posesync/shared/posesync"

// JoinRequest is sent by a client after connecting to request joining the session.
type JoinRequest struct {
	Version    string
	ClientName string
}

// JoinAccepted is sent by the server when a client's join request is accepted.
type JoinAccepted struct {
	ClientID   string
	ServerName string
	TickRate   int
	Settings   SyncSettings
}

// JoinRejected is sent by the server when a client's join request is rejected.
type JoinRejected struct {
	Reason string
}

// SyncSettings is the wire form of posesync.Settings.
type SyncSettings struct {
	PositionThreshold float64
	RotationThreshold float64
	ScaleThreshold    float64
	SendInterval      float64
	ClientAuthority   bool
	ExcludeOwnerEcho  bool
	Easing            string
}

func NewSyncSettings(s posesync.Settings) SyncSettings {
	return SyncSettings{
		PositionThreshold: s.PositionThreshold,
		RotationThreshold: s.RotationThreshold,
		ScaleThreshold:    s.ScaleThreshold,
		SendInterval:      s.SendInterval,
		ClientAuthority:   s.ClientAuthority,
		ExcludeOwnerEcho:  s.ExcludeOwnerEcho,
		Easing:            s.Easing,
	}
}

// Settings converts back to posesync.Settings. The result still needs
// Validate before use.
func (s SyncSettings) Settings() posesync.Settings {
	return posesync.Settings{
		PositionThreshold: s.PositionThreshold,
		RotationThreshold: s.RotationThreshold,
		ScaleThreshold:    s.ScaleThreshold,
		SendInterval:      s.SendInterval,
		ClientAuthority:   s.ClientAuthority,
		ExcludeOwnerEcho:  s.ExcludeOwnerEcho,
		Easing:            s.Easing,
	}
}
