// Package netconfig defines lightweight types shared between the authority
// and its observers. It must have zero dependencies on any rendering or
// transport library so both binaries can import it.
package netconfig

// SendRole identifies which side, if any, originates pose updates for an
// entity on this process.
type SendRole int

const (
	SendNone      SendRole = iota // Pure receiver
	SendAuthority                 // Ground truth, broadcasts DownstreamMove
	SendOwner                     // Owning client, sends UpstreamSync
)

var sendRoleNames = map[SendRole]string{
	SendNone:      "none",
	SendAuthority: "authority",
	SendOwner:     "owner",
}

func (r SendRole) String() string {
	if name, ok := sendRoleNames[r]; ok {
		return name
	}
	return "unknown"
}

// ApplyRole says whether inbound DownstreamMove updates are interpolated or
// dropped on this process.
type ApplyRole int

const (
	ApplyInterpolate ApplyRole = iota
	ApplyIgnore
)

func (r ApplyRole) String() string {
	switch r {
	case ApplyInterpolate:
		return "interpolate"
	case ApplyIgnore:
		return "ignore"
	default:
		return "unknown"
	}
}

// Protocol defaults.
const (
	DefaultThreshold    = 0.01
	DefaultSendInterval = 0.1 // seconds

	// TeleportSpanFactor is how many start/goal spans may pass since the
	// goal arrived before interpolation is abandoned.
	TeleportSpanFactor = 5.0

	// ProtocolVersion is compared during the join handshake. An empty
	// server side version accepts any client.
	ProtocolVersion = "1"
)
