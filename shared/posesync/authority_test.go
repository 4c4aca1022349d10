package posesync

import (
	"testing"

	"github.com/automoto/posesync/shared/netconfig"
	"github.com/stretchr/testify/assert"
)

func TestResolveRoles(t *testing.T) {
	tests := []struct {
		name            string
		authoritySide   bool
		owningClient    bool
		clientAuthority bool
		excludeEcho     bool
		want            Roles
	}{
		{"authority always sends", true, false, false, false, Roles{netconfig.SendAuthority, netconfig.ApplyInterpolate}},
		{"authority that also owns", true, true, true, true, Roles{netconfig.SendAuthority, netconfig.ApplyInterpolate}},
		{"owner with client authority", false, true, true, true, Roles{netconfig.SendOwner, netconfig.ApplyInterpolate}},
		{"owner in server authority ignores echo", false, true, false, true, Roles{netconfig.SendNone, netconfig.ApplyIgnore}},
		{"owner in server authority applies echo", false, true, false, false, Roles{netconfig.SendNone, netconfig.ApplyInterpolate}},
		{"observer", false, false, true, true, Roles{netconfig.SendNone, netconfig.ApplyInterpolate}},
		{"observer server authority", false, false, false, true, Roles{netconfig.SendNone, netconfig.ApplyInterpolate}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveRoles(tt.authoritySide, tt.owningClient, tt.clientAuthority, tt.excludeEcho)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveRoles_NeverTwoSenders(t *testing.T) {
	for _, clientAuthority := range []bool{false, true} {
		authority := ResolveRoles(true, false, clientAuthority, true)
		owner := ResolveRoles(false, true, clientAuthority, true)
		senders := 0
		for _, r := range []Roles{authority, owner} {
			if r.Send == netconfig.SendAuthority {
				senders++
			}
		}
		assert.Equal(t, 1, senders)
		assert.NotEqual(t, netconfig.SendAuthority, owner.Send)
	}
}

func TestAcceptUpstream(t *testing.T) {
	assert.True(t, AcceptUpstream(true, true))
	assert.False(t, AcceptUpstream(false, true))
	assert.False(t, AcceptUpstream(true, false))
	assert.False(t, AcceptUpstream(false, false))
}
