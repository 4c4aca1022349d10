package posesync

import (
	"context"
	"sync"

	"github.com/automoto/posesync/shared/netconfig"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/automoto/posesync/shared/posesync"

type instruments struct {
	sends     metric.Int64Counter
	teleports metric.Int64Counter
	rejected  metric.Int64Counter
}

var (
	instOnce sync.Once
	inst     instruments
)

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// counters lazily creates the instruments. Creation errors leave the
// corresponding counter nil, which the record helpers skip.
func counters() *instruments {
	instOnce.Do(func() {
		m := meter()
		inst.sends, _ = m.Int64Counter(
			"posesync.sends",
			metric.WithDescription("Pose updates handed to the transport"),
		)
		inst.teleports, _ = m.Int64Counter(
			"posesync.teleports",
			metric.WithDescription("Interpolations abandoned for a snap to goal"),
		)
		inst.rejected, _ = m.Int64Counter(
			"posesync.upstream.rejected",
			metric.WithDescription("UpstreamSync messages dropped by authority enforcement"),
		)
	})
	return &inst
}

func recordSend(role netconfig.SendRole) {
	if c := counters().sends; c != nil {
		c.Add(context.Background(), 1, metric.WithAttributes(attribute.String("role", role.String())))
	}
}

func recordTeleport() {
	if c := counters().teleports; c != nil {
		c.Add(context.Background(), 1)
	}
}

func recordRejected() {
	if c := counters().rejected; c != nil {
		c.Add(context.Background(), 1)
	}
}
