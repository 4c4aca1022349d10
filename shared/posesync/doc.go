// Package posesync implements authority-aware pose synchronization for a
// single networked entity.
//
// The authority side decides when a pose is worth sending (change detection
// gated by a send interval). Observers fold each received pose into a
// start/goal pair and reconstruct continuous motion between them: position
// approaches the goal at an estimated constant speed, while orientation and
// scale blend by elapsed time. When far more time has passed since the goal
// arrived than separated start from goal, interpolation is abandoned and the
// entity snaps to the goal.
//
// Every function here is synchronous and never blocks. A SyncState must be
// confined to one goroutine; there is no shared state between entities.
package posesync
