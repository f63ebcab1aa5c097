package timeprof

import "time"

// timeNow is the clock used for all timestamps. time.Now carries a monotonic
// reading on every supported platform and is consistent across goroutines,
// which is what makes cross-goroutine entries comparable.
var timeNow = time.Now

// microsBetween returns b - a in microseconds, casting each time point to
// microsecond precision before subtracting. Truncating the points rather
// than the difference keeps inner scopes from overrunning their outer scope
// in the emitted timeline.
func microsBetween(a, b time.Time) int64 {
	return b.UnixMicro() - a.UnixMicro()
}
