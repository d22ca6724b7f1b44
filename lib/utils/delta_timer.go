package utils

import "time"

// DeltaTimer measures the time between consecutive calls to Next. The
// first call returns zero.
type DeltaTimer struct {
	time.Time
}

func (d *DeltaTimer) Next() time.Duration {
	// one timestamp per call, so that consecutive deltas add up exactly
	now := time.Now()

	defer d.Set(now)
	if d.IsZero() {
		return 0
	}
	return now.Sub(d.Time)
}

func (d *DeltaTimer) Set(t time.Time) {
	d.Time = t
}

// Reset makes the next call to Next return zero again.
func (d *DeltaTimer) Reset() {
	d.Time = time.Time{}
}
