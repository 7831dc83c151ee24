package trigger

import (
	"fmt"
	"time"
)

// DateTrigger implements the Trigger interface. It fires exactly once.
type DateTrigger struct {
	runAt time.Time
	cfg   config
}

// NewDateTrigger returns a new DateTrigger firing at runAt.
func NewDateTrigger(runAt time.Time, options ...Option) *DateTrigger {
	cfg := newConfig(options)
	return &DateTrigger{
		runAt: runAt.In(cfg.location),
		cfg:   cfg,
	}
}

// RunAt returns the instant the trigger fires at.
func (dt *DateTrigger) RunAt() time.Time {
	return dt.runAt
}

// NextFireTime returns the run time while it is still after prev.
// A run time equal to prev counts as already fired. latest is honoured like for the other triggers.
func (dt *DateTrigger) NextFireTime(prev, latest time.Time) (time.Time, bool) {
	if !prev.IsZero() && !dt.runAt.After(prev) {
		return time.Time{}, false
	}
	if after(dt.runAt, ceiling(latest, dt.cfg.end)) {
		return time.Time{}, false
	}
	return dt.runAt, true
}

// Description returns a DateTrigger description.
func (dt *DateTrigger) Description() string {
	return fmt.Sprintf("DateTrigger at %s.", dt.runAt.Format(time.RFC3339))
}
