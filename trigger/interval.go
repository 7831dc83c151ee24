package trigger

import (
	"fmt"
	"time"
)

// IntervalTrigger implements the Trigger interface; fires every interval, starting at the anchor.
type IntervalTrigger struct {
	interval time.Duration
	start    time.Time
	cfg      config
}

// NewIntervalTrigger returns a new IntervalTrigger.
// Fire times are start + k*interval; the start defaults to the Unix epoch and is set with WithStart.
func NewIntervalTrigger(interval time.Duration, options ...Option) (*IntervalTrigger, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("%w: got %s", ErrInvalidInterval, interval)
	}
	cfg := newConfig(options)
	start := cfg.start
	if start.IsZero() {
		start = time.Unix(0, 0)
	}

	return &IntervalTrigger{
		interval: interval,
		start:    start.In(cfg.location),
		cfg:      cfg,
	}, nil
}

// Interval returns the delay between two fire times.
func (it *IntervalTrigger) Interval() time.Duration {
	return it.interval
}

// NextFireTime returns the first start + k*interval strictly after prev.
func (it *IntervalTrigger) NextFireTime(prev, latest time.Time) (time.Time, bool) {
	prev = it.cfg.lowerBound(prev)

	// Sub saturates about 292 years out, so far gaps take several jumps
	next := it.start
	for !next.After(prev) {
		steps := max(prev.Sub(next)/it.interval, 1)
		next = next.Add(steps * it.interval)
	}
	if after(next, ceiling(latest, it.cfg.end)) {
		return time.Time{}, false
	}
	return next, true
}

// Description returns an IntervalTrigger description.
func (it *IntervalTrigger) Description() string {
	return fmt.Sprintf("IntervalTrigger every %s from %s.", it.interval, it.start.Format(time.RFC3339))
}
