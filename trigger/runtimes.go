package trigger

import "time"

// MaxRunTimes caps the number of missed run times returned by RunTimes.
const MaxRunTimes = 1000

// RunTimes returns the fire times in (prev, now], oldest first.
// Past MaxRunTimes only the most recent ones are kept, so the last element is
// always the latest fire time due. A caller coalescing missed runs only keeps that one.
func RunTimes(t Trigger, prev, now time.Time) []time.Time {
	if now.IsZero() {
		return nil
	}

	var runs []time.Time
	oldest := 0
	for {
		next, ok := t.NextFireTime(prev, now)
		if !ok {
			break
		}
		if len(runs) < MaxRunTimes {
			runs = append(runs, next)
		} else {
			runs[oldest] = next
			oldest = (oldest + 1) % MaxRunTimes
		}
		prev = next
	}
	if oldest == 0 {
		return runs
	}
	return append(runs[oldest:], runs[:oldest]...)
}

// Upcoming returns the next n fire times after from, fewer if the trigger is exhausted.
// A zero from means now.
func Upcoming(t Trigger, from time.Time, n int) []time.Time {
	return Between(t, from, time.Time{}, n)
}

// Between returns at most n fire times in (from, to]. A zero to means no ceiling.
func Between(t Trigger, from, to time.Time, n int) []time.Time {
	runs := make([]time.Time, 0, max(n, 0))
	prev := from
	for len(runs) < n {
		next, ok := t.NextFireTime(prev, to)
		if !ok {
			break
		}
		runs = append(runs, next)
		prev = next
	}
	return runs
}
