package trigger

import (
	"errors"
	"time"
)

var (
	ErrInvalidExpression     = errors.New("invalid cron expression")
	ErrUnsupportedExpression = errors.New("unsupported cron expression")
	ErrNeverFires            = errors.New("cron expression can never fire")
	ErrInvalidInterval       = errors.New("interval must be greater than zero")
	ErrInvalidTimezone       = errors.New("invalid timezone")
	ErrInvalidDefinition     = errors.New("invalid trigger definition")
)

// Trigger is the Triggers interface.
// Triggers compute when a job should run; they never run it.
type Trigger interface {
	// NextFireTime returns the earliest fire time strictly after prev and not after latest.
	// A zero prev means now (taken from the trigger's Clock) and a zero latest means no ceiling.
	// It returns false when the trigger is exhausted or nothing fires inside the window.
	NextFireTime(prev, latest time.Time) (time.Time, bool)

	// Description returns a Trigger description.
	Description() string
}

type config struct {
	location *time.Location
	clock    Clock
	start    time.Time
	end      time.Time
}

func newConfig(options []Option) config {
	c := config{
		location: time.UTC,
		clock:    SystemClock{},
	}
	for _, o := range options {
		o(&c)
	}
	return c
}

// lowerBound resolves an omitted prev to the current time in loc.
func (c config) lowerBound(prev time.Time) time.Time {
	if prev.IsZero() {
		return c.clock.Now().In(c.location)
	}
	return prev.In(c.location)
}

// Option configures a Trigger at construction time.
type Option func(*config)

// WithLocation sets the timezone the trigger computes in. Defaults to UTC.
func WithLocation(loc *time.Location) Option {
	return func(c *config) {
		if loc != nil {
			c.location = loc
		}
	}
}

// WithClock sets the time source used when prev is omitted.
func WithClock(clock Clock) Option {
	return func(c *config) {
		if clock != nil {
			c.clock = clock
		}
	}
}

// WithStart anchors an IntervalTrigger. Ignored by the other triggers.
func WithStart(start time.Time) Option {
	return func(c *config) {
		c.start = start
	}
}

// WithEnd sets the last instant at which a trigger may fire.
func WithEnd(end time.Time) Option {
	return func(c *config) {
		c.end = end
	}
}

// ceiling returns the stricter of latest and end, zero meaning unbounded.
func ceiling(latest, end time.Time) time.Time {
	switch {
	case latest.IsZero():
		return end
	case end.IsZero():
		return latest
	case end.Before(latest):
		return end
	default:
		return latest
	}
}

func after(t, limit time.Time) bool {
	return !limit.IsZero() && t.After(limit)
}
