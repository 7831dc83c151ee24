package trigger

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
)

// Any satisfiable schedule fires at least once per Gregorian cycle.
const searchYears = 400

var parser = cron.NewParser(
	cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// CronTrigger implements the Trigger interface using a five field cron expression
// (minute, hour, day of month, month, day of week).
// Day of month and day of week must both match when both are restricted.
type CronTrigger struct {
	expr     string
	schedule *cron.SpecSchedule
	cfg      config
}

// NewCronTrigger returns a new CronTrigger.
// A CRON_TZ= or TZ= prefix overrides the WithLocation option.
func NewCronTrigger(expr string, options ...Option) (*CronTrigger, error) {
	cfg := newConfig(options)

	expr = strings.TrimSpace(expr)
	parsed, err := parser.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrInvalidExpression, expr, err)
	}
	schedule, ok := parsed.(*cron.SpecSchedule)
	if !ok {
		return nil, fmt.Errorf("%w '%s': use an IntervalTrigger for fixed delays", ErrUnsupportedExpression, expr)
	}
	if !canFire(schedule) {
		return nil, fmt.Errorf("%w: '%s'", ErrNeverFires, expr)
	}
	if hasTimezonePrefix(expr) {
		cfg.location = schedule.Location
	}

	return &CronTrigger{
		expr:     expr,
		schedule: schedule,
		cfg:      cfg,
	}, nil
}

// Expression returns the cron expression the trigger was built from.
func (ct *CronTrigger) Expression() string {
	return ct.expr
}

// Location returns the timezone the trigger computes in.
func (ct *CronTrigger) Location() *time.Location {
	return ct.cfg.location
}

// NextFireTime returns the first minute strictly after prev matching every field of the expression.
func (ct *CronTrigger) NextFireTime(prev, latest time.Time) (time.Time, bool) {
	return ct.next(ct.cfg.lowerBound(prev), ceiling(latest, ct.cfg.end))
}

// Description returns a CronTrigger description.
func (ct *CronTrigger) Description() string {
	return fmt.Sprintf("CronTrigger with the expression '%s' (%s).", ct.expr, ct.cfg.location)
}

// next walks forward field by field: month, day, hour, minute.
// When an increment changes a higher field the walk restarts from the month.
// Wall clock arithmetic is done in the trigger location, so a wall time skipped
// by a DST transition never fires and a repeated one fires on both occurrences.
func (ct *CronTrigger) next(t, limit time.Time) (time.Time, bool) {
	s := ct.schedule
	loc := ct.cfg.location

	// first whole minute strictly after t
	t = t.Add(time.Minute - time.Duration(t.Second())*time.Second - time.Duration(t.Nanosecond()))

	// set once a field was incremented; lower fields are at their minimum from then on
	added := false
	yearLimit := t.Year() + searchYears

wrap:
	for {
		if t.Year() > yearLimit || after(t, limit) {
			return time.Time{}, false
		}

		for 1<<uint(t.Month())&s.Month == 0 {
			added = true
			t = startOfDay(t.Year(), t.Month()+1, 1, loc)
			if t.Month() == time.January {
				continue wrap
			}
		}

		for !dayMatches(s, t) {
			added = true
			t = startOfDay(t.Year(), t.Month(), t.Day()+1, loc)
			if t.Day() == 1 {
				continue wrap
			}
		}

		day := t.Day()
		for 1<<uint(t.Hour())&s.Hour == 0 {
			if !added {
				added = true
				t = t.Add(-time.Duration(t.Minute()) * time.Minute)
			}
			t = t.Add(time.Hour)
			if t.Day() != day {
				continue wrap
			}
		}

		hour := t.Hour()
		for 1<<uint(t.Minute())&s.Minute == 0 {
			added = true
			t = t.Add(time.Minute)
			if t.Hour() != hour {
				continue wrap
			}
		}

		if after(t, limit) {
			return time.Time{}, false
		}
		return t, true
	}
}

// startOfDay returns the first instant of the given day, normalizing overflowing months and days.
// On days where midnight does not exist it is the first wall time after the gap.
func startOfDay(year int, month time.Month, day int, loc *time.Location) time.Time {
	noon := time.Date(year, month, day, 12, 0, 0, 0, loc)
	year, month, day = noon.Date()
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if t.Day() != day {
		t = t.Add(time.Duration(24-t.Hour()) * time.Hour)
	}
	return t
}

func dayMatches(s *cron.SpecSchedule, t time.Time) bool {
	domMatch := 1<<uint(t.Day())&s.Dom > 0
	dowMatch := 1<<uint(t.Weekday())&s.Dow > 0
	return domMatch && dowMatch
}

// canFire reports whether some month of the schedule has one of its days.
// Weekdays rotate over the years, so they never make a valid date unreachable.
func canFire(s *cron.SpecSchedule) bool {
	for m := time.January; m <= time.December; m++ {
		if 1<<uint(m)&s.Month == 0 {
			continue
		}
		for d := 1; d <= maxDays(m); d++ {
			if 1<<uint(d)&s.Dom > 0 {
				return true
			}
		}
	}
	return false
}

func maxDays(m time.Month) int {
	switch m {
	case time.February:
		return 29
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

func hasTimezonePrefix(expr string) bool {
	return strings.HasPrefix(expr, "TZ=") || strings.HasPrefix(expr, "CRON_TZ=")
}
