package trigger_test

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/quintans/go-trigger/trigger"
	"github.com/stretchr/testify/require"
)

var fromEpoch = time.Unix(0, 1577836800000000000)

func TestDateTrigger(t *testing.T) {
	runAt := utc("2025-01-01T00:00:00Z")
	dateTrigger := trigger.NewDateTrigger(runAt)
	require.Equal(t, "DateTrigger at 2025-01-01T00:00:00Z.", dateTrigger.Description())

	next, ok := dateTrigger.NextFireTime(time.Time{}, time.Time{})
	require.True(t, ok)
	require.Equal(t, runAt, next)

	next, ok = dateTrigger.NextFireTime(runAt.Add(-time.Nanosecond), time.Time{})
	require.True(t, ok)
	require.Equal(t, runAt, next)

	next, ok = dateTrigger.NextFireTime(runAt, time.Time{})
	require.False(t, ok)
	require.True(t, next.IsZero())

	_, ok = dateTrigger.NextFireTime(runAt.Add(time.Hour), time.Time{})
	require.False(t, ok)
}

func TestDateTriggerInThePast(t *testing.T) {
	runAt := utc("2001-01-01T00:00:00Z")
	dateTrigger := trigger.NewDateTrigger(runAt, trigger.WithClock(trigger.FixedClock(utc("2024-01-01T00:00:00Z"))))

	// without prev the run time is returned even if it is already gone
	next, ok := dateTrigger.NextFireTime(time.Time{}, time.Time{})
	require.True(t, ok)
	require.Equal(t, runAt, next)
}

func TestDateTriggerLatest(t *testing.T) {
	runAt := utc("2025-01-01T00:00:00Z")
	dateTrigger := trigger.NewDateTrigger(runAt)

	next, ok := dateTrigger.NextFireTime(time.Time{}, runAt)
	require.True(t, ok)
	require.Equal(t, runAt, next)

	_, ok = dateTrigger.NextFireTime(time.Time{}, runAt.Add(-time.Second))
	require.False(t, ok)

	dateTrigger = trigger.NewDateTrigger(runAt, trigger.WithEnd(runAt.Add(-time.Second)))
	_, ok = dateTrigger.NextFireTime(time.Time{}, time.Time{})
	require.False(t, ok)
}

func TestDateTriggerLocation(t *testing.T) {
	lisbon, err := trigger.LoadLocation("Europe/Lisbon")
	require.NoError(t, err)

	runAt := utc("2025-07-01T12:00:00Z")
	dateTrigger := trigger.NewDateTrigger(runAt, trigger.WithLocation(lisbon))
	next, ok := dateTrigger.NextFireTime(time.Time{}, time.Time{})
	require.True(t, ok)
	require.True(t, runAt.Equal(next))
	require.Equal(t, 13, next.Hour())
	require.Equal(t, runAt, dateTrigger.RunAt().UTC())
}

func TestIntervalTrigger(t *testing.T) {
	intervalTrigger, err := trigger.NewIntervalTrigger(time.Second * 5)
	require.NoError(t, err)
	require.Equal(t, "IntervalTrigger every 5s from 1970-01-01T00:00:00Z.", intervalTrigger.Description())

	next, ok := intervalTrigger.NextFireTime(fromEpoch, time.Time{})
	require.True(t, ok)
	require.Equal(t, int64(1577836805000000000), next.UnixNano())

	next, ok = intervalTrigger.NextFireTime(next, time.Time{})
	require.True(t, ok)
	require.Equal(t, int64(1577836810000000000), next.UnixNano())

	next, ok = intervalTrigger.NextFireTime(next.Add(-time.Millisecond), time.Time{})
	require.True(t, ok)
	require.Equal(t, int64(1577836810000000000), next.UnixNano())

	_, ok = intervalTrigger.NextFireTime(next, next.Add(time.Second))
	require.False(t, ok)
}

func TestIntervalTriggerStart(t *testing.T) {
	start := utc("2024-03-01T10:00:00Z")
	intervalTrigger, err := trigger.NewIntervalTrigger(90*time.Minute, trigger.WithStart(start))
	require.NoError(t, err)

	next, ok := intervalTrigger.NextFireTime(start.Add(-24*time.Hour), time.Time{})
	require.True(t, ok)
	require.Equal(t, start, next)

	next, ok = intervalTrigger.NextFireTime(start, time.Time{})
	require.True(t, ok)
	require.Equal(t, utc("2024-03-01T11:30:00Z"), next)

	next, ok = intervalTrigger.NextFireTime(utc("2024-03-01T12:59:59Z"), time.Time{})
	require.True(t, ok)
	require.Equal(t, utc("2024-03-01T13:00:00Z"), next)
}

func TestIntervalTriggerFarFromStart(t *testing.T) {
	hourly, err := trigger.NewIntervalTrigger(time.Hour)
	require.NoError(t, err)

	next, ok := hourly.NextFireTime(utc("2300-01-01T00:30:00Z"), time.Time{})
	require.True(t, ok)
	require.Equal(t, utc("2300-01-01T01:00:00Z"), next)

	next, ok = hourly.NextFireTime(utc("2900-06-15T12:00:00Z"), time.Time{})
	require.True(t, ok)
	require.Equal(t, utc("2900-06-15T13:00:00Z"), next)

	odd, err := trigger.NewIntervalTrigger(7*time.Second, trigger.WithStart(fromEpoch))
	require.NoError(t, err)
	prev := utc("2500-03-01T10:07:00Z")
	next, ok = odd.NextFireTime(prev, time.Time{})
	require.True(t, ok)
	require.True(t, next.After(prev))
	require.False(t, next.After(prev.Add(7*time.Second)))
}

func TestIntervalTriggerInvalid(t *testing.T) {
	for _, d := range []time.Duration{0, -time.Second} {
		intervalTrigger, err := trigger.NewIntervalTrigger(d)
		require.Nil(t, intervalTrigger)
		require.True(t, errors.Is(err, trigger.ErrInvalidInterval))
	}
}

func TestRunTimes(t *testing.T) {
	cronTrigger, err := trigger.NewCronTrigger("*/20 * * * *")
	require.NoError(t, err)

	runs := trigger.RunTimes(cronTrigger, utc("2024-03-01T10:00:00Z"), utc("2024-03-01T11:00:00Z"))
	require.Equal(t, []time.Time{
		utc("2024-03-01T10:20:00Z"),
		utc("2024-03-01T10:40:00Z"),
		utc("2024-03-01T11:00:00Z"),
	}, runs)

	require.Empty(t, trigger.RunTimes(cronTrigger, utc("2024-03-01T10:00:00Z"), utc("2024-03-01T10:19:00Z")))
	require.Empty(t, trigger.RunTimes(cronTrigger, utc("2024-03-01T10:00:00Z"), time.Time{}))

	intervalTrigger, err := trigger.NewIntervalTrigger(time.Second)
	require.NoError(t, err)
	runs = trigger.RunTimes(intervalTrigger, fromEpoch, fromEpoch.Add(time.Hour))
	require.Len(t, runs, trigger.MaxRunTimes)
	// only the most recent runs are kept
	require.Equal(t, fromEpoch.Add(2601*time.Second).UTC(), runs[0])
	require.Equal(t, fromEpoch.Add(time.Hour).UTC(), runs[len(runs)-1])
	for i := 1; i < len(runs); i++ {
		require.Equal(t, time.Second, runs[i].Sub(runs[i-1]))
	}

	runs = trigger.RunTimes(intervalTrigger, fromEpoch, fromEpoch.Add(trigger.MaxRunTimes*time.Second))
	require.Len(t, runs, trigger.MaxRunTimes)
	require.Equal(t, fromEpoch.Add(time.Second).UTC(), runs[0])
	require.Equal(t, fromEpoch.Add(trigger.MaxRunTimes*time.Second).UTC(), runs[len(runs)-1])
}

func TestUpcomingDateTrigger(t *testing.T) {
	runAt := utc("2025-01-01T00:00:00Z")
	runs := trigger.Upcoming(trigger.NewDateTrigger(runAt), time.Time{}, 5)
	require.Equal(t, []time.Time{runAt}, runs)
}

func TestBetween(t *testing.T) {
	cronTrigger, err := trigger.NewCronTrigger("0 0 * * *")
	require.NoError(t, err)

	runs := trigger.Between(cronTrigger, utc("2024-02-27T00:00:00Z"), utc("2024-03-02T00:00:00Z"), 10)
	require.Equal(t, []time.Time{
		utc("2024-02-28T00:00:00Z"),
		utc("2024-02-29T00:00:00Z"),
		utc("2024-03-01T00:00:00Z"),
		utc("2024-03-02T00:00:00Z"),
	}, runs)

	require.Empty(t, trigger.Between(cronTrigger, utc("2024-02-27T00:00:00Z"), time.Time{}, 0))
}

func TestConcurrentNextFireTime(t *testing.T) {
	cronTrigger, err := trigger.NewCronTrigger("*/5 * * * *")
	require.NoError(t, err)

	prev := utc("2024-03-01T10:07:00Z")
	want := utc("2024-03-01T10:10:00Z")

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				next, ok := cronTrigger.NextFireTime(prev, time.Time{})
				if !ok || !next.Equal(want) {
					t.Errorf("got %s, %t", next, ok)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestLoadLocation(t *testing.T) {
	loc, err := trigger.LoadLocation("")
	require.NoError(t, err)
	require.Equal(t, time.UTC, loc)

	_, err = trigger.LoadLocation("Nowhere/Special")
	require.True(t, errors.Is(err, trigger.ErrInvalidTimezone))

	loc, err = trigger.LoadLocation("-05:30")
	require.NoError(t, err)
	_, offset := time.Date(2024, time.March, 1, 0, 0, 0, 0, loc).Zone()
	require.Equal(t, -(5*3600 + 30*60), offset)
}
