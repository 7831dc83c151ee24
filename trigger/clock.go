package trigger

import (
	"fmt"
	"time"
)

const offsetLayout = "-07:00"

// Clock supplies the current wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the system clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// FixedClock always returns the same instant.
type FixedClock time.Time

func (c FixedClock) Now() time.Time {
	return time.Time(c)
}

// LoadLocation resolves an IANA timezone name or a fixed offset like "+01:00".
// An empty name resolves to UTC.
func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return time.UTC, nil
	}
	if t, err := time.Parse(offsetLayout, name); err == nil {
		_, offset := t.Zone()
		return time.FixedZone(name, offset), nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("%w '%s': %v", ErrInvalidTimezone, name, err)
	}
	return loc, nil
}

// timezoneName returns a name LoadLocation resolves back to loc.
// Locations outside the timezone database are written as their current offset.
func timezoneName(loc *time.Location, clock Clock) string {
	name := loc.String()
	if _, err := LoadLocation(name); err == nil {
		return name
	}
	return clock.Now().In(loc).Format(offsetLayout)
}
