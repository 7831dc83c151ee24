package trigger

import (
	"encoding/json"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"
)

// Kind names the type of trigger a Definition builds.
type Kind string

const (
	KindCron     Kind = "cron"
	KindDate     Kind = "date"
	KindInterval Kind = "interval"
)

// Definition is the serializable form of a Trigger.
type Definition struct {
	Kind       Kind      `json:"kind" yaml:"kind"`
	Expression string    `json:"expression,omitempty" yaml:"expression,omitempty"`
	RunAt      time.Time `json:"run_at,omitzero" yaml:"run_at,omitempty"`
	Every      Duration  `json:"every,omitzero" yaml:"every,omitempty"`
	Start      time.Time `json:"start,omitzero" yaml:"start,omitempty"`
	End        time.Time `json:"end,omitzero" yaml:"end,omitempty"`
	Timezone   string    `json:"timezone,omitempty" yaml:"timezone,omitempty"`
}

// Build validates the definition and returns the Trigger it describes.
// The definition timezone takes precedence over a WithLocation option.
func (d Definition) Build(options ...Option) (Trigger, error) {
	if d.Timezone != "" {
		loc, err := LoadLocation(d.Timezone)
		if err != nil {
			return nil, err
		}
		options = append(options, WithLocation(loc))
	}
	if !d.End.IsZero() {
		options = append(options, WithEnd(d.End))
	}

	switch d.Kind {
	case KindCron:
		if d.Expression == "" {
			return nil, fmt.Errorf("%w: cron trigger without expression", ErrInvalidDefinition)
		}
		return NewCronTrigger(d.Expression, options...)
	case KindDate:
		if d.RunAt.IsZero() {
			return nil, fmt.Errorf("%w: date trigger without run_at", ErrInvalidDefinition)
		}
		return NewDateTrigger(d.RunAt, options...), nil
	case KindInterval:
		if !d.Start.IsZero() {
			options = append(options, WithStart(d.Start))
		}
		return NewIntervalTrigger(time.Duration(d.Every), options...)
	default:
		return nil, fmt.Errorf("%w: unknown kind '%s'", ErrInvalidDefinition, d.Kind)
	}
}

// Definition returns the serializable form of the trigger.
func (ct *CronTrigger) Definition() Definition {
	return Definition{
		Kind:       KindCron,
		Expression: ct.expr,
		End:        ct.cfg.end,
		Timezone:   timezoneName(ct.cfg.location, ct.cfg.clock),
	}
}

// Definition returns the serializable form of the trigger.
func (dt *DateTrigger) Definition() Definition {
	return Definition{
		Kind:     KindDate,
		RunAt:    dt.runAt,
		End:      dt.cfg.end,
		Timezone: timezoneName(dt.cfg.location, dt.cfg.clock),
	}
}

// Definition returns the serializable form of the trigger.
func (it *IntervalTrigger) Definition() Definition {
	return Definition{
		Kind:     KindInterval,
		Every:    Duration(it.interval),
		Start:    it.start,
		End:      it.cfg.end,
		Timezone: timezoneName(it.cfg.location, it.cfg.clock),
	}
}

// Duration is a time.Duration written as a Go duration string, like "1h30m".
type Duration time.Duration

func (d Duration) String() string {
	return time.Duration(d).String()
}

func (d Duration) IsZero() bool {
	return d == 0
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d Duration) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return fmt.Errorf("duration must be a string: %w", err)
	}
	return d.parse(s)
}

func (d *Duration) parse(s string) error {
	v, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDefinition, err)
	}
	*d = Duration(v)
	return nil
}
