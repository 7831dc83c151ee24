package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/quintans/go-trigger/trigger"
)

// File is a set of named trigger definitions.
//
//	timezone: Europe/Lisbon
//	triggers:
//	  nightly:
//	    kind: cron
//	    expression: "0 3 * * *"
type File struct {
	// Timezone applies to every trigger without its own timezone. Defaults to UTC.
	Timezone string                        `yaml:"timezone,omitempty"`
	Triggers map[string]trigger.Definition `yaml:"triggers"`
}

// Named is a built trigger and the name it was declared with.
type Named struct {
	Name    string
	Trigger trigger.Trigger
}

// Load reads and parses a trigger file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trigger file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a trigger file, rejecting unknown fields.
func Parse(data []byte) (*File, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	f := &File{}
	if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse trigger file: %w", err)
	}
	return f, nil
}

// Build builds every trigger, sorted by name.
// All invalid definitions are reported together.
func (f *File) Build(options ...trigger.Option) ([]Named, error) {
	loc, err := trigger.LoadLocation(f.Timezone)
	if err != nil {
		return nil, err
	}
	options = append([]trigger.Option{trigger.WithLocation(loc)}, options...)

	names := make([]string, 0, len(f.Triggers))
	for name := range f.Triggers {
		names = append(names, name)
	}
	sort.Strings(names)

	var errs []error
	built := make([]Named, 0, len(names))
	for _, name := range names {
		t, err := f.Triggers[name].Build(options...)
		if err != nil {
			errs = append(errs, fmt.Errorf("trigger '%s': %w", name, err))
			continue
		}
		built = append(built, Named{Name: name, Trigger: t})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return built, nil
}
