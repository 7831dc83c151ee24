package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/quintans/go-trigger/internal/logging"
	"github.com/quintans/go-trigger/trigger"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

type app struct {
	out    io.Writer
	errOut io.Writer
	clock  trigger.Clock
	logger logging.Logger

	logLevel   string
	logFormat  string
	configured bool
}

// Run executes the nextfire command line and returns the process exit code.
// The clock is the source of "now" when --after is not given.
func Run(args []string, out, errOut io.Writer, clock trigger.Clock) int {
	a := newApp(out, errOut, clock)
	root := a.rootCommand()
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		if a.configured {
			a.logger.Error("%v", err)
		} else {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

func newApp(out, errOut io.Writer, clock trigger.Clock) *app {
	return &app{
		out:    out,
		errOut: errOut,
		clock:  clock,
		logger: logging.Nop(),
	}
}

func (a *app) rootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "nextfire",
		Short:         "Preview when triggers fire",
		Long:          `Compute the next fire times of cron, date and interval triggers without running anything.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger, err := logging.New(a.errOut, a.logLevel, logging.Format(a.logFormat))
			if err != nil {
				return err
			}
			a.logger = logger
			a.configured = true
			return nil
		},
	}
	root.SetOut(a.out)
	root.SetErr(a.errOut)
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", string(logging.FormatConsole), "log format (console, json)")

	root.AddCommand(
		a.cronCommand(),
		a.atCommand(),
		a.everyCommand(),
		a.checkCommand(),
	)

	return root
}

// window holds the flags shared by the preview commands.
type window struct {
	after    string
	before   string
	count    int
	timezone string
}

func (w *window) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&w.after, "after", "", "exclusive lower bound (default now)")
	cmd.Flags().StringVar(&w.before, "before", "", "inclusive upper bound")
	cmd.Flags().IntVarP(&w.count, "count", "n", 5, "number of fire times to print")
	cmd.Flags().StringVar(&w.timezone, "tz", "", "timezone of the trigger and of times without offset (default UTC)")
}

type resolvedWindow struct {
	location *time.Location
	after    time.Time
	before   time.Time
	count    int
}

func (w *window) resolve(clock trigger.Clock) (resolvedWindow, error) {
	loc, err := trigger.LoadLocation(w.timezone)
	if err != nil {
		return resolvedWindow{}, err
	}
	if w.count < 1 {
		return resolvedWindow{}, fmt.Errorf("count must be at least 1, got %d", w.count)
	}
	after, err := parseTime(w.after, loc)
	if err != nil {
		return resolvedWindow{}, fmt.Errorf("invalid --after: %w", err)
	}
	if after.IsZero() {
		after = clock.Now()
	}
	before, err := parseTime(w.before, loc)
	if err != nil {
		return resolvedWindow{}, fmt.Errorf("invalid --before: %w", err)
	}
	if !before.IsZero() && before.Before(after) {
		return resolvedWindow{}, fmt.Errorf("--before %s is earlier than --after %s", before.Format(time.RFC3339), after.Format(time.RFC3339))
	}

	return resolvedWindow{
		location: loc,
		after:    after.In(loc),
		before:   before,
		count:    w.count,
	}, nil
}

func parseTime(value string, loc *time.Location) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	var firstErr error
	for _, layout := range timeLayouts {
		t, err := time.ParseInLocation(layout, value, loc)
		if err == nil {
			return t, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, firstErr
}

func (a *app) preview(t trigger.Trigger, w resolvedWindow) error {
	a.logger.Debug("%s after %s", t.Description(), w.after.Format(time.RFC3339))

	runs := trigger.Between(t, w.after, w.before, w.count)
	if len(runs) == 0 {
		a.logger.Warn("no fire time after %s", w.after.Format(time.RFC3339))
		return nil
	}
	for _, run := range runs {
		if _, err := fmt.Fprintln(a.out, run.Format(time.RFC3339)); err != nil {
			return err
		}
	}
	return nil
}
