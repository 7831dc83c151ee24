package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/quintans/go-trigger/trigger"
)

func (a *app) cronCommand() *cobra.Command {
	w := &window{}
	cmd := &cobra.Command{
		Use:   "cron <expression>",
		Short: "Preview a cron trigger",
		Long: `Print the next fire times of a five field cron expression
(minute, hour, day of month, month, day of week).
Day of month and day of week must both match when both are restricted.`,
		Example: `  nextfire cron "0 9 * * 1-5" --tz Europe/Lisbon
  nextfire cron "*/15 * * * *" --after 2024-03-01T10:07:00Z -n 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := w.resolve(a.clock)
			if err != nil {
				return err
			}
			t, err := trigger.NewCronTrigger(args[0], trigger.WithLocation(rw.location))
			if err != nil {
				return err
			}
			return a.preview(t, rw)
		},
	}
	w.register(cmd)
	return cmd
}

func (a *app) atCommand() *cobra.Command {
	w := &window{}
	cmd := &cobra.Command{
		Use:   "at <time>",
		Short: "Preview a date trigger",
		Long:  `Print the fire time of a trigger that fires once, if it is still pending after --after.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := w.resolve(a.clock)
			if err != nil {
				return err
			}
			runAt, err := parseTime(args[0], rw.location)
			if err != nil {
				return fmt.Errorf("invalid time: %w", err)
			}
			return a.preview(trigger.NewDateTrigger(runAt, trigger.WithLocation(rw.location)), rw)
		},
	}
	w.register(cmd)
	return cmd
}

func (a *app) everyCommand() *cobra.Command {
	w := &window{}
	var start string
	cmd := &cobra.Command{
		Use:   "every <duration>",
		Short: "Preview an interval trigger",
		Long:  `Print the next fire times of a trigger firing every <duration> (for example 90m or 1h30m) from --start.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rw, err := w.resolve(a.clock)
			if err != nil {
				return err
			}
			every, err := time.ParseDuration(args[0])
			if err != nil {
				return fmt.Errorf("invalid duration: %w", err)
			}
			startAt, err := parseTime(start, rw.location)
			if err != nil {
				return fmt.Errorf("invalid --start: %w", err)
			}
			t, err := trigger.NewIntervalTrigger(every, trigger.WithLocation(rw.location), trigger.WithStart(startAt))
			if err != nil {
				return err
			}
			return a.preview(t, rw)
		},
	}
	w.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "anchor of the interval (default the Unix epoch)")
	return cmd
}
